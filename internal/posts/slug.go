package posts

import "github.com/goliatone/go-slug"

// NormalizeSlug derives a filesystem-safe slug from free-form text.
// Authoring tools run titles through this before touching disk, so the
// filename a post receives is exactly the slug the resolver accepts later.
func NormalizeSlug(value string) (string, error) {
	return slug.Normalize(value)
}

// IsValidSlug reports whether value already satisfies the slug rules. The
// resolver rejects invalid slugs before constructing a path, which also
// keeps traversal sequences out of filesystem lookups.
func IsValidSlug(value string) bool {
	return slug.IsValid(value)
}
