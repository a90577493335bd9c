// Package posts implements the post ingestion pipeline: content-root
// discovery, metadata extraction with documented defaults, reverse
// chronological listing, and slug-based resolution with full HTML rendering.
// The listing never fails because of a single bad file; offending sources are
// skipped and logged. Resolution surfaces a typed error taxonomy so callers
// can distinguish missing, unreadable, and malformed sources while outer
// boundaries collapse all three into a uniform not-found response.
package posts
