package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// PostUUID returns the stable identifier for a post slug. The same slug always
// maps to the same UUID so feeds and API clients can rely on it across
// rebuilds.
func PostUUID(slug string) uuid.UUID {
	return UUID("go-blog:post:" + strings.ToLower(strings.TrimSpace(slug)))
}

// CoverUUID returns the stable identifier for a generated cover image, keyed
// by the post slug it belongs to.
func CoverUUID(slug string) uuid.UUID {
	return UUID("go-blog:cover:" + strings.ToLower(strings.TrimSpace(slug)))
}

// ThemeUUID returns the stable identifier for an installed theme manifest.
func ThemeUUID(themePath string) uuid.UUID {
	return UUID("go-blog:theme:" + strings.TrimSpace(themePath))
}
