// Package http provides the blog's public JSON API.
//
// Routes mount under /api by default:
//   - GET /posts: post metadata, newest first
//   - GET /posts/{slug}: one fully rendered post
//   - GET /quote: a random quote proxied verbatim from the upstream
//
// Host applications register the handlers on their own mux.
package http
