// Package markdown turns post source files into structured metadata and HTML.
// It owns the two pure stages of the pipeline: frontmatter extraction and
// goldmark-based rendering. File discovery and ordering live in the posts
// package; this package never touches the filesystem.
package markdown
