package posts

import (
	"errors"
	"fmt"
)

var (
	ErrSlugRequired  = errors.New("posts: slug is required")
	ErrSlugInvalid   = errors.New("posts: slug contains invalid characters")
	ErrNotFound      = errors.New("posts: post not found")
	ErrDateInvalid   = errors.New("posts: date is not in a sortable format")
	ErrTitleRequired = errors.New("posts: title is required")
	ErrExists        = errors.New("posts: post already exists")
)

// NotFoundError reports that no post exists for the requested slug.
type NotFoundError struct {
	Slug string
}

func (e *NotFoundError) Error() string {
	if e == nil || e.Slug == "" {
		return ErrNotFound.Error()
	}
	return fmt.Sprintf("%s: slug=%s", ErrNotFound.Error(), e.Slug)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// ReadError tags I/O failures while loading a post source. The post may
// exist but could not be read; boundaries that must preserve the uniform
// missing-resource contract map this to not-found while keeping the detail
// available for logs.
type ReadError struct {
	Slug string
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("posts: read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// ParseError tags malformed sources: a frontmatter block that does not
// parse, or a body the renderer rejects.
type ParseError struct {
	Slug string
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("posts: parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
