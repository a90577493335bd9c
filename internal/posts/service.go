package posts

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-blog/internal/identity"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Service exposes the post pipeline use-cases.
type Service interface {
	// List enumerates every post's metadata in reverse chronological order.
	List(ctx context.Context) ([]*PostMeta, error)
	// Get resolves one post by slug and renders its body to HTML.
	Get(ctx context.Context, slug string) (*Post, error)
	// Create scaffolds a new post source from a title and returns its
	// location on disk.
	Create(ctx context.Context, title string) (Entry, error)
}

// IDGenerator derives a stable identifier for a slug.
type IDGenerator func(slug string) uuid.UUID

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp default dates.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithIDGenerator overrides how post identifiers are derived from slugs.
func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithParser replaces the Markdown parser used for detail rendering.
func WithParser(parser interfaces.MarkdownParser) ServiceOption {
	return func(s *service) {
		if parser != nil {
			s.parser = parser
		}
	}
}

// WithParseOptions sets the rendering options applied to post bodies. The
// zero value enables the extended dialect (tables, strikethrough, autolinks,
// task lists) with raw HTML passthrough; set Sanitize to scrub it.
func WithParseOptions(opts interfaces.ParseOptions) ServiceOption {
	return func(s *service) {
		s.parseOpts = opts
	}
}

// WithLogger attaches a logger for skip-and-continue diagnostics.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// service implements Service.
type service struct {
	store     *Store
	parser    interfaces.MarkdownParser
	parseOpts interfaces.ParseOptions
	now       func() time.Time
	id        IDGenerator
	logger    interfaces.Logger
}

// NewService constructs the post pipeline over the supplied store.
func NewService(store *Store, opts ...ServiceOption) Service {
	s := &service{
		store:  store,
		parser: markdown.NewGoldmarkParser(interfaces.ParseOptions{}),
		now:    time.Now,
		id:     identity.PostUUID,
		logger: logging.NoOp(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// List enumerates content files, extracts metadata (bodies stay unrendered),
// and sorts descending by the raw date string. A file that cannot be read or
// parsed is skipped with a warning; one corrupt post never aborts the
// listing. An absent content root bootstraps to an empty listing.
func (s *service) List(ctx context.Context) ([]*PostMeta, error) {
	entries, err := s.store.Entries(ctx)
	if err != nil {
		return nil, err
	}

	metas := make([]*PostMeta, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := s.store.Read(ctx, entry)
		if err != nil {
			s.logger.Warn("listing skipped unreadable post", "path", entry.Path, "error", err)
			continue
		}

		fm, _, err := markdown.ParseFrontMatter(data)
		if err != nil {
			s.logger.Warn("listing skipped malformed post", "path", entry.Path, "error", err)
			continue
		}

		metas = append(metas, s.metadata(entry.Slug, fm))
	}

	// Lexical comparison on the raw string; ties keep enumeration order.
	sort.SliceStable(metas, func(i, j int) bool {
		return metas[i].Date > metas[j].Date
	})

	return metas, nil
}

// Get re-reads and re-parses the slug's source on every call; nothing is
// cached. Failures are tagged: missing file or invalid slug yields
// *NotFoundError, unreadable files *ReadError, malformed sources
// *ParseError.
func (s *service) Get(ctx context.Context, slug string) (*Post, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrSlugRequired
	}
	if !IsValidSlug(slug) {
		// No well-formed post can carry this slug; skip the filesystem.
		return nil, &NotFoundError{Slug: slug}
	}

	path, err := s.store.PathFor(slug)
	if err != nil {
		return nil, &NotFoundError{Slug: slug}
	}

	data, err := s.store.ReadSlug(ctx, slug)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Slug: slug}
		}
		if errors.Is(err, ErrSlugInvalid) || errors.Is(err, ErrSlugRequired) {
			return nil, &NotFoundError{Slug: slug}
		}
		return nil, &ReadError{Slug: slug, Path: path, Err: err}
	}

	fm, body, err := markdown.ParseFrontMatter(data)
	if err != nil {
		return nil, &ParseError{Slug: slug, Path: path, Err: err}
	}

	html, err := s.parser.ParseWithOptions(body, s.parseOpts)
	if err != nil {
		return nil, &ParseError{Slug: slug, Path: path, Err: err}
	}

	return &Post{
		PostMeta: *s.metadata(slug, fm),
		HTML:     string(html),
	}, nil
}

// Create derives the slug from the title, composes a frontmatter-only
// source stamped with the clock's current date, and writes it under the
// content root. The body is left empty for the author. Existing files are
// never overwritten, so re-running an authoring command cannot destroy a
// drafted post.
func (s *service) Create(ctx context.Context, title string) (Entry, error) {
	select {
	case <-ctx.Done():
		return Entry{}, ctx.Err()
	default:
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return Entry{}, ErrTitleRequired
	}

	slug, err := NormalizeSlug(title)
	if err != nil || slug == "" {
		return Entry{}, fmt.Errorf("%w: cannot derive a slug from %q", ErrSlugInvalid, title)
	}

	fm := interfaces.FrontMatter{
		Title: title,
		Date:  s.now().UTC().Format(DateLayout),
	}
	source, err := markdown.ComposeSource(fm, nil)
	if err != nil {
		return Entry{}, err
	}

	entry, err := s.store.Create(ctx, slug, source)
	if err != nil {
		return Entry{}, err
	}

	s.logger.Info("post scaffolded", "slug", entry.Slug, "path", entry.Path, "date", fm.Date)
	return entry, nil
}

// metadata applies the documented defaults so the returned structure is
// never partially populated: title falls back to the slug, date to the
// current day in the canonical layout, excerpt to the empty string.
func (s *service) metadata(slug string, fm interfaces.FrontMatter) *PostMeta {
	meta := &PostMeta{
		ID:      s.id(slug),
		Slug:    slug,
		Title:   strings.TrimSpace(fm.Title),
		Date:    strings.TrimSpace(fm.Date),
		Excerpt: fm.Excerpt,
		Image:   strings.TrimSpace(fm.Image),
	}

	if meta.Title == "" {
		meta.Title = slug
	}
	if meta.Date == "" {
		meta.Date = s.now().UTC().Format(DateLayout)
	} else if !ValidDate(meta.Date) {
		s.logger.Warn("post date is not in the sortable layout", "slug", slug, "date", meta.Date)
	}

	return meta
}
