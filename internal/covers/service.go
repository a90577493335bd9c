package covers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/fogleman/gg"

	"github.com/goliatone/go-blog/internal/identity"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

const (
	defaultOutputDir = "public/covers"
	defaultURLPrefix = "/covers"
)

// ErrPartialFailure reports that a batch finished but some posts could not
// be covered. Callers decide whether that is fatal; the CLI exits non-zero.
var ErrPartialFailure = errors.New("covers: batch completed with failures")

// Failure records one post the batch could not cover.
type Failure struct {
	Slug string
	Path string
	Err  error
}

// Result summarises a batch run. In dry-run mode Generated lists the posts
// that would receive a cover.
type Result struct {
	Generated []string
	Skipped   []string
	Failed    []Failure
}

// Err reports ErrPartialFailure when any post failed, nil otherwise.
func (r *Result) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}
	total := len(r.Generated) + len(r.Skipped) + len(r.Failed)
	return fmt.Errorf("%w: %d of %d posts", ErrPartialFailure, len(r.Failed), total)
}

// Config controls where covers land and how the overlay reads.
type Config struct {
	// OutputDir receives the rendered PNG files.
	OutputDir string
	// URLPrefix is the public path written into post front matter.
	URLPrefix string
	// Width and Height size the canvas; zero means the 1200x630 default.
	Width  int
	Height int
	// Title and Tagline are painted over the art when set.
	Title   string
	Tagline string
	// FontPath points the overlay at a TTF file.
	FontPath string
}

// GenerateOptions tune a single batch run.
type GenerateOptions struct {
	// Dir overrides the content root for this run.
	Dir string
	// Force regenerates covers for posts that already declare an image.
	Force bool
	// DryRun analyses and reports without writing files.
	DryRun bool
}

// Service runs cover generation batches.
type Service interface {
	Generate(ctx context.Context, opts GenerateOptions) (*Result, error)
}

// ServiceOption configures optional collaborators.
type ServiceOption func(*service)

// WithLogger wires the batch to the host logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithArtist swaps the renderer, mainly for tests.
func WithArtist(artist *Artist) ServiceOption {
	return func(s *service) {
		if artist != nil {
			s.artist = artist
		}
	}
}

type service struct {
	store  *posts.Store
	cfg    Config
	artist *Artist
	logger interfaces.Logger
}

// NewService builds a batch service over the given content store.
func NewService(store *posts.Store, cfg Config, opts ...ServiceOption) Service {
	if cfg.OutputDir == "" {
		cfg.OutputDir = defaultOutputDir
	}
	if cfg.URLPrefix == "" {
		cfg.URLPrefix = defaultURLPrefix
	}

	s := &service{
		store: store,
		cfg:   cfg,
		artist: NewArtist(
			WithSize(cfg.Width, cfg.Height),
			WithOverlay(cfg.Title, cfg.Tagline),
			WithFontPath(cfg.FontPath),
		),
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Generate walks every post source, renders covers for the ones without an
// image, and rewrites their front matter to reference the new file. A post
// that fails is recorded and the batch moves on.
func (s *service) Generate(ctx context.Context, opts GenerateOptions) (*Result, error) {
	store := s.store
	if opts.Dir != "" {
		store = posts.NewStore(posts.StoreConfig{Root: opts.Dir})
	}

	entries, err := store.Entries(ctx)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	if !opts.DryRun && len(entries) > 0 {
		if err := os.MkdirAll(s.cfg.OutputDir, 0o755); err != nil {
			return nil, fmt.Errorf("covers: create output dir %s: %w", s.cfg.OutputDir, err)
		}
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		raw, err := store.Read(ctx, entry)
		if err != nil {
			s.fail(result, entry, err)
			continue
		}
		fm, body, err := markdown.ParseFrontMatter(raw)
		if err != nil {
			s.fail(result, entry, err)
			continue
		}

		if fm.Image != "" && !opts.Force {
			s.logger.Debug("cover generation skipped",
				"slug", entry.Slug,
				"image", fm.Image,
			)
			result.Skipped = append(result.Skipped, entry.Slug)
			continue
		}

		// The batch rewrites the source file, so unlike the read path it
		// refuses to reproduce a date that would break lexical ordering.
		if fm.Date != "" && !posts.ValidDate(fm.Date) {
			s.fail(result, entry, fmt.Errorf("covers: date %q is not in the %s layout", fm.Date, posts.DateLayout))
			continue
		}

		analysis := Analyze(string(body))
		visual := MapVisual(analysis)

		if opts.DryRun {
			s.logger.Info("cover dry run",
				"slug", entry.Slug,
				"style", string(visual.Style),
				"hash", analysis.Hash,
			)
			result.Generated = append(result.Generated, entry.Slug)
			continue
		}

		imagePath := filepath.Join(s.cfg.OutputDir, entry.Slug+".png")
		img, err := s.artist.Render(visual)
		if err != nil {
			s.fail(result, entry, err)
			continue
		}
		if err := gg.SavePNG(imagePath, img); err != nil {
			s.fail(result, entry, fmt.Errorf("covers: save %s: %w", imagePath, err))
			continue
		}

		fm.Image = path.Join(s.cfg.URLPrefix, entry.Slug+".png")
		source, err := markdown.ComposeSource(fm, body)
		if err != nil {
			s.fail(result, entry, err)
			continue
		}
		if err := store.Write(ctx, entry, source); err != nil {
			s.fail(result, entry, err)
			continue
		}

		result.Generated = append(result.Generated, entry.Slug)
		s.logger.Info("cover generated",
			"slug", entry.Slug,
			"cover_id", identity.CoverUUID(entry.Slug).String(),
			"style", string(visual.Style),
			"path", imagePath,
		)
	}

	return result, nil
}

func (s *service) fail(result *Result, entry posts.Entry, err error) {
	s.logger.Error("cover generation failed",
		"slug", entry.Slug,
		"path", entry.Path,
		"error", err,
	)
	result.Failed = append(result.Failed, Failure{
		Slug: entry.Slug,
		Path: entry.Path,
		Err:  err,
	})
}
