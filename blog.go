// Package blog assembles the post pipeline, quote proxy, and cover batch
// into one runtime facade. Content is a directory of markdown files read
// fresh on every request; there is no database and no cache.
package blog

import (
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-blog/internal/covers"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/logging/console"
	"github.com/goliatone/go-blog/internal/logging/gologger"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/internal/quotes"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// PostService exports the post pipeline contract for consumers of the blog package.
type PostService = posts.Service

// QuoteService exports the quote proxy contract.
type QuoteService = quotes.Service

// CoverService exports the cover batch contract.
type CoverService = covers.Service

// CoverGenerateOptions exports the batch tuning knobs.
type CoverGenerateOptions = covers.GenerateOptions

// CoverResult exports the batch outcome record.
type CoverResult = covers.Result

// PostMeta exports the listing DTO.
type PostMeta = posts.PostMeta

// Post exports the detail DTO.
type Post = posts.Post

// Option overrides module wiring; the seams exist mostly for tests.
type Option func(*Module)

// WithLoggerProvider replaces the provider built from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(m *Module) {
		if provider != nil {
			m.provider = provider
		}
	}
}

// WithClock overrides the clock posts use to default missing dates.
func WithClock(clock func() time.Time) Option {
	return func(m *Module) {
		m.clock = clock
	}
}

// WithParser replaces the markdown parser built from Config.Markdown.
func WithParser(parser interfaces.MarkdownParser) Option {
	return func(m *Module) {
		m.parser = parser
	}
}

// WithHTTPClient overrides the client the quote proxy calls upstream with.
func WithHTTPClient(client *http.Client) Option {
	return func(m *Module) {
		m.client = client
	}
}

// Module is the top level blog runtime facade.
type Module struct {
	cfg      Config
	provider interfaces.LoggerProvider
	clock    func() time.Time
	parser   interfaces.MarkdownParser
	client   *http.Client

	store  *posts.Store
	posts  posts.Service
	quotes quotes.Service
	covers covers.Service
}

// New validates cfg and wires the services. The content root is created if
// it does not exist yet.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Module{cfg: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	if m.provider == nil {
		provider, err := buildLoggerProvider(cfg.Logging)
		if err != nil {
			return nil, err
		}
		m.provider = provider
	}

	parseOpts := interfaces.ParseOptions{
		Extensions: cfg.Markdown.Extensions,
		Sanitize:   cfg.Markdown.Sanitize,
		HardWraps:  cfg.Markdown.HardWraps,
		SafeMode:   cfg.Markdown.SafeMode,
	}
	if m.parser == nil {
		m.parser = markdown.NewGoldmarkParser(parseOpts)
	}

	m.store = posts.NewStore(posts.StoreConfig{Root: cfg.Content.Root})

	postOpts := []posts.ServiceOption{
		posts.WithParser(m.parser),
		posts.WithParseOptions(parseOpts),
		posts.WithLogger(logging.PostsLogger(m.provider)),
	}
	if m.clock != nil {
		postOpts = append(postOpts, posts.WithClock(m.clock))
	}
	m.posts = posts.NewService(m.store, postOpts...)

	if cfg.Quotes.Enabled {
		quoteOpts := []quotes.ServiceOption{
			quotes.WithLogger(logging.QuotesLogger(m.provider)),
		}
		if m.client != nil {
			quoteOpts = append(quoteOpts, quotes.WithHTTPClient(m.client))
		}
		m.quotes = quotes.NewService(quotes.Config{
			URL:     cfg.Quotes.URL,
			Timeout: cfg.Quotes.Timeout,
		}, quoteOpts...)
	}

	m.covers = covers.NewService(m.store, covers.Config{
		OutputDir: cfg.Covers.OutputDir,
		URLPrefix: cfg.Covers.URLPrefix,
		Width:     cfg.Covers.Width,
		Height:    cfg.Covers.Height,
		Title:     cfg.Site.Title,
		Tagline:   cfg.Site.Tagline,
		FontPath:  cfg.Covers.FontPath,
	}, covers.WithLogger(logging.CoversLogger(m.provider)))

	return m, nil
}

// Config returns the configuration the module was built with.
func (m *Module) Config() Config {
	return m.cfg
}

// Posts returns the configured post service.
func (m *Module) Posts() PostService {
	if m == nil {
		return nil
	}
	return m.posts
}

// Quotes returns the quote proxy, nil when quotes are disabled.
func (m *Module) Quotes() QuoteService {
	if m == nil {
		return nil
	}
	return m.quotes
}

// Covers returns the cover batch service.
func (m *Module) Covers() CoverService {
	if m == nil {
		return nil
	}
	return m.covers
}

// Markdown returns the parser posts render with.
func (m *Module) Markdown() interfaces.MarkdownParser {
	if m == nil {
		return nil
	}
	return m.parser
}

// LoggerProvider exposes the provider so callers can namespace their own loggers.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	if m == nil {
		return nil
	}
	return m.provider
}

func buildLoggerProvider(cfg LoggingConfig) (interfaces.LoggerProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "gologger":
		return gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
	default:
		opts := console.Options{}
		if level, ok := console.ParseLevel(cfg.Level); ok {
			opts.MinLevel = &level
		}
		return console.NewProvider(opts), nil
	}
}
