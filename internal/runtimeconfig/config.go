package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrSiteTitleRequired rejects a blank site identity.
var ErrSiteTitleRequired = errors.New("blog config: site title is required")

// ErrContentRootRequired rejects a blank content directory.
var ErrContentRootRequired = errors.New("blog config: content root is required")

// ErrServerAddrRequired rejects a blank listen address.
var ErrServerAddrRequired = errors.New("blog config: server listen address is required")

// ErrCoverSizeInvalid keeps cover dimensions positive; zero means default.
var ErrCoverSizeInvalid = errors.New("blog config: cover dimensions must be zero or positive")

var ErrQuotesURLRequired = errors.New("blog config: quotes upstream url is required when quotes are enabled")
var ErrQuotesTimeoutInvalid = errors.New("blog config: quotes timeout must be zero or positive")
var ErrLoggingProviderRequired = errors.New("blog config: logging provider is required")
var ErrLoggingProviderUnknown = errors.New("blog config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("blog config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("blog config: logging format is invalid")

// Config aggregates runtime settings for the blog module. Fields use simple
// types so host applications and file loaders can populate them directly.
type Config struct {
	Site     SiteConfig
	Content  ContentConfig
	Markdown MarkdownConfig
	Covers   CoversConfig
	Quotes   QuotesConfig
	Server   ServerConfig
	Theme    ThemeConfig
	Logging  LoggingConfig
}

// SiteConfig names the blog and anchors canonical URLs.
type SiteConfig struct {
	Title   string
	Tagline string
	// BaseURL prefixes permalinks; empty keeps URLs site relative.
	BaseURL string
}

// ContentConfig locates the post sources.
type ContentConfig struct {
	// Root is the directory of <slug>.md files.
	Root string
}

// MarkdownConfig mirrors interfaces.ParseOptions for runtime configuration.
type MarkdownConfig struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// CoversConfig drives the generative cover batch.
type CoversConfig struct {
	// OutputDir receives rendered PNG files.
	OutputDir string
	// URLPrefix is the public path written into post front matter and the
	// static mount the server exposes.
	URLPrefix string
	Width     int
	Height    int
	// FontPath points the text overlay at a TTF file; empty skips text.
	FontPath string
}

// QuotesConfig wires the quote proxy endpoint.
type QuotesConfig struct {
	Enabled bool
	URL     string
	Timeout time.Duration
}

// ServerConfig captures HTTP listener settings.
type ServerConfig struct {
	Addr string
	// BasePath roots the JSON API, default /api.
	BasePath string
}

// ThemeConfig locates an optional go-theme bundle for the HTML pages.
type ThemeConfig struct {
	Dir               string
	Name              string
	Variant           string
	CSSVariablePrefix string
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns the defaults a fresh blog starts from. The site
// identity doubles as the cover overlay text.
func DefaultConfig() Config {
	return Config{
		Site: SiteConfig{
			Title:   "Peter's Bookstore",
			Tagline: "I write about thoughts, stories, and ideas.",
		},
		Content: ContentConfig{
			Root: "content/posts",
		},
		Markdown: MarkdownConfig{},
		Covers: CoversConfig{
			OutputDir: "public/covers",
			URLPrefix: "/covers",
			Width:     1200,
			Height:    630,
		},
		Quotes: QuotesConfig{
			Enabled: true,
			URL:     "https://zenquotes.io/api/random",
			Timeout: 5 * time.Second,
		},
		Server: ServerConfig{
			Addr:     ":8080",
			BasePath: "/api",
		},
		Theme: ThemeConfig{
			CSSVariablePrefix: "blog",
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Site.Title) == "" {
		return ErrSiteTitleRequired
	}
	if strings.TrimSpace(cfg.Content.Root) == "" {
		return ErrContentRootRequired
	}
	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return ErrServerAddrRequired
	}
	if cfg.Covers.Width < 0 || cfg.Covers.Height < 0 {
		return ErrCoverSizeInvalid
	}
	if cfg.Quotes.Enabled {
		if strings.TrimSpace(cfg.Quotes.URL) == "" {
			return ErrQuotesURLRequired
		}
		if cfg.Quotes.Timeout < 0 {
			return ErrQuotesTimeoutInvalid
		}
	}

	provider := normalizeProvider(cfg.Logging.Provider)
	if provider == "" {
		return ErrLoggingProviderRequired
	}
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
