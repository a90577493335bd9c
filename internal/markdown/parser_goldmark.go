package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// extenders maps configuration names onto goldmark extensions. "gfm" is a
// meta profile that already covers tables, strikethrough, linkify, and task
// lists; the individual names exist so configs can cherry-pick.
var extenders = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
}

// defaultProfile is the dialect posts are written in when the config names no
// extensions of its own.
var defaultProfile = []string{"gfm", "linkify", "tasklist"}

// GoldmarkParser implements interfaces.MarkdownParser on the goldmark engine.
// The engine for the default options is compiled once at construction; both
// it and the parser are safe for concurrent use. Rendering is deterministic:
// the same source and options always produce the same HTML.
type GoldmarkParser struct {
	engine goldmark.Markdown
}

// NewGoldmarkParser constructs a parser whose defaults apply to every Parse
// call. Per-call overrides go through ParseWithOptions.
func NewGoldmarkParser(defaults interfaces.ParseOptions) *GoldmarkParser {
	return &GoldmarkParser{engine: compile(defaults)}
}

// Parse renders Markdown into HTML using the parser's default configuration.
func (p *GoldmarkParser) Parse(source []byte) ([]byte, error) {
	return convert(p.engine, source)
}

// ParseWithOptions renders Markdown into HTML using the provided options.
func (p *GoldmarkParser) ParseWithOptions(source []byte, opts interfaces.ParseOptions) ([]byte, error) {
	return convert(compile(opts), source)
}

func convert(engine goldmark.Markdown, source []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := engine.Convert(source, &buf); err != nil {
		return nil, fmt.Errorf("markdown parse: %w", err)
	}
	return buf.Bytes(), nil
}

// compile translates parse options into a goldmark engine. Unknown extension
// names are ignored rather than rejected so configs stay forward compatible.
func compile(opts interfaces.ParseOptions) goldmark.Markdown {
	names := opts.Extensions
	if len(names) == 0 {
		names = defaultProfile
	}

	var exts []goldmark.Extender
	seen := map[string]bool{}
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		if ext, ok := extenders[key]; ok {
			exts = append(exts, ext)
		}
	}

	var rendererOpts []renderer.Option
	if opts.HardWraps {
		rendererOpts = append(rendererOpts, html.WithHardWraps())
	}
	// Raw HTML passthrough is a trust decision: post sources are authored
	// locally, so it stays enabled unless SafeMode or Sanitize asks goldmark
	// to escape instead.
	if !opts.SafeMode && !opts.Sanitize {
		rendererOpts = append(rendererOpts, html.WithUnsafe())
	}

	engineOpts := []goldmark.Option{
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithExtensions(exts...),
	}
	if len(rendererOpts) > 0 {
		engineOpts = append(engineOpts, goldmark.WithRendererOptions(rendererOpts...))
	}

	return goldmark.New(engineOpts...)
}
