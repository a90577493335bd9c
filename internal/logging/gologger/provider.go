package gologger

import (
	"context"
	"fmt"
	"sort"
	"strings"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Config captures the options exposed by the go-logger adapter.
type Config struct {
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// Provider wraps go-logger so it satisfies the blog logging interfaces.
type Provider struct {
	root *glog.BaseLogger
}

// glogLevels maps config level names onto go-logger's level identifiers.
var glogLevels = map[string]string{
	"trace":   glog.Trace,
	"debug":   glog.Debug,
	"info":    glog.Info,
	"warn":    glog.Warn,
	"warning": glog.Warn,
	"error":   glog.Error,
	"fatal":   glog.Fatal,
}

// NewProvider constructs a logger provider backed by go-logger. Hosts that
// already run go-logger get structured output consistent with the rest of
// their process; everyone else can stay on the console provider.
func NewProvider(cfg Config) (*Provider, error) {
	formatOpt, err := formatOption(cfg.Format)
	if err != nil {
		return nil, err
	}

	options := []glog.Option{formatOpt}
	if level, ok := glogLevels[strings.ToLower(strings.TrimSpace(cfg.Level))]; ok {
		options = append(options, glog.WithLevel(level))
	}
	if cfg.AddSource {
		options = append(options, glog.WithAddSource(true))
	}

	root := glog.NewLogger(options...)

	var focus []string
	for _, name := range cfg.Focus {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			focus = append(focus, trimmed)
		}
	}
	if len(focus) > 0 {
		root.Focus(focus...)
	}

	return &Provider{root: root}, nil
}

func formatOption(format string) (glog.Option, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		return glog.WithLoggerTypeJSON(), nil
	case "console":
		return glog.WithLoggerTypeConsole(), nil
	case "pretty":
		return glog.WithLoggerTypePretty(), nil
	default:
		return nil, fmt.Errorf("logging: unsupported go-logger format %q", format)
	}
}

// GetLogger satisfies interfaces.LoggerProvider by adapting go-logger child loggers.
func (p *Provider) GetLogger(name string) interfaces.Logger {
	if p == nil {
		return logging.NoOp()
	}
	if name = strings.TrimSpace(name); name == "" {
		return adapt(p.root)
	}
	return adapt(p.root.GetLogger(name))
}

// adapt bridges a go-logger Logger into the blog logging contract.
func adapt(inner glog.Logger) interfaces.Logger {
	if inner == nil {
		return logging.NoOp()
	}
	return &bridge{inner: inner}
}

type bridge struct {
	inner glog.Logger
}

func (b *bridge) Trace(msg string, args ...any) { b.inner.Trace(msg, args...) }
func (b *bridge) Debug(msg string, args ...any) { b.inner.Debug(msg, args...) }
func (b *bridge) Info(msg string, args ...any)  { b.inner.Info(msg, args...) }
func (b *bridge) Warn(msg string, args ...any)  { b.inner.Warn(msg, args...) }
func (b *bridge) Error(msg string, args ...any) { b.inner.Error(msg, args...) }
func (b *bridge) Fatal(msg string, args ...any) { b.inner.Fatal(msg, args...) }

func (b *bridge) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return b
	}

	if with, ok := b.inner.(glog.FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		for key, value := range fields {
			copied[key] = value
		}
		return adapt(with.WithFields(copied))
	}

	// Fall back to With on implementations without a fields surface. Pairs go
	// in sorted so repeated calls produce identical prefixes.
	if with, ok := b.inner.(interface{ With(...any) *glog.BaseLogger }); ok {
		return adapt(with.With(pairs(fields)...))
	}
	return b
}

func (b *bridge) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return b
	}
	return adapt(b.inner.WithContext(ctx))
}

func pairs(fields map[string]any) []any {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	args := make([]any, 0, 2*len(keys))
	for _, key := range keys {
		args = append(args, key, fields[key])
	}
	return args
}
