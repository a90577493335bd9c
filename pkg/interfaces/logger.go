package interfaces

import "context"

// Logger is the leveled logging surface used throughout the blog. The method
// set matches github.com/goliatone/go-logger, so hosts already running that
// stack can hand their logger in directly; anything else adapts in one type.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithContext(ctx context.Context) Logger
}

// LoggerProvider hands out loggers by name. Providers may scope children per
// name ("blog.posts", "blog.covers") or return one shared instance.
type LoggerProvider interface {
	GetLogger(name string) Logger
}

// FieldsLogger is an optional extension: implementations return a logger
// that repeats the supplied fields on every entry.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}
