package console

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Level represents the severity attached to a log entry.
type Level uint8

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var levelNames = [...]string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR", "FATAL"}

// String renders the severity label used in console output.
func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return levelNames[LevelInfo]
}

// ParseLevel maps a case-insensitive level name to its Level. The second
// return value reports whether the name was recognised.
func ParseLevel(name string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return LevelTrace, true
	case "debug":
		return LevelDebug, true
	case "info":
		return LevelInfo, true
	case "warn", "warning":
		return LevelWarn, true
	case "error":
		return LevelError, true
	case "fatal":
		return LevelFatal, true
	default:
		return LevelInfo, false
	}
}

// Options configures the console logger provider. Zero values fall back to
// stdout, the wall clock, and a DEBUG floor.
type Options struct {
	Writer   io.Writer
	TimeFunc func() time.Time
	MinLevel *Level
}

// sink is the shared write end behind every logger the provider hands out.
// The mutex keeps concurrent entries from interleaving mid-line.
type sink struct {
	mu    sync.Mutex
	out   io.Writer
	now   func() time.Time
	floor Level
}

// NewProvider builds a console-backed provider for hosts that do not bring
// their own logging stack. Entries are one line each: UTC timestamp, level,
// message, then sorted key=value fields.
func NewProvider(opts Options) interfaces.LoggerProvider {
	s := &sink{
		out:   opts.Writer,
		now:   opts.TimeFunc,
		floor: LevelDebug,
	}
	if s.out == nil {
		s.out = os.Stdout
	}
	if s.now == nil {
		s.now = time.Now
	}
	if opts.MinLevel != nil {
		s.floor = *opts.MinLevel
	}
	return s
}

func (s *sink) GetLogger(name string) interfaces.Logger {
	return &entryWriter{
		sink: s,
		base: map[string]any{"logger": name},
	}
}

// entryWriter is an immutable view over the sink: WithFields and WithContext
// return copies, so handing a logger to another goroutine is safe.
type entryWriter struct {
	sink *sink
	base map[string]any
	ctx  context.Context
}

var (
	_ interfaces.Logger       = (*entryWriter)(nil)
	_ interfaces.FieldsLogger = (*entryWriter)(nil)
)

func (w *entryWriter) Trace(msg string, args ...any) { w.emit(LevelTrace, msg, args) }
func (w *entryWriter) Debug(msg string, args ...any) { w.emit(LevelDebug, msg, args) }
func (w *entryWriter) Info(msg string, args ...any)  { w.emit(LevelInfo, msg, args) }
func (w *entryWriter) Warn(msg string, args ...any)  { w.emit(LevelWarn, msg, args) }
func (w *entryWriter) Error(msg string, args ...any) { w.emit(LevelError, msg, args) }
func (w *entryWriter) Fatal(msg string, args ...any) { w.emit(LevelFatal, msg, args) }

func (w *entryWriter) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return w
	}
	merged := make(map[string]any, len(w.base)+len(fields))
	for key, value := range w.base {
		merged[key] = value
	}
	for key, value := range fields {
		merged[key] = value
	}
	return &entryWriter{sink: w.sink, base: merged, ctx: w.ctx}
}

func (w *entryWriter) WithContext(ctx context.Context) interfaces.Logger {
	next := *w
	next.ctx = ctx
	return &next
}

func (w *entryWriter) emit(level Level, msg string, args []any) {
	s := w.sink
	if s == nil || level < s.floor {
		return
	}

	fields := make(map[string]any, len(w.base)+len(args)/2+2)
	for key, value := range w.base {
		fields[key] = value
	}
	for key, value := range logging.ContextFields(w.ctx) {
		fields[key] = value
	}
	mergePairs(fields, args)

	line := render(s.now().UTC(), level, msg, fields)

	s.mu.Lock()
	// Best effort: a failed diagnostic write must not fail the caller.
	_, _ = s.out.Write(line)
	s.mu.Unlock()
}

// mergePairs folds variadic key/value arguments into fields. A trailing value
// without a key, or a key that is not a string, lands under a positional name
// so nothing is silently dropped.
func mergePairs(fields map[string]any, args []any) {
	for i := 0; i < len(args); i += 2 {
		if i+1 == len(args) {
			fields["arg"+strconv.Itoa(i/2)] = args[i]
			return
		}
		if key, ok := args[i].(string); ok && key != "" {
			fields[key] = args[i+1]
			continue
		}
		fields["arg"+strconv.Itoa(i/2)] = args[i+1]
	}
}

func render(ts time.Time, level Level, msg string, fields map[string]any) []byte {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.Grow(64 + len(msg) + 16*len(keys))
	buf.WriteString(ts.Format(time.RFC3339Nano))
	buf.WriteByte(' ')
	buf.WriteString(level.String())
	buf.WriteByte(' ')
	buf.WriteString(msg)
	for _, key := range keys {
		buf.WriteByte(' ')
		buf.WriteString(key)
		buf.WriteByte('=')
		buf.WriteString(scalar(fields[key]))
	}
	buf.WriteByte('\n')
	return buf.Bytes()
}

// scalar renders one field value. Times normalise to UTC RFC3339 so entries
// collate no matter which zone produced them.
func scalar(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return quote(v)
	case time.Time:
		return quote(v.UTC().Format(time.RFC3339Nano))
	case *time.Time:
		if v == nil {
			return "null"
		}
		return quote(v.UTC().Format(time.RFC3339Nano))
	case error:
		return quote(v.Error())
	case fmt.Stringer:
		return quote(v.String())
	default:
		return quote(fmt.Sprint(v))
	}
}

// quote wraps values containing whitespace, control bytes, or '=' so a line
// stays splittable on spaces.
func quote(value string) string {
	if value == "" {
		return `""`
	}
	for _, r := range value {
		if r <= ' ' || r == '=' {
			return strconv.Quote(value)
		}
	}
	return value
}
