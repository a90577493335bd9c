package console_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/logging/console"
)

func TestConsoleLogger_WritesStructuredEntry(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2024, 3, 14, 15, 9, 26, 535897000, time.UTC)

	minLevel := console.LevelDebug
	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		TimeFunc: func() time.Time { return now },
		MinLevel: &minLevel,
	})

	logger := provider.GetLogger("blog.posts")
	logger = logger.WithFields(map[string]any{"module": "blog.posts"})
	ctx := logging.ContextWithFields(context.Background(), map[string]any{
		"correlation_id": "req-1234",
	})
	logger = logger.WithContext(ctx)

	postID := uuid.MustParse("8a51a9b1-2d30-4b2c-8ecd-2c0b87dfa999")
	logger.Info("post.loaded",
		"post_id", postID,
		"published_at", time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC),
	)

	got := strings.TrimSpace(buf.String())
	want := "2024-03-14T15:09:26.535897Z INFO post.loaded correlation_id=req-1234 logger=blog.posts module=blog.posts post_id=8a51a9b1-2d30-4b2c-8ecd-2c0b87dfa999 published_at=2024-03-15T08:00:00Z"
	if got != want {
		t.Fatalf("unexpected log entry\nwant: %s\ngot:  %s", want, got)
	}
}

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	minLevel := console.LevelInfo
	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		TimeFunc: time.Now,
		MinLevel: &minLevel,
	})

	logger := provider.GetLogger("blog.test")
	logger.Debug("ignored.debug", "foo", "bar")
	logger.Info("included.info", "foo", "bar")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected single log line, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "included.info") {
		t.Fatalf("expected info log to be written, got %s", lines[0])
	}
	if strings.Contains(lines[0], "ignored.debug") {
		t.Fatalf("unexpected debug log present: %s", lines[0])
	}
}

func TestConsoleLogger_QuotesAwkwardValues(t *testing.T) {
	var buf bytes.Buffer
	provider := console.NewProvider(console.Options{Writer: &buf, TimeFunc: time.Now})

	logger := provider.GetLogger("blog.test")
	logger.Info("entry",
		"message", "two words",
		"empty", "",
		"pair", "a=b",
	)

	line := strings.TrimSpace(buf.String())
	if !strings.Contains(line, `message="two words"`) {
		t.Fatalf("expected spaced value quoted, got %s", line)
	}
	if !strings.Contains(line, `empty=""`) {
		t.Fatalf("expected empty value quoted, got %s", line)
	}
	if !strings.Contains(line, `pair="a=b"`) {
		t.Fatalf("expected value with '=' quoted, got %s", line)
	}
}

func TestConsoleLogger_KeepsDanglingArguments(t *testing.T) {
	var buf bytes.Buffer
	provider := console.NewProvider(console.Options{Writer: &buf, TimeFunc: time.Now})

	provider.GetLogger("blog.test").Info("entry", "key", "value", "dangling")

	line := strings.TrimSpace(buf.String())
	if !strings.Contains(line, "key=value") {
		t.Fatalf("expected paired argument kept, got %s", line)
	}
	if !strings.Contains(line, "arg1=dangling") {
		t.Fatalf("expected trailing argument preserved positionally, got %s", line)
	}
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		name string
		want console.Level
		ok   bool
	}{
		{"trace", console.LevelTrace, true},
		{"DEBUG", console.LevelDebug, true},
		{" warn ", console.LevelWarn, true},
		{"warning", console.LevelWarn, true},
		{"verbose", console.LevelInfo, false},
	}
	for _, tc := range cases {
		got, ok := console.ParseLevel(tc.name)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ParseLevel(%q) = %v,%v want %v,%v", tc.name, got, ok, tc.want, tc.ok)
		}
	}
}
