package posts

import (
	"context"
	"errors"
	"os"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

var testClock = func() time.Time {
	return time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)
}

func TestListAppliesDefaults(t *testing.T) {
	svc, root := newTestService(t)
	writeSource(t, root, "untitled.md", "just a body, no frontmatter\n")

	metas, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(metas) != 1 {
		t.Fatalf("expected 1 post, got %d", len(metas))
	}

	meta := metas[0]
	if meta.Title != "untitled" {
		t.Fatalf("expected title to default to slug, got %q", meta.Title)
	}
	if meta.Date != "2025-03-01" {
		t.Fatalf("expected date to default to the clock's day, got %q", meta.Date)
	}
	if meta.Excerpt != "" {
		t.Fatalf("expected empty excerpt, got %q", meta.Excerpt)
	}
	if meta.Image != "" {
		t.Fatalf("expected absent image, got %q", meta.Image)
	}
	if meta.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Fatal("expected a stable non-nil post ID")
	}
}

func TestListReturnsDeclaredMetadata(t *testing.T) {
	svc, root := newTestService(t)
	writeSource(t, root, "hello.md", "---\ntitle: \"Hello\"\ndate: \"2025-01-01\"\nexcerpt: \"greeting\"\nimage: \"https://cdn.example.com/hello.png\"\n---\n\n# Hi there\n")

	metas, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(metas) != 1 {
		t.Fatalf("expected 1 post, got %d", len(metas))
	}

	meta := metas[0]
	if meta.Title != "Hello" || meta.Date != "2025-01-01" || meta.Excerpt != "greeting" {
		t.Fatalf("unexpected metadata: %#v", meta)
	}
	if meta.Image != "https://cdn.example.com/hello.png" {
		t.Fatalf("unexpected image: %q", meta.Image)
	}
}

func TestListOrdersByRawDateDescending(t *testing.T) {
	svc, root := newTestService(t)
	writeSource(t, root, "a.md", "---\ndate: \"2025-01-01\"\n---\nbody")
	writeSource(t, root, "b.md", "---\ndate: \"2025-06-01\"\n---\nbody")
	writeSource(t, root, "c.md", "---\ndate: \"2024-12-31\"\n---\nbody")

	metas, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	var dates []string
	for _, meta := range metas {
		dates = append(dates, meta.Date)
	}
	want := []string{"2025-06-01", "2025-01-01", "2024-12-31"}
	if !reflect.DeepEqual(dates, want) {
		t.Fatalf("unexpected order: got %v want %v", dates, want)
	}
}

func TestListSkipsMalformedPost(t *testing.T) {
	logger := &captureLogger{}
	svc, root := newTestService(t, WithLogger(logger))
	writeSource(t, root, "good.md", "---\ntitle: Good\ndate: \"2025-02-02\"\n---\nbody")
	writeSource(t, root, "broken.md", "---\ntitle: \"unterminated\ndate: [oops\n---\nbody")

	metas, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List should tolerate individual bad files: %v", err)
	}
	if len(metas) != 1 || metas[0].Slug != "good" {
		t.Fatalf("expected only the good post, got %#v", metas)
	}
	if !logger.warned("listing skipped malformed post") {
		t.Fatalf("expected a skip warning, got %v", logger.warnings)
	}
}

func TestListEmptyRootYieldsEmptyListing(t *testing.T) {
	svc, _ := newTestService(t)

	metas, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(metas) != 0 {
		t.Fatalf("expected empty listing, got %d", len(metas))
	}
}

func TestGetResolvesPost(t *testing.T) {
	svc, root := newTestService(t)
	writeSource(t, root, "hello.md", "---\ntitle: \"Hello\"\ndate: \"2025-01-01\"\n---\n\n# Hi there\n")

	post, err := svc.Get(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if post.Title != "Hello" || post.Date != "2025-01-01" || post.Slug != "hello" {
		t.Fatalf("unexpected metadata: %#v", post.PostMeta)
	}
	if !strings.Contains(post.HTML, ">Hi there</h1>") {
		t.Fatalf("expected rendered heading, got %q", post.HTML)
	}
}

func TestGetRendersExtendedSyntax(t *testing.T) {
	svc, root := newTestService(t)
	body := "| a | b |\n| - | - |\n| 1 | 2 |\n\n~~gone~~ visit https://example.com\n"
	writeSource(t, root, "rich.md", "---\ntitle: Rich\ndate: \"2025-01-02\"\n---\n\n"+body)

	post, err := svc.Get(context.Background(), "rich")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	for _, fragment := range []string{"<table>", "<del>gone</del>", `<a href="https://example.com`} {
		if !strings.Contains(post.HTML, fragment) {
			t.Fatalf("expected %q in rendered HTML, got %q", fragment, post.HTML)
		}
	}
}

func TestGetUnknownSlugReturnsNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Get(context.Background(), "nonexistent-slug")
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected *NotFoundError, got %v", err)
	}
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound sentinel, got %v", err)
	}
	if notFound.Slug != "nonexistent-slug" {
		t.Fatalf("expected slug in error, got %q", notFound.Slug)
	}
}

func TestGetInvalidSlugShortCircuits(t *testing.T) {
	svc, _ := newTestService(t)

	for _, slug := range []string{"../../etc/passwd", "UPPER CASE", "a/b"} {
		_, err := svc.Get(context.Background(), slug)
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("Get(%q): expected *NotFoundError, got %v", slug, err)
		}
	}
}

func TestGetEmptySlugIsRequired(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Get(context.Background(), "   "); !errors.Is(err, ErrSlugRequired) {
		t.Fatalf("expected ErrSlugRequired, got %v", err)
	}
}

func TestGetMalformedSourceTagsParseError(t *testing.T) {
	svc, root := newTestService(t)
	writeSource(t, root, "corrupt.md", "---\ntitle: \"bad\ndate: [nope\n---\nbody")

	_, err := svc.Get(context.Background(), "corrupt")
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if parseErr.Slug != "corrupt" {
		t.Fatalf("expected slug tag, got %q", parseErr.Slug)
	}
}

func TestGetIsIdempotent(t *testing.T) {
	svc, root := newTestService(t)
	writeSource(t, root, "stable.md", "---\ntitle: Stable\ndate: \"2025-02-14\"\n---\n\nSame **bytes** every time.\n")

	first, err := svc.Get(context.Background(), "stable")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	second, err := svc.Get(context.Background(), "stable")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected byte-identical posts\nfirst:  %#v\nsecond: %#v", first, second)
	}
}

func TestGetHonoursSanitizeFlag(t *testing.T) {
	svc, root := newTestService(t, WithParseOptions(interfaces.ParseOptions{Sanitize: true}))
	writeSource(t, root, "trusted.md", "---\ntitle: Trusted\ndate: \"2025-01-05\"\n---\n\n<script>alert(1)</script>\n")

	post, err := svc.Get(context.Background(), "trusted")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if strings.Contains(post.HTML, "<script>") {
		t.Fatalf("expected script tag to be suppressed, got %q", post.HTML)
	}
}

func TestPostMetaValidate(t *testing.T) {
	valid := PostMeta{Slug: "hello-world", Title: "Hello", Date: "2025-01-01"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid meta, got %v", err)
	}

	badDate := PostMeta{Slug: "hello-world", Date: "January 1st"}
	if err := badDate.Validate(); err == nil {
		t.Fatal("expected date layout violation")
	}

	badSlug := PostMeta{Slug: "Hello World!", Date: "2025-01-01"}
	if err := badSlug.Validate(); err == nil {
		t.Fatal("expected slug violation")
	}
}

func TestCreateScaffoldsPost(t *testing.T) {
	svc, _ := newTestService(t)

	entry, err := svc.Create(context.Background(), "  Hello World  ")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if entry.Slug != "hello-world" {
		t.Fatalf("expected slug derived from title, got %q", entry.Slug)
	}
	if entry.Name != "hello-world.md" {
		t.Fatalf("expected markdown source name, got %q", entry.Name)
	}
	if _, err := os.Stat(entry.Path); err != nil {
		t.Fatalf("expected scaffold on disk: %v", err)
	}

	post, err := svc.Get(context.Background(), "hello-world")
	if err != nil {
		t.Fatalf("Get after Create: %v", err)
	}
	if post.Title != "Hello World" {
		t.Fatalf("expected trimmed title in frontmatter, got %q", post.Title)
	}
	if post.Date != "2025-03-01" {
		t.Fatalf("expected the clock's date, got %q", post.Date)
	}
	if strings.TrimSpace(post.HTML) != "" {
		t.Fatalf("expected an empty body awaiting the author, got %q", post.HTML)
	}
}

func TestCreateRefusesOverwrite(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Create(context.Background(), "Twice Told"); err != nil {
		t.Fatalf("first Create: %v", err)
	}

	_, err := svc.Create(context.Background(), "Twice Told")
	if !errors.Is(err, ErrExists) {
		t.Fatalf("expected ErrExists on duplicate title, got %v", err)
	}
}

func TestCreateRequiresTitle(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Create(context.Background(), "   "); !errors.Is(err, ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}
}

func newTestService(tb testing.TB, opts ...ServiceOption) (Service, string) {
	tb.Helper()

	root := tb.TempDir()
	store := NewStore(StoreConfig{Root: root})
	base := []ServiceOption{WithClock(testClock)}
	svc := NewService(store, append(base, opts...)...)
	return svc, root
}

type captureLogger struct {
	warnings []string
}

var _ interfaces.Logger = (*captureLogger)(nil)

func (l *captureLogger) Trace(string, ...any) {}
func (l *captureLogger) Debug(string, ...any) {}
func (l *captureLogger) Info(string, ...any)  {}
func (l *captureLogger) Error(string, ...any) {}
func (l *captureLogger) Fatal(string, ...any) {}

func (l *captureLogger) Warn(msg string, _ ...any) {
	l.warnings = append(l.warnings, msg)
}

func (l *captureLogger) WithContext(context.Context) interfaces.Logger { return l }

func (l *captureLogger) warned(msg string) bool {
	for _, entry := range l.warnings {
		if entry == msg {
			return true
		}
	}
	return false
}
