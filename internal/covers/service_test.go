package covers

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/posts"
)

func newTestBatch(tb testing.TB) (Service, string, string) {
	tb.Helper()

	root := tb.TempDir()
	out := filepath.Join(tb.TempDir(), "covers")
	store := posts.NewStore(posts.StoreConfig{Root: root})
	svc := NewService(store, Config{OutputDir: out, Width: 320, Height: 168})
	return svc, root, out
}

func writeSource(tb testing.TB, root, name, content string) {
	tb.Helper()

	if err := os.WriteFile(filepath.Join(root, name), []byte(content), 0o644); err != nil {
		tb.Fatalf("write source %s: %v", name, err)
	}
}

func readSource(tb testing.TB, root, name string) []byte {
	tb.Helper()

	data, err := os.ReadFile(filepath.Join(root, name))
	if err != nil {
		tb.Fatalf("read source %s: %v", name, err)
	}
	return data
}

func TestGenerateWritesCoverAndRewritesFrontMatter(t *testing.T) {
	svc, root, out := newTestBatch(t)
	writeSource(t, root, "hello.md",
		"---\ntitle: \"Hello\"\ndate: \"2025-01-01\"\ndraft: false\n---\n\nA quiet walk by the river.\n")

	result, err := svc.Generate(context.Background(), GenerateOptions{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(result.Generated) != 1 || result.Generated[0] != "hello" {
		t.Fatalf("expected hello generated, got %+v", result)
	}
	if err := result.Err(); err != nil {
		t.Fatalf("expected clean batch, got %v", err)
	}

	if _, err := os.Stat(filepath.Join(out, "hello.png")); err != nil {
		t.Fatalf("expected cover file: %v", err)
	}

	fm, body, err := markdown.ParseFrontMatter(readSource(t, root, "hello.md"))
	if err != nil {
		t.Fatalf("reparse rewritten source: %v", err)
	}
	if fm.Image != "/covers/hello.png" {
		t.Fatalf("expected image reference, got %q", fm.Image)
	}
	if fm.Title != "Hello" || fm.Date != "2025-01-01" {
		t.Fatalf("known keys not preserved: %+v", fm)
	}
	if draft, ok := fm.Custom["draft"]; !ok || draft != false {
		t.Fatalf("custom key lost in rewrite: %+v", fm.Custom)
	}
	if !bytes.Contains(body, []byte("A quiet walk by the river.")) {
		t.Fatalf("body not preserved: %q", body)
	}
}

func TestGenerateSkipsPostsWithImages(t *testing.T) {
	svc, root, out := newTestBatch(t)
	writeSource(t, root, "covered.md",
		"---\ntitle: Covered\nimage: \"https://cdn.example.com/art.jpg\"\n---\nbody")
	before := readSource(t, root, "covered.md")

	result, err := svc.Generate(context.Background(), GenerateOptions{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(result.Skipped) != 1 || result.Skipped[0] != "covered" {
		t.Fatalf("expected covered skipped, got %+v", result)
	}
	if len(result.Generated) != 0 {
		t.Fatalf("expected nothing generated, got %v", result.Generated)
	}
	if _, err := os.Stat(filepath.Join(out, "covered.png")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected no cover file, stat returned %v", err)
	}
	if !bytes.Equal(before, readSource(t, root, "covered.md")) {
		t.Fatal("skipped source was modified")
	}
}

func TestGenerateForceRegenerates(t *testing.T) {
	svc, root, out := newTestBatch(t)
	writeSource(t, root, "covered.md",
		"---\ntitle: Covered\nimage: \"https://cdn.example.com/art.jpg\"\n---\nbody")

	result, err := svc.Generate(context.Background(), GenerateOptions{Force: true})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(result.Generated) != 1 {
		t.Fatalf("expected forced regeneration, got %+v", result)
	}
	if _, err := os.Stat(filepath.Join(out, "covered.png")); err != nil {
		t.Fatalf("expected cover file: %v", err)
	}

	fm, _, err := markdown.ParseFrontMatter(readSource(t, root, "covered.md"))
	if err != nil {
		t.Fatalf("reparse rewritten source: %v", err)
	}
	if fm.Image != "/covers/covered.png" {
		t.Fatalf("expected image replaced, got %q", fm.Image)
	}
}

func TestGenerateDryRunTouchesNothing(t *testing.T) {
	svc, root, out := newTestBatch(t)
	writeSource(t, root, "draft.md", "---\ntitle: Draft\n---\nwords about a forest river")
	before := readSource(t, root, "draft.md")

	result, err := svc.Generate(context.Background(), GenerateOptions{DryRun: true})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(result.Generated) != 1 || result.Generated[0] != "draft" {
		t.Fatalf("expected draft planned, got %+v", result)
	}
	if !bytes.Equal(before, readSource(t, root, "draft.md")) {
		t.Fatal("dry run modified the source")
	}
	if _, err := os.Stat(out); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("dry run created output dir, stat returned %v", err)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	svc, root, out := newTestBatch(t)
	writeSource(t, root, "stable.md",
		"---\ntitle: Stable\ndate: \"2025-02-14\"\n---\n\nThe mountain river carves the same path every year.\n")

	if _, err := svc.Generate(context.Background(), GenerateOptions{}); err != nil {
		t.Fatalf("first generate: %v", err)
	}
	first, err := os.ReadFile(filepath.Join(out, "stable.png"))
	if err != nil {
		t.Fatalf("read first cover: %v", err)
	}
	firstSource := readSource(t, root, "stable.md")

	if _, err := svc.Generate(context.Background(), GenerateOptions{Force: true}); err != nil {
		t.Fatalf("second generate: %v", err)
	}
	second, err := os.ReadFile(filepath.Join(out, "stable.png"))
	if err != nil {
		t.Fatalf("read second cover: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Fatal("same body produced different cover bytes")
	}
	if !bytes.Equal(firstSource, readSource(t, root, "stable.md")) {
		t.Fatal("rewrite is not a fixed point")
	}
}

func TestGenerateRecordsFailuresAndContinues(t *testing.T) {
	svc, root, _ := newTestBatch(t)
	writeSource(t, root, "broken.md", "---\ntitle: \"unterminated\ndate: [oops\n---\nbody")
	writeSource(t, root, "good.md", "---\ntitle: Good\n---\nfine body text here")

	result, err := svc.Generate(context.Background(), GenerateOptions{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(result.Generated) != 1 || result.Generated[0] != "good" {
		t.Fatalf("expected good generated, got %+v", result)
	}
	if len(result.Failed) != 1 || result.Failed[0].Slug != "broken" {
		t.Fatalf("expected broken recorded, got %+v", result.Failed)
	}
	if result.Failed[0].Err == nil {
		t.Fatal("failure should carry its cause")
	}
	if !errors.Is(result.Err(), ErrPartialFailure) {
		t.Fatalf("expected partial failure error, got %v", result.Err())
	}
}

func TestGenerateRejectsUnsortableDates(t *testing.T) {
	svc, root, out := newTestBatch(t)
	writeSource(t, root, "baddate.md",
		"---\ntitle: Bad Date\ndate: \"March 5, 2025\"\n---\nbody text")
	before := readSource(t, root, "baddate.md")

	result, err := svc.Generate(context.Background(), GenerateOptions{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(result.Failed) != 1 || result.Failed[0].Slug != "baddate" {
		t.Fatalf("expected baddate recorded as failure, got %+v", result)
	}
	if !bytes.Equal(before, readSource(t, root, "baddate.md")) {
		t.Fatal("rejected source was modified")
	}
	if _, err := os.Stat(filepath.Join(out, "baddate.png")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected no cover file, stat returned %v", err)
	}
}

func TestGenerateBootstrapsMissingRoot(t *testing.T) {
	store := posts.NewStore(posts.StoreConfig{Root: filepath.Join(t.TempDir(), "missing")})
	svc := NewService(store, Config{OutputDir: filepath.Join(t.TempDir(), "covers")})

	result, err := svc.Generate(context.Background(), GenerateOptions{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(result.Generated)+len(result.Skipped)+len(result.Failed) != 0 {
		t.Fatalf("expected empty batch, got %+v", result)
	}
	if _, err := os.Stat(store.Root()); err != nil {
		t.Fatalf("expected content root created: %v", err)
	}
}

func TestGenerateHonoursDirOverride(t *testing.T) {
	svc, _, out := newTestBatch(t)
	other := t.TempDir()
	writeSource(t, other, "elsewhere.md", "---\ntitle: Elsewhere\n---\nwords live here")

	result, err := svc.Generate(context.Background(), GenerateOptions{Dir: other})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(result.Generated) != 1 || result.Generated[0] != "elsewhere" {
		t.Fatalf("expected elsewhere generated, got %+v", result)
	}
	if _, err := os.Stat(filepath.Join(out, "elsewhere.png")); err != nil {
		t.Fatalf("expected cover file: %v", err)
	}

	fm, _, err := markdown.ParseFrontMatter(readSource(t, other, "elsewhere.md"))
	if err != nil {
		t.Fatalf("reparse rewritten source: %v", err)
	}
	if fm.Image != "/covers/elsewhere.png" {
		t.Fatalf("expected image reference, got %q", fm.Image)
	}
}

func TestGenerateStopsOnCancelledContext(t *testing.T) {
	svc, root, _ := newTestBatch(t)
	writeSource(t, root, "a.md", "---\ntitle: A\n---\nbody")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Generate(ctx, GenerateOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}
