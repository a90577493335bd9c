package web

import (
	"strings"
	"testing"
)

func TestPermalinksBuildAbsoluteURLs(t *testing.T) {
	p, err := NewPermalinks("https://blog.example.com/")
	if err != nil {
		t.Fatalf("new permalinks: %v", err)
	}

	got, err := p.PostURL("first-post")
	if err != nil {
		t.Fatalf("post url: %v", err)
	}
	if got != "https://blog.example.com/posts/first-post" {
		t.Fatalf("expected canonical post url, got %q", got)
	}

	home, err := p.HomeURL()
	if err != nil {
		t.Fatalf("home url: %v", err)
	}
	if !strings.HasPrefix(home, "https://blog.example.com") {
		t.Fatalf("expected home url under base, got %q", home)
	}
}

func TestPermalinksRelativeWhenBaseUnset(t *testing.T) {
	p, err := NewPermalinks("")
	if err != nil {
		t.Fatalf("new permalinks: %v", err)
	}

	got, err := p.PostURL("hello")
	if err != nil {
		t.Fatalf("post url: %v", err)
	}
	if !strings.HasSuffix(got, "/posts/hello") {
		t.Fatalf("expected relative post path, got %q", got)
	}
}

func TestPermalinksUnconfiguredErrors(t *testing.T) {
	var empty Permalinks
	if _, err := empty.PostURL("x"); err == nil {
		t.Fatal("expected error for unconfigured permalinks")
	}
	if _, err := empty.HomeURL(); err == nil {
		t.Fatal("expected error for unconfigured permalinks")
	}
}
