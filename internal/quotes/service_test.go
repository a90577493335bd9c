package quotes

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRandomPassesUpstreamPayloadThrough(t *testing.T) {
	payload := `[{"q":"Stay curious.","a":"Anonymous"}]`
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Fatalf("unexpected method %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}))
	defer upstream.Close()

	svc := NewService(Config{URL: upstream.URL})

	got, err := svc.Random(context.Background())
	if err != nil {
		t.Fatalf("Random: %v", err)
	}
	if string(got) != payload {
		t.Fatalf("expected verbatim passthrough, got %q", string(got))
	}
}

func TestRandomUpstreamFailureStatus(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusServiceUnavailable)
	}))
	defer upstream.Close()

	svc := NewService(Config{URL: upstream.URL})

	_, err := svc.Random(context.Background())
	var upstreamErr *UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("expected *UpstreamError, got %v", err)
	}
	if upstreamErr.Status != http.StatusServiceUnavailable {
		t.Fatalf("expected upstream status 503, got %d", upstreamErr.Status)
	}
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream sentinel, got %v", err)
	}
}

func TestRandomUnreachableUpstream(t *testing.T) {
	svc := NewService(Config{
		URL:     "http://127.0.0.1:1",
		Timeout: 200 * time.Millisecond,
	})

	_, err := svc.Random(context.Background())
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestRandomHonoursContextCancellation(t *testing.T) {
	block := make(chan struct{})
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer upstream.Close()
	defer close(block)

	svc := NewService(Config{URL: upstream.URL})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := svc.Random(ctx); err == nil {
		t.Fatal("expected error once context deadline passed")
	}
}
