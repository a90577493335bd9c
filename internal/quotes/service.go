package quotes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

const (
	defaultUpstreamURL = "https://zenquotes.io/api/random"
	defaultTimeout     = 10 * time.Second

	// maxPayloadBytes bounds how much upstream JSON is buffered; quote
	// payloads are tiny and anything larger is a misbehaving upstream.
	maxPayloadBytes = 1 << 20
)

var ErrUpstream = errors.New("quotes: upstream request failed")

// UpstreamError reports a non-success status from the quote service.
type UpstreamError struct {
	Status int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: status=%d", ErrUpstream.Error(), e.Status)
}

func (e *UpstreamError) Unwrap() error {
	return ErrUpstream
}

// Config configures the upstream quote service.
type Config struct {
	// URL is the upstream endpoint returning a JSON quote payload.
	URL string
	// Timeout bounds the whole upstream round trip.
	Timeout time.Duration
}

// Service proxies a single read operation to a third-party quote service.
// The upstream payload passes through verbatim; there is no retry and no
// caching. Failures surface as errors the HTTP boundary converts into a
// generic failure payload.
type Service interface {
	Random(ctx context.Context) ([]byte, error)
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithHTTPClient overrides the HTTP client used for upstream calls.
func WithHTTPClient(client *http.Client) ServiceOption {
	return func(s *service) {
		if client != nil {
			s.client = client
		}
	}
}

// WithLogger attaches a logger for upstream failure diagnostics.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	url    string
	client *http.Client
	logger interfaces.Logger
}

// NewService constructs the quote proxy. Zero-value config falls back to the
// default upstream with a bounded timeout.
func NewService(cfg Config, opts ...ServiceOption) Service {
	url := strings.TrimSpace(cfg.URL)
	if url == "" {
		url = defaultUpstreamURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	s := &service{
		url:    url,
		client: &http.Client{Timeout: timeout},
		logger: logging.NoOp(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Random fetches one quote payload from the upstream service.
func (s *service) Random(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("quotes: build upstream request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("quote upstream unreachable", "url", s.url, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("quote upstream returned failure status", "url", s.url, "status", resp.StatusCode)
		return nil, &UpstreamError{Status: resp.StatusCode}
	}

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		s.logger.Warn("quote upstream payload unreadable", "url", s.url, "error", err)
		return nil, fmt.Errorf("%w: read payload: %v", ErrUpstream, err)
	}

	return payload, nil
}
