package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/internal/quotes"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// API registers the public JSON endpoints: the post listing, single post
// resolution, and the quote proxy.
type API struct {
	basePath string
	posts    posts.Service
	quotes   quotes.Service
	logger   interfaces.Logger
}

// Option mutates the API configuration.
type Option func(*API)

// NewAPI constructs an API instance.
func NewAPI(opts ...Option) *API {
	api := &API{
		basePath: "/api",
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithBasePath overrides the base API path (defaults to "/api").
func WithBasePath(path string) Option {
	return func(api *API) {
		if api == nil {
			return
		}
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithPostService wires the post service.
func WithPostService(service posts.Service) Option {
	return func(api *API) {
		if api != nil {
			api.posts = service
		}
	}
}

// WithQuoteService wires the quote proxy service.
func WithQuoteService(service quotes.Service) Option {
	return func(api *API) {
		if api != nil {
			api.quotes = service
		}
	}
}

// WithLogger injects the request logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(api *API) {
		if api != nil && logger != nil {
			api.logger = logger
		}
	}
}

// Register attaches the public endpoints to the provided mux.
func (api *API) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if api == nil {
		return fmt.Errorf("http: api is nil")
	}

	base := joinPath(api.basePath, "")

	api.registerPostRoutes(mux, base)
	api.registerQuoteRoutes(mux, base)

	return nil
}

func (api *API) registerPostRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	root := joinPath(base, "posts")
	mux.Handle("GET "+root, tagRequests(http.HandlerFunc(api.handlePostList)))
	mux.Handle("GET "+root+"/{slug}", tagRequests(http.HandlerFunc(api.handlePostGet)))
}

func (api *API) registerQuoteRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	mux.Handle("GET "+joinPath(base, "quote"), tagRequests(http.HandlerFunc(api.handleQuote)))
}

// tagRequests stamps a request id into the context so context-aware loggers
// carry it on every entry emitted for the request.
func tagRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logging.ContextWithFields(r.Context(), map[string]any{
			"request_id": uuid.NewString(),
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestLogger binds the request context so entries pick up the request id
// and any other fields annotated upstream.
func (api *API) requestLogger(r *http.Request) interfaces.Logger {
	return api.logger.WithContext(r.Context())
}

func (api *API) handlePostList(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.posts == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	list, err := api.posts.List(r.Context())
	if err != nil {
		api.requestLogger(r).Error("post listing failed", "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *API) handlePostGet(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.posts == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	slug := r.PathValue("slug")
	post, err := api.posts.Get(r.Context(), slug)
	if err != nil {
		api.logResolveFailure(api.requestLogger(r), slug, err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// logResolveFailure keeps the failure class in the logs while the response
// stays a uniform not-found.
func (api *API) logResolveFailure(logger interfaces.Logger, slug string, err error) {
	var readErr *posts.ReadError
	var parseErr *posts.ParseError
	switch {
	case errors.As(err, &readErr):
		logger.Error("post read failed", "slug", slug, "path", readErr.Path, "error", err)
	case errors.As(err, &parseErr):
		logger.Error("post parse failed", "slug", slug, "path", parseErr.Path, "error", err)
	default:
		logger.Debug("post not found", "slug", slug)
	}
}

func (api *API) handleQuote(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.quotes == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	payload, err := api.quotes.Random(r.Context())
	if err != nil {
		api.requestLogger(r).Warn("quote proxy failed", "error", err)
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}
