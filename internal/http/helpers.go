package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/internal/quotes"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func joinPath(base, suffix string) string {
	trimmedBase := strings.TrimSpace(base)
	trimmedSuffix := strings.TrimSpace(suffix)
	if trimmedBase == "" {
		if trimmedSuffix == "" {
			return "/"
		}
		return "/" + strings.Trim(trimmedSuffix, "/")
	}
	baseClean := "/" + strings.Trim(trimmedBase, "/")
	if trimmedSuffix == "" {
		return baseClean
	}
	return baseClean + "/" + strings.Trim(trimmedSuffix, "/")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

// mapError collapses every post resolution failure class into one uniform
// not-found payload, so clients cannot tell a missing post from an
// unreadable or corrupt one. The handlers log the real class.
func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	var notFound *posts.NotFoundError
	var readErr *posts.ReadError
	var parseErr *posts.ParseError
	if errors.As(err, &notFound) || errors.As(err, &readErr) || errors.As(err, &parseErr) ||
		errors.Is(err, posts.ErrNotFound) ||
		errors.Is(err, posts.ErrSlugRequired) ||
		errors.Is(err, posts.ErrSlugInvalid) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: "post not found",
		}
	}

	if errors.Is(err, quotes.ErrUpstream) {
		return http.StatusBadGateway, errorResponse{
			Error:   "bad_gateway",
			Message: "quote service unavailable",
		}
	}

	return http.StatusInternalServerError, errorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	}
}
