// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package api

import (
	"encoding/json"
	"errors"
	"net/http"

	xglog "github.com/ManuGH/spacegate/internal/log"
	"github.com/ManuGH/spacegate/internal/posts"
)

var errMissingConfig = errors.New("api: config source is required")

// errorResponse is the JSON body of every API error.
type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes msg as a JSON error with the request id of r.
func writeError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	writeJSON(w, code, errorResponse{
		Error:     msg,
		RequestID: xglog.RequestIDFromContext(r.Context()),
	})
}

// postsStatus maps a posts service error to an HTTP status and public message.
func postsStatus(err error) (int, string) {
	switch {
	case errors.Is(err, posts.ErrDisabled):
		return http.StatusServiceUnavailable, "posts are not configured"
	case errors.Is(err, posts.ErrNotFound):
		return http.StatusNotFound, "post not found"
	case errors.Is(err, posts.ErrInvalidSlug):
		return http.StatusBadRequest, "invalid slug"
	default:
		return http.StatusBadGateway, "posts upstream unavailable"
	}
}
