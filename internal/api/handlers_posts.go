// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	xglog "github.com/ManuGH/spacegate/internal/log"
	"github.com/ManuGH/spacegate/internal/posts"
)

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	overviews, err := s.posts.Overviews(r.Context())
	if err != nil {
		s.writePostsError(w, r, err)
		return
	}
	if overviews == nil {
		overviews = []posts.Overview{}
	}
	writeJSON(w, http.StatusOK, overviews)
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	post, err := s.posts.Post(r.Context(), slug)
	if err != nil {
		s.writePostsError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (s *Server) writePostsError(w http.ResponseWriter, r *http.Request, err error) {
	code, msg := postsStatus(err)
	logger := xglog.WithComponentFromContext(r.Context(), "api")
	ev := logger.Warn()
	if code >= http.StatusInternalServerError && code != http.StatusServiceUnavailable {
		ev = logger.Error()
	}
	ev.Err(err).
		Str(xglog.FieldEvent, "posts.request_failed").
		Str(xglog.FieldSlug, chi.URLParam(r, "slug")).
		Int(xglog.FieldStatus, code).
		Msg("posts request failed")
	writeError(w, r, code, msg)
}
