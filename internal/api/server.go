// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package api implements the public HTTP surface: the home redirect, the
// build id and revalidation endpoints, robots/sitemap, posts and probes.
package api

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/ManuGH/spacegate/internal/config"
	"github.com/ManuGH/spacegate/internal/health"
	"github.com/ManuGH/spacegate/internal/posts"
	"github.com/ManuGH/spacegate/internal/version"
	"github.com/ManuGH/spacegate/internal/webui"
)

// Server is the HTTP API server.
type Server struct {
	cfgSource     ConfigSource
	posts         *posts.Service
	healthManager *health.Manager
	runtime       config.RuntimeConfig
	lookupEnv     func(string) (string, bool)

	notFound http.Handler
	router   chi.Router
}

// New wires a Server from deps.
func New(deps Deps) (*Server, error) {
	if deps.Config == nil {
		return nil, errMissingConfig
	}

	s := &Server{
		cfgSource:     deps.Config,
		posts:         deps.Posts,
		healthManager: deps.Health,
		runtime:       deps.Runtime,
		lookupEnv:     deps.LookupEnv,
	}
	if s.posts == nil {
		s.posts = posts.NewService(nil, nil, 0)
	}
	if s.healthManager == nil {
		s.healthManager = health.NewManager(version.Version)
	}
	if s.lookupEnv == nil {
		s.lookupEnv = os.LookupEnv
	}
	if s.runtime.BuildIDEnv == "" {
		s.runtime.BuildIDEnv = "VERSION"
	}

	// The 404 page is rendered once; a config that fails to load here is
	// reported by the routes that need it, so the site name falls back.
	view := webui.Config{Image: s.runtime.NotFoundImage}
	if cfg, err := s.cfgSource.Load(); err == nil {
		view.SiteName = cfg.Site.Name
	}
	s.notFound = webui.NotFoundHandler(view)

	s.router = s.routes()
	return s, nil
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}
