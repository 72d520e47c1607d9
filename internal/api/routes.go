// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ManuGH/spacegate/internal/api/middleware"
	"github.com/ManuGH/spacegate/internal/webui"
)

func (s *Server) routes() chi.Router {
	r := middleware.NewRouter(middleware.StackConfig{
		EnableCORS:            len(s.runtime.CORSOrigins) > 0,
		AllowedOrigins:        s.runtime.CORSOrigins,
		EnableSecurityHeaders: true,
		CSP:                   middleware.DefaultCSP,
		EnableMetrics:         true,
		TracingService:        s.runtime.LogService,
		EnableLogging:         true,
	})

	r.NotFound(s.notFound.ServeHTTP)

	// Probes
	r.Get("/healthz", s.healthManager.ServeHealth)
	r.Head("/healthz", s.healthManager.ServeHealth)
	r.Get("/readyz", s.healthManager.ServeReady)
	r.Head("/readyz", s.healthManager.ServeReady)

	// Pages
	r.Get("/home", s.handleHomeRedirect)
	r.Get("/robots.txt", s.handleRobots)
	r.Get("/sitemap.xml", s.handleSitemap)
	r.Handle("/images/*", webui.AssetHandler(s.notFound))

	r.Route("/api", func(r chi.Router) {
		if s.runtime.RateLimit.Enabled {
			r.Use(middleware.RateLimit(middleware.RateLimitConfig{
				RequestLimit: s.runtime.RateLimit.Requests,
				WindowSize:   s.runtime.RateLimit.Window,
			}))
		}
		r.NotFound(s.handleAPINotFound)

		r.Get("/buildId", s.handleBuildID)
		r.Get("/revalidate/posts", s.handleRevalidatePosts)
		r.Get("/contracts", s.handleContracts)
		r.Get("/posts", s.handleListPosts)
		r.Get("/posts/{slug}", s.handleGetPost)
	})

	return r
}
