// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package api

import (
	"net/http"
	"strings"

	xglog "github.com/ManuGH/spacegate/internal/log"
	"github.com/ManuGH/spacegate/internal/navigation"
	"github.com/ManuGH/spacegate/internal/seo"
)

func (s *Server) handleRobots(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.cfgSource.Load()
	if err != nil {
		logger := xglog.WithComponentFromContext(r.Context(), "api")
		logger.Error().
			Err(err).Str(xglog.FieldEvent, "robots.config_failed").Msg("config unavailable")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(seo.DefaultRobots(cfg.Site.URL).String()))
}

// handleSitemap lists the home page, every tab and, when posts are enabled,
// every post. A failing posts upstream only drops the post entries.
func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	logger := xglog.WithComponentFromContext(r.Context(), "api")

	cfg, err := s.cfgSource.Load()
	if err != nil {
		logger.Error().Err(err).Str(xglog.FieldEvent, "sitemap.config_failed").Msg("config unavailable")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	base := strings.TrimRight(cfg.Site.URL, "/")

	entries := []seo.URL{{Loc: base + navigation.HomePrefix}}
	for _, tab := range cfg.HomePage.Tabs {
		p, err := navigation.TabPath(tab)
		if err != nil {
			continue
		}
		entries = append(entries, seo.URL{Loc: base + p})
	}

	if s.posts.Enabled() {
		overviews, err := s.posts.Overviews(r.Context())
		if err != nil {
			logger.Warn().Err(err).Str(xglog.FieldEvent, "sitemap.posts_failed").Msg("sitemap without posts")
		}
		for _, o := range overviews {
			entries = append(entries, seo.URL{
				Loc:     base + "/posts/" + navigation.EncodeSegment(o.Slug),
				LastMod: o.PublishedAt,
			})
		}
	}

	body, err := seo.Sitemap(entries)
	if err != nil {
		logger.Error().Err(err).Str(xglog.FieldEvent, "sitemap.encode_failed").Msg("sitemap encoding failed")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(body)
}
