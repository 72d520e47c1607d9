// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package api

import (
	"net/http"

	xglog "github.com/ManuGH/spacegate/internal/log"
	"github.com/ManuGH/spacegate/internal/navigation"
)

// handleHomeRedirect sends /home to the configured default tab.
// A loader failure is a rendering failure for this route and is not retried.
func (s *Server) handleHomeRedirect(w http.ResponseWriter, r *http.Request) {
	logger := xglog.WithComponentFromContext(r.Context(), "api")

	cfg, err := s.cfgSource.Load()
	if err != nil {
		logger.Error().Err(err).Str(xglog.FieldEvent, "home.config_failed").Msg("cannot resolve home tab")
		writeError(w, r, http.StatusInternalServerError, "configuration unavailable")
		return
	}

	target, err := navigation.HomePath(cfg)
	if err != nil {
		logger.Error().Err(err).Str(xglog.FieldEvent, "home.resolve_failed").Msg("cannot resolve home tab")
		writeError(w, r, http.StatusInternalServerError, "configuration unavailable")
		return
	}

	logger.Debug().
		Str(xglog.FieldEvent, "home.redirect").
		Str(xglog.FieldTab, cfg.HomePage.DefaultTab).
		Str(xglog.FieldTarget, target).
		Msg("redirecting to default tab")

	http.Redirect(w, r, target, http.StatusTemporaryRedirect)
}
