// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package api

import (
	"net/http"

	"github.com/ManuGH/spacegate/internal/contracts"
	xglog "github.com/ManuGH/spacegate/internal/log"
)

// buildIDResponse always carries the buildId key; unset encodes as null.
type buildIDResponse struct {
	BuildID *string `json:"buildId"`
}

type revalidateResponse struct {
	Success bool `json:"success"`
}

type contractsResponse struct {
	contracts.Set
	ChainID   int    `json:"chainId"`
	ChainName string `json:"chainName,omitempty"`
}

// handleBuildID reports the build id variable as it is at request time.
func (s *Server) handleBuildID(w http.ResponseWriter, _ *http.Request) {
	var resp buildIDResponse
	if v, ok := s.lookupEnv(s.runtime.BuildIDEnv); ok {
		resp.BuildID = &v
	}
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, resp)
}

// handleRevalidatePosts drops the post caches. Empty tags still succeed.
func (s *Server) handleRevalidatePosts(w http.ResponseWriter, r *http.Request) {
	if _, err := s.posts.Revalidate(r.Context()); err != nil {
		logger := xglog.WithComponentFromContext(r.Context(), "api")
		logger.Error().
			Err(err).
			Str(xglog.FieldEvent, "posts.revalidate_failed").
			Msg("cache invalidation failed")
		writeError(w, r, http.StatusInternalServerError, "revalidation failed")
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, revalidateResponse{Success: true})
}

// handleContracts exposes the typed contract set of the community.
func (s *Server) handleContracts(w http.ResponseWriter, r *http.Request) {
	logger := xglog.WithComponentFromContext(r.Context(), "api")

	cfg, err := s.cfgSource.Load()
	if err != nil {
		logger.Error().Err(err).Str(xglog.FieldEvent, "contracts.config_failed").Msg("config unavailable")
		writeError(w, r, http.StatusInternalServerError, "configuration unavailable")
		return
	}
	set, err := contracts.Resolve(cfg)
	if err != nil {
		logger.Error().Err(err).Str(xglog.FieldEvent, "contracts.resolve_failed").Msg("contract address rejected")
		writeError(w, r, http.StatusInternalServerError, "configuration unavailable")
		return
	}

	writeJSON(w, http.StatusOK, contractsResponse{
		Set:       set,
		ChainID:   cfg.Chain.ID,
		ChainName: cfg.Chain.Name,
	})
}

func (s *Server) handleAPINotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, "not found")
}
