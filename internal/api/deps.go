// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package api

import (
	"github.com/ManuGH/spacegate/internal/config"
	"github.com/ManuGH/spacegate/internal/health"
	"github.com/ManuGH/spacegate/internal/posts"
)

// ConfigSource yields the system configuration. *config.Loader satisfies it.
type ConfigSource interface {
	Load() (config.SystemConfig, error)
}

// Deps holds all dependencies for the API server
type Deps struct {
	Config  ConfigSource
	Posts   *posts.Service  // nil disables the posts endpoints
	Health  *health.Manager // nil creates an empty manager
	Runtime config.RuntimeConfig

	// LookupEnv reads the build id variable; defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}
