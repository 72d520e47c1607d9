// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package health

import (
	"context"
	"fmt"

	"github.com/ManuGH/spacegate/internal/contracts"
	"github.com/ManuGH/spacegate/internal/log"
	"github.com/ManuGH/spacegate/internal/navigation"
)

// PerformStartupChecks resolves everything the request path will need from
// the system configuration, so a broken deployment fails before listening.
func PerformStartupChecks(ctx context.Context, source ConfigSource, backends map[string]Pinger) error {
	logger := log.WithComponent("startup-check")

	cfg, err := source.Load()
	if err != nil {
		return fmt.Errorf("configuration check failed: %w", err)
	}

	home, err := navigation.HomePath(cfg)
	if err != nil {
		return fmt.Errorf("home redirect check failed: %w", err)
	}

	set, err := contracts.Resolve(cfg)
	if err != nil {
		return fmt.Errorf("contract check failed: %w", err)
	}

	for name, p := range backends {
		if err := p.HealthCheck(ctx); err != nil {
			return fmt.Errorf("%s check failed: %w", name, err)
		}
	}

	logger.Info().
		Str(log.FieldEvent, "startup.checks_passed").
		Str(log.FieldTarget, home).
		Str(log.FieldContract, set.Space.String()).
		Msg("startup checks passed")
	return nil
}
