// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package health

import (
	"context"

	"github.com/ManuGH/spacegate/internal/config"
	"github.com/ManuGH/spacegate/internal/contracts"
)

// ConfigSource yields the system configuration.
type ConfigSource interface {
	Load() (config.SystemConfig, error)
}

// ConfigChecker reports whether the system configuration loads and its
// space contract resolves.
type ConfigChecker struct {
	source ConfigSource
}

// NewConfigChecker creates a checker over source.
func NewConfigChecker(source ConfigSource) *ConfigChecker {
	return &ConfigChecker{source: source}
}

func (c *ConfigChecker) Name() string { return "config" }

func (c *ConfigChecker) Check(context.Context) CheckResult {
	cfg, err := c.source.Load()
	if err != nil {
		return CheckResult{Status: StatusUnhealthy, Error: err.Error()}
	}
	space, err := contracts.Space(cfg)
	if err != nil {
		return CheckResult{Status: StatusUnhealthy, Error: err.Error()}
	}
	return CheckResult{Status: StatusHealthy, Message: "space " + space.Short()}
}

// Pinger is a backend with a connectivity check.
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

// PingChecker wraps a Pinger. Failures report failStatus, so optional
// backends can degrade instead of failing readiness.
type PingChecker struct {
	name       string
	pinger     Pinger
	failStatus Status
}

// NewPingChecker creates a checker named name.
func NewPingChecker(name string, pinger Pinger, failStatus Status) *PingChecker {
	return &PingChecker{name: name, pinger: pinger, failStatus: failStatus}
}

func (c *PingChecker) Name() string { return c.name }

func (c *PingChecker) Check(ctx context.Context) CheckResult {
	if err := c.pinger.HealthCheck(ctx); err != nil {
		return CheckResult{Status: c.failStatus, Error: err.Error()}
	}
	return CheckResult{Status: StatusHealthy}
}
