// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

const (
	// EnvPrefix is prepended to every SystemConfig environment override.
	EnvPrefix = "SPACEGATE_"

	DefaultSiteURL   = "http://localhost:3000"
	DefaultSiteName  = "spacegate"
	DefaultChainID   = 8453
	DefaultChainName = "base"
)

// Defaults returns the SystemConfig baseline applied before file and env.
// Required fields (home tab, space contract) deliberately have no default.
func Defaults() SystemConfig {
	return SystemConfig{
		Site: SiteConfig{
			Name: DefaultSiteName,
			URL:  DefaultSiteURL,
		},
		Chain: ChainConfig{
			ID:   DefaultChainID,
			Name: DefaultChainName,
		},
	}
}
