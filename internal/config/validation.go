// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/ManuGH/spacegate/internal/address"
	"github.com/ManuGH/spacegate/internal/validate"
)

// tabPattern rejects the dot segments "." and "..", which clients resolve
// away when following /home/{tab}.
var tabPattern = regexp.MustCompile(`^(?s:[^.].*|\.[^.].*|\.\..+)$`)

// Validate validates a SystemConfig using the centralized validation package.
// Address failures keep their *address.InvalidAddressError cause.
func Validate(cfg SystemConfig) error {
	v := validate.New()

	// Home page
	v.NotEmpty("homePage.defaultTab", cfg.HomePage.DefaultTab)
	if cfg.HomePage.DefaultTab != "" {
		v.Pattern("homePage.defaultTab", cfg.HomePage.DefaultTab, tabPattern)
	}
	for i, tab := range cfg.HomePage.Tabs {
		field := fmt.Sprintf("homePage.tabs[%d]", i)
		v.NotEmpty(field, tab)
		if tab != "" {
			v.Pattern(field, tab, tabPattern)
		}
	}
	if len(cfg.HomePage.Tabs) > 0 && cfg.HomePage.DefaultTab != "" &&
		!slices.Contains(cfg.HomePage.Tabs, cfg.HomePage.DefaultTab) {
		v.AddError("homePage.tabs",
			fmt.Sprintf("must contain defaultTab %q", cfg.HomePage.DefaultTab),
			cfg.HomePage.Tabs)
	}

	// Contracts: space is required, the rest are optional
	if cfg.Community.Contracts.Space == "" {
		v.AddError("community.contracts.space", "value cannot be empty", "")
	} else {
		validateAddress(v, "community.contracts.space", cfg.Community.Contracts.Space)
	}
	if cfg.Community.Contracts.Token != "" {
		validateAddress(v, "community.contracts.token", cfg.Community.Contracts.Token)
	}
	if cfg.Community.Contracts.NFT != "" {
		validateAddress(v, "community.contracts.nft", cfg.Community.Contracts.NFT)
	}

	// Chain
	v.Positive("chain.id", cfg.Chain.ID)
	v.NotEmpty("chain.name", cfg.Chain.Name)
	if cfg.Chain.RPCURL != "" {
		v.URL("chain.rpcUrl", cfg.Chain.RPCURL, []string{"http", "https", "ws", "wss"})
	}

	// Site
	v.URL("site.url", cfg.Site.URL, []string{"http", "https"})

	if !v.IsValid() {
		return v.Err()
	}
	return nil
}

func validateAddress(v *validate.Validator, field, value string) {
	v.Custom(field, value, func(val any) error {
		_, err := address.ParseField(field, val.(string))
		return err
	})
}
