// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

// SystemConfig describes one deployed instance: its site, home page,
// community contracts and chain. It is read-only once loaded.
//
// yaml tags name the file keys; env tags (with the SPACEGATE_ prefix applied
// by the loader) name the environment overrides.
type SystemConfig struct {
	Site      SiteConfig      `yaml:"site" json:"site" envPrefix:"SITE_"`
	HomePage  HomePageConfig  `yaml:"homePage" json:"homePage" envPrefix:"HOME_"`
	Community CommunityConfig `yaml:"community" json:"community" envPrefix:"COMMUNITY_"`
	Chain     ChainConfig     `yaml:"chain" json:"chain" envPrefix:"CHAIN_"`
}

// SiteConfig holds public site metadata.
type SiteConfig struct {
	Name string `yaml:"name,omitempty" json:"name,omitempty" env:"NAME"`
	URL  string `yaml:"url,omitempty" json:"url,omitempty" env:"URL"`
}

// HomePageConfig controls the home page tabs.
type HomePageConfig struct {
	DefaultTab string   `yaml:"defaultTab" json:"defaultTab" env:"DEFAULT_TAB"`
	Tabs       []string `yaml:"tabs,omitempty" json:"tabs,omitempty" env:"TABS" envSeparator:","`
}

// CommunityConfig describes the community that owns this space.
type CommunityConfig struct {
	Name      string          `yaml:"name,omitempty" json:"name,omitempty" env:"NAME"`
	Contracts ContractsConfig `yaml:"contracts" json:"contracts" envPrefix:"CONTRACTS_"`
}

// ContractsConfig holds the community contract addresses in textual form.
// Typed addresses are derived by the contracts package.
type ContractsConfig struct {
	Space string `yaml:"space" json:"space" env:"SPACE"`
	Token string `yaml:"token,omitempty" json:"token,omitempty" env:"TOKEN"`
	NFT   string `yaml:"nft,omitempty" json:"nft,omitempty" env:"NFT"`
}

// ChainConfig identifies the chain the contracts live on.
type ChainConfig struct {
	ID     int    `yaml:"id,omitempty" json:"id,omitempty" env:"ID"`
	Name   string `yaml:"name,omitempty" json:"name,omitempty" env:"NAME"`
	RPCURL string `yaml:"rpcUrl,omitempty" json:"rpcUrl,omitempty" env:"RPC_URL"`
}
