// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package contracts resolves the community contract addresses of a space.
package contracts

import (
	"github.com/ManuGH/spacegate/internal/address"
	"github.com/ManuGH/spacegate/internal/config"
)

// Config field paths reported in *address.InvalidAddressError.Field.
const (
	// FieldSpace names the required space contract.
	FieldSpace = "community.contracts.space"
	// FieldToken names the optional governance token contract.
	FieldToken = "community.contracts.token"
	// FieldNFT names the optional membership NFT contract.
	FieldNFT = "community.contracts.nft"
)

// Set is the typed contract set of one community.
// Token and NFT are zero when not configured.
type Set struct {
	Space address.Address `json:"space"`
	Token address.Address `json:"token,omitempty"`
	NFT   address.Address `json:"nft,omitempty"`
}

// Space returns the community space contract from cfg.
// The value is re-validated here even though the loader validated it, so a
// hand-built SystemConfig can never leak an unchecked address.
func Space(cfg config.SystemConfig) (address.Address, error) {
	return address.ParseField(FieldSpace, cfg.Community.Contracts.Space)
}

// Resolve returns every configured contract, typed.
func Resolve(cfg config.SystemConfig) (Set, error) {
	space, err := Space(cfg)
	if err != nil {
		return Set{}, err
	}
	set := Set{Space: space}

	if raw := cfg.Community.Contracts.Token; raw != "" {
		if set.Token, err = address.ParseField(FieldToken, raw); err != nil {
			return Set{}, err
		}
	}
	if raw := cfg.Community.Contracts.NFT; raw != "" {
		if set.NFT, err = address.ParseField(FieldNFT, raw); err != nil {
			return Set{}, err
		}
	}
	return set, nil
}
