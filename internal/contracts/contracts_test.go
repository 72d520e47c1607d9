// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package contracts

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuGH/spacegate/internal/address"
	"github.com/ManuGH/spacegate/internal/config"
)

const space = "0xABCDEF0123456789ABCDEF0123456789ABCDEF01"

func cfgWith(c config.ContractsConfig) config.SystemConfig {
	cfg := config.Defaults()
	cfg.HomePage.DefaultTab = "feed"
	cfg.Community.Contracts = c
	return cfg
}

func TestSpace_ReturnsExactValue(t *testing.T) {
	got, err := Space(cfgWith(config.ContractsConfig{Space: space}))
	require.NoError(t, err)
	assert.Equal(t, address.Address(space), got)
	assert.Equal(t, space, got.String())
}

func TestSpace_RejectsMalformed(t *testing.T) {
	for _, raw := range []string{
		"",
		"0x1234",
		"ABCDEF0123456789ABCDEF0123456789ABCDEF0123",
		"0xGBCDEF0123456789ABCDEF0123456789ABCDEF01",
		space + "0",
	} {
		t.Run(raw, func(t *testing.T) {
			_, err := Space(cfgWith(config.ContractsConfig{Space: raw}))
			require.Error(t, err)

			var aerr *address.InvalidAddressError
			require.True(t, errors.As(err, &aerr))
			assert.Equal(t, FieldSpace, aerr.Field)
			assert.Equal(t, raw, aerr.Value)
		})
	}
}

func TestResolve(t *testing.T) {
	token := "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"

	set, err := Resolve(cfgWith(config.ContractsConfig{Space: space, Token: token}))
	require.NoError(t, err)
	assert.Equal(t, Set{Space: address.Address(space), Token: address.Address(token)}, set)
	assert.True(t, set.NFT.IsZero())
}

func TestResolve_BadOptionalContract(t *testing.T) {
	_, err := Resolve(cfgWith(config.ContractsConfig{Space: space, NFT: "0xnope"}))
	require.Error(t, err)

	var aerr *address.InvalidAddressError
	require.True(t, errors.As(err, &aerr))
	assert.Equal(t, FieldNFT, aerr.Field)
}
