// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Starter()
	cfg.Chain.RPCURL = "https://mainnet.base.org"

	require.NoError(t, NewManager(path).Save(cfg))

	_, err := os.Stat(path)
	require.NoError(t, err)

	loaded, err := NewLoader(path, WithEnvironment(map[string]string{})).Load()
	require.NoError(t, err)
	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestManager_SaveRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := Starter()
	cfg.Community.Contracts.Space = "nope"

	err := NewManager(path).Save(cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfiguration))

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "invalid config must not be written")
}

func TestMarshal_UsesFileKeys(t *testing.T) {
	data, err := Marshal(Starter())
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "homePage:")
	assert.Contains(t, out, "defaultTab: feed")
	assert.Contains(t, out, "0x0000000000000000000000000000000000000001")
	assert.NotContains(t, out, "token:")
}
