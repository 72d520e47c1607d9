// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseServerConfig_Defaults(t *testing.T) {
	t.Setenv("SPACEGATE_LISTEN", "")
	cfg := ParseServerConfig()

	assert.Equal(t, ":3000", cfg.ListenAddr)
	assert.Equal(t, 15*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.WriteTimeout)
	assert.Equal(t, 120*time.Second, cfg.IdleTimeout)
	assert.Equal(t, 1<<20, cfg.MaxHeaderBytes)
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
}

func TestParseServerConfig_Overrides(t *testing.T) {
	t.Setenv("SPACEGATE_LISTEN", "127.0.0.1:8080")
	t.Setenv("SPACEGATE_SERVER_READ_TIMEOUT", "5s")
	t.Setenv("SPACEGATE_SERVER_MAX_HEADER_BYTES", "-1")
	t.Setenv("SPACEGATE_SERVER_SHUTDOWN_TIMEOUT", "1s")

	cfg := ParseServerConfig()
	assert.Equal(t, "127.0.0.1:8080", cfg.ListenAddr)
	assert.Equal(t, 5*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 1<<20, cfg.MaxHeaderBytes, "non-positive falls back to default")
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout, "clamped to minimum")
}

func TestParseBool(t *testing.T) {
	t.Setenv("SPACEGATE_TEST_BOOL", "yes")
	assert.True(t, ParseBool("SPACEGATE_TEST_BOOL", false))

	t.Setenv("SPACEGATE_TEST_BOOL", "0")
	assert.False(t, ParseBool("SPACEGATE_TEST_BOOL", true))

	t.Setenv("SPACEGATE_TEST_BOOL", "maybe")
	assert.True(t, ParseBool("SPACEGATE_TEST_BOOL", true))
}

func TestParseInt_InvalidFallsBack(t *testing.T) {
	t.Setenv("SPACEGATE_TEST_INT", "abc")
	assert.Equal(t, 7, ParseInt("SPACEGATE_TEST_INT", 7))
}
