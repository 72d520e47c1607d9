// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	xglog "github.com/ManuGH/spacegate/internal/log"
)

// Loader produces the SystemConfig for this process.
// The first Load does the work; later calls return equivalent copies of the
// same result (including the same error).
type Loader struct {
	configPath  string
	environment map[string]string // nil means the process environment

	once sync.Once
	cfg  SystemConfig
	err  error
}

// LoaderOption customises a Loader.
type LoaderOption func(*Loader)

// WithEnvironment makes the loader read overrides from environ instead of the
// process environment.
func WithEnvironment(environ map[string]string) LoaderOption {
	return func(l *Loader) {
		l.environment = environ
	}
}

// NewLoader creates a loader for the YAML file at configPath.
// An empty path loads from defaults and environment only.
func NewLoader(configPath string, opts ...LoaderOption) *Loader {
	l := &Loader{configPath: strings.TrimSpace(configPath)}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Path returns the config file path the loader reads, if any.
func (l *Loader) Path() string {
	return l.configPath
}

// Load returns the validated SystemConfig.
// Failures are *ConfigurationError.
func (l *Loader) Load() (SystemConfig, error) {
	l.once.Do(func() {
		l.cfg, l.err = l.load()
	})
	if l.err != nil {
		return SystemConfig{}, l.err
	}
	return l.cfg.Clone(), nil
}

func (l *Loader) load() (SystemConfig, error) {
	logger := xglog.WithComponent("config")

	// 1. Defaults
	cfg := Defaults()

	// 2. File (strict)
	if l.configPath != "" {
		if err := decodeFile(l.configPath, &cfg); err != nil {
			return SystemConfig{}, &ConfigurationError{Path: l.configPath, Err: err}
		}
	}

	// 3. Environment overrides
	if err := l.applyEnv(&cfg); err != nil {
		return SystemConfig{}, &ConfigurationError{Path: l.configPath, Err: err}
	}

	normalize(&cfg)

	// 4. Validate
	if err := Validate(cfg); err != nil {
		logger.Error().
			Err(err).
			Str(xglog.FieldEvent, "config.validation_failed").
			Str(xglog.FieldConfigPath, l.configPath).
			Msg("system config failed validation")
		return SystemConfig{}, &ConfigurationError{Path: l.configPath, Err: err}
	}

	source := "env+defaults"
	if l.configPath != "" {
		source = "file"
	}
	logger.Info().
		Str(xglog.FieldEvent, "config.loaded").
		Str("source", source).
		Str(xglog.FieldConfigPath, l.configPath).
		Str(xglog.FieldTab, cfg.HomePage.DefaultTab).
		Str(xglog.FieldContract, cfg.Community.Contracts.Space).
		Int("chain_id", cfg.Chain.ID).
		Msg("system config loaded")

	return cfg, nil
}

func (l *Loader) applyEnv(cfg *SystemConfig) error {
	opts := env.Options{Prefix: EnvPrefix}
	if l.environment != nil {
		opts.Environment = l.environment
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// decodeFile decodes a YAML file over cfg with STRICT parsing.
// Keys absent from the file keep their current (default) values.
func decodeFile(path string, cfg *SystemConfig) error {
	path = filepath.Clean(path)

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("unsupported config format: %s (only YAML supported)", ext)
	}

	// #nosec G304 -- configuration file paths are provided by the operator via CLI/ENV
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		if strings.Contains(err.Error(), "field") && strings.Contains(err.Error(), "not found") {
			return fmt.Errorf("strict config parse error: %w: %w", ErrUnknownConfigField, err)
		}
		return fmt.Errorf("strict config parse error: %w", err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("config file contains multiple documents or trailing content")
	}

	return nil
}

func normalize(cfg *SystemConfig) {
	cfg.Site.Name = strings.TrimSpace(cfg.Site.Name)
	cfg.Site.URL = strings.TrimRight(strings.TrimSpace(cfg.Site.URL), "/")
	cfg.HomePage.DefaultTab = strings.TrimSpace(cfg.HomePage.DefaultTab)
	tabs := cfg.HomePage.Tabs[:0:0]
	for _, tab := range cfg.HomePage.Tabs {
		if tab = strings.TrimSpace(tab); tab != "" {
			tabs = append(tabs, tab)
		}
	}
	cfg.HomePage.Tabs = tabs
	cfg.Community.Name = strings.TrimSpace(cfg.Community.Name)
	cfg.Community.Contracts.Space = strings.TrimSpace(cfg.Community.Contracts.Space)
	cfg.Community.Contracts.Token = strings.TrimSpace(cfg.Community.Contracts.Token)
	cfg.Community.Contracts.NFT = strings.TrimSpace(cfg.Community.Contracts.NFT)
	cfg.Chain.Name = strings.TrimSpace(cfg.Chain.Name)
	cfg.Chain.RPCURL = strings.TrimSpace(cfg.Chain.RPCURL)
}
