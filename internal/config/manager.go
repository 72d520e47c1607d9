// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"
)

// Manager handles configuration persistence.
type Manager struct {
	configPath string
}

// NewManager creates a new configuration manager.
func NewManager(configPath string) *Manager {
	return &Manager{
		configPath: configPath,
	}
}

// Save validates cfg and writes it to disk atomically (temp file, fsync, rename).
func (m *Manager) Save(cfg SystemConfig) error {
	if err := Validate(cfg); err != nil {
		return &ConfigurationError{Path: m.configPath, Err: err}
	}

	data, err := Marshal(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(m.configPath), 0750); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	pendingFile, err := renameio.NewPendingFile(m.configPath, renameio.WithPermissions(0640))
	if err != nil {
		return fmt.Errorf("create pending config file: %w", err)
	}
	defer func() { _ = pendingFile.Cleanup() }()

	if _, err := pendingFile.Write(data); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace config file: %w", err)
	}
	return nil
}

// Marshal encodes cfg as the YAML file format read by Loader.
func Marshal(cfg SystemConfig) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}
	return buf.Bytes(), nil
}

// Starter returns a valid example SystemConfig for `config init`.
func Starter() SystemConfig {
	cfg := Defaults()
	cfg.HomePage.DefaultTab = "feed"
	cfg.HomePage.Tabs = []string{"feed", "about"}
	cfg.Community.Name = "My Community"
	cfg.Community.Contracts.Space = "0x0000000000000000000000000000000000000001"
	return cfg
}
