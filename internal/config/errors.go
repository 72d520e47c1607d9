// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"errors"
	"fmt"

	"github.com/ManuGH/spacegate/internal/validate"
)

var (
	// ErrConfiguration classifies every failure to produce a SystemConfig.
	// Use errors.Is(err, ErrConfiguration) instead of string matching.
	ErrConfiguration = errors.New("configuration error")

	// ErrUnknownConfigField classifies strict YAML parse failures caused by unknown keys.
	ErrUnknownConfigField = errors.New("unknown config field")
)

// ConfigurationError reports a missing or malformed configuration value.
type ConfigurationError struct {
	Path string // config file path, empty when loaded from env/defaults only
	Err  error
}

func (e *ConfigurationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("configuration error (%s): %v", e.Path, e.Err)
	}
	return fmt.Sprintf("configuration error: %v", e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrConfiguration) match.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// Fields returns the individual field failures, if the error came from validation.
func (e *ConfigurationError) Fields() []validate.Error {
	var verr validate.ValidationError
	if errors.As(e.Err, &verr) {
		return verr.Errors()
	}
	return nil
}
