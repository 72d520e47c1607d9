// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package config loads the per-deployment SystemConfig and the ambient
// runtime/server settings for spacegate.
//
// SystemConfig precedence is: defaults < YAML file < SPACEGATE_* environment.
// A Loader memoizes its first result, so every caller within one process
// observes the same configuration.
package config
