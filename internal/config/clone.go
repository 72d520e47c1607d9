// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import "slices"

// Clone returns a deep copy so callers cannot mutate a memoized config.
func (c SystemConfig) Clone() SystemConfig {
	out := c
	out.HomePage.Tabs = slices.Clone(c.HomePage.Tabs)
	return out
}
