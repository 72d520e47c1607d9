// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package address

import (
	"errors"
	"fmt"
)

// ErrInvalidAddress classifies every address format failure.
// Use errors.Is(err, ErrInvalidAddress) or errors.As with *InvalidAddressError.
var ErrInvalidAddress = errors.New("invalid address")

// InvalidAddressError reports a value that does not match the address format.
type InvalidAddressError struct {
	Field string
	Value string
}

func (e *InvalidAddressError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %q is not a 0x-prefixed 40 hex digit address", e.Field, e.Value)
	}
	return fmt.Sprintf("%q is not a 0x-prefixed 40 hex digit address", e.Value)
}

// Is makes errors.Is(err, ErrInvalidAddress) match.
func (e *InvalidAddressError) Is(target error) bool {
	return target == ErrInvalidAddress
}
