// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package address provides the typed on-chain address used for community contracts.
package address

import (
	"regexp"
	"strings"
)

// Length is the length of a textual address including the 0x prefix.
const Length = 42

// Pattern is the accepted textual address format.
var Pattern = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)

// Address is a validated 20-byte hex address in its textual form.
// The zero value is the empty address and is never valid.
type Address string

// Parse validates s and returns it typed as an Address.
// The casing of s is preserved.
func Parse(s string) (Address, error) {
	return ParseField("", s)
}

// ParseField is Parse with the originating config field recorded on failure.
func ParseField(field, s string) (Address, error) {
	if !Pattern.MatchString(s) {
		return "", &InvalidAddressError{Field: field, Value: s}
	}
	return Address(s), nil
}

// IsValid reports whether s matches the address format.
func IsValid(s string) bool {
	return Pattern.MatchString(s)
}

// String returns the address exactly as configured.
func (a Address) String() string {
	return string(a)
}

// IsZero reports whether the address is unset.
func (a Address) IsZero() bool {
	return a == ""
}

// Lower returns the all-lowercase form of the address.
func (a Address) Lower() string {
	return strings.ToLower(string(a))
}

// Equal compares two addresses case-insensitively.
func (a Address) Equal(b Address) bool {
	return strings.EqualFold(string(a), string(b))
}

// Short returns the abbreviated display form, e.g. "0xABCD...EF01".
func (a Address) Short() string {
	s := string(a)
	if len(s) < Length {
		return s
	}
	return s[:6] + "..." + s[len(s)-4:]
}
