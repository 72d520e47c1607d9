// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package address

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/sha3"
)

// Checksum returns the EIP-55 mixed-case form of the address.
// Invalid addresses are returned unchanged.
func (a Address) Checksum() string {
	if !IsValid(string(a)) {
		return string(a)
	}

	lower := strings.ToLower(string(a)[2:])

	h := sha3.NewLegacyKeccak256()
	_, _ = h.Write([]byte(lower))
	digest := hex.EncodeToString(h.Sum(nil))

	out := make([]byte, 0, Length)
	out = append(out, '0', 'x')
	for i := 0; i < len(lower); i++ {
		c := lower[i]
		if c >= 'a' && c <= 'f' && digest[i] >= '8' {
			c -= 'a' - 'A'
		}
		out = append(out, c)
	}
	return string(out)
}

// HasValidChecksum reports whether a mixed-case address carries a correct
// EIP-55 checksum. All-lowercase and all-uppercase addresses carry no
// checksum and are accepted.
func (a Address) HasValidChecksum() bool {
	if !IsValid(string(a)) {
		return false
	}
	body := string(a)[2:]
	if body == strings.ToLower(body) || body == strings.ToUpper(body) {
		return true
	}
	return a.Checksum() == string(a)
}
