// Copyright © 2026 Hollows contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: device/keccak/keccak.go
// Summary: Keccak-256 (not SHA3-256) hashing for the attestation pipeline.
// Usage: Sum256 is the building block the canonical hash procedure in
// device.HashAttest chains repeatedly over a 64-byte scratch buffer.

package keccak

import "golang.org/x/crypto/sha3"

// Size is the digest length in bytes.
const Size = 32

// Sum256 returns the Keccak-256 digest of data. This is the original
// Keccak padding, not the later NIST SHA3-256 variant; accounts and
// signatures derived here must match the legacy convention.
func Sum256(data ...[]byte) [Size]byte {
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		h.Write(d)
	}
	var out [Size]byte
	copy(out[:], h.Sum(nil))
	return out
}
