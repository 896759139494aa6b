// Copyright © 2026 Hollows contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: device/account.go
// Summary: Deterministic secp256k1 account key derivation from the
// device's internal attestation (§4.4 "Account key derivation").
// Usage: AccountKey(d, 0) is called once at boot on the Prime task and
// cached; later calls for account 0 return the cached value without
// re-deriving or re-signing.

package device

import (
	"errors"

	"github.com/tyler-smith/go-bip32"
	"github.com/tyler-smith/go-bip39"

	"github.com/firefly/hollows/device/keccak"
)

var errAccountOutOfRange = errors.New("device: account index must be < 2^31")

const maxAccount = 1 << 31

// AccountKey derives the 32-byte secp256k1 private key for the given
// BIP-44 account index under path m/44'/60'/account'/0/0. account must
// be less than 2^31. Account 0 is served from an in-memory cache after
// its first derivation, guarded the way the source guards its
// privkey0Lock binary semaphore.
func AccountKey(d *Device, account uint32) ([32]byte, error) {
	if account >= maxAccount {
		return [32]byte{}, errAccountOutOfRange
	}
	if account == 0 {
		d.acctMu.Lock()
		defer d.acctMu.Unlock()
		if d.account0 != nil {
			return *d.account0, nil
		}
		key, err := deriveAccountKey(d, 0)
		if err != nil {
			return [32]byte{}, err
		}
		cached := key
		d.account0 = &cached
		return key, nil
	}
	return deriveAccountKey(d, account)
}

func deriveAccountKey(d *Device, account uint32) ([32]byte, error) {
	if d.Status() != StatusOk {
		return [32]byte{}, ErrNotProvisioned
	}

	digest := keccak.Sum256(d.cipherdata)

	att, err := attestInternal(d, digest)
	if err != nil {
		return [32]byte{}, err
	}

	entropySrc := keccak.Sum256(att.Signature[:])
	entropy := entropySrc[:16]

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return [32]byte{}, err
	}
	seed := bip39.NewSeed(mnemonic, "")

	master, err := bip32.NewMasterKey(seed)
	if err != nil {
		return [32]byte{}, err
	}

	child := master
	for _, idx := range []uint32{
		hardened(44),
		hardened(60),
		hardened(account),
		0,
		0,
	} {
		child, err = child.NewChildKey(idx)
		if err != nil {
			return [32]byte{}, err
		}
	}

	var out [32]byte
	copy(out[:], child.Key)
	return out, nil
}

func hardened(idx uint32) uint32 {
	return idx + bip32.FirstHardenedChild
}
