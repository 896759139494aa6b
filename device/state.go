// Copyright © 2026 Hollows contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: device/state.go
// Summary: Device-wide provisioning state: fuses, the sealed signer,
// and the sticky boot status every attestation entrypoint consults
// first (§4.4 "Failure semantics", §6 "Persistent state").
// Usage: Boot once at startup from the "attest" store namespace and the
// fuse block; the resulting Device is shared read-mostly by the panel,
// radio, and prime tasks.

package device

import (
	"errors"
	"sync"

	"github.com/firefly/hollows/device/rsaseal"
)

// Status is the device's sticky provisioning state. Once set to
// anything other than Ok it never recovers without a reboot.
type Status int

const (
	// StatusOk means the device is fully provisioned and attestation
	// entrypoints may proceed.
	StatusOk Status = iota
	// StatusMissingFuses means fuse block 3 is absent or malformed
	// (version, model, or serial word is zero/unset).
	StatusMissingFuses
	// StatusMissingStore means the "attest" namespace is missing one of
	// cipherdata, attest, or pubkey-n.
	StatusMissingStore
	// StatusBadCipherdata means cipherdata failed to unseal into a
	// usable RSA private key.
	StatusBadCipherdata
)

func (s Status) String() string {
	switch s {
	case StatusOk:
		return "Ok"
	case StatusMissingFuses:
		return "MissingFuses"
	case StatusMissingStore:
		return "MissingStore"
	case StatusBadCipherdata:
		return "BadCipherdata"
	default:
		return "Unknown"
	}
}

// Fuses mirrors device fuse block 3: word 0 version (must be 1), word 1
// model number (nonzero), word 2 serial number (nonzero).
type Fuses struct {
	Version uint32
	Model   uint32
	Serial  uint32
}

func (f Fuses) valid() bool {
	return f.Version == 1 && f.Model != 0 && f.Serial != 0
}

// Device is the runtime's provisioned-identity singleton.
type Device struct {
	status Status
	fuses  Fuses

	signer      *rsaseal.Signer
	cipherdata  []byte
	attestProof [64]byte
	modulusN    [rsaseal.ModulusSize]byte

	acctMu   sync.Mutex
	account0 *[32]byte
}

// ErrMissingEntry names the case of a required "attest" namespace entry
// being absent from the store. Boot does not return it; it records that
// case as StatusMissingStore.
var ErrMissingEntry = errors.New("device: missing attest namespace entry")

// Boot validates fuses and unseals the signer from cipherdata. It never
// returns an error for provisioning problems; those are recorded in
// Status() instead, mirroring the source's boot-fault taxonomy where a
// malformed device still comes up far enough to report its own status
// over the wire.
func Boot(fuses Fuses, cipherdata, attestProof, pubkeyN []byte) *Device {
	d := &Device{fuses: fuses}

	if !fuses.valid() {
		d.status = StatusMissingFuses
		return d
	}
	if len(cipherdata) == 0 || len(attestProof) != 64 || len(pubkeyN) != rsaseal.ModulusSize {
		d.status = StatusMissingStore
		return d
	}

	signer, err := rsaseal.Unseal(cipherdata)
	if err != nil {
		d.status = StatusBadCipherdata
		return d
	}

	d.signer = signer
	d.cipherdata = append([]byte{}, cipherdata...)
	copy(d.attestProof[:], attestProof)
	copy(d.modulusN[:], pubkeyN)
	d.status = StatusOk
	return d
}

// Status reports the device's sticky boot status.
func (d *Device) Status() Status { return d.status }

// Fuses returns the fuse block values read at boot.
func (d *Device) Fuses() Fuses { return d.fuses }

// ModulusN returns the RSA-3072 public modulus, for the device-info
// panel and the Device Information attribute service.
func (d *Device) ModulusN() [rsaseal.ModulusSize]byte { return d.modulusN }
