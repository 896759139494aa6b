// Copyright © 2026 Hollows contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: device/attest.go
// Summary: The canonical payload hash and the RSA attestation built on
// top of it (§4.4 "Canonical hash of payload", "RSA signing", "Nonce
// policy").
// Usage: HashAttest is a pure function callable from any task; Attest
// blocks the caller on the sealed signer and must only be reached
// through a Device whose Status is Ok.

package device

import (
	"crypto/rand"
	"encoding/binary"
	"errors"

	"github.com/firefly/hollows/device/keccak"
)

// ErrNotProvisioned is returned by every attestation entrypoint when
// the device's sticky status is not Ok.
var ErrNotProvisioned = errors.New("device: not provisioned")

// Param is one entry of a structured payload's params list.
type Param struct {
	Type  string
	Name  string
	Value []byte
}

// Domain scopes a payload to a chain and contract, both left-padded to
// 32 bytes in the canonical hash.
type Domain struct {
	ChainID  []byte
	Contract []byte
}

// Payload is the structured input to HashAttest.
type Payload struct {
	Version uint32
	Domain  Domain
	Action  string
	Params  []Param
	Salt    [32]byte
}

func padLeft32(b []byte) ([32]byte, error) {
	var out [32]byte
	if len(b) > 32 {
		return out, errors.New("device: value wider than 32 bytes")
	}
	copy(out[32-len(b):], b)
	return out, nil
}

// HashAttest computes the 32-byte canonical attestation digest of a
// payload. It operates on a 64-byte scratch split into halves A and B,
// folding each payload field into A via Keccak256(A||B), exactly as the
// source's signing routine does.
//
// Step 4 joins the action's parameter signature with an open-paren byte
// between entries rather than a comma; this is preserved rather than
// corrected; see the "open paren" decision in the design ledger for why
// (§9 open question 1). Step 7's dynamic-type test also only compares
// the first 5 bytes of the declared type, so "string" and "bytes" are
// treated identically; that quirk is preserved too (§9 open question 2).
func HashAttest(p Payload) ([32]byte, error) {
	if p.Version != 1 {
		return [32]byte{}, errors.New("device: unsupported payload version")
	}

	var a, b [32]byte

	binary.BigEndian.PutUint32(a[28:], p.Version)

	chainB, err := padLeft32(p.Domain.ChainID)
	if err != nil {
		return [32]byte{}, err
	}
	b = chainB
	a = keccak.Sum256(a[:], b[:])

	contractB, err := padLeft32(p.Domain.Contract)
	if err != nil {
		return [32]byte{}, err
	}
	b = contractB
	a = keccak.Sum256(a[:], b[:])

	sig := buildActionSignature(p.Action, p.Params)
	b = keccak.Sum256(sig)
	a = keccak.Sum256(a[:], b[:])

	a = keccak.Sum256(append(append([]byte{}, a[:]...), 0x00))

	b = p.Salt
	a = keccak.Sum256(a[:], b[:])

	for _, param := range p.Params {
		if isDynamicType(param.Type) {
			b = keccak.Sum256(param.Value)
		} else {
			padded, err := padLeft32(param.Value)
			if err != nil {
				return [32]byte{}, err
			}
			b = padded
		}
		a = keccak.Sum256(a[:], b[:])
	}

	a = keccak.Sum256(append(append([]byte{}, a[:]...), 0x00))

	return a, nil
}

// isDynamicType preserves the source's memcmp(type, "string", 5) quirk:
// it compares only the first 5 bytes of the declared type name, so both
// "bytes" and anything sharing "strin"-as-prefix-of-5-bytes with
// "string" reads as dynamic.
func isDynamicType(typ string) bool {
	if typ == "bytes" {
		return true
	}
	return len(typ) >= 5 && typ[:5] == "strin"
}

// buildActionSignature reproduces the source's (buggy) parameter list
// join: "(" between entries instead of ",". See the design ledger.
func buildActionSignature(action string, params []Param) []byte {
	out := append([]byte{}, action...)
	out = append(out, '(')
	for i, p := range params {
		if i > 0 {
			out = append(out, '(')
		}
		out = append(out, p.Type...)
		out = append(out, ' ')
		out = append(out, p.Name...)
	}
	out = append(out, ')')
	return out
}

// NonceKind separates the two nonce namespaces so the internal
// key-derivation path and externally exposed attestations cannot
// accidentally share a nonce value.
type NonceKind int

const (
	NonceExternal NonceKind = iota
	NonceInternal
)

func newNonce(kind NonceKind) [16]byte {
	if kind == NonceInternal {
		var n [16]byte
		n[0] = 0x80
		return n
	}
	var n [16]byte
	_, _ = rand.Read(n[:])
	n[0] &^= 0x80
	return n
}

// Attestation is a signed statement binding a device, a nonce, and a
// caller-supplied challenge digest.
type Attestation struct {
	Version   byte
	Nonce     [16]byte
	Challenge [32]byte
	Signature [384]byte
}

// Attest produces an externally exposed attestation of challenge. Any
// attestation it returns has nonce[0]&0x80 == 0 (invariant #9).
func Attest(d *Device, challenge [32]byte) (*Attestation, error) {
	return attest(d, challenge, NonceExternal)
}

func attestInternal(d *Device, challenge [32]byte) (*Attestation, error) {
	return attest(d, challenge, NonceInternal)
}

func attest(d *Device, challenge [32]byte, kind NonceKind) (*Attestation, error) {
	if d.Status() != StatusOk {
		return nil, ErrNotProvisioned
	}

	nonce := newNonce(kind)
	preimage := make([]byte, 0, 49)
	preimage = append(preimage, 1)
	preimage = append(preimage, nonce[:]...)
	preimage = append(preimage, challenge[:]...)

	sig, err := d.signer.Sign(preimage)
	if err != nil {
		return nil, err
	}

	return &Attestation{
		Version:   1,
		Nonce:     nonce,
		Challenge: challenge,
		Signature: sig,
	}, nil
}
