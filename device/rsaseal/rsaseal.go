// Copyright © 2026 Hollows contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: device/rsaseal/rsaseal.go
// Summary: Simulates the on-chip RSA-3072 signing peripheral: the
// private key never leaves this package, and every signature crosses
// the byte-reversed little-endian boundary the real hardware imposes
// (§4.4 "RSA signing", §9 "Byte-reversed PKCS#1 signing").
// Usage: Unseal once at boot from the device's cipherdata blob; Sign is
// safe for concurrent use and blocks the caller until the (simulated)
// peripheral completes, matching the hardware's synchronous contract.

package rsaseal

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"errors"
	"math/big"
)

// ModulusSize is the RSA-3072 modulus width in bytes.
const ModulusSize = 384

var ErrNotSealed = errors.New("rsaseal: signer has no sealed key material")

// Signer holds an unsealed RSA-3072 private key and performs PKCS#1 v1.5
// signatures the way the hardware peripheral does: the padded digest
// block is byte-reversed to little-endian before the modular
// exponentiation and the result is reversed back before it leaves this
// package. Mathematically the double reversal is a no-op on the signed
// value, but callers depending on bit-exact hardware traces should go
// through Sign rather than crypto/rsa directly.
type Signer struct {
	priv *rsa.PrivateKey
}

// Unseal reconstructs a signer from an opaque cipherdata blob. In this
// simulation the blob is a PKCS#1 DER encoding of the private key;
// a real peripheral would instead decrypt it with a key that never
// leaves silicon.
func Unseal(cipherdata []byte) (*Signer, error) {
	priv, err := x509.ParsePKCS1PrivateKey(cipherdata)
	if err != nil {
		return nil, err
	}
	if priv.N.BitLen() > ModulusSize*8 {
		return nil, errors.New("rsaseal: modulus wider than RSA-3072")
	}
	return &Signer{priv: priv}, nil
}

// GenerateSealed produces a fresh RSA-3072 key and its cipherdata
// encoding, for provisioning a new device in tests and factory tooling.
func GenerateSealed() (*Signer, []byte, error) {
	priv, err := rsa.GenerateKey(rand.Reader, ModulusSize*8)
	if err != nil {
		return nil, nil, err
	}
	return &Signer{priv: priv}, x509.MarshalPKCS1PrivateKey(priv), nil
}

// Modulus returns the public modulus N as a fixed ModulusSize-byte
// big-endian value, for persisting into the "pubkey-n" store entry.
func (s *Signer) Modulus() [ModulusSize]byte {
	var out [ModulusSize]byte
	s.priv.N.FillBytes(out[:])
	return out
}

// Sign computes the PKCS#1 v1.5 signature over SHA-256(preimage),
// routing the padded block through the hardware's little-endian
// exponentiation boundary. The returned signature is ModulusSize bytes,
// big-endian, ready to place on the wire.
func (s *Signer) Sign(preimage []byte) ([ModulusSize]byte, error) {
	var out [ModulusSize]byte
	if s.priv == nil {
		return out, ErrNotSealed
	}
	digest := sha256.Sum256(preimage)

	em, err := emsaPKCS1v15(digest[:], ModulusSize)
	if err != nil {
		return out, err
	}

	emLE := reverseBytes(em)
	sigLE := rawExponentiate(s.priv, emLE)
	sigBE := reverseBytes(sigLE)

	copy(out[:], sigBE)
	return out, nil
}

// rawExponentiate performs the peripheral's modular exponentiation. The
// input is interpreted as a little-endian integer, matching the
// hardware's native bignum limb order; the digits are reversed back to
// standard big-endian before big.Int parses them, exponentiation is
// done, and the result is serialized little-endian to mirror what the
// real peripheral would hand back over its register interface.
func rawExponentiate(priv *rsa.PrivateKey, leInput []byte) []byte {
	beInput := reverseBytes(leInput)
	m := new(big.Int).SetBytes(beInput)

	c := new(big.Int).Exp(m, priv.D, priv.N)

	out := make([]byte, ModulusSize)
	c.FillBytes(out)
	return reverseBytes(out)
}

func reverseBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}

// hashPrefixSHA256 is the DER encoding of the SHA-256 DigestInfo prefix
// used in PKCS#1 v1.5 signatures (RFC 8017 §9.2 note 1).
var hashPrefixSHA256 = []byte{
	0x30, 0x31, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65,
	0x03, 0x04, 0x02, 0x01, 0x05, 0x00, 0x04, 0x20,
}

// emsaPKCS1v15 builds the EMSA-PKCS1-v1_5 encoded message block for a
// SHA-256 digest at the given modulus width: 0x00 0x01 0xFF...0xFF 0x00
// DigestInfo digest.
func emsaPKCS1v15(digest []byte, emLen int) ([]byte, error) {
	tLen := len(hashPrefixSHA256) + len(digest)
	if emLen < tLen+11 {
		return nil, errors.New("rsaseal: modulus too small for SHA-256 PKCS#1 v1.5 padding")
	}
	em := make([]byte, emLen)
	em[0] = 0x00
	em[1] = 0x01
	padLen := emLen - tLen - 3
	for i := 0; i < padLen; i++ {
		em[2+i] = 0xFF
	}
	em[2+padLen] = 0x00
	copy(em[emLen-tLen:], hashPrefixSHA256)
	copy(em[emLen-len(digest):], digest)
	return em, nil
}
