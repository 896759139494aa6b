// Copyright © 2026 Hollows contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/attrlink/attrs.go
// Summary: The device's simulated GATT attribute layout (§6 "Attribute
// layout (wireless service)", "Advertising", "Pairing").
// Usage: descriptive constants only; Server wires the Content and
// Logger characteristics to real read/write behavior.

package attrlink

// Service and characteristic UUIDs, as 16-bit short forms, from §6.
const (
	ServiceDeviceInformation = 0x180A
	ServiceBattery           = 0x180F
	ServiceFireflySerial     = 0xABF0

	CharContent = 0xABF1 // read+write+indicate, read/write encrypted
	CharLogger  = 0xABF2 // notify
)

// DeviceInformation mirrors the read-only Device Information service
// (0x180A) characteristics.
type DeviceInformation struct {
	Manufacturer    string
	ModelNumber     string
	FirmwareVersion string
	VendorID        uint16
	ProductID       uint16
	ProductVersion  uint16
}

// Advertising describes the device's discoverability posture.
type Advertising struct {
	DeviceName          string
	GeneralDiscoverable bool
	BREDRUnsupported    bool
	ServiceUUIDs        []uint16
}

// NewAdvertising builds the advertising payload description for name,
// always discoverable, BR/EDR unsupported, advertising the Firefly
// Serial Protocol service per §6.
func NewAdvertising(name string) Advertising {
	return Advertising{
		DeviceName:          name,
		GeneralDiscoverable: true,
		BREDRUnsupported:    true,
		ServiceUUIDs:        []uint16{ServiceFireflySerial},
	}
}

// PairingPolicy describes the bonding requirements from §6 "Pairing".
type PairingPolicy struct {
	Bonding            bool
	RequireMITM        bool
	RequireSecureConns bool
	IOCapabilityNoIO   bool
}

// DefaultPairingPolicy is bonding with MITM protection and secure
// connections, "no input no output" IO capability.
func DefaultPairingPolicy() PairingPolicy {
	return PairingPolicy{
		Bonding:            true,
		RequireMITM:        true,
		RequireSecureConns: true,
		IOCapabilityNoIO:   true,
	}
}
