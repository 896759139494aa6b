// Copyright © 2026 Hollows contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: radio/wire.go
// Summary: Wire-level constants for the framed message protocol (§4.3,
// §6).
// Usage: shared by Message's state machine and the outbound reply pump.
//
// Grounded on protocol/protocol.go's Header/opcode layout (little-endian
// fixed-width fields, a fixed magic/version gate); here the "header" is
// a single opcode byte per the spec's ≤~510-byte frame budget rather
// than a 40-byte struct, because the transport already frames each
// attribute write/indication.

package radio

// Opcode identifies an inbound frame's request kind.
type Opcode uint8

const (
	OpReset            Opcode = 0x02
	OpQuery            Opcode = 0x03
	OpStartMessage     Opcode = 0x06
	OpContinueMessage  Opcode = 0x07

	// OpDeviceRestarting is a device-initiated notification (via the
	// Command Queue, not a reply to any inbound frame) warning a
	// connected peer the link is about to drop, issued before a
	// keypad-chord or factory-reset restart.
	OpDeviceRestarting Opcode = 0x40
)

// Status is the one-byte result code prefixing every outbound response
// frame.
type Status uint8

const (
	StatusOK                 Status = 0x00
	StatusUnsupportedVersion Status = 0x81
	StatusBadCommand         Status = 0x82
	StatusBufferOverrun      Status = 0x84
	StatusMissingMessage     Status = 0x85
	StatusBadChecksum        Status = 0x86
	StatusBusy               Status = 0x91
	StatusUnknown            Status = 0x8f
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusUnsupportedVersion:
		return "UNSUPPORTED_VERSION"
	case StatusBadCommand:
		return "BAD_COMMAND"
	case StatusBufferOverrun:
		return "BUFFER_OVERRUN"
	case StatusMissingMessage:
		return "MISSING_MESSAGE"
	case StatusBadChecksum:
		return "BAD_CHECKSUM"
	case StatusBusy:
		return "BUSY"
	default:
		return "UNKNOWN"
	}
}

// Sizing constants for the Message singleton (§3, §6).
const (
	DigestSize       = 32
	PayloadCapacity  = 16 * 1024
	EnvelopeOverhead = 84
	BufferCapacity   = PayloadCapacity + EnvelopeOverhead

	// defaultOutboundChunkSize is the largest body a single outbound
	// START_MESSAGE/CONTINUE_MESSAGE frame carries (§4.3), until
	// overridden via Message.SetChunkSize (the radio.mtu config
	// setting, wired by the runtime at boot).
	defaultOutboundChunkSize = 506
)

// QueryReply is the payload of a QUERY response frame.
type QueryReply struct {
	Model        uint32
	Serial       uint32
	CurrentOffset uint32
	CurrentLength uint32
}
