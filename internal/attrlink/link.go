// Copyright © 2026 Hollows contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/attrlink/link.go
// Summary: The in-process attribute-layer transport connecting the
// radio task to a simulated peer. Real hardware carries these frames
// over BLE GATT writes/indications; here they cross a net.Pipe using
// the gobwas/ws frame format so the chunking/backpressure code the
// radio task drives is exercised against a real framed-transport
// implementation rather than a bespoke one.
// Usage: NewLink returns the device side and peer side of one
// connection; radio.Task.HandleInbound/PumpOutbound are wired to the
// device side by Server.

package attrlink

import (
	"fmt"
	"io"
	"net"

	"github.com/gobwas/ws"
)

// Link is a pair of connected in-process endpoints, one per side of a
// simulated BLE connection.
type Link struct {
	Device net.Conn
	Peer   net.Conn
}

// NewLink creates a connected device/peer pair.
func NewLink() *Link {
	device, peer := net.Pipe()
	return &Link{Device: device, Peer: peer}
}

// Close tears down both ends.
func (l *Link) Close() error {
	err1 := l.Device.Close()
	err2 := l.Peer.Close()
	if err1 != nil {
		return err1
	}
	return err2
}

// WriteDeviceFrame writes payload as a server-originated (unmasked)
// binary frame, the direction the radio task's indications travel.
func WriteDeviceFrame(w io.Writer, payload []byte) error {
	return ws.WriteFrame(w, ws.NewBinaryFrame(payload))
}

// WritePeerFrame writes payload as a client-originated (masked) binary
// frame, the direction a peer's characteristic writes travel.
func WritePeerFrame(w io.Writer, payload []byte) error {
	return ws.WriteFrame(w, ws.MaskFrameInPlace(ws.NewBinaryFrame(payload)))
}

// ReadFrame reads one binary frame from r and returns its (unmasked)
// payload.
func ReadFrame(r io.Reader) ([]byte, error) {
	frame, err := ws.ReadFrame(r)
	if err != nil {
		return nil, err
	}
	if frame.Header.OpCode != ws.OpBinary {
		return nil, fmt.Errorf("attrlink: unexpected opcode %v", frame.Header.OpCode)
	}
	if frame.Header.Masked {
		ws.Cipher(frame.Payload, frame.Header.Mask, 0)
	}
	return frame.Payload, nil
}
