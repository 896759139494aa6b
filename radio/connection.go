// Copyright © 2026 Hollows contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: radio/connection.go
// Summary: The Connection singleton (§3) and its clear-to-send
// backpressure flag (§4.3 "Backpressure").
// Usage: reset on each link-layer connect; consulted by the outbound
// pump before queuing each chunk.

package radio

import "sync"

// ConnFlags mirrors the spec's {Connected, Subscribed, Encrypted} state
// bits.
type ConnFlags uint8

const (
	FlagConnected ConnFlags = 1 << iota
	FlagSubscribed
	FlagEncrypted
)

// Connection is the singleton link-layer state (§3).
type Connection struct {
	mu    sync.Mutex
	flags ConnFlags
	peer  [6]byte
	own   [6]byte
	connID uint16
	cts   bool
}

func NewConnection() *Connection {
	return &Connection{}
}

// Reset clears all state on a fresh link-layer connect, assigning connID
// and peer address.
func (c *Connection) Reset(connID uint16, peer [6]byte, own [6]byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.flags = FlagConnected
	c.connID = connID
	c.peer = peer
	c.own = own
	c.cts = true
}

func (c *Connection) SetSubscribed(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if on {
		c.flags |= FlagSubscribed
	} else {
		c.flags &^= FlagSubscribed
	}
}

func (c *Connection) SetEncrypted(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if on {
		c.flags |= FlagEncrypted
	} else {
		c.flags &^= FlagEncrypted
	}
}

func (c *Connection) Flags() ConnFlags {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.flags
}

// ClearToSend reports whether the last indication has been acked, i.e.
// whether a new indication may be queued.
func (c *Connection) ClearToSend() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cts
}

// Arm clears CTS when a new indication is queued.
func (c *Connection) Arm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cts = false
}

// NotifyComplete is the stack's notify-complete callback: it re-arms
// CTS so the next chunk may be queued (§4.3/§5). Also used to re-arm
// after an outbound transport error so the frame is retried.
func (c *Connection) NotifyComplete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cts = true
}

func (c *Connection) ConnID() uint16 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connID
}
