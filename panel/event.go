// Copyright © 2026 Hollows contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: panel/event.go
// Summary: Defines the tagged event union delivered to panels and the
// handler table each PanelContext keeps.
// Usage: Producers (IO, radio, the scheduler itself) build an Event and
// call Scheduler.Emit; panels install handlers with On.

package panel

import "time"

// Kind identifies which variant of Event.Props is populated.
type Kind int

const (
	KindRenderScene Kind = iota
	KindRadioState
	KindKeys
	KindFocus
	KindMessage
	KindUser1
	KindUser2
	kindCount // sentinel, not a real event kind
)

func (k Kind) String() string {
	switch k {
	case KindRenderScene:
		return "RenderScene"
	case KindRadioState:
		return "RadioState"
	case KindKeys:
		return "Keys"
	case KindFocus:
		return "Focus"
	case KindMessage:
		return "Message"
	case KindUser1:
		return "User1"
	case KindUser2:
		return "User2"
	default:
		return "Unknown"
	}
}

// RenderScene is posted once per IO frame at the focused panel.
type RenderScene struct {
	Ticks uint64
	Dt    time.Duration
}

// RadioState reports link-layer connection changes.
type RadioState struct {
	ConnID    uint16
	RadioOn   bool
	Connected bool
}

// Keys reports a keypad sample.
type Keys struct {
	Down      KeySet
	Changed   KeySet
	Cancelled bool
}

// KeySet is a bitset over the four physical keys.
type KeySet uint8

const (
	KeyCancel KeySet = 1 << iota
	KeyOk
	KeyNorth
	KeySouth
)

func (k KeySet) Has(key KeySet) bool { return k&key != 0 }

// Focus is synthesized by the scheduler when a panel becomes focused.
type Focus struct {
	ID          uint64
	FirstFocus  bool
	ChildResult int
}

// Message carries a decoded inbound radio request to the focused panel.
type Message struct {
	ID     uint32
	Method string
	Params interface{}
}

// Event is a tagged record with exactly one populated Props field, copied
// by value through a panel's queue the way the spec's fixed-size props
// union is copied.
type Event struct {
	Kind        Kind
	RenderScene RenderScene
	RadioState  RadioState
	Keys        Keys
	Focus       Focus
	Message     Message
	User1       interface{}
	User2       interface{}
}

// Handler processes one dispatched event for its owning panel.
type Handler func(ev Event) bool
