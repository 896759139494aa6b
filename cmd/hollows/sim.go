// Copyright © 2026 Hollows contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/hollows/sim.go
// Summary: Stand-ins for the keypad GPIO and RGB LED peripherals, which
// are out-of-scope external collaborators (§4.2). The simulator never
// reports a key pressed and discards LED color updates; a real build
// links a GPIO-backed io.PinReader and io.LEDDriver instead.

package main

import "github.com/lucasb-eyer/go-colorful"

type simulatedPins struct{}

func (simulatedPins) Sample() [4]bool { return [4]bool{} }

type simulatedLED struct{}

func (simulatedLED) Set(c colorful.Color) {}
