// Copyright © 2026 Hollows contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: io/keypad.go
// Summary: Keypad sampling, majority-vote debounce, and chord detection.
// Usage: Sampled 10x per frame by the IO loop; reset chord feeds Loop's
// hard-reset watchdog.

package io

import (
	"time"

	"github.com/firefly/hollows/panel"
)

// defaultSamplesPerFrame/defaultResetChordHold are the values a Keypad
// uses until overridden via SetDebounceSamples/SetResetChordHold (the
// keypad.debounce_samples/reset_chord_hold_s config settings, wired by
// the runtime at boot).
const (
	defaultSamplesPerFrame = 10
	defaultResetChordHold  = 2 * time.Second
)

// PinReader reads the instantaneous electrical state of the four keypad
// pins. The concrete GPIO driver is an out-of-scope external collaborator;
// Loop only consumes this contract.
type PinReader interface {
	// Sample returns true per pin if currently pressed, in the order
	// Cancel, Ok, North, South.
	Sample() [4]bool
}

// Keypad debounces PinReader samples by majority vote over a frame's
// worth of samples (§4.2).
type Keypad struct {
	reader PinReader
	latch  panel.KeySet

	samplesPerFrame int
	resetChordHold  time.Duration

	resetHoldSince time.Time
	resetFired     bool
	resetReported  bool
}

func NewKeypad(reader PinReader) *Keypad {
	return &Keypad{
		reader:          reader,
		samplesPerFrame: defaultSamplesPerFrame,
		resetChordHold:  defaultResetChordHold,
	}
}

// SetDebounceSamples overrides the number of PinReader samples a frame's
// majority vote is taken over. Must be called before Run starts sampling.
func (k *Keypad) SetDebounceSamples(n int) {
	if n > 0 {
		k.samplesPerFrame = n
	}
}

// SetResetChordHold overrides how long the Cancel+North chord must be
// held before ResetTriggered fires.
func (k *Keypad) SetResetChordHold(d time.Duration) {
	if d > 0 {
		k.resetChordHold = d
	}
}

// ResetChordHold returns the hold duration currently armed, for logging.
func (k *Keypad) ResetChordHold() time.Duration { return k.resetChordHold }

// Sample collects up to samplesPerFrame readings, latches each pin when
// more than half the samples were pressed, and returns the new down/
// changed bitsets.
func (k *Keypad) Sample(now time.Time) (down, changed panel.KeySet) {
	var counts [4]int
	for i := 0; i < k.samplesPerFrame; i++ {
		s := k.reader.Sample()
		for pin, pressed := range s {
			if pressed {
				counts[pin]++
			}
		}
	}

	var latch panel.KeySet
	bits := [4]panel.KeySet{panel.KeyCancel, panel.KeyOk, panel.KeyNorth, panel.KeySouth}
	for pin, count := range counts {
		if count*2 > k.samplesPerFrame {
			latch |= bits[pin]
		}
	}

	changed = k.latch ^ latch
	k.latch = latch

	k.trackResetChord(latch, now)
	return latch, changed
}

func (k *Keypad) trackResetChord(latch panel.KeySet, now time.Time) {
	const chord = panel.KeyCancel | panel.KeyNorth
	if latch&chord != chord {
		k.resetHoldSince = time.Time{}
		k.resetFired = false
		k.resetReported = false
		return
	}
	if k.resetHoldSince.IsZero() {
		k.resetHoldSince = now
		return
	}
	if !k.resetFired && now.Sub(k.resetHoldSince) >= k.resetChordHold {
		k.resetFired = true
	}
}

// ResetTriggered reports whether the reset chord has been held long
// enough since the chord started, exactly once per hold.
func (k *Keypad) ResetTriggered() bool {
	if !k.resetFired || k.resetReported {
		return false
	}
	k.resetReported = true
	return true
}
