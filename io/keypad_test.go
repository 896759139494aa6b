// Copyright © 2026 Hollows contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package io

import (
	"testing"
	"time"

	"github.com/firefly/hollows/panel"
)

type fakeReader struct{ pressed [4]bool }

func (f *fakeReader) Sample() [4]bool { return f.pressed }

func TestKeypadMajorityDebounce(t *testing.T) {
	r := &fakeReader{}
	k := NewKeypad(r)

	r.pressed = [4]bool{true, false, false, false} // Cancel held
	down, changed := k.Sample(time.Now())
	if !down.Has(panel.KeyCancel) {
		t.Fatalf("expected Cancel latched down")
	}
	if changed != panel.KeyCancel {
		t.Fatalf("expected Cancel reported as changed, got %v", changed)
	}

	down, changed = k.Sample(time.Now())
	if changed != 0 {
		t.Fatalf("expected no change on repeated sample, got %v", changed)
	}
	if !down.Has(panel.KeyCancel) {
		t.Fatalf("expected Cancel to remain latched")
	}
}

func TestResetChordRequiresHoldDuration(t *testing.T) {
	r := &fakeReader{pressed: [4]bool{true, false, true, false}} // Cancel+North
	k := NewKeypad(r)

	start := time.Now()
	k.Sample(start)
	if k.ResetTriggered() {
		t.Fatalf("reset should not fire immediately")
	}

	k.Sample(start.Add(defaultResetChordHold - time.Millisecond))
	if k.ResetTriggered() {
		t.Fatalf("reset should not fire before hold duration elapses")
	}

	k.Sample(start.Add(defaultResetChordHold + time.Millisecond))
	if !k.ResetTriggered() {
		t.Fatalf("reset should fire once hold duration elapses")
	}
}

func TestResetChordClearsOnRelease(t *testing.T) {
	r := &fakeReader{pressed: [4]bool{true, false, true, false}}
	k := NewKeypad(r)
	start := time.Now()
	k.Sample(start)
	k.Sample(start.Add(defaultResetChordHold + time.Millisecond))
	if !k.ResetTriggered() {
		t.Fatalf("expected reset to have fired")
	}

	r.pressed = [4]bool{false, false, false, false}
	k.Sample(start.Add(defaultResetChordHold + 2*time.Millisecond))
	if k.ResetTriggered() {
		t.Fatalf("expected reset flag to clear once chord released")
	}
}

// TestSetDebounceSamplesOverridesVote exercises the keypad.debounce_samples
// config setting: once the vote is narrowed to one sample per frame, a
// single sampled press is a majority and latches.
func TestSetDebounceSamplesOverridesVote(t *testing.T) {
	r := &fakeReader{pressed: [4]bool{true, false, false, false}}
	k := NewKeypad(r)
	k.SetDebounceSamples(1)

	down, _ := k.Sample(time.Now())
	if !down.Has(panel.KeyCancel) {
		t.Fatalf("expected Cancel latched with a 1-sample vote")
	}
}

// TestSetResetChordHoldOverridesDuration exercises the
// keypad.reset_chord_hold_s config setting.
func TestSetResetChordHoldOverridesDuration(t *testing.T) {
	r := &fakeReader{pressed: [4]bool{true, false, true, false}}
	k := NewKeypad(r)
	k.SetResetChordHold(10 * time.Millisecond)

	start := time.Now()
	k.Sample(start)
	k.Sample(start.Add(11 * time.Millisecond))
	if !k.ResetTriggered() {
		t.Fatalf("expected reset to fire after the shortened hold duration")
	}
	if k.ResetChordHold() != 10*time.Millisecond {
		t.Fatalf("ResetChordHold() = %v, want 10ms", k.ResetChordHold())
	}
}
