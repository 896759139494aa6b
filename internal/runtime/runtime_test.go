// Copyright © 2026 Hollows contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package runtime

import (
	"testing"
	"time"

	"github.com/firefly/hollows/apps/pair"
	"github.com/firefly/hollows/device"
	"github.com/firefly/hollows/internal/attrlink"
	"github.com/firefly/hollows/panel"
)

type fakePins struct{}

func (fakePins) Sample() [4]bool { return [4]bool{} }

func testOptions() Options {
	return Options{
		StorePath: ":memory:",
		Fuses:     device.Fuses{Version: 1, Model: 0xBEEF, Serial: 0xCAFE},
		Keypad:    fakePins{},
		Simulate:  true,
	}
}

func TestBootProvisionsAndPersists(t *testing.T) {
	rt, err := Boot(testOptions())
	if err != nil {
		t.Fatalf("Boot: %v", err)
	}
	defer rt.Shutdown()

	if rt.Device.Status() != device.StatusOk {
		t.Fatalf("status = %v, want Ok", rt.Device.Status())
	}
	if got := rt.Config.GetString("", "deviceName", ""); got != "Hollows" {
		t.Fatalf("deviceName = %q, want Hollows", got)
	}
}

// TestBootWiresKeypadConfig exercises the keypad.reset_chord_hold_s
// config setting: Boot must thread the stored value into the Keypad it
// constructs, not leave it on the package default.
func TestBootWiresKeypadConfig(t *testing.T) {
	rt, err := Boot(testOptions())
	if err != nil {
		t.Fatalf("Boot: %v", err)
	}
	defer rt.Shutdown()

	want := time.Duration(rt.Config.GetFloat("keypad", "reset_chord_hold_s", 2.0) * float64(time.Second))
	if got := rt.Keypad.ResetChordHold(); got != want {
		t.Fatalf("keypad reset chord hold = %v, want %v (from config)", got, want)
	}
}

func TestBootReusesProvisionedKeyAcrossRestarts(t *testing.T) {
	path := t.TempDir() + "/hollows.db"
	opts := testOptions()
	opts.StorePath = path

	rt1, err := Boot(opts)
	if err != nil {
		t.Fatalf("first Boot: %v", err)
	}
	modulus1 := rt1.Device.ModulusN()
	if err := rt1.Shutdown(); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	opts.Simulate = false
	rt2, err := Boot(opts)
	if err != nil {
		t.Fatalf("second Boot: %v", err)
	}
	defer rt2.Shutdown()

	if rt2.Device.Status() != device.StatusOk {
		t.Fatalf("status = %v, want Ok", rt2.Device.Status())
	}
	if rt2.Device.ModulusN() != modulus1 {
		t.Fatal("modulus changed across restart, key material was not reused")
	}
}

func TestBootRegistersBuiltInApps(t *testing.T) {
	rt, err := Boot(testOptions())
	if err != nil {
		t.Fatalf("Boot: %v", err)
	}
	defer rt.Shutdown()

	names := map[string]bool{}
	for _, m := range rt.Apps.List() {
		names[m.Name] = true
	}
	if !names[appDeviceInfo] || !names["pair"] {
		t.Fatalf("registered apps = %v, want deviceinfo and pair", names)
	}
}

func TestFactoryResetClearsProvisioningAndRequestsReset(t *testing.T) {
	rt, err := Boot(testOptions())
	if err != nil {
		t.Fatalf("Boot: %v", err)
	}
	defer rt.Shutdown()

	rt.factoryReset()

	select {
	case <-rt.ResetRequested():
	case <-time.After(time.Second):
		t.Fatal("expected factory reset to request a restart")
	}

	if _, ok, err := rt.Store.GetAttestEntry(attestKeyCipherdata); err != nil {
		t.Fatalf("GetAttestEntry: %v", err)
	} else if ok {
		t.Fatal("expected cipherdata to be cleared")
	}
}

func TestRequestPairingInvokesPairPanel(t *testing.T) {
	rt, err := Boot(testOptions())
	if err != nil {
		t.Fatalf("Boot: %v", err)
	}
	defer rt.Shutdown()

	waitForFocusedKeysHandler(t, rt.Scheduler) // wait for the home screen root panel

	done := make(chan int, 1)
	go func() {
		done <- rt.RequestPairing(pair.Request{PeerName: "central", Policy: attrlink.DefaultPairingPolicy()})
	}()

	deadline := time.After(2 * time.Second)
	for rt.Scheduler.Active() == nil || rt.Scheduler.Active().Parent() == nil {
		select {
		case <-deadline:
			t.Fatal("pair panel never became focused")
		case <-time.After(time.Millisecond):
		}
	}

	rt.Scheduler.Emit(panel.Event{Kind: panel.KindKeys, Keys: panel.Keys{Down: panel.KeyOk, Changed: panel.KeyOk}})

	select {
	case status := <-done:
		if status != 1 {
			t.Fatalf("status = %d, want 1 (accepted)", status)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected RequestPairing to return once accepted")
	}
}

func waitForFocusedKeysHandler(t *testing.T, sched *panel.Scheduler) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		if sched.Active() != nil && sched.HasHandler(panel.KindKeys) {
			return
		}
		select {
		case <-deadline:
			t.Fatal("no panel became focused in time")
		case <-time.After(time.Millisecond):
		}
	}
}

func TestBootWithoutSimulateLeavesMissingStore(t *testing.T) {
	opts := testOptions()
	opts.StorePath = ":memory:"
	opts.Simulate = false

	rt, err := Boot(opts)
	if err != nil {
		t.Fatalf("Boot: %v", err)
	}
	defer rt.Shutdown()

	if rt.Device.Status() != device.StatusMissingStore {
		t.Fatalf("status = %v, want MissingStore", rt.Device.Status())
	}
}
