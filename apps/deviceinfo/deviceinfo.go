// Copyright © 2026 Hollows contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/deviceinfo/deviceinfo.go
// Summary: The device info panel (supplemented from `src/device-info.c`
// and `src/panel-info.c`): model/serial/firmware/status rows plus
// "copy attestation" and "factory reset" actions, built atop the
// Info-Panel Builder (§4.6).
// Usage: Push launches the panel; the caller pops back out via Cancel
// or one of the action buttons.

package deviceinfo

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/firefly/hollows/device"
	"github.com/firefly/hollows/infopanel"
	"github.com/firefly/hollows/panel"
)

// FirmwareVersion is the build-time version string shown in the panel's
// "Firmware" row.
const FirmwareVersion = "1.0.0"

var (
	colorAttest = colorful.Color{R: 0.25, G: 0.45, B: 0.75}
	colorReset  = colorful.Color{R: 0.75, G: 0.2, B: 0.2}
)

type state struct {
	list *infopanel.Panel
}

// Push builds and pushes the device info panel, blocking until it pops.
// onFactoryReset is invoked (and then the panel pops) when the user
// confirms the factory reset action; render draws the panel's Scene
// each frame.
func Push(sched *panel.Scheduler, dev *device.Device, onFactoryReset func(), render infopanel.Render) int {
	return panel.Push[state](sched, func(pc *panel.PanelContext, st *state, arg interface{}) {
		st.list = infopanel.New(4)
		st.list.AddHeading("Device")
		st.list.AddValue("Model", modelName(dev.Fuses().Model))
		st.list.AddValue("Serial", fmt.Sprintf("%d", dev.Fuses().Serial))
		st.list.AddValue("Firmware", FirmwareVersion)
		st.list.AddValue("Status", dev.Status().String())

		st.list.AddHeading("Actions")
		st.list.AddButton("Copy attestation", colorAttest, func() {
			copyAttestation(dev)
		})
		st.list.AddButton("Factory reset", colorReset, func() {
			if onFactoryReset != nil {
				onFactoryReset()
			}
			panel.Pop(pc, 0)
		})

		st.list.Attach(pc, func() { panel.Pop(pc, 0) }, render)
	}, panel.Default, nil)
}

// modelName mirrors the source's "Firefly Pixie (DevKit rev.N)" naming
// scheme: a model word's high byte selects the product line, the low
// byte is the revision.
func modelName(model uint32) string {
	if model>>8 == 1 {
		return fmt.Sprintf("Firefly Pixie (DevKit rev.%d)", model&0xff)
	}
	return fmt.Sprintf("[unknown model: 0x%x]", model)
}

// copyAttestation signs a fresh random challenge and logs the resulting
// attestation in hex, standing in for a "copy to clipboard"/QR-display
// action a real display driver would render.
func copyAttestation(dev *device.Device) {
	var challenge [32]byte
	if _, err := rand.Read(challenge[:]); err != nil {
		log.Printf("deviceinfo: generate challenge: %v", err)
		return
	}
	att, err := device.Attest(dev, challenge)
	if err != nil {
		log.Printf("deviceinfo: attest: %v", err)
		return
	}
	log.Printf("deviceinfo: attestation challenge=%s signature=%s",
		hex.EncodeToString(challenge[:]), hex.EncodeToString(att.Signature[:]))
}
