// Copyright © 2026 Hollows contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/pair/pair.go
// Summary: The pairing confirmation panel (§6 "Pairing"): with no input
// or output capability advertised, the device still shows a confirm/
// reject prompt on its own display rather than accepting silently,
// since unlike a phone's "Just Works" flow there's a human holding
// this device too.
// Usage: Push blocks until the holder accepts or rejects (or the
// request is withdrawn), reporting the decision through onDecision.

package pair

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/firefly/hollows/infopanel"
	"github.com/firefly/hollows/internal/attrlink"
	"github.com/firefly/hollows/panel"
)

const (
	statusAccepted = 1
	statusRejected = 2
)

var (
	colorAccept = colorful.Color{R: 0.2, G: 0.65, B: 0.3}
	colorReject = colorful.Color{R: 0.75, G: 0.2, B: 0.2}
)

// Request describes the peer asking to bond, as surfaced by the radio
// task's connection state.
type Request struct {
	PeerName string
	Policy   attrlink.PairingPolicy
}

type state struct {
	list *infopanel.Panel
}

// Push shows req and blocks until the holder decides. onDecision is
// called with true for accept, false for reject, before the panel pops.
func Push(sched *panel.Scheduler, req Request, onDecision func(accept bool), render infopanel.Render) int {
	return panel.Push[state](sched, func(pc *panel.PanelContext, st *state, arg interface{}) {
		st.list = infopanel.New(4)
		st.list.AddHeading("Pairing request")
		st.list.AddValue("Device", req.PeerName)
		st.list.AddValue("Security", securityLabel(req.Policy))

		st.list.AddButton("Accept", colorAccept, func() {
			if onDecision != nil {
				onDecision(true)
			}
			panel.Pop(pc, statusAccepted)
		})
		st.list.AddButton("Reject", colorReject, func() {
			if onDecision != nil {
				onDecision(false)
			}
			panel.Pop(pc, statusRejected)
		})

		st.list.Attach(pc, func() {
			if onDecision != nil {
				onDecision(false)
			}
			panel.Pop(pc, statusRejected)
		}, render)
	}, panel.Default, nil)
}

func securityLabel(p attrlink.PairingPolicy) string {
	switch {
	case p.RequireSecureConns && p.RequireMITM:
		return "Secure + MITM"
	case p.RequireMITM:
		return "MITM"
	case p.RequireSecureConns:
		return "Secure"
	default:
		return "Unauthenticated"
	}
}
