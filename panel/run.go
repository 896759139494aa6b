// Copyright © 2026 Hollows contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: panel/run.go
// Summary: The panel task's own event loop (§4.1, §5).
// Usage: Started by Push on a fresh goroutine, once per live panel.

package panel

import "time"

const idleWakeup = 1 * time.Second

// run is the body of a panel's task: it dispatches queued events while
// Focused, watches for a pop request, and exits once one arrives. Events
// that arrive after a pop begins are drained and discarded rather than
// dispatched, matching §4.1's "queue is drained and discarded" rule.
func (pc *PanelContext) run() {
	for {
		select {
		case status := <-pc.popReq:
			pc.drainAndDiscard()
			pc.finishPop(status)
			return
		case rec := <-pc.queue:
			pc.dispatchOne(rec)
		case <-time.After(idleWakeup):
			// housekeeping wakeup; nothing to do but loop and re-check
			// for a pop request.
		}
	}
}

func (pc *PanelContext) dispatchOne(rec dispatchRecord) {
	if rec.ev.Kind == KindRenderScene {
		pc.clearRenderFlag()
	}
	// A panel whose pop is already in flight should not see further
	// events even if one raced into the queue just before popReq fired.
	if pc.currentState() == stateExiting || pc.currentState() == stateDead {
		return
	}
	rec.handler(rec.ev)
}

func (pc *PanelContext) drainAndDiscard() {
	pc.setState(stateExiting)
	for {
		select {
		case <-pc.queue:
			// discarded
		default:
			return
		}
	}
}
