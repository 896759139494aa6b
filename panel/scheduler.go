// Copyright © 2026 Hollows contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: panel/scheduler.go
// Summary: The panel scheduler: push/pop, focus hand-off, and the
// per-panel event bus (§4.1, §4.5).
// Usage: One Scheduler per device, created at boot and shared by the IO
// and radio tasks so they can Emit into whichever panel is active.

package panel

import (
	"log"
	"sync/atomic"
	"time"
)

// Animator is the (out-of-scope) scene-graph/compositor contract the
// scheduler drives push/pop transitions through. A nil Animator makes
// transitions resolve instantly, which is what the test suite and the
// headless simulator use.
type Animator interface {
	// Animate runs a push or pop transition to completion over
	// duration, calling onProgress(t) for t in [0,1] as the animation
	// advances on its own timeline (not the panel task's).
	Animate(style Style, push bool, duration time.Duration, onProgress func(t float64))
}

// Scheduler owns the panel stack's single focused-panel pointer and the
// bookkeeping needed to hand a pushed panel's return status back to its
// pusher.
type Scheduler struct {
	active             atomic.Pointer[PanelContext]
	nextID             atomic.Uint64
	animator           Animator
	transitionDuration time.Duration
	firstEver          atomic.Bool
}

// New creates an empty scheduler. Call Push once to establish the root
// panel before anything else runs.
func New() *Scheduler {
	return &Scheduler{transitionDuration: TransitionDuration}
}

// SetAnimator installs the scene-graph/compositor driving real
// animations. It is consulted on every non-Instant Push/pop made after
// it is installed; the root panel's push is forced Instant and never
// reaches it.
func (s *Scheduler) SetAnimator(a Animator) { s.animator = a }

// SetTransitionDuration overrides the push/pop animation length handed
// to the installed Animator (the panel.transition_ms config setting,
// wired by the runtime at boot). Has no effect without an Animator.
func (s *Scheduler) SetTransitionDuration(d time.Duration) {
	if d > 0 {
		s.transitionDuration = d
	}
}

// Active returns the currently focused panel, or nil before the first Push.
func (s *Scheduler) Active() *PanelContext { return s.active.Load() }

// Push creates S as a panel's state, spawns its task, runs the push
// transition, and blocks the caller until the panel is popped. It
// returns the status the panel was popped with.
//
// init is called once, on the new panel's own goroutine, before the
// panel is focused; it should install event handlers via On before
// returning so no events are lost once the panel becomes Focused.
func Push[S any](s *Scheduler, init func(pc *PanelContext, state *S, arg interface{}), style Style, arg interface{}) int {
	parent := s.active.Load()
	id := s.nextID.Add(1)
	pc := newPanelContext(s, id, parent, style)

	if s.firstEver.CompareAndSwap(false, true) {
		style = Instant
		pc.style = Instant
	}

	started := make(chan struct{})
	go func() {
		var state S
		init(pc, &state, arg)
		close(started)
		pc.run()
	}()
	<-started

	s.animate(style, true, func() {
		s.active.Store(pc)
		pc.setState(stateFocused)
	})

	pc.emitFocus(true)

	status := <-pc.resultCh
	return status
}

// Pop may only be called from inside the panel being popped (i.e. from
// a handler running on that panel's own task). It asks the event loop to
// unwind: focus is restored to the parent the instant the pop
// transition begins, per §4.1; the panel's task then terminates.
// The root panel must never call Pop.
func Pop(pc *PanelContext, status int) {
	if pc.parent == nil {
		log.Panicf("panel: root panel %d attempted to pop", pc.id)
	}
	select {
	case pc.popReq <- status:
	default:
		// a pop was already requested; keep the first one
	}
}

// finishPop performs the hand-off animation and wakes the pusher. It
// runs on the popping panel's own task, invoked from its event loop once
// a pop request has been observed.
func (pc *PanelContext) finishPop(status int) {
	sched := pc.sched
	sched.active.Store(pc.parent)
	pc.parent.setState(stateFocused)
	sched.animate(pc.style, false, func() {})
	pc.setState(stateDead)
	close(pc.done)
	pc.resultCh <- status
}

func (s *Scheduler) animate(style Style, push bool, onDone func()) {
	if s.animator == nil || style == Instant {
		onDone()
		return
	}
	s.animator.Animate(style, push, s.transitionDuration, func(t float64) {})
	onDone()
}

// On installs a handler for kind on the currently active panel.
func (s *Scheduler) On(kind Kind, h Handler) {
	if pc := s.active.Load(); pc != nil {
		pc.On(kind, h)
	}
}

// Off removes the active panel's handler for kind.
func (s *Scheduler) Off(kind Kind) {
	if pc := s.active.Load(); pc != nil {
		pc.Off(kind)
	}
}

// HasHandler reports whether the active panel has a handler for kind.
func (s *Scheduler) HasHandler(kind Kind) bool {
	if pc := s.active.Load(); pc != nil {
		return pc.Has(kind)
	}
	return false
}

// Emit dispatches ev to the currently active panel. It returns true iff
// a handler consumed it (i.e. was installed and the event was queued or
// coalesced), matching the spec's emitEvent contract.
func (s *Scheduler) Emit(ev Event) bool {
	pc := s.active.Load()
	if pc == nil {
		return false
	}
	if pc.currentState() != stateFocused {
		return false
	}
	return pc.enqueue(ev)
}

func (pc *PanelContext) emitFocus(first bool) {
	ev := Event{Kind: KindFocus, Focus: Focus{ID: pc.id, FirstFocus: first}}
	pc.enqueue(ev)
}
