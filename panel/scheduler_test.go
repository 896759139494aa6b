// Copyright © 2026 Hollows contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package panel

import (
	"testing"
	"time"
)

// recordingAnimator captures the duration it was last driven with,
// resolving every transition instantly regardless of style.
type recordingAnimator struct {
	lastDuration time.Duration
}

func (a *recordingAnimator) Animate(style Style, push bool, duration time.Duration, onProgress func(t float64)) {
	a.lastDuration = duration
	onProgress(1)
}

// pushRoot pushes a root panel that never pops and waits for its first
// Focus. Push blocks until a pop, so it runs on its own goroutine; Pop
// panics on a root panel, so tests that pop push on top of this one.
func pushRoot(t *testing.T, sch *Scheduler) {
	t.Helper()
	type root struct{}
	focused := make(chan struct{})
	go Push[root](sch, func(pc *PanelContext, s *root, arg interface{}) {
		pc.On(KindFocus, func(ev Event) bool {
			if ev.Focus.FirstFocus {
				close(focused)
			}
			return true
		})
	}, Instant, nil)
	select {
	case <-focused:
	case <-time.After(2 * time.Second):
		t.Fatal("root panel never received its first Focus")
	}
}

// TestSetTransitionDurationOverridesAnimator exercises the
// panel.transition_ms config setting: the Animator must observe the
// overridden duration, not the package default.
func TestSetTransitionDurationOverridesAnimator(t *testing.T) {
	sch := New()
	anim := &recordingAnimator{}
	sch.SetAnimator(anim)
	sch.SetTransitionDuration(75 * time.Millisecond)

	type child struct{}

	// The root push is always forced Instant and never reaches the
	// Animator; push a child on top of it to exercise a real transition.
	pushRoot(t, sch)
	Push[child](sch, func(pcc *PanelContext, c *child, arg interface{}) {
		pcc.On(KindFocus, func(ev Event) bool {
			if ev.Focus.FirstFocus {
				Pop(pcc, 0)
			}
			return true
		})
	}, Default, nil)

	if anim.lastDuration != 75*time.Millisecond {
		t.Fatalf("animator driven with duration %v, want 75ms", anim.lastDuration)
	}
}

// TestPushPopReturn exercises end-to-end scenario 1 from the spec: push
// A (on top of a root panel), A pushes B, B pops with status 7, A
// resumes and pops with 7; the outer caller observes 7.
func TestPushPopReturn(t *testing.T) {
	sch := New()
	pushRoot(t, sch)

	type stateA struct{}
	type stateB struct{}

	outer := Push[stateA](sch, func(pcA *PanelContext, a *stateA, arg interface{}) {
		pcA.On(KindFocus, func(ev Event) bool {
			if !ev.Focus.FirstFocus {
				return true
			}
			go func() {
				inner := Push[stateB](sch, func(pcB *PanelContext, b *stateB, arg interface{}) {
					pcB.On(KindFocus, func(ev Event) bool {
						if ev.Focus.FirstFocus {
							Pop(pcB, 7)
						}
						return true
					})
				}, Default, nil)
				if inner != 7 {
					t.Errorf("inner pop status = %d, want 7", inner)
				}
				Pop(pcA, inner)
			}()
			return true
		})
	}, Instant, nil)

	if outer != 7 {
		t.Fatalf("outer pop status = %d, want 7", outer)
	}
}

func TestActiveRestoredAfterPushPop(t *testing.T) {
	sch := New()
	type st struct{}
	pushRoot(t, sch)

	before := sch.Active()

	Push[st](sch, func(pc *PanelContext, s *st, arg interface{}) {
		pc.On(KindFocus, func(ev Event) bool {
			Pop(pc, 0)
			return true
		})
	}, Instant, nil)

	if sch.Active() != before {
		t.Fatalf("active panel not restored: got %v, want %v", sch.Active(), before)
	}
}

func TestRenderCoalesces(t *testing.T) {
	sch := New()
	type st struct{}
	seen := make(chan int, 4)
	pushRoot(t, sch)

	done := make(chan struct{})
	Push[st](sch, func(pc *PanelContext, s *st, arg interface{}) {
		count := 0
		pc.On(KindRenderScene, func(ev Event) bool {
			count++
			seen <- count
			if count == 1 {
				close(done)
			}
			return true
		})
		pc.On(KindFocus, func(ev Event) bool {
			Pop(pc, 0)
			return true
		})
	}, Instant, nil)

	// Emitting twice in a row before the panel drains should coalesce to
	// a single queued RenderScene per invariant #2; this is exercised at
	// the enqueue layer directly since the panel above already popped.
	pc := newPanelContext(sch, 99, nil, Instant)
	pc.On(KindRenderScene, func(ev Event) bool { return true })
	first := pc.enqueue(Event{Kind: KindRenderScene})
	second := pc.enqueue(Event{Kind: KindRenderScene})
	if !first || !second {
		t.Fatalf("expected both enqueues to report handled, got %v %v", first, second)
	}
	if len(pc.queue) != 1 {
		t.Fatalf("expected exactly one coalesced RenderScene queued, got %d", len(pc.queue))
	}
}
