// Copyright © 2026 Hollows contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: io/loop.go
// Summary: The IO task: display pacing, keypad sampling, and LED driving
// (§4.2, §5).
// Usage: Run once at boot on its own goroutine; fires Keys and
// RenderScene events at the scheduler's active panel every frame.

package io

import (
	"log"
	"time"

	"github.com/firefly/hollows/panel"
	"github.com/lucasb-eyer/go-colorful"
)

// frameSchedule alternates 17ms/16ms deadlines, averaging 16.5ms per
// frame (~60.6 fps), matching §4.2's fixed schedule rather than a
// free-running ticker (which would drift under load).
var frameSchedule = [2]time.Duration{17 * time.Millisecond, 16 * time.Millisecond}

// LEDDriver is the out-of-scope pixel driver contract; Loop only ever
// hands it a blended color to latch.
type LEDDriver interface {
	Set(c colorful.Color)
}

// DisplayReady is signaled by the (out-of-scope) display driver once its
// first frame can be presented; Loop blocks boot until it fires.
type DisplayReady <-chan struct{}

// Loop drives the fixed-rate render/keypad/LED cycle.
type Loop struct {
	sched   *panel.Scheduler
	keypad  *Keypad
	led     LEDDriver
	onReset func()

	ticks uint64
}

func NewLoop(sched *panel.Scheduler, keypad *Keypad, led LEDDriver, onReset func()) *Loop {
	return &Loop{sched: sched, keypad: keypad, led: led, onReset: onReset}
}

// Run blocks the calling goroutine (the IO task) forever, pacing frames
// on an absolute deadline: if a frame runs long, the deadline is reset
// rather than accumulating a catch-up burst (§5).
func (l *Loop) Run(ready DisplayReady) {
	if ready != nil {
		<-ready
	}

	deadline := time.Now()
	for {
		frameStart := time.Now()
		l.runFrame(frameStart)

		deadline = deadline.Add(frameSchedule[l.ticks%2])
		now := time.Now()
		if deadline.Before(now) {
			// behind schedule: drop the deficit instead of bursting
			deadline = now
		}
		time.Sleep(deadline.Sub(now))
	}
}

func (l *Loop) runFrame(now time.Time) {
	down, changed := l.keypad.Sample(now)
	if changed != 0 {
		l.sched.Emit(panel.Event{Kind: panel.KindKeys, Keys: panel.Keys{Down: down, Changed: changed}})
	}

	if l.keypad.ResetTriggered() {
		log.Printf("io: reset chord held %s, issuing hardware reset", l.keypad.ResetChordHold())
		if l.onReset != nil {
			l.onReset()
		}
	}

	l.ticks++
	l.sched.Emit(panel.Event{Kind: panel.KindRenderScene, RenderScene: panel.RenderScene{
		Ticks: l.ticks,
		Dt:    frameSchedule[(l.ticks-1)%2],
	}})

	l.driveLED(down)
}

// driveLED maps keypad state to an indicator color: idle is a dim teal,
// any key down blends toward amber. Keypad state is the only input to
// the LED color.
func (l *Loop) driveLED(down panel.KeySet) {
	if l.led == nil {
		return
	}
	idle := colorful.Color{R: 0.02, G: 0.08, B: 0.07}
	active := colorful.Color{R: 0.35, G: 0.22, B: 0.0}
	if down == 0 {
		l.led.Set(idle)
		return
	}
	l.led.Set(idle.BlendLuv(active, 0.8))
}
