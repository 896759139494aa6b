// Copyright © 2026 Hollows contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: panel/transition.go
// Summary: Push/pop animation styles and easing curves (§4.1).
// Usage: Scheduler.Push/pop hand the Style to the installed Animator,
// which runs the transition on its own timeline, independent of the
// panel task being animated. The scheduler itself does not call offset
// or the easing curves.

package panel

import "time"

// Style selects how the incoming and outgoing panel are animated.
type Style int

const (
	Instant Style = iota
	Default       // alias for SlideLeft
	SlideLeft
	CoverUp
)

// TransitionDuration is the default push/pop animation length (§4.1),
// used until a Scheduler's SetTransitionDuration overrides it.
const TransitionDuration = 300 * time.Millisecond

// easeOutQuad is used while animating a panel onto the screen (push).
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}

// easeInQuad is used while animating a panel off the screen (pop).
func easeInQuad(t float64) float64 {
	return t * t
}

// offset describes a panel's translation, in normalized screen units,
// at animation progress t in [0,1]. With entering set, the offset eases
// out from +1 to 0; otherwise it eases in from -1 to 0 (SlideLeft) or
// stays 0 (CoverUp).
func (s Style) offset(t float64, entering bool) (x, y float64) {
	if s == Instant {
		return 0, 0
	}
	progress := easeOutQuad(t)
	if !entering {
		progress = easeInQuad(t)
	}
	remaining := 1 - progress
	switch s {
	case Default, SlideLeft:
		if entering {
			return remaining, 0
		}
		return -remaining, 0
	case CoverUp:
		if entering {
			return 0, remaining
		}
		// the covered panel stays put
		return 0, 0
	default:
		return 0, 0
	}
}
