// Copyright © 2026 Hollows contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/hollows/tui.go
// Summary: A tcell-backed stand-in for the keypad and OLED peripherals,
// letting -tui run the device runtime against a real terminal instead
// of the always-idle simulatedPins/simulatedLED pair.
// Usage: newTUI wires a *tui as both io.PinReader and io.LEDDriver;
// tui.Render satisfies infopanel.Render for the built-in app panels.

package main

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/firefly/hollows/infopanel"
)

// keyHoldDuration is how long a single terminal key event latches a pin
// pressed, long enough that the keypad's majority-vote debounce over a
// frame's worth of samples sees it.
const keyHoldDuration = 120 * time.Millisecond

// tui drives a terminal window as the device's four-button keypad and
// single-color LED, the way texelation's Screen drives its tcell panes.
type tui struct {
	screen tcell.Screen

	mu      sync.Mutex
	pressed [4]bool // Cancel, Ok, North, South
	timers  [4]*time.Timer
	ledHint colorful.Color

	quit chan struct{}
}

func newTUI() (*tui, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("tui: new screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("tui: init screen: %w", err)
	}
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	screen.HideCursor()

	t := &tui{screen: screen, quit: make(chan struct{})}
	go t.pollEvents()
	return t, nil
}

func (t *tui) pollEvents() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			t.handleKey(ev)
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

// handleKey maps a terminal keystroke to one of the four physical pins.
// Escape/Enter/Up/Down mirror Cancel/Ok/North/South; q quits outright
// since the terminal has no hardware reset chord to hold instead.
func (t *tui) handleKey(ev *tcell.EventKey) {
	pin := -1
	switch {
	case ev.Key() == tcell.KeyEscape:
		pin = 0
	case ev.Key() == tcell.KeyEnter:
		pin = 1
	case ev.Key() == tcell.KeyUp:
		pin = 2
	case ev.Key() == tcell.KeyDown:
		pin = 3
	case ev.Rune() == 'q':
		t.Close()
		os.Exit(0)
	}
	if pin < 0 {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.pressed[pin] = true
	if t.timers[pin] != nil {
		t.timers[pin].Stop()
	}
	t.timers[pin] = time.AfterFunc(keyHoldDuration, func() {
		t.mu.Lock()
		t.pressed[pin] = false
		t.mu.Unlock()
	})
}

// Sample implements io.PinReader.
func (t *tui) Sample() [4]bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pressed
}

// Set implements io.LEDDriver, remembered for the next Render call since
// tcell has no independent indicator to latch it to.
func (t *tui) Set(c colorful.Color) {
	t.mu.Lock()
	t.ledHint = c
	t.mu.Unlock()
}

// Render implements infopanel.Render, drawing the active panel's Scene
// as a plain scrolling list: headings bold, buttons reversed when
// highlighted, values as "label: value".
func (t *tui) Render(scene infopanel.Scene) {
	t.screen.Clear()

	base := tcell.StyleDefault
	row := 0
	for _, r := range scene.Rows {
		switch {
		case r.IsButton:
			style := base.Foreground(colorfulToTcell(r.Color))
			if r.Highlighted {
				style = style.Reverse(true)
			}
			drawText(t.screen, 0, row, style, "> "+r.Label)
		case r.Heading != "":
			drawText(t.screen, 0, row, base.Bold(true), r.Heading)
		default:
			drawText(t.screen, 0, row, base, fmt.Sprintf("%s: %s", r.Label, r.Value))
		}
		row++
	}
	if scene.CanScrollDown {
		drawText(t.screen, 0, row, base.Dim(true), "v more")
	}

	t.mu.Lock()
	hint := t.ledHint
	t.mu.Unlock()
	_, h := t.screen.Size()
	drawText(t.screen, 0, h-1, base.Foreground(colorfulToTcell(hint)), "█ esc=cancel enter=ok up/down q=quit")

	t.screen.Show()
}

// Close shuts the terminal down; safe to call more than once.
func (t *tui) Close() {
	select {
	case <-t.quit:
		return
	default:
		close(t.quit)
	}
	t.screen.Fini()
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range text {
		screen.SetContent(x+i, y, r, nil, style)
	}
}

func colorfulToTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
