// Copyright © 2026 Hollows contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: infopanel/infopanel.go
// Summary: Application-level façade atop the panel scheduler (§4.6): a
// vertical list of heading/value rows and colored buttons, with a
// highlighted index that moves on North/South and fires its button's
// callback on Ok. No new invariants beyond the scheduler's own; a panel
// built this way is an ordinary panel as far as Push/Pop are concerned.
// Usage: build with New, add rows, call Attach from the owning panel's
// init before returning.

package infopanel

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
)

// maxRowWidth is the device display's column budget for a single row;
// labels and values are truncated to it the same way method names are
// bounded on the wire (§6).
const maxRowWidth = 20

type rowKind int

const (
	rowHeading rowKind = iota
	rowValue
	rowButton
)

type entry struct {
	kind    rowKind
	heading string
	label   string
	value   string
	color   colorful.Color
	onClick func()
}

func (e entry) selectable() bool { return e.kind == rowButton }

// Row is one rendered line of a Scene, for the (out-of-scope) display
// compositor to draw.
type Row struct {
	Heading     string
	Label       string
	Value       string
	Color       colorful.Color
	IsButton    bool
	Highlighted bool
}

// Scene is the visible window of rows a Panel wants drawn this frame,
// already scrolled so the highlighted row is in view.
type Scene struct {
	Rows          []Row
	Offset        int
	Total         int
	CanScrollUp   bool
	CanScrollDown bool
}

// Render receives a Panel's Scene once per frame.
type Render func(Scene)

// Panel is the vertical list builder. It is not itself a panel.Handler;
// Attach installs the handlers an owning panel needs on its
// *panel.PanelContext.
type Panel struct {
	entries      []entry
	highlight    int // index into entries of the highlighted selectable row, -1 if none
	viewportRows int
	scroll       scrollState
}

// New creates an empty list builder with a fixed viewport height in
// rows (the device's small display has room for only a handful).
func New(viewportRows int) *Panel {
	if viewportRows < 1 {
		viewportRows = 1
	}
	return &Panel{viewportRows: viewportRows, highlight: -1, scroll: newScrollState(viewportRows)}
}

// AddHeading appends a non-selectable section heading.
func (p *Panel) AddHeading(text string) {
	p.entries = append(p.entries, entry{kind: rowHeading, heading: text})
	p.scroll.setContentRows(len(p.entries))
}

// AddValue appends a non-selectable label/value row.
func (p *Panel) AddValue(label, value string) {
	p.entries = append(p.entries, entry{kind: rowValue, label: label, value: value})
	p.scroll.setContentRows(len(p.entries))
}

// AddButton appends a selectable, colored row. onClick runs when the row
// is highlighted and Ok is pressed.
func (p *Panel) AddButton(label string, color colorful.Color, onClick func()) {
	p.entries = append(p.entries, entry{kind: rowButton, label: label, color: color, onClick: onClick})
	idx := len(p.entries) - 1
	p.scroll.setContentRows(len(p.entries))
	if p.highlight < 0 {
		p.highlight = idx
		p.scroll.ensureVisible(idx)
	}
}

// Scene renders the current visible window.
func (p *Panel) Scene() Scene {
	start := p.scroll.offset
	end := start + p.viewportRows
	if end > len(p.entries) {
		end = len(p.entries)
	}
	rows := make([]Row, 0, end-start)
	for i := start; i < end; i++ {
		e := p.entries[i]
		rows = append(rows, Row{
			Heading:     runewidth.Truncate(e.heading, maxRowWidth, "…"),
			Label:       runewidth.Truncate(e.label, maxRowWidth, "…"),
			Value:       runewidth.Truncate(e.value, maxRowWidth, "…"),
			Color:       e.color,
			IsButton:    e.kind == rowButton,
			Highlighted: e.kind == rowButton && i == p.highlight,
		})
	}
	return Scene{
		Rows:          rows,
		Offset:        start,
		Total:         len(p.entries),
		CanScrollUp:   p.scroll.canScrollUp(),
		CanScrollDown: p.scroll.canScrollDown(),
	}
}

// moveHighlight shifts the highlight to the next selectable row in dir
// (+1 or -1), wrapping, and scrolls it into view.
func (p *Panel) moveHighlight(dir int) {
	if p.highlight < 0 {
		return
	}
	n := len(p.entries)
	i := p.highlight
	for step := 0; step < n; step++ {
		i = (i + dir + n) % n
		if p.entries[i].selectable() {
			p.highlight = i
			p.scroll.ensureVisible(i)
			return
		}
	}
}

// click invokes the highlighted row's callback, if any.
func (p *Panel) click() {
	if p.highlight < 0 {
		return
	}
	if cb := p.entries[p.highlight].onClick; cb != nil {
		cb()
	}
}
