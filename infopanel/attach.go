// Copyright © 2026 Hollows contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: infopanel/attach.go
// Summary: Wires a Panel's navigation and rendering into a panel
// scheduler's event handler table.

package infopanel

import "github.com/firefly/hollows/panel"

// Attach installs Keys and RenderScene handlers on pc: North/South move
// the highlight, Ok fires the highlighted button's callback, Cancel
// calls onCancel (typically panel.Pop). render is invoked with the
// current Scene on every frame; it may be nil in tests that don't care
// about rendering.
func (p *Panel) Attach(pc *panel.PanelContext, onCancel func(), render Render) {
	pc.On(panel.KindKeys, func(ev panel.Event) bool {
		pressed := ev.Keys.Down & ev.Keys.Changed
		switch {
		case pressed.Has(panel.KeyNorth):
			p.moveHighlight(-1)
		case pressed.Has(panel.KeySouth):
			p.moveHighlight(1)
		case pressed.Has(panel.KeyOk):
			p.click()
		case pressed.Has(panel.KeyCancel):
			if onCancel != nil {
				onCancel()
			}
		}
		return true
	})

	pc.On(panel.KindRenderScene, func(ev panel.Event) bool {
		if render != nil {
			render(p.Scene())
		}
		return true
	})
}
