// Copyright © 2026 Hollows contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/home/home.go
// Summary: The home screen: lists every built-in app as a button and
// launches the selected one, blocking until it returns before
// re-showing the list.
// Usage: Push once at boot as the panel stack's root; it never pops on
// its own since the root panel must not call panel.Pop.

package home

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/firefly/hollows/infopanel"
	"github.com/firefly/hollows/panel"
	"github.com/firefly/hollows/panelapps"
)

var buttonColor = colorful.Color{R: 0.3, G: 0.55, B: 0.6}

type state struct {
	list *infopanel.Panel
}

// Push builds the root panel listing apps's manifests and blocks
// forever, re-entering the list each time a launched app pops.
func Push(sched *panel.Scheduler, apps *panelapps.Registry, render infopanel.Render) int {
	return panel.Push[state](sched, func(pc *panel.PanelContext, st *state, arg interface{}) {
		st.list = buildList(sched, apps)
		st.list.Attach(pc, nil, render)
	}, panel.Default, nil)
}

// buildList renders one button per registered app; clicking launches it
// on sched and blocks the home panel's event loop until it pops.
func buildList(sched *panel.Scheduler, apps *panelapps.Registry) *infopanel.Panel {
	list := infopanel.New(4)
	list.AddHeading("Hollows")
	for _, m := range apps.List() {
		name := m.Name
		list.AddButton(m.DisplayName, buttonColor, func() {
			apps.Launch(sched, name, nil)
		})
	}
	return list
}
