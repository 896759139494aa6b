// Copyright © 2026 Hollows contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: panelapps/registry.go
// Summary: The built-in panel app registry (§4.6, home screen). Trimmed
// from a dynamic app-discovery registry to built-in-only: the device has
// no filesystem to scan apps from and never loads code at runtime.
// Usage: internal/runtime registers deviceinfo/pair once at boot; the
// home app's buttons call Launch to push the selected app's panel.

package panelapps

import (
	"log"
	"sort"
	"sync"

	"github.com/firefly/hollows/panel"
)

// Manifest describes one built-in app for the home screen's listing.
type Manifest struct {
	Name        string
	DisplayName string
	Category    string
}

// Factory pushes an app's panel and blocks until it pops, returning the
// status panel.Push resolved with. arg is passed through from the
// caller of Launch (e.g. the pair.Request for the pairing app).
type Factory func(sched *panel.Scheduler, arg interface{}) int

type entry struct {
	manifest Manifest
	factory  Factory
}

// Registry is the built-in app table; one per device, populated at boot.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// Register adds a built-in app. Registering the same name twice
// replaces the previous entry.
func (r *Registry) Register(manifest Manifest, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[manifest.Name] = &entry{manifest: manifest, factory: factory}
	log.Printf("panelapps: registered %q", manifest.Name)
}

// List returns every registered manifest, sorted by display name, for
// the home screen to build its button list from.
func (r *Registry) List() []Manifest {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Manifest, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.manifest)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayName < out[j].DisplayName })
	return out
}

// Launch pushes name's panel on sched and blocks until it pops. ok is
// false if no app with that name is registered.
func (r *Registry) Launch(sched *panel.Scheduler, name string, arg interface{}) (status int, ok bool) {
	r.mu.RLock()
	e, found := r.entries[name]
	r.mu.RUnlock()
	if !found {
		return 0, false
	}
	return e.factory(sched, arg), true
}
