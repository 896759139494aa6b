// Copyright © 2026 Hollows contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/config/defaults.go
// Summary: Default values for the device's config document.

package config

// ApplyDefaults registers every section's defaults without overwriting
// values already restored from the store.
func ApplyDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("", Section{
		"deviceName": "Hollows",
	})
	cfg.RegisterDefaults("panel", Section{
		"transition_ms": 300,
	})
	cfg.RegisterDefaults("keypad", Section{
		"debounce_samples":   10,
		"reset_chord_hold_s": 2.0,
	})
	cfg.RegisterDefaults("led", Section{
		"brightness": 0.8,
	})
	cfg.RegisterDefaults("radio", Section{
		"mtu": 506,
	})
}
