// Copyright © 2026 Hollows contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import "testing"

func TestApplyDefaultsDoesNotOverwrite(t *testing.T) {
	cfg := make(Config)
	cfg.RegisterDefaults("led", Section{"brightness": 0.1})
	ApplyDefaults(cfg)

	if got := cfg.GetFloat("led", "brightness", -1); got != 0.1 {
		t.Fatalf("brightness = %v, want 0.1 (pre-existing value preserved)", got)
	}
	if got := cfg.GetInt("radio", "mtu", -1); got != 506 {
		t.Fatalf("mtu = %v, want default 506", got)
	}
}

func TestGetBoolCoercesFromString(t *testing.T) {
	cfg := make(Config)
	cfg.RegisterDefaults("x", Section{"flag": "true"})
	if !cfg.GetBool("x", "flag", false) {
		t.Fatalf("expected string \"true\" to coerce to bool true")
	}
}
