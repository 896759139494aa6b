// Copyright © 2026 Hollows contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/hollows/paths.go
// Summary: Standard filesystem paths for the simulated device's
// persistent store.

package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths holds the standard on-disk locations used by the simulator.
type Paths struct {
	ConfigDir string // ~/.hollows
	StorePath string // ~/.hollows/device.db
}

// GetPaths returns the standard paths, creating nothing.
func GetPaths() (*Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("get home directory: %w", err)
	}

	configDir := filepath.Join(home, ".hollows")
	return &Paths{
		ConfigDir: configDir,
		StorePath: filepath.Join(configDir, "device.db"),
	}, nil
}

// EnsureConfigDir creates the configuration directory if it doesn't
// exist.
func (p *Paths) EnsureConfigDir() error {
	return os.MkdirAll(p.ConfigDir, 0o755)
}
