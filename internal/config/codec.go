// Copyright © 2026 Hollows contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/config/codec.go
// Summary: JSON (de)serialization of the config document persisted as a
// single sqlite row by internal/store.

package config

import "encoding/json"

// Marshal renders cfg as the JSON document internal/store persists.
func Marshal(cfg Config) ([]byte, error) {
	return json.Marshal(cfg)
}

// Unmarshal parses a persisted config document into cfg. cfg must be
// non-nil; existing entries are replaced.
func Unmarshal(doc []byte, cfg *Config) error {
	return json.Unmarshal(doc, cfg)
}
