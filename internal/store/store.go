// Copyright © 2026 Hollows contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/store/store.go
// Summary: SQLite-backed persistence for the device's "attest" namespace
// and config document (§6 "Persistent state").
// Usage: One Store per device, opened at boot before Device.Boot is
// called so cipherdata/attest/pubkey-n can be handed to it.

package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS attest_namespace (
	key   TEXT PRIMARY KEY,
	value BLOB NOT NULL
);

CREATE TABLE IF NOT EXISTS config_document (
	id   INTEGER PRIMARY KEY CHECK (id = 0),
	json TEXT NOT NULL
);
`

// Store wraps the on-device sqlite database holding provisioning
// material and the persisted config document.
type Store struct {
	db *sql.DB
}

// Open opens (creating if absent) the sqlite database at path with WAL
// journaling, NORMAL synchronous mode, and foreign keys enabled.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("store: create directory: %w", err)
		}
	}

	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=foreign_keys(ON)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// GetAttestEntry reads one "attest" namespace entry (cipherdata, attest,
// or pubkey-n). ok is false if the key has never been written.
func (s *Store) GetAttestEntry(key string) (value []byte, ok bool, err error) {
	err = s.db.QueryRow("SELECT value FROM attest_namespace WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("store: get %q: %w", key, err)
	}
	return value, true, nil
}

// PutAttestEntry writes (or overwrites) one "attest" namespace entry.
func (s *Store) PutAttestEntry(key string, value []byte) error {
	_, err := s.db.Exec(
		"INSERT INTO attest_namespace (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("store: put %q: %w", key, err)
	}
	return nil
}

// ClearAttestNamespace deletes every "attest" namespace entry, returning
// the device to StatusMissingStore until it is re-provisioned. Used by
// the device info panel's factory reset action.
func (s *Store) ClearAttestNamespace() error {
	if _, err := s.db.Exec("DELETE FROM attest_namespace"); err != nil {
		return fmt.Errorf("store: clear attest namespace: %w", err)
	}
	return nil
}

// GetConfigDocument returns the persisted config JSON, or ("", false)
// if nothing has been saved yet.
func (s *Store) GetConfigDocument() (doc string, ok bool, err error) {
	err = s.db.QueryRow("SELECT json FROM config_document WHERE id = 0").Scan(&doc)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("store: get config document: %w", err)
	}
	return doc, true, nil
}

// PutConfigDocument persists the config document as a JSON blob.
func (s *Store) PutConfigDocument(doc string) error {
	_, err := s.db.Exec(
		"INSERT INTO config_document (id, json) VALUES (0, ?) ON CONFLICT(id) DO UPDATE SET json = excluded.json",
		doc,
	)
	if err != nil {
		return fmt.Errorf("store: put config document: %w", err)
	}
	return nil
}
