// Copyright © 2026 Hollows contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import "testing"

func TestAttestEntryRoundTrip(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if _, ok, err := s.GetAttestEntry("cipherdata"); err != nil || ok {
		t.Fatalf("expected missing entry, got ok=%v err=%v", ok, err)
	}

	want := []byte{1, 2, 3, 4}
	if err := s.PutAttestEntry("cipherdata", want); err != nil {
		t.Fatalf("PutAttestEntry: %v", err)
	}
	got, ok, err := s.GetAttestEntry("cipherdata")
	if err != nil || !ok {
		t.Fatalf("GetAttestEntry: ok=%v err=%v", ok, err)
	}
	if string(got) != string(want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	overwrite := []byte{9, 9}
	if err := s.PutAttestEntry("cipherdata", overwrite); err != nil {
		t.Fatalf("PutAttestEntry overwrite: %v", err)
	}
	got, _, _ = s.GetAttestEntry("cipherdata")
	if string(got) != string(overwrite) {
		t.Fatalf("overwrite did not take effect: got %v", got)
	}
}

func TestClearAttestNamespace(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if err := s.PutAttestEntry("cipherdata", []byte{1}); err != nil {
		t.Fatalf("PutAttestEntry: %v", err)
	}
	if err := s.PutAttestEntry("attest", []byte{2}); err != nil {
		t.Fatalf("PutAttestEntry: %v", err)
	}

	if err := s.ClearAttestNamespace(); err != nil {
		t.Fatalf("ClearAttestNamespace: %v", err)
	}

	if _, ok, err := s.GetAttestEntry("cipherdata"); err != nil || ok {
		t.Fatalf("expected cipherdata cleared, got ok=%v err=%v", ok, err)
	}
	if _, ok, err := s.GetAttestEntry("attest"); err != nil || ok {
		t.Fatalf("expected attest cleared, got ok=%v err=%v", ok, err)
	}
}

func TestConfigDocumentRoundTrip(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if _, ok, err := s.GetConfigDocument(); err != nil || ok {
		t.Fatalf("expected no config document yet, got ok=%v err=%v", ok, err)
	}

	if err := s.PutConfigDocument(`{"deviceName":"Hollows"}`); err != nil {
		t.Fatalf("PutConfigDocument: %v", err)
	}
	doc, ok, err := s.GetConfigDocument()
	if err != nil || !ok {
		t.Fatalf("GetConfigDocument: ok=%v err=%v", ok, err)
	}
	if doc != `{"deviceName":"Hollows"}` {
		t.Fatalf("doc = %q", doc)
	}
}
