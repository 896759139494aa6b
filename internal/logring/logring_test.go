// Copyright © 2026 Hollows contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package logring

import (
	"log"
	"testing"
)

func TestPushAndDrainPreservesOrder(t *testing.T) {
	r := New()
	r.Push("one")
	r.Push("two")
	r.Push("three")

	got := r.Drain()
	want := []string{"one", "two", "three"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
	if r.Len() != 0 {
		t.Fatalf("Len after Drain = %d, want 0", r.Len())
	}
}

func TestPushOverwritesOldestWhenFull(t *testing.T) {
	r := New()
	for i := 0; i < Capacity+10; i++ {
		r.Push(string(rune('a' + i%26)))
	}
	if r.Len() != Capacity {
		t.Fatalf("Len = %d, want %d", r.Len(), Capacity)
	}
}

func TestWriterStripsTrailingNewline(t *testing.T) {
	r := New()
	logger := log.New(NewWriter(r), "", 0)
	logger.Println("hello")

	lines := r.Drain()
	if len(lines) != 1 || lines[0] != "hello" {
		t.Fatalf("lines = %v", lines)
	}
}
