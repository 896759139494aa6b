// Copyright © 2026 Hollows contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package deviceinfo

import "testing"

func TestModelNameKnownLine(t *testing.T) {
	got := modelName(0x0107)
	want := "Firefly Pixie (DevKit rev.7)"
	if got != want {
		t.Fatalf("modelName(0x0107) = %q, want %q", got, want)
	}
}

func TestModelNameUnknownLine(t *testing.T) {
	got := modelName(0x02ff)
	want := "[unknown model: 0x2ff]"
	if got != want {
		t.Fatalf("modelName(0x02ff) = %q, want %q", got, want)
	}
}
