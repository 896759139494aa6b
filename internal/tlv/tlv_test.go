// Copyright © 2026 Hollows contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package tlv

import (
	"reflect"
	"testing"
)

func TestRoundTripMessageShape(t *testing.T) {
	in := Map{
		"v":      uint64(1),
		"id":     uint64(42),
		"method": "ping",
		"params": []interface{}{},
	}

	encoded, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	m, ok := decoded.(Map)
	if !ok {
		t.Fatalf("decoded value is %T, want Map", decoded)
	}

	id, ok := GetUint32(m, "id")
	if !ok || id != 42 {
		t.Fatalf("id = %v, ok=%v, want 42", id, ok)
	}
	method, ok := GetString(m, "method")
	if !ok || method != "ping" {
		t.Fatalf("method = %q, ok=%v, want ping", method, ok)
	}
}

func TestRoundTripNestedReply(t *testing.T) {
	in := Map{
		"v":  uint64(1),
		"id": uint64(7),
		"result": Map{
			"pong": true,
		},
	}
	encoded, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := Map{
		"v":  uint64(1),
		"id": uint64(7),
		"result": Map{
			"pong": true,
		},
	}
	if !reflect.DeepEqual(decoded, want) {
		t.Fatalf("decoded = %#v, want %#v", decoded, want)
	}
}

func TestDecodeTruncatedInput(t *testing.T) {
	if _, err := Decode([]byte{tagMap}); err == nil {
		t.Fatalf("expected error decoding truncated map")
	}
}

func TestDecodeTrailingBytes(t *testing.T) {
	encoded, err := Encode(uint64(5))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	encoded = append(encoded, 0xFF)
	if _, err := Decode(encoded); err != ErrTrailing {
		t.Fatalf("err = %v, want ErrTrailing", err)
	}
}
