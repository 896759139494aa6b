// Copyright © 2026 Hollows contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/tlv/tlv.go
// Summary: A minimal tag-length-value codec for maps/arrays/scalars.
// Usage: the radio package's message and reply bodies are TLV maps; this
// package only implements the wire shape spec.md leaves as an external
// collaborator's contract, so radio has something concrete to decode.
//
// Grounded on protocol/messages.go's manual length-prefixed encoding
// style (same little-endian length-prefix-then-bytes shape), generalized
// from a fixed struct set to an open map/array/scalar value tree.

package tlv

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// tag bytes identify the type of the value that follows.
const (
	tagNull uint8 = iota
	tagBool
	tagUint
	tagInt
	tagFloat
	tagString
	tagBytes
	tagArray
	tagMap
)

var (
	ErrTruncated   = errors.New("tlv: truncated input")
	ErrTrailing    = errors.New("tlv: trailing bytes after value")
	ErrUnknownTag  = errors.New("tlv: unknown tag byte")
	ErrUnsupported = errors.New("tlv: unsupported Go value")
)

// Map is the canonical shape of a decoded TLV map, matching the wire
// format's string-keyed maps (method/params/result/error bodies, §4.3).
type Map map[string]interface{}

// Encode serializes v (nil, bool, uint/uint32/uint64, int/int32/int64,
// float64, string, []byte, []interface{}, or map[string]interface{}/Map)
// into its TLV wire form. Other integer kinds return ErrUnsupported.
func Encode(v interface{}) ([]byte, error) {
	var buf []byte
	out, err := appendValue(buf, v)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Decode parses the TLV wire form back into Go values: maps decode to
// Map, arrays to []interface{}, integers to uint64/int64, and so on.
func Decode(data []byte) (interface{}, error) {
	v, rest, err := readValue(data)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, ErrTrailing
	}
	return v, nil
}

func appendValue(buf []byte, v interface{}) ([]byte, error) {
	switch val := v.(type) {
	case nil:
		return append(buf, tagNull), nil
	case bool:
		buf = append(buf, tagBool)
		if val {
			return append(buf, 1), nil
		}
		return append(buf, 0), nil
	case uint:
		return appendUint(buf, uint64(val)), nil
	case uint32:
		return appendUint(buf, uint64(val)), nil
	case uint64:
		return appendUint(buf, val), nil
	case int:
		return appendInt(buf, int64(val)), nil
	case int32:
		return appendInt(buf, int64(val)), nil
	case int64:
		return appendInt(buf, val), nil
	case float64:
		buf = append(buf, tagFloat)
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(val))
		return append(buf, b[:]...), nil
	case string:
		return appendLenPrefixed(buf, tagString, []byte(val)), nil
	case []byte:
		return appendLenPrefixed(buf, tagBytes, val), nil
	case []interface{}:
		buf = append(buf, tagArray)
		buf = appendUint32(buf, uint32(len(val)))
		for _, item := range val {
			var err error
			buf, err = appendValue(buf, item)
			if err != nil {
				return nil, err
			}
		}
		return buf, nil
	case Map:
		return appendMap(buf, map[string]interface{}(val))
	case map[string]interface{}:
		return appendMap(buf, val)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupported, v)
	}
}

func appendMap(buf []byte, m map[string]interface{}) ([]byte, error) {
	buf = append(buf, tagMap)
	buf = appendUint32(buf, uint32(len(m)))
	for k, v := range m {
		buf = appendUint32(buf, uint32(len(k)))
		buf = append(buf, k...)
		var err error
		buf, err = appendValue(buf, v)
		if err != nil {
			return nil, err
		}
	}
	return buf, nil
}

func appendUint(buf []byte, v uint64) []byte {
	buf = append(buf, tagUint)
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return append(buf, b[:]...)
}

func appendInt(buf []byte, v int64) []byte {
	buf = append(buf, tagInt)
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(v))
	return append(buf, b[:]...)
}

func appendUint32(buf []byte, v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return append(buf, b[:]...)
}

func appendLenPrefixed(buf []byte, tag uint8, data []byte) []byte {
	buf = append(buf, tag)
	buf = appendUint32(buf, uint32(len(data)))
	return append(buf, data...)
}

func readValue(data []byte) (interface{}, []byte, error) {
	if len(data) == 0 {
		return nil, nil, ErrTruncated
	}
	tag := data[0]
	data = data[1:]
	switch tag {
	case tagNull:
		return nil, data, nil
	case tagBool:
		if len(data) < 1 {
			return nil, nil, ErrTruncated
		}
		return data[0] != 0, data[1:], nil
	case tagUint:
		if len(data) < 8 {
			return nil, nil, ErrTruncated
		}
		return binary.LittleEndian.Uint64(data[:8]), data[8:], nil
	case tagInt:
		if len(data) < 8 {
			return nil, nil, ErrTruncated
		}
		return int64(binary.LittleEndian.Uint64(data[:8])), data[8:], nil
	case tagFloat:
		if len(data) < 8 {
			return nil, nil, ErrTruncated
		}
		return math.Float64frombits(binary.LittleEndian.Uint64(data[:8])), data[8:], nil
	case tagString:
		b, rest, err := readBytes(data)
		if err != nil {
			return nil, nil, err
		}
		return string(b), rest, nil
	case tagBytes:
		return readBytes(data)
	case tagArray:
		if len(data) < 4 {
			return nil, nil, ErrTruncated
		}
		n := binary.LittleEndian.Uint32(data[:4])
		data = data[4:]
		arr := make([]interface{}, 0, n)
		for i := uint32(0); i < n; i++ {
			var v interface{}
			var err error
			v, data, err = readValue(data)
			if err != nil {
				return nil, nil, err
			}
			arr = append(arr, v)
		}
		return arr, data, nil
	case tagMap:
		if len(data) < 4 {
			return nil, nil, ErrTruncated
		}
		n := binary.LittleEndian.Uint32(data[:4])
		data = data[4:]
		m := make(Map, n)
		for i := uint32(0); i < n; i++ {
			keyBytes, rest, err := readBytes(data)
			if err != nil {
				return nil, nil, err
			}
			data = rest
			var v interface{}
			v, data, err = readValue(data)
			if err != nil {
				return nil, nil, err
			}
			m[string(keyBytes)] = v
		}
		return m, data, nil
	default:
		return nil, nil, fmt.Errorf("%w: 0x%02x", ErrUnknownTag, tag)
	}
}

// readBytes reads the remainder of a length-prefixed string/bytes value
// (data already past the tag byte: tagString/tagBytes both share this
// 4-byte-length-then-payload shape).
func readBytes(data []byte) ([]byte, []byte, error) {
	if len(data) < 4 {
		return nil, nil, ErrTruncated
	}
	n := binary.LittleEndian.Uint32(data[:4])
	data = data[4:]
	if uint32(len(data)) < n {
		return nil, nil, ErrTruncated
	}
	return data[:n], data[n:], nil
}

// GetUint32 reads a required uint32 field from a decoded map.
func GetUint32(m Map, key string) (uint32, bool) {
	v, ok := m[key]
	if !ok {
		return 0, false
	}
	u, ok := v.(uint64)
	if !ok || u > math.MaxUint32 {
		return 0, false
	}
	return uint32(u), true
}

// GetString reads a required string field from a decoded map.
func GetString(m Map, key string) (string, bool) {
	v, ok := m[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
