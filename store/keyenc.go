package store

import (
	"cmp"
	"encoding/binary"
	"fmt"
)

// KeyEncoding converts an order value to and from a canonical byte form whose
// lexicographic byte order matches the value's natural order. The Bolt
// backend relies on this so that database iteration order equals order-value
// order.
//
// The encoding name is recorded in persistent store metadata and validated on
// open, so names must be stable.
type KeyEncoding[O cmp.Ordered] interface {
	Name() string
	Encode(order O) []byte
	Decode(b []byte) (O, error)
}

// Uint64Key encodes uint64 order values as 8 big-endian bytes.
type Uint64Key struct{}

// Name returns the stable name of the encoding ("uint64-be").
func (Uint64Key) Name() string { return "uint64-be" }

// Encode returns the big-endian byte form of order.
func (Uint64Key) Encode(order uint64) []byte {
	return binary.BigEndian.AppendUint64(nil, order)
}

// Decode parses the big-endian byte form back into a uint64.
func (Uint64Key) Decode(b []byte) (uint64, error) {
	if len(b) != 8 {
		return 0, fmt.Errorf("uint64-be: want 8 bytes, got %d", len(b))
	}
	return binary.BigEndian.Uint64(b), nil
}

// Int64Key encodes int64 order values as 8 big-endian bytes with the sign
// bit flipped, so negative values sort before positive ones byte-wise.
type Int64Key struct{}

// Name returns the stable name of the encoding ("int64-be").
func (Int64Key) Name() string { return "int64-be" }

// Encode returns the sign-flipped big-endian byte form of order.
//
// Timestamps are the common case here: encode time.Time order values as
// t.UnixNano().
func (Int64Key) Encode(order int64) []byte {
	return binary.BigEndian.AppendUint64(nil, uint64(order)^(1<<63))
}

// Decode parses the sign-flipped big-endian byte form back into an int64.
func (Int64Key) Decode(b []byte) (int64, error) {
	if len(b) != 8 {
		return 0, fmt.Errorf("int64-be: want 8 bytes, got %d", len(b))
	}
	return int64(binary.BigEndian.Uint64(b) ^ (1 << 63)), nil
}

// StringKey encodes string order values as their raw bytes, whose
// lexicographic order is the string order.
type StringKey struct{}

// Name returns the stable name of the encoding ("string-raw").
func (StringKey) Name() string { return "string-raw" }

// Encode returns the raw bytes of order.
func (StringKey) Encode(order string) []byte { return []byte(order) }

// Decode returns the bytes as a string. It never fails.
func (StringKey) Decode(b []byte) (string, error) { return string(b), nil }
