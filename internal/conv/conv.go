// Package conv provides zero-copy conversions between strings and byte slices.
//
// The matcher works on strings; callers holding byte slices, and libraries
// taking byte slices, are bridged without copying the input. The results alias
// the original memory and must never be written to.
package conv

import "unsafe"

// String returns b as a string without copying.
// b must not be modified while the result is in use.
//
//go:inline
func String(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// Bytes returns the bytes of s without copying.
// The result is read-only; writing to it is undefined behavior.
//
//go:inline
func Bytes(s string) []byte {
	if s == "" {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
