// Package conv provides checked integer conversions for automaton indices.
//
// State and pattern identifiers are 32-bit. Narrowing an int that does not
// fit is a programming error (an automaton far larger than any state limit
// allows), so these helpers panic instead of returning an error.
package conv

import "math"

// IntToUint32 converts n to uint32.
// Panics if n < 0 or n > math.MaxUint32.
//
//go:inline
func IntToUint32(n int) uint32 {
	// Compare as uint so 32-bit platforms do not overflow the constant.
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}

// IntToByte converts n to a byte, used for byte class indices.
// Panics if n is outside [0, 255].
func IntToByte(n int) byte {
	if n < 0 || n > math.MaxUint8 {
		panic("integer overflow: int value out of byte range")
	}
	return byte(n)
}
