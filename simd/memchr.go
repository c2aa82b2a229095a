// Package simd provides SWAR (SIMD Within A Register) byte searching used to
// accelerate DFA states that loop on almost every byte.
//
// A state whose only exits are one to three bytes can skip straight to the
// next occurrence of one of those bytes. The routines here process eight
// bytes per iteration with uint64 arithmetic and are portable to every
// architecture Go supports.
package simd

// Memchr returns the index of the first occurrence of needle in haystack,
// or -1 if it is not present.
func Memchr(haystack []byte, needle byte) int {
	return memchrGeneric(haystack, needle)
}

// Memchr2 returns the index of the first occurrence of either needle.
func Memchr2(haystack []byte, needle1, needle2 byte) int {
	return memchr2Generic(haystack, needle1, needle2)
}

// Memchr3 returns the index of the first occurrence of any of three needles.
func Memchr3(haystack []byte, needle1, needle2, needle3 byte) int {
	return memchr3Generic(haystack, needle1, needle2, needle3)
}

// IndexAny returns the index of the first byte of haystack contained in
// needles, which must hold between one and three bytes. It returns -1 when
// no such byte exists or needles has an unsupported length.
func IndexAny(haystack []byte, needles []byte) int {
	switch len(needles) {
	case 1:
		return Memchr(haystack, needles[0])
	case 2:
		return Memchr2(haystack, needles[0], needles[1])
	case 3:
		return Memchr3(haystack, needles[0], needles[1], needles[2])
	default:
		return -1
	}
}
