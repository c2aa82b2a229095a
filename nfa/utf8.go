package nfa

import (
	"unicode/utf8"
)

// byteRange is one position of a UTF-8 byte sequence pattern.
type byteRange struct {
	lo, hi byte
}

type runeRange struct {
	lo, hi rune
}

// utf8Sequences splits the scalar values in [lo, hi] into byte-range
// sequences. Every sequence has a single encoded length and every position
// is one contiguous byte range, so the union of the sequences matches
// exactly the UTF-8 encodings of the input range. Surrogates are skipped.
func utf8Sequences(lo, hi rune) [][]byteRange {
	if hi > utf8.MaxRune {
		hi = utf8.MaxRune
	}
	var out [][]byteRange
	stack := []runeRange{{lo, hi}}
	for len(stack) > 0 {
		r := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

	split:
		for r.lo <= r.hi {
			// Cut out the surrogate block.
			if r.lo <= 0xDFFF && r.hi >= 0xD800 {
				if r.hi > 0xDFFF {
					stack = append(stack, runeRange{0xE000, r.hi})
				}
				if r.lo >= 0xD800 {
					break split
				}
				r.hi = 0xD7FF
				continue split
			}
			// Cut at encoded length boundaries.
			for _, limit := range []rune{0x7F, 0x7FF, 0xFFFF} {
				if r.lo <= limit && limit < r.hi {
					stack = append(stack, runeRange{limit + 1, r.hi})
					r.hi = limit
					continue split
				}
			}
			if r.hi < utf8.RuneSelf {
				out = append(out, []byteRange{{byte(r.lo), byte(r.hi)}})
				break split
			}
			// Align to continuation byte boundaries so each position spans
			// a full or single-prefix range.
			for i := 1; i < utf8.UTFMax; i++ {
				m := rune(1)<<(6*i) - 1
				if r.lo&^m != r.hi&^m {
					if r.lo&m != 0 {
						stack = append(stack, runeRange{(r.lo | m) + 1, r.hi})
						r.hi = r.lo | m
						continue split
					}
					if r.hi&m != m {
						stack = append(stack, runeRange{r.hi &^ m, r.hi})
						r.hi = (r.hi &^ m) - 1
						continue split
					}
				}
			}

			var a, b [utf8.UTFMax]byte
			n := utf8.EncodeRune(a[:], r.lo)
			utf8.EncodeRune(b[:], r.hi)
			seq := make([]byteRange, n)
			for i := 0; i < n; i++ {
				seq[i] = byteRange{a[i], b[i]}
			}
			out = append(out, seq)
			break split
		}
	}
	return out
}
