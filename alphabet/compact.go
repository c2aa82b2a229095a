// Package alphabet compacts per-state byte transitions into ordered ranges.
//
// A state's outgoing transitions are a partial function from the 256 byte
// values to targets. Compact turns an unordered list of labelled ranges into
// the minimal ordered list of disjoint ranges covering all 256 bytes, with
// uncovered bytes sent to a caller supplied dead target. The result feeds
// both NFA transition lists and the sparse DFA layout (SparseTable).
//
// ByteClasses and ByteClassSet provide the complementary reduction: they
// group bytes that no transition distinguishes so dense tables only need one
// column per class.
package alphabet

import (
	"errors"
	"fmt"
	"slices"
)

// ErrOverlap is returned by Compact when two input ranges share a byte but
// disagree on its target.
var ErrOverlap = errors.New("overlapping byte ranges with different targets")

// Range maps every byte in [Lo, Hi] to Target.
type Range[T comparable] struct {
	Lo, Hi byte
	Target T
}

// Contains reports whether b lies inside the range.
func (r Range[T]) Contains(b byte) bool {
	return r.Lo <= b && b <= r.Hi
}

// String renders the range as "[lo,hi]->target" with hex bytes.
func (r Range[T]) String() string {
	return fmt.Sprintf("[0x%02X,0x%02X]->%v", r.Lo, r.Hi, r.Target)
}

// Compact returns the minimal ordered list of disjoint ranges covering all
// 256 bytes. Bytes not covered by pairs map to dead, and adjacent ranges with
// equal targets are merged. Input ranges may overlap only when they agree on
// the target; otherwise ErrOverlap is returned.
//
// An empty input yields the single range [0x00,0xFF] -> dead.
func Compact[T comparable](pairs []Range[T], dead T) ([]Range[T], error) {
	sorted := make([]Range[T], 0, len(pairs))
	for _, p := range pairs {
		if p.Lo > p.Hi {
			return nil, fmt.Errorf("invalid range %v: lo > hi", p)
		}
		sorted = append(sorted, p)
	}
	slices.SortFunc(sorted, func(a, b Range[T]) int {
		if a.Lo != b.Lo {
			return int(a.Lo) - int(b.Lo)
		}
		return int(a.Hi) - int(b.Hi)
	})

	out := make([]Range[T], 0, 2*len(sorted)+1)
	// next is the first byte not yet emitted; 256 once the sweep is done.
	next := 0
	emit := func(lo, hi byte, target T) {
		if n := len(out); n > 0 && out[n-1].Target == target && int(out[n-1].Hi)+1 == int(lo) {
			out[n-1].Hi = hi
		} else {
			out = append(out, Range[T]{Lo: lo, Hi: hi, Target: target})
		}
		next = int(hi) + 1
	}

	for _, r := range sorted {
		if int(r.Hi) < next {
			// Fully covered by an earlier range.
			if !covered(out, r) {
				return nil, fmt.Errorf("%w: %v", ErrOverlap, r)
			}
			continue
		}
		lo := int(r.Lo)
		if lo < next {
			// Partial overlap: the shared prefix must agree.
			if !covered(out, Range[T]{Lo: r.Lo, Hi: byte(next - 1), Target: r.Target}) {
				return nil, fmt.Errorf("%w: %v", ErrOverlap, r)
			}
			lo = next
		}
		if lo > next {
			emit(byte(next), byte(lo-1), dead)
		}
		emit(byte(lo), r.Hi, r.Target)
	}
	if next <= 255 {
		emit(byte(next), 255, dead)
	}
	return out, nil
}

// covered reports whether r lies entirely inside ranges that carry its
// target. Only the tail of out can intersect r during the sweep.
func covered[T comparable](out []Range[T], r Range[T]) bool {
	for i := len(out) - 1; i >= 0; i-- {
		o := out[i]
		if o.Hi < r.Lo {
			return true
		}
		if o.Lo > r.Hi {
			continue
		}
		if o.Target != r.Target {
			return false
		}
		if o.Lo <= r.Lo {
			return true
		}
	}
	return true
}

// Expand decompacts ranges into a full 256-entry table. Bytes not covered
// by any range keep the zero value of T.
func Expand[T comparable](ranges []Range[T]) [256]T {
	var table [256]T
	for _, r := range ranges {
		for b := int(r.Lo); b <= int(r.Hi); b++ {
			table[b] = r.Target
		}
	}
	return table
}

// CompactTable compacts a dense 256-entry table, merging runs of equal
// targets.
func CompactTable[T comparable](table *[256]T) []Range[T] {
	out := make([]Range[T], 0, 8)
	start := 0
	for b := 1; b <= 256; b++ {
		if b == 256 || table[b] != table[start] {
			out = append(out, Range[T]{Lo: byte(start), Hi: byte(b - 1), Target: table[start]})
			start = b
		}
	}
	return out
}
