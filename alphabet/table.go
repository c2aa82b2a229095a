package alphabet

import (
	"fmt"
	"slices"
	"strings"
)

// linearScanMax is the table size up to which Step scans ceilings linearly
// instead of binary searching.
const linearScanMax = 8

// SparseTable is a compacted transition row.
//
// Each entry covers the bytes from one past the previous ceiling up to and
// including its own ceiling, so ceilings are strictly increasing and the
// last ceiling is always 0xFF.
type SparseTable[T comparable] struct {
	ceilings []byte
	targets  []T
}

// NewSparseTable builds a table from ranges that cover all 256 bytes in
// order without gaps, as returned by Compact.
func NewSparseTable[T comparable](ranges []Range[T]) (SparseTable[T], error) {
	t := SparseTable[T]{
		ceilings: make([]byte, 0, len(ranges)),
		targets:  make([]T, 0, len(ranges)),
	}
	next := 0
	for _, r := range ranges {
		if int(r.Lo) != next || r.Lo > r.Hi {
			return SparseTable[T]{}, fmt.Errorf("range %v does not start at 0x%02X", r, next)
		}
		t.ceilings = append(t.ceilings, r.Hi)
		t.targets = append(t.targets, r.Target)
		next = int(r.Hi) + 1
	}
	if next != 256 {
		return SparseTable[T]{}, fmt.Errorf("ranges end at 0x%02X, want 0xFF", next-1)
	}
	return t, nil
}

// Pack compacts a dense row into a SparseTable.
func Pack[T comparable](row *[256]T) SparseTable[T] {
	// CompactTable always covers every byte, so construction cannot fail.
	t, _ := NewSparseTable(CompactTable(row))
	return t
}

// Step returns the target for byte b.
func (t *SparseTable[T]) Step(b byte) T {
	if len(t.ceilings) <= linearScanMax {
		for i, c := range t.ceilings {
			if b <= c {
				return t.targets[i]
			}
		}
	}
	i, _ := slices.BinarySearch(t.ceilings, b)
	return t.targets[i]
}

// Len returns the number of ranges.
func (t *SparseTable[T]) Len() int {
	return len(t.ceilings)
}

// Ranges unpacks the table back into explicit ranges.
func (t *SparseTable[T]) Ranges() []Range[T] {
	out := make([]Range[T], len(t.ceilings))
	lo := 0
	for i, c := range t.ceilings {
		out[i] = Range[T]{Lo: byte(lo), Hi: c, Target: t.targets[i]}
		lo = int(c) + 1
	}
	return out
}

// Targets calls fn for every range target in byte order.
func (t *SparseTable[T]) Targets(fn func(T)) {
	for _, target := range t.targets {
		fn(target)
	}
}

// MemoryUsage approximates the heap bytes held by the table, given the
// size of one target.
func (t *SparseTable[T]) MemoryUsage(targetSize int) int {
	return cap(t.ceilings) + cap(t.targets)*targetSize
}

func (t *SparseTable[T]) String() string {
	var sb strings.Builder
	for i, r := range t.Ranges() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(r.String())
	}
	return sb.String()
}
