// Package search runs deterministic automata over byte slices.
//
// Every representation in this module (eager DFA, lazy DFA, direct DFA and
// the reference NFA simulation) exposes the same four stepping operations,
// captured by Stepper. The functions here implement the match semantics once
// for all of them; the search mode only changes when a scan stops and which
// final position it reports, never how states are stepped.
package search

import (
	"fmt"
	"iter"

	"github.com/coregx/dnfa/nfa"
	"github.com/coregx/dnfa/simd"
)

// Mode selects the stopping and reporting rule of a search.
type Mode uint8

const (
	// LeftmostLongest keeps stepping until the dead state or the end of the
	// input and reports the last final position seen.
	LeftmostLongest Mode = iota

	// First reports the first final position reached and stops.
	First

	// Overlapping reports every final position. Single-match searches in
	// this mode behave like First.
	Overlapping
)

func (m Mode) String() string {
	switch m {
	case LeftmostLongest:
		return "leftmost-longest"
	case First:
		return "first"
	case Overlapping:
		return "overlapping"
	default:
		return fmt.Sprintf("Mode(%d)", m)
	}
}

// Match is the span [Start, End) of a match and the pattern that produced it.
type Match struct {
	Start   int
	End     int
	Pattern nfa.PatternID
}

// Len returns the number of bytes matched.
func (m Match) Len() int {
	return m.End - m.Start
}

func (m Match) String() string {
	return fmt.Sprintf("[%d,%d)#%d", m.Start, m.End, m.Pattern)
}

// Stepper is a deterministic automaton. Next must be total: every byte from
// every state yields a state, and the dead state only leads to itself.
type Stepper[S comparable] interface {
	Start() S
	Next(s S, b byte) S
	IsDead(s S) bool
	// Pattern returns the pattern accepted by s, or nfa.NoPattern.
	Pattern(s S) nfa.PatternID
}

// Accelerator is implemented by automata that know, for some states, the
// few bytes that leave the state. All other bytes must loop back to it.
type Accelerator[S comparable] interface {
	Accel(s S) []byte
}

// Anchored runs a from position at and reports a match starting exactly
// there.
func Anchored[S comparable](a Stepper[S], haystack []byte, at int, mode Mode) (Match, bool) {
	if at < 0 || at > len(haystack) {
		return Match{}, false
	}
	acc, _ := a.(Accelerator[S])

	m := Match{Start: at, End: -1, Pattern: nfa.NoPattern}
	s := a.Start()
	if p := a.Pattern(s); p != nfa.NoPattern {
		m.End, m.Pattern = at, p
		if mode != LeftmostLongest {
			return m, true
		}
	}
	for i := at; i < len(haystack); i++ {
		if acc != nil && mode == LeftmostLongest {
			if exits := acc.Accel(s); exits != nil {
				j := simd.IndexAny(haystack[i:], exits)
				if j < 0 {
					if p := a.Pattern(s); p != nfa.NoPattern {
						m.End, m.Pattern = len(haystack), p
					}
					break
				}
				if j > 0 {
					i += j
					if p := a.Pattern(s); p != nfa.NoPattern {
						m.End, m.Pattern = i, p
					}
				}
			}
		}
		s = a.Next(s, haystack[i])
		if a.IsDead(s) {
			break
		}
		if p := a.Pattern(s); p != nfa.NoPattern {
			m.End, m.Pattern = i+1, p
			if mode != LeftmostLongest {
				return m, true
			}
		}
	}
	if m.End < 0 {
		return Match{}, false
	}
	return m, true
}

// Candidates narrows the start offsets a search has to try. Find returns
// the first offset at or after start where a match may begin, or -1 when
// none can.
type Candidates interface {
	Find(haystack []byte, start int) int
}

// Find reports the leftmost match at or after at. Start offsets are tried in
// order, so the match with the smallest start wins; mode decides its end.
func Find[S comparable](a Stepper[S], haystack []byte, at int, mode Mode) (Match, bool) {
	return FindFrom(a, haystack, at, mode, nil)
}

// FindFrom is Find restricted to the start offsets reported by c. A nil c
// tries every offset.
func FindFrom[S comparable](a Stepper[S], haystack []byte, at int, mode Mode, c Candidates) (Match, bool) {
	for start := max(at, 0); start <= len(haystack); start++ {
		if c != nil {
			if start = c.Find(haystack, start); start < 0 {
				return Match{}, false
			}
		}
		if m, ok := Anchored(a, haystack, start, mode); ok {
			return m, true
		}
	}
	return Match{}, false
}

// IsMatch reports whether any match exists at or after at.
func IsMatch[S comparable](a Stepper[S], haystack []byte, at int) bool {
	_, ok := Find(a, haystack, at, First)
	return ok
}

// OverlappingMatches calls fn for every (start, end) pair at which a reaches
// a final state, ordered by start and then by end. It stops early when fn
// returns false.
func OverlappingMatches[S comparable](a Stepper[S], haystack []byte, at int, fn func(Match) bool) {
	for start := max(at, 0); start <= len(haystack); start++ {
		s := a.Start()
		if p := a.Pattern(s); p != nfa.NoPattern {
			if !fn(Match{Start: start, End: start, Pattern: p}) {
				return
			}
		}
		for i := start; i < len(haystack); i++ {
			s = a.Next(s, haystack[i])
			if a.IsDead(s) {
				break
			}
			if p := a.Pattern(s); p != nfa.NoPattern {
				if !fn(Match{Start: start, End: i + 1, Pattern: p}) {
					return
				}
			}
		}
	}
}

// All yields successive non-overlapping matches. After an empty match the
// next search starts one byte later, and an empty match adjacent to the
// previous match is skipped. In Overlapping mode every match found by
// OverlappingMatches is yielded instead.
func All[S comparable](a Stepper[S], haystack []byte, mode Mode) iter.Seq[Match] {
	if mode == Overlapping {
		return func(yield func(Match) bool) {
			OverlappingMatches(a, haystack, 0, yield)
		}
	}
	return Iterate(len(haystack), func(at int) (Match, bool) {
		return Find(a, haystack, at, mode)
	})
}

// Iterate yields the successive non-overlapping matches reported by find,
// which must return the leftmost match at or after its argument in a
// haystack of length n.
func Iterate(n int, find func(at int) (Match, bool)) iter.Seq[Match] {
	return func(yield func(Match) bool) {
		at, prevEnd := 0, -1
		for at <= n {
			m, ok := find(at)
			if !ok {
				return
			}
			if m.Len() == 0 && m.End == prevEnd {
				at = m.End + 1
				continue
			}
			if !yield(m) {
				return
			}
			prevEnd = m.End
			if m.Len() == 0 {
				at = m.End + 1
			} else {
				at = m.End
			}
		}
	}
}
