// Package ddfa provides the direct DFA: a frozen DFA whose transitions are
// pointers to state records instead of indexes into a table.
//
// All records live in one slice allocated once, so their addresses are
// stable. Stepping is a single load from the current record; there is no
// row multiplication and no byte class lookup. The price is 2 KiB of
// pointers per state and the loss of index-keyed side tables, so the pattern
// accepted by each state is stored in the record itself.
//
// A DDFA can only be built from a finished eager DFA and has no mutators.
package ddfa

import (
	"unsafe"

	"github.com/coregx/dnfa/dfa"
	"github.com/coregx/dnfa/internal/conv"
	"github.com/coregx/dnfa/nfa"
)

// State is a direct DFA state record.
type State struct {
	next    [256]*State
	pattern nfa.PatternID
	accel   []byte
}

// IsFinal reports whether the state accepts.
func (s *State) IsFinal() bool {
	return s.pattern != nfa.NoPattern
}

// Pattern returns the lowest accepted pattern, or nfa.NoPattern.
func (s *State) Pattern() nfa.PatternID {
	return s.pattern
}

// DDFA is a direct DFA. It is immutable and safe for concurrent use.
type DDFA struct {
	states       []State
	patternCount int
}

// New converts d. The source must use inline final storage; d itself is
// not modified and stays usable.
func New(d *dfa.DFA) (*DDFA, error) {
	if d == nil {
		return nil, &dfa.DFAError{
			Kind:    dfa.InvalidAutomaton,
			Message: "nil DFA",
			Cause:   nfa.ErrInvalidAutomaton,
		}
	}
	if d.Config().Finals != dfa.FinalInline {
		return nil, dfa.InvalidConfigError("direct representation requires inline final storage")
	}

	dd := &DDFA{
		states:       make([]State, d.Len()),
		patternCount: d.PatternCount(),
	}
	for i := range dd.states {
		id := dfa.StateID(conv.IntToUint32(i))
		rec := &dd.states[i]
		rec.pattern = d.Pattern(id)
		rec.accel = d.Accel(id)
		for b := 0; b < 256; b++ {
			rec.next[b] = &dd.states[d.Next(id, byte(b))]
		}
	}
	return dd, nil
}

// Start returns the start state.
func (dd *DDFA) Start() *State {
	return &dd.states[dfa.StartState]
}

// Dead returns the dead state.
func (dd *DDFA) Dead() *State {
	return &dd.states[dfa.DeadState]
}

// Next returns the successor of s on b.
func (dd *DDFA) Next(s *State, b byte) *State {
	return s.next[b]
}

// IsDead reports whether s is the dead state.
func (dd *DDFA) IsDead(s *State) bool {
	return s == &dd.states[dfa.DeadState]
}

// IsFinal reports whether s accepts.
func (dd *DDFA) IsFinal(s *State) bool {
	return s.IsFinal()
}

// Pattern returns the lowest pattern accepted by s, or nfa.NoPattern.
func (dd *DDFA) Pattern(s *State) nfa.PatternID {
	return s.pattern
}

// Accel returns the exit bytes of s when it is accelerated.
func (dd *DDFA) Accel(s *State) []byte {
	return s.accel
}

// Len returns the number of states, including the dead state.
func (dd *DDFA) Len() int {
	return len(dd.states)
}

// PatternCount returns the number of patterns.
func (dd *DDFA) PatternCount() int {
	return dd.patternCount
}

// MemoryUsage approximates the heap bytes held by the automaton.
func (dd *DDFA) MemoryUsage() int {
	total := cap(dd.states) * int(unsafe.Sizeof(State{}))
	for i := range dd.states {
		total += cap(dd.states[i].accel)
	}
	return total
}
