// Package dfa builds deterministic automata eagerly from an NFA.
//
// Build runs the subset construction to completion, numbering states in the
// order they are discovered: state 0 is the dead state, state 1 is the start
// state. The resulting table is immutable and safe for concurrent use.
//
// Two orthogonal choices shape the representation:
//
//   - Transitions: a dense table indexed by byte class, or a sparse table of
//     (ceiling, target) ranges per state.
//   - Finals: the accepted pattern stored inline in each state record, or a
//     bitset of final states with a side table of pattern IDs.
//
// Every combination answers Next, IsFinal and Pattern identically.
package dfa

import (
	"fmt"

	"github.com/coregx/dnfa/alphabet"
	"github.com/coregx/dnfa/nfa"
)

// StateID identifies a DFA state. IDs are dense indexes into the table.
type StateID uint32

const (
	// DeadState is the absorbing non-final state. Every transition from it
	// returns to it.
	DeadState StateID = 0

	// StartState is the state the automaton begins in.
	StartState StateID = 1
)

// Transitions is a transition table layout.
type Transitions interface {
	// Next returns the successor of s on byte b.
	Next(s StateID, b byte) StateID

	// Len returns the number of states, including the dead state.
	Len() int

	// MemoryUsage approximates the heap bytes held by the table.
	MemoryUsage() int

	// Layout reports which storage the table uses.
	Layout() TransitionStorage
}

// Finals answers finality queries.
type Finals interface {
	// IsFinal reports whether s accepts.
	IsFinal(s StateID) bool

	// Pattern returns the lowest pattern accepted by s, or nfa.NoPattern.
	Pattern(s StateID) nfa.PatternID

	// Storage reports where final information is kept.
	Storage() FinalStorage
}

// DFA is an eagerly built deterministic automaton.
type DFA struct {
	config       Config
	classes      alphabet.ByteClasses
	trans        Transitions
	finals       Finals
	accel        [][]byte
	patternCount int
}

// Start returns the start state.
func (d *DFA) Start() StateID {
	return StartState
}

// Next returns the successor of s on byte b.
func (d *DFA) Next(s StateID, b byte) StateID {
	return d.trans.Next(s, b)
}

// IsDead reports whether s is the dead state.
func (d *DFA) IsDead(s StateID) bool {
	return s == DeadState
}

// IsFinal reports whether s accepts.
func (d *DFA) IsFinal(s StateID) bool {
	return d.finals.IsFinal(s)
}

// Pattern returns the lowest pattern accepted by s, or nfa.NoPattern.
func (d *DFA) Pattern(s StateID) nfa.PatternID {
	return d.finals.Pattern(s)
}

// Accel returns the bytes that leave s, when s loops on every other byte and
// there are at most three of them. It returns nil otherwise.
func (d *DFA) Accel(s StateID) []byte {
	if d.accel == nil {
		return nil
	}
	return d.accel[s]
}

// Len returns the number of states, including the dead state.
func (d *DFA) Len() int {
	return d.trans.Len()
}

// PatternCount returns the number of patterns the automaton recognizes.
func (d *DFA) PatternCount() int {
	return d.patternCount
}

// ByteClasses returns the byte equivalence classes inherited from the NFA.
func (d *DFA) ByteClasses() *alphabet.ByteClasses {
	return &d.classes
}

// Config returns the configuration the automaton was built with.
func (d *DFA) Config() Config {
	return d.config
}

// Transitions returns the transition table.
func (d *DFA) Transitions() Transitions {
	return d.trans
}

// Finals returns the final-state storage.
func (d *DFA) Finals() Finals {
	return d.finals
}

// MemoryUsage approximates the heap bytes held by the automaton.
func (d *DFA) MemoryUsage() int {
	total := d.trans.MemoryUsage()
	if f, ok := d.finals.(*bitsetFinals); ok {
		total += f.memoryUsage()
	}
	for _, a := range d.accel {
		total += cap(a)
	}
	return total
}

// String returns a one-line summary.
func (d *DFA) String() string {
	return fmt.Sprintf("DFA{states: %d, classes: %d, transitions: %v, finals: %v}",
		d.Len(), d.classes.AlphabetLen(), d.trans.Layout(), d.finals.Storage())
}
