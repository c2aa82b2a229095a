package nfa

import (
	"fmt"
	"slices"
	"strings"

	"github.com/coregx/dnfa/alphabet"
)

// StateID uniquely identifies an NFA state.
// This is a 32-bit unsigned integer for compact representation.
type StateID uint32

// InvalidState represents an invalid/uninitialized state ID.
const InvalidState StateID = 0xFFFFFFFF

// PatternID identifies one pattern of a multi-pattern automaton.
// Patterns are numbered from 0 in the order they were added; when several
// patterns accept at the same position the lowest ID wins.
type PatternID uint32

// NoPattern marks a state that accepts no pattern.
const NoPattern PatternID = 0xFFFFFFFF

// Transition maps the inclusive byte range [Lo, Hi] to Next.
type Transition struct {
	Lo   byte    // inclusive lower bound
	Hi   byte    // inclusive upper bound
	Next StateID // target state
}

// Contains reports whether b lies inside the transition's range.
func (t Transition) Contains(b byte) bool {
	return t.Lo <= b && b <= t.Hi
}

func (t Transition) String() string {
	if t.Lo == t.Hi {
		return fmt.Sprintf("%s -> %d", alphabet.FormatByte(t.Lo), t.Next)
	}
	return fmt.Sprintf("%s-%s -> %d", alphabet.FormatByte(t.Lo), alphabet.FormatByte(t.Hi), t.Next)
}

// State is one NFA state: byte-range transitions sorted by Lo and pairwise
// disjoint, epsilon transitions, and the pattern it accepts (NoPattern if
// the state is not final). Bytes outside every range lead nowhere, which a
// DFA models as its dead state.
type State struct {
	id          StateID
	transitions []Transition
	epsilons    []StateID
	pattern     PatternID
}

// ID returns the state's identifier.
func (s *State) ID() StateID {
	return s.id
}

// Transitions returns the byte-range transitions, sorted by Lo.
func (s *State) Transitions() []Transition {
	return s.transitions
}

// Epsilons returns the targets reachable without consuming input.
func (s *State) Epsilons() []StateID {
	return s.epsilons
}

// IsFinal reports whether the state accepts a pattern.
func (s *State) IsFinal() bool {
	return s.pattern != NoPattern
}

// Pattern returns the accepted pattern, or NoPattern.
func (s *State) Pattern() PatternID {
	return s.pattern
}

// Next returns the target for byte b, or InvalidState when no range covers it.
func (s *State) Next(b byte) StateID {
	ts := s.transitions
	i, found := slices.BinarySearchFunc(ts, b, func(t Transition, b byte) int {
		switch {
		case t.Hi < b:
			return -1
		case t.Lo > b:
			return 1
		default:
			return 0
		}
	})
	if !found {
		return InvalidState
	}
	return ts[i].Next
}

func (s *State) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d", s.id)
	if s.IsFinal() {
		fmt.Fprintf(&sb, " (final %d)", s.pattern)
	}
	sb.WriteString(":")
	for _, t := range s.transitions {
		sb.WriteString(" ")
		sb.WriteString(t.String())
	}
	for _, e := range s.epsilons {
		fmt.Fprintf(&sb, " eps -> %d", e)
	}
	return sb.String()
}

// NFA is an immutable non-deterministic automaton over bytes.
//
// Build one with a Builder, Compile, or FromDictionary. An NFA is safe for
// concurrent read-only use.
type NFA struct {
	states       []State
	start        StateID
	patternCount int
	byteClasses  alphabet.ByteClasses
}

// Start returns the start state.
func (n *NFA) Start() StateID {
	return n.start
}

// State returns the state with the given ID, or nil if out of bounds.
func (n *NFA) State(id StateID) *State {
	if int(id) >= len(n.states) {
		return nil
	}
	return &n.states[id]
}

// States returns the number of states.
func (n *NFA) States() int {
	return len(n.states)
}

// IsFinal reports whether id accepts a pattern.
func (n *NFA) IsFinal(id StateID) bool {
	s := n.State(id)
	return s != nil && s.IsFinal()
}

// Pattern returns the pattern accepted by id, or NoPattern.
func (n *NFA) Pattern(id StateID) PatternID {
	if s := n.State(id); s != nil {
		return s.pattern
	}
	return NoPattern
}

// PatternCount returns the number of patterns the automaton distinguishes.
func (n *NFA) PatternCount() int {
	return n.patternCount
}

// Finals returns the IDs of every final state in ascending order.
func (n *NFA) Finals() []StateID {
	var out []StateID
	for i := range n.states {
		if n.states[i].IsFinal() {
			out = append(out, n.states[i].id)
		}
	}
	return out
}

// ByteClasses returns the byte equivalence classes induced by every
// transition range. Bytes in one class are never distinguished.
func (n *NFA) ByteClasses() *alphabet.ByteClasses {
	return &n.byteClasses
}

// String returns a multi-line listing of the automaton.
func (n *NFA) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "NFA{states: %d, start: %d, patterns: %d}\n", len(n.states), n.start, n.patternCount)
	for i := range n.states {
		sb.WriteString("  ")
		sb.WriteString(n.states[i].String())
		sb.WriteString("\n")
	}
	return sb.String()
}
