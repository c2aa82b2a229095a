package nfa

import (
	"errors"
	"fmt"

	"github.com/coregx/dnfa/alphabet"
	"github.com/coregx/dnfa/internal/conv"
)

// Builder constructs NFAs incrementally using a low-level API.
// States are created first and wired afterwards, so transitions may point
// forward to states that do not exist yet; Validate and Build check that
// every reference resolves.
type Builder struct {
	states []State
	start  StateID
}

// NewBuilder creates a new NFA builder with default capacity
func NewBuilder() *Builder {
	return NewBuilderWithCapacity(16)
}

// NewBuilderWithCapacity creates a new NFA builder with specified initial capacity
func NewBuilderWithCapacity(capacity int) *Builder {
	return &Builder{
		states: make([]State, 0, capacity),
		start:  InvalidState,
	}
}

// AddState adds a non-final state without transitions and returns its ID.
func (b *Builder) AddState() StateID {
	id := StateID(conv.IntToUint32(len(b.states)))
	b.states = append(b.states, State{id: id, pattern: NoPattern})
	return id
}

// AddFinal adds a state accepting pattern and returns its ID.
func (b *Builder) AddFinal(pattern PatternID) StateID {
	id := b.AddState()
	b.states[id].pattern = pattern
	return id
}

// AddTransition adds the byte-range transition [lo, hi] from -> to.
func (b *Builder) AddTransition(from StateID, lo, hi byte, to StateID) error {
	s, err := b.state(from)
	if err != nil {
		return err
	}
	s.transitions = append(s.transitions, Transition{Lo: lo, Hi: hi, Next: to})
	return nil
}

// AddByte adds the single-byte transition c: from -> to.
func (b *Builder) AddByte(from StateID, c byte, to StateID) error {
	return b.AddTransition(from, c, c, to)
}

// AddEpsilon adds an epsilon transition from -> to.
func (b *Builder) AddEpsilon(from, to StateID) error {
	s, err := b.state(from)
	if err != nil {
		return err
	}
	s.epsilons = append(s.epsilons, to)
	return nil
}

// SetFinal marks id as accepting pattern. Passing NoPattern clears the mark.
func (b *Builder) SetFinal(id StateID, pattern PatternID) error {
	s, err := b.state(id)
	if err != nil {
		return err
	}
	s.pattern = pattern
	return nil
}

// SetStart sets the start state.
func (b *Builder) SetStart(id StateID) {
	b.start = id
}

// Len returns the number of states added so far.
func (b *Builder) Len() int {
	return len(b.states)
}

func (b *Builder) state(id StateID) (*State, error) {
	if int(id) >= len(b.states) {
		return nil, &BuildError{Message: "state ID out of bounds", StateID: id}
	}
	return &b.states[id], nil
}

// Validate checks that the start state exists, that every transition and
// epsilon target exists, and that no byte of a state maps to two different
// targets.
func (b *Builder) Validate() error {
	_, err := b.normalize()
	return err
}

// Build validates the automaton and returns an immutable NFA. Each state's
// ranges are compacted: sorted, with adjacent or overlapping ranges to the
// same target merged. The builder may keep being used afterwards.
func (b *Builder) Build() (*NFA, error) {
	states, err := b.normalize()
	if err != nil {
		return nil, err
	}

	bcs := alphabet.NewByteClassSet()
	maxPattern := -1
	for i := range states {
		for _, t := range states[i].transitions {
			bcs.SetRange(t.Lo, t.Hi)
		}
		if p := states[i].pattern; p != NoPattern && int(p) > maxPattern {
			maxPattern = int(p)
		}
	}

	return &NFA{
		states:       states,
		start:        b.start,
		patternCount: maxPattern + 1,
		byteClasses:  bcs.ByteClasses(),
	}, nil
}

func (b *Builder) normalize() ([]State, error) {
	if b.start == InvalidState {
		return nil, &BuildError{Message: "start state not set", StateID: InvalidState}
	}
	if int(b.start) >= len(b.states) {
		return nil, &BuildError{Message: "start state out of bounds", StateID: b.start}
	}

	n := len(b.states)
	out := make([]State, n)
	for i := range b.states {
		s := &b.states[i]
		for _, e := range s.epsilons {
			if int(e) >= n {
				return nil, &BuildError{Message: fmt.Sprintf("epsilon target %d out of bounds", e), StateID: s.id}
			}
		}
		trans, err := compactTransitions(s, n)
		if err != nil {
			return nil, err
		}
		out[i] = State{
			id:          s.id,
			transitions: trans,
			epsilons:    append([]StateID(nil), s.epsilons...),
			pattern:     s.pattern,
		}
	}
	return out, nil
}

func compactTransitions(s *State, n int) ([]Transition, error) {
	if len(s.transitions) == 0 {
		return nil, nil
	}
	pairs := make([]alphabet.Range[StateID], len(s.transitions))
	for i, t := range s.transitions {
		if int(t.Next) >= n {
			return nil, &BuildError{Message: fmt.Sprintf("transition target %d out of bounds", t.Next), StateID: s.id}
		}
		if t.Lo > t.Hi {
			return nil, &BuildError{Message: fmt.Sprintf("inverted range %s", t), StateID: s.id}
		}
		pairs[i] = alphabet.Range[StateID]{Lo: t.Lo, Hi: t.Hi, Target: t.Next}
	}

	ranges, err := alphabet.Compact(pairs, InvalidState)
	if err != nil {
		if errors.Is(err, alphabet.ErrOverlap) {
			return nil, &BuildError{Message: "overlapping byte ranges with different targets", StateID: s.id}
		}
		return nil, &BuildError{Message: err.Error(), StateID: s.id}
	}

	trans := make([]Transition, 0, len(ranges))
	for _, r := range ranges {
		if r.Target != InvalidState {
			trans = append(trans, Transition{Lo: r.Lo, Hi: r.Hi, Next: r.Target})
		}
	}
	return trans, nil
}
