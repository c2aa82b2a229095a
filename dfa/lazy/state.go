package lazy

import (
	"fmt"

	"github.com/coregx/dnfa/determinize"
	"github.com/coregx/dnfa/nfa"
)

// State is a lazily determinized DFA state.
//
// Transitions are filled in as searches need them. A nil entry in next means
// the successor for that byte class has not been computed yet, or pointed to
// a state that has since been evicted.
type State struct {
	key     string
	set     determinize.Set
	pattern nfa.PatternID
	next    []*State

	// incoming lists the cached edges that point at this state, so eviction
	// can clear them.
	incoming []edge
}

type edge struct {
	from  *State
	class int
}

func newState(set determinize.Set, key string, pattern nfa.PatternID, classes int) *State {
	return &State{
		key:     key,
		set:     set,
		pattern: pattern,
		next:    make([]*State, classes),
	}
}

// Set returns the NFA states this DFA state stands for.
func (s *State) Set() determinize.Set {
	return s.set
}

// IsFinal reports whether the state accepts.
func (s *State) IsFinal() bool {
	return s.pattern != nfa.NoPattern
}

// Pattern returns the lowest accepted pattern, or nfa.NoPattern.
func (s *State) Pattern() nfa.PatternID {
	return s.pattern
}

func (s *State) String() string {
	if s.IsFinal() {
		return fmt.Sprintf("State%v#%d", s.set, s.pattern)
	}
	return fmt.Sprintf("State%v", s.set)
}

// unlink removes every edge from src out of s.incoming.
func (s *State) unlink(src *State) {
	kept := s.incoming[:0]
	for _, e := range s.incoming {
		if e.from != src {
			kept = append(kept, e)
		}
	}
	clear(s.incoming[len(kept):])
	s.incoming = kept
}
