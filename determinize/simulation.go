package determinize

import (
	"github.com/coregx/dnfa/nfa"
)

// Simulation steps an NFA directly by tracking the set of active states,
// recomputing every closure and caching nothing. Its states are set keys, so
// it satisfies the same stepping contract as the DFA representations and
// serves as their reference implementation.
type Simulation struct {
	d *Determinizer
}

// NewSimulation creates a simulation of n.
func NewSimulation(n *nfa.NFA) *Simulation {
	return &Simulation{d: New(n)}
}

// Start returns the key of the start closure.
func (s *Simulation) Start() string {
	return s.d.Start().Key()
}

// Next returns the key of the successor set for b.
func (s *Simulation) Next(state string, b byte) string {
	return s.d.Next(DecodeKey(state), b).Key()
}

// IsDead reports whether the active set is empty.
func (s *Simulation) IsDead(state string) bool {
	return state == ""
}

// Pattern returns the lowest pattern accepted by the active set.
func (s *Simulation) Pattern(state string) nfa.PatternID {
	return s.d.Pattern(DecodeKey(state))
}
