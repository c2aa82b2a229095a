// Package determinize implements the subset construction shared by the eager
// and lazy DFA builders.
//
// A DFA state means a set of NFA states closed under epsilon transitions.
// The Determinizer computes the start set, the successor set for a byte, and
// the pattern a set accepts. It holds scratch buffers and is therefore not
// safe for concurrent use; give each builder or lazy automaton its own.
package determinize

import (
	"slices"

	"github.com/coregx/dnfa/alphabet"
	"github.com/coregx/dnfa/internal/sparse"
	"github.com/coregx/dnfa/nfa"
)

// Determinizer computes DFA state meanings over an NFA.
type Determinizer struct {
	nfa     *nfa.NFA
	classes *alphabet.ByteClasses
	reps    []byte

	seen  *sparse.SparseSet
	stack []nfa.StateID
}

// New creates a determinizer for n.
func New(n *nfa.NFA) *Determinizer {
	return &Determinizer{
		nfa:     n,
		classes: n.ByteClasses(),
		reps:    n.ByteClasses().Representatives(),
		seen:    sparse.NewSparseSet(n.States()),
		stack:   make([]nfa.StateID, 0, 16),
	}
}

// NFA returns the automaton being determinized.
func (d *Determinizer) NFA() *nfa.NFA {
	return d.nfa
}

// ByteClasses returns the byte equivalence classes of the NFA. Every byte of
// a class has the same successor from every set.
func (d *Determinizer) ByteClasses() *alphabet.ByteClasses {
	return d.classes
}

// Representatives returns one byte per class, indexed by class.
func (d *Determinizer) Representatives() []byte {
	return d.reps
}

// Start returns the epsilon closure of the NFA start state.
func (d *Determinizer) Start() Set {
	d.seen.Clear()
	d.push(d.nfa.Start())
	return d.closure()
}

// Closure returns the epsilon closure of ids. Cycles of epsilon transitions
// terminate because every state is visited at most once.
func (d *Determinizer) Closure(ids ...nfa.StateID) Set {
	d.seen.Clear()
	for _, id := range ids {
		d.push(id)
	}
	return d.closure()
}

// Next returns closure(move(set, b)): every state reachable from set by
// consuming b and then following epsilon transitions. An empty result means
// the dead state.
func (d *Determinizer) Next(set Set, b byte) Set {
	d.seen.Clear()
	for _, id := range set {
		if target := d.nfa.State(id).Next(b); target != nfa.InvalidState {
			d.push(target)
		}
	}
	return d.closure()
}

// NextClass is Next for the representative byte of class.
func (d *Determinizer) NextClass(set Set, class int) Set {
	return d.Next(set, d.reps[class])
}

// Pattern returns the lowest pattern accepted by a member of set, or
// nfa.NoPattern if set holds no final state.
func (d *Determinizer) Pattern(set Set) nfa.PatternID {
	best := nfa.NoPattern
	for _, id := range set {
		if p := d.nfa.Pattern(id); p < best {
			best = p
		}
	}
	return best
}

func (d *Determinizer) push(id nfa.StateID) {
	if d.seen.Insert(uint32(id)) {
		d.stack = append(d.stack, id)
	}
}

// closure drains the stack, following epsilon transitions depth first, and
// returns the visited states as a sorted set.
func (d *Determinizer) closure() Set {
	for len(d.stack) > 0 {
		id := d.stack[len(d.stack)-1]
		d.stack = d.stack[:len(d.stack)-1]
		for _, e := range d.nfa.State(id).Epsilons() {
			d.push(e)
		}
	}
	if d.seen.Len() == 0 {
		return nil
	}
	vals := d.seen.Values()
	out := make(Set, len(vals))
	for i, v := range vals {
		out[i] = nfa.StateID(v)
	}
	slices.Sort(out)
	return out
}
