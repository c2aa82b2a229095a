package dfa

import (
	"unsafe"

	"github.com/coregx/dnfa/alphabet"
	"github.com/coregx/dnfa/nfa"
)

type sparseState struct {
	trans   alphabet.SparseTable[StateID]
	pattern nfa.PatternID
}

// sparseTable stores each state as compacted byte ranges. The pattern field
// is only consulted when finals are inline.
type sparseTable struct {
	states []sparseState
}

func newSparseTable(ranges [][]alphabet.Range[StateID], patterns []nfa.PatternID) (*sparseTable, error) {
	t := &sparseTable{states: make([]sparseState, len(ranges))}
	for s, rs := range ranges {
		st, err := alphabet.NewSparseTable(rs)
		if err != nil {
			return nil, err
		}
		t.states[s] = sparseState{trans: st, pattern: patterns[s]}
	}
	return t, nil
}

func (t *sparseTable) Next(s StateID, b byte) StateID {
	return t.states[s].trans.Step(b)
}

func (t *sparseTable) Len() int {
	return len(t.states)
}

func (t *sparseTable) MemoryUsage() int {
	total := cap(t.states) * int(unsafe.Sizeof(sparseState{}))
	for i := range t.states {
		total += t.states[i].trans.MemoryUsage(4)
	}
	return total
}

func (t *sparseTable) Layout() TransitionStorage {
	return TransitionSparse
}

func (t *sparseTable) IsFinal(s StateID) bool {
	return t.states[s].pattern != nfa.NoPattern
}

func (t *sparseTable) Pattern(s StateID) nfa.PatternID {
	return t.states[s].pattern
}

func (t *sparseTable) Storage() FinalStorage {
	return FinalInline
}

// rowRanges turns a per-class row into compacted byte ranges.
func rowRanges(row []StateID, reps []byte) ([]alphabet.Range[StateID], error) {
	pairs := make([]alphabet.Range[StateID], 0, len(row))
	for c, target := range row {
		if target == DeadState {
			continue
		}
		hi := byte(0xFF)
		if c+1 < len(reps) {
			hi = reps[c+1] - 1
		}
		pairs = append(pairs, alphabet.Range[StateID]{Lo: reps[c], Hi: hi, Target: target})
	}
	return alphabet.Compact(pairs, DeadState)
}
