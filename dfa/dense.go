package dfa

import (
	"github.com/coregx/dnfa/alphabet"
	"github.com/coregx/dnfa/nfa"
)

// denseTable stores one row per state, one column per byte class. With
// inline finals every row carries one extra column holding the pattern ID.
type denseTable struct {
	classes     alphabet.ByteClasses
	alphabetLen int
	stride      int
	inline      bool
	table       []StateID
}

func newDenseTable(classes alphabet.ByteClasses, rows [][]StateID, patterns []nfa.PatternID, inline bool) *denseTable {
	alen := classes.AlphabetLen()
	stride := alen
	if inline {
		stride++
	}
	t := &denseTable{
		classes:     classes,
		alphabetLen: alen,
		stride:      stride,
		inline:      inline,
		table:       make([]StateID, len(rows)*stride),
	}
	for s, row := range rows {
		base := s * stride
		copy(t.table[base:base+alen], row)
		if inline {
			t.table[base+alen] = StateID(patterns[s])
		}
	}
	return t
}

func (t *denseTable) Next(s StateID, b byte) StateID {
	return t.table[int(s)*t.stride+int(t.classes.Get(b))]
}

func (t *denseTable) Len() int {
	return len(t.table) / t.stride
}

func (t *denseTable) MemoryUsage() int {
	return len(t.table) * 4
}

func (t *denseTable) Layout() TransitionStorage {
	return TransitionDense
}

func (t *denseTable) IsFinal(s StateID) bool {
	return t.Pattern(s) != nfa.NoPattern
}

func (t *denseTable) Pattern(s StateID) nfa.PatternID {
	return nfa.PatternID(t.table[int(s)*t.stride+t.alphabetLen])
}

func (t *denseTable) Storage() FinalStorage {
	return FinalInline
}
