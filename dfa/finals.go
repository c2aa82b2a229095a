package dfa

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/coregx/dnfa/nfa"
)

// bitsetFinals keeps finality out of the transition table. Pattern IDs are
// only stored when more than one pattern exists.
type bitsetFinals struct {
	bits     *bitset.BitSet
	patterns map[StateID]nfa.PatternID
}

func newBitsetFinals(patterns []nfa.PatternID, patternCount int) *bitsetFinals {
	f := &bitsetFinals{bits: bitset.New(uint(len(patterns)))}
	if patternCount > 1 {
		f.patterns = make(map[StateID]nfa.PatternID)
	}
	for s, p := range patterns {
		if p == nfa.NoPattern {
			continue
		}
		f.bits.Set(uint(s))
		if f.patterns != nil {
			f.patterns[StateID(s)] = p
		}
	}
	return f
}

func (f *bitsetFinals) IsFinal(s StateID) bool {
	return f.bits.Test(uint(s))
}

func (f *bitsetFinals) Pattern(s StateID) nfa.PatternID {
	if !f.bits.Test(uint(s)) {
		return nfa.NoPattern
	}
	if f.patterns == nil {
		return 0
	}
	return f.patterns[s]
}

func (f *bitsetFinals) Storage() FinalStorage {
	return FinalOutOfBand
}

// Count returns the number of final states.
func (f *bitsetFinals) Count() int {
	return int(f.bits.Count())
}

func (f *bitsetFinals) memoryUsage() int {
	return f.bits.BinaryStorageSize() + len(f.patterns)*8
}
