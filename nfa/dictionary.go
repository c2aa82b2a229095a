package nfa

import (
	"github.com/coregx/dnfa/internal/conv"
)

// FromDictionary builds a trie-shaped automaton accepting exactly the given
// words. Word i is reported as PatternID i; when a word appears more than
// once the lowest index is kept. An empty word makes the start state final.
//
// The result has no epsilon transitions and is already deterministic, which
// makes it cheap to determinize regardless of the number of words.
func FromDictionary(words [][]byte) (*NFA, error) {
	b := NewBuilderWithCapacity(len(words) * 4)
	root := b.AddState()
	b.SetStart(root)

	children := make(map[uint64]StateID)
	for i, word := range words {
		cur := root
		for _, c := range word {
			key := uint64(cur)<<8 | uint64(c)
			next, ok := children[key]
			if !ok {
				next = b.AddState()
				children[key] = next
				if err := b.AddByte(cur, c, next); err != nil {
					return nil, err
				}
			}
			cur = next
		}
		if b.states[cur].pattern == NoPattern {
			b.states[cur].pattern = PatternID(conv.IntToUint32(i))
		}
	}
	return b.Build()
}

// FromStrings is FromDictionary for string words.
func FromStrings(words []string) (*NFA, error) {
	bs := make([][]byte, len(words))
	for i, w := range words {
		bs[i] = []byte(w)
	}
	return FromDictionary(bs)
}
