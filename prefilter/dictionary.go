package prefilter

import (
	"github.com/coregx/ahocorasick"
)

// Dictionary finds candidate starts for a word list with an Aho-Corasick
// automaton.
type Dictionary struct {
	ac     *ahocorasick.Automaton
	maxLen int
	words  int
}

// NewDictionary builds a prefilter for words. It returns nil and no error
// when a word is empty, since the empty word matches at every offset.
func NewDictionary(words [][]byte) (*Dictionary, error) {
	builder := ahocorasick.NewBuilder()
	maxLen := 0
	for _, w := range words {
		if len(w) == 0 {
			return nil, nil
		}
		builder.AddPattern(w)
		maxLen = max(maxLen, len(w))
	}
	ac, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &Dictionary{ac: ac, maxLen: maxLen, words: len(words)}, nil
}

// Find returns a lower bound for the start of the leftmost word occurrence
// at or after start. No occurrence starts more than maxLen bytes before the
// end of the first one found.
func (d *Dictionary) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	m := d.ac.Find(haystack, start)
	if m == nil {
		return -1
	}
	return max(start, m.End-d.maxLen)
}

// IsMatch reports whether any word occurs in haystack.
func (d *Dictionary) IsMatch(haystack []byte) bool {
	return d.ac.IsMatch(haystack)
}

// MaxLen returns the length of the longest word.
func (d *Dictionary) MaxLen() int {
	return d.maxLen
}

// HeapBytes estimates the automaton size from an upper bound on its node
// count.
func (d *Dictionary) HeapBytes() int {
	return d.words * d.maxLen * 16
}
