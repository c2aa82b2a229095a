// Package prefilter finds candidate match starts before an automaton runs.
//
// A search tries every start offset in turn. When every match must begin
// with a known literal, or with one of a few bytes, a prefilter jumps
// straight to the next offset where that is possible:
//   - Literal prefix of two or more bytes: substring search
//   - One to three possible first bytes: memchr
//   - Dictionary of words: Aho-Corasick
//
// Prefilters only skip offsets that cannot start a match. The automaton
// still decides every match, so a prefilter never changes results.
//
// Example usage:
//
//	n, _ := nfa.Compile("hello|help")
//	pf := prefilter.Select(n) // literal prefix "hel"
//	pos := pf.Find([]byte("say hello"), 0)
//	// pos == 4
package prefilter

import (
	"bytes"

	"github.com/coregx/dnfa/determinize"
	"github.com/coregx/dnfa/nfa"
	"github.com/coregx/dnfa/simd"
)

// Prefilter reports candidate match starts. It satisfies search.Candidates.
type Prefilter interface {
	// Find returns the first offset at or after start where a match may
	// begin, or -1 if no match can begin at or after start.
	Find(haystack []byte, start int) int

	// HeapBytes returns the memory held by the prefilter.
	HeapBytes() int
}

// maxPrefixLen bounds the literal prefix walked by Select.
const maxPrefixLen = 64

// Select inspects the start of n's language and returns the best prefilter
// for it, or nil when every byte could begin a match or the empty string
// matches.
func Select(n *nfa.NFA) Prefilter {
	d := determinize.New(n)
	start := d.Start()
	if d.Pattern(start) != nfa.NoPattern {
		return nil
	}

	var prefix []byte
	set := start
	for len(prefix) < maxPrefixLen && d.Pattern(set) == nfa.NoPattern {
		b, next, ok := onlyByte(d, set)
		if !ok {
			break
		}
		prefix = append(prefix, b)
		set = next
	}
	if len(prefix) >= 2 {
		return newMemmemPrefilter(prefix)
	}

	first := firstBytes(d, start)
	if len(first) >= 1 && len(first) <= 3 {
		return newMemchrPrefilter(first)
	}
	return nil
}

// onlyByte reports the single byte leaving set for a live state, if exactly
// one exists.
func onlyByte(d *determinize.Determinizer, set determinize.Set) (byte, determinize.Set, bool) {
	var (
		only  byte
		next  determinize.Set
		count int
	)
	classes := d.ByteClasses()
	for c, rep := range d.Representatives() {
		t := d.NextClass(set, c)
		if len(t) == 0 {
			continue
		}
		elems := classes.Elements(byte(c))
		count += len(elems)
		if count > 1 {
			return 0, nil, false
		}
		only, next = rep, t
	}
	return only, next, count == 1
}

// firstBytes returns every byte leading from start to a live state, or nil
// once there are more than three.
func firstBytes(d *determinize.Determinizer, start determinize.Set) []byte {
	var out []byte
	classes := d.ByteClasses()
	for c := range d.Representatives() {
		if len(d.NextClass(start, c)) == 0 {
			continue
		}
		out = append(out, classes.Elements(byte(c))...)
		if len(out) > 3 {
			return nil
		}
	}
	return out
}

// memchrPrefilter finds the next occurrence of one of up to three bytes.
type memchrPrefilter struct {
	needles []byte
}

func newMemchrPrefilter(needles []byte) Prefilter {
	return &memchrPrefilter{needles: bytes.Clone(needles)}
}

func (p *memchrPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := simd.IndexAny(haystack[start:], p.needles)
	if idx == -1 {
		return -1
	}
	return start + idx
}

func (p *memchrPrefilter) HeapBytes() int {
	return cap(p.needles)
}

// memmemPrefilter finds the next occurrence of a literal prefix.
type memmemPrefilter struct {
	needle []byte
}

func newMemmemPrefilter(needle []byte) Prefilter {
	return &memmemPrefilter{needle: bytes.Clone(needle)}
}

func (p *memmemPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := bytes.Index(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

func (p *memmemPrefilter) HeapBytes() int {
	return cap(p.needle)
}
