// Package lazy implements a lazy DFA: determinization on demand while
// searching.
//
// Only the start state exists up front. The first time a search steps from a
// state on a byte class, the successor set is computed, cached as a new
// state, and linked in, so later searches take the cached edge. The number
// of retained states is bounded by Config.StateLimit; when a new state would
// exceed it, the least recently used state (never the start state) is
// evicted and its incoming edges are cleared. A pattern whose full subset
// construction is too large for an eager DFA can therefore still be searched
// in bounded memory.
//
// Thread safety: a DFA has a single owner for all mutation. Search methods
// take an internal mutex for the whole search, so concurrent callers on one
// instance wait for each other. Use Clone to give each worker its own
// instance; the underlying NFA is immutable and shared.
package lazy

import (
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/coregx/dnfa/alphabet"
	"github.com/coregx/dnfa/determinize"
	"github.com/coregx/dnfa/dfa"
	"github.com/coregx/dnfa/nfa"
	"github.com/coregx/dnfa/search"
)

// DFA is a lazily determinized automaton.
type DFA struct {
	mu sync.Mutex

	nfa     *nfa.NFA
	config  Config
	det     *determinize.Determinizer
	classes *alphabet.ByteClasses

	start *State
	dead  *State
	cache *cache
}

// Stats reports cache behavior since creation or the last Reset.
type Stats struct {
	Hits      uint64 // transitions answered from a cached edge
	Misses    uint64 // transitions that had to be determinized
	Evictions uint64
	States    int // retained states, start included, dead excluded
}

// New creates a lazy DFA over n.
func New(n *nfa.NFA, config Config) (*DFA, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if n == nil || n.States() == 0 {
		return nil, &dfa.DFAError{
			Kind:    dfa.InvalidAutomaton,
			Message: "lazy DFA needs a non-empty NFA",
			Cause:   nfa.ErrInvalidAutomaton,
		}
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}

	det := determinize.New(n)
	alen := det.ByteClasses().AlphabetLen()
	c, err := newCache(config.StateLimit-1, config.Logger)
	if err != nil {
		return nil, err
	}

	set := det.Start()
	d := &DFA{
		nfa:     n,
		config:  config,
		det:     det,
		classes: det.ByteClasses(),
		start:   newState(set, set.Key(), det.Pattern(set), alen),
		dead:    newState(nil, "", nfa.NoPattern, alen),
		cache:   c,
	}
	for i := range d.dead.next {
		d.dead.next[i] = d.dead
	}
	return d, nil
}

// Clone returns a fresh lazy DFA over the same NFA and configuration. The
// clone shares no mutable state with d.
func (d *DFA) Clone() *DFA {
	// The configuration was validated when d was created.
	c, _ := New(d.nfa, d.config)
	return c
}

// NFA returns the source automaton.
func (d *DFA) NFA() *nfa.NFA {
	return d.nfa
}

// Config returns the configuration d was created with.
func (d *DFA) Config() Config {
	return d.config
}

// Find reports the leftmost match at or after at.
func (d *DFA) Find(haystack []byte, at int, mode search.Mode) (search.Match, bool) {
	return d.FindFrom(haystack, at, mode, nil)
}

// FindFrom is Find restricted to the start offsets reported by c.
func (d *DFA) FindFrom(haystack []byte, at int, mode search.Mode, c search.Candidates) (search.Match, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return search.FindFrom((*stepper)(d), haystack, at, mode, c)
}

// Anchored reports a match starting exactly at at.
func (d *DFA) Anchored(haystack []byte, at int, mode search.Mode) (search.Match, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return search.Anchored((*stepper)(d), haystack, at, mode)
}

// IsMatch reports whether any match exists at or after at.
func (d *DFA) IsMatch(haystack []byte, at int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return search.IsMatch((*stepper)(d), haystack, at)
}

// FindAll returns every match that search.All would yield.
func (d *DFA) FindAll(haystack []byte, mode search.Mode) []search.Match {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Collect(search.All((*stepper)(d), haystack, mode))
}

// Overlapping returns every (start, end) pair at which a final state is
// reached.
func (d *DFA) Overlapping(haystack []byte, at int) []search.Match {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []search.Match
	search.OverlappingMatches((*stepper)(d), haystack, at, func(m search.Match) bool {
		out = append(out, m)
		return true
	})
	return out
}

// Len returns the number of retained states, start included, dead excluded.
func (d *DFA) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cache.len() + 1
}

// Stats returns cache statistics.
func (d *DFA) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Stats{
		Hits:      d.cache.hits,
		Misses:    d.cache.misses,
		Evictions: d.cache.evictions,
		States:    d.cache.len() + 1,
	}
}

// Reset drops every cached state and transition and zeroes the statistics.
func (d *DFA) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cache.purge()
	clear(d.start.next)
	d.start.incoming = nil
	d.cache.hits, d.cache.misses, d.cache.evictions = 0, 0, 0
}

// Retained returns the NFA sets of the cached states other than start, from
// least to most recently used.
func (d *DFA) Retained() []determinize.Set {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cache.sets()
}

// stepper exposes the stepping operations to package search. Its methods
// assume d.mu is held.
type stepper DFA

func (s *stepper) Start() *State {
	return s.start
}

func (s *stepper) Next(from *State, b byte) *State {
	d := (*DFA)(s)
	class := int(d.classes.Get(b))
	if to := from.next[class]; to != nil {
		d.cache.hits++
		return to
	}
	d.cache.misses++
	return d.materialize(from, class)
}

func (s *stepper) IsDead(st *State) bool {
	return st == s.dead
}

func (s *stepper) Pattern(st *State) nfa.PatternID {
	return st.pattern
}

// materialize computes and links the successor of from on class.
func (d *DFA) materialize(from *State, class int) *State {
	set := d.det.NextClass(from.set, class)
	if len(set) == 0 {
		from.next[class] = d.dead
		return d.dead
	}

	key := set.Key()
	to := d.start
	if key != d.start.key {
		var ok bool
		if to, ok = d.cache.get(key); !ok {
			// from must survive the eviction that adding may cause.
			if from != d.start {
				d.cache.touch(from)
			}
			to = newState(set, key, d.det.Pattern(set), len(from.next))
			d.cache.add(to)
		}
		to.incoming = append(to.incoming, edge{from: from, class: class})
	}
	from.next[class] = to
	return to
}
