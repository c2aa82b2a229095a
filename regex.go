// Package dnfa compiles regular expressions into deterministic byte automata
// and searches with them.
//
// A pattern is parsed by regexp/syntax, compiled to a byte-level NFA, and
// determinized either eagerly (the whole DFA at compile time) or lazily
// (states built during search, bounded by an LRU cache). Eager automatons can
// be laid out densely or sparsely, with final-state information inline or
// out of band, and can be converted to a direct representation whose
// transitions are pointers.
//
// Basic usage:
//
//	re, err := dnfa.Compile(`ab+`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	m, ok := re.Find([]byte("xabbby"))
//	// ok == true, m.Start == 1, m.End == 5
//
// Matches are leftmost-longest by default. Patterns have no implicit
// anchors but zero-width assertions (^, $, \b) are rejected, and there are
// no capture groups: a Match carries only its bounds and pattern ID.
//
// A Regex is safe for concurrent use by multiple goroutines.
package dnfa

import (
	"fmt"
	"io"
	"iter"
	"regexp/syntax"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sys/cpu"

	"github.com/coregx/dnfa/ddfa"
	"github.com/coregx/dnfa/dfa"
	"github.com/coregx/dnfa/dfa/lazy"
	"github.com/coregx/dnfa/nfa"
	"github.com/coregx/dnfa/prefilter"
	"github.com/coregx/dnfa/search"
)

// Regex is a compiled set of one or more patterns.
type Regex struct {
	counters counters

	pattern string
	config  Config
	nfa     *nfa.NFA

	eager  *dfa.DFA
	direct *ddfa.DDFA

	// lazyPool holds *lazy.DFA clones so concurrent searches never share a
	// cache. lazyProto is the instance clones are made from.
	lazyPool  sync.Pool
	lazyProto *lazy.DFA

	// probePool holds lazy automatons for the unanchored, suffix-accepting
	// variant of the NFA, used by IsMatch to answer in one pass.
	probePool  sync.Pool
	probeProto *lazy.DFA

	// prefilter skips start offsets that cannot begin a match.
	prefilter prefilter.Prefilter

	// dict is set for word lists. Its language equals the NFA's, so it
	// answers IsMatch alone.
	dict *prefilter.Dictionary
}

// counters are shared by every goroutine searching with a Regex, so each
// sits on its own cache line.
type counters struct {
	searches atomic.Uint64
	_        cpu.CacheLinePad
	matches  atomic.Uint64
	_        cpu.CacheLinePad
	rejects  atomic.Uint64
}

// Stats reports search counters and automaton size.
type Stats struct {
	// Searches counts calls to Find, FindAt, IsMatch and iterator steps.
	Searches uint64

	// Matches counts searches that found a match.
	Matches uint64

	// PrefilterRejects counts searches the prefilter answered without
	// running the DFA.
	PrefilterRejects uint64

	// States is the number of DFA states including the dead state. For lazy
	// determinization it counts the states retained by the first instance,
	// which serves searches until the pool releases it; clones made later
	// are not included.
	States int

	// MemoryUsage approximates the heap bytes of the automaton tables.
	MemoryUsage int

	// PrefilterBytes is the memory held by the prefilter, 0 without one.
	PrefilterBytes int
}

// Compile parses pattern with Perl syntax and compiles it.
//
// Example:
//
//	re, err := dnfa.Compile(`[a-z]+@[a-z]+\.com`, dnfa.WithRepresentation(dnfa.Direct))
func Compile(pattern string, opts ...Option) (*Regex, error) {
	n, err := nfa.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return compile(pattern, n, newConfig(opts))
}

// MustCompile is like Compile but panics on error.
func MustCompile(pattern string, opts ...Option) *Regex {
	re, err := Compile(pattern, opts...)
	if err != nil {
		panic("dnfa: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// CompileSyntax compiles an already parsed pattern.
func CompileSyntax(re *syntax.Regexp, opts ...Option) (*Regex, error) {
	n, err := nfa.NewDefaultCompiler().CompileRegexp(re)
	if err != nil {
		return nil, err
	}
	return compile(re.String(), n, newConfig(opts))
}

// CompileNFA determinizes an NFA built directly, for example with
// nfa.Builder.
func CompileNFA(n *nfa.NFA, config Config) (*Regex, error) {
	return compile("", n, config)
}

// CompileSet compiles several patterns into one automaton. A match of
// patterns[i] reports Pattern i; when two patterns match the same span the
// lower index wins.
func CompileSet(patterns []string, opts ...Option) (*Regex, error) {
	res := make([]*syntax.Regexp, len(patterns))
	for i, p := range patterns {
		re, err := syntax.Parse(p, syntax.Perl)
		if err != nil {
			return nil, &nfa.CompileError{Pattern: p, Err: err}
		}
		res[i] = re
	}
	n, err := nfa.NewDefaultCompiler().CompileSet(res)
	if err != nil {
		return nil, err
	}
	return compile(fmt.Sprintf("%q", patterns), n, newConfig(opts))
}

// CompileDictionary compiles a literal word list. A match of words[i]
// reports Pattern i. Searches first run an Aho-Corasick scan so haystacks
// without any word are rejected without stepping the DFA.
func CompileDictionary(words []string, opts ...Option) (*Regex, error) {
	n, err := nfa.FromStrings(words)
	if err != nil {
		return nil, err
	}
	re, err := compile(fmt.Sprintf("%q", words), n, newConfig(opts))
	if err != nil {
		return nil, err
	}

	bs := make([][]byte, len(words))
	for i, w := range words {
		bs[i] = []byte(w)
	}
	dict, err := prefilter.NewDictionary(bs)
	if err != nil {
		re.config.logger().Warn("dictionary prefilter disabled", zap.Error(err))
		return re, nil
	}
	if dict != nil {
		re.prefilter, re.dict = dict, dict
		re.config.logger().Debug("dictionary prefilter",
			zap.Int("words", len(words)),
			zap.Int("max_len", dict.MaxLen()))
	}
	return re, nil
}

func compile(pattern string, n *nfa.NFA, config Config) (*Regex, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if n == nil {
		return nil, &dfa.DFAError{
			Kind:    dfa.InvalidAutomaton,
			Message: "nil NFA",
			Cause:   nfa.ErrInvalidAutomaton,
		}
	}
	log := config.logger()
	r := &Regex{pattern: pattern, config: config, nfa: n}

	switch config.Determinization {
	case Lazy:
		proto, err := lazy.New(n, config.lazyConfig())
		if err != nil {
			return nil, err
		}
		r.lazyProto = proto
		r.lazyPool.New = func() any { return proto.Clone() }
		r.lazyPool.Put(proto)
	default:
		d, err := dfa.Build(n, config.dfaConfig())
		if err != nil {
			return nil, fmt.Errorf("compile %q: %w", pattern, err)
		}
		if config.Minimize {
			if d, err = dfa.Minimize(d); err != nil {
				return nil, err
			}
		}
		r.eager = d
		if config.Representation == Direct {
			if r.direct, err = ddfa.New(d); err != nil {
				return nil, err
			}
		}
	}

	if err := r.initProbe(); err != nil {
		return nil, err
	}
	if pf := prefilter.Select(n); pf != nil {
		r.prefilter = pf
	}

	log.Debug("compiled",
		zap.String("pattern", pattern),
		zap.Int("nfa_states", n.States()),
		zap.Int("patterns", n.PatternCount()),
		zap.Stringer("determinization", config.Determinization),
		zap.Stringer("representation", config.Representation),
		zap.Stringer("mode", config.SearchMode))
	return r, nil
}

// initProbe prepares the automaton behind IsMatch. It accepts every
// haystack that contains a match, so reaching any final state answers the
// question without trying each start offset.
func (r *Regex) initProbe() error {
	suffixes, err := nfa.AcceptSuffixes(r.nfa)
	if err != nil {
		return err
	}
	probe, err := nfa.Unanchored(suffixes)
	if err != nil {
		return err
	}
	lc := r.config.lazyConfig()
	lc.StateLimit = max(lc.StateLimit, 3)
	proto, err := lazy.New(probe, lc)
	if err != nil {
		return err
	}
	r.probeProto = proto
	r.probePool.New = func() any { return proto.Clone() }
	r.probePool.Put(proto)
	return nil
}

// find runs one leftmost search from at with the given mode.
func (r *Regex) find(haystack []byte, at int, mode SearchMode) (Match, bool) {
	r.counters.searches.Add(1)
	var cands search.Candidates
	if r.prefilter != nil {
		if r.prefilter.Find(haystack, max(at, 0)) < 0 {
			r.counters.rejects.Add(1)
			return Match{}, false
		}
		cands = r.prefilter
	}

	var (
		m  Match
		ok bool
	)
	switch {
	case r.direct != nil:
		m, ok = search.FindFrom(r.direct, haystack, at, mode, cands)
	case r.eager != nil:
		m, ok = search.FindFrom(r.eager, haystack, at, mode, cands)
	default:
		l := r.lazyPool.Get().(*lazy.DFA)
		m, ok = l.FindFrom(haystack, at, mode, cands)
		r.lazyPool.Put(l)
	}
	if ok {
		r.counters.matches.Add(1)
	}
	return m, ok
}

// Find returns the leftmost match in haystack, its end chosen by the
// configured search mode.
//
// Example:
//
//	re := dnfa.MustCompile(`ab+`)
//	m, ok := re.Find([]byte("xabbby")) // [1,5), true
func (r *Regex) Find(haystack []byte) (Match, bool) {
	return r.find(haystack, 0, r.config.SearchMode)
}

// FindAt is like Find but ignores matches starting before at.
func (r *Regex) FindAt(haystack []byte, at int) (Match, bool) {
	return r.find(haystack, at, r.config.SearchMode)
}

// FindString is like Find for a string haystack.
func (r *Regex) FindString(s string) (Match, bool) {
	return r.Find([]byte(s))
}

// IsMatch reports whether haystack contains any match. It scans the input at
// most once.
func (r *Regex) IsMatch(haystack []byte) bool {
	r.counters.searches.Add(1)
	if r.dict != nil {
		if !r.dict.IsMatch(haystack) {
			r.counters.rejects.Add(1)
			return false
		}
		r.counters.matches.Add(1)
		return true
	}
	if r.prefilter != nil && r.prefilter.Find(haystack, 0) < 0 {
		r.counters.rejects.Add(1)
		return false
	}
	p := r.probePool.Get().(*lazy.DFA)
	_, ok := p.Anchored(haystack, 0, search.First)
	r.probePool.Put(p)
	if ok {
		r.counters.matches.Add(1)
	}
	return ok
}

// MatchString is like IsMatch for a string haystack.
func (r *Regex) MatchString(s string) bool {
	return r.IsMatch([]byte(s))
}

// All iterates over successive matches. In Overlapping mode every match is
// yielded; otherwise matches do not overlap and an empty match directly after
// a previous match is skipped.
func (r *Regex) All(haystack []byte) iter.Seq[Match] {
	if r.config.SearchMode == Overlapping {
		return r.Overlapping(haystack)
	}
	return search.Iterate(len(haystack), func(at int) (Match, bool) {
		return r.find(haystack, at, r.config.SearchMode)
	})
}

// FindAll returns up to n matches as yielded by All. If n < 0 all matches
// are returned.
func (r *Regex) FindAll(haystack []byte, n int) []Match {
	if n == 0 {
		return nil
	}
	var out []Match
	for m := range r.All(haystack) {
		out = append(out, m)
		if len(out) == n {
			break
		}
	}
	return out
}

// Overlapping iterates over every (start, end) pair at which a pattern
// matches, ordered by start and then end, regardless of the search mode.
func (r *Regex) Overlapping(haystack []byte) iter.Seq[Match] {
	return func(yield func(Match) bool) {
		r.counters.searches.Add(1)
		if r.prefilter != nil && r.prefilter.Find(haystack, 0) < 0 {
			r.counters.rejects.Add(1)
			return
		}
		switch {
		case r.direct != nil:
			search.OverlappingMatches(r.direct, haystack, 0, yield)
		case r.eager != nil:
			search.OverlappingMatches(r.eager, haystack, 0, yield)
		default:
			l := r.lazyPool.Get().(*lazy.DFA)
			matches := l.Overlapping(haystack, 0)
			r.lazyPool.Put(l)
			for _, m := range matches {
				if !yield(m) {
					return
				}
			}
		}
	}
}

// NumPatterns returns the number of patterns compiled into r.
func (r *Regex) NumPatterns() int {
	return r.nfa.PatternCount()
}

// NFA returns the automaton r was determinized from.
func (r *Regex) NFA() *nfa.NFA {
	return r.nfa
}

// DFA returns the eager DFA, or nil under lazy determinization.
func (r *Regex) DFA() *dfa.DFA {
	return r.eager
}

// Config returns the configuration r was compiled with.
func (r *Regex) Config() Config {
	return r.config
}

// Stats returns search counters and automaton size.
func (r *Regex) Stats() Stats {
	st := Stats{
		Searches:         r.counters.searches.Load(),
		Matches:          r.counters.matches.Load(),
		PrefilterRejects: r.counters.rejects.Load(),
	}
	if r.prefilter != nil {
		st.PrefilterBytes = r.prefilter.HeapBytes()
	}
	switch {
	case r.direct != nil:
		st.States, st.MemoryUsage = r.direct.Len(), r.direct.MemoryUsage()
	case r.eager != nil:
		st.States, st.MemoryUsage = r.eager.Len(), r.eager.MemoryUsage()
	default:
		st.States = r.lazyProto.Len() + 1
	}
	return st
}

// WriteDot writes the eager DFA as a Graphviz digraph, or the NFA when
// determinization is lazy.
func (r *Regex) WriteDot(w io.Writer) error {
	if r.eager != nil {
		return dfa.WriteDot(w, r.eager, "dfa")
	}
	return nfa.WriteDot(w, r.nfa, "nfa")
}

// String returns the source pattern.
func (r *Regex) String() string {
	return r.pattern
}
