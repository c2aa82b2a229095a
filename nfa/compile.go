package nfa

import (
	"fmt"
	"regexp/syntax"
	"slices"
	"unicode"
	"unicode/utf8"

	"github.com/coregx/dnfa/internal/conv"
)

// CompilerConfig configures NFA compilation behavior
type CompilerConfig struct {
	// Flags are the regexp/syntax parse flags used by Compile.
	// Default: syntax.Perl
	Flags syntax.Flags

	// MaxRecursionDepth limits recursion during compilation to prevent stack overflow
	// Default: 100
	MaxRecursionDepth int
}

// DefaultCompilerConfig returns a compiler configuration with sensible defaults
func DefaultCompilerConfig() CompilerConfig {
	return CompilerConfig{
		Flags:             syntax.Perl,
		MaxRecursionDepth: 100,
	}
}

// Compiler compiles regexp/syntax trees into byte-level NFAs.
//
// Character classes are expanded into UTF-8 byte sequences, so the NFA
// matches the UTF-8 encoding of the pattern's language. Zero-width
// assertions (^, $, \b, \B, \A, \z) have no byte-level meaning and are
// rejected with ErrUnsupported.
type Compiler struct {
	config  CompilerConfig
	builder *Builder
	depth   int
	// edges records the byte transitions added while expanding one class,
	// keyed by source state, so shared sequence prefixes reuse states.
	edges map[StateID][]classEdge
}

type classEdge struct {
	lo, hi byte
	next   StateID
}

// frag is a compiled sub-automaton with a single entry and a single exit.
// The exit only ever receives epsilon transitions.
type frag struct {
	start, end StateID
}

// NewCompiler creates a new NFA compiler with the given configuration
func NewCompiler(config CompilerConfig) *Compiler {
	if config.MaxRecursionDepth == 0 {
		config.MaxRecursionDepth = 100
	}
	return &Compiler{config: config}
}

// NewDefaultCompiler creates a new NFA compiler with default configuration
func NewDefaultCompiler() *Compiler {
	return NewCompiler(DefaultCompilerConfig())
}

// Compile parses pattern and compiles it into a single-pattern NFA.
func Compile(pattern string) (*NFA, error) {
	return NewDefaultCompiler().Compile(pattern)
}

// Compile parses pattern and compiles it into a single-pattern NFA.
func (c *Compiler) Compile(pattern string) (*NFA, error) {
	re, err := syntax.Parse(pattern, c.config.Flags)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	n, err := c.CompileRegexp(re)
	if err != nil {
		if ce, ok := err.(*CompileError); ok && ce.Pattern == "" {
			ce.Pattern = pattern
		}
		return nil, err
	}
	return n, nil
}

// CompileRegexp compiles a parsed syntax.Regexp; the single pattern has ID 0.
func (c *Compiler) CompileRegexp(re *syntax.Regexp) (*NFA, error) {
	return c.CompileSet([]*syntax.Regexp{re})
}

// CompileSet compiles several patterns into one automaton. Pattern i is
// reported with PatternID i.
func (c *Compiler) CompileSet(res []*syntax.Regexp) (*NFA, error) {
	if len(res) == 0 {
		return nil, &CompileError{Err: fmt.Errorf("%w: no patterns", ErrInvalidAutomaton)}
	}
	c.builder = NewBuilder()
	c.edges = make(map[StateID][]classEdge)
	c.depth = 0

	root := InvalidState
	if len(res) > 1 {
		root = c.builder.AddState()
	}
	for i, re := range res {
		f, err := c.compile(re.Simplify())
		if err != nil {
			return nil, err
		}
		match := c.builder.AddFinal(PatternID(conv.IntToUint32(i)))
		c.epsilon(f.end, match)
		if root == InvalidState {
			root = f.start
		} else {
			c.epsilon(root, f.start)
		}
	}
	c.builder.SetStart(root)

	n, err := c.builder.Build()
	if err != nil {
		return nil, &CompileError{Err: err}
	}
	return n, nil
}

func (c *Compiler) compile(re *syntax.Regexp) (frag, error) {
	c.depth++
	if c.depth > c.config.MaxRecursionDepth {
		return frag{}, &CompileError{Err: ErrTooComplex}
	}
	defer func() { c.depth-- }()

	switch re.Op {
	case syntax.OpNoMatch:
		return frag{start: c.builder.AddState(), end: c.builder.AddState()}, nil
	case syntax.OpEmptyMatch:
		s := c.builder.AddState()
		return frag{start: s, end: s}, nil
	case syntax.OpLiteral:
		return c.compileLiteral(re.Rune, re.Flags&syntax.FoldCase != 0)
	case syntax.OpCharClass:
		return c.compileClass(re.Rune)
	case syntax.OpAnyChar:
		return c.compileClass([]rune{0, utf8.MaxRune})
	case syntax.OpAnyCharNotNL:
		return c.compileClass([]rune{0, '\n' - 1, '\n' + 1, utf8.MaxRune})
	case syntax.OpCapture:
		return c.compile(re.Sub[0])
	case syntax.OpConcat:
		return c.compileConcat(re.Sub)
	case syntax.OpAlternate:
		return c.compileAlternate(re.Sub)
	case syntax.OpStar:
		return c.compileStar(re.Sub[0])
	case syntax.OpPlus:
		return c.compilePlus(re.Sub[0])
	case syntax.OpQuest:
		return c.compileQuest(re.Sub[0])
	case syntax.OpRepeat:
		return c.compileRepeat(re.Sub[0], re.Min, re.Max)
	case syntax.OpBeginLine, syntax.OpEndLine, syntax.OpBeginText, syntax.OpEndText,
		syntax.OpWordBoundary, syntax.OpNoWordBoundary:
		return frag{}, &CompileError{Err: fmt.Errorf("%w: assertion %v", ErrUnsupported, re.Op)}
	default:
		return frag{}, &CompileError{Err: fmt.Errorf("%w: operation %v", ErrUnsupported, re.Op)}
	}
}

func (c *Compiler) epsilon(from, to StateID) {
	// Both states were created by this compiler; the call cannot fail.
	_ = c.builder.AddEpsilon(from, to)
}

func (c *Compiler) compileLiteral(runes []rune, fold bool) (frag, error) {
	if len(runes) == 0 {
		s := c.builder.AddState()
		return frag{start: s, end: s}, nil
	}
	var out frag
	for i, r := range runes {
		ranges := []rune{r, r}
		if fold {
			ranges = foldRanges(r)
		}
		f, err := c.compileClass(ranges)
		if err != nil {
			return frag{}, err
		}
		if i == 0 {
			out = f
			continue
		}
		c.epsilon(out.end, f.start)
		out.end = f.end
	}
	return out, nil
}

// foldRanges returns the simple case folding orbit of r as class ranges.
func foldRanges(r rune) []rune {
	orbit := []rune{r}
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		orbit = append(orbit, f)
	}
	slices.Sort(orbit)
	ranges := make([]rune, 0, 2*len(orbit))
	for _, x := range orbit {
		ranges = append(ranges, x, x)
	}
	return ranges
}

// compileClass expands rune ranges (pairs lo, hi) into a byte-sequence trie
// from a fresh start state to a fresh end state.
func (c *Compiler) compileClass(ranges []rune) (frag, error) {
	start := c.builder.AddState()
	end := c.builder.AddState()
	for i := 0; i+1 < len(ranges); i += 2 {
		for _, seq := range utf8Sequences(ranges[i], ranges[i+1]) {
			if err := c.insertSequence(start, end, seq); err != nil {
				return frag{}, err
			}
		}
	}
	return frag{start: start, end: end}, nil
}

func (c *Compiler) insertSequence(start, end StateID, seq []byteRange) error {
	cur := start
	for i, br := range seq {
		last := i == len(seq)-1
		next := InvalidState
		conflict := false
		for _, e := range c.edges[cur] {
			if e.lo == br.lo && e.hi == br.hi && (e.next == end) == last {
				next = e.next
				break
			}
			if e.lo <= br.hi && br.lo <= e.hi {
				conflict = true
			}
		}
		if next != InvalidState {
			cur = next
			continue
		}
		if conflict {
			// Keep ranges disjoint per state by branching through an epsilon.
			alt := c.builder.AddState()
			c.epsilon(cur, alt)
			cur = alt
		}
		if last {
			next = end
		} else {
			next = c.builder.AddState()
		}
		if err := c.builder.AddTransition(cur, br.lo, br.hi, next); err != nil {
			return err
		}
		c.edges[cur] = append(c.edges[cur], classEdge{lo: br.lo, hi: br.hi, next: next})
		cur = next
	}
	return nil
}

func (c *Compiler) compileConcat(subs []*syntax.Regexp) (frag, error) {
	if len(subs) == 0 {
		s := c.builder.AddState()
		return frag{start: s, end: s}, nil
	}
	var out frag
	for i, sub := range subs {
		f, err := c.compile(sub)
		if err != nil {
			return frag{}, err
		}
		if i == 0 {
			out = f
			continue
		}
		c.epsilon(out.end, f.start)
		out.end = f.end
	}
	return out, nil
}

func (c *Compiler) compileAlternate(subs []*syntax.Regexp) (frag, error) {
	start := c.builder.AddState()
	end := c.builder.AddState()
	for _, sub := range subs {
		f, err := c.compile(sub)
		if err != nil {
			return frag{}, err
		}
		c.epsilon(start, f.start)
		c.epsilon(f.end, end)
	}
	return frag{start: start, end: end}, nil
}

func (c *Compiler) compileStar(sub *syntax.Regexp) (frag, error) {
	f, err := c.compile(sub)
	if err != nil {
		return frag{}, err
	}
	loop := c.builder.AddState()
	c.epsilon(loop, f.start)
	c.epsilon(f.end, loop)
	return frag{start: loop, end: loop}, nil
}

func (c *Compiler) compilePlus(sub *syntax.Regexp) (frag, error) {
	f, err := c.compile(sub)
	if err != nil {
		return frag{}, err
	}
	end := c.builder.AddState()
	c.epsilon(f.end, f.start)
	c.epsilon(f.end, end)
	return frag{start: f.start, end: end}, nil
}

func (c *Compiler) compileQuest(sub *syntax.Regexp) (frag, error) {
	f, err := c.compile(sub)
	if err != nil {
		return frag{}, err
	}
	start := c.builder.AddState()
	end := c.builder.AddState()
	c.epsilon(start, f.start)
	c.epsilon(start, end)
	c.epsilon(f.end, end)
	return frag{start: start, end: end}, nil
}

// compileRepeat expands x{min,max}; max == -1 means unbounded. Simplify
// normally removes OpRepeat before compilation, this covers trees built by
// hand.
func (c *Compiler) compileRepeat(sub *syntax.Regexp, minCount, maxCount int) (frag, error) {
	s := c.builder.AddState()
	out := frag{start: s, end: s}
	appendFrag := func(f frag) {
		c.epsilon(out.end, f.start)
		out.end = f.end
	}
	for i := 0; i < minCount; i++ {
		f, err := c.compile(sub)
		if err != nil {
			return frag{}, err
		}
		appendFrag(f)
	}
	if maxCount == -1 {
		f, err := c.compileStar(sub)
		if err != nil {
			return frag{}, err
		}
		appendFrag(f)
		return out, nil
	}
	for i := minCount; i < maxCount; i++ {
		f, err := c.compileQuest(sub)
		if err != nil {
			return frag{}, err
		}
		appendFrag(f)
	}
	return out, nil
}
