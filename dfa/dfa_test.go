package dfa

import (
	"bytes"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/coregx/dnfa/determinize"
	"github.com/coregx/dnfa/nfa"
)

// layouts enumerates every transition/final storage combination.
func layouts() map[string]Config {
	out := make(map[string]Config)
	for _, tr := range []TransitionStorage{TransitionAuto, TransitionDense, TransitionSparse} {
		for _, fs := range []FinalStorage{FinalInline, FinalOutOfBand} {
			out[tr.String()+"/"+fs.String()] = DefaultConfig().WithTransitions(tr).WithFinals(fs)
		}
	}
	return out
}

// assertMatchesSimulation walks every input through d and the reference
// simulation of n and requires identical deadness and acceptance at each
// position.
func assertMatchesSimulation(t *testing.T, n *nfa.NFA, d *DFA, inputs []string) {
	t.Helper()
	sim := determinize.NewSimulation(n)
	for _, in := range inputs {
		s, ref := d.Start(), sim.Start()
		for i := 0; i <= len(in); i++ {
			require.Equal(t, sim.IsDead(ref), d.IsDead(s), "%q at %d: dead", in, i)
			require.Equal(t, sim.Pattern(ref), d.Pattern(s), "%q at %d: pattern", in, i)
			require.Equal(t, sim.Pattern(ref) != nfa.NoPattern, d.IsFinal(s), "%q at %d: final", in, i)
			if i < len(in) {
				s, ref = d.Next(s, in[i]), sim.Next(ref, in[i])
			}
		}
	}
}

func TestBuildMatchesSimulation(t *testing.T) {
	patterns := []string{
		"ab+",
		"[a-c]x|b",
		"(foo|bar)*baz",
		"a.c",
		"(?i)hello",
		"[α-ω]+",
		"x{2,4}",
	}
	inputs := []string{
		"", "a", "ab", "abbb", "abx", "bx", "b", "foobarbaz", "baz", "foobaz!",
		"abc", "a\nc", "aéc", "HeLLo", "hello", "αβγ", "xx", "xxxx", "xxxxx",
		"\xff\x00", "a\xc3",
	}
	for _, p := range patterns {
		n, err := nfa.Compile(p)
		require.NoError(t, err, p)
		for name, cfg := range layouts() {
			t.Run(p+"/"+name, func(t *testing.T) {
				d, err := Build(n, cfg)
				require.NoError(t, err)
				assertMatchesSimulation(t, n, d, inputs)
			})
		}
	}
}

func TestDeadStateAbsorbs(t *testing.T) {
	n, err := nfa.Compile("abc")
	require.NoError(t, err)
	for name, cfg := range layouts() {
		t.Run(name, func(t *testing.T) {
			d, err := Build(n, cfg)
			require.NoError(t, err)
			assert.Equal(t, StartState, d.Start())
			assert.True(t, d.IsDead(DeadState))
			assert.False(t, d.IsFinal(DeadState))
			assert.Equal(t, nfa.NoPattern, d.Pattern(DeadState))
			for b := 0; b < 256; b++ {
				assert.Equal(t, DeadState, d.Next(DeadState, byte(b)))
			}
		})
	}
}

func TestStateLimit(t *testing.T) {
	n, err := nfa.Compile("abcdefghijk")
	require.NoError(t, err)

	_, err = Build(n, DefaultConfig().WithStateLimit(10))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStateLimitExceeded))
	assert.Contains(t, err.Error(), "10")

	_, err = Build(n, DefaultConfig().WithStateLimit(11))
	assert.ErrorIs(t, err, ErrStateLimitExceeded)

	d, err := Build(n, DefaultConfig().WithStateLimit(12))
	require.NoError(t, err)
	assert.Equal(t, 13, d.Len(), "start, eleven letters and dead")
}

func TestBuildErrors(t *testing.T) {
	_, err := Build(nil, DefaultConfig())
	assert.ErrorIs(t, err, ErrInvalidAutomaton)
	assert.ErrorIs(t, err, nfa.ErrInvalidAutomaton)

	n, err := nfa.Compile("a")
	require.NoError(t, err)
	_, err = Build(n, DefaultConfig().WithStateLimit(0))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	cfg := DefaultConfig()
	cfg.Transitions = TransitionStorage(9)
	_, err = Build(n, cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLowestPatternWins(t *testing.T) {
	b := nfa.NewBuilder()
	s0, s1, s2 := b.AddState(), b.AddState(), b.AddState()
	f3 := b.AddFinal(3)
	f1 := b.AddFinal(1)
	require.NoError(t, b.AddEpsilon(s0, s1))
	require.NoError(t, b.AddEpsilon(s0, s2))
	require.NoError(t, b.AddByte(s1, 'a', f3))
	require.NoError(t, b.AddByte(s2, 'a', f1))
	b.SetStart(s0)
	n, err := b.Build()
	require.NoError(t, err)

	for name, cfg := range layouts() {
		t.Run(name, func(t *testing.T) {
			d, err := Build(n, cfg)
			require.NoError(t, err)
			s := d.Next(d.Start(), 'a')
			assert.True(t, d.IsFinal(s))
			assert.Equal(t, nfa.PatternID(1), d.Pattern(s))
			assert.Equal(t, 4, d.PatternCount())
		})
	}
}

func TestAutoLayout(t *testing.T) {
	n, err := nfa.Compile("abc")
	require.NoError(t, err)

	d, err := Build(n, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, TransitionSparse, d.Transitions().Layout())

	cfg := DefaultConfig()
	cfg.SparseDensityThreshold = 0
	d, err = Build(n, cfg)
	require.NoError(t, err)
	assert.Equal(t, TransitionDense, d.Transitions().Layout())

	d, err = Build(n, DefaultConfig().WithFinals(FinalOutOfBand))
	require.NoError(t, err)
	assert.Equal(t, FinalOutOfBand, d.Finals().Storage())
	assert.Equal(t, 1, d.Finals().(*bitsetFinals).Count())
	assert.Positive(t, d.MemoryUsage())
}

// loopUntilX accepts 'a', then anything but 'x', then 'x'.
func loopUntilX(t *testing.T) *nfa.NFA {
	t.Helper()
	b := nfa.NewBuilder()
	s0, s1 := b.AddState(), b.AddState()
	s2 := b.AddFinal(0)
	require.NoError(t, b.AddByte(s0, 'a', s1))
	require.NoError(t, b.AddTransition(s1, 0x00, 'x'-1, s1))
	require.NoError(t, b.AddTransition(s1, 'x'+1, 0xFF, s1))
	require.NoError(t, b.AddByte(s1, 'x', s2))
	b.SetStart(s0)
	n, err := b.Build()
	require.NoError(t, err)
	return n
}

func TestAccelerators(t *testing.T) {
	n := loopUntilX(t)

	d, err := Build(n, DefaultConfig())
	require.NoError(t, err)
	loop := d.Next(d.Start(), 'a')
	assert.Equal(t, []byte{'x'}, d.Accel(loop))
	assert.Nil(t, d.Accel(d.Start()), "start does not loop")
	assert.Nil(t, d.Accel(d.Next(loop, 'x')), "final state does not loop")

	d, err = Build(n, DefaultConfig().WithAccelerate(false))
	require.NoError(t, err)
	assert.Nil(t, d.Accel(loop))
}

func TestMinimize(t *testing.T) {
	build := func(p1 nfa.PatternID) *nfa.NFA {
		b := nfa.NewBuilder()
		s0, s1, s2 := b.AddState(), b.AddState(), b.AddState()
		s3, s4 := b.AddFinal(0), b.AddFinal(p1)
		require.NoError(t, b.AddByte(s0, 'a', s1))
		require.NoError(t, b.AddByte(s0, 'c', s2))
		require.NoError(t, b.AddByte(s1, 'b', s3))
		require.NoError(t, b.AddByte(s2, 'b', s4))
		b.SetStart(s0)
		n, err := b.Build()
		require.NoError(t, err)
		return n
	}
	inputs := []string{"ab", "cb", "a", "c", "abb", "b", ""}

	n := build(0)
	for name, cfg := range layouts() {
		t.Run(name, func(t *testing.T) {
			d, err := Build(n, cfg)
			require.NoError(t, err)
			assert.Equal(t, 6, d.Len())

			m, err := Minimize(d)
			require.NoError(t, err)
			assert.Equal(t, 4, m.Len())
			if cfg.Transitions != TransitionAuto {
				assert.Equal(t, cfg.Transitions, m.Transitions().Layout())
			}
			assert.Equal(t, cfg.Finals, m.Finals().Storage())
			assertMatchesSimulation(t, n, m, inputs)
		})
	}

	// Different patterns keep their final states apart.
	n = build(1)
	d, err := Build(n, DefaultConfig())
	require.NoError(t, err)
	m, err := Minimize(d)
	require.NoError(t, err)
	assert.Equal(t, 6, m.Len())
	assert.Equal(t, nfa.PatternID(0), m.Pattern(m.Next(m.Next(StartState, 'a'), 'b')))
	assert.Equal(t, nfa.PatternID(1), m.Pattern(m.Next(m.Next(StartState, 'c'), 'b')))
	assertMatchesSimulation(t, n, m, inputs)
}

func TestMinimizeStartEquivalentToDead(t *testing.T) {
	b := nfa.NewBuilder()
	b.SetStart(b.AddState())
	n, err := b.Build()
	require.NoError(t, err)

	d, err := Build(n, DefaultConfig())
	require.NoError(t, err)
	m, err := Minimize(d)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Len())
	for b := 0; b < 256; b++ {
		assert.Equal(t, DeadState, m.Next(StartState, byte(b)))
	}
	assert.False(t, m.IsFinal(StartState))

	_, err = Minimize(nil)
	assert.ErrorIs(t, err, ErrInvalidAutomaton)
}

func TestBuildLogs(t *testing.T) {
	n, err := nfa.Compile("a+b")
	require.NoError(t, err)
	_, err = Build(n, DefaultConfig().WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
}

func TestWriteDot(t *testing.T) {
	n, err := nfa.Compile("a[bc]")
	require.NoError(t, err)
	d, err := Build(n, DefaultConfig())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteDot(&buf, d, "g"))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "digraph g {\n  1[shape=box];\n"))
	assert.Contains(t, out, `1 -> 2[label="a"];`)
	assert.Contains(t, out, `2 -> 3[label="[b-c]"];`)
	assert.Contains(t, out, `3[style=filled,color=green,xlabel="p0"];`)
	assert.NotContains(t, out, "-> 0")
	assert.True(t, strings.HasSuffix(out, "}\n"))
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "StateLimitExceeded", StateLimitExceeded.String())
	assert.Equal(t, "InvalidAutomaton", InvalidAutomaton.String())
	assert.Equal(t, "InvalidConfig", InvalidConfig.String())
	assert.Equal(t, "ErrorKind(9)", ErrorKind(9).String())

	err := &DFAError{Kind: InvalidAutomaton, Message: "bad", Cause: nfa.ErrInvalidAutomaton}
	assert.Equal(t, "bad: "+nfa.ErrInvalidAutomaton.Error(), err.Error())
	assert.False(t, errors.Is(err, ErrStateLimitExceeded))
}

// FuzzBuild checks every layout and the minimized DFA against the
// simulation of the same NFA.
//
//	go test -fuzz=FuzzBuild -fuzztime=30s ./dfa
func FuzzBuild(f *testing.F) {
	f.Add("ab+", "xabbby")
	f.Add("(a|b)*abb", "babb")
	f.Add("[α-ω]+x?", "αβx\xff")
	f.Add("(?i)k{2,3}", "kK\xe2\x84\xaa")

	f.Fuzz(func(t *testing.T, pattern, input string) {
		n, err := nfa.Compile(pattern)
		if err != nil {
			t.Skip()
		}
		for _, cfg := range layouts() {
			d, err := Build(n, cfg.WithStateLimit(500))
			if err != nil {
				t.Skip()
			}
			assertMatchesSimulation(t, n, d, []string{input})

			// Minimization may merge live states that can never accept into
			// the dead state, so only acceptance is compared.
			m, err := Minimize(d)
			require.NoError(t, err)
			s, ref := m.Start(), d.Start()
			for i := 0; i <= len(input); i++ {
				require.Equal(t, d.Pattern(ref), m.Pattern(s), "%q at %d", input, i)
				if i < len(input) {
					s, ref = m.Next(s, input[i]), d.Next(ref, input[i])
				}
			}
		}
	})
}

// toNFA rebuilds d as an epsilon-free NFA with one state per DFA state.
func toNFA(t *testing.T, d *DFA) *nfa.NFA {
	t.Helper()
	b := nfa.NewBuilder()
	for s := 0; s < d.Len(); s++ {
		if p := d.Pattern(StateID(s)); p != nfa.NoPattern {
			b.AddFinal(p)
		} else {
			b.AddState()
		}
	}
	for s := 0; s < d.Len(); s++ {
		lo := 0
		for c := 0; c < 256; c++ {
			to := d.Next(StateID(s), byte(c))
			if c < 255 && d.Next(StateID(s), byte(c+1)) == to {
				continue
			}
			if to != DeadState {
				require.NoError(t, b.AddTransition(nfa.StateID(s), byte(lo), byte(c), nfa.StateID(to)))
			}
			lo = c + 1
		}
	}
	b.SetStart(nfa.StateID(StartState))
	n, err := b.Build()
	require.NoError(t, err)
	return n
}

func TestRedeterminizeKeepsLanguage(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	inputs := make([]string, 200)
	for i := range inputs {
		buf := make([]byte, rng.IntN(12))
		for j := range buf {
			buf[j] = "abcxy\xce"[rng.IntN(6)]
		}
		inputs[i] = string(buf)
	}

	for _, p := range []string{"ab+", "(a|b)*abb", "[a-c]x|b", "x{2,4}y?", "(?i)ab|c"} {
		t.Run(p, func(t *testing.T) {
			n, err := nfa.Compile(p)
			require.NoError(t, err)
			d, err := Build(n, DefaultConfig())
			require.NoError(t, err)

			again, err := Build(toNFA(t, d), DefaultConfig())
			require.NoError(t, err)
			for _, in := range inputs {
				s, r := d.Start(), again.Start()
				for i := 0; i <= len(in); i++ {
					require.Equal(t, d.Pattern(s), again.Pattern(r), "%q at %d", in, i)
					if i < len(in) {
						s, r = d.Next(s, in[i]), again.Next(r, in[i])
					}
				}
			}
		})
	}
}
