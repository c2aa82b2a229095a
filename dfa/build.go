package dfa

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/coregx/dnfa/alphabet"
	"github.com/coregx/dnfa/determinize"
	"github.com/coregx/dnfa/internal/conv"
	"github.com/coregx/dnfa/nfa"
)

// Build determinizes n eagerly.
//
// States are numbered in breadth-first discovery order. When the number of
// states other than the dead state would exceed config.StateLimit, Build
// fails with an error matching ErrStateLimitExceeded and returns no
// automaton.
func Build(n *nfa.NFA, config Config) (*DFA, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if n == nil {
		return nil, invalidAutomaton("nil NFA")
	}
	if n.States() == 0 {
		return nil, invalidAutomaton("NFA has no states")
	}
	log := config.logger()

	det := determinize.New(n)
	alen := det.ByteClasses().AlphabetLen()

	// Index 0 is the dead state; its meaning is the empty set.
	ids := map[string]StateID{"": DeadState}
	sets := []determinize.Set{nil}
	rows := [][]StateID{make([]StateID, alen)}
	patterns := []nfa.PatternID{nfa.NoPattern}

	add := func(set determinize.Set) (StateID, error) {
		key := set.Key()
		if id, ok := ids[key]; ok {
			return id, nil
		}
		if len(sets)-1 >= config.StateLimit {
			log.Warn("state limit exceeded",
				zap.Int("limit", config.StateLimit),
				zap.Int("nfa_states", n.States()))
			return DeadState, &DFAError{
				Kind:    StateLimitExceeded,
				Message: fmt.Sprintf("DFA state limit exceeded: more than %d states", config.StateLimit),
			}
		}
		id := StateID(conv.IntToUint32(len(sets)))
		ids[key] = id
		sets = append(sets, set)
		rows = append(rows, make([]StateID, alen))
		patterns = append(patterns, det.Pattern(set))
		return id, nil
	}

	if _, err := add(det.Start()); err != nil {
		return nil, err
	}
	for s := 1; s < len(sets); s++ {
		for c := 0; c < alen; c++ {
			next := det.NextClass(sets[s], c)
			if len(next) == 0 {
				continue
			}
			id, err := add(next)
			if err != nil {
				return nil, err
			}
			rows[s][c] = id
		}
	}

	d, err := assemble(config, *det.ByteClasses(), rows, patterns, n.PatternCount())
	if err != nil {
		return nil, err
	}
	log.Debug("determinized",
		zap.Int("nfa_states", n.States()),
		zap.Int("dfa_states", d.Len()),
		zap.Int("classes", alen),
		zap.Stringer("transitions", d.trans.Layout()),
		zap.Stringer("finals", d.finals.Storage()),
		zap.Int("memory", d.MemoryUsage()))
	return d, nil
}

// assemble lays rows out according to config. rows[s][c] is the successor
// of state s on byte class c; patterns[s] is the pattern s accepts.
func assemble(config Config, classes alphabet.ByteClasses, rows [][]StateID, patterns []nfa.PatternID, patternCount int) (*DFA, error) {
	d := &DFA{
		config:       config,
		classes:      classes,
		patternCount: patternCount,
	}
	reps := classes.Representatives()
	inline := config.Finals == FinalInline

	layout := config.Transitions
	var ranges [][]alphabet.Range[StateID]
	if layout != TransitionDense {
		ranges = make([][]alphabet.Range[StateID], len(rows))
		total := 0
		for s, row := range rows {
			rs, err := rowRanges(row, reps)
			if err != nil {
				return nil, invalidAutomaton(err.Error())
			}
			ranges[s] = rs
			total += len(rs)
		}
		if layout == TransitionAuto {
			layout = TransitionDense
			if total <= config.SparseDensityThreshold*len(rows) {
				layout = TransitionSparse
			}
		}
	}

	switch layout {
	case TransitionSparse:
		t, err := newSparseTable(ranges, patterns)
		if err != nil {
			return nil, invalidAutomaton(err.Error())
		}
		d.trans = t
		if inline {
			d.finals = t
		}
	default:
		t := newDenseTable(classes, rows, patterns, inline)
		d.trans = t
		if inline {
			d.finals = t
		}
	}
	if !inline {
		d.finals = newBitsetFinals(patterns, patternCount)
	}

	if config.Accelerate {
		d.accel = accelerators(&classes, rows)
	}
	return d, nil
}

// Rows returns the per-class transition rows of d: Rows()[s][c] is the
// successor of s on any byte of class c.
func (d *DFA) Rows() [][]StateID {
	reps := d.classes.Representatives()
	rows := make([][]StateID, d.Len())
	for s := range rows {
		row := make([]StateID, len(reps))
		for c, b := range reps {
			row[c] = d.Next(StateID(conv.IntToUint32(s)), b)
		}
		rows[s] = row
	}
	return rows
}

// patterns returns the accepted pattern of every state.
func (d *DFA) patterns() []nfa.PatternID {
	out := make([]nfa.PatternID, d.Len())
	for s := range out {
		out[s] = d.Pattern(StateID(conv.IntToUint32(s)))
	}
	return out
}
