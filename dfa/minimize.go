package dfa

import (
	"encoding/binary"

	"go.uber.org/zap"

	"github.com/coregx/dnfa/internal/conv"
	"github.com/coregx/dnfa/nfa"
)

// Minimize returns the smallest DFA equivalent to d, computed by partition
// refinement. States accepting different patterns are never merged. The dead
// state keeps ID 0 and the start state ID 1, even when the start state is
// itself equivalent to the dead state.
func Minimize(d *DFA) (*DFA, error) {
	if d == nil {
		return nil, invalidAutomaton("nil DFA")
	}
	rows := d.Rows()
	patterns := d.patterns()
	n := len(rows)

	// Initial partition: one block per accepted pattern.
	block := make([]int, n)
	byPattern := make(map[nfa.PatternID]int)
	for s, p := range patterns {
		b, ok := byPattern[p]
		if !ok {
			b = len(byPattern)
			byPattern[p] = b
		}
		block[s] = b
	}
	count := len(byPattern)

	buf := make([]byte, 0, 4*(len(rows[0])+1))
	for {
		sigs := make(map[string]int, count)
		next := make([]int, n)
		for s, row := range rows {
			buf = binary.LittleEndian.AppendUint32(buf[:0], conv.IntToUint32(block[s]))
			for _, t := range row {
				buf = binary.LittleEndian.AppendUint32(buf, conv.IntToUint32(block[t]))
			}
			b, ok := sigs[string(buf)]
			if !ok {
				b = len(sigs)
				sigs[string(buf)] = b
			}
			next[s] = b
		}
		block = next
		if len(sigs) == count {
			break
		}
		count = len(sigs)
	}

	// Renumber: dead block first, start second, the rest by lowest member.
	ids := make(map[int]StateID, count+1)
	ids[block[DeadState]] = DeadState
	reps := []int{int(DeadState)}
	startAlias := block[StartState] == block[DeadState]
	if !startAlias {
		ids[block[StartState]] = StartState
	}
	reps = append(reps, int(StartState))
	for s := range rows {
		if _, ok := ids[block[s]]; !ok {
			ids[block[s]] = StateID(conv.IntToUint32(len(reps)))
			reps = append(reps, s)
		}
	}

	newRows := make([][]StateID, len(reps))
	newPatterns := make([]nfa.PatternID, len(reps))
	for id, s := range reps {
		row := make([]StateID, len(rows[s]))
		for c, t := range rows[s] {
			row[c] = ids[block[t]]
		}
		newRows[id] = row
		newPatterns[id] = patterns[s]
	}

	m, err := assemble(d.config, d.classes, newRows, newPatterns, d.patternCount)
	if err != nil {
		return nil, err
	}
	d.config.logger().Debug("minimized",
		zap.Int("before", d.Len()),
		zap.Int("after", m.Len()))
	return m, nil
}
