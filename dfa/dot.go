package dfa

import (
	"bufio"
	"fmt"
	"io"

	"github.com/coregx/dnfa/alphabet"
	"github.com/coregx/dnfa/internal/conv"
)

// WriteDot writes d as a Graphviz digraph named id. The dead state and edges
// into it are omitted.
func WriteDot(w io.Writer, d *DFA, id string) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "digraph %v {\n  %d[shape=box];\n", id, StartState)
	for i := 1; i < d.Len(); i++ {
		s := StateID(conv.IntToUint32(i))
		if d.IsFinal(s) {
			fmt.Fprintf(bw, "  %d[style=filled,color=green,xlabel=%q];\n", s, fmt.Sprintf("p%d", d.Pattern(s)))
		}

		var order []StateID
		byTarget := make(map[StateID][][2]byte)
		lo := 0
		for b := 0; b < 256; b++ {
			t := d.Next(s, byte(b))
			if b < 255 && d.Next(s, byte(b+1)) == t {
				continue
			}
			if t != DeadState {
				if _, ok := byTarget[t]; !ok {
					order = append(order, t)
				}
				byTarget[t] = append(byTarget[t], [2]byte{byte(lo), byte(b)})
			}
			lo = b + 1
		}
		for _, t := range order {
			fmt.Fprintf(bw, "  %d -> %d[label=%q];\n", s, t, alphabet.FormatRanges(byTarget[t]))
		}
	}
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}
