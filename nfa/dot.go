package nfa

import (
	"bufio"
	"fmt"
	"io"

	"github.com/coregx/dnfa/alphabet"
)

// WriteDot writes n as a Graphviz digraph named id. Final states are filled
// green, the start state is drawn as a box, and epsilon edges are dashed.
// Ranges leading to the same target are merged into one labelled edge.
func WriteDot(w io.Writer, n *NFA, id string) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "digraph %v {\n  %d[shape=box];\n", id, n.start)
	for i := range n.states {
		s := &n.states[i]
		if s.IsFinal() {
			fmt.Fprintf(bw, "  %d[style=filled,color=green,xlabel=%q];\n", s.id, fmt.Sprintf("p%d", s.pattern))
		}

		// Group ranges by target, keeping first-seen target order.
		var order []StateID
		byTarget := make(map[StateID][][2]byte)
		for _, t := range s.transitions {
			if _, ok := byTarget[t.Next]; !ok {
				order = append(order, t.Next)
			}
			byTarget[t.Next] = append(byTarget[t.Next], [2]byte{t.Lo, t.Hi})
		}
		for _, target := range order {
			fmt.Fprintf(bw, "  %d -> %d[label=%q];\n", s.id, target, alphabet.FormatRanges(byTarget[target]))
		}
		for _, e := range s.epsilons {
			fmt.Fprintf(bw, "  %d -> %d[style=dashed];\n", s.id, e)
		}
	}
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}
