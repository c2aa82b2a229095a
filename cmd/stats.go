package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/coregx/dnfa"
	"github.com/coregx/dnfa/dfa"
)

var statsCmd = &cobra.Command{
	Use:   "stats PATTERN",
	Short: "Print the size and layout of the DFA for PATTERN",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Sizes are only known for a complete automaton.
		re, err := compile(args[0], dnfa.WithDeterminization(dnfa.Eager))
		if err != nil {
			return err
		}
		d := re.DFA()
		minimal, err := dfa.Minimize(d)
		if err != nil {
			return err
		}

		st := re.Stats()
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "nfa states:\t%d\n", re.NFA().States())
		fmt.Fprintf(w, "patterns:\t%d\n", re.NumPatterns())
		fmt.Fprintf(w, "byte classes:\t%d\n", d.ByteClasses().AlphabetLen())
		fmt.Fprintf(w, "dfa states:\t%d\n", st.States)
		fmt.Fprintf(w, "minimized states:\t%d\n", minimal.Len())
		fmt.Fprintf(w, "transitions:\t%v\n", d.Transitions().Layout())
		fmt.Fprintf(w, "finals:\t%v\n", d.Finals().Storage())
		fmt.Fprintf(w, "memory:\t%d bytes\n", st.MemoryUsage)
		fmt.Fprintf(w, "prefilter:\t%d bytes\n", st.PrefilterBytes)
		return w.Flush()
	},
}
