package cmd

import (
	"github.com/spf13/cobra"

	"github.com/coregx/dnfa/nfa"
)

var showNFA bool

var dotCmd = &cobra.Command{
	Use:   "dot PATTERN",
	Short: "Write the automaton for PATTERN as a Graphviz digraph",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		re, err := compile(args[0])
		if err != nil {
			return err
		}
		if showNFA {
			return nfa.WriteDot(cmd.OutOrStdout(), re.NFA(), "nfa")
		}
		return re.WriteDot(cmd.OutOrStdout())
	},
}

func init() {
	dotCmd.Flags().BoolVar(&showNFA, "nfa", false, "Write the NFA instead of the DFA")
}
