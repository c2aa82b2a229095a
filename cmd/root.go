package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/coregx/dnfa"
)

// flags shared by every subcommand
var (
	verbose    bool
	lazy       bool
	direct     bool
	sparse     bool
	outOfBand  bool
	stateLimit int
	dict       bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "dnfa",
	Short: "dnfa - compile regular expressions to byte DFAs and search with them",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if verbose {
			logger, err = zap.NewDevelopment()
		} else {
			logger, err = zap.NewProduction()
		}
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "Log compilation at debug level")
	pf.BoolVar(&lazy, "lazy", false, "Determinize lazily while searching")
	pf.BoolVar(&direct, "direct", false, "Use the direct pointer representation")
	pf.BoolVar(&sparse, "sparse", false, "Store transitions as sparse ranges")
	pf.BoolVar(&outOfBand, "out-of-band", false, "Store final states in a separate bitset")
	pf.IntVar(&stateLimit, "state-limit", dnfa.DefaultConfig().StateLimit, "Maximum number of DFA states")
	pf.BoolVar(&dict, "dict", false, "Treat PATTERN as a comma-separated word list")

	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(dotCmd)
	rootCmd.AddCommand(statsCmd)
}

// options translates the shared flags.
func options(extra ...dnfa.Option) []dnfa.Option {
	opts := []dnfa.Option{
		dnfa.WithStateLimit(stateLimit),
		dnfa.WithLogger(logger),
	}
	if lazy {
		opts = append(opts, dnfa.WithDeterminization(dnfa.Lazy))
	}
	if direct {
		opts = append(opts, dnfa.WithRepresentation(dnfa.Direct))
	}
	if sparse {
		opts = append(opts, dnfa.WithTransitions(dnfa.TransitionSparse))
	}
	if outOfBand {
		opts = append(opts, dnfa.WithFinals(dnfa.FinalOutOfBand))
	}
	return append(opts, extra...)
}

func compile(pattern string, extra ...dnfa.Option) (*dnfa.Regex, error) {
	if dict {
		return dnfa.CompileDictionary(strings.Split(pattern, ","), options(extra...)...)
	}
	return dnfa.Compile(pattern, options(extra...)...)
}
