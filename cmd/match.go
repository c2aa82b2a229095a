package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/coregx/dnfa"
)

// match command flags
var (
	first       bool
	overlapping bool
)

var matchCmd = &cobra.Command{
	Use:   "match PATTERN [FILE...]",
	Short: "Print every match of PATTERN in the files, or stdin",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := dnfa.LeftmostLongest
		switch {
		case overlapping:
			mode = dnfa.Overlapping
		case first:
			mode = dnfa.First
		}
		re, err := compile(args[0], dnfa.WithSearchMode(mode))
		if err != nil {
			return err
		}

		files := args[1:]
		if len(files) == 0 {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(formatMatches(re, "-", data))
			return err
		}
		out, err := matchFiles(cmd.Context(), re, files)
		if err != nil {
			return err
		}
		for _, b := range out {
			if _, err := cmd.OutOrStdout().Write(b); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	matchCmd.Flags().BoolVar(&first, "first", false, "Report the shortest prefix that reaches a final state")
	matchCmd.Flags().BoolVar(&overlapping, "overlapping", false, "Report every overlapping match")
}

// matchFiles searches files concurrently and returns the output of each in
// argument order.
func matchFiles(ctx context.Context, re *dnfa.Regex, files []string) ([][]byte, error) {
	out := make([][]byte, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, name := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(name)
			if err != nil {
				logger.Error("Error reading file", zap.String("file", name), zap.Error(err))
				return err
			}
			out[i] = formatMatches(re, name, data)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// formatMatches renders one file:start-end:pattern:text line per match.
func formatMatches(re *dnfa.Regex, name string, data []byte) []byte {
	var buf bytes.Buffer
	for m := range re.All(data) {
		fmt.Fprintf(&buf, "%s:%d-%d:%d:%q\n", name, m.Start, m.End, m.Pattern, data[m.Start:m.End])
	}
	return buf.Bytes()
}
