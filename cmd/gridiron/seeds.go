package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridiron/internal/dice"
)

var (
	flagSides   int
	flagPattern string
	flagFrom    int64
	flagTo      int64
	flagLimit   int
)

var seedsCmd = &cobra.Command{
	Use:   "seeds",
	Short: "Search for seeds by their first rolls",
	Long: `Scan a range of seeds and print those whose first rolls match a pattern.
A 0 in the pattern matches any face. Handy for reproducing a situation in a
test or a bug report.

Examples:
  gridiron seeds --pattern 6,6
  gridiron seeds --sides 20 --pattern 1,0,20 --to 5000000 --limit 3`,
	Args: cobra.NoArgs,
	RunE: runSeeds,
}

func init() {
	seedsCmd.Flags().IntVar(&flagSides, "sides", 6, "Die size")
	seedsCmd.Flags().StringVar(&flagPattern, "pattern", "", "Comma-separated faces to match, 0 = any")
	seedsCmd.Flags().Int64Var(&flagFrom, "from", 1, "First seed")
	seedsCmd.Flags().Int64Var(&flagTo, "to", 1_000_000, "Last seed (inclusive)")
	seedsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Stop after this many matches (0 = all)")
	_ = seedsCmd.MarkFlagRequired("pattern")
}

func parsePattern(s string, sides int) ([]int, error) {
	var pattern []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("bad pattern entry %q: %w", part, err)
		}
		if n < 0 || n > sides {
			return nil, fmt.Errorf("pattern entry %d is outside 0..%d", n, sides)
		}
		pattern = append(pattern, n)
	}
	return pattern, nil
}

func runSeeds(cmd *cobra.Command, args []string) error {
	pattern, err := parsePattern(flagPattern, flagSides)
	if err != nil {
		return err
	}
	found, err := dice.Search(cmd.Context(), dice.SearchRequest{
		Sides:   flagSides,
		Pattern: pattern,
		From:    flagFrom,
		To:      flagTo,
		Limit:   flagLimit,
	})
	out := cmd.OutOrStdout()
	for _, s := range found {
		fmt.Fprintln(out, s)
	}
	if len(found) == 0 && err == nil {
		fmt.Fprintln(out, "No matching seeds.")
	}
	return err
}
