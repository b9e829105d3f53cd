package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridiron/internal/game"
	"github.com/vovakirdan/gridiron/internal/platform/tui"
)

var (
	flagResultsLimit int
	flagBrowse       bool
)

var resultsCmd = &cobra.Command{
	Use:   "results [game-id]",
	Short: "Show stored games",
	Long: `List the most recent stored games, or show one game's scoring summary.
With --browse, open the interactive results browser.

Examples:
  gridiron results
  gridiron results --limit 50
  gridiron results 3f1c2a9e-...
  gridiron results --browse`,
	Args: cobra.MaximumNArgs(1),
	RunE: runResults,
}

func init() {
	resultsCmd.Flags().IntVar(&flagResultsLimit, "limit", 20, "Number of games to list")
	resultsCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Open the interactive results browser")
}

func runResults(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()
	out := cmd.OutOrStdout()

	if flagBrowse {
		width, height := termSize()
		_, err := tui.RunScoreboard(store, width, height)
		return err
	}

	if len(args) == 1 {
		g, err := store.GameByID(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if g == nil {
			return fmt.Errorf("no game with id %q", args[0])
		}
		fmt.Fprintf(out, "%s\n", headerStyle.Render(fmt.Sprintf("%s %d, %s %d", g.AwayCoach, g.AwayScore, g.HomeCoach, g.HomeScore)))
		fmt.Fprintf(out, "seed %d, %d snaps, winner %s, played %s\n\n", g.Seed, g.Plays, g.Winner, g.CreatedAt.Format("2006-01-02 15:04"))
		if len(g.Scoring) == 0 {
			fmt.Fprintln(out, "No scoring.")
		}
		for _, p := range g.Scoring {
			fmt.Fprintf(out, "  %-3s %5s  %-4s %-22s %d\n", periodName(p.Quarter), game.FormatClock(p.Clock), p.Side, p.Kind, p.Points)
		}
		return nil
	}

	games, err := store.RecentGames(cmd.Context(), flagResultsLimit)
	if err != nil {
		return err
	}
	if len(games) == 0 {
		fmt.Fprintln(out, "No games stored yet.")
		fmt.Fprintln(out, "Run 'gridiron sim --save' or 'gridiron play' to record one.")
		return nil
	}

	fmt.Fprintf(out, "  %-36s  %-16s  %-14s  %-14s  %-7s  %s\n", "ID", "Date", "Home", "Away", "Score", "Seed")
	for _, g := range games {
		score := fmt.Sprintf("%d-%d", g.HomeScore, g.AwayScore)
		if g.Overtime {
			score += "*"
		}
		fmt.Fprintf(out, "  %-36s  %-16s  %-14s  %-14s  %-7s  %d\n",
			g.ID, g.CreatedAt.Format("2006-01-02 15:04"), g.HomeCoach, g.AwayCoach, score, g.Seed)
	}
	return nil
}
