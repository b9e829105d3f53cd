package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridiron/internal/flow"
	"github.com/vovakirdan/gridiron/internal/sim"
	"github.com/vovakirdan/gridiron/internal/telemetry"
)

var (
	flagHomeCoach  string
	flagAwayCoach  string
	flagHomeDeck   string
	flagAwayDeck   string
	flagPlayByPlay bool
	flagSave       bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Simulate one game",
	Long: `Play one game between two computer coaches and print the box score.

The same seed, rules and charts always produce the same game.

Examples:
  gridiron sim
  gridiron sim --seed 42 --pbp
  gridiron sim --home aggressive --away conservative --away-deck aerial
  gridiron sim --save`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	addMatchupFlags(simCmd)
	simCmd.Flags().BoolVar(&flagPlayByPlay, "pbp", false, "Print the play-by-play")
	simCmd.Flags().BoolVar(&flagSave, "save", false, "Store the result in the database")
}

// addMatchupFlags registers the coach and deck flags shared by sim and batch.
func addMatchupFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagHomeCoach, "home", "balanced", "Home coaching style")
	cmd.Flags().StringVar(&flagAwayCoach, "away", "balanced", "Away coaching style")
	cmd.Flags().StringVar(&flagHomeDeck, "home-deck", "", "Home playbook deck (default: pro_style)")
	cmd.Flags().StringVar(&flagAwayDeck, "away-deck", "", "Away playbook deck (default: pro_style)")
}

// matchup builds the game template from the flags, rules and charts.
func matchup() (sim.Game, error) {
	rules, err := loadRules()
	if err != nil {
		return sim.Game{}, err
	}
	tables, err := loadTables()
	if err != nil {
		return sim.Game{}, err
	}
	return sim.Game{
		HomeCoach: flagHomeCoach,
		AwayCoach: flagAwayCoach,
		HomeDeck:  flagHomeDeck,
		AwayDeck:  flagAwayDeck,
		Rules:     rules,
		Tables:    tables,
		Hook:      telemetry.NewLogSink(logger),
		Logger:    logger,
	}, nil
}

func runSim(cmd *cobra.Command, args []string) error {
	g, err := matchup()
	if err != nil {
		return err
	}
	g.Seed = seed()
	g.KeepEvents = flagPlayByPlay

	sum, err := sim.Run(cmd.Context(), g)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flagPlayByPlay {
		for _, ev := range sum.Events {
			if l, ok := ev.(flow.LogEvent); ok {
				fmt.Fprintln(out, l.Text)
			}
		}
		fmt.Fprintln(out)
	}
	width, _ := termSize()
	fmt.Fprint(out, renderBoxScore(sum, width))

	if flagSave {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()
		id, err := store.SaveGame(cmd.Context(), sum.Record())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\nSaved as %s\n", id)
	}
	return nil
}
