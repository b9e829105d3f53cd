package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridiron/internal/game"
	"github.com/vovakirdan/gridiron/internal/platform/tui"
	"github.com/vovakirdan/gridiron/internal/registry"
	"github.com/vovakirdan/gridiron/internal/storage"
)

var (
	flagPlayCoach string
	flagPlayDeck  string
	flagPlaySide  string
	flagCPUDeck   string
	flagNoSave    bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Call plays against a computer coach",
	Long: `Coach one side yourself. On offense pick a play from your deck, punt or
try a field goal; on defense pick a formation. When a flag falls and the
choice is yours, accept or decline it.

Without --coach a menu asks for the opponent, your deck and your side.

Controls:
  Up/Down    - Move through plays or defenses
  Enter      - Call it
  P / F      - Punt / field goal
  A / D      - Accept / decline a penalty
  ?          - More keys
  Q/Ctrl+C   - Quit

Examples:
  gridiron play
  gridiron play --coach aggressive --deck aerial --side away
  gridiron play --seed 7 --coach balanced`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayCoach, "coach", "", "Computer coach (skips the menu)")
	playCmd.Flags().StringVar(&flagPlayDeck, "deck", "pro_style", "Your playbook deck")
	playCmd.Flags().StringVar(&flagPlaySide, "side", "home", "Your side: home or away")
	playCmd.Flags().StringVar(&flagCPUDeck, "cpu-deck", "", "Computer's deck (default: pro_style)")
	playCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not store the result")
}

func parseSide(s string) (game.Side, error) {
	switch strings.ToLower(s) {
	case "home", "h":
		return game.Home, nil
	case "away", "a":
		return game.Away, nil
	default:
		return game.Home, fmt.Errorf("unknown side %q (want home or away)", s)
	}
}

func runPlay(cmd *cobra.Command, args []string) error {
	rules, err := loadRules()
	if err != nil {
		return err
	}
	tables, err := loadTables()
	if err != nil {
		return err
	}

	var store *storage.Store
	if !flagNoSave {
		if store, err = openStore(); err != nil {
			logger.Warn("results database unavailable, game will not be saved", "err", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	cfg := tui.GameConfig{
		Seed:    seed(),
		Deck:    flagPlayDeck,
		CPUDeck: flagCPUDeck,
		Rules:   rules,
		Tables:  tables,
	}

	if flagPlayCoach != "" {
		if !registry.Exists(flagPlayCoach) {
			return fmt.Errorf("unknown coach %q; run 'gridiron coaches' to see them", flagPlayCoach)
		}
		side, err := parseSide(flagPlaySide)
		if err != nil {
			return err
		}
		cfg.CPUCoach = flagPlayCoach
		cfg.Human = side
		return tui.Run(cfg, store)
	}

	width, height := termSize()
	for {
		if tables, err = loadTables(); err != nil {
			return err
		}
		cfg.Tables = tables
		menu, err := tui.RunMenu(tables, width, height)
		if err != nil {
			return err
		}
		if menu.IsQuitting() {
			return nil
		}
		if menu.WantsScoreboard() {
			if store == nil {
				continue
			}
			back, err := tui.RunScoreboard(store, width, height)
			if err != nil || !back {
				return err
			}
			// Chart edits made while browsing show up in the next menu.
			catalog.Invalidate()
			continue
		}
		picks, done := menu.Result()
		if !done {
			return nil
		}
		cfg.CPUCoach = picks.CPUCoach
		cfg.Deck = picks.Deck
		cfg.Human = picks.Human
		return tui.Run(cfg, store)
	}
}
