// gridiron is a dice-and-chart American football simulator for the terminal.
//
// Usage:
//
//	gridiron sim                 - Play one computer-vs-computer game and print the box score
//	gridiron batch               - Play many seeds in parallel and print the totals
//	gridiron play                - Call plays yourself against a computer coach
//	gridiron results [id]        - Show stored games, or one game's scoring summary
//	gridiron coaches             - List coaching styles and their records
//	gridiron charts [deck]       - Show the play charts
//	gridiron seeds               - Search for seeds whose first rolls match a pattern
//
// Global flags:
//
//	--seed <value>      - RNG seed for reproducible games (0 = time based)
//	--config <path>     - Rules YAML file
//	--charts <path>     - Chart YAML file (default: embedded charts)
//	--db <path>         - Results database (default: ~/.gridiron/games.db)
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gridiron/internal/charts"
	_ "github.com/vovakirdan/gridiron/internal/coach" // registers the coaching styles
	"github.com/vovakirdan/gridiron/internal/config"
	"github.com/vovakirdan/gridiron/internal/storage"
)

var (
	// Global flags
	flagSeed       int64
	flagConfigPath string
	flagChartsPath string
	flagDBPath     string
	flagLogLevel   string

	// catalog is shared by every command that reads charts.
	catalog *charts.Catalog

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "gridiron",
	})
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gridiron",
	Short: "Gridiron - dice and chart football in your terminal",
	Long: `Gridiron simulates American football the way the old board games did:
each snap crosses an offensive play with a defensive formation on a chart,
and dice settle long gains, kicks and returns.

Available commands:
  sim      - Simulate one game and print the box score
  batch    - Simulate many games in parallel
  play     - Call plays yourself against a computer coach
  results  - Show stored games
  coaches  - List coaching styles
  charts   - Show the play charts
  seeds    - Search for seeds by their first rolls

Examples:
  gridiron sim --seed 42 --home aggressive --away conservative
  gridiron batch --games 500 --workers 8 --save
  gridiron play --coach balanced --deck aerial
  gridiron results`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
		}
		logger.SetLevel(level)
		catalog = charts.NewCatalog(flagChartsPath)
		return nil
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Path to a rules YAML file")
	rootCmd.PersistentFlags().StringVar(&flagChartsPath, "charts", "", "Path to a chart YAML file (default: embedded charts)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.gridiron/games.db", "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(coachesCmd)
	rootCmd.AddCommand(chartsCmd)
	rootCmd.AddCommand(seedsCmd)
}

// seed returns --seed, or a time-based seed when it is zero.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

func loadRules() (config.Rules, error) {
	return config.LoadRules(flagConfigPath)
}

func loadTables() (*charts.Tables, error) {
	if catalog == nil {
		catalog = charts.NewCatalog(flagChartsPath)
	}
	return catalog.Tables()
}

func openStore() (*storage.Store, error) {
	return storage.Open(flagDBPath)
}

// termSize returns the terminal size, or 80x24 when stdout is not a terminal.
func termSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}
