package main

import (
	"fmt"
	"sync/atomic"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridiron/internal/sim"
	"github.com/vovakirdan/gridiron/internal/telemetry"
)

var (
	flagGames       int
	flagWorkers     int
	flagBatchSave   bool
	flagRedisURL    string
	flagRedisStream string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Simulate many games in parallel",
	Long: `Play one game per seed, starting at --seed and counting up, across a pool
of workers, then print the totals. Ctrl+C stops after the games in progress.

With --redis-url every dice roll, outcome, state change and score is also
added to a Redis stream for offline analysis.

Examples:
  gridiron batch --games 1000
  gridiron batch --seed 1 --games 200 --home aggressive --save
  gridiron batch --redis-url redis://localhost:6379 --redis-stream gridiron.telemetry`,
	Args: cobra.NoArgs,
	RunE: runBatch,
}

func init() {
	addMatchupFlags(batchCmd)
	batchCmd.Flags().IntVar(&flagGames, "games", 100, "Number of games")
	batchCmd.Flags().IntVar(&flagWorkers, "workers", 0, "Parallel games (0 = one per CPU)")
	batchCmd.Flags().BoolVar(&flagBatchSave, "save", false, "Store every result in the database")
	batchCmd.Flags().StringVar(&flagRedisURL, "redis-url", "", "Publish telemetry to this Redis server")
	batchCmd.Flags().StringVar(&flagRedisStream, "redis-stream", telemetry.DefaultStream, "Redis stream key for telemetry")
}

func runBatch(cmd *cobra.Command, args []string) error {
	if flagGames <= 0 {
		return fmt.Errorf("--games must be positive, got %d", flagGames)
	}
	g, err := matchup()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if flagRedisURL != "" {
		opts, err := redis.ParseURL(flagRedisURL)
		if err != nil {
			return fmt.Errorf("invalid --redis-url: %w", err)
		}
		client := redis.NewClient(opts)
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("cannot reach redis: %w", err)
		}

		sink := telemetry.NewRedisSink(client, flagRedisStream, 0, logger)
		defer func() {
			sink.Close()
			if n := sink.Dropped(); n > 0 {
				logger.Warn("telemetry records dropped", "count", n)
			}
			if n := sink.Failed(); n > 0 {
				logger.Warn("telemetry records rejected", "count", n)
			}
		}()
		g.Hook = telemetry.Multi{g.Hook, sink}
	}

	cfg := sim.BatchConfig{
		Template: g,
		Seeds:    sim.SeedRange(seed(), flagGames),
		Workers:  flagWorkers,
	}
	if flagBatchSave {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()
		cfg.Store = store
	}

	var finished atomic.Int64
	cfg.OnGame = func(sum sim.Summary) {
		n := finished.Add(1)
		logger.Info("game final", "n", n, "seed", sum.Seed, "home", sum.Final.Score.Home, "away", sum.Final.Score.Away)
	}

	res, err := sim.Batch(ctx, cfg)
	printBatch(cmd, res)
	return err
}

func printBatch(cmd *cobra.Command, res sim.BatchResult) {
	out := cmd.OutOrStdout()
	n := len(res.Games)
	fmt.Fprintf(out, "%s\n", headerStyle.Render(fmt.Sprintf("%d games: %s (home) vs %s (away)", n, flagHomeCoach, flagAwayCoach)))
	if n == 0 {
		return
	}
	pct := func(k int) float64 { return 100 * float64(k) / float64(n) }
	fmt.Fprintf(out, "  home wins  %5d  %5.1f%%\n", res.HomeWins, pct(res.HomeWins))
	fmt.Fprintf(out, "  away wins  %5d  %5.1f%%\n", res.AwayWins, pct(res.AwayWins))
	fmt.Fprintf(out, "  ties       %5d  %5.1f%%\n", res.Ties, pct(res.Ties))
	fmt.Fprintf(out, "  overtimes  %5d  %5.1f%%\n", res.Overtimes, pct(res.Overtimes))
	fmt.Fprintf(out, "  points per game  %.1f\n", res.AveragePoints())
	fmt.Fprintf(out, "  snaps per game   %.1f\n", float64(res.Snaps)/float64(n))
}
