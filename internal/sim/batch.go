package sim

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/gridiron/internal/storage"
)

// Saver persists finished games. *storage.Store implements it.
type Saver interface {
	SaveGame(ctx context.Context, g storage.GameRecord) (string, error)
}

var _ Saver = (*storage.Store)(nil)

// BatchConfig describes a set of games that differ only by seed.
type BatchConfig struct {
	Template Game // Seed is replaced per game
	Seeds    []int64
	Workers  int   // <= 0 uses GOMAXPROCS
	Store    Saver // optional
	// OnGame is called after each finished game, from the worker goroutine.
	OnGame func(Summary)
}

// BatchResult aggregates a batch.
type BatchResult struct {
	Games     []Summary // in seed order; unfinished games are absent
	HomeWins  int
	AwayWins  int
	Ties      int
	Overtimes int
	Points    int
	Snaps     int
}

// AveragePoints is the mean combined score per game.
func (r BatchResult) AveragePoints() float64 {
	if len(r.Games) == 0 {
		return 0
	}
	return float64(r.Points) / float64(len(r.Games))
}

// SeedRange returns n consecutive seeds starting at first.
func SeedRange(first int64, n int) []int64 {
	seeds := make([]int64, n)
	for i := range seeds {
		seeds[i] = first + int64(i)
	}
	return seeds
}

// Batch runs the games across a worker pool. Cancellation is checked between
// games: a game in progress always finishes. The first error stops the
// batch; games already finished are still returned.
func Batch(ctx context.Context, cfg BatchConfig) (BatchResult, error) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var mu sync.Mutex
	done := make([]*Summary, len(cfg.Seeds))

	for i, seed := range cfg.Seeds {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			game := cfg.Template
			game.Seed = seed
			sum, err := Run(gctx, game)
			if err != nil {
				return fmt.Errorf("sim: seed %d: %w", seed, err)
			}
			if cfg.Store != nil {
				if _, err := cfg.Store.SaveGame(gctx, sum.Record()); err != nil {
					return err
				}
			}
			if cfg.OnGame != nil {
				cfg.OnGame(sum)
			}
			mu.Lock()
			done[i] = &sum
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	var res BatchResult
	for _, sum := range done {
		if sum == nil {
			continue
		}
		res.Games = append(res.Games, *sum)
		switch sum.Winner() {
		case storage.WinnerHome:
			res.HomeWins++
		case storage.WinnerAway:
			res.AwayWins++
		default:
			res.Ties++
		}
		if sum.Overtime {
			res.Overtimes++
		}
		res.Points += sum.Final.Score.Home + sum.Final.Score.Away
		res.Snaps += sum.Snaps
	}
	return res, err
}
