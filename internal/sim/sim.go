// Package sim plays whole computer-vs-computer games.
package sim

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/gridiron/internal/charts"
	_ "github.com/vovakirdan/gridiron/internal/coach" // registers the coaching styles
	"github.com/vovakirdan/gridiron/internal/config"
	"github.com/vovakirdan/gridiron/internal/dice"
	"github.com/vovakirdan/gridiron/internal/flow"
	"github.com/vovakirdan/gridiron/internal/game"
	"github.com/vovakirdan/gridiron/internal/registry"
	"github.com/vovakirdan/gridiron/internal/storage"
	"github.com/vovakirdan/gridiron/internal/telemetry"
)

// DefaultMaxSnaps bounds a game that somehow never ends.
const DefaultMaxSnaps = 5000

// Game describes one simulation.
type Game struct {
	Seed      int64
	HomeCoach string // registered coach ID; empty means "balanced"
	AwayCoach string
	HomeDeck  string // empty means pro_style
	AwayDeck  string
	Rules     config.Rules
	Tables    *charts.Tables
	Hook      telemetry.Hook
	Logger    *log.Logger
	MaxSnaps  int
	// KeepEvents retains the full event log in the summary.
	KeepEvents bool
}

// Summary is the result of one game.
type Summary struct {
	ID        string
	Seed      int64
	HomeCoach string
	AwayCoach string
	Final     game.State
	Snaps     int
	Overtime  bool
	Scoring   []flow.ScoreEvent
	Events    []flow.Event
}

// Winner returns storage.WinnerHome, WinnerAway or WinnerTie.
func (s Summary) Winner() string {
	switch {
	case s.Final.Score.Home > s.Final.Score.Away:
		return storage.WinnerHome
	case s.Final.Score.Away > s.Final.Score.Home:
		return storage.WinnerAway
	default:
		return storage.WinnerTie
	}
}

// Record converts the summary to its stored form.
func (s Summary) Record() storage.GameRecord {
	rec := storage.GameRecord{
		ID:        s.ID,
		Seed:      s.Seed,
		HomeCoach: s.HomeCoach,
		AwayCoach: s.AwayCoach,
		HomeScore: s.Final.Score.Home,
		AwayScore: s.Final.Score.Away,
		Winner:    s.Winner(),
		Plays:     s.Snaps,
		Overtime:  s.Overtime,
	}
	for _, ev := range s.Scoring {
		rec.Scoring = append(rec.Scoring, storage.ScoringPlay{
			GameID:  s.ID,
			Quarter: ev.Quarter,
			Clock:   ev.Clock,
			Side:    ev.Side.String(),
			Kind:    ev.Kind.String(),
			Points:  ev.Points,
		})
	}
	return rec
}

// Run plays one game to the final whistle, checking state invariants after
// every step. The game is not interruptible once started; ctx is checked
// before kickoff.
func Run(ctx context.Context, g Game) (Summary, error) {
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}

	logger := g.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	tables := g.Tables
	if tables == nil {
		var err error
		if tables, err = charts.Default(); err != nil {
			return Summary{}, err
		}
	}
	homeID, awayID := orDefault(g.HomeCoach), orDefault(g.AwayCoach)

	stream := dice.New(g.Seed)
	home, err := registry.Create(homeID, registry.Setup{Rules: g.Rules, Tables: tables, Deck: g.HomeDeck, Stream: stream})
	if err != nil {
		return Summary{}, err
	}
	away, err := registry.Create(awayID, registry.Setup{Rules: g.Rules, Tables: tables, Deck: g.AwayDeck, Stream: stream})
	if err != nil {
		return Summary{}, err
	}
	coaches := [2]registry.Coach{game.Home: home, game.Away: away}

	sum := Summary{
		ID:        uuid.NewString(),
		Seed:      g.Seed,
		HomeCoach: homeID,
		AwayCoach: awayID,
	}
	engine := flow.New(flow.Options{
		Rules:    g.Rules,
		Tables:   tables,
		Stream:   stream,
		Policies: map[game.Side]flow.Policy{game.Home: home, game.Away: away},
		Hook:     g.Hook,
		Logger:   logger.With("game", sum.ID),
		GameID:   sum.ID,
	})

	opening := game.Home
	if stream.Float64() >= 0.5 {
		opening = game.Away
	}
	st := engine.Start(opening)
	if err := flow.CheckState(st.State); err != nil {
		return sum, err
	}
	sum.collect(st, g.KeepEvents)

	limit := g.MaxSnaps
	if limit <= 0 {
		limit = DefaultMaxSnaps
	}
	s := st.State
	for !s.GameOver {
		if sum.Snaps >= limit {
			return sum, fmt.Errorf("sim: game %d did not finish in %d snaps", g.Seed, limit)
		}

		in, err := coaches[s.Possession].ChooseOffense(s)
		if err != nil {
			return sum, fmt.Errorf("sim: %s offense: %w", s.Possession, err)
		}
		if in.Call == flow.CallPlay {
			in.Defense = coaches[s.Possession.Other()].ChooseDefense(s)
		}

		next, err := engine.ResolveSnap(s, in)
		if err != nil {
			return sum, err
		}
		if err := flow.CheckStep(s, next); err != nil {
			return sum, fmt.Errorf("sim: seed %d snap %d: %w", g.Seed, sum.Snaps+1, err)
		}
		sum.Snaps++
		sum.collect(next, g.KeepEvents)
		s = next.State
	}
	sum.Final = s
	logger.Debug("game final", "seed", g.Seed, "home", s.Score.Home, "away", s.Score.Away, "snaps", sum.Snaps)
	return sum, nil
}

func (s *Summary) collect(st flow.Step, keep bool) {
	for _, ev := range st.Events {
		switch ev := ev.(type) {
		case flow.ScoreEvent:
			s.Scoring = append(s.Scoring, ev)
		case flow.OvertimeEvent:
			s.Overtime = true
		}
	}
	if keep {
		s.Events = append(s.Events, st.Events...)
	}
}

func orDefault(id string) string {
	if id == "" {
		return string(config.StyleBalanced)
	}
	return id
}
