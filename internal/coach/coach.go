// Package coach implements the computer play-callers. Each style is a preset
// of the same heuristics and registers itself with the coach registry.
package coach

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/gridiron/internal/charts"
	"github.com/vovakirdan/gridiron/internal/config"
	"github.com/vovakirdan/gridiron/internal/dice"
	"github.com/vovakirdan/gridiron/internal/flow"
	"github.com/vovakirdan/gridiron/internal/game"
	"github.com/vovakirdan/gridiron/internal/registry"
	"github.com/vovakirdan/gridiron/internal/specialteams"
)

// ErrNoValidPlays means the coach's deck offers nothing to call. It aborts the game.
var ErrNoValidPlays = errors.New("coach: no valid plays available")

var titles = map[config.Style]string{
	config.StyleBalanced:     "Balanced",
	config.StyleConservative: "Conservative (kicks early, runs more)",
	config.StyleAggressive:   "Aggressive (goes for it, throws more)",
}

func init() {
	for _, style := range config.Styles {
		registry.Register(string(style), func(s registry.Setup) registry.Coach {
			return New(style, s)
		})
	}
}

// Coach calls plays for one team.
type Coach struct {
	flow.DefaultPolicy

	style  config.Style
	cfg    config.CoachConfig
	teams  specialteams.Unit
	tables *charts.Tables
	deck   string
	stream *dice.Stream
}

// New creates a coach with a style applied over the setup's coach config.
// Missing setup fields fall back to the defaults.
func New(style config.Style, setup registry.Setup) *Coach {
	rules := setup.Rules
	if rules.Clock.QuarterSeconds == 0 {
		rules = config.DefaultRules()
	}
	cfg := rules.Coach
	config.ApplyStyle(&cfg, style)

	deck := setup.Deck
	if deck == "" {
		deck = charts.DeckProStyle
	}
	stream := setup.Stream
	if stream == nil {
		stream = dice.New(1)
	}
	return &Coach{
		DefaultPolicy: flow.NewDefaultPolicy(rules),
		style:         style,
		cfg:           cfg,
		teams:         specialteams.New(rules),
		tables:        setup.Tables,
		deck:          deck,
		stream:        stream,
	}
}

// ID implements registry.Coach.
func (c *Coach) ID() string { return string(c.style) }

// Title implements registry.Coach.
func (c *Coach) Title() string {
	if t, ok := titles[c.style]; ok {
		return t
	}
	return string(c.style)
}

// Deck returns the deck the coach calls from.
func (c *Coach) Deck() string { return c.deck }

// Config returns the tuning in effect after the style was applied.
func (c *Coach) Config() config.CoachConfig { return c.cfg }

// ChooseOffense implements registry.Coach.
func (c *Coach) ChooseOffense(s game.State) (flow.PlayInput, error) {
	plays := c.tables.Plays(c.deck)
	if len(plays) == 0 {
		return flow.PlayInput{}, fmt.Errorf("%w: deck %q", ErrNoValidPlays, c.deck)
	}
	if s.Down == 4 {
		if call := c.FourthDown(s); call != flow.CallPlay {
			return flow.PlayInput{Call: call, Deck: c.deck}, nil
		}
	}
	return flow.PlayInput{Call: flow.CallPlay, Deck: c.deck, Play: c.pickPlay(s, plays)}, nil
}

// FourthDown decides between going for it, kicking a field goal and punting.
func (c *Coach) FourthDown(s game.State) flow.Call {
	distance := c.teams.FieldGoalDistance(s.BallOn, s.Possession)
	inRange := distance <= c.cfg.MaxFieldGoal
	margin := s.Score.Margin(s.Possession)

	switch {
	case s.Quarter > 4 && inRange:
		return flow.CallFieldGoal
	case c.late(s) && margin < 0:
		if inRange && -margin <= flow.FieldGoalPoints {
			return flow.CallFieldGoal
		}
		return flow.CallPlay
	case s.ToGo <= c.cfg.GoForItToGo && s.YardsToGoal() <= c.cfg.GoForItInside:
		return flow.CallPlay
	case inRange:
		return flow.CallFieldGoal
	default:
		return flow.CallPunt
	}
}

// late is the end-of-game window in which the coach gambles.
func (c *Coach) late(s game.State) bool {
	return s.Quarter == 4 && s.Clock <= c.cfg.OnsideClock
}

// pickPlay chooses a run or a pass by the situation, then a play of that kind.
func (c *Coach) pickPlay(s game.State, plays []string) string {
	bias := c.cfg.PassBias
	switch {
	case s.ToGo >= 8:
		bias += 0.2
	case s.ToGo <= 2:
		bias -= 0.25
	}
	if c.late(s) && s.Score.Margin(s.Possession) < 0 {
		bias += 0.2
	}
	bias = min(0.95, max(0.05, bias))

	want := charts.KindRun
	if c.stream.Chance(bias) {
		want = charts.KindPass
	}
	var pool []string
	for _, p := range plays {
		if c.tables.Kind(p) == want {
			pool = append(pool, p)
		}
	}
	if len(pool) == 0 {
		pool = plays
	}
	return pool[c.stream.Roll(len(pool))-1]
}

// ChooseDefense implements registry.Coach. Short yardage draws the heavy
// fronts, long yardage the coverage shells, anything else is a random call.
func (c *Coach) ChooseDefense(s game.State) string {
	var pool []charts.Defense
	switch {
	case s.ToGo <= 2 || s.YardsToGoal() <= 3:
		pool = charts.Defenses[0:4] // goal line .. running
	case s.ToGo >= 8:
		pool = charts.Defenses[4:10] // run & pass .. prevent deep
	default:
		pool = charts.Defenses
	}
	return pool[c.stream.Roll(len(pool))-1].Label
}

// ChooseKickoff kicks onside late in the game when trailing by the configured deficit.
func (c *Coach) ChooseKickoff(ctx flow.Context) specialteams.KickoffKind {
	if c.late(ctx.State) && -ctx.State.Score.Margin(ctx.Side) >= c.cfg.OnsideTrailing {
		return specialteams.KickOnside
	}
	return specialteams.KickNormal
}

// ChooseSafetyFreeKick punts from the 20 when configured to.
func (c *Coach) ChooseSafetyFreeKick(flow.Context) flow.FreeKick {
	if c.cfg.SafetyPunt {
		return flow.FreeKickPunt
	}
	return flow.FreeKickKickoff
}
