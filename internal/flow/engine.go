// Package flow sequences snaps into drives, quarters and a finished game.
//
// Every transition takes a state and returns the next state together with
// the ordered events that explain it. The engine owns the dice stream and
// nothing else; states are never mutated in place.
package flow

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gridiron/internal/charts"
	"github.com/vovakirdan/gridiron/internal/config"
	"github.com/vovakirdan/gridiron/internal/dice"
	"github.com/vovakirdan/gridiron/internal/game"
	"github.com/vovakirdan/gridiron/internal/outcome"
	"github.com/vovakirdan/gridiron/internal/resolve"
	"github.com/vovakirdan/gridiron/internal/rules"
	"github.com/vovakirdan/gridiron/internal/specialteams"
	"github.com/vovakirdan/gridiron/internal/telemetry"
)

var (
	// ErrGameOver is returned for any transition on a finished game.
	ErrGameOver = errors.New("flow: game is over")
	// ErrUnknownCall is returned for an offensive call the engine does not know.
	ErrUnknownCall = errors.New("flow: unknown offensive call")
)

// Call is the offense's choice for a snap.
type Call int

const (
	CallPlay Call = iota
	CallPunt
	CallFieldGoal
)

// String returns the call name.
func (c Call) String() string {
	switch c {
	case CallPlay:
		return "play"
	case CallPunt:
		return "punt"
	case CallFieldGoal:
		return "field goal"
	default:
		return fmt.Sprintf("call(%d)", int(c))
	}
}

// PlayInput is one snap's pair of calls.
type PlayInput struct {
	Call    Call
	Deck    string // offense's deck
	Play    string // offense's play label, for CallPlay
	Defense string // defense label or letter
}

// Step is the result of a transition.
type Step struct {
	State  game.State
	Events []Event
}

// Options configures an engine.
type Options struct {
	Rules  config.Rules // zero value uses config.DefaultRules()
	Tables *charts.Tables
	Stream *dice.Stream
	// Policies supplies per-side decisions; missing sides use DefaultPolicy.
	Policies map[game.Side]Policy
	// Humans lists sides whose penalty decisions are made outside the engine.
	Humans   []game.Side
	Hook     telemetry.Hook
	Logger   *log.Logger
	GameID   string
	LongGain outcome.LongGainFunc
}

// Engine runs one game.
type Engine struct {
	cfg      config.Rules
	tables   *charts.Tables
	stream   *dice.Stream
	clock    rules.Clock
	teams    specialteams.Unit
	policies [2]Policy
	humans   [2]bool
	hook     telemetry.Hook
	logger   *log.Logger
	gameID   string
	longGain outcome.LongGainFunc
	seq      uint64
}

// New creates an engine.
func New(opts Options) *Engine {
	cfg := opts.Rules
	if cfg.Clock.QuarterSeconds == 0 {
		cfg = config.DefaultRules()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	stream := opts.Stream
	if stream == nil {
		stream = dice.New(1)
	}

	e := &Engine{
		cfg:      cfg,
		tables:   opts.Tables,
		stream:   stream,
		clock:    rules.NewClock(cfg.Clock),
		teams:    specialteams.New(cfg).WithLongGain(opts.LongGain),
		hook:     telemetry.Safe(opts.Hook, logger),
		logger:   logger,
		gameID:   opts.GameID,
		longGain: opts.LongGain,
	}
	def := NewDefaultPolicy(cfg)
	for _, side := range []game.Side{game.Home, game.Away} {
		e.policies[side] = def
		if p, ok := opts.Policies[side]; ok && p != nil {
			e.policies[side] = p
		}
	}
	for _, side := range opts.Humans {
		e.humans[side] = true
	}
	return e
}

// Rules returns the engine's configuration.
func (e *Engine) Rules() config.Rules { return e.cfg }

// Clock returns the engine's timekeeper.
func (e *Engine) Clock() rules.Clock { return e.clock }

// Teams returns the engine's special-teams resolver.
func (e *Engine) Teams() specialteams.Unit { return e.teams }

// Human reports whether side decides penalties outside the engine.
func (e *Engine) Human(side game.Side) bool { return e.humans[side] }

func (e *Engine) policy(side game.Side) Policy { return e.policies[side] }

// Start creates the game and performs the opening kickoff.
func (e *Engine) Start(openingKicker game.Side) Step {
	s := game.New(openingKicker)
	s.Clock = e.cfg.Clock.QuarterSeconds
	b := e.newBuilder()
	b.say(func() string { return fmt.Sprintf("%s kicks off to open the game.", openingKicker) })
	s = e.kickoff(s, openingKicker, kickPeriodStart, b)
	return b.step(s)
}

// ResolveSnap runs one offensive call. When a penalty must be decided by a
// human side, the returned step carries a ChoiceRequiredEvent and the
// unchanged input state.
func (e *Engine) ResolveSnap(s game.State, in PlayInput) (Step, error) {
	if s.GameOver {
		return Step{State: s}, ErrGameOver
	}
	b := e.newBuilder()
	switch in.Call {
	case CallPlay:
		return e.scrimmage(s, in, b), nil
	case CallPunt:
		next := e.punt(s, s.Possession, b)
		return b.step(e.settle(next, b)), nil
	case CallFieldGoal:
		next := e.fieldGoal(s, b)
		return b.step(e.settle(next, b)), nil
	default:
		return Step{State: s}, fmt.Errorf("%w: %v", ErrUnknownCall, in.Call)
	}
}

// FinalizePenaltyDecision completes a snap left pending by a ChoiceRequiredEvent.
func (e *Engine) FinalizePenaltyDecision(p PendingPenalty, d Decision) (Step, error) {
	if p.Pre.GameOver {
		return Step{State: p.Pre}, ErrGameOver
	}
	b := e.newBuilder()
	next := e.applyPenalty(p, d, b)
	return b.step(e.settle(next, b)), nil
}

func (e *Engine) scrimmage(s game.State, in PlayInput, b *builder) Step {
	res := resolve.Core(resolve.Input{
		State:    s,
		Tables:   e.tables,
		Deck:     in.Deck,
		Play:     in.Play,
		Defense:  in.Defense,
		Stream:   e.stream,
		Clock:    e.clock,
		LongGain: e.longGain,
	})
	if res.Missing {
		e.logger.Warn("no chart entry, treating as no gain", "deck", in.Deck, "play", in.Play, "defense", in.Defense)
	}
	e.recordOutcome(s, res.Outcome)

	if res.Penalty != nil {
		// The core has no two-minute context; enforce again with it.
		pr := rules.AdministerPenalty(rules.PenaltyInput{
			Pre:         s,
			Post:        s,
			Outcome:     res.Outcome,
			InTwoMinute: e.clock.InTwoMinute(s),
		}, e.clock)
		pending := PendingPenalty{Pre: s, Outcome: res.Outcome, Result: pr}
		decider := pr.Decider(s.Possession)

		snap := SnapEvent{Offense: s.Possession, Play: in.Play, Defense: in.Defense, Outcome: res.Outcome, Before: s, After: s}
		b.emit(snap)
		b.say(func() string { return narrateSnap(snap) })

		if e.humans[decider] {
			b.emit(ChoiceRequiredEvent{Decider: decider, Pending: pending})
			return b.step(s)
		}
		d := e.policy(decider).DecidePenalty(Context{State: s, Side: decider}, pr)
		next := e.applyPenalty(pending, d, b)
		return b.step(e.settle(next, b))
	}

	next := res.State
	next.Clock = s.Clock
	secs := e.clock.TimeOffWithTwoMinute(res.Outcome, e.clock.InTwoMinute(s), res.FirstDown)
	next, warn := e.clock.Run(next, secs)

	snap := SnapEvent{Offense: s.Possession, Play: in.Play, Defense: in.Defense, Outcome: res.Outcome, Before: s, After: next}
	b.emit(snap)
	b.say(func() string { return narrateSnap(snap) })
	if warn {
		e.twoMinuteWarning(next, b)
	}
	e.recordDelta(s, next)

	switch {
	case res.Touchdown:
		next = e.touchdown(next, next.Possession, b)
	case res.Safety:
		next = e.safety(next, b)
	case res.PossessionChanged:
		e.turnover(s.Possession, next.Possession, turnoverKind(res.Outcome), b)
	case s.Down == 4 && !res.FirstDown:
		next = next.ChangePossession()
		e.turnover(s.Possession, next.Possession, TurnoverOnDowns, b)
	}
	return b.step(e.settle(next, b))
}

func turnoverKind(o outcome.Outcome) TurnoverKind {
	if o.Category() == outcome.CategoryInterception {
		return TurnoverInterception
	}
	return TurnoverFumble
}

func (e *Engine) applyPenalty(p PendingPenalty, d Decision, b *builder) game.State {
	pr := p.Result
	chosen := pr.Declined
	if d == Accept {
		chosen = pr.Accepted
	}
	b.say(func() string { return narratePenalty(p, d) })

	if d == Accept && pr.Meta.UntimedDownScheduled {
		b.emit(UntimedDownScheduledEvent{Quarter: chosen.Quarter})
		b.say(func() string { return "The half cannot end on a defensive foul: one untimed down." })
	}
	if crossedTwoMinute(p.Pre, chosen, e.clock) {
		e.twoMinuteWarning(chosen, b)
	}
	e.recordDelta(p.Pre, chosen)

	if d == Decline && p.Pre.Down == 4 {
		chosen = chosen.ChangePossession()
		e.turnover(p.Pre.Possession, chosen.Possession, TurnoverOnDowns, b)
	}
	return chosen
}

func crossedTwoMinute(pre, post game.State, c rules.Clock) bool {
	mark := c.TwoMinuteMark()
	return (pre.Quarter == 2 || pre.Quarter == 4) && pre.Quarter == post.Quarter &&
		pre.Clock > mark && post.Clock == mark
}

func (e *Engine) turnover(from, to game.Side, kind TurnoverKind, b *builder) {
	b.emit(TurnoverEvent{From: from, To: to, Kind: kind})
	b.say(func() string { return narrateTurnover(from, to, kind) })
}

func (e *Engine) twoMinuteWarning(s game.State, b *builder) {
	b.emit(TwoMinuteWarningEvent{Quarter: s.Quarter})
	b.say(func() string { return "Two-minute warning." })
}

// runClock deducts time and emits the warning when the mark is reached.
func (e *Engine) runClock(s game.State, secs int, b *builder) game.State {
	next, warn := e.clock.Run(s, secs)
	if warn {
		e.twoMinuteWarning(next, b)
	}
	return next
}

// builder collects a transition's events.
type builder struct {
	e      *Engine
	events []Event
}

func (e *Engine) newBuilder() *builder {
	return &builder{e: e}
}

func (b *builder) emit(ev Event) {
	b.events = append(b.events, ev)
}

// say adds narration. A narration failure is logged and otherwise ignored.
func (b *builder) say(text func() string) {
	defer func() {
		if p := recover(); p != nil {
			b.e.logger.Debug("narration failed", "panic", p)
		}
	}()
	if t := text(); t != "" {
		b.emit(LogEvent{Text: t})
	}
}

func (b *builder) step(s game.State) Step {
	b.emit(HUDEvent{State: s})
	return Step{State: s, Events: b.events}
}
