package flow

import (
	"fmt"

	"github.com/vovakirdan/gridiron/internal/dice"
	"github.com/vovakirdan/gridiron/internal/game"
	"github.com/vovakirdan/gridiron/internal/outcome"
	"github.com/vovakirdan/gridiron/internal/resolve"
	"github.com/vovakirdan/gridiron/internal/specialteams"
	"github.com/vovakirdan/gridiron/internal/telemetry"
)

// FieldGoalPoints is the value of a made field goal.
const FieldGoalPoints = 3

type kickMode int

const (
	kickAfterScore  kickMode = iota
	kickPeriodStart          // opening, second half and overtime: no time runs
	kickSafety
)

func (e *Engine) kickoff(s game.State, kicker game.Side, mode kickMode, b *builder) game.State {
	ctx := Context{State: s, Side: kicker}
	req := specialteams.KickoffRequest{Kicker: kicker, Margin: s.Score.Margin(kicker)}
	if mode == kickSafety {
		if e.policy(kicker).ChooseSafetyFreeKick(ctx) == FreeKickPunt {
			los := game.OwnYardLine(kicker, e.cfg.Punt.FreeKickFrom)
			s.Possession = kicker
			s.BallOn = los
			return e.punt(s, kicker, b)
		}
		req.From = e.cfg.Kickoff.SafetyKickFrom
	} else {
		req.Kind = e.policy(kicker).ChooseKickoff(ctx)
	}

	res := e.teams.Kickoff(req, e.stream)
	e.recordDice(s, kicker, "kickoff", res.Dice)

	next := s
	next.Possession = res.Possession
	next.BallOn = res.BallOn
	next.AwaitingPAT = false
	next.UntimedDown = false
	next = next.FirstDown()

	ev := KickoffEvent{Kicker: kicker, Result: res}
	b.emit(ev)
	b.say(func() string { return narrateKickoff(ev) })

	if mode != kickPeriodStart {
		next = e.runClock(next, e.clock.KickTime(), b)
	}
	return next
}

// punt kicks from s.BallOn. A return touchdown continues into the try.
func (e *Engine) punt(s game.State, kicker game.Side, b *builder) game.State {
	res := e.teams.Punt(kicker, s.BallOn, e.stream)
	e.recordDice(s, kicker, "punt", res.Dice)

	next := s
	next.Possession = res.Possession
	next.BallOn = res.BallOn
	next.UntimedDown = false
	next = next.FirstDown()

	ev := PuntEvent{Kicker: kicker, Result: res}
	b.emit(ev)
	b.say(func() string { return narratePunt(ev) })
	next = e.runClock(next, e.clock.KickTime(), b)

	if res.Touchdown {
		next.Score = next.Score.Add(res.Possession, resolve.TouchdownPoints)
		next = e.touchdown(next, res.Possession, b)
	}
	e.recordDelta(s, next)
	return next
}

func (e *Engine) fieldGoal(s game.State, b *builder) game.State {
	kicker := s.Possession
	res := e.teams.FieldGoal(kicker, s.BallOn, e.stream)
	e.recordDice(s, kicker, "field goal", res.Dice)

	ev := FieldGoalEvent{Kicker: kicker, Result: res}
	b.emit(ev)
	b.say(func() string { return narrateFieldGoal(ev) })

	next := s
	next.UntimedDown = false
	next = e.runClock(next, e.clock.KickTime(), b)

	if !res.Good {
		next.Possession = kicker.Other()
		next.BallOn = res.MissSpot
		next = next.FirstDown()
		e.recordDelta(s, next)
		return next
	}

	next.Score = next.Score.Add(kicker, FieldGoalPoints)
	e.scored(next, kicker, ScoreFieldGoal, FieldGoalPoints, b)
	e.recordDelta(s, next)
	if next.Quarter > 4 {
		return e.final(next, b)
	}
	if halfOver(next) {
		return next
	}
	return e.kickoff(next, kicker, kickAfterScore, b)
}

// touchdown runs the try and the ensuing kickoff. The six points are
// already on the board.
func (e *Engine) touchdown(s game.State, scorer game.Side, b *builder) game.State {
	s.AwaitingPAT = true
	e.scored(s, scorer, ScoreTouchdown, resolve.TouchdownPoints, b)
	if s.Quarter > 4 {
		return e.final(s, b)
	}
	b.emit(HUDEvent{State: s})

	s = e.try(s, scorer, b)
	s.AwaitingPAT = false
	if halfOver(s) {
		return s
	}
	return e.kickoff(s, scorer, kickAfterScore, b)
}

func (e *Engine) try(s game.State, scorer game.Side, b *builder) game.State {
	two := e.policy(scorer).ChoosePAT(Context{State: s, Side: scorer}) == TryTwo

	var res specialteams.KickResult
	points, kind := 1, ScoreExtraPoint
	if two {
		res = e.teams.TwoPoint(e.stream)
		points, kind = 2, ScoreTwoPoint
	} else {
		res = e.teams.ExtraPoint(e.stream)
	}
	e.recordDice(s, scorer, kind.String(), res.Dice)

	ev := TryEvent{Side: scorer, TwoPoint: two, Good: res.Good}
	b.emit(ev)
	b.say(func() string { return narrateTry(ev) })
	if res.Good {
		s.Score = s.Score.Add(scorer, points)
		e.scored(s, scorer, kind, points, b)
	}
	return e.runClock(s, e.clock.ExtraPointTime(), b)
}

// safety credits the defense and has the conceding team free kick.
func (e *Engine) safety(s game.State, b *builder) game.State {
	conceding := s.Possession
	e.scored(s, conceding.Other(), ScoreSafety, resolve.SafetyPoints, b)
	if s.Quarter > 4 {
		return e.final(s, b)
	}
	if halfOver(s) {
		return s
	}
	return e.kickoff(s, conceding, kickSafety, b)
}

// halfOver reports whether time ran out at the end of a half, in which case
// no kickoff follows a score.
func halfOver(s game.State) bool {
	return s.Clock <= 0 && !s.UntimedDown && (s.Quarter == 2 || s.Quarter == 4)
}

// settle handles expired periods until play can continue or the game ends.
func (e *Engine) settle(s game.State, b *builder) game.State {
	for !s.GameOver && s.Clock <= 0 && !s.UntimedDown {
		s = e.endOfPeriod(s, b)
	}
	return s
}

func (e *Engine) endOfPeriod(s game.State, b *builder) game.State {
	q := s.Quarter
	b.emit(EndOfQuarterEvent{Quarter: q})
	b.say(func() string { return fmt.Sprintf("End of the %s. %s", periodName(q), scoreLine(s.Score)) })

	switch {
	case q == 1 || q == 3:
		s.Quarter++
		s.Clock = e.clock.QuarterSeconds()
		return s

	case q == 2:
		b.emit(HalftimeEvent{Score: s.Score})
		b.say(func() string { return "Halftime." })
		s.Quarter = 3
		s.Clock = e.clock.QuarterSeconds()
		return e.kickoff(s, s.OpeningKicker.Other(), kickPeriodStart, b)

	case q == 4 && s.Score.Home == s.Score.Away && e.cfg.Overtime.Enabled:
		s.Quarter = 5
		s.Clock = e.cfg.Overtime.Seconds
		b.emit(OvertimeEvent{Period: 1})
		kicker := game.Home
		if e.stream.Float64() >= 0.5 {
			kicker = game.Away
		}
		b.say(func() string { return fmt.Sprintf("Overtime. Next score wins. %s kicks off.", kicker) })
		return e.kickoff(s, kicker, kickPeriodStart, b)

	default:
		return e.final(s, b)
	}
}

func (e *Engine) final(s game.State, b *builder) game.State {
	s.GameOver = true
	s.AwaitingPAT = false
	s.UntimedDown = false

	ev := FinalEvent{Score: s.Score, Tie: s.Score.Home == s.Score.Away}
	if s.Score.Away > s.Score.Home {
		ev.Winner = game.Away
	}
	b.emit(ev)
	b.say(func() string { return narrateFinal(ev) })
	return s
}

// scored emits the score event for points already added to s.
func (e *Engine) scored(s game.State, side game.Side, kind ScoreKind, points int, b *builder) {
	ev := ScoreEvent{Side: side, Kind: kind, Points: points, Score: s.Score, Quarter: s.Quarter, Clock: s.Clock}
	b.emit(ev)
	b.say(func() string { return narrateScore(ev) })
	e.record(telemetry.Record{
		Kind:    telemetry.KindScore,
		Quarter: s.Quarter,
		Clock:   s.Clock,
		Side:    side.String(),
		Detail:  kind.String(),
		Points:  points,
	})
}

func (e *Engine) record(r telemetry.Record) {
	e.seq++
	r.GameID = e.gameID
	r.Seq = e.seq
	e.hook.Record(r)
}

func (e *Engine) recordDice(s game.State, side game.Side, detail string, rolls []int) {
	if len(rolls) == 0 {
		return
	}
	e.record(telemetry.Record{
		Kind:    telemetry.KindDice,
		Quarter: s.Quarter,
		Clock:   s.Clock,
		Side:    side.String(),
		Detail:  detail,
		Dice:    append([]int(nil), rolls...),
	})
}

func (e *Engine) recordOutcome(s game.State, o outcome.Outcome) {
	e.recordDice(s, s.Possession, "chart", o.Dice)
	e.record(telemetry.Record{
		Kind:    telemetry.KindOutcome,
		Quarter: s.Quarter,
		Clock:   s.Clock,
		Side:    s.Possession.String(),
		Detail:  o.String(),
	})
}

func (e *Engine) recordDelta(before, after game.State) {
	b, a := before, after
	e.record(telemetry.Record{
		Kind:    telemetry.KindDelta,
		Quarter: after.Quarter,
		Clock:   after.Clock,
		Side:    after.Possession.String(),
		Before:  &b,
		After:   &a,
	})
}

// Stream exposes the engine's dice for callers that must share them, such
// as a coach choosing defenses.
func (e *Engine) Stream() *dice.Stream { return e.stream }
