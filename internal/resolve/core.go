// Package resolve turns one offensive call against one defensive call into
// the next game state.
package resolve

import (
	"github.com/vovakirdan/gridiron/internal/charts"
	"github.com/vovakirdan/gridiron/internal/dice"
	"github.com/vovakirdan/gridiron/internal/game"
	"github.com/vovakirdan/gridiron/internal/outcome"
	"github.com/vovakirdan/gridiron/internal/rules"
)

// Points awarded by the core.
const (
	TouchdownPoints = 6
	SafetyPoints    = 2
)

// Input is one snap.
type Input struct {
	State   game.State
	Tables  *charts.Tables
	Deck    string
	Play    string
	Defense string
	Stream  *dice.Stream
	Clock   rules.Clock
	// LongGain overrides the long-gain table; nil uses outcome.ResolveLongGain.
	LongGain outcome.LongGainFunc
}

// Result is the resolved snap.
type Result struct {
	State   game.State
	Outcome outcome.Outcome
	// Penalty is set when the cell was a flag; State is then the
	// administrator's suggested choice and no clock or scoring logic ran.
	Penalty *rules.PenaltyResult

	Touchdown         bool
	Safety            bool
	PossessionChanged bool
	FirstDown         bool
	// Missing is true when the chart had no cell for the call.
	Missing bool
	// TimeOff is the base deduction applied to the clock.
	TimeOff int
}

// Core resolves a snap. It is pure apart from draws taken from in.Stream.
func Core(in Input) Result {
	pre := in.State
	raw := in.Tables.Lookup(in.Deck, in.Play, in.Defense)
	o := outcome.Parse(raw, in.LongGain, in.Stream)
	res := Result{Outcome: o, Missing: raw == nil}

	if _, ok := o.Penalty(); ok {
		pr := rules.AdministerPenalty(rules.PenaltyInput{Pre: pre, Post: pre, Outcome: o}, in.Clock)
		res.Penalty = &pr
		if pr.Hint == rules.HintAccept {
			res.State = pr.Accepted
		} else {
			res.State = pr.Declined
		}
		return res
	}

	next := pre
	next.UntimedDown = false
	offense := pre.Possession

	switch r := o.Result.(type) {
	case outcome.Interception:
		next = next.ChangePossession()
		res.PossessionChanged = true
		spot := game.Advance(pre.BallOn, r.Return, next.Possession)
		// Returns never score: a return ending in either end zone is a touchback.
		if rules.IsInEndZone(spot) || rules.IsThroughEndZone(spot) {
			next.BallOn = rules.TouchbackSpot(next.Possession)
		} else {
			next.BallOn = spot
		}

	case outcome.Fumble:
		next = next.ChangePossession()
		res.PossessionChanged = true

	default:
		yards := o.Yards()
		spot := game.Advance(pre.BallOn, yards, offense)
		next.BallOn = game.Clamp(spot, 0, 100)

		switch {
		case rules.ReachedGoal(spot, offense):
			res.Touchdown = true
		case rules.ReachedOwnGoal(spot, offense):
			res.Safety = true
		case o.Category() == outcome.CategoryIncomplete:
			next.Down = min(4, pre.Down+1)
		case yards > 0 && yards >= pre.ToGo:
			next = next.FirstDown()
			res.FirstDown = true
		default:
			next.Down = min(4, pre.Down+1)
			// Lost yardage leaves the distance unchanged.
			next.ToGo = max(1, pre.ToGo-max(0, yards))
		}
	}

	res.TimeOff = in.Clock.TimeOff(o)
	next.Clock = max(0, pre.Clock-res.TimeOff)

	switch {
	case res.Touchdown:
		next.Score = next.Score.Add(next.Possession, TouchdownPoints)
	case res.Safety:
		next.Score = next.Score.Add(offense.Other(), SafetyPoints)
	}

	res.State = next
	return res
}
