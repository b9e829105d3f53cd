package rules

import (
	"strings"

	"github.com/vovakirdan/gridiron/internal/game"
	"github.com/vovakirdan/gridiron/internal/outcome"
)

// Hint is the administrator's advisory accept/decline suggestion, from the
// point of view of the team that gets to choose.
type Hint int

const (
	HintNeutral Hint = iota
	HintAccept
	HintDecline
)

// String returns the hint name.
func (h Hint) String() string {
	switch h {
	case HintAccept:
		return "accept"
	case HintDecline:
		return "decline"
	default:
		return "neutral"
	}
}

// hintMargin is how much better one option must score to be suggested.
const hintMargin = 0.5

// downValue rewards a better down in the decision hint.
var downValue = [5]float64{0, 5, 2, 0, -3}

// PenaltyInput is everything the administrator needs.
type PenaltyInput struct {
	Pre          game.State
	Post         game.State // unused when the flag short-circuits the play
	Outcome      outcome.Outcome
	InTwoMinute  bool
	WasFirstDown bool
}

// PenaltyMeta records how the penalty was enforced.
type PenaltyMeta struct {
	On                   outcome.Against
	Yards                int // yards actually applied
	AutomaticFirstDown   bool
	HalfDistanceCapped   bool
	MeasuredFromMidfield bool
	SpotBasis            int
	UntimedDownScheduled bool
	TwoMinuteWarning     bool
}

// PenaltyResult holds both complete outcomes of a flag.
type PenaltyResult struct {
	Accepted game.State
	Declined game.State
	Hint     Hint
	Meta     PenaltyMeta
}

// Decider returns the side choosing whether to accept: the team the flag
// was not called on.
func (r PenaltyResult) Decider(offense game.Side) game.Side {
	if r.Meta.On == outcome.AgainstDefense {
		return offense
	}
	return offense.Other()
}

// AdministerPenalty enforces a flag both ways. Inputs are never modified.
// An outcome that is not a penalty yields the pre-play state for both choices.
func AdministerPenalty(in PenaltyInput, clock Clock) PenaltyResult {
	pre := in.Pre
	p, ok := in.Outcome.Penalty()
	if !ok {
		return PenaltyResult{Accepted: pre, Declined: pre, Meta: PenaltyMeta{SpotBasis: pre.BallOn}}
	}

	offense := pre.Possession
	meta := PenaltyMeta{On: p.On, SpotBasis: pre.BallOn}

	if p.On == outcome.AgainstDefense && strings.Contains(in.Outcome.Raw, "LG") {
		meta.SpotBasis = game.Midfield
		meta.MeasuredFromMidfield = true
	}

	// Half the distance to the goal the ball is marched toward.
	var toGoal, dir int
	if p.On == outcome.AgainstDefense {
		toGoal = game.YardsToGoal(meta.SpotBasis, offense)
		dir = 1
	} else {
		toGoal = 100 - game.YardsToGoal(meta.SpotBasis, offense)
		dir = -1
	}
	applied := p.Yards
	if limit := toGoal / 2; applied > limit {
		applied = limit
		meta.HalfDistanceCapped = true
	}
	meta.Yards = applied

	accepted := pre
	accepted.BallOn = game.Clamp(game.Advance(meta.SpotBasis, dir*applied, offense), 0, 100)
	accepted.ToGo = max(1, min(game.FirstDownYards, game.YardsToGoal(accepted.BallOn, offense)))
	if p.On == outcome.AgainstDefense && p.FirstDown {
		accepted.Down = 1
		meta.AutomaticFirstDown = true
	}

	secs := clock.TimeOffWithTwoMinute(in.Outcome, in.InTwoMinute, in.WasFirstDown)

	if p.On == outcome.AgainstDefense && pre.Quarter <= 4 && pre.Clock-secs <= 0 {
		accepted.Clock = 0
		accepted.UntimedDown = true
		meta.UntimedDownScheduled = true
	} else {
		accepted, meta.TwoMinuteWarning = clock.Run(accepted, secs)
		accepted.UntimedDown = false
	}

	declined := pre
	declined.Down = min(4, pre.Down+1)
	declined.UntimedDown = false
	declined, warn := clock.Run(declined, secs)
	meta.TwoMinuteWarning = meta.TwoMinuteWarning || warn

	return PenaltyResult{
		Accepted: accepted,
		Declined: declined,
		Hint:     hint(pre, accepted, declined, p.On),
		Meta:     meta,
	}
}

// value scores a state for the offense relative to the pre-play spot.
func value(pre, s game.State) float64 {
	offense := pre.Possession
	gained := float64(game.YardsToGoal(pre.BallOn, offense) - game.YardsToGoal(s.BallOn, offense))
	down := 0.0
	if s.Down >= 1 && s.Down <= 4 {
		down = downValue[s.Down]
	}
	distance := 0.2 * float64(game.FirstDownYards-min(s.ToGo, game.FirstDownYards))
	return gained + down + distance
}

func hint(pre, accepted, declined game.State, on outcome.Against) Hint {
	diff := value(pre, accepted) - value(pre, declined)
	if on == outcome.AgainstOffense {
		// The defense decides; what is good for the offense is bad for them.
		diff = -diff
	}
	switch {
	case diff > hintMargin:
		return HintAccept
	case diff < -hintMargin:
		return HintDecline
	default:
		return HintNeutral
	}
}
