package specialteams

import (
	"github.com/vovakirdan/gridiron/internal/dice"
	"github.com/vovakirdan/gridiron/internal/game"
	"github.com/vovakirdan/gridiron/internal/rules"
)

// KickResult is a field goal or try attempt.
type KickResult struct {
	Good     bool
	Distance int // field goals only
	Need     int // 2d6 total required, field goals only
	// MissSpot is where the defense takes over after a missed field goal.
	MissSpot int
	Dice     []int
}

// FieldGoalDistance is the attempt length from a line of scrimmage.
func (u Unit) FieldGoalDistance(los int, kicker game.Side) int {
	return game.YardsToGoal(los, kicker) + u.placekick.SnapDistance
}

// FieldGoalNeed returns the 2d6 total required at a distance. Attempts past the
// table need 13 and cannot succeed.
func (u Unit) FieldGoalNeed(distance int) int {
	for _, band := range u.placekick.FieldGoal {
		if distance <= band.MaxYards {
			return band.Need
		}
	}
	return 13
}

// FieldGoal resolves an attempt. Long attempts are allowed and simply fail
// more often.
func (u Unit) FieldGoal(kicker game.Side, los int, s *dice.Stream) KickResult {
	dist := u.FieldGoalDistance(los, kicker)
	need := u.FieldGoalNeed(dist)
	a, b := s.Roll2D6()
	res := KickResult{
		Good:     a+b >= need,
		Distance: dist,
		Need:     need,
		Dice:     []int{a, b},
	}
	if !res.Good {
		res.MissSpot = rules.MissedFieldGoalSpot(los, kicker, u.placekick.HoldDepth)
	}
	return res
}

// ExtraPoint resolves a one-point kick.
func (u Unit) ExtraPoint(s *dice.Stream) KickResult {
	return u.try(u.placekick.ExtraPoint, s)
}

// TwoPoint resolves a two-point conversion.
func (u Unit) TwoPoint(s *dice.Stream) KickResult {
	return u.try(u.placekick.TwoPoint, s)
}

func (u Unit) try(odds float64, s *dice.Stream) KickResult {
	draw := s.Float64()
	return KickResult{Good: draw < odds, Dice: []int{int(draw*100) + 1}}
}

// ShouldGoForTwo is the default try decision: go for two only when trailing by
// a small margin late in the fourth quarter. margin is the scoring team's lead
// after the touchdown.
func (u Unit) ShouldGoForTwo(margin, quarter, clock int) bool {
	if quarter != 4 || clock > u.placekick.TwoPointClock {
		return false
	}
	return margin < 0 && -margin <= u.placekick.TwoPointLateBy
}
