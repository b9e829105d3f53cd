package rules

import (
	"testing"

	"github.com/vovakirdan/gridiron/internal/game"
	"github.com/vovakirdan/gridiron/internal/outcome"
)

func flag(raw string) outcome.Outcome {
	return outcome.Parse(&raw, nil, nil)
}

func snapState(side game.Side, ballOn, down, toGo int) game.State {
	return game.State{
		Quarter:    1,
		Clock:      600,
		Down:       down,
		ToGo:       toGo,
		BallOn:     ballOn,
		Possession: side,
	}
}

func TestPenaltyHalfDistanceNearGoal(t *testing.T) {
	pre := snapState(game.Home, 95, 3, 5)
	res := AdministerPenalty(PenaltyInput{Pre: pre, Post: pre, Outcome: flag("PENALTY +10 1st Down")}, DefaultClock())

	if res.Accepted.BallOn != 97 {
		t.Errorf("ballOn = %d, want 97", res.Accepted.BallOn)
	}
	if res.Accepted.Down != 1 || res.Accepted.ToGo != 3 {
		t.Errorf("down/toGo = %d/%d, want 1/3", res.Accepted.Down, res.Accepted.ToGo)
	}
	if !res.Meta.HalfDistanceCapped || !res.Meta.AutomaticFirstDown {
		t.Errorf("meta = %+v, want capped and automatic first down", res.Meta)
	}
	if res.Meta.Yards != 2 {
		t.Errorf("applied yards = %d, want 2", res.Meta.Yards)
	}
	if pre.BallOn != 95 || pre.Down != 3 {
		t.Error("input state was modified")
	}
}

func TestPenaltyMirrorsForAway(t *testing.T) {
	pre := snapState(game.Away, 5, 2, 5)
	res := AdministerPenalty(PenaltyInput{Pre: pre, Outcome: flag("PENALTY +10 1st Down")}, DefaultClock())
	if res.Accepted.BallOn != 3 || res.Accepted.ToGo != 3 || res.Accepted.Down != 1 {
		t.Errorf("accepted = %+v, want ball 3, 1st & 3", res.Accepted)
	}
}

func TestPenaltyOnOffense(t *testing.T) {
	tests := []struct {
		name     string
		pre      game.State
		raw      string
		ballOn   int
		capped   bool
		wantDown int
	}{
		{"full yardage", snapState(game.Home, 40, 2, 7), "PENALTY -10", 30, false, 2},
		{"half distance at own 10", snapState(game.Home, 10, 1, 10), "PENALTY -10", 5, true, 1},
		{"away backs up toward 100", snapState(game.Away, 60, 3, 4), "PENALTY -15", 75, false, 3},
		{"offense flag never grants a first down", snapState(game.Home, 50, 3, 8), "PENALTY -5 1st Down", 45, false, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := AdministerPenalty(PenaltyInput{Pre: tt.pre, Outcome: flag(tt.raw)}, DefaultClock())
			if res.Accepted.BallOn != tt.ballOn {
				t.Errorf("ballOn = %d, want %d", res.Accepted.BallOn, tt.ballOn)
			}
			if res.Meta.HalfDistanceCapped != tt.capped {
				t.Errorf("capped = %v, want %v", res.Meta.HalfDistanceCapped, tt.capped)
			}
			if res.Accepted.Down != tt.wantDown {
				t.Errorf("down = %d, want repeat of %d", res.Accepted.Down, tt.wantDown)
			}
			if res.Meta.AutomaticFirstDown {
				t.Error("automatic first down on an offensive foul")
			}
		})
	}
}

func TestPenaltyRepeatDownResetsDistance(t *testing.T) {
	// A repeated down recomputes the distance as if a new set began.
	pre := snapState(game.Home, 40, 2, 3)
	res := AdministerPenalty(PenaltyInput{Pre: pre, Outcome: flag("PENALTY +5")}, DefaultClock())
	if res.Accepted.Down != 2 || res.Accepted.ToGo != 10 || res.Accepted.BallOn != 45 {
		t.Errorf("accepted = %+v, want 2nd & 10 at 45", res.Accepted)
	}
}

func TestPenaltyLongGainMarchesFromMidfield(t *testing.T) {
	pre := snapState(game.Home, 30, 1, 10)
	res := AdministerPenalty(PenaltyInput{Pre: pre, Outcome: flag("PENALTY +15 LG")}, DefaultClock())
	if !res.Meta.MeasuredFromMidfield || res.Meta.SpotBasis != 50 {
		t.Fatalf("meta = %+v, want midfield basis", res.Meta)
	}
	if res.Accepted.BallOn != 65 {
		t.Errorf("ballOn = %d, want 65", res.Accepted.BallOn)
	}

	// Against the offense the previous spot stays the basis.
	res = AdministerPenalty(PenaltyInput{Pre: pre, Outcome: flag("PENALTY -10 LG")}, DefaultClock())
	if res.Meta.MeasuredFromMidfield || res.Accepted.BallOn != 20 {
		t.Errorf("offense LG flag: meta %+v ballOn %d", res.Meta, res.Accepted.BallOn)
	}
}

func TestPenaltyDeclinedState(t *testing.T) {
	pre := snapState(game.Home, 40, 2, 6)
	res := AdministerPenalty(PenaltyInput{Pre: pre, Outcome: flag("PENALTY -10")}, DefaultClock())
	d := res.Declined
	if d.Down != 3 || d.ToGo != 6 || d.BallOn != 40 {
		t.Errorf("declined = %+v, want 3rd & 6 at 40", d)
	}
	if d.Clock != 585 || res.Accepted.Clock != 585 {
		t.Errorf("clocks = %d/%d, want 585", res.Accepted.Clock, d.Clock)
	}

	pre.Down = 4
	res = AdministerPenalty(PenaltyInput{Pre: pre, Outcome: flag("PENALTY -10")}, DefaultClock())
	if res.Declined.Down != 4 {
		t.Errorf("declined down = %d, want capped at 4", res.Declined.Down)
	}
}

func TestPenaltyUntimedDown(t *testing.T) {
	pre := snapState(game.Home, 60, 2, 10)
	pre.Quarter = 2
	pre.Clock = 10

	res := AdministerPenalty(PenaltyInput{Pre: pre, Outcome: flag("PENALTY +5"), InTwoMinute: true}, DefaultClock())
	if !res.Meta.UntimedDownScheduled || !res.Accepted.UntimedDown {
		t.Fatalf("expected untimed down, meta %+v", res.Meta)
	}
	if res.Accepted.Clock != 0 {
		t.Errorf("clock = %d, want 0", res.Accepted.Clock)
	}
	if res.Declined.UntimedDown || res.Declined.Clock != 0 {
		t.Errorf("declined = %+v, want expired clock and no untimed down", res.Declined)
	}

	res = AdministerPenalty(PenaltyInput{Pre: pre, Outcome: flag("PENALTY -5"), InTwoMinute: true}, DefaultClock())
	if res.Meta.UntimedDownScheduled {
		t.Error("offensive foul must not extend the period")
	}

	pre.Quarter = 5
	res = AdministerPenalty(PenaltyInput{Pre: pre, Outcome: flag("PENALTY +5")}, DefaultClock())
	if res.Meta.UntimedDownScheduled {
		t.Error("no untimed down in overtime")
	}

	pre.Quarter = 2
	pre.Clock = 300
	res = AdministerPenalty(PenaltyInput{Pre: pre, Outcome: flag("PENALTY +5")}, DefaultClock())
	if res.Meta.UntimedDownScheduled || res.Accepted.Clock != 285 {
		t.Errorf("time left: meta %+v clock %d", res.Meta, res.Accepted.Clock)
	}
}

func TestPenaltyTwoMinuteCrossing(t *testing.T) {
	pre := snapState(game.Away, 60, 1, 10)
	pre.Quarter = 4
	pre.Clock = 125
	res := AdministerPenalty(PenaltyInput{Pre: pre, Outcome: flag("PENALTY -5")}, DefaultClock())
	if !res.Meta.TwoMinuteWarning || res.Accepted.Clock != 120 || res.Declined.Clock != 120 {
		t.Errorf("meta %+v clocks %d/%d", res.Meta, res.Accepted.Clock, res.Declined.Clock)
	}
}

func TestPenaltyHint(t *testing.T) {
	tests := []struct {
		name string
		pre  game.State
		raw  string
		want Hint
	}{
		{"offense takes a defensive foul", snapState(game.Home, 30, 1, 10), "PENALTY +5", HintAccept},
		{"defense takes a holding call", snapState(game.Home, 30, 1, 10), "PENALTY -10", HintAccept},
		{"defense declines a no-yard foul", snapState(game.Home, 30, 1, 10), "PENALTY", HintDecline},
		{"close call is neutral", snapState(game.Home, 30, 1, 10), "PENALTY -3", HintNeutral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := AdministerPenalty(PenaltyInput{Pre: tt.pre, Outcome: flag(tt.raw)}, DefaultClock())
			if res.Hint != tt.want {
				t.Errorf("hint = %v, want %v", res.Hint, tt.want)
			}
		})
	}
}

func TestPenaltyDecider(t *testing.T) {
	pre := snapState(game.Home, 30, 1, 10)
	res := AdministerPenalty(PenaltyInput{Pre: pre, Outcome: flag("PENALTY +5")}, DefaultClock())
	if res.Decider(game.Home) != game.Home {
		t.Error("offense decides on a defensive foul")
	}
	res = AdministerPenalty(PenaltyInput{Pre: pre, Outcome: flag("PENALTY -5")}, DefaultClock())
	if res.Decider(game.Home) != game.Away {
		t.Error("defense decides on an offensive foul")
	}
}

func TestAdministerNonPenalty(t *testing.T) {
	pre := snapState(game.Home, 30, 1, 10)
	res := AdministerPenalty(PenaltyInput{Pre: pre, Outcome: flag("+5")}, DefaultClock())
	if res.Accepted != pre || res.Declined != pre || res.Hint != HintNeutral {
		t.Errorf("non-penalty result = %+v", res)
	}
}
