// Package rules holds the pure football rules shared by the resolution core
// and the game-flow engine: timekeeping, spotting and penalty enforcement.
package rules

import (
	"github.com/vovakirdan/gridiron/internal/config"
	"github.com/vovakirdan/gridiron/internal/game"
	"github.com/vovakirdan/gridiron/internal/outcome"
)

// Clock converts play results into seconds off the game clock.
type Clock struct {
	cfg config.ClockConfig
}

// NewClock creates a clock from configuration.
func NewClock(cfg config.ClockConfig) Clock {
	return Clock{cfg: cfg}
}

// DefaultClock uses the default timing table.
func DefaultClock() Clock {
	return NewClock(config.DefaultRules().Clock)
}

// QuarterSeconds is the length of a regulation quarter.
func (c Clock) QuarterSeconds() int { return c.cfg.QuarterSeconds }

// TwoMinuteMark is the warning threshold in seconds.
func (c Clock) TwoMinuteMark() int { return c.cfg.TwoMinuteMark }

// KickTime is the cost of a kickoff, punt or field-goal attempt.
func (c Clock) KickTime() int { return c.cfg.Kick }

// ExtraPointTime is the cost of a try.
func (c Clock) ExtraPointTime() int { return c.cfg.ExtraPoint }

// TimeOff returns the base deduction for a scrimmage outcome.
func (c Clock) TimeOff(o outcome.Outcome) int {
	if o.OutOfBounds {
		return c.cfg.OutOfBounds
	}
	switch r := o.Result.(type) {
	case outcome.Gain:
		if r.Yards > c.cfg.LongGainYards {
			return c.cfg.LongGain
		}
		return c.cfg.ShortPlay
	case outcome.Loss:
		return c.cfg.ShortPlay
	case outcome.Incomplete:
		return c.cfg.Incomplete
	case outcome.Interception:
		return c.cfg.Interception
	case outcome.Fumble:
		return c.cfg.Fumble
	case outcome.Penalty:
		return c.cfg.Penalty
	default:
		return c.cfg.ShortPlay
	}
}

// TimeOffWithTwoMinute stops the clock for incompletions, plays out of bounds
// and first-down conversions inside the two-minute mark.
func (c Clock) TimeOffWithTwoMinute(o outcome.Outcome, inTwoMinute, wasFirstDown bool) int {
	if inTwoMinute {
		if o.Category() == outcome.CategoryIncomplete || o.OutOfBounds || wasFirstDown {
			return 0
		}
	}
	return c.TimeOff(o)
}

// halfEnding reports whether the quarter closes a half.
func halfEnding(quarter int) bool {
	return quarter == 2 || quarter == 4
}

// InTwoMinute reports whether the state is inside the last two minutes of a half.
func (c Clock) InTwoMinute(s game.State) bool {
	return halfEnding(s.Quarter) && s.Clock <= c.cfg.TwoMinuteMark
}

// Run deducts secs from the clock. When the deduction would carry a half-ending
// quarter from above the two-minute mark to at or below it, the clock stops at
// the mark and warning is true.
func (c Clock) Run(s game.State, secs int) (next game.State, warning bool) {
	if secs < 0 {
		secs = 0
	}
	mark := c.cfg.TwoMinuteMark
	after := s.Clock - secs
	if halfEnding(s.Quarter) && s.Clock > mark && after <= mark {
		s.Clock = mark
		return s, true
	}
	if after < 0 {
		after = 0
	}
	s.Clock = after
	return s, false
}
