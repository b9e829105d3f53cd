package flow

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/gridiron/internal/game"
)

// ErrInvariant wraps every consistency violation found by CheckState and CheckStep.
var ErrInvariant = errors.New("flow: invariant violated")

// CheckState validates field geometry, downs and the clock.
func CheckState(s game.State) error {
	switch {
	case s.BallOn < 0 || s.BallOn > 100:
		return fmt.Errorf("%w: ball on %d", ErrInvariant, s.BallOn)
	case s.Down < 1 || s.Down > 4:
		return fmt.Errorf("%w: down %d", ErrInvariant, s.Down)
	case s.ToGo < 1:
		return fmt.Errorf("%w: %d to go", ErrInvariant, s.ToGo)
	case s.Clock < 0:
		return fmt.Errorf("%w: clock %d", ErrInvariant, s.Clock)
	case s.Quarter < 1:
		return fmt.Errorf("%w: quarter %d", ErrInvariant, s.Quarter)
	case s.Score.Home < 0 || s.Score.Away < 0:
		return fmt.Errorf("%w: score %d-%d", ErrInvariant, s.Score.Home, s.Score.Away)
	case s.AwaitingPAT && s.GameOver:
		return fmt.Errorf("%w: try pending after the final", ErrInvariant)
	}
	return nil
}

// CheckStep validates a transition from prev. Scores never decrease, every
// point is announced by a ScoreEvent, and possession only changes alongside
// an event that explains it.
func CheckStep(prev game.State, st Step) error {
	if err := CheckState(st.State); err != nil {
		return err
	}

	next := st.State
	if next.Score.Home < prev.Score.Home || next.Score.Away < prev.Score.Away {
		return fmt.Errorf("%w: score went from %d-%d to %d-%d",
			ErrInvariant, prev.Score.Home, prev.Score.Away, next.Score.Home, next.Score.Away)
	}

	var announced game.Score
	flipped := false
	for _, ev := range st.Events {
		switch ev := ev.(type) {
		case ScoreEvent:
			announced = announced.Add(ev.Side, ev.Points)
		case HUDEvent:
			if err := CheckState(ev.State); err != nil {
				return err
			}
		case TurnoverEvent, KickoffEvent, PuntEvent, FieldGoalEvent:
			flipped = true
		}
	}
	if got := (game.Score{Home: next.Score.Home - prev.Score.Home, Away: next.Score.Away - prev.Score.Away}); got != announced {
		return fmt.Errorf("%w: score changed by %d-%d but events announce %d-%d",
			ErrInvariant, got.Home, got.Away, announced.Home, announced.Away)
	}
	if next.Possession != prev.Possession && !flipped {
		return fmt.Errorf("%w: possession changed without a turnover or kick", ErrInvariant)
	}
	return nil
}
