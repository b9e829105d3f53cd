package flow

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/gridiron/internal/game"
	"github.com/vovakirdan/gridiron/internal/outcome"
	"github.com/vovakirdan/gridiron/internal/specialteams"
)

func periodName(q int) string {
	if q > 4 {
		return "overtime"
	}
	return game.Ordinal(q) + " quarter"
}

func scoreLine(sc game.Score) string {
	return fmt.Sprintf("Home %d, Away %d.", sc.Home, sc.Away)
}

func narrateSnap(ev SnapEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s runs %s vs %s: ", ev.Offense, ev.Play, ev.Defense)

	switch r := ev.Outcome.Result.(type) {
	case outcome.Gain:
		if r.Yards == 0 {
			b.WriteString("no gain")
		} else {
			fmt.Fprintf(&b, "gain of %d", r.Yards)
		}
	case outcome.Loss:
		fmt.Fprintf(&b, "loss of %d", -r.Yards)
	case outcome.Incomplete:
		b.WriteString("incomplete")
	case outcome.Fumble:
		b.WriteString("fumble, recovered by the defense")
	case outcome.Interception:
		fmt.Fprintf(&b, "intercepted, returned %d", r.Return)
	case outcome.Penalty:
		fmt.Fprintf(&b, "flag on the %s, %d yards", r.On, r.Yards)
	default:
		b.WriteString("no play")
	}
	if ev.Outcome.OutOfBounds {
		b.WriteString(", out of bounds")
	}
	if ev.Outcome.Category() != outcome.CategoryPenalty {
		fmt.Fprintf(&b, ". %s & %d at %s", game.Ordinal(ev.After.Down), ev.After.ToGo, game.FieldPosition(ev.After.BallOn))
	}
	return b.String()
}

func narratePenalty(p PendingPenalty, d Decision) string {
	meta := p.Result.Meta
	verdict := "accepted"
	if d == Decline {
		verdict = "declined"
	}
	s := fmt.Sprintf("Penalty on %s, %d yards, %s.", meta.On, meta.Yards, verdict)
	if d == Accept {
		if meta.HalfDistanceCapped {
			s += " Half the distance to the goal."
		}
		if meta.AutomaticFirstDown {
			s += " Automatic first down."
		}
	}
	return s
}

func narrateTurnover(from, to game.Side, kind TurnoverKind) string {
	if kind == TurnoverOnDowns {
		return fmt.Sprintf("%s turns it over on downs.", from)
	}
	return fmt.Sprintf("Turnover: %s takes it away from %s (%s).", to, from, kind)
}

func narrateKickoff(ev KickoffEvent) string {
	r := ev.Result
	switch {
	case r.Kind == specialteams.KickOnside && r.Recovered:
		return fmt.Sprintf("%s recovers its onside kick at %s.", ev.Kicker, game.FieldPosition(r.BallOn))
	case r.Kind == specialteams.KickOnside:
		return fmt.Sprintf("Onside kick fails; %s takes over at %s.", r.Possession, game.FieldPosition(r.BallOn))
	case r.Recovered:
		return fmt.Sprintf("Muffed kickoff! %s recovers at %s.", ev.Kicker, game.FieldPosition(r.BallOn))
	case r.Touchback:
		return fmt.Sprintf("%s kicks off. Touchback, %s ball at %s.", ev.Kicker, r.Possession, game.FieldPosition(r.BallOn))
	default:
		return fmt.Sprintf("%s kicks off. Returned to %s.", ev.Kicker, game.FieldPosition(r.BallOn))
	}
}

func narratePunt(ev PuntEvent) string {
	r := ev.Result
	head := fmt.Sprintf("%s punts %d yards", ev.Kicker, r.Distance)
	switch {
	case r.Touchback:
		return head + ". Touchback."
	case r.FairCatch:
		return fmt.Sprintf("%s. Fair catch at %s.", head, game.FieldPosition(r.BallOn))
	case r.Fumble && r.Recovered:
		return fmt.Sprintf("%s. Muffed, %s recovers at %s.", head, ev.Kicker, game.FieldPosition(r.BallOn))
	case r.Fumble:
		return fmt.Sprintf("%s. Muffed, but %s falls on it at %s.", head, r.Possession, game.FieldPosition(r.BallOn))
	case r.Touchdown:
		return fmt.Sprintf("%s. Returned all the way!", head)
	default:
		return fmt.Sprintf("%s. Returned %d to %s.", head, r.Return, game.FieldPosition(r.BallOn))
	}
}

func narrateFieldGoal(ev FieldGoalEvent) string {
	r := ev.Result
	verdict := "no good"
	if r.Good {
		verdict = "good"
	}
	return fmt.Sprintf("%s %d-yard field goal attempt is %s.", ev.Kicker, r.Distance, verdict)
}

func narrateTry(ev TryEvent) string {
	what := "Extra point"
	if ev.TwoPoint {
		what = "Two-point try"
	}
	if ev.Good {
		return what + " is good."
	}
	return what + " fails."
}

func narrateScore(ev ScoreEvent) string {
	return fmt.Sprintf("%s %s! %s", strings.ToUpper(ev.Kind.String()), ev.Side, scoreLine(ev.Score))
}

func narrateFinal(ev FinalEvent) string {
	if ev.Tie {
		return "Final: tie game. " + scoreLine(ev.Score)
	}
	return fmt.Sprintf("Final: %s wins. %s", ev.Winner, scoreLine(ev.Score))
}
