// Package game defines the state record that every rules component consumes
// and produces. States are values: each step returns a new one.
package game

import "fmt"

// Side identifies a team. Home attacks toward 100, Away attacks toward 0.
type Side int

const (
	Home Side = iota
	Away
)

// String returns a human-readable name for the side.
func (s Side) String() string {
	switch s {
	case Home:
		return "Home"
	case Away:
		return "Away"
	default:
		return "Unknown"
	}
}

// Other returns the opposing side.
func (s Side) Other() Side {
	if s == Home {
		return Away
	}
	return Home
}

// Dir is +1 for the side attacking 100 and -1 for the side attacking 0.
func (s Side) Dir() int {
	if s == Home {
		return 1
	}
	return -1
}

// Field geometry and clock constants.
const (
	OwnGoalHome    = 0
	OwnGoalAway    = 100
	Midfield       = 50
	FirstDownYards = 10
	QuarterSeconds = 900
	TwoMinuteMark  = 120
)

// Score holds both teams' points.
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// Of returns the points for a side.
func (sc Score) Of(s Side) int {
	if s == Home {
		return sc.Home
	}
	return sc.Away
}

// Add returns a copy with points credited to a side.
func (sc Score) Add(s Side, points int) Score {
	if s == Home {
		sc.Home += points
	} else {
		sc.Away += points
	}
	return sc
}

// Margin returns the side's lead (negative when trailing).
func (sc Score) Margin(s Side) int {
	return sc.Of(s) - sc.Of(s.Other())
}

// State is the single record driving the simulation.
type State struct {
	Quarter     int   `json:"quarter"`
	Clock       int   `json:"clock"` // seconds left in the quarter
	Down        int   `json:"down"`
	ToGo        int   `json:"toGo"`
	BallOn      int   `json:"ballOn"` // 0..100 from the home goal line
	Possession  Side  `json:"possession"`
	AwaitingPAT bool  `json:"awaitingPAT"`
	GameOver    bool  `json:"gameOver"`
	Score       Score `json:"score"`

	// UntimedDown is set when a defensive foul at 0:00 extends the period by one snap.
	UntimedDown bool `json:"untimedDown"`
	// OpeningKicker kicked off to start the game; the other side kicks the second half.
	OpeningKicker Side `json:"openingKicker"`
}

// New returns the state before the opening kickoff.
func New(openingKicker Side) State {
	return State{
		Quarter:       1,
		Clock:         QuarterSeconds,
		Down:          1,
		ToGo:          FirstDownYards,
		BallOn:        Midfield,
		Possession:    openingKicker,
		OpeningKicker: openingKicker,
	}
}

// Offense returns the side in possession.
func (s State) Offense() Side { return s.Possession }

// Defense returns the side without the ball.
func (s State) Defense() Side { return s.Possession.Other() }

// YardsToGoal is the distance from the ball to the goal the offense attacks.
func (s State) YardsToGoal() int {
	return YardsToGoal(s.BallOn, s.Possession)
}

// YardsToOwnGoal is the distance from the ball to the offense's own goal line.
func (s State) YardsToOwnGoal() int {
	return 100 - s.YardsToGoal()
}

// FirstDown returns a copy with a fresh set of downs.
func (s State) FirstDown() State {
	s.Down = 1
	s.ToGo = FirstDownYards
	return s
}

// ChangePossession hands the ball to the other side at the current spot with a fresh set.
func (s State) ChangePossession() State {
	s.Possession = s.Possession.Other()
	return s.FirstDown()
}

// String renders a compact down-and-distance line.
func (s State) String() string {
	return fmt.Sprintf("Q%d %s | %s ball, %s & %d at %s | Home %d - Away %d",
		s.Quarter, FormatClock(s.Clock), s.Possession, Ordinal(s.Down), s.ToGo,
		FieldPosition(s.BallOn), s.Score.Home, s.Score.Away)
}

// YardsToGoal is the distance from pos to the goal side attacks.
func YardsToGoal(pos int, side Side) int {
	if side == Home {
		return 100 - pos
	}
	return pos
}

// Advance moves pos by yards in side's attacking direction without clamping.
func Advance(pos, yards int, side Side) int {
	return pos + yards*side.Dir()
}

// OwnYardLine converts "side's own N" into an absolute position.
func OwnYardLine(side Side, n int) int {
	if side == Home {
		return n
	}
	return 100 - n
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// FormatClock renders seconds as M:SS.
func FormatClock(secs int) string {
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// FieldPosition renders an absolute position as "HOME 25", "AWAY 40" or "50".
func FieldPosition(pos int) string {
	switch {
	case pos == Midfield:
		return "50"
	case pos < Midfield:
		return fmt.Sprintf("HOME %d", pos)
	default:
		return fmt.Sprintf("AWAY %d", 100-pos)
	}
}

// Ordinal renders a down number.
func Ordinal(n int) string {
	switch n {
	case 1:
		return "1st"
	case 2:
		return "2nd"
	case 3:
		return "3rd"
	default:
		return fmt.Sprintf("%dth", n)
	}
}
