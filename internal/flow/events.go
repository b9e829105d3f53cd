package flow

import (
	"github.com/vovakirdan/gridiron/internal/game"
	"github.com/vovakirdan/gridiron/internal/outcome"
	"github.com/vovakirdan/gridiron/internal/rules"
	"github.com/vovakirdan/gridiron/internal/specialteams"
)

// Event is one entry in the ordered log a transition produces.
type Event interface {
	flowEvent()
}

// HUDEvent carries a state snapshot for display.
type HUDEvent struct {
	State game.State
}

func (HUDEvent) flowEvent() {}

// LogEvent is play-by-play narration. It is not part of the rules contract.
type LogEvent struct {
	Text string
}

func (LogEvent) flowEvent() {}

// SnapEvent records a scrimmage play and its parsed result.
type SnapEvent struct {
	Offense game.Side
	Play    string
	Defense string
	Outcome outcome.Outcome
	Before  game.State
	After   game.State
}

func (SnapEvent) flowEvent() {}

// ScoreKind names how points were scored.
type ScoreKind int

const (
	ScoreTouchdown ScoreKind = iota
	ScoreFieldGoal
	ScoreExtraPoint
	ScoreTwoPoint
	ScoreSafety
)

// String returns the score kind name.
func (k ScoreKind) String() string {
	switch k {
	case ScoreTouchdown:
		return "touchdown"
	case ScoreFieldGoal:
		return "field goal"
	case ScoreExtraPoint:
		return "extra point"
	case ScoreTwoPoint:
		return "two-point conversion"
	case ScoreSafety:
		return "safety"
	default:
		return "unknown"
	}
}

// ScoreEvent is emitted exactly once per change in the score.
type ScoreEvent struct {
	Side    game.Side
	Kind    ScoreKind
	Points  int
	Score   game.Score // totals after the score
	Quarter int
	Clock   int
}

func (ScoreEvent) flowEvent() {}

// TryEvent records a point-after attempt, good or not.
type TryEvent struct {
	Side     game.Side
	TwoPoint bool
	Good     bool
}

func (TryEvent) flowEvent() {}

// KickoffEvent records a kickoff.
type KickoffEvent struct {
	Kicker game.Side
	Result specialteams.KickoffResult
}

func (KickoffEvent) flowEvent() {}

// PuntEvent records a punt, including a safety free kick punted from the 20.
type PuntEvent struct {
	Kicker game.Side
	Result specialteams.PuntResult
}

func (PuntEvent) flowEvent() {}

// FieldGoalEvent records a field-goal attempt.
type FieldGoalEvent struct {
	Kicker game.Side
	Result specialteams.KickResult
}

func (FieldGoalEvent) flowEvent() {}

// TurnoverKind names how possession was lost.
type TurnoverKind int

const (
	TurnoverInterception TurnoverKind = iota
	TurnoverFumble
	TurnoverOnDowns
)

// String returns the turnover kind name.
func (k TurnoverKind) String() string {
	switch k {
	case TurnoverInterception:
		return "interception"
	case TurnoverFumble:
		return "fumble"
	case TurnoverOnDowns:
		return "downs"
	default:
		return "unknown"
	}
}

// TurnoverEvent is emitted when possession changes during scrimmage play.
type TurnoverEvent struct {
	From game.Side
	To   game.Side
	Kind TurnoverKind
}

func (TurnoverEvent) flowEvent() {}

// TwoMinuteWarningEvent is emitted when the clock is stopped at the mark.
type TwoMinuteWarningEvent struct {
	Quarter int
}

func (TwoMinuteWarningEvent) flowEvent() {}

// EndOfQuarterEvent is emitted when a period's clock expires.
type EndOfQuarterEvent struct {
	Quarter int
}

func (EndOfQuarterEvent) flowEvent() {}

// HalftimeEvent separates the halves.
type HalftimeEvent struct {
	Score game.Score
}

func (HalftimeEvent) flowEvent() {}

// OvertimeEvent starts a sudden-death period.
type OvertimeEvent struct {
	Period int
}

func (OvertimeEvent) flowEvent() {}

// FinalEvent ends the game.
type FinalEvent struct {
	Score  game.Score
	Winner game.Side
	Tie    bool
}

func (FinalEvent) flowEvent() {}

// ChoiceRequiredEvent means a penalty decision is pending. The step that
// emits it returns the unchanged pre-snap state; pass Pending to
// Engine.FinalizePenaltyDecision to continue.
type ChoiceRequiredEvent struct {
	Decider game.Side
	Pending PendingPenalty
}

func (ChoiceRequiredEvent) flowEvent() {}

// UntimedDownScheduledEvent means a defensive foul at 0:00 extended the period.
type UntimedDownScheduledEvent struct {
	Quarter int
}

func (UntimedDownScheduledEvent) flowEvent() {}

// PendingPenalty is a flag waiting for its accept/decline decision.
type PendingPenalty struct {
	Pre     game.State
	Outcome outcome.Outcome
	Result  rules.PenaltyResult
}
