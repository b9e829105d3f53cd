// Package telemetry collects best-effort records of dice, outcomes, state
// changes and scores. Hooks never influence the game: they are
// fire-and-forget and a failing hook is swallowed.
package telemetry

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gridiron/internal/game"
)

// Kind classifies a record.
type Kind string

const (
	KindDice    Kind = "dice"
	KindOutcome Kind = "outcome"
	KindDelta   Kind = "delta"
	KindScore   Kind = "score"
)

// Record is one telemetry entry.
type Record struct {
	GameID  string      `json:"game_id,omitempty"`
	Seq     uint64      `json:"seq"`
	Kind    Kind        `json:"kind"`
	Quarter int         `json:"quarter"`
	Clock   int         `json:"clock"`
	Side    string      `json:"side,omitempty"`
	Detail  string      `json:"detail,omitempty"`
	Dice    []int       `json:"dice,omitempty"`
	Points  int         `json:"points,omitempty"`
	Before  *game.State `json:"before,omitempty"`
	After   *game.State `json:"after,omitempty"`
}

// Hook receives records.
type Hook interface {
	Record(r Record)
}

// Nop discards everything.
type Nop struct{}

// Record implements Hook.
func (Nop) Record(Record) {}

// Multi fans a record out to several hooks.
type Multi []Hook

// Record implements Hook.
func (m Multi) Record(r Record) {
	for _, h := range m {
		h.Record(r)
	}
}

type safeHook struct {
	next   Hook
	logger *log.Logger
}

// Safe wraps a hook so a panic inside it is logged and dropped.
// A nil hook becomes Nop.
func Safe(h Hook, logger *log.Logger) Hook {
	if h == nil {
		return Nop{}
	}
	return safeHook{next: h, logger: logger}
}

func (s safeHook) Record(r Record) {
	defer func() {
		if p := recover(); p != nil && s.logger != nil {
			s.logger.Warn("telemetry hook panicked", "kind", r.Kind, "panic", p)
		}
	}()
	s.next.Record(r)
}
