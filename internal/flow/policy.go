package flow

import (
	"github.com/vovakirdan/gridiron/internal/config"
	"github.com/vovakirdan/gridiron/internal/game"
	"github.com/vovakirdan/gridiron/internal/rules"
	"github.com/vovakirdan/gridiron/internal/specialteams"
)

// Decision answers a penalty.
type Decision int

const (
	Accept Decision = iota
	Decline
)

// String returns "accept" or "decline".
func (d Decision) String() string {
	if d == Decline {
		return "decline"
	}
	return "accept"
}

// Try is the point-after choice.
type Try int

const (
	TryKick Try = iota
	TryTwo
)

// FreeKick is the restart after a safety.
type FreeKick int

const (
	FreeKickKickoff FreeKick = iota // kickoff from the 25
	FreeKickPunt                    // punt from the 20
)

// Context is what a policy sees when asked to decide.
type Context struct {
	State game.State
	Side  game.Side // the team making the decision
}

// Policy supplies the decisions the engine does not make itself.
// Embed DefaultPolicy to override only some of them.
type Policy interface {
	ChooseKickoff(ctx Context) specialteams.KickoffKind
	ChoosePAT(ctx Context) Try
	ChooseSafetyFreeKick(ctx Context) FreeKick
	DecidePenalty(ctx Context, res rules.PenaltyResult) Decision
}

// DefaultPolicy is the built-in heuristic used when no policy is supplied.
type DefaultPolicy struct {
	teams specialteams.Unit
}

// NewDefaultPolicy creates the default policy for a rules configuration.
func NewDefaultPolicy(r config.Rules) DefaultPolicy {
	return DefaultPolicy{teams: specialteams.New(r)}
}

// ChooseKickoff always kicks deep.
func (DefaultPolicy) ChooseKickoff(Context) specialteams.KickoffKind {
	return specialteams.KickNormal
}

// ChoosePAT goes for two only when trailing by a point or two late in the fourth.
func (p DefaultPolicy) ChoosePAT(ctx Context) Try {
	s := ctx.State
	if p.teams.ShouldGoForTwo(s.Score.Margin(ctx.Side), s.Quarter, s.Clock) {
		return TryTwo
	}
	return TryKick
}

// ChooseSafetyFreeKick kicks off from the 25.
func (DefaultPolicy) ChooseSafetyFreeKick(Context) FreeKick {
	return FreeKickKickoff
}

// DecidePenalty accepts unless the administrator suggests declining. On
// fourth down the defense declines an offensive foul and takes over on downs.
func (DefaultPolicy) DecidePenalty(ctx Context, res rules.PenaltyResult) Decision {
	if ctx.Side != ctx.State.Possession && ctx.State.Down == 4 {
		return Decline
	}
	if res.Hint == rules.HintDecline {
		return Decline
	}
	return Accept
}
