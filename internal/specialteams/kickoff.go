package specialteams

import (
	"github.com/vovakirdan/gridiron/internal/dice"
	"github.com/vovakirdan/gridiron/internal/game"
	"github.com/vovakirdan/gridiron/internal/rules"
)

// KickoffKind selects a normal or onside kick.
type KickoffKind int

const (
	KickNormal KickoffKind = iota
	KickOnside
)

// String returns the kind name.
func (k KickoffKind) String() string {
	if k == KickOnside {
		return "onside"
	}
	return "normal"
}

// KickoffRequest describes one kickoff.
type KickoffRequest struct {
	Kicker game.Side
	Kind   KickoffKind
	// From is the kicker's own yard line; zero means the configured spot.
	From int
	// Margin is the kicker's lead before the kick (negative when trailing).
	Margin int
}

// KickoffResult is where the ball ends up and who has it.
type KickoffResult struct {
	Kind       KickoffKind
	Possession game.Side
	BallOn     int
	Touchback  bool
	// Recovered is true when the kicking team keeps the ball.
	Recovered bool
	Dice      []int
}

// Kickoff resolves a kickoff.
func (u Unit) Kickoff(req KickoffRequest, s *dice.Stream) KickoffResult {
	if req.Kind == KickOnside {
		return u.onside(req, s)
	}

	kicker := req.Kicker
	receiver := kicker.Other()
	res := KickoffResult{Kind: KickNormal, Possession: receiver}

	row := s.RollD6()
	res.Dice = append(res.Dice, row)

	var line int
	if row < 6 {
		line = u.kickoff.Returns[row-1]
		if line == 0 {
			res.Touchback = true
			res.BallOn = rules.TouchbackSpot(receiver)
			return res
		}
	} else {
		long := s.RollD6()
		res.Dice = append(res.Dice, long)
		line = u.kickoff.LongReturns[long-1]
		if line == 0 {
			// Muffed return: the kicking team falls on it.
			res.Recovered = true
			res.Possession = kicker
			res.BallOn = game.OwnYardLine(receiver, u.kickoff.FumbleSpot)
			return res
		}
	}

	from := req.From
	if from == 0 {
		from = u.kickoff.KickFrom
	}
	line += u.kickoff.KickFrom - from
	res.BallOn = game.OwnYardLine(receiver, game.Clamp(line, 1, 99))
	return res
}

func (u Unit) onside(req KickoffRequest, s *dice.Stream) KickoffResult {
	odds := u.kickoff.OnsideRecoverLeading
	if req.Margin < 0 {
		odds = u.kickoff.OnsideRecoverTrailing
	}

	res := KickoffResult{
		Kind:       KickOnside,
		Possession: req.Kicker.Other(),
		BallOn:     game.OwnYardLine(req.Kicker, u.kickoff.OnsideSpot),
	}
	draw := s.Float64()
	res.Dice = []int{int(draw*100) + 1}
	if draw < odds {
		res.Recovered = true
		res.Possession = req.Kicker
	}
	return res
}
