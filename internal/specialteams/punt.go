package specialteams

import (
	"github.com/vovakirdan/gridiron/internal/dice"
	"github.com/vovakirdan/gridiron/internal/game"
	"github.com/vovakirdan/gridiron/internal/rules"
)

// PuntResult is the outcome of a punt.
type PuntResult struct {
	Possession game.Side
	BallOn     int
	Distance   int
	Return     int
	Touchback  bool
	FairCatch  bool
	Fumble     bool
	// Recovered is true when the kicking team keeps the ball after a muff.
	Recovered bool
	// Touchdown is a return all the way into the kicker's end zone.
	Touchdown bool
	Dice      []int
}

// Punt resolves a punt from the line of scrimmage.
func (u Unit) Punt(kicker game.Side, los int, s *dice.Stream) PuntResult {
	receiver := kicker.Other()
	res := PuntResult{Possession: receiver}

	a, b := s.Roll2D6()
	res.Dice = append(res.Dice, a, b)
	res.Distance = u.punt.Distance[a+b]

	landing := game.Advance(los, res.Distance, kicker)
	if rules.ReachedGoal(landing, kicker) {
		res.Touchback = true
		res.BallOn = rules.TouchbackSpot(receiver)
		return res
	}
	res.BallOn = landing

	c, d := s.Roll2D6()
	res.Dice = append(res.Dice, c, d)
	roll := c + d

	if roll <= u.punt.FumbleMaxRoll && s.Chance(u.punt.FumbleChance) {
		res.Fumble = true
		if s.Chance(u.punt.KickerRecovery) {
			res.Recovered = true
			res.Possession = kicker
		}
		return res
	}

	switch roll {
	case u.punt.FairCatchRoll:
		res.FairCatch = true
		return res
	case u.punt.LongGainRoll:
		lg := u.longGain(s)
		res.Dice = append(res.Dice, lg.Dice...)
		res.Return = lg.Yards
	default:
		res.Return = u.punt.Returns[roll]
	}

	spot := game.Advance(landing, res.Return, receiver)
	if rules.ReachedGoal(spot, receiver) {
		res.Touchdown = true
		res.BallOn = game.Clamp(spot, 0, 100)
		return res
	}
	res.BallOn = game.Clamp(spot, 1, 99)
	return res
}
