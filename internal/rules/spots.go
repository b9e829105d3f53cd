package rules

import "github.com/vovakirdan/gridiron/internal/game"

// TouchbackLine is the receiver's own yard line after a touchback.
const TouchbackLine = 20

// IsInEndZone reports whether pos is on either goal line.
func IsInEndZone(pos int) bool {
	return pos == 0 || pos == 100
}

// IsThroughEndZone reports whether pos is past either goal line.
func IsThroughEndZone(pos int) bool {
	return pos < 0 || pos > 100
}

// TouchbackSpot is where the receiving side starts after a touchback.
func TouchbackSpot(receiver game.Side) int {
	return game.OwnYardLine(receiver, TouchbackLine)
}

// ReachedGoal reports whether pos is at or past the goal side attacks.
func ReachedGoal(pos int, side game.Side) bool {
	return game.YardsToGoal(pos, side) <= 0
}

// ReachedOwnGoal reports whether pos is at or behind side's own goal line.
func ReachedOwnGoal(pos int, side game.Side) bool {
	return game.YardsToGoal(pos, side) >= 100
}

// KickSpot is where a placekick is held: holdDepth yards behind the line of
// scrimmage in the kicker's direction, clamped to the field.
func KickSpot(los int, kicker game.Side, holdDepth int) int {
	return game.Clamp(game.Advance(los, -holdDepth, kicker), 0, 100)
}

// MissedFieldGoalSpot returns where the defense takes over after a miss: the
// spot of the kick, but never worse for them than their own 20.
func MissedFieldGoalSpot(los int, kicker game.Side, holdDepth int) int {
	spot := KickSpot(los, kicker, holdDepth)
	receiver := kicker.Other()
	if receiver == game.Home {
		return max(TouchbackSpot(receiver), spot)
	}
	return min(TouchbackSpot(receiver), spot)
}
