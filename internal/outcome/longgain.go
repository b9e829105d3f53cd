package outcome

import "github.com/vovakirdan/gridiron/internal/dice"

// LongGain is a resolved "LG" result.
type LongGain struct {
	Yards int
	Row   int
	Dice  []int
}

// LongGainFunc resolves an open-ended long gain from the stream.
type LongGainFunc func(s *dice.Stream) LongGain

// longGainRows maps a d6 row to yardage. Row 1 is open-ended.
var longGainRows = [7]int{0, 0, 30, 35, 40, 45, 50}

// ResolveLongGain rolls a d6 on the long-gain table. Row 1 means +50 plus
// ten times a second d6, so the result ranges 30..110.
func ResolveLongGain(s *dice.Stream) LongGain {
	row := s.RollD6()
	if row != 1 {
		return LongGain{Yards: longGainRows[row], Row: row, Dice: []int{row}}
	}
	extra := s.RollD6()
	return LongGain{Yards: 50 + 10*extra, Row: 1, Dice: []int{row, extra}}
}
