// Package dice provides the seeded random stream that drives every roll in a game.
//
// The generator is Park-Miller's minimal standard LCG (multiplier 16807, modulus
// 2^31-1). Given the same seed it yields the same sequence on every platform,
// which is what replay tests and seed search rely on.
package dice

const (
	modulus    = 2147483647 // 2^31 - 1
	multiplier = 16807
)

// Stream is a single deterministic sequence of draws in [0, 1).
// A Stream is not safe for concurrent use; each game owns its own.
type Stream struct {
	seed  int64
	state int64
	draws uint64
}

// New creates a stream for the given seed. Seeds are folded into [1, 2^31-2],
// so any int64 (including zero and negatives) is accepted.
func New(seed int64) *Stream {
	s := &Stream{seed: seed}
	s.state = normalize(seed)
	return s
}

func normalize(seed int64) int64 {
	v := seed % (modulus - 1)
	if v <= 0 {
		v += modulus - 1
	}
	return v
}

// Seed returns the seed the stream was created with.
func (s *Stream) Seed() int64 {
	return s.seed
}

// Draws returns how many values have been consumed so far.
func (s *Stream) Draws() uint64 {
	return s.draws
}

// Float64 returns the next value in [0, 1).
func (s *Stream) Float64() float64 {
	s.state = s.state * multiplier % modulus
	s.draws++
	return float64(s.state-1) / float64(modulus-1)
}

// Roll draws one value and maps it onto 1..sides.
func (s *Stream) Roll(sides int) int {
	if sides < 1 {
		return 0
	}
	return int(s.Float64()*float64(sides)) + 1
}

// RollD6 rolls a six-sided die.
func (s *Stream) RollD6() int { return s.Roll(6) }

// RollD10 rolls a ten-sided die.
func (s *Stream) RollD10() int { return s.Roll(10) }

// RollD20 rolls a twenty-sided die.
func (s *Stream) RollD20() int { return s.Roll(20) }

// Roll2D6 rolls two six-sided dice and returns both faces.
func (s *Stream) Roll2D6() (int, int) {
	a := s.RollD6()
	b := s.RollD6()
	return a, b
}

// Chance reports whether the next draw lands below p.
func (s *Stream) Chance(p float64) bool {
	return s.Float64() < p
}

// Clone returns an independent copy positioned at the same point in the sequence.
func (s *Stream) Clone() *Stream {
	c := *s
	return &c
}
