package dice

import (
	"context"
	"errors"
)

// ErrEmptyPattern is returned when a seed search has nothing to match.
var ErrEmptyPattern = errors.New("dice: search pattern must contain at least one roll")

// SearchRequest describes a hunt for seeds whose first rolls match a pattern.
// A zero entry in Pattern matches any face.
type SearchRequest struct {
	Sides   int
	Pattern []int
	From    int64
	To      int64 // inclusive
	Limit   int   // stop after this many matches; 0 means no limit
}

// Search scans seeds in [From, To] and returns those whose first len(Pattern)
// rolls of a Sides-sided die match the pattern. Cancellation is checked every
// few thousand seeds.
func Search(ctx context.Context, req SearchRequest) ([]int64, error) {
	if len(req.Pattern) == 0 {
		return nil, ErrEmptyPattern
	}
	if req.Sides < 1 {
		req.Sides = 6
	}

	var found []int64
	for seed := req.From; seed <= req.To; seed++ {
		if (seed-req.From)%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return found, err
			}
		}
		if matches(New(seed), req.Sides, req.Pattern) {
			found = append(found, seed)
			if req.Limit > 0 && len(found) >= req.Limit {
				break
			}
		}
	}
	return found, nil
}

func matches(s *Stream, sides int, pattern []int) bool {
	for _, want := range pattern {
		got := s.Roll(sides)
		if want != 0 && got != want {
			return false
		}
	}
	return true
}
