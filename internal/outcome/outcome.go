// Package outcome turns chart cells into structured play results.
package outcome

import "fmt"

// Category classifies an outcome for timekeeping and narration.
type Category int

const (
	CategoryOther Category = iota
	CategoryIncomplete
	CategoryFumble
	CategoryInterception
	CategoryPenalty
	CategoryLoss
	CategoryGain
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryIncomplete:
		return "incomplete"
	case CategoryFumble:
		return "fumble"
	case CategoryInterception:
		return "interception"
	case CategoryPenalty:
		return "penalty"
	case CategoryLoss:
		return "loss"
	case CategoryGain:
		return "gain"
	default:
		return "other"
	}
}

// Against names the team a penalty is called on.
type Against int

const (
	AgainstOffense Against = iota
	AgainstDefense
)

// String returns "offense" or "defense".
func (a Against) String() string {
	if a == AgainstDefense {
		return "defense"
	}
	return "offense"
}

// Result is the variant payload of an Outcome. Exactly one of the types
// below implements it.
type Result interface {
	Category() Category
	result()
}

// Gain is a positive (or zero) yardage play.
type Gain struct{ Yards int }

// Loss is a play that lost yardage; Yards is negative.
type Loss struct{ Yards int }

// Incomplete is an incomplete pass.
type Incomplete struct{}

// Fumble is a lost fumble.
type Fumble struct{}

// Interception carries the return yardage from the spot of the pick.
type Interception struct{ Return int }

// Penalty describes a flag thrown on the play.
type Penalty struct {
	On        Against
	Yards     int // magnitude, never negative
	FirstDown bool
}

// Other is an unparseable or empty chart cell.
type Other struct{}

func (Gain) Category() Category         { return CategoryGain }
func (Loss) Category() Category         { return CategoryLoss }
func (Incomplete) Category() Category   { return CategoryIncomplete }
func (Fumble) Category() Category       { return CategoryFumble }
func (Interception) Category() Category { return CategoryInterception }
func (Penalty) Category() Category      { return CategoryPenalty }
func (Other) Category() Category        { return CategoryOther }

func (Gain) result()         {}
func (Loss) result()         {}
func (Incomplete) result()   {}
func (Fumble) result()       {}
func (Interception) result() {}
func (Penalty) result()      {}
func (Other) result()        {}

// Outcome is one parsed chart cell.
type Outcome struct {
	Result      Result
	OutOfBounds bool
	Raw         string
	Dice        []int // dice consumed while resolving the cell
}

// Category returns the result's category, treating a nil result as other.
func (o Outcome) Category() Category {
	if o.Result == nil {
		return CategoryOther
	}
	return o.Result.Category()
}

// Yards returns the signed scrimmage yardage (zero for non-yardage results).
func (o Outcome) Yards() int {
	switch r := o.Result.(type) {
	case Gain:
		return r.Yards
	case Loss:
		return r.Yards
	default:
		return 0
	}
}

// Turnover reports whether possession changes on the play.
func (o Outcome) Turnover() bool {
	switch o.Result.(type) {
	case Fumble, Interception:
		return true
	default:
		return false
	}
}

// Penalty returns the penalty payload when the outcome is a flag.
func (o Outcome) Penalty() (Penalty, bool) {
	p, ok := o.Result.(Penalty)
	return p, ok
}

// String summarizes the outcome for logs.
func (o Outcome) String() string {
	var s string
	switch r := o.Result.(type) {
	case Gain:
		s = fmt.Sprintf("gain %+d", r.Yards)
	case Loss:
		s = fmt.Sprintf("loss %+d", r.Yards)
	case Incomplete:
		s = "incomplete"
	case Fumble:
		s = "fumble"
	case Interception:
		s = fmt.Sprintf("interception return %+d", r.Return)
	case Penalty:
		s = fmt.Sprintf("penalty on %s %d", r.On, r.Yards)
		if r.FirstDown {
			s += " 1st down"
		}
	default:
		s = "other"
	}
	if o.OutOfBounds {
		s += " (out of bounds)"
	}
	return s
}
