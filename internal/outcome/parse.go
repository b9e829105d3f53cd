package outcome

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/vovakirdan/gridiron/internal/dice"
)

var (
	signedIntRe   = regexp.MustCompile(`[+-]?\d+`)
	negativeIntRe = regexp.MustCompile(`-\d+`)
	firstDownRe   = regexp.MustCompile(`(?i)1st Down`)
	outOfBoundsRe = regexp.MustCompile(`(?i)\bO/?B\b`)
)

// Parse converts a chart cell into an Outcome. It never fails: a nil or
// unrecognized cell yields a zero-yard Other.
//
// Tokens are checked in a fixed priority order because chart strings combine
// them, e.g. "PENALTY +15 1st Down" must never read as a 15-yard gain.
func Parse(raw *string, lg LongGainFunc, s *dice.Stream) Outcome {
	if raw == nil {
		return Outcome{Result: Other{}}
	}
	text := *raw
	o := Outcome{Raw: text, OutOfBounds: outOfBoundsRe.MatchString(text)}

	switch {
	case strings.Contains(text, "Incomplete"):
		o.Result = Incomplete{}
	case strings.Contains(text, "FUMBLE"):
		o.Result = Fumble{}
	case strings.Contains(text, "INTERCEPT"):
		ret, _ := firstInt(signedIntRe, text)
		o.Result = Interception{Return: ret}
	case strings.Contains(text, "PENALTY"):
		o.Result = parsePenalty(text)
	case strings.Contains(text, "Sack"):
		yards, _ := firstInt(negativeIntRe, text)
		o.Result = Loss{Yards: yards}
	case strings.Contains(text, "LG"):
		if lg == nil {
			lg = ResolveLongGain
		}
		res := lg(s)
		o.Result = Gain{Yards: res.Yards}
		o.Dice = res.Dice
	default:
		if yards, ok := firstInt(signedIntRe, text); ok {
			o.Result = yardage(yards)
		} else {
			o.Result = Other{}
		}
	}
	return o
}

func parsePenalty(text string) Penalty {
	p := Penalty{On: AgainstOffense, FirstDown: firstDownRe.MatchString(text)}
	n, ok := firstInt(signedIntRe, text)
	if ok && n > 0 {
		p.On = AgainstDefense
	}
	if n < 0 {
		n = -n
	}
	p.Yards = n
	return p
}

func yardage(yards int) Result {
	if yards < 0 {
		return Loss{Yards: yards}
	}
	return Gain{Yards: yards}
}

func firstInt(re *regexp.Regexp, text string) (int, bool) {
	m := re.FindString(text)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}
