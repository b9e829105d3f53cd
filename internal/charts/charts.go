// Package charts maps an offensive call against a defensive call to the raw
// outcome string printed on the play charts.
package charts

import (
	"sort"
	"strings"
)

// Deck names shipped with the default catalog.
const (
	DeckProStyle    = "pro_style"
	DeckBallControl = "ball_control"
	DeckAerial      = "aerial"
)

// RequiredDecks lists the decks every catalog must define.
var RequiredDecks = []string{DeckProStyle, DeckBallControl, DeckAerial}

// PlayKind separates running plays from passing plays.
type PlayKind string

const (
	KindRun  PlayKind = "run"
	KindPass PlayKind = "pass"
)

// Defense is one of the ten defensive formations.
type Defense struct {
	Letter string
	Label  string
}

// Defenses lists the formations in letter order A..J.
var Defenses = []Defense{
	{"A", "Goal Line"},
	{"B", "Short Yardage"},
	{"C", "Inside Blitz"},
	{"D", "Running"},
	{"E", "Run & Pass"},
	{"F", "Pass & Run"},
	{"G", "Passing"},
	{"H", "Outside Blitz"},
	{"I", "Prevent"},
	{"J", "Prevent Deep"},
}

// numberLetters maps a formation number to its letter. 0 wraps to J.
var numberLetters = [10]string{"J", "A", "B", "C", "D", "E", "F", "G", "H", "I"}

// LetterForNumber returns the defense letter for a formation number (n mod 10).
func LetterForNumber(n int) string {
	n %= 10
	if n < 0 {
		n += 10
	}
	return numberLetters[n]
}

// DefenseLetter resolves a defense label or letter to its chart letter.
// It returns "" for an unknown defense.
func DefenseLetter(defense string) string {
	d := strings.TrimSpace(defense)
	for _, def := range Defenses {
		if strings.EqualFold(d, def.Letter) || strings.EqualFold(d, def.Label) {
			return def.Letter
		}
	}
	return ""
}

// DefenseLabel returns the formation name for a letter or label.
func DefenseLabel(defense string) string {
	letter := DefenseLetter(defense)
	for _, def := range Defenses {
		if def.Letter == letter {
			return def.Label
		}
	}
	return ""
}

// playAliases maps the label a caller uses to the key printed on the chart.
var playAliases = map[string]string{
	"Run & Pass Option": "Run/Pass Option",
	"Sideline Pass":     "Side Line Pass",
}

// ChartKey returns the chart key for a play label.
func ChartKey(label string) string {
	if key, ok := playAliases[label]; ok {
		return key
	}
	return label
}

// Deck is one chart: play key -> defense letter -> outcome string.
type Deck map[string]map[string]string

// Tables is the validated, in-memory chart data.
type Tables struct {
	Decks map[string]Deck
	Kinds map[string]PlayKind // play label -> kind
}

// Lookup returns the raw outcome for a call, or nil when the deck, play or
// defense is missing. A miss is not an error: the parser turns nil into a
// zero-yard result.
func (t *Tables) Lookup(deck, play, defense string) *string {
	if t == nil {
		return nil
	}
	d, ok := t.Decks[deck]
	if !ok {
		return nil
	}
	row, ok := d[play]
	if !ok {
		row, ok = d[ChartKey(play)]
		if !ok {
			return nil
		}
	}
	letter := DefenseLetter(defense)
	if letter == "" {
		return nil
	}
	cell, ok := row[letter]
	if !ok {
		return nil
	}
	return &cell
}

// Plays returns the play labels available in a deck, sorted. Labels come from
// the kinds table when present so callers see display names, not chart keys.
func (t *Tables) Plays(deck string) []string {
	if t == nil {
		return nil
	}
	d, ok := t.Decks[deck]
	if !ok {
		return nil
	}
	display := make(map[string]string, len(playAliases))
	for label, key := range playAliases {
		display[key] = label
	}

	plays := make([]string, 0, len(d))
	for key := range d {
		if label, ok := display[key]; ok {
			plays = append(plays, label)
			continue
		}
		plays = append(plays, key)
	}
	sort.Strings(plays)
	return plays
}

// Kind returns whether a play is a run or a pass. Unknown plays count as runs.
func (t *Tables) Kind(play string) PlayKind {
	if t != nil {
		if k, ok := t.Kinds[play]; ok {
			return k
		}
		for label, key := range playAliases {
			if key == play {
				if k, ok := t.Kinds[label]; ok {
					return k
				}
			}
		}
	}
	return KindRun
}

// DeckNames returns the loaded deck names, sorted.
func (t *Tables) DeckNames() []string {
	if t == nil {
		return nil
	}
	names := make([]string, 0, len(t.Decks))
	for name := range t.Decks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
