package charts

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/charts.yaml
var defaultChartsYAML []byte

// ErrMissingDeck is returned when chart data lacks one of RequiredDecks.
var ErrMissingDeck = errors.New("charts: required deck missing")

// ErrBadDefense is returned when a chart row uses a key outside A..J.
var ErrBadDefense = errors.New("charts: defense key must be A..J")

type chartFile struct {
	Plays map[string]PlayKind                     `yaml:"plays"`
	Decks map[string]map[string]map[string]string `yaml:"decks"`
}

// Parse decodes and validates chart YAML.
func Parse(data []byte) (*Tables, error) {
	var f chartFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("charts: cannot parse: %w", err)
	}

	t := &Tables{
		Decks: make(map[string]Deck, len(f.Decks)),
		Kinds: f.Plays,
	}
	if t.Kinds == nil {
		t.Kinds = make(map[string]PlayKind)
	}

	for _, name := range RequiredDecks {
		if _, ok := f.Decks[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingDeck, name)
		}
	}

	for name, rows := range f.Decks {
		deck := make(Deck, len(rows))
		for play, row := range rows {
			cells := make(map[string]string, len(row))
			for letter, cell := range row {
				if !validLetter(letter) {
					return nil, fmt.Errorf("%w: deck %s play %q key %q", ErrBadDefense, name, play, letter)
				}
				cells[letter] = cell
			}
			deck[play] = cells
		}
		t.Decks[name] = deck
	}
	return t, nil
}

func validLetter(letter string) bool {
	for _, d := range Defenses {
		if d.Letter == letter {
			return true
		}
	}
	return false
}

// Default returns the embedded charts.
func Default() (*Tables, error) {
	return Parse(defaultChartsYAML)
}

// Catalog caches loaded chart tables. Construct one at startup and pass it to
// whoever needs charts; Reload and Invalidate control its lifecycle.
type Catalog struct {
	path string

	mu     sync.RWMutex
	tables *Tables
}

// NewCatalog creates a catalog that loads from path, or from the embedded
// charts when path is empty. Nothing is read until first use.
func NewCatalog(path string) *Catalog {
	return &Catalog{path: path}
}

// Tables returns the cached tables, loading them on first call.
func (c *Catalog) Tables() (*Tables, error) {
	c.mu.RLock()
	t := c.tables
	c.mu.RUnlock()
	if t != nil {
		return t, nil
	}
	return c.Reload()
}

// Reload reads the chart source again and replaces the cache.
func (c *Catalog) Reload() (*Tables, error) {
	data := defaultChartsYAML
	if c.path != "" {
		b, err := os.ReadFile(c.path)
		if err != nil {
			return nil, fmt.Errorf("charts: cannot read %s: %w", c.path, err)
		}
		data = b
	}

	t, err := Parse(data)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.tables = t
	c.mu.Unlock()
	return t, nil
}

// Invalidate drops the cache so the next Tables call reloads.
func (c *Catalog) Invalidate() {
	c.mu.Lock()
	c.tables = nil
	c.mu.Unlock()
}
