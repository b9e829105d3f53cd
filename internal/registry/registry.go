// Package registry provides a global registry for coach factories.
// Coaching styles register themselves in init() functions, allowing the
// command line and the simulator to discover them without hardcoded
// dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/gridiron/internal/charts"
	"github.com/vovakirdan/gridiron/internal/config"
	"github.com/vovakirdan/gridiron/internal/dice"
	"github.com/vovakirdan/gridiron/internal/flow"
	"github.com/vovakirdan/gridiron/internal/game"
)

// Coach is a computer play-caller. It answers every decision the engine
// delegates (flow.Policy) and picks the calls for each snap.
type Coach interface {
	flow.Policy

	// ID returns the registered style name (e.g., "balanced").
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// ChooseOffense picks the offensive call for the side in possession.
	// Deck and Play are filled for scrimmage plays; Defense is left empty.
	ChooseOffense(s game.State) (flow.PlayInput, error)

	// ChooseDefense picks a defense label against the offense in s.
	ChooseDefense(s game.State) string
}

// Setup is everything a factory needs to build a coach for one game.
type Setup struct {
	Rules  config.Rules
	Tables *charts.Tables
	Deck   string
	Stream *dice.Stream
}

// CoachInfo contains metadata about a registered coach.
type CoachInfo struct {
	ID    string
	Title string
}

// Factory creates a coach. It must accept a zero Setup.
type Factory func(Setup) Coach

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a coach factory to the registry.
// Panics if a coach with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: coach %q already registered", id))
	}

	factories[id] = f
	titles[id] = f(Setup{}).Title()
}

// List returns information about all registered coaches, sorted by ID.
func List() []CoachInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]CoachInfo, 0, len(factories))
	for id := range factories {
		result = append(result, CoachInfo{ID: id, Title: titles[id]})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create builds a coach by its ID.
func Create(id string, setup Setup) (Coach, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown coach %q", id)
	}
	return f(setup), nil
}

// Exists checks if a coach with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
