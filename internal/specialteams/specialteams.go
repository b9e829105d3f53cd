// Package specialteams resolves kickoffs, punts and placekicks from dice tables.
package specialteams

import (
	"github.com/vovakirdan/gridiron/internal/config"
	"github.com/vovakirdan/gridiron/internal/outcome"
)

// Unit resolves special-teams plays against a rules configuration.
type Unit struct {
	kickoff   config.KickoffConfig
	punt      config.PuntConfig
	placekick config.PlacekickConfig
	longGain  outcome.LongGainFunc
}

// New creates a unit from rules. Long punt returns use the standard long-gain table.
func New(r config.Rules) Unit {
	return Unit{
		kickoff:   r.Kickoff,
		punt:      r.Punt,
		placekick: r.Placekick,
		longGain:  outcome.ResolveLongGain,
	}
}

// Default uses the default rules.
func Default() Unit {
	return New(config.DefaultRules())
}

// WithLongGain replaces the long-gain resolver used on punt returns.
func (u Unit) WithLongGain(lg outcome.LongGainFunc) Unit {
	if lg != nil {
		u.longGain = lg
	}
	return u
}
