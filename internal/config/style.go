package config

import "fmt"

// Style names a coach preset.
type Style string

const (
	StyleBalanced     Style = "balanced"
	StyleConservative Style = "conservative"
	StyleAggressive   Style = "aggressive"
)

// Styles lists the presets in display order.
var Styles = []Style{StyleBalanced, StyleConservative, StyleAggressive}

// ParseStyle validates a style name.
func ParseStyle(name string) (Style, error) {
	for _, s := range Styles {
		if string(s) == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("config: unknown coach style %q", name)
}

// ApplyStyle modifies the coach config based on a style preset.
func ApplyStyle(cfg *CoachConfig, style Style) {
	cfg.Style = string(style)

	switch style {
	case StyleConservative:
		cfg.MaxFieldGoal = 48
		cfg.GoForItToGo = 1
		cfg.GoForItInside = 35
		cfg.PassBias = 0.35
		cfg.OnsideTrailing = 12
		cfg.OnsideClock = 120
	case StyleAggressive:
		cfg.MaxFieldGoal = 42
		cfg.GoForItToGo = 4
		cfg.GoForItInside = 55
		cfg.PassBias = 0.65
		cfg.OnsideTrailing = 7
		cfg.OnsideClock = 300
	default:
		def := DefaultCoach()
		def.SafetyPunt = cfg.SafetyPunt
		*cfg = def
	}
}
