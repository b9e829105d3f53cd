package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalidRules is returned when a loaded rules file fails validation.
var ErrInvalidRules = errors.New("config: invalid rules")

// LoadRules loads the rules configuration.
// Search order: customPath -> ~/.gridiron/configs/rules.yaml -> ./configs/rules.yaml -> embedded default
//
// Fields missing from a file keep their default values.
func LoadRules(customPath string) (Rules, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Rules{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := ParseRules(data)
		if err != nil {
			return Rules{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("rules.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseRules(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/rules.yaml"); err == nil {
		if cfg, err := ParseRules(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := ParseRules(defaultRulesYAML)
	if err != nil {
		return DefaultRules(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseRules decodes YAML over the defaults and validates the result.
func ParseRules(data []byte) (Rules, error) {
	cfg := DefaultRules()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Rules{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Rules{}, err
	}
	return cfg, nil
}

// Validate checks table shapes and ranges.
func (r Rules) Validate() error {
	switch {
	case r.Clock.QuarterSeconds <= 0:
		return fmt.Errorf("%w: clock.quarter_seconds must be positive", ErrInvalidRules)
	case r.Clock.TwoMinuteMark < 0 || r.Clock.TwoMinuteMark >= r.Clock.QuarterSeconds:
		return fmt.Errorf("%w: clock.two_minute_mark out of range", ErrInvalidRules)
	case len(r.Kickoff.Returns) != 5:
		return fmt.Errorf("%w: kickoff.returns needs 5 rows, got %d", ErrInvalidRules, len(r.Kickoff.Returns))
	case len(r.Kickoff.LongReturns) != 6:
		return fmt.Errorf("%w: kickoff.long_returns needs 6 rows, got %d", ErrInvalidRules, len(r.Kickoff.LongReturns))
	case len(r.Placekick.FieldGoal) == 0:
		return fmt.Errorf("%w: placekick.field_goal is empty", ErrInvalidRules)
	case r.Overtime.Enabled && r.Overtime.Seconds <= 0:
		return fmt.Errorf("%w: overtime.seconds must be positive", ErrInvalidRules)
	}
	for sum := 2; sum <= 12; sum++ {
		if _, ok := r.Punt.Distance[sum]; !ok {
			return fmt.Errorf("%w: punt.distance missing roll %d", ErrInvalidRules, sum)
		}
	}
	for _, p := range []float64{
		r.Kickoff.OnsideRecoverLeading, r.Kickoff.OnsideRecoverTrailing,
		r.Punt.FumbleChance, r.Punt.KickerRecovery,
		r.Placekick.ExtraPoint, r.Placekick.TwoPoint,
	} {
		if p < 0 || p > 1 {
			return fmt.Errorf("%w: probability %v outside [0,1]", ErrInvalidRules, p)
		}
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gridiron", "configs", filename)
}
