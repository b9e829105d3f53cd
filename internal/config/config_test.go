package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestEmbeddedMatchesDefaults(t *testing.T) {
	cfg, err := ParseRules(defaultRulesYAML)
	if err != nil {
		t.Fatalf("embedded rules do not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultRules()) {
		t.Errorf("embedded rules drifted from DefaultRules():\n got %+v\nwant %+v", cfg, DefaultRules())
	}
}

func TestParseRulesKeepsDefaultsForMissingKeys(t *testing.T) {
	cfg, err := ParseRules([]byte("clock:\n  incomplete: 10\novertime:\n  enabled: false\n"))
	if err != nil {
		t.Fatalf("ParseRules failed: %v", err)
	}
	if cfg.Clock.Incomplete != 10 {
		t.Errorf("incomplete = %d, want 10", cfg.Clock.Incomplete)
	}
	if cfg.Clock.ShortPlay != 30 {
		t.Errorf("short play = %d, want default 30", cfg.Clock.ShortPlay)
	}
	if cfg.Overtime.Enabled {
		t.Error("overtime should be disabled")
	}
	if cfg.Punt.Distance[12] != 52 {
		t.Errorf("punt distance[12] = %d, want 52", cfg.Punt.Distance[12])
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Rules)
	}{
		{"short kickoff table", func(r *Rules) { r.Kickoff.Returns = []int{0, 15} }},
		{"short long-return table", func(r *Rules) { r.Kickoff.LongReturns = nil }},
		{"missing punt roll", func(r *Rules) { delete(r.Punt.Distance, 7) }},
		{"no field goal table", func(r *Rules) { r.Placekick.FieldGoal = nil }},
		{"bad probability", func(r *Rules) { r.Placekick.TwoPoint = 1.5 }},
		{"zero quarter", func(r *Rules) { r.Clock.QuarterSeconds = 0 }},
		{"two-minute past quarter", func(r *Rules) { r.Clock.TwoMinuteMark = 900 }},
		{"overtime without time", func(r *Rules) { r.Overtime.Seconds = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := DefaultRules()
			tt.mutate(&r)
			if err := r.Validate(); !errors.Is(err, ErrInvalidRules) {
				t.Errorf("Validate() = %v, want ErrInvalidRules", err)
			}
		})
	}

	if err := DefaultRules().Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadRulesCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte("placekick:\n  extra_point: 0.9\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules failed: %v", err)
	}
	if cfg.Placekick.ExtraPoint != 0.9 {
		t.Errorf("extra point = %v, want 0.9", cfg.Placekick.ExtraPoint)
	}

	if _, err := LoadRules(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom path")
	}
}

func TestApplyStyle(t *testing.T) {
	cfg := DefaultCoach()
	ApplyStyle(&cfg, StyleAggressive)
	if cfg.GoForItToGo <= DefaultCoach().GoForItToGo {
		t.Errorf("aggressive go-for-it distance %d should exceed balanced", cfg.GoForItToGo)
	}
	if cfg.Style != "aggressive" {
		t.Errorf("style = %q", cfg.Style)
	}

	ApplyStyle(&cfg, StyleBalanced)
	if !reflect.DeepEqual(cfg, DefaultCoach()) {
		t.Errorf("balanced should restore defaults, got %+v", cfg)
	}

	if _, err := ParseStyle("reckless"); err == nil {
		t.Error("unknown style should fail")
	}
	if s, err := ParseStyle("conservative"); err != nil || s != StyleConservative {
		t.Errorf("ParseStyle(conservative) = %v, %v", s, err)
	}
}
