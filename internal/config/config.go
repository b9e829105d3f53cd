// Package config provides YAML-based rules configuration loading and
// coach style presets for the simulator.
package config

// Rules contains every tunable the rules engine reads.
type Rules struct {
	Clock     ClockConfig     `yaml:"clock"`
	Kickoff   KickoffConfig   `yaml:"kickoff"`
	Punt      PuntConfig      `yaml:"punt"`
	Placekick PlacekickConfig `yaml:"placekick"`
	Overtime  OvertimeConfig  `yaml:"overtime"`
	Coach     CoachConfig     `yaml:"coach"`
}

// ClockConfig defines period length and the seconds each play type costs.
type ClockConfig struct {
	QuarterSeconds int `yaml:"quarter_seconds"`
	TwoMinuteMark  int `yaml:"two_minute_mark"`

	ShortPlay     int `yaml:"short_play"`      // gain or loss up to LongGainYards
	LongGain      int `yaml:"long_gain"`       // gain beyond LongGainYards
	LongGainYards int `yaml:"long_gain_yards"` // threshold between the two
	Incomplete    int `yaml:"incomplete"`
	Interception  int `yaml:"interception"`
	Fumble        int `yaml:"fumble"`
	Penalty       int `yaml:"penalty"`
	Kick          int `yaml:"kick"`          // kickoff, punt, field goal
	OutOfBounds   int `yaml:"out_of_bounds"` // overrides the category
	ExtraPoint    int `yaml:"extra_point"`
}

// KickoffConfig defines kickoff placement tables.
type KickoffConfig struct {
	// Returns maps d6 rows 1..5 to the receiver's own yard line; 0 is a touchback.
	// Row 6 rolls again on LongReturns.
	Returns []int `yaml:"returns"`
	// LongReturns maps the second d6 (1..6) to the receiver's own yard line;
	// 0 is a fumble the kicking team recovers at FumbleSpot.
	LongReturns []int `yaml:"long_returns"`
	FumbleSpot  int   `yaml:"fumble_spot"` // receiver's own yard line

	KickFrom       int `yaml:"kick_from"`        // kicker's own yard line on a normal kickoff
	SafetyKickFrom int `yaml:"safety_kick_from"` // kicker's own yard line after a safety

	OnsideSpot            int     `yaml:"onside_spot"` // kicker's own yard line
	OnsideRecoverLeading  float64 `yaml:"onside_recover_leading"`
	OnsideRecoverTrailing float64 `yaml:"onside_recover_trailing"`
}

// PuntConfig defines punt distance and return tables, keyed by 2d6 sum.
type PuntConfig struct {
	Distance       map[int]int `yaml:"distance"`
	Returns        map[int]int `yaml:"returns"`
	LongGainRoll   int         `yaml:"long_gain_roll"`
	FairCatchRoll  int         `yaml:"fair_catch_roll"`
	FumbleMaxRoll  int         `yaml:"fumble_max_roll"`
	FumbleChance   float64     `yaml:"fumble_chance"`
	KickerRecovery float64     `yaml:"kicker_recovery"`
	FreeKickFrom   int         `yaml:"free_kick_from"` // kicker's own yard line on a safety punt
}

// FieldGoalBand is one row of the field-goal table: attempts up to MaxYards
// succeed when 2d6 totals at least Need.
type FieldGoalBand struct {
	MaxYards int `yaml:"max_yards"`
	Need     int `yaml:"need"`
}

// PlacekickConfig defines field-goal and try odds.
type PlacekickConfig struct {
	FieldGoal      []FieldGoalBand `yaml:"field_goal"`
	SnapDistance   int             `yaml:"snap_distance"` // yards added to yards-to-goal for attempt distance
	HoldDepth      int             `yaml:"hold_depth"`    // yards behind the line the kick is spotted
	ExtraPoint     float64         `yaml:"extra_point"`
	TwoPoint       float64         `yaml:"two_point"`
	TwoPointLateBy int             `yaml:"two_point_late_by"` // max deficit that triggers going for two
	TwoPointClock  int             `yaml:"two_point_clock"`   // seconds left in Q4
}

// OvertimeConfig defines the sudden-death period.
type OvertimeConfig struct {
	Enabled bool `yaml:"enabled"`
	Seconds int  `yaml:"seconds"`
}

// CoachConfig tunes the computer play-caller.
type CoachConfig struct {
	Style          string  `yaml:"style"`
	MaxFieldGoal   int     `yaml:"max_field_goal"`     // longest attempt offered
	GoForItToGo    int     `yaml:"go_for_it_to_go"`    // 4th-down distance it will go for
	GoForItInside  int     `yaml:"go_for_it_inside"`   // yards-to-goal inside which it will go for it
	PassBias       float64 `yaml:"pass_bias"`          // 0 = all runs, 1 = all passes
	OnsideTrailing int     `yaml:"onside_trailing_by"` // deficit that triggers a late onside kick
	OnsideClock    int     `yaml:"onside_clock"`       // seconds left in Q4
	SafetyPunt     bool    `yaml:"safety_punt"`        // free kick as a punt from the 20
}
