package config

import (
	_ "embed"
)

//go:embed defaults/rules.yaml
var defaultRulesYAML []byte

// DefaultRules returns the default rules configuration.
func DefaultRules() Rules {
	return Rules{
		Clock: ClockConfig{
			QuarterSeconds: 900,
			TwoMinuteMark:  120,
			ShortPlay:      30,
			LongGain:       45,
			LongGainYards:  20,
			Incomplete:     15,
			Interception:   30,
			Fumble:         15,
			Penalty:        15,
			Kick:           15,
			OutOfBounds:    15,
			ExtraPoint:     0,
		},
		Kickoff: KickoffConfig{
			Returns:               []int{0, 15, 20, 25, 30},
			LongReturns:           []int{0, 35, 40, 45, 55, 65},
			FumbleSpot:            25,
			KickFrom:              35,
			SafetyKickFrom:        25,
			OnsideSpot:            45,
			OnsideRecoverLeading:  0.15,
			OnsideRecoverTrailing: 0.25,
		},
		Punt: PuntConfig{
			Distance: map[int]int{
				2: 30, 3: 32, 4: 34, 5: 36, 6: 38, 7: 40,
				8: 42, 9: 44, 10: 46, 11: 49, 12: 52,
			},
			Returns: map[int]int{
				3: 2, 4: 3, 5: 4, 6: 6, 7: 8, 8: 10, 9: 12, 10: 15, 11: 20,
			},
			LongGainRoll:   2,
			FairCatchRoll:  12,
			FumbleMaxRoll:  4,
			FumbleChance:   0.15,
			KickerRecovery: 0.5,
			FreeKickFrom:   20,
		},
		Placekick: PlacekickConfig{
			FieldGoal: []FieldGoalBand{
				{MaxYards: 29, Need: 3},
				{MaxYards: 39, Need: 5},
				{MaxYards: 45, Need: 7},
				{MaxYards: 50, Need: 9},
				{MaxYards: 99, Need: 11},
			},
			SnapDistance:   17,
			HoldDepth:      7,
			ExtraPoint:     0.98,
			TwoPoint:       0.5,
			TwoPointLateBy: 2,
			TwoPointClock:  300,
		},
		Overtime: OvertimeConfig{
			Enabled: true,
			Seconds: 600,
		},
		Coach: DefaultCoach(),
	}
}

// DefaultCoach returns the balanced coach configuration.
func DefaultCoach() CoachConfig {
	return CoachConfig{
		Style:          string(StyleBalanced),
		MaxFieldGoal:   45,
		GoForItToGo:    2,
		GoForItInside:  40,
		PassBias:       0.5,
		OnsideTrailing: 9,
		OnsideClock:    180,
		SafetyPunt:     false,
	}
}
