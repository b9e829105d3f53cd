package rules

import (
	"testing"

	"github.com/vovakirdan/gridiron/internal/game"
)

func TestEndZones(t *testing.T) {
	for _, pos := range []int{0, 100} {
		if !IsInEndZone(pos) {
			t.Errorf("IsInEndZone(%d) = false", pos)
		}
	}
	for _, pos := range []int{1, 50, 99} {
		if IsInEndZone(pos) || IsThroughEndZone(pos) {
			t.Errorf("%d should be in the field of play", pos)
		}
	}
	for _, pos := range []int{-1, 101} {
		if !IsThroughEndZone(pos) {
			t.Errorf("IsThroughEndZone(%d) = false", pos)
		}
	}
}

func TestTouchbackSpot(t *testing.T) {
	if got := TouchbackSpot(game.Home); got != 20 {
		t.Errorf("home touchback = %d, want 20", got)
	}
	if got := TouchbackSpot(game.Away); got != 80 {
		t.Errorf("away touchback = %d, want 80", got)
	}
}

func TestMissedFieldGoalSpot(t *testing.T) {
	tests := []struct {
		name   string
		los    int
		kicker game.Side
		want   int
	}{
		{"home kicks from 30", 30, game.Home, 23},
		{"home kicks from 18", 18, game.Home, 11},
		{"home deep in away territory", 80, game.Home, 73},
		{"away kicks near home goal", 30, game.Away, 37},
		{"away kick spot inside home 20", 10, game.Away, 20},
		{"away kicks from its own end", 82, game.Away, 89},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MissedFieldGoalSpot(tt.los, tt.kicker, 7); got != tt.want {
				t.Errorf("MissedFieldGoalSpot(%d, %v) = %d, want %d", tt.los, tt.kicker, got, tt.want)
			}
		})
	}
}

func TestKickSpotClamps(t *testing.T) {
	if got := KickSpot(3, game.Home, 7); got != 0 {
		t.Errorf("KickSpot = %d, want 0", got)
	}
	if got := KickSpot(97, game.Away, 7); got != 100 {
		t.Errorf("KickSpot = %d, want 100", got)
	}
}

func TestReachedGoal(t *testing.T) {
	if !ReachedGoal(100, game.Home) || !ReachedGoal(104, game.Home) || ReachedGoal(99, game.Home) {
		t.Error("home goal detection wrong")
	}
	if !ReachedGoal(0, game.Away) || ReachedGoal(1, game.Away) {
		t.Error("away goal detection wrong")
	}
	if !ReachedOwnGoal(0, game.Home) || !ReachedOwnGoal(100, game.Away) || ReachedOwnGoal(1, game.Home) {
		t.Error("own goal detection wrong")
	}
}
