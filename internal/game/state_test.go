package game

import "testing"

func TestYardsToGoal(t *testing.T) {
	tests := []struct {
		pos  int
		side Side
		want int
	}{
		{25, Home, 75},
		{25, Away, 25},
		{95, Home, 5},
		{0, Away, 0},
	}
	for _, tt := range tests {
		if got := YardsToGoal(tt.pos, tt.side); got != tt.want {
			t.Errorf("YardsToGoal(%d, %v) = %d, want %d", tt.pos, tt.side, got, tt.want)
		}
	}
}

func TestAdvance(t *testing.T) {
	if got := Advance(25, 7, Home); got != 32 {
		t.Errorf("Advance home = %d, want 32", got)
	}
	if got := Advance(25, 7, Away); got != 18 {
		t.Errorf("Advance away = %d, want 18", got)
	}
	if got := Advance(25, -5, Away); got != 30 {
		t.Errorf("Advance away loss = %d, want 30", got)
	}
}

func TestChangePossession(t *testing.T) {
	s := New(Home)
	s.Down = 3
	s.ToGo = 4
	next := s.ChangePossession()
	if next.Possession != Away || next.Down != 1 || next.ToGo != 10 {
		t.Errorf("ChangePossession = %+v", next)
	}
	if s.Possession != Home || s.Down != 3 {
		t.Error("ChangePossession must not modify the receiver")
	}
}

func TestScore(t *testing.T) {
	sc := Score{}.Add(Home, 7).Add(Away, 3)
	if sc.Margin(Home) != 4 || sc.Margin(Away) != -4 {
		t.Errorf("margin = %d/%d", sc.Margin(Home), sc.Margin(Away))
	}
}

func TestFormatting(t *testing.T) {
	if got := FormatClock(125); got != "2:05" {
		t.Errorf("FormatClock = %q", got)
	}
	if got := FieldPosition(70); got != "AWAY 30" {
		t.Errorf("FieldPosition = %q", got)
	}
	if got := OwnYardLine(Away, 20); got != 80 {
		t.Errorf("OwnYardLine = %d", got)
	}
}
