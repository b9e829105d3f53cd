package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gridiron/internal/charts"
	"github.com/vovakirdan/gridiron/internal/game"
	"github.com/vovakirdan/gridiron/internal/registry"
	"github.com/vovakirdan/gridiron/internal/storage"
)

func menuPress(t *testing.T, m MenuModel, msgs ...tea.KeyMsg) MenuModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(MenuModel)
	}
	return m
}

func TestMenuPicks(t *testing.T) {
	tables, err := charts.Default()
	if err != nil {
		t.Fatal(err)
	}
	m := NewMenuModel(tables, 80, 24)
	if !strings.Contains(m.View(), "Pick your opponent") {
		t.Fatal("menu does not start with the opponent")
	}

	down := tea.KeyMsg{Type: tea.KeyDown}
	m = menuPress(t, m, down, enter)
	m = menuPress(t, m, down, down, enter)
	if _, done := m.Result(); done {
		t.Fatal("menu finished before the side was picked")
	}
	m = menuPress(t, m, down, enter)

	res, done := m.Result()
	if !done {
		t.Fatal("menu not finished")
	}
	want := MenuResult{
		CPUCoach: registry.List()[1].ID,
		Deck:     tables.DeckNames()[2],
		Human:    game.Away,
	}
	if res != want {
		t.Errorf("result = %+v, want %+v", res, want)
	}
}

func TestMenuBackAndScoreboard(t *testing.T) {
	tables, err := charts.Default()
	if err != nil {
		t.Fatal(err)
	}
	m := NewMenuModel(tables, 80, 24)
	m = menuPress(t, m, enter, tea.KeyMsg{Type: tea.KeyEsc})
	if m.stage != stageCoach || !strings.Contains(m.View(), "Pick your opponent") {
		t.Errorf("esc did not go back, stage %d", m.stage)
	}

	m = menuPress(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !m.WantsScoreboard() {
		t.Error("tab should open the results")
	}

	m = menuPress(t, NewMenuModel(tables, 80, 24), runes("q"))
	if !m.IsQuitting() || m.View() != "" {
		t.Error("q should quit")
	}
}

func TestScoreboard(t *testing.T) {
	ctx := context.Background()
	store, err := storage.Open(filepath.Join(t.TempDir(), "games.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	for _, g := range []storage.GameRecord{
		{HomeCoach: HumanCoach, AwayCoach: "balanced", HomeScore: 17, AwayScore: 10, Winner: storage.WinnerHome, Plays: 140},
		{HomeCoach: "aggressive", AwayCoach: HumanCoach, HomeScore: 20, AwayScore: 20, Winner: storage.WinnerTie, Overtime: true},
	} {
		if _, err := store.SaveGame(ctx, g); err != nil {
			t.Fatal(err)
		}
	}

	m := NewScoreboardModel(store, 100, 30)
	if len(m.games) != 2 || m.err != nil {
		t.Fatalf("loaded %d games, err %v", len(m.games), m.err)
	}
	if m.record == nil || m.record.Coach != HumanCoach || m.record.Games != 2 || m.record.Wins != 1 || m.record.Ties != 1 {
		t.Errorf("human record = %+v", m.record)
	}
	view := m.View()
	if !strings.Contains(view, "RESULTS") || !strings.Contains(view, "20-20 OT") {
		t.Errorf("view missing results:\n%s", view)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.record == nil || m.record.Coach != m.coaches[1] {
		t.Errorf("record after tab = %+v", m.record)
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(ScoreboardModel)
	if m.coachCursor != len(m.coaches)-1 {
		t.Errorf("shift+tab should wrap, cursor %d", m.coachCursor)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(ScoreboardModel).IsGoingBack() {
		t.Error("esc should go back")
	}
}

func TestRenderHelpers(t *testing.T) {
	s := game.New(game.Home)
	s.Possession = game.Home
	s.BallOn = 96
	s.ToGo = 4
	s.Down = 3
	if got := downLine(s); got != "3rd & goal at AWAY 4" {
		t.Errorf("downLine = %q", got)
	}
	s.BallOn = 40
	if got := downLine(s); got != "3rd & 4 at HOME 40" {
		t.Errorf("downLine = %q", got)
	}
	if periodLabel(5) != "OT" || periodLabel(2) != "Q2" {
		t.Error("periodLabel")
	}

	items := []string{"a", "b", "c", "d", "e"}
	out := renderChoices(items, 4, 2)
	if strings.Contains(out, "  c\n") || !strings.Contains(out, "d") {
		t.Errorf("renderChoices did not scroll to the cursor:\n%s", out)
	}
}
