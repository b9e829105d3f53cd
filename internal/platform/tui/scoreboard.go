package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gridiron/internal/registry"
	"github.com/vovakirdan/gridiron/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the coach sidebar
	sidebarWidth       = 24  // Width of coach sidebar
	maxGames           = 100 // Max games to load
)

// ScoreboardKeyMap defines the key bindings for the results browser.
type ScoreboardKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextCoach key.Binding
	PrevCoach key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextCoach, k.PrevCoach, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextCoach, k.PrevCoach},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextCoach: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next coach"),
		),
		PrevCoach: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev coach"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for browsing stored games.
type ScoreboardModel struct {
	coaches     []string // registered coaches plus the human player
	coachCursor int
	record      *storage.CoachRecord
	store       *storage.Store
	games       []storage.GameRecord
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	err         error
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewScoreboardModel creates a results browser over store.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	coaches := []string{HumanCoach}
	for _, c := range registry.List() {
		coaches = append(coaches, c.ID)
	}

	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		coaches:     coaches,
		store:       store,
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.loadGames()
	m.loadRecord()
	return m
}

func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Home", Width: 13},
		{Title: "Away", Width: 13},
		{Title: "Score", Width: 8},
		{Title: "Plays", Width: 6},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-8)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func (m *ScoreboardModel) loadGames() {
	m.games = nil
	if m.store != nil {
		games, err := m.store.RecentGames(context.Background(), maxGames)
		m.games, m.err = games, err
	}
	m.updateTableRows()
}

func (m *ScoreboardModel) loadRecord() {
	m.record = nil
	if m.store == nil || len(m.coaches) == 0 {
		return
	}
	rec, err := m.store.CoachRecord(context.Background(), m.coaches[m.coachCursor])
	if err != nil {
		m.err = err
		return
	}
	m.record = rec
}

func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.games))
	for i, g := range m.games {
		score := fmt.Sprintf("%d-%d", g.HomeScore, g.AwayScore)
		if g.Overtime {
			score += " OT"
		}
		rows[i] = table.Row{
			g.CreatedAt.Format("Jan 02 15:04"),
			g.HomeCoach,
			g.AwayCoach,
			score,
			fmt.Sprint(g.Plays),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextCoach):
			if len(m.coaches) > 0 {
				m.coachCursor = (m.coachCursor + 1) % len(m.coaches)
				m.loadRecord()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevCoach):
			if len(m.coaches) > 0 {
				m.coachCursor = (m.coachCursor - 1 + len(m.coaches)) % len(m.coaches)
				m.loadRecord()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(centerText("RESULTS", m.width)))
	b.WriteString("\n\n")

	tableBox := hudStyle.Render(m.table.View())
	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", tableBox))
	} else {
		b.WriteString(centerText(fmt.Sprintf("< %s >", m.recordLine()), m.width))
		b.WriteString("\n\n")
		b.WriteString(tableBox)
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("error: " + m.err.Error()))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) renderSidebar() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sb strings.Builder
	sb.WriteString("Coaches\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")
	for i, c := range m.coaches {
		if i == m.coachCursor {
			sb.WriteString(cursorStyle.Render("> " + c))
		} else {
			sb.WriteString("  " + c)
		}
		sb.WriteString("\n")
	}
	if m.record != nil {
		r := m.record
		fmt.Fprintf(&sb, "\n%d-%d-%d in %d\n", r.Wins, r.Losses, r.Ties, r.Games)
		fmt.Fprintf(&sb, "PF %d  PA %d", r.PointsFor, r.PointsAgainst)
	}
	return style.Render(sb.String())
}

// recordLine is the one-line coach summary for narrow terminals.
func (m ScoreboardModel) recordLine() string {
	if len(m.coaches) == 0 {
		return "no coaches"
	}
	name := m.coaches[m.coachCursor]
	if m.record == nil {
		return name
	}
	r := m.record
	return fmt.Sprintf("%s %d-%d-%d", name, r.Wins, r.Losses, r.Ties)
}

// IsQuitting returns true if user requested to quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// IsGoingBack returns true if user pressed back.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// RunScoreboard shows the results browser.
// Returns true if user wants to go back to the menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (bool, error) {
	model := NewScoreboardModel(store, width, height)
	p := tea.NewProgram(model, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
