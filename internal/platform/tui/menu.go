package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gridiron/internal/charts"
	"github.com/vovakirdan/gridiron/internal/game"
	"github.com/vovakirdan/gridiron/internal/registry"
)

// menuStage is the question the menu is asking.
type menuStage int

const (
	stageCoach menuStage = iota
	stageDeck
	stageSide
)

// MenuResult is what the player picked.
type MenuResult struct {
	CPUCoach string
	Deck     string
	Human    game.Side
}

// MenuModel is the Bubble Tea model for setting up a game.
type MenuModel struct {
	coaches        []registry.CoachInfo
	decks          []string
	stage          menuStage
	cursor         int
	result         MenuResult
	width          int
	height         int
	keyMapper      *KeyMapper
	quitting       bool
	done           bool
	openScoreboard bool // True if user pressed Tab for results
}

// NewMenuModel creates a setup menu over the registered coaches and the
// decks in tables.
func NewMenuModel(tables *charts.Tables, width, height int) MenuModel {
	return MenuModel{
		coaches:   registry.List(),
		decks:     tables.DeckNames(),
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "tab" {
		m.openScoreboard = true
		return m, tea.Quit
	}

	switch m.keyMapper.MapKey(msg) {
	case ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case ActionBack:
		if m.stage > stageCoach {
			m.stage--
			m.cursor = 0
		}

	case ActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case ActionDown:
		if m.cursor < len(m.options())-1 {
			m.cursor++
		}

	case ActionSelect:
		if len(m.options()) == 0 {
			return m, nil
		}
		switch m.stage {
		case stageCoach:
			m.result.CPUCoach = m.coaches[m.cursor].ID
		case stageDeck:
			m.result.Deck = m.decks[m.cursor]
		case stageSide:
			m.result.Human = game.Side(m.cursor)
			m.done = true
			return m, tea.Quit
		}
		m.stage++
		m.cursor = 0
	}
	return m, nil
}

func (m MenuModel) options() []string {
	switch m.stage {
	case stageCoach:
		opts := make([]string, len(m.coaches))
		for i, c := range m.coaches {
			opts[i] = c.Title
		}
		return opts
	case stageDeck:
		return m.decks
	default:
		return []string{"Home", "Away"}
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("  G R I D I R O N  ", m.width)))
	b.WriteString("\n\n")

	subtitle := [...]string{"Pick your opponent", "Pick your playbook", "Pick your side"}[m.stage]
	b.WriteString(centerText(subtitle, m.width))
	b.WriteString("\n\n")

	for i, opt := range m.options() {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(fmt.Sprintf("%s%s", cursor, opt), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Esc: Back  |  Tab: Results  |  Q: Quit"
	b.WriteString(helpStyle.Render(centerText(controls, m.width)))
	b.WriteString("\n")
	return b.String()
}

// Result returns the picks, and whether the player finished the menu.
func (m MenuModel) Result() (MenuResult, bool) {
	return m.result, m.done
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested the results browser.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// RunMenu shows the setup menu and returns the final model.
func RunMenu(tables *charts.Tables, width, height int) (MenuModel, error) {
	p := tea.NewProgram(NewMenuModel(tables, width, height), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return MenuModel{}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuModel{}, fmt.Errorf("tui: unexpected menu model %T", final)
	}
	return m, nil
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}
