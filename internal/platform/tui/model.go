// Package tui provides the terminal screens: the interactive game against a
// computer coach, the setup menu and the results browser.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gridiron/internal/charts"
	_ "github.com/vovakirdan/gridiron/internal/coach" // registers the coaching styles
	"github.com/vovakirdan/gridiron/internal/config"
	"github.com/vovakirdan/gridiron/internal/dice"
	"github.com/vovakirdan/gridiron/internal/flow"
	"github.com/vovakirdan/gridiron/internal/game"
	"github.com/vovakirdan/gridiron/internal/registry"
	"github.com/vovakirdan/gridiron/internal/storage"
	"github.com/vovakirdan/gridiron/internal/telemetry"
)

// maxLogLines is how much play-by-play the model keeps.
const maxLogLines = 200

// HumanCoach is the coach name stored for the player's side.
const HumanCoach = "human"

// Phase is what the screen is waiting for.
type Phase int

const (
	PhaseOffense Phase = iota // the player calls a play
	PhaseDefense              // the player picks a defense
	PhasePenalty              // the player accepts or declines a flag
	PhaseFinal
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseOffense:
		return "offense"
	case PhaseDefense:
		return "defense"
	case PhasePenalty:
		return "penalty"
	case PhaseFinal:
		return "final"
	default:
		return "unknown"
	}
}

// GameConfig describes an interactive game.
type GameConfig struct {
	Seed     int64
	Human    game.Side
	CPUCoach string // registered coach ID
	Deck     string // the player's deck
	CPUDeck  string
	Rules    config.Rules
	Tables   *charts.Tables
	Hook     telemetry.Hook
	Logger   *log.Logger
}

// Model is the Bubble Tea model for a game against a computer coach.
type Model struct {
	engine    *flow.Engine
	cpu       registry.Coach
	human     game.Side
	deck      string
	seed      int64
	state     game.State
	pending   *flow.PendingPenalty
	plays     []string
	cursor    int
	snaps     int
	scoring   []flow.ScoreEvent
	log       []string
	keyMapper *KeyMapper
	help      help.Model
	store     *storage.Store
	saved     bool
	err       error
	width     int
	height    int
	quitting  bool
}

// NewModel builds the engine and coach for a game and plays the opening
// kickoff. store may be nil.
func NewModel(cfg GameConfig, store *storage.Store) (Model, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	tables := cfg.Tables
	if tables == nil {
		var err error
		if tables, err = charts.Default(); err != nil {
			return Model{}, err
		}
	}
	deck := cfg.Deck
	if deck == "" {
		deck = charts.DeckProStyle
	}
	plays := tables.Plays(deck)
	if len(plays) == 0 {
		return Model{}, fmt.Errorf("tui: deck %q has no plays", deck)
	}
	cpuID := cfg.CPUCoach
	if cpuID == "" {
		cpuID = string(config.StyleBalanced)
	}

	stream := dice.New(cfg.Seed)
	cpu, err := registry.Create(cpuID, registry.Setup{Rules: cfg.Rules, Tables: tables, Deck: cfg.CPUDeck, Stream: stream})
	if err != nil {
		return Model{}, err
	}
	engine := flow.New(flow.Options{
		Rules:    cfg.Rules,
		Tables:   tables,
		Stream:   stream,
		Policies: map[game.Side]flow.Policy{cfg.Human.Other(): cpu},
		Humans:   []game.Side{cfg.Human},
		Hook:     cfg.Hook,
		Logger:   logger,
	})

	h := help.New()
	h.ShowAll = false
	m := Model{
		engine:    engine,
		cpu:       cpu,
		human:     cfg.Human,
		deck:      deck,
		seed:      cfg.Seed,
		plays:     plays,
		keyMapper: NewKeyMapper(),
		help:      h,
		store:     store,
		width:     80,
		height:    24,
	}

	opening := game.Home
	if stream.Float64() >= 0.5 {
		opening = game.Away
	}
	m.apply(engine.Start(opening))
	return m, nil
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and advances the game.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKey(msg)
	if action == ActionQuit {
		m.quitting = true
		return m, tea.Quit
	}
	if action == ActionHelp {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	phase := m.Phase()
	switch action {
	case ActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case ActionDown:
		if m.cursor < len(m.choices())-1 {
			m.cursor++
		}
	case ActionSelect:
		switch phase {
		case PhaseOffense:
			m.snap(flow.PlayInput{Call: flow.CallPlay, Deck: m.deck, Play: m.plays[m.cursor]})
		case PhaseDefense:
			m.defend(charts.Defenses[m.cursor].Label)
		case PhaseFinal:
			m.quitting = true
			return m, tea.Quit
		}
	case ActionPunt:
		if phase == PhaseOffense {
			m.snap(flow.PlayInput{Call: flow.CallPunt, Deck: m.deck})
		}
	case ActionFieldGoal:
		if phase == PhaseOffense {
			m.snap(flow.PlayInput{Call: flow.CallFieldGoal, Deck: m.deck})
		}
	case ActionAccept, ActionDecline:
		if phase == PhasePenalty {
			d := flow.Accept
			if action == ActionDecline {
				d = flow.Decline
			}
			pending := *m.pending
			m.pending = nil
			step, err := m.engine.FinalizePenaltyDecision(pending, d)
			m.finish(step, err)
		}
	}
	return m, nil
}

// snap resolves the player's offensive call against the computer's defense.
func (m *Model) snap(in flow.PlayInput) {
	if in.Call == flow.CallPlay {
		in.Defense = m.cpu.ChooseDefense(m.state)
	}
	m.snaps++
	step, err := m.engine.ResolveSnap(m.state, in)
	m.finish(step, err)
}

// defend resolves the computer's offensive call against the player's defense.
func (m *Model) defend(defense string) {
	in, err := m.cpu.ChooseOffense(m.state)
	if err != nil {
		m.err = err
		return
	}
	if in.Call == flow.CallPlay {
		in.Defense = defense
	}
	m.snaps++
	step, err := m.engine.ResolveSnap(m.state, in)
	m.finish(step, err)
}

func (m *Model) finish(step flow.Step, err error) {
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.apply(step)
	if m.state.GameOver {
		m.save()
	}
}

// apply folds a step's events into the model.
func (m *Model) apply(step flow.Step) {
	for _, ev := range step.Events {
		switch ev := ev.(type) {
		case flow.LogEvent:
			m.log = append(m.log, ev.Text)
		case flow.ScoreEvent:
			m.scoring = append(m.scoring, ev)
		case flow.ChoiceRequiredEvent:
			pending := ev.Pending
			m.pending = &pending
		}
	}
	if over := len(m.log) - maxLogLines; over > 0 {
		m.log = append([]string(nil), m.log[over:]...)
	}
	m.state = step.State
	m.cursor = 0
}

// save stores the finished game once. Best-effort: the final screen stays up
// even when the database is unavailable.
func (m *Model) save() {
	if m.saved || m.store == nil {
		return
	}
	m.saved = true

	rec := storage.GameRecord{
		Seed:      m.seed,
		HomeCoach: HumanCoach,
		AwayCoach: m.cpu.ID(),
		HomeScore: m.state.Score.Home,
		AwayScore: m.state.Score.Away,
		Plays:     m.snaps,
		Overtime:  m.state.Quarter > 4,
	}
	if m.human == game.Away {
		rec.HomeCoach, rec.AwayCoach = m.cpu.ID(), HumanCoach
	}
	switch {
	case rec.HomeScore > rec.AwayScore:
		rec.Winner = storage.WinnerHome
	case rec.AwayScore > rec.HomeScore:
		rec.Winner = storage.WinnerAway
	default:
		rec.Winner = storage.WinnerTie
	}
	for _, ev := range m.scoring {
		rec.Scoring = append(rec.Scoring, storage.ScoringPlay{
			Quarter: ev.Quarter,
			Clock:   ev.Clock,
			Side:    ev.Side.String(),
			Kind:    ev.Kind.String(),
			Points:  ev.Points,
		})
	}
	if _, err := m.store.SaveGame(context.Background(), rec); err != nil {
		m.err = err
	}
}

// Phase reports what the model is waiting for.
func (m Model) Phase() Phase {
	switch {
	case m.state.GameOver:
		return PhaseFinal
	case m.pending != nil:
		return PhasePenalty
	case m.state.Possession == m.human:
		return PhaseOffense
	default:
		return PhaseDefense
	}
}

// State returns the current game state.
func (m Model) State() game.State { return m.state }

// Pending returns the flag awaiting a decision, if any.
func (m Model) Pending() *flow.PendingPenalty { return m.pending }

// Log returns the play-by-play so far.
func (m Model) Log() []string { return m.log }

// Err returns the last error the engine or the store reported.
func (m Model) Err() error { return m.err }

func (m Model) choices() []string {
	switch m.Phase() {
	case PhaseOffense:
		return m.plays
	case PhaseDefense:
		labels := make([]string, len(charts.Defenses))
		for i, d := range charts.Defenses {
			labels[i] = d.Letter + "  " + d.Label
		}
		return labels
	default:
		return nil
	}
}

// View renders the current screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(renderHUD(m.state, m.human, m.cpu.Title(), m.width))
	b.WriteString("\n\n")

	switch m.Phase() {
	case PhaseFinal:
		b.WriteString(titleStyle.Render(finalLine(m.state, m.human)))
		b.WriteString("\n")
	case PhasePenalty:
		b.WriteString(titleStyle.Render(penaltyPrompt(*m.pending)))
		b.WriteString("\n")
	default:
		prompt := "Call a play"
		if m.Phase() == PhaseDefense {
			prompt = "Pick a defense"
		}
		b.WriteString(titleStyle.Render(prompt))
		b.WriteString("\n")
		b.WriteString(renderChoices(m.choices(), m.cursor, m.listHeight()))
	}

	b.WriteString("\n")
	b.WriteString(renderLog(m.log, m.logHeight(), m.width))
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("error: " + m.err.Error()))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keyMapper.Keys())))
	return b.String()
}

func (m Model) listHeight() int {
	return max(3, m.height/2-6)
}

func (m Model) logHeight() int {
	return max(3, m.height-m.listHeight()-12)
}

// Run starts the Bubble Tea program for an interactive game.
func Run(cfg GameConfig, store *storage.Store) error {
	model, err := NewModel(cfg, store)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}
