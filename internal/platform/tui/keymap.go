package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Action is an input the play screen understands.
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionSelect
	ActionPunt
	ActionFieldGoal
	ActionAccept
	ActionDecline
	ActionHelp
	ActionBack
	ActionQuit
)

// KeyMap defines the key bindings for the play screen.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Select    key.Binding
	Punt      key.Binding
	FieldGoal key.Binding
	Accept    key.Binding
	Decline   key.Binding
	Help      key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Punt, k.FieldGoal, k.Accept, k.Decline, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Punt, k.FieldGoal},
		{k.Accept, k.Decline},
		{k.Help, k.Back, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up/k", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("down/j", "next"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "call it"),
		),
		Punt: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "punt"),
		),
		FieldGoal: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "field goal"),
		),
		Accept: key.NewBinding(
			key.WithKeys("a", "y"),
			key.WithHelp("a", "accept flag"),
		),
		Decline: key.NewBinding(
			key.WithKeys("d", "n"),
			key.WithHelp("d", "decline flag"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys KeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultKeyMap()}
}

// Keys returns the bindings the mapper matches against.
func (km *KeyMapper) Keys() KeyMap {
	return km.keys
}

// MapKey translates a key message to an action.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) Action {
	k := km.keys
	switch {
	case key.Matches(msg, k.Quit):
		return ActionQuit
	case key.Matches(msg, k.Up):
		return ActionUp
	case key.Matches(msg, k.Down):
		return ActionDown
	case key.Matches(msg, k.Select):
		return ActionSelect
	case key.Matches(msg, k.Punt):
		return ActionPunt
	case key.Matches(msg, k.FieldGoal):
		return ActionFieldGoal
	case key.Matches(msg, k.Accept):
		return ActionAccept
	case key.Matches(msg, k.Decline):
		return ActionDecline
	case key.Matches(msg, k.Help):
		return ActionHelp
	case key.Matches(msg, k.Back):
		return ActionBack
	}
	return ActionNone
}
