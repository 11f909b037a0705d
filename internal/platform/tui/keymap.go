package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/collide/internal/core"
)

// PlaygroundKeyMap defines the key bindings for the playground.
type PlaygroundKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	RotateCCW key.Binding
	RotateCW  key.Binding
	Grow      key.Binding
	Shrink    key.Binding
	Switch    key.Binding
	Spin      key.Binding
	Reset     key.Binding
	Capture   key.Binding
	History   key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k PlaygroundKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.RotateCW, k.Grow, k.Switch, k.Spin, k.Capture, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k PlaygroundKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.RotateCCW, k.RotateCW, k.Grow, k.Shrink},
		{k.Switch, k.Spin, k.Reset},
		{k.Capture, k.History, k.Quit},
	}
}

// DefaultPlaygroundKeyMap returns default key bindings.
func DefaultPlaygroundKeyMap() PlaygroundKeyMap {
	return PlaygroundKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "move"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "move right"),
		),
		RotateCCW: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "rotate ccw"),
		),
		RotateCW: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("[/]", "rotate"),
		),
		Grow: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+/-", "resize"),
		),
		Shrink: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "shrink"),
		),
		Switch: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch"),
		),
		Spin: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "spin"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Capture: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "capture"),
		),
		History: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "history"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to playground actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	Keys PlaygroundKeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{Keys: DefaultPlaygroundKeyMap()}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	k := km.Keys

	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, k.Up):
		return core.ActionUp, false
	case key.Matches(msg, k.Down):
		return core.ActionDown, false
	case key.Matches(msg, k.Left):
		return core.ActionLeft, false
	case key.Matches(msg, k.Right):
		return core.ActionRight, false
	case key.Matches(msg, k.RotateCW):
		return core.ActionRotateCW, false
	case key.Matches(msg, k.RotateCCW):
		return core.ActionRotateCCW, false
	case key.Matches(msg, k.Grow):
		return core.ActionGrow, false
	case key.Matches(msg, k.Shrink):
		return core.ActionShrink, false
	case key.Matches(msg, k.Switch):
		return core.ActionSwitch, false
	case key.Matches(msg, k.Spin):
		return core.ActionSpin, false
	case key.Matches(msg, k.Reset):
		return core.ActionReset, false
	case key.Matches(msg, k.Capture):
		return core.ActionCapture, false
	}

	return core.ActionNone, false
}
