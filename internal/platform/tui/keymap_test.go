package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/collide/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapperMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"w", runeKey('w'), core.ActionUp, false},
		{"s", runeKey('s'), core.ActionDown, false},
		{"a", runeKey('a'), core.ActionLeft, false},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"rotate cw", runeKey(']'), core.ActionRotateCW, false},
		{"rotate ccw", runeKey('['), core.ActionRotateCCW, false},
		{"grow", runeKey('+'), core.ActionGrow, false},
		{"grow unshifted", runeKey('='), core.ActionGrow, false},
		{"shrink", runeKey('-'), core.ActionShrink, false},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, core.ActionSwitch, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionSpin, false},
		{"reset", runeKey('r'), core.ActionReset, false},
		{"capture", tea.KeyMsg{Type: tea.KeyCtrlS}, core.ActionCapture, false},
		{"quit", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('z'), core.ActionNone, false},
		{"history is not a playground action", runeKey('h'), core.ActionNone, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			action, quit := km.MapKey(tc.msg)
			if action != tc.action || quit != tc.quit {
				t.Errorf("MapKey(%q) = (%v, %v), expected (%v, %v)", tc.msg.String(), action, quit, tc.action, tc.quit)
			}
		})
	}
}

func TestPlaygroundHelpListsBindings(t *testing.T) {
	keys := DefaultPlaygroundKeyMap()
	if len(keys.ShortHelp()) == 0 {
		t.Error("ShortHelp() should not be empty")
	}
	total := 0
	for _, col := range keys.FullHelp() {
		total += len(col)
	}
	if total != 14 {
		t.Errorf("FullHelp() lists %d bindings, expected 14", total)
	}
}
