package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func sendSession(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update() returned %T, expected SessionModel", next)
	}
	return sm
}

func TestSessionHistoryRoundTrip(t *testing.T) {
	m := NewSessionModel(separatedPair(), historyStore(t), testViewer(t), testRuntime())

	m = sendSession(t, m, runeKey('d'))
	moved := m.Playground().Shapes()

	m = sendSession(t, m, runeKey('h'))
	if !m.InHistory() {
		t.Fatal("h should open the history browser")
	}

	// Ticks keep reaching the playground while history is shown
	m = sendSession(t, m, TickMsg{})
	m = sendSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.InHistory() {
		t.Fatal("esc should return to the playground")
	}
	if m.Playground().Shapes() != moved {
		t.Error("playground state should survive a visit to history")
	}
}

func TestSessionQuitFromHistory(t *testing.T) {
	m := NewSessionModel(separatedPair(), nil, testViewer(t), testRuntime())
	m = sendSession(t, m, runeKey('h'))

	next, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if next.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestSessionResizeReachesPlayground(t *testing.T) {
	m := NewSessionModel(separatedPair(), nil, testViewer(t), testRuntime())
	m = sendSession(t, m, tea.WindowSizeMsg{Width: 50, Height: 12})
	if w := m.Playground().screen.Width(); w != 50 {
		t.Errorf("playground screen width = %d, expected 50", w)
	}
	if h := m.Playground().screen.Height(); h != 12-footerRows {
		t.Errorf("playground screen height = %d, expected %d", h, 12-footerRows)
	}
}

func TestSessionWithoutCapture(t *testing.T) {
	m := NewSessionModel(separatedPair(), nil, testViewer(t), testRuntime()).WithoutCapture()
	m = sendSession(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.Playground().Message() != "capture disabled" {
		t.Errorf("message = %q", m.Playground().Message())
	}
}
