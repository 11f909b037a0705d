package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/collide/internal/config"
	"github.com/vovakirdan/collide/internal/core"
	"github.com/vovakirdan/collide/internal/scenario"
	"github.com/vovakirdan/collide/internal/storage"
)

// SessionModel manages the full session flow: playground -> history -> playground.
// This is the top-level model used for `collide view` and SSH sessions.
type SessionModel struct {
	store      *storage.Store
	config     core.RuntimeConfig
	playground Playground
	history    *HistoryModel
	focusSet   string
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(pair [2]scenario.Shape, store *storage.Store, viewer config.ViewerConfig, cfg core.RuntimeConfig) SessionModel {
	return SessionModel{
		store:      store,
		config:     cfg,
		playground: NewPlayground(pair, viewer, cfg),
	}
}

// WithFocusSet selects the set shown first when history is opened.
func (m SessionModel) WithFocusSet(id string) SessionModel {
	m.focusSet = id
	return m
}

// WithoutCapture disables writing captures from this session.
func (m SessionModel) WithoutCapture() SessionModel {
	m.playground = m.playground.WithoutCapture()
	return m
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.playground.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
		m.playground, _ = updatePlayground(m.playground, msg)
		if m.history != nil {
			return m.updateHistory(msg)
		}
		return m, nil
	}

	if m.history != nil {
		return m.updateHistory(msg)
	}
	return m.updatePlayground(msg)
}

// updatePlayground handles updates when the playground is shown.
func (m SessionModel) updatePlayground(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && key.Matches(km, m.playground.keys.Keys.History) {
		h := NewHistoryModel(m.store, m.focusSet, m.config.ScreenW, m.config.ScreenH)
		m.history = &h
		return m, h.Init()
	}

	var cmd tea.Cmd
	m.playground, cmd = updatePlayground(m.playground, msg)
	if m.playground.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

// updateHistory handles updates when the history browser is shown.
// Ticks keep flowing to the playground so its loop is not lost.
func (m SessionModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok {
		var cmd tea.Cmd
		m.playground, cmd = updatePlayground(m.playground, msg)
		return m, cmd
	}

	newModel, cmd := m.history.Update(msg)
	if h, ok := newModel.(HistoryModel); ok {
		m.history = &h
	}

	if m.history.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.history.IsGoingBack() {
		m.history = nil
		return m, nil
	}
	return m, cmd
}

func updatePlayground(p Playground, msg tea.Msg) (Playground, tea.Cmd) {
	next, cmd := p.Update(msg)
	if pg, ok := next.(Playground); ok {
		p = pg
	}
	return p, cmd
}

// InHistory reports whether the history browser is shown.
func (m SessionModel) InHistory() bool {
	return m.history != nil
}

// Playground returns the session's playground.
func (m SessionModel) Playground() Playground {
	return m.playground
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	if m.history != nil {
		return m.history.View()
	}
	return m.playground.View()
}

// RunSession starts a local session with the playground and history browser.
func RunSession(m SessionModel) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
