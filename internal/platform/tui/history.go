package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/collide/internal/storage"
)

// History layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show set list sidebar
	sidebarWidth       = 22  // Width of set list sidebar
	maxRuns            = 100 // Max runs to load
)

// HistoryKeyMap defines the key bindings for the history browser.
type HistoryKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Select  key.Binding
	Back    key.Binding
	Quit    key.Binding
	NextSet key.Binding
	PrevSet key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextSet, k.PrevSet, k.Select, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextSet, k.PrevSet},
		{k.Select, k.Back, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev set"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next set"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "cases"),
		),
		NextSet: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next set"),
		),
		PrevSet: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev set"),
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

// HistoryModel is the Bubble Tea model for browsing stored runs.
// It lists the runs of one set at a time; enter opens the case results of
// the selected run.
type HistoryModel struct {
	sets        []string // Set IDs with stored runs
	setCursor   int
	store       *storage.Store
	runs        []storage.Run
	results     []storage.CaseResult
	detail      bool // Showing case results of one run
	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	width       int
	height      int
	err         error
	quitting    bool
	goingBack   bool // True if user pressed back (not quit)
	showSidebar bool // Whether to show set list sidebar
}

// NewHistoryModel creates a new history model. If focusSet is not empty and
// has runs it is selected first.
func NewHistoryModel(store *storage.Store, focusSet string, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		store:       store,
		keys:        DefaultHistoryKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	m.loadSets()
	for i, id := range m.sets {
		if id == focusSet {
			m.setCursor = i
		}
	}

	m.table = m.createTable()
	if len(m.sets) > 0 {
		m.loadRuns(m.sets[m.setCursor])
	}

	return m
}

// loadSets reads the IDs of every set with stored runs.
func (m *HistoryModel) loadSets() {
	m.sets = nil
	if m.store == nil {
		return
	}

	stats, err := m.store.GetAllSetStats()
	if err != nil {
		m.err = err
		return
	}
	for id := range stats {
		m.sets = append(m.sets, id)
	}
	sort.Strings(m.sets)
}

// tableWidth returns the width available for the table.
func (m *HistoryModel) tableWidth() int {
	w := m.width - 4 // Margins
	if m.showSidebar {
		w -= sidebarWidth + 3 // Sidebar + border + gap
	}
	return w
}

// createTable creates a new table with columns for the current mode.
func (m *HistoryModel) createTable() table.Model {
	var columns []table.Column
	if m.detail {
		columns = []table.Column{
			{Title: "#", Width: 4},
			{Title: "Case", Width: 24},
			{Title: "Status", Width: 12},
			{Title: "Hit", Width: 5},
			{Title: "Expect", Width: 7},
		}
		if m.tableWidth() > 60 {
			columns[1].Width = min(m.tableWidth()-36, 40)
		}
	} else {
		columns = []table.Column{
			{Title: "Run", Width: 9},
			{Title: "Result", Width: 7},
			{Title: "Pass", Width: 5},
			{Title: "Fail", Width: 5},
			{Title: "Other", Width: 6},
			{Title: "Date", Width: 14},
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	// Table styles
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

// loadRuns loads runs for the given set ID.
func (m *HistoryModel) loadRuns(setID string) {
	m.detail = false
	m.results = nil
	if m.store == nil {
		m.runs = nil
		m.updateTableRows()
		return
	}

	runs, err := m.store.RecentRuns(setID, maxRuns)
	if err != nil {
		m.err = err
		m.runs = nil
	} else {
		m.runs = runs
	}
	m.updateTableRows()
}

// openRun switches to the case results of the selected run.
func (m *HistoryModel) openRun() {
	if m.store == nil || len(m.runs) == 0 {
		return
	}
	run := m.runs[m.table.Cursor()]
	results, err := m.store.RunResults(run.ID)
	if err != nil {
		m.err = err
		return
	}
	m.results = results
	m.detail = true
	m.table = m.createTable()
	m.updateTableRows()
}

// updateTableRows fills the table for the current mode.
func (m *HistoryModel) updateTableRows() {
	var rows []table.Row
	if m.detail {
		rows = make([]table.Row, len(m.results))
		for i, r := range m.results {
			expect := "-"
			if r.Expected != nil {
				expect = fmt.Sprintf("%t", *r.Expected)
			}
			rows[i] = table.Row{
				fmt.Sprintf("%d", r.Position+1),
				r.Name,
				string(r.Status),
				fmt.Sprintf("%t", r.Colliding),
				expect,
			}
		}
	} else {
		rows = make([]table.Row, len(m.runs))
		for i, r := range m.runs {
			result := "ok"
			if !r.OK() {
				result = "FAIL"
			}
			rows[i] = table.Row{
				shortID(r.ID),
				result,
				fmt.Sprintf("%d", r.Passed),
				fmt.Sprintf("%d", r.Failed),
				fmt.Sprintf("%d", r.Unchecked+r.Unsupported),
				r.CreatedAt.Format("Jan 02 15:04"),
			}
		}
	}
	m.table.SetRows(rows)

	// Reset cursor to top
	m.table.GotoTop()
}

// shortID returns the first block of a run ID.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history browser.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			if m.detail {
				m.detail = false
				m.table = m.createTable()
				m.updateTableRows()
				return m, nil
			}
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.Select):
			if !m.detail {
				m.openRun()
			}
			return m, nil

		case key.Matches(msg, m.keys.NextSet), key.Matches(msg, m.keys.Right):
			if len(m.sets) > 0 {
				m.setCursor = (m.setCursor + 1) % len(m.sets)
				m.table = m.createTable()
				m.loadRuns(m.sets[m.setCursor])
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevSet), key.Matches(msg, m.keys.Left):
			if len(m.sets) > 0 {
				m.setCursor--
				if m.setCursor < 0 {
					m.setCursor = len(m.sets) - 1
				}
				m.table = m.createTable()
				m.loadRuns(m.sets[m.setCursor])
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
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

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history browser.
func (m HistoryModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	// Title
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "RUN HISTORY"
	if len(m.sets) > 0 {
		title = fmt.Sprintf("RUN HISTORY - %s", m.sets[m.setCursor])
	}

	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		// Wide layout: sidebar + table
		b.WriteString(m.renderWideLayout())
	} else {
		// Narrow layout: set tabs + table
		b.WriteString(m.renderNarrowLayout())
	}

	// Help bar
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the history with a sidebar for set selection.
func (m HistoryModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Sets\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, id := range m.sets {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.setCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}

		name := id
		maxLen := sidebarWidth - 6
		if len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", tableStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout renders the current set name above the table.
func (m HistoryModel) renderNarrowLayout() string {
	var b strings.Builder

	if len(m.sets) > 0 {
		b.WriteString(centerText(fmt.Sprintf("< %s >", m.sets[m.setCursor]), m.width))
		b.WriteString("\n\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m HistoryModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.err != nil:
		return emptyStyle.Render("Cannot read history:\n" + m.err.Error())
	case m.store == nil:
		return emptyStyle.Render("No history database open.")
	case len(m.runs) == 0:
		return emptyStyle.Render("No runs recorded yet.\nUse `collide run` to record one!")
	}

	return m.table.View()
}

// Detail reports whether case results are shown.
func (m HistoryModel) Detail() bool {
	return m.detail
}

// Runs returns the runs of the selected set.
func (m HistoryModel) Runs() []storage.Run {
	return m.runs
}

// Results returns the case results of the opened run.
func (m HistoryModel) Results() []storage.CaseResult {
	return m.results
}

// IsGoingBack returns true if user wants to go back.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

// RunHistory runs the history browser as its own program.
func RunHistory(store *storage.Store, focusSet string, width, height int) error {
	model := NewHistoryModel(store, focusSet, width, height)

	p := tea.NewProgram(
		&historyProgram{model},
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}

// historyProgram quits when the browser is left with back, since there is
// nothing to go back to.
type historyProgram struct {
	HistoryModel
}

func (h *historyProgram) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := h.HistoryModel.Update(msg)
	h.HistoryModel = next.(HistoryModel)
	if h.IsGoingBack() {
		return h, tea.Quit
	}
	return h, cmd
}
