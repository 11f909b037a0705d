package tui

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/collide/internal/collision"
	"github.com/vovakirdan/collide/internal/config"
	"github.com/vovakirdan/collide/internal/core"
	"github.com/vovakirdan/collide/internal/scenario"
)

// Rows below the field: status line and help bar.
const footerRows = 2

const (
	fillActive   = '█'
	fillInactive = '▒'
)

// DefaultPair returns the shapes the playground starts with when no case is given.
func DefaultPair() [2]scenario.Shape {
	return [2]scenario.Shape{
		scenario.Rotated(-3, -1, 3, 2, 0),
		scenario.Rotated(1, -1, 2, 2, math.Pi/6),
	}
}

// Playground is the Bubble Tea model for moving and rotating two shapes
// while the collision dispatcher reports whether they touch.
type Playground struct {
	shapes    [2]scenario.Shape
	initial   [2]scenario.Shape
	active    int
	spinning  bool
	colliding bool
	err       error

	screen  *core.Screen
	view    core.Viewport
	config  core.RuntimeConfig
	viewer  config.ViewerConfig
	keys    *KeyMapper
	help    help.Model
	message string

	captureDir string // Empty disables capture
	quitting   bool
}

// NewPlayground creates a playground for the given pair.
func NewPlayground(pair [2]scenario.Shape, viewer config.ViewerConfig, cfg core.RuntimeConfig) Playground {
	if cfg.TickRate <= 0 {
		cfg.TickRate = viewer.TickRate
	}
	if viewer.Scale <= 0 {
		viewer.Scale = config.DefaultConfig().Viewer.Scale
	}

	captureDir, err := config.ExpandPath(viewer.CaptureDir)
	if err != nil {
		captureDir = ""
	}

	m := Playground{
		shapes:     pair,
		initial:    pair,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-footerRows, 0)),
		config:     cfg,
		viewer:     viewer,
		keys:       NewKeyMapper(),
		help:       help.New(),
		captureDir: captureDir,
	}
	m.help.Width = cfg.ScreenW
	m.fitViewport()
	m.refresh()
	return m
}

// WithoutCapture returns a copy of the playground that cannot write captures.
func (m Playground) WithoutCapture() Playground {
	m.captureDir = ""
	return m
}

// Init starts the tick loop.
func (m Playground) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Playground) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Playground) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}
	m.Apply(action)
	return m, nil
}

// Apply performs a single action on the playground.
func (m *Playground) Apply(action core.Action) {
	s := &m.shapes[m.active]

	switch action {
	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		s.Rect = s.Rect.Translate(action.Delta().Scale(m.viewer.MoveStep))
	case core.ActionRotateCW:
		rotate(s, m.viewer.RotateStepDeg*math.Pi/180)
	case core.ActionRotateCCW:
		rotate(s, -m.viewer.RotateStepDeg*math.Pi/180)
	case core.ActionGrow:
		resize(s, m.viewer.SizeStep)
	case core.ActionShrink:
		resize(s, -m.viewer.SizeStep)
	case core.ActionSwitch:
		m.active = 1 - m.active
	case core.ActionSpin:
		m.spinning = !m.spinning
	case core.ActionReset:
		m.shapes = m.initial
		m.spinning = false
		m.message = ""
	case core.ActionCapture:
		m.capture()
	default:
		return
	}

	m.refresh()
}

// rotate turns a shape, promoting axis-aligned boxes to oriented ones.
func rotate(s *scenario.Shape, delta float64) {
	if s.Kind == collision.KindAxisAlignedBox {
		s.Kind = collision.KindOrientedBox
	}
	s.Angle = math.Mod(s.Angle+delta, 2*math.Pi)
}

// resize grows or shrinks a shape around its center without going negative.
func resize(s *scenario.Shape, delta float64) {
	c := s.Rect.Center()
	w := math.Max(s.Rect.W+delta, 0)
	h := math.Max(s.Rect.H+delta, 0)
	s.Rect = core.NewRect(c.X-w/2, c.Y-h/2, w, h)
}

// refresh recomputes the collision result for the current pair.
func (m *Playground) refresh() {
	m.colliding, m.err = collision.Check(m.shapes[0].Collidable(), m.shapes[1].Collidable())
}

// handleResize processes window resize events.
func (m Playground) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-footerRows, 0))
	m.help.Width = msg.Width
	m.fitViewport()
	return m, nil
}

// fitViewport centers the initial pair on screen.
func (m *Playground) fitViewport() {
	ca := m.initial[0].Rect.Center()
	cb := m.initial[1].Rect.Center()
	focus := ca.Add(cb).Scale(0.5)

	// Terminal cells are about twice as tall as wide
	scaleY := m.viewer.Scale
	scaleX := 2 * scaleY

	m.view = core.Viewport{
		OriginX: focus.X - float64(m.screen.Width())/2/scaleX,
		OriginY: focus.Y - float64(m.screen.Height())/2/scaleY,
		ScaleX:  scaleX,
		ScaleY:  scaleY,
	}
}

// handleTick advances the auto-spin.
func (m Playground) handleTick() (tea.Model, tea.Cmd) {
	if m.spinning {
		rotate(&m.shapes[m.active], m.viewer.SpinDegPerTick*math.Pi/180)
		m.refresh()
	}
	return m, tickCmd(m.config.TickRate)
}

// capture saves the current pair as a scenario case.
func (m *Playground) capture() {
	if m.captureDir == "" {
		m.message = "capture disabled"
		return
	}

	stamp := time.Now().Format("20060102_150405")
	id := "capture_" + stamp
	set := scenario.Set{
		ID:    id,
		Title: "Playground capture " + stamp,
		Cases: []scenario.Case{{Name: "captured pair", A: m.shapes[0], B: m.shapes[1]}},
	}
	if m.err == nil {
		set.Cases[0] = set.Cases[0].Expecting(m.colliding)
	}

	path := filepath.Join(m.captureDir, id+".yaml")
	if err := scenario.WriteFile(path, set); err != nil {
		m.message = "capture failed: " + err.Error()
		return
	}
	m.message = "saved " + path
}

// SeparatingAxis returns the first candidate axis on which the projections of
// the pair do not overlap. ok is false when the shapes collide or the pair
// is unsupported.
func (m Playground) SeparatingAxis() (axis core.Vec2, ok bool) {
	if m.err != nil || m.colliding {
		return core.Vec2{}, false
	}

	a, b := m.shapes[0].Collidable(), m.shapes[1].Collidable()
	ca, cb := a.Box().Corners(a.Angle()), b.Box().Corners(b.Angle())
	for _, axis := range core.Axes(a.Box(), b.Box(), a.Angle(), b.Angle()) {
		minA, maxA := core.Project(ca, axis)
		minB, maxB := core.Project(cb, axis)
		if maxA < minB || minA > maxB {
			return axis, true
		}
	}
	return core.Vec2{}, false
}

// Shapes returns the current pair.
func (m Playground) Shapes() [2]scenario.Shape {
	return m.shapes
}

// Active returns the index of the shape that receives input.
func (m Playground) Active() int {
	return m.active
}

// Colliding reports the collision result for the current pair.
func (m Playground) Colliding() bool {
	return m.colliding
}

// Spinning reports whether auto-spin is on.
func (m Playground) Spinning() bool {
	return m.spinning
}

// Message returns the last status message, such as a capture path.
func (m Playground) Message() string {
	return m.message
}

// IsQuitting returns true if the user asked to quit.
func (m Playground) IsQuitting() bool {
	return m.quitting
}

// Render draws the field into the screen buffer.
func (m Playground) Render(dst *core.Screen) {
	dst.Clear()

	color := core.ColorSeparated
	result := " separated "
	if m.colliding {
		color = core.ColorColliding
		result = " colliding "
	}

	dst.DrawBox(core.Cell{X: 0, Y: 0, W: dst.Width(), H: dst.Height()})
	dst.DrawTextColor(2, 0, result, color)

	// World origin
	ox, oy := m.view.ToCell(core.Vec2{})
	dst.Set(ox, oy, '+')

	// Inactive first so the active shape is drawn on top
	other := 1 - m.active
	for _, i := range []int{other, m.active} {
		s := m.shapes[i]
		fill := fillInactive
		if i == m.active {
			fill = fillActive
		}
		dst.FillRotated(m.view, s.Rect, s.Collidable().Angle(), fill, color)
	}

	// Label each shape at its center
	for i, s := range m.shapes {
		label := core.ColorInactive
		if i == m.active {
			label = core.ColorActive
		}
		x, y := m.view.ToCell(s.Rect.Center())
		dst.SetColor(x, y, rune('A'+i), label)
	}
}

// StatusLine describes both shapes and the collision result.
func (m Playground) StatusLine() string {
	parts := make([]string, 0, 4)
	for i, s := range m.shapes {
		marker := " "
		if i == m.active {
			marker = "*"
		}
		parts = append(parts, fmt.Sprintf("%s%c %s (%.2f, %.2f, %.2f×%.2f) %.0f°",
			marker, 'A'+i, s.KindName(), s.Rect.X, s.Rect.Y, s.Rect.W, s.Rect.H,
			s.Collidable().Angle()*180/math.Pi))
	}

	switch {
	case m.err != nil:
		parts = append(parts, "unsupported")
	case m.colliding:
		parts = append(parts, "COLLIDING")
	default:
		parts = append(parts, "separated")
		if axis, ok := m.SeparatingAxis(); ok {
			parts = append(parts, fmt.Sprintf("axis (%.2f, %.2f)", axis.X, axis.Y))
		}
	}
	if m.message != "" {
		parts = append(parts, m.message)
	}
	return strings.Join(parts, " │ ")
}

var (
	statusStyle     = lipgloss.NewStyle().Bold(true)
	collidingStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	separatedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	helpStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	unsupportedText = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// View renders the current state to a string for display.
func (m Playground) View() string {
	if m.quitting {
		return ""
	}

	m.Render(m.screen)

	style := separatedStyle
	switch {
	case m.err != nil:
		style = unsupportedText
	case m.colliding:
		style = collidingStyle
	}

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(style.Inherit(statusStyle).Render(m.StatusLine()))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys.Keys)))
	return b.String()
}
