package tui

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/collide/internal/collision"
	"github.com/vovakirdan/collide/internal/config"
	"github.com/vovakirdan/collide/internal/core"
	"github.com/vovakirdan/collide/internal/scenario"
)

func testViewer(t *testing.T) config.ViewerConfig {
	t.Helper()
	v := config.DefaultConfig().Viewer
	v.MoveStep = 0.5
	v.RotateStepDeg = 45
	v.SizeStep = 1
	v.SpinDegPerTick = 90
	v.CaptureDir = t.TempDir()
	return v
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30}
}

func separatedPair() [2]scenario.Shape {
	return [2]scenario.Shape{
		scenario.Box(0, 0, 1, 1),
		scenario.Box(2, 0, 1, 1),
	}
}

func send(t *testing.T, m Playground, msg tea.Msg) Playground {
	t.Helper()
	next, _ := m.Update(msg)
	pg, ok := next.(Playground)
	if !ok {
		t.Fatalf("Update() returned %T, expected Playground", next)
	}
	return pg
}

func TestPlaygroundMoveIntoCollision(t *testing.T) {
	m := NewPlayground(separatedPair(), testViewer(t), testRuntime())
	if m.Colliding() {
		t.Fatal("pair should start separated")
	}

	// Move A right by 0.5 twice: touching B's left edge
	m = send(t, m, runeKey('d'))
	if m.Colliding() {
		t.Error("gap of 0.5 should still be separated")
	}
	m = send(t, m, runeKey('d'))
	if !m.Colliding() {
		t.Error("touching edges should collide")
	}
	if got := m.Shapes()[0].Rect.X; got != 1 {
		t.Errorf("A.X = %v, expected 1", got)
	}
	if !strings.Contains(m.StatusLine(), "COLLIDING") {
		t.Errorf("status line should report the collision: %q", m.StatusLine())
	}
}

func TestPlaygroundRotatePromotesBox(t *testing.T) {
	pair := [2]scenario.Shape{
		scenario.Box(0, 0, 1, 1),
		scenario.Box(1.1, 0, 1, 1),
	}
	m := NewPlayground(pair, testViewer(t), testRuntime())
	if m.Colliding() {
		t.Fatal("pair should start separated")
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Active() != 1 {
		t.Fatalf("active = %d, expected 1 after tab", m.Active())
	}
	m = send(t, m, runeKey(']'))

	b := m.Shapes()[1]
	if b.Kind != collision.KindOrientedBox {
		t.Errorf("rotated box kind = %v, expected obb", b.Kind)
	}
	if math.Abs(b.Angle-math.Pi/4) > 1e-12 {
		t.Errorf("angle = %v, expected pi/4", b.Angle)
	}
	if !m.Colliding() {
		t.Error("rotated corner should reach into A")
	}
	if m.Shapes()[0].Kind != collision.KindAxisAlignedBox {
		t.Error("inactive shape should be untouched")
	}
}

func TestPlaygroundResizeKeepsCenter(t *testing.T) {
	m := NewPlayground(separatedPair(), testViewer(t), testRuntime())
	center := m.Shapes()[0].Rect.Center()

	m = send(t, m, runeKey('+'))
	a := m.Shapes()[0].Rect
	if a.W != 2 || a.H != 2 || !a.Center().ApproxEqual(center, 1e-12) {
		t.Errorf("after grow A = %+v, expected 2x2 around %+v", a, center)
	}
	if m.Colliding() {
		t.Error("2x2 A still ends half a unit short of B")
	}

	m = send(t, m, runeKey('+'))
	if !m.Colliding() {
		t.Error("3x3 A should touch B")
	}

	for i := 0; i < 5; i++ {
		m = send(t, m, runeKey('-'))
	}
	a = m.Shapes()[0].Rect
	if a.W != 0 || a.H != 0 {
		t.Errorf("shrinking should stop at zero, got %+v", a)
	}
}

func TestPlaygroundSpinAndReset(t *testing.T) {
	m := NewPlayground(separatedPair(), testViewer(t), testRuntime())

	m = send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if !m.Spinning() {
		t.Fatal("space should start spinning")
	}
	m = send(t, m, TickMsg{})
	if got := m.Shapes()[0].Angle; math.Abs(got-math.Pi/2) > 1e-12 {
		t.Errorf("angle after one tick = %v, expected pi/2", got)
	}

	m = send(t, m, runeKey('d'))
	m = send(t, m, runeKey('r'))
	if m.Spinning() {
		t.Error("reset should stop spinning")
	}
	if m.Shapes() != separatedPair() {
		t.Errorf("reset should restore the initial pair, got %+v", m.Shapes())
	}
}

func TestPlaygroundTickWithoutSpin(t *testing.T) {
	m := NewPlayground(separatedPair(), testViewer(t), testRuntime())
	next, cmd := m.Update(TickMsg{})
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if next.(Playground).Shapes() != separatedPair() {
		t.Error("tick without spin should not change shapes")
	}
}

func TestPlaygroundCapture(t *testing.T) {
	viewer := testViewer(t)
	m := NewPlayground(separatedPair(), viewer, testRuntime())

	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if !strings.HasPrefix(m.Message(), "saved ") {
		t.Fatalf("capture message = %q", m.Message())
	}

	files, err := filepath.Glob(filepath.Join(viewer.CaptureDir, "capture_*.yaml"))
	if err != nil || len(files) != 1 {
		t.Fatalf("expected one capture file, got %v (%v)", files, err)
	}

	set, err := scenario.LoadFile(files[0])
	if err != nil {
		t.Fatalf("capture does not load: %v", err)
	}
	if len(set.Cases) != 1 {
		t.Fatalf("capture has %d cases, expected 1", len(set.Cases))
	}
	c := set.Cases[0]
	if c.Expect == nil || *c.Expect {
		t.Errorf("capture should record the separated result, got %v", c.Expect)
	}
	if c.A != separatedPair()[0] || c.B != separatedPair()[1] {
		t.Errorf("captured shapes differ: %+v", c)
	}

	report := scenario.Evaluate(set)
	if !report.OK() || report.Passed != 1 {
		t.Errorf("captured case should pass when replayed: %+v", report)
	}
}

func TestPlaygroundCaptureDisabled(t *testing.T) {
	m := NewPlayground(separatedPair(), testViewer(t), testRuntime()).WithoutCapture()
	m.Apply(core.ActionCapture)
	if m.Message() != "capture disabled" {
		t.Errorf("message = %q, expected capture disabled", m.Message())
	}
}

func TestPlaygroundUnsupportedShape(t *testing.T) {
	pair := [2]scenario.Shape{
		{RawKind: "circle", Rect: core.NewRect(0, 0, 1, 1)},
		scenario.Box(0, 0, 1, 1),
	}
	m := NewPlayground(pair, testViewer(t), testRuntime())
	if m.Colliding() {
		t.Error("unsupported pair should not collide")
	}
	if !strings.Contains(m.StatusLine(), "unsupported") {
		t.Errorf("status line = %q, expected unsupported", m.StatusLine())
	}
}

func TestPlaygroundRender(t *testing.T) {
	m := NewPlayground(separatedPair(), testViewer(t), testRuntime())
	screen := core.NewScreen(80, 22)
	m.Render(screen)

	var active, inactive int
	for y := 0; y < screen.Height(); y++ {
		for x := 0; x < screen.Width(); x++ {
			cell := screen.GetCell(x, y)
			switch cell.Rune {
			case fillActive:
				active++
			case fillInactive:
				inactive++
			}
			if (cell.Rune == fillActive || cell.Rune == fillInactive) && cell.Color != core.ColorSeparated {
				t.Fatalf("separated shapes should be drawn in the separated color, got %v", cell.Color)
			}
		}
	}
	// 1x1 unit at scale 4 is 8 columns by 4 rows, minus the label cell
	if active != 31 || inactive != 31 {
		t.Errorf("filled cells = %d active, %d inactive, expected 31 each", active, inactive)
	}
	if screen.Get(0, 0) != '┌' || screen.Get(79, 21) != '┘' {
		t.Error("field should be framed")
	}
	if !strings.Contains(screen.Row(0), " separated ") {
		t.Errorf("frame should carry the result, got %q", screen.Row(0))
	}

	m = send(t, m, tea.WindowSizeMsg{Width: 40, Height: 12})
	view := m.View()
	if !strings.Contains(view, "separated") {
		t.Error("view should include the status line")
	}
}

func TestPlaygroundSeparatingAxis(t *testing.T) {
	m := NewPlayground(separatedPair(), testViewer(t), testRuntime())
	axis, ok := m.SeparatingAxis()
	// Edge 0->1 runs from bottom-left to bottom-right, normalized BL-BR
	if !ok || !axis.ApproxEqual(core.V(-1, 0), 1e-12) {
		t.Errorf("SeparatingAxis() = %+v, %v, expected (-1, 0)", axis, ok)
	}
	if !strings.Contains(m.StatusLine(), "axis (-1.00, 0.00)") {
		t.Errorf("status line should show the axis: %q", m.StatusLine())
	}

	m = send(t, m, runeKey('d'))
	m = send(t, m, runeKey('d'))
	if _, ok := m.SeparatingAxis(); ok {
		t.Error("colliding pair has no separating axis")
	}
}

func TestPlaygroundQuit(t *testing.T) {
	m := NewPlayground(separatedPair(), testViewer(t), testRuntime())
	next, cmd := m.Update(runeKey('q'))
	if cmd == nil || !next.(Playground).IsQuitting() {
		t.Error("q should quit")
	}
	if next.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestNewPlaygroundExpandsCaptureDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	viewer := config.DefaultConfig().Viewer
	m := NewPlayground(separatedPair(), viewer, testRuntime())
	m.Apply(core.ActionCapture)

	if !strings.HasPrefix(m.Message(), "saved "+filepath.Join(home, ".collide", "captures")) {
		t.Errorf("capture should land under the home directory, message %q", m.Message())
	}
	if _, err := os.Stat(filepath.Join(home, ".collide", "captures")); err != nil {
		t.Errorf("capture directory missing: %v", err)
	}
}
