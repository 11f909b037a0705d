package core

import (
	"math"
	"strings"
)

// ScreenCell is a single character cell with its foreground color.
type ScreenCell struct {
	Rune  rune
	Color Color
}

// Screen is a 2D character buffer that shapes are rasterized into.
// It decouples drawing from the terminal: callers place runes and colors,
// and the platform layer turns the buffer into styled output.
type Screen struct {
	width  int
	height int
	cells  [][]ScreenCell
}

// NewScreen creates a new screen buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  max(width, 0),
		height: max(height, 0),
	}
	s.allocate()
	s.Clear()
	return s
}

// allocate creates the underlying cell storage.
func (s *Screen) allocate() {
	s.cells = make([][]ScreenCell, s.height)
	for y := range s.cells {
		s.cells[y] = make([]ScreenCell, s.width)
	}
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// Resize changes the screen dimensions, preserving content where possible.
func (s *Screen) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width == s.width && height == s.height {
		return
	}

	oldCells := s.cells
	oldW, oldH := s.width, s.height

	s.width = width
	s.height = height
	s.allocate()
	s.Clear()

	copyW := min(oldW, width)
	copyH := min(oldH, height)
	for y := 0; y < copyH; y++ {
		copy(s.cells[y][:copyW], oldCells[y][:copyW])
	}
}

// Clear fills the entire screen with uncolored spaces.
func (s *Screen) Clear() {
	s.Fill(' ')
}

// Fill fills the entire screen with the given rune.
func (s *Screen) Fill(r rune) {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = ScreenCell{Rune: r}
		}
	}
}

// Set places a rune at the given position, keeping the default color.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, r rune) {
	s.SetColor(x, y, r, ColorDefault)
}

// SetColor places a colored rune at the given position.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) SetColor(x, y int, r rune, c Color) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.cells[y][x] = ScreenCell{Rune: r, Color: c}
}

// Get returns the rune at the given position.
// Returns space for out-of-bounds coordinates.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

// GetCell returns the cell at the given position.
func (s *Screen) GetCell(x, y int) ScreenCell {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return ScreenCell{Rune: ' '}
	}
	return s.cells[y][x]
}

// DrawText writes a string horizontally starting at (x, y).
// Characters that extend beyond screen bounds are clipped.
func (s *Screen) DrawText(x, y int, text string) {
	s.DrawTextColor(x, y, text, ColorDefault)
}

// DrawTextColor writes a colored string horizontally starting at (x, y).
func (s *Screen) DrawTextColor(x, y int, text string, c Color) {
	i := 0
	for _, r := range text {
		s.SetColor(x+i, y, r, c)
		i++
	}
}

// DrawBox draws a box outline using box-drawing characters.
func (s *Screen) DrawBox(r Cell) {
	s.Set(r.X, r.Y, '┌')
	s.Set(r.Right()-1, r.Y, '┐')
	s.Set(r.X, r.Bottom()-1, '└')
	s.Set(r.Right()-1, r.Bottom()-1, '┘')

	for x := r.X + 1; x < r.Right()-1; x++ {
		s.Set(x, r.Y, '─')
		s.Set(x, r.Bottom()-1, '─')
	}
	for y := r.Y + 1; y < r.Bottom()-1; y++ {
		s.Set(r.X, y, '│')
		s.Set(r.Right()-1, y, '│')
	}
}

// Viewport maps world coordinates onto screen cells. ScaleX cells are used
// per world unit horizontally and ScaleY vertically, so that terminal cells,
// which are about twice as tall as wide, give roughly square units.
type Viewport struct {
	OriginX, OriginY float64 // World coordinate shown at cell (0, 0)
	ScaleX, ScaleY   float64 // Cells per world unit
}

// CellCenter returns the world point at the center of cell (x, y).
func (v Viewport) CellCenter(x, y int) Vec2 {
	return Vec2{
		X: v.OriginX + (float64(x)+0.5)/v.ScaleX,
		Y: v.OriginY + (float64(y)+0.5)/v.ScaleY,
	}
}

// ToCell returns the cell that contains world point p.
func (v Viewport) ToCell(p Vec2) (int, int) {
	return int(math.Floor((p.X - v.OriginX) * v.ScaleX)), int(math.Floor((p.Y - v.OriginY) * v.ScaleY))
}

// FillRotated rasterizes r rotated by angle into the screen. A cell is
// filled when its center lies inside the rotated rectangle. Shapes smaller
// than one cell still mark the cell that holds their center. The number of
// cells whose center was inside the shape is returned.
func (s *Screen) FillRotated(v Viewport, r Rect, angle float64, fill rune, c Color) int {
	b := r.Bounds(angle)
	x0, y0 := v.ToCell(Vec2{b.X, b.Y})
	x1, y1 := v.ToCell(Vec2{b.Right(), b.Bottom()})

	filled := 0
	for y := max(y0, 0); y <= min(y1, s.height-1); y++ {
		for x := max(x0, 0); x <= min(x1, s.width-1); x++ {
			if r.ContainsRotated(v.CellCenter(x, y), angle) {
				s.SetColor(x, y, fill, c)
				filled++
			}
		}
	}
	if filled == 0 {
		cx, cy := v.ToCell(r.Center())
		s.SetColor(cx, cy, fill, c)
	}
	return filled
}

// String converts the screen buffer to a plain string without colors.
// Each row is joined with newlines.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < s.width; x++ {
			sb.WriteRune(s.cells[y][x].Rune)
		}
	}
	return sb.String()
}

// Row returns the specified row as a string.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for _, c := range s.cells[y] {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}
