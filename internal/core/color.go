package core

// Color represents a foreground color for a screen cell.
// The platform layer maps each value to an ANSI color.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorCyan
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorGray
)

// Shape colors used by the playground: the active shape is bright,
// the other one dim, and both turn red while colliding.
const (
	ColorActive    = ColorBrightYellow
	ColorInactive  = ColorCyan
	ColorColliding = ColorBrightRed
	ColorSeparated = ColorBrightGreen
)
