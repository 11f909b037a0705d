package core

import (
	"errors"
	"math"
)

// ErrDegenerateVector is returned when a vector with zero (or non-finite)
// length is normalized.
var ErrDegenerateVector = errors.New("core: cannot normalize a zero-length vector")

// Vec2 is a 2D point or direction.
type Vec2 struct {
	X, Y float64
}

// V creates a vector from its components.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns the component-wise sum v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns the component-wise difference v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Mag returns the Euclidean length of the vector.
func (v Vec2) Mag() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Normalize returns the unit vector pointing in the same direction.
// A zero-length vector yields the zero vector and ErrDegenerateVector.
func (v Vec2) Normalize() (Vec2, error) {
	m := v.Mag()
	if m == 0 || math.IsNaN(m) || math.IsInf(m, 0) {
		return Vec2{}, ErrDegenerateVector
	}
	return v.Scale(1 / m), nil
}

// Rotate rotates the vector counter-clockwise (in a y-up frame) by angle radians.
func (v Vec2) Rotate(angle float64) Vec2 {
	sn, cs := math.Sincos(angle)
	return Vec2{
		X: v.X*cs - v.Y*sn,
		Y: v.X*sn + v.Y*cs,
	}
}

// ApproxEqual reports whether both components differ by at most eps.
func (v Vec2) ApproxEqual(o Vec2, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps
}
