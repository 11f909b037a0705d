// Package core provides the geometric primitives of collide: vectors,
// rectangles that can be evaluated at any rotation, and the separating axis
// overlap test. It has no external dependencies so that the collision math
// stays pure and testable.
package core

import (
	"errors"
	"math"
)

// ErrNegativeSize is returned by Rect.Validate for negative or non-finite dimensions.
var ErrNegativeSize = errors.New("core: rectangle size must be finite and non-negative")

// Rect is a rectangle described by its top-left corner and size.
// It carries no rotation; callers supply the angle when they need one.
type Rect struct {
	X, Y float64 // Top-left corner position
	W, H float64 // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.W/2, r.Y + r.H/2}
}

// Translate returns the rectangle moved by d.
func (r Rect) Translate(d Vec2) Rect {
	return Rect{X: r.X + d.X, Y: r.Y + d.Y, W: r.W, H: r.H}
}

// Validate checks that the rectangle has finite coordinates and a
// non-negative size.
func (r Rect) Validate() error {
	for _, f := range [4]float64{r.X, r.Y, r.W, r.H} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return ErrNegativeSize
		}
	}
	if r.W < 0 || r.H < 0 {
		return ErrNegativeSize
	}
	return nil
}

// Corners returns the four vertices of the rectangle rotated by angle radians
// about its center. The winding is always bottom-left, bottom-right,
// top-right, top-left in unrotated space, so consecutive corners form edges.
func (r Rect) Corners(angle float64) [4]Vec2 {
	c := r.Center()
	corners := [4]Vec2{
		{r.X, r.Y + r.H},
		{r.X + r.W, r.Y + r.H},
		{r.X + r.W, r.Y},
		{r.X, r.Y},
	}
	if angle == 0 {
		return corners
	}
	for i, v := range corners {
		corners[i] = v.Sub(c).Rotate(angle).Add(c)
	}
	return corners
}

// ContainsRotated reports whether p lies inside (or on the border of) the
// rectangle rotated by angle about its center.
func (r Rect) ContainsRotated(p Vec2, angle float64) bool {
	c := r.Center()
	local := p.Sub(c).Rotate(-angle)
	return math.Abs(local.X) <= r.W/2 && math.Abs(local.Y) <= r.H/2
}

// Bounds returns the axis-aligned box enclosing the rectangle rotated by angle.
func (r Rect) Bounds(angle float64) Rect {
	corners := r.Corners(angle)
	minX, maxX := corners[0].X, corners[0].X
	minY, maxY := corners[0].Y, corners[0].Y
	for _, v := range corners[1:] {
		minX = math.Min(minX, v.X)
		maxX = math.Max(maxX, v.X)
		minY = math.Min(minY, v.Y)
		maxY = math.Max(maxY, v.Y)
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Cell is an integer grid rectangle used for screen drawing.
type Cell struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// Right returns the x-coordinate of the right edge.
func (c Cell) Right() int {
	return c.X + c.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (c Cell) Bottom() int {
	return c.Y + c.H
}
