package core

import "math"

// Overlaps reports whether rectangles a and b, rotated about their own
// centers by angleA and angleB radians, intersect. It uses the separating
// axis theorem with the two edge directions of each rectangle as candidate
// axes. For rectangles the edge directions span the same set of lines as the
// face normals, so no perpendicular is taken.
//
// Intervals that only touch are not separating: shapes sharing an edge or a
// corner collide.
func Overlaps(a, b Rect, angleA, angleB float64) bool {
	ca := a.Corners(angleA)
	cb := b.Corners(angleB)

	for _, axis := range axes(ca, cb, angleA, angleB) {
		minA, maxA := Project(ca, axis)
		minB, maxB := Project(cb, axis)
		if maxA < minB || minA > maxB {
			return false
		}
	}
	return true
}

// Axes returns the four candidate separating axes for a and b: edge 0->1
// and edge 1->2 of a, followed by the same edges of b.
func Axes(a, b Rect, angleA, angleB float64) [4]Vec2 {
	return axes(a.Corners(angleA), b.Corners(angleB), angleA, angleB)
}

func axes(ca, cb [4]Vec2, angleA, angleB float64) [4]Vec2 {
	return [4]Vec2{
		edgeAxis(ca[0], ca[1], Vec2{-1, 0}, angleA),
		edgeAxis(ca[1], ca[2], Vec2{0, 1}, angleA),
		edgeAxis(cb[0], cb[1], Vec2{-1, 0}, angleB),
		edgeAxis(cb[1], cb[2], Vec2{0, 1}, angleB),
	}
}

// edgeAxis normalizes the edge from p to q. A zero-length edge (zero width
// or height) falls back to the rotated basis direction the edge would have.
func edgeAxis(p, q, basis Vec2, angle float64) Vec2 {
	axis, err := p.Sub(q).Normalize()
	if err != nil {
		return basis.Rotate(angle)
	}
	return axis
}

// Project returns the interval covered by the corners on the given axis.
func Project(corners [4]Vec2, axis Vec2) (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, v := range corners {
		d := v.Dot(axis)
		min = math.Min(min, d)
		max = math.Max(max, d)
	}
	return min, max
}
