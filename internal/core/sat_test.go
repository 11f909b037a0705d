package core

import (
	"math"
	"math/rand"
	"testing"
)

func TestOverlaps(t *testing.T) {
	unit := NewRect(0, 0, 1, 1)

	tests := []struct {
		name           string
		a, b           Rect
		angleA, angleB float64
		expected       bool
	}{
		{"separated on x", unit, NewRect(2, 0, 1, 1), 0, 0, false},
		{"separated on y", unit, NewRect(0, 2, 1, 1), 0, 0, false},
		{"partial overlap", unit, NewRect(0.5, 0, 1, 1), 0, 0, true},
		{"touching edge", unit, NewRect(1, 0, 1, 1), 0, 0, true},
		{"touching corner", unit, NewRect(1, 1, 1, 1), 0, 0, true},
		{"contained", NewRect(0, 0, 20, 20), NewRect(5, 5, 5, 5), 0, 0, true},
		{"identical", unit, unit, 0, 0, true},
		{"rotation reveals overlap", unit, NewRect(1.1, 0, 1, 1), 0, math.Pi / 4, true},
		{"same pair unrotated", unit, NewRect(1.1, 0, 1, 1), 0, 0, false},
		{"diagonal neighbour unrotated", unit, NewRect(0.99, 0.99, 1, 1), 0, 0, true},
		{"rotation hides diagonal neighbour", unit, NewRect(0.99, 0.99, 1, 1), 0, math.Pi / 4, false},
		{"both rotated, crossed", NewRect(0, 0, 4, 0.5), NewRect(0, 0, 4, 0.5), math.Pi / 4, -math.Pi / 4, true},
		{"rotated bars side by side", NewRect(0, 0, 4, 0.5), NewRect(0, 2, 4, 0.5), math.Pi / 8, math.Pi / 8, false},
		{"full turn equals none", unit, NewRect(2, 0, 1, 1), 2 * math.Pi, 2 * math.Pi, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := Overlaps(tc.a, tc.b, tc.angleA, tc.angleB)
			if result != tc.expected {
				t.Errorf("Overlaps() = %v, expected %v", result, tc.expected)
			}
			// Also test symmetry
			resultReverse := Overlaps(tc.b, tc.a, tc.angleB, tc.angleA)
			if resultReverse != tc.expected {
				t.Errorf("Overlaps() (reversed) = %v, expected %v", resultReverse, tc.expected)
			}
		})
	}
}

func TestOverlapsDegenerate(t *testing.T) {
	tests := []struct {
		name           string
		a, b           Rect
		angleA, angleB float64
		expected       bool
	}{
		{"point inside", NewRect(0.5, 0.5, 0, 0), NewRect(0, 0, 1, 1), 0, 0, true},
		{"point on edge", NewRect(1, 0.5, 0, 0), NewRect(0, 0, 1, 1), 0, 0, true},
		{"point outside", NewRect(1.5, 0.5, 0, 0), NewRect(0, 0, 1, 1), 0, 0, false},
		{"vertical segment crossing", NewRect(0.5, -1, 0, 3), NewRect(0, 0, 1, 1), 0, 0, true},
		{"horizontal segment above", NewRect(-1, -0.5, 3, 0), NewRect(0, 0, 1, 1), 0, 0, false},
		// The segment's bounding box overlaps the square but the segment itself
		// passes beside the corner; only the segment's own normal separates them.
		{"rotated segment beside corner", NewRect(1.3, 0, 0, 2), NewRect(0, 0, 1, 1), math.Pi / 4, 0, false},
		{"rotated segment through square", NewRect(0.5, 0, 0, 2), NewRect(0, 0, 1, 1), math.Pi / 4, 0, true},
		{"two points same spot", NewRect(3, 3, 0, 0), NewRect(3, 3, 0, 0), 0, 1, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.a, tc.b, tc.angleA, tc.angleB); got != tc.expected {
				t.Errorf("Overlaps() = %v, expected %v", got, tc.expected)
			}
			if got := Overlaps(tc.b, tc.a, tc.angleB, tc.angleA); got != tc.expected {
				t.Errorf("Overlaps() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestAxesAreUnitEdgeDirections(t *testing.T) {
	a := NewRect(0, 0, 3, 1)
	b := NewRect(0, 0, 0, 0)

	axes := Axes(a, b, math.Pi/6, math.Pi/3)
	for i, axis := range axes {
		if math.Abs(axis.Mag()-1) > eps {
			t.Errorf("axis %d = %+v is not a unit vector", i, axis)
		}
	}

	// Edge 0->1 and edge 1->2 of a rectangle are perpendicular
	if d := axes[0].Dot(axes[1]); math.Abs(d) > eps {
		t.Errorf("axes of a are not perpendicular, dot = %v", d)
	}
	// A point has no edges; its axes come from the rotated basis
	if !axes[2].ApproxEqual(V(-1, 0).Rotate(math.Pi/3), eps) {
		t.Errorf("fallback axis = %+v", axes[2])
	}
	if !axes[3].ApproxEqual(V(0, 1).Rotate(math.Pi/3), eps) {
		t.Errorf("fallback axis = %+v", axes[3])
	}
}

func TestProject(t *testing.T) {
	corners := NewRect(1, 2, 3, 4).Corners(0)

	min, max := Project(corners, V(1, 0))
	if min != 1 || max != 4 {
		t.Errorf("Project on x = [%v, %v], expected [1, 4]", min, max)
	}
	min, max = Project(corners, V(0, -1))
	if min != -6 || max != -2 {
		t.Errorf("Project on -y = [%v, %v], expected [-6, -2]", min, max)
	}
}

func TestOverlapsProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	randRect := func() Rect {
		return NewRect(rng.Float64()*10-5, rng.Float64()*10-5, rng.Float64()*4, rng.Float64()*4)
	}

	for i := 0; i < 2000; i++ {
		a, b := randRect(), randRect()
		angA, angB := rng.Float64()*2*math.Pi, rng.Float64()*2*math.Pi
		got := Overlaps(a, b, angA, angB)

		if rev := Overlaps(b, a, angB, angA); rev != got {
			t.Fatalf("asymmetric result for %+v@%v / %+v@%v", a, angA, b, angB)
		}

		// Integer shifts keep the float arithmetic exact enough to be stable
		d := V(float64(rng.Intn(200)-100), float64(rng.Intn(200)-100))
		if moved := Overlaps(a.Translate(d), b.Translate(d), angA, angB); moved != got {
			// Results may only differ when the shapes are within rounding of touching
			if !nearlyTouching(a, b, angA, angB) {
				t.Fatalf("translation by %+v changed result for %+v@%v / %+v@%v", d, a, angA, b, angB)
			}
		}

		// Axis-aligned results agree with the interval test
		if aabb := Overlaps(a, b, 0, 0); aabb != intervalOverlap(a, b) {
			t.Fatalf("axis-aligned mismatch for %+v / %+v", a, b)
		}
	}
}

func intervalOverlap(a, b Rect) bool {
	return a.X <= b.Right() && b.X <= a.Right() && a.Y <= b.Bottom() && b.Y <= a.Bottom()
}

// nearlyTouching reports whether the smallest gap or overlap over all axes
// is within rounding distance.
func nearlyTouching(a, b Rect, angA, angB float64) bool {
	ca, cb := a.Corners(angA), b.Corners(angB)
	for _, axis := range Axes(a, b, angA, angB) {
		minA, maxA := Project(ca, axis)
		minB, maxB := Project(cb, axis)
		if math.Abs(maxA-minB) < 1e-6 || math.Abs(minA-maxB) < 1e-6 {
			return true
		}
	}
	return false
}
