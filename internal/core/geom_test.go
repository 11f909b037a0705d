package core

import (
	"errors"
	"math"
	"testing"
)

const eps = 1e-9

func TestRectEdgesAndCenter(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %v, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %v, expected 25", r.Bottom())
	}
	if c := r.Center(); !c.ApproxEqual(V(15, 17.5), eps) {
		t.Errorf("Center() = %+v, expected (15, 17.5)", c)
	}
}

func TestRectCenterFollowsFields(t *testing.T) {
	r := NewRect(0, 0, 2, 2)
	r.X = 10
	r.W = 4
	if c := r.Center(); !c.ApproxEqual(V(12, 1), eps) {
		t.Errorf("Center() after mutation = %+v, expected (12, 1)", c)
	}

	moved := r.Translate(V(-1, 3))
	if moved.X != 9 || moved.Y != 3 || moved.W != 4 || moved.H != 2 {
		t.Errorf("Translate() = %+v", moved)
	}
}

func TestRectCornersWinding(t *testing.T) {
	r := NewRect(1, 2, 4, 3)
	got := r.Corners(0)
	want := [4]Vec2{
		{1, 5}, // bottom-left
		{5, 5}, // bottom-right
		{5, 2}, // top-right
		{1, 2}, // top-left
	}
	for i := range want {
		if !got[i].ApproxEqual(want[i], eps) {
			t.Errorf("corner %d = %+v, expected %+v", i, got[i], want[i])
		}
	}
}

func TestRectCornersRotated(t *testing.T) {
	r := NewRect(0, 0, 2, 2)

	// Quarter turn maps the square onto itself with corners shifted by one
	got := r.Corners(math.Pi / 2)
	unrotated := r.Corners(0)
	for i := range got {
		found := false
		for _, u := range unrotated {
			if got[i].ApproxEqual(u, eps) {
				found = true
			}
		}
		if !found {
			t.Errorf("corner %d = %+v is not a corner of the original square", i, got[i])
		}
	}
	if got[0].ApproxEqual(unrotated[0], eps) {
		t.Error("quarter turn should move the first corner")
	}

	// Eighth turn: corners land on the axes through the center
	diag := r.Corners(math.Pi / 4)
	c := r.Center()
	for i, v := range diag {
		if d := v.Sub(c).Mag(); math.Abs(d-math.Sqrt2) > eps {
			t.Errorf("corner %d distance from center = %v, expected sqrt(2)", i, d)
		}
		onAxis := math.Abs(v.X-c.X) < eps || math.Abs(v.Y-c.Y) < eps
		if !onAxis {
			t.Errorf("corner %d = %+v should lie on an axis through the center", i, v)
		}
	}
}

func TestRectContainsRotated(t *testing.T) {
	r := NewRect(0, 0, 2, 2)

	tests := []struct {
		name     string
		p        Vec2
		angle    float64
		expected bool
	}{
		{"center", V(1, 1), 0, true},
		{"corner inclusive", V(0, 0), 0, true},
		{"edge inclusive", V(2, 1), 0, true},
		{"outside", V(2.01, 1), 0, false},
		{"corner cut off by rotation", V(0.05, 0.05), math.Pi / 4, false},
		{"diamond tip", V(1, -0.4), math.Pi / 4, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.ContainsRotated(tc.p, tc.angle); got != tc.expected {
				t.Errorf("ContainsRotated(%+v, %v) = %v, expected %v", tc.p, tc.angle, got, tc.expected)
			}
		})
	}
}

func TestRectBounds(t *testing.T) {
	r := NewRect(0, 0, 2, 2)

	if b := r.Bounds(0); b != r {
		t.Errorf("Bounds(0) = %+v, expected %+v", b, r)
	}

	b := r.Bounds(math.Pi / 4)
	half := math.Sqrt2
	if math.Abs(b.X-(1-half)) > eps || math.Abs(b.W-2*half) > eps {
		t.Errorf("Bounds(pi/4) = %+v, expected width 2*sqrt(2) centered on 1", b)
	}
}

func TestRectValidate(t *testing.T) {
	tests := []struct {
		name    string
		r       Rect
		wantErr bool
	}{
		{"regular", NewRect(-3, 4, 1, 2), false},
		{"zero area", NewRect(0, 0, 0, 0), false},
		{"negative width", NewRect(0, 0, -1, 2), true},
		{"negative height", NewRect(0, 0, 1, -2), true},
		{"nan position", NewRect(math.NaN(), 0, 1, 1), true},
		{"infinite size", NewRect(0, 0, math.Inf(1), 1), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.r.Validate()
			if tc.wantErr && !errors.Is(err, ErrNegativeSize) {
				t.Errorf("Validate() = %v, expected ErrNegativeSize", err)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("Validate() = %v, expected nil", err)
			}
		})
	}
}
