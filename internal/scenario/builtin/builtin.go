// Package builtin registers the reference scenario sets shipped with the
// binary. Import it for its side effects.
package builtin

import (
	"math"

	"github.com/vovakirdan/collide/internal/registry"
	"github.com/vovakirdan/collide/internal/scenario"
)

func init() {
	registry.Register("properties", properties)
	registry.Register("degenerate", degenerate)
	registry.Register("rotated", rotated)
}

var unit = scenario.Box(0, 0, 1, 1)

func pair(name string, a, b scenario.Shape, expect bool) scenario.Case {
	return scenario.Case{Name: name, A: a, B: b}.Expecting(expect)
}

func properties() scenario.Set {
	return scenario.Set{
		Title: "Reference properties",
		Cases: []scenario.Case{
			pair("axis-aligned separation", unit, scenario.Box(2, 0, 1, 1), false),
			pair("axis-aligned overlap", unit, scenario.Box(0.5, 0, 1, 1), true),
			pair("touching boundary", unit, scenario.Box(1, 0, 1, 1), true),
			pair("rotation reveals overlap", unit, scenario.Rotated(1.1, 0, 1, 1, math.Pi/4), true),
			pair("same pair unrotated", unit, scenario.Rotated(1.1, 0, 1, 1, 0), false),
			pair("diagonal neighbour unrotated", unit, scenario.Rotated(0.99, 0.99, 1, 1, 0), true),
			pair("rotation pulls the corner away", unit, scenario.Rotated(0.99, 0.99, 1, 1, math.Pi/4), false),
			{
				Name: "unsupported pairing",
				A:    scenario.Shape{RawKind: "circle", Rect: unit.Rect},
				B:    unit,
			},
		},
	}
}

func degenerate() scenario.Set {
	return scenario.Set{
		Title: "Points and segments",
		Cases: []scenario.Case{
			pair("point inside", scenario.Box(0.5, 0.5, 0, 0), unit, true),
			pair("point on edge", scenario.Box(1, 0.5, 0, 0), unit, true),
			pair("point outside", scenario.Box(1.5, 0.5, 0, 0), unit, false),
			pair("segment crossing", scenario.Box(0.5, -1, 0, 3), unit, true),
			pair("segment above", scenario.Box(-1, -0.5, 3, 0), unit, false),
			pair("rotated segment beside corner", scenario.Rotated(1.3, 0, 0, 2, math.Pi/4), unit, false),
			pair("rotated segment through", scenario.Rotated(0.5, 0, 0, 2, math.Pi/4), unit, true),
		},
	}
}

func rotated() scenario.Set {
	bar := func(y, angle float64) scenario.Shape {
		return scenario.Rotated(0, y, 4, 0.5, angle)
	}
	return scenario.Set{
		Title: "Rotated pairs",
		Cases: []scenario.Case{
			pair("crossed bars", bar(0, math.Pi/4), bar(0, -math.Pi/4), true),
			pair("parallel bars", bar(0, math.Pi/8), bar(2, math.Pi/8), false),
			pair("full turn", scenario.Rotated(0, 0, 1, 1, 2*math.Pi), scenario.Rotated(2, 0, 1, 1, 2*math.Pi), false),
			pair("contained", scenario.Rotated(0, 0, 20, 20, 0.3), scenario.Rotated(8, 8, 4, 4, 1.2), true),
		},
	}
}
