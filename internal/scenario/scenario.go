// Package scenario describes collision cases as data, evaluates them through
// the collision dispatcher and summarizes the outcome. Sets are loaded from
// YAML files or registered in code.
package scenario

import (
	"fmt"
	"time"

	"github.com/vovakirdan/collide/internal/collision"
	"github.com/vovakirdan/collide/internal/core"
)

// Shape is one operand of a case.
type Shape struct {
	Kind    collision.Kind
	RawKind string // Original kind name when Kind is KindUnknown
	Rect    core.Rect
	Angle   float64 // Radians, ignored for axis-aligned boxes
}

// Box returns an axis-aligned shape.
func Box(x, y, w, h float64) Shape {
	return Shape{Kind: collision.KindAxisAlignedBox, Rect: core.NewRect(x, y, w, h)}
}

// Rotated returns an oriented shape.
func Rotated(x, y, w, h, angle float64) Shape {
	return Shape{Kind: collision.KindOrientedBox, Rect: core.NewRect(x, y, w, h), Angle: angle}
}

// Collidable converts the shape into the value handed to the dispatcher.
func (s Shape) Collidable() collision.Collidable {
	switch s.Kind {
	case collision.KindAxisAlignedBox:
		return collision.AxisAlignedBox{Rect: s.Rect}
	case collision.KindOrientedBox:
		return collision.OrientedBox{Rect: s.Rect, Rotation: s.Angle}
	default:
		return opaqueShape{s}
	}
}

// KindName returns the name written to scenario files.
func (s Shape) KindName() string {
	if s.Kind == collision.KindUnknown && s.RawKind != "" {
		return s.RawKind
	}
	return s.Kind.String()
}

// opaqueShape carries a kind the dispatcher has no test for.
type opaqueShape struct{ s Shape }

func (o opaqueShape) Kind() collision.Kind { return o.s.Kind }
func (o opaqueShape) Box() core.Rect       { return o.s.Rect }
func (o opaqueShape) Angle() float64       { return o.s.Angle }

// Case is a single pair of shapes with an optional expected outcome.
type Case struct {
	Name   string
	A, B   Shape
	Expect *bool
}

// Expecting returns a copy of the case with the expected outcome set.
func (c Case) Expecting(v bool) Case {
	c.Expect = &v
	return c
}

// Set is a named, ordered list of cases.
type Set struct {
	ID     string
	Title  string
	Source string // File path, or "builtin"
	Cases  []Case
}

// Status classifies the outcome of a case.
type Status string

const (
	StatusPass        Status = "pass"
	StatusFail        Status = "fail"
	StatusUnchecked   Status = "unchecked"
	StatusUnsupported Status = "unsupported"
)

// Result is the outcome of one case.
type Result struct {
	Case      string
	Colliding bool
	Expected  *bool
	Status    Status
	Err       error
}

// Report summarizes an evaluated set.
type Report struct {
	SetID       string
	Title       string
	Source      string
	Digest      string
	Results     []Result
	Passed      int
	Failed      int
	Unchecked   int
	Unsupported int
	Duration    time.Duration
}

// OK reports whether no case failed. Unsupported pairs only fail a set when
// they were expected to collide.
func (r Report) OK() bool {
	return r.Failed == 0
}

// Total returns the number of evaluated cases.
func (r Report) Total() int {
	return len(r.Results)
}

// Evaluate runs every case of the set through the collision dispatcher.
func Evaluate(set Set) Report {
	start := time.Now()
	report := Report{
		SetID:   set.ID,
		Title:   set.Title,
		Source:  set.Source,
		Digest:  Digest(set),
		Results: make([]Result, 0, len(set.Cases)),
	}

	for i, c := range set.Cases {
		name := c.Name
		if name == "" {
			name = fmt.Sprintf("case %d", i+1)
		}
		res := Result{Case: name, Expected: c.Expect}
		res.Colliding, res.Err = collision.Check(c.A.Collidable(), c.B.Collidable())

		switch {
		case res.Err != nil && c.Expect != nil && *c.Expect:
			// A pair expected to collide cannot pass without a test.
			res.Status = StatusFail
			report.Failed++
		case res.Err != nil:
			res.Status = StatusUnsupported
			report.Unsupported++
		case c.Expect == nil:
			res.Status = StatusUnchecked
			report.Unchecked++
		case res.Colliding == *c.Expect:
			res.Status = StatusPass
			report.Passed++
		default:
			res.Status = StatusFail
			report.Failed++
		}
		report.Results = append(report.Results, res)
	}

	report.Duration = time.Since(start)
	return report
}
