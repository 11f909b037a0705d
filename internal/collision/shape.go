// Package collision routes pairs of collidable shapes to the geometric test
// that understands them. Shapes describe themselves through the Collidable
// capability; the dispatcher never inspects concrete types.
package collision

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/collide/internal/core"
)

// Kind identifies the concrete shape behind a Collidable.
type Kind uint8

const (
	// KindUnknown is the zero value; no pairing with it is supported.
	KindUnknown Kind = iota

	// KindAxisAlignedBox is a rectangle that is always tested unrotated.
	KindAxisAlignedBox

	// KindOrientedBox is a rectangle tested at its own angle.
	KindOrientedBox
)

// String returns the short name used in scenario files and logs.
func (k Kind) String() string {
	switch k {
	case KindAxisAlignedBox:
		return "aabb"
	case KindOrientedBox:
		return "obb"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// ParseKind converts a short name back into a Kind. Unrecognized names map
// to KindUnknown and ok is false.
func ParseKind(s string) (k Kind, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "aabb", "box", "rect":
		return KindAxisAlignedBox, true
	case "obb", "oriented":
		return KindOrientedBox, true
	default:
		return KindUnknown, false
	}
}

// Collidable is implemented by anything that can take part in a collision
// test. The dispatcher reads it for the duration of a single call and never
// keeps or mutates it.
type Collidable interface {
	// Kind reports which concrete shape this is.
	Kind() Kind

	// Box returns the backing rectangle in world coordinates.
	Box() core.Rect

	// Angle returns the rotation in radians applied about the box center.
	Angle() float64
}

// AxisAlignedBox is a rectangle that never rotates.
type AxisAlignedBox struct {
	Rect core.Rect
}

// NewAxisAlignedBox creates an axis-aligned box.
func NewAxisAlignedBox(x, y, w, h float64) AxisAlignedBox {
	return AxisAlignedBox{Rect: core.NewRect(x, y, w, h)}
}

func (b AxisAlignedBox) Kind() Kind     { return KindAxisAlignedBox }
func (b AxisAlignedBox) Box() core.Rect { return b.Rect }
func (b AxisAlignedBox) Angle() float64 { return 0 }

// OrientedBox is a rectangle rotated about its own center.
type OrientedBox struct {
	Rect     core.Rect
	Rotation float64 // Radians
}

// NewOrientedBox creates an oriented box rotated by angle radians.
func NewOrientedBox(x, y, w, h, angle float64) OrientedBox {
	return OrientedBox{Rect: core.NewRect(x, y, w, h), Rotation: angle}
}

func (b OrientedBox) Kind() Kind     { return KindOrientedBox }
func (b OrientedBox) Box() core.Rect { return b.Rect }
func (b OrientedBox) Angle() float64 { return b.Rotation }
