package collision

import (
	"errors"
	"fmt"
	"math"
	"os"
	"reflect"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/collide/internal/core"
)

// diagnostics receives one line per unsupported pair passed to IsColliding.
var diagnostics atomic.Pointer[log.Logger]

func init() {
	diagnostics.Store(newDiagnosticsLogger())
}

func newDiagnosticsLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "collision",
	})
}

// SetLogger replaces the diagnostics logger. Passing nil restores the
// default stderr logger. Safe to call while other goroutines test shapes.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = newDiagnosticsLogger()
	}
	diagnostics.Store(l)
}

// IsColliding reports whether a and b overlap. Shapes that touch count as
// colliding. A nil operand yields false silently. A pair of kinds with no
// implemented test, or a shape with NaN, infinite or negative geometry,
// yields false and logs a diagnostic.
func IsColliding(a, b Collidable) bool {
	hit, err := Check(a, b)
	var pairErr *UnsupportedPairError
	switch {
	case errors.As(err, &pairErr):
		diagnostics.Load().Error("collision not supported", "a", pairErr.A.String(), "b", pairErr.B.String())
	case errors.Is(err, ErrInvalidShape):
		diagnostics.Load().Error("invalid shape", "error", err)
	}
	return hit
}

type kindPair struct{ a, b Kind }

// Check is IsColliding with the failure reason surfaced instead of logged.
// The boolean is always false when err is non-nil.
func Check(a, b Collidable) (bool, error) {
	if isNil(a) || isNil(b) {
		return false, ErrNilInput
	}

	ka, kb := a.Kind(), b.Kind()
	if isKnown(ka) && isKnown(kb) {
		if err := validate(a); err != nil {
			return false, err
		}
		if err := validate(b); err != nil {
			return false, err
		}
	}

	switch (kindPair{ka, kb}) {
	case kindPair{KindAxisAlignedBox, KindAxisAlignedBox}:
		return core.Overlaps(a.Box(), b.Box(), 0, 0), nil

	case kindPair{KindAxisAlignedBox, KindOrientedBox},
		kindPair{KindOrientedBox, KindAxisAlignedBox},
		kindPair{KindOrientedBox, KindOrientedBox}:
		return core.Overlaps(a.Box(), b.Box(), angleOf(a), angleOf(b)), nil
	}

	return false, &UnsupportedPairError{A: ka, B: kb}
}

func isKnown(k Kind) bool {
	return k == KindAxisAlignedBox || k == KindOrientedBox
}

// validate rejects geometry the separating axis test cannot order:
// NaN compares false everywhere and would read as an overlap.
func validate(c Collidable) error {
	if err := c.Box().Validate(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidShape, c.Kind(), err)
	}
	if a := angleOf(c); math.IsNaN(a) || math.IsInf(a, 0) {
		return fmt.Errorf("%w: %s: non-finite angle %v", ErrInvalidShape, c.Kind(), a)
	}
	return nil
}

// angleOf trusts the kind over the reported angle: axis-aligned boxes are
// always tested unrotated.
func angleOf(c Collidable) float64 {
	if c.Kind() == KindAxisAlignedBox {
		return 0
	}
	return c.Angle()
}

// isNil catches both a nil interface and an interface holding a nil pointer.
func isNil(c Collidable) bool {
	if c == nil {
		return true
	}
	v := reflect.ValueOf(c)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
