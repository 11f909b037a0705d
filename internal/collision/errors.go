package collision

import (
	"errors"
	"fmt"
)

var (
	// ErrNilInput is returned when either operand is missing.
	ErrNilInput = errors.New("collision: nil collidable")

	// ErrInvalidShape is returned for non-finite coordinates or angles and
	// negative sizes. It wraps core.ErrNegativeSize when the rectangle is at fault.
	ErrInvalidShape = errors.New("collision: invalid shape geometry")

	// ErrUnsupportedPair is matched by every UnsupportedPairError.
	ErrUnsupportedPair = errors.New("collision: unsupported shape pair")
)

// UnsupportedPairError names the kinds that have no test implemented.
type UnsupportedPairError struct {
	A, B Kind
}

func (e *UnsupportedPairError) Error() string {
	return fmt.Sprintf("collision: no test for %s vs %s", e.A, e.B)
}

// Is makes errors.Is(err, ErrUnsupportedPair) true.
func (e *UnsupportedPairError) Is(target error) bool {
	return target == ErrUnsupportedPair
}
