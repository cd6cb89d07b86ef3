package coerce

import (
	"errors"
	"fmt"

	"github.com/signadot/objmap/ir"
)

// ErrNull is returned when the node to coerce is null or absent.
var ErrNull = errors.New("null value")

// KindMismatchError reports a node whose type cannot be converted to the
// target at all.
type KindMismatchError struct {
	Expected Primitive
	Actual   ir.Type
}

func (e *KindMismatchError) Error() string {
	if e.Expected == Any {
		return fmt.Sprintf("expected a scalar, got %s", e.Actual)
	}
	return fmt.Sprintf("expected %s, got %s", e.Expected, e.Actual)
}

// CoercionError reports a conversion between compatible kinds that failed
// for the given value, such as "12abc" to a number.
type CoercionError struct {
	Target Primitive
	Reason string
	Err    error
}

func (e *CoercionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot convert to %s: %s: %v", e.Target, e.Reason, e.Err)
	}
	return fmt.Sprintf("cannot convert to %s: %s", e.Target, e.Reason)
}

func (e *CoercionError) Unwrap() error {
	return e.Err
}

func mismatch(p Primitive, y *ir.Node) error {
	return &KindMismatchError{Expected: p, Actual: y.Type}
}

func failed(p Primitive, err error, format string, args ...any) error {
	return &CoercionError{Target: p, Reason: fmt.Sprintf(format, args...), Err: err}
}
