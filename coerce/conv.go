package coerce

import (
	"math"

	"github.com/signadot/objmap/ir"
)

type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

type Integer interface {
	Signed | Unsigned
}

type Floating interface {
	~float32 | ~float64
}

// Conv converts between nodes and values of one Go scalar type.
type Conv[F any] struct {
	Primitive Primitive
	To        func(*ir.Node) (F, error)
	From      func(F) (*ir.Node, error)
}

func BoolOf[F ~bool]() Conv[F] {
	return Conv[F]{
		Primitive: Bool,
		To: func(y *ir.Node) (F, error) {
			b, err := ToBool(y)
			return F(b), err
		},
		From: func(v F) (*ir.Node, error) {
			return ir.FromBool(bool(v)), nil
		},
	}
}

func StringOf[F ~string]() Conv[F] {
	return Conv[F]{
		Primitive: String,
		To: func(y *ir.Node) (F, error) {
			s, err := ToString(y)
			return F(s), err
		},
		From: func(v F) (*ir.Node, error) {
			return ir.FromString(string(v)), nil
		},
	}
}

// IntOf returns the conversion for an integer type. Values that do not fit
// in F fail with a CoercionError rather than wrapping.
func IntOf[F Integer]() Conv[F] {
	return Conv[F]{
		Primitive: Int,
		To:        toInteger[F],
		From: func(v F) (*ir.Node, error) {
			return ir.FromFloat(float64(v)), nil
		},
	}
}

func toInteger[F Integer](y *ir.Node) (F, error) {
	if y.IsNull() {
		return 0, ErrNull
	}
	// uint64 values above MaxInt64 are only reachable from numbers.
	if y.Type == ir.NumberType && y.Number >= 1<<63 {
		top := ^F(0)
		if top > 0 && y.Number < 1<<64 && y.Number == math.Trunc(y.Number) {
			u := uint64(y.Number)
			if uint64(top) >= u {
				return F(u), nil
			}
		}
		return 0, failed(Int, nil, "%s overflows %T", ir.FormatNumber(y.Number), F(0))
	}
	i, err := ToInt64(y)
	if err != nil {
		return 0, err
	}
	res := F(i)
	if int64(res) != i || (res < 0) != (i < 0) {
		return 0, failed(Int, nil, "%d overflows %T", i, res)
	}
	return res, nil
}

// FloatOf returns the conversion for a float type. Finite float64 values
// that overflow float32 fail.
func FloatOf[F Floating]() Conv[F] {
	return Conv[F]{
		Primitive: Float,
		To: func(y *ir.Node) (F, error) {
			f, err := ToFloat64(y)
			if err != nil {
				return 0, err
			}
			res := F(f)
			if math.IsInf(float64(res), 0) && !math.IsInf(f, 0) {
				return 0, failed(Float, nil, "%s overflows %T", ir.FormatNumber(f), res)
			}
			return res, nil
		},
		From: func(v F) (*ir.Node, error) {
			return ir.FromFloat(float64(v)), nil
		},
	}
}

// AnyOf returns the conversion yielding the natural value of a scalar node.
func AnyOf() Conv[any] {
	return Conv[any]{
		Primitive: Any,
		To: func(y *ir.Node) (any, error) {
			return Coerce(y, Any)
		},
		From: Encode,
	}
}

// Of returns the untyped conversion for p, producing the values of Coerce.
func Of(p Primitive) Conv[any] {
	if p == Any {
		return AnyOf()
	}
	return Conv[any]{
		Primitive: p,
		To: func(y *ir.Node) (any, error) {
			return Coerce(y, p)
		},
		From: func(v any) (*ir.Node, error) {
			y, err := Encode(v)
			if err != nil {
				return nil, err
			}
			if y.IsNull() {
				return y, nil
			}
			// A matching node type can still hold a value the primitive
			// rejects, such as a fractional number for Int.
			return ToNode(y, p)
		},
	}
}

// ToNode coerces y to p and returns the result as a node.
func ToNode(y *ir.Node, p Primitive) (*ir.Node, error) {
	v, err := Coerce(y, p)
	if err != nil {
		return nil, err
	}
	return Encode(v)
}
