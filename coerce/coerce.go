package coerce

import (
	"math"
	"strconv"
	"strings"

	"github.com/signadot/objmap/ir"
)

// Coerce converts y to the Go value for p: bool, int64, float64 or string.
// For Any the node's natural value is returned.
func Coerce(y *ir.Node, p Primitive) (any, error) {
	if y.IsNull() {
		return nil, ErrNull
	}
	switch p {
	case Bool:
		return ToBool(y)
	case Int:
		return ToInt64(y)
	case Float:
		return ToFloat64(y)
	case String:
		return ToString(y)
	case Any:
		switch y.Type {
		case ir.BoolType:
			return y.Bool, nil
		case ir.NumberType:
			return y.Number, nil
		case ir.StringType:
			return y.String, nil
		}
		return nil, mismatch(Any, y)
	}
	return nil, failed(p, nil, "unknown target")
}

// Encode converts a value produced by Coerce, or any Go scalar, into a node.
func Encode(v any) (*ir.Node, error) {
	if v == nil {
		return ir.Null(), nil
	}
	switch x := v.(type) {
	case bool, string, float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return ir.FromAny(x)
	case *ir.Node:
		return x, nil
	}
	return nil, failed(Any, nil, "unsupported Go value of type %T", v)
}

func ToBool(y *ir.Node) (bool, error) {
	if y.IsNull() {
		return false, ErrNull
	}
	switch y.Type {
	case ir.BoolType:
		return y.Bool, nil
	case ir.NumberType:
		switch y.Number {
		case 0:
			return false, nil
		case 1:
			return true, nil
		}
	}
	return false, mismatch(Bool, y)
}

func ToString(y *ir.Node) (string, error) {
	if y.IsNull() {
		return "", ErrNull
	}
	switch y.Type {
	case ir.StringType:
		return y.String, nil
	case ir.NumberType:
		if math.IsNaN(y.Number) || math.IsInf(y.Number, 0) {
			return "", failed(String, nil, "non-finite number %s", ir.FormatNumber(y.Number))
		}
		return ir.FormatNumber(y.Number), nil
	}
	return "", mismatch(String, y)
}

func ToFloat64(y *ir.Node) (float64, error) {
	if y.IsNull() {
		return 0, ErrNull
	}
	switch y.Type {
	case ir.NumberType:
		return y.Number, nil
	case ir.StringType:
		return parseNumber(Float, y.String)
	case ir.BoolType:
		if y.Bool {
			return 1, nil
		}
		return 0, nil
	}
	return 0, mismatch(Float, y)
}

// ToInt64 converts y to an integer. Numbers must be integral and within the
// int64 range. Strings of decimal digits are parsed exactly, so they keep
// precision beyond 2^53.
func ToInt64(y *ir.Node) (int64, error) {
	if y.IsNull() {
		return 0, ErrNull
	}
	var f float64
	switch y.Type {
	case ir.NumberType:
		f = y.Number
	case ir.StringType:
		if i, err := strconv.ParseInt(y.String, 10, 64); err == nil {
			return i, nil
		}
		var err error
		f, err = parseNumber(Int, y.String)
		if err != nil {
			return 0, err
		}
	case ir.BoolType:
		if y.Bool {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, mismatch(Int, y)
	}
	return floatToInt(f)
}

func floatToInt(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, failed(Int, nil, "non-finite number %s", ir.FormatNumber(f))
	}
	if f != math.Trunc(f) {
		return 0, failed(Int, nil, "%s is not an integer", ir.FormatNumber(f))
	}
	// 2^63 is exactly representable, values at or beyond it are not int64.
	if f < -(1<<63) || f >= 1<<63 {
		return 0, failed(Int, nil, "%s overflows int64", ir.FormatNumber(f))
	}
	return int64(f), nil
}

func parseNumber(p Primitive, s string) (float64, error) {
	if s == "" {
		return 0, failed(p, nil, "empty string is not a number")
	}
	// Numbers in strings are decimal.
	digits := strings.TrimLeft(s, "+-")
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		return 0, failed(p, nil, "%q is not a decimal number", s)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, failed(p, err, "%q is not a number", s)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, failed(p, nil, "%q is not a finite number", s)
	}
	return f, nil
}
