package codec

import (
	"fmt"
	"io"
	"math"

	"github.com/signadot/objmap/ir"
)

// Decode parses a single document in format f.
func Decode(f Format, data []byte) (*ir.Node, error) {
	switch f {
	case JSONFormat:
		return DecodeJSON(data)
	case JSONCFormat:
		return DecodeJSONC(data)
	case YAMLFormat:
		return DecodeYAML(data)
	case CBORFormat:
		return DecodeCBOR(data)
	}
	return nil, fmt.Errorf("%w: %d", ErrBadFormat, f)
}

// Read decodes all of r as a document in format f.
func Read(r io.Reader, f Format) (*ir.Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Decode(f, data)
}

// Encode renders y in format f. Text formats are indented and end with a
// newline. JSONC output is plain JSON.
func Encode(f Format, y *ir.Node) ([]byte, error) {
	switch f {
	case JSONFormat, JSONCFormat:
		return EncodeJSONIndent(y, "  ")
	case YAMLFormat:
		return EncodeYAML(y)
	case CBORFormat:
		return EncodeCBOR(y)
	}
	return nil, fmt.Errorf("%w: %d", ErrBadFormat, f)
}

// plain converts y to generic Go values for marshalers. Integral numbers
// in int64 range become int64 so they are not written as floats. Objects
// are built by obj.
func plain(y *ir.Node, obj func(keys []string, vals []any) any) any {
	if y == nil {
		return nil
	}
	switch y.Type {
	case ir.ObjectType:
		vals := make([]any, len(y.Values))
		for i, v := range y.Values {
			vals[i] = plain(v, obj)
		}
		return obj(y.Fields, vals)
	case ir.ArrayType:
		res := make([]any, len(y.Values))
		for i, v := range y.Values {
			res[i] = plain(v, obj)
		}
		return res
	case ir.StringType:
		return y.String
	case ir.BoolType:
		return y.Bool
	case ir.NumberType:
		f := y.Number
		if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 && !(f == 0 && math.Signbit(f)) {
			return int64(f)
		}
		return f
	}
	return nil
}
