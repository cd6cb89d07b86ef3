package ir

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
)

// FromAny converts the generic output of a decoder (encoding/json into any,
// YAML or CBOR into any) to a Node. Maps are unordered in Go, so their keys
// are sorted; decoders that keep key order should build nodes with
// FromKeyVals instead.
func FromAny(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case *Node:
		if x == nil {
			return Null(), nil
		}
		return x, nil
	case bool:
		return FromBool(x), nil
	case string:
		return FromString(x), nil
	case float64:
		return FromFloat(x), nil
	case float32:
		return FromFloat(float64(x)), nil
	case int:
		return FromInt(int64(x)), nil
	case int8:
		return FromInt(int64(x)), nil
	case int16:
		return FromInt(int64(x)), nil
	case int32:
		return FromInt(int64(x)), nil
	case int64:
		return FromInt(x), nil
	case uint:
		return FromFloat(float64(x)), nil
	case uint8:
		return FromFloat(float64(x)), nil
	case uint16:
		return FromFloat(float64(x)), nil
	case uint32:
		return FromFloat(float64(x)), nil
	case uint64:
		return FromFloat(float64(x)), nil
	case json.Number:
		f, err := strconv.ParseFloat(string(x), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", x, err)
		}
		return FromFloat(f), nil
	case []any:
		vals := make([]*Node, len(x))
		for i, elt := range x {
			n, err := FromAny(elt)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			vals[i] = n
		}
		return FromSlice(vals), nil
	case []*Node:
		return FromSlice(x), nil
	case map[string]any:
		keys := slices.Sorted(maps.Keys(x))
		kvs := make([]KeyVal, len(keys))
		for i, k := range keys {
			n, err := FromAny(x[k])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			kvs[i] = KeyVal{Key: k, Val: n}
		}
		return FromKeyVals(kvs), nil
	case map[string]*Node:
		return FromMap(x), nil
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, v := range x {
			ks, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("non-string key %v (%T)", k, k)
			}
			m[ks] = v
		}
		return FromAny(m)
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}

// ToAny converts a node to the shapes produced by encoding/json decoding
// into any: map[string]any, []any, float64, string, bool and nil.
func ToAny(node *Node) any {
	if node == nil {
		return nil
	}
	switch node.Type {
	case ObjectType:
		res := make(map[string]any, len(node.Fields))
		for i, f := range node.Fields {
			res[f] = ToAny(node.Values[i])
		}
		return res
	case ArrayType:
		res := make([]any, len(node.Values))
		for i, elt := range node.Values {
			res[i] = ToAny(elt)
		}
		return res
	case StringType:
		return node.String
	case NumberType:
		return node.Number
	case BoolType:
		return node.Bool
	case NullType:
		return nil
	default:
		panic("impossible production")
	}
}
