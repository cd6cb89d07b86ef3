package ir

import (
	"maps"
	"math"
	"slices"
	"strconv"
)

// Node is a decoded value. The Type field selects which of the remaining
// fields carry the value. For ObjectType nodes Fields[i] is the key of
// Values[i]; keys are unique within one object.
//
// Nodes are built by the constructors in this package and are not modified
// afterwards, so a tree may be read from any number of goroutines.
type Node struct {
	Type   Type
	Fields []string
	Values []*Node

	String string
	Bool   bool
	Number float64
}

func Null() *Node {
	return &Node{Type: NullType}
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromBool(v bool) *Node {
	return &Node{Type: BoolType, Bool: v}
}

func FromFloat(f float64) *Node {
	return &Node{Type: NumberType, Number: f}
}

// FromInt returns a number node for v. Numbers are held as float64, so
// integers outside ±2^53 are rounded.
func FromInt(v int64) *Node {
	return &Node{Type: NumberType, Number: float64(v)}
}

func FromSlice(ySlice []*Node) *Node {
	res := &Node{
		Type:   ArrayType,
		Values: make([]*Node, len(ySlice)),
	}
	for i, y := range ySlice {
		if y == nil {
			y = Null()
		}
		res.Values[i] = y
	}
	return res
}

type KeyVal struct {
	Key string
	Val *Node
}

// FromKeyVals builds an object preserving the order of kvs. When a key
// repeats, the entry keeps the position of its first occurrence and the
// value of its last.
func FromKeyVals(kvs []KeyVal) *Node {
	res := &Node{
		Type:   ObjectType,
		Fields: make([]string, 0, len(kvs)),
		Values: make([]*Node, 0, len(kvs)),
	}
	var seen map[string]int
	if len(kvs) > 8 {
		seen = make(map[string]int, len(kvs))
	}
	for _, kv := range kvs {
		val := kv.Val
		if val == nil {
			val = Null()
		}
		idx := -1
		if seen != nil {
			if i, ok := seen[kv.Key]; ok {
				idx = i
			}
		} else {
			idx = slices.Index(res.Fields, kv.Key)
		}
		if idx >= 0 {
			res.Values[idx] = val
			continue
		}
		if seen != nil {
			seen[kv.Key] = len(res.Fields)
		}
		res.Fields = append(res.Fields, kv.Key)
		res.Values = append(res.Values, val)
	}
	return res
}

// FromMap builds an object from m with keys in sorted order.
func FromMap(yMap map[string]*Node) *Node {
	keys := slices.Sorted(maps.Keys(yMap))
	kvs := make([]KeyVal, len(keys))
	for i, key := range keys {
		kvs[i] = KeyVal{Key: key, Val: yMap[key]}
	}
	return FromKeyVals(kvs)
}

// Get returns the value under field in an object node, or nil.
func Get(y *Node, field string) *Node {
	if y == nil || y.Type != ObjectType {
		return nil
	}
	for i, f := range y.Fields {
		if f == field {
			return y.Values[i]
		}
	}
	return nil
}

// Len is the number of entries of an object or elements of an array.
func (y *Node) Len() int {
	switch y.Type {
	case ObjectType, ArrayType:
		return len(y.Values)
	}
	return 0
}

// KeyVals returns the entries of an object node in order.
func (y *Node) KeyVals() []KeyVal {
	if y.Type != ObjectType {
		return nil
	}
	res := make([]KeyVal, len(y.Fields))
	for i := range y.Fields {
		res[i] = KeyVal{Key: y.Fields[i], Val: y.Values[i]}
	}
	return res
}

// IsNull reports whether y is nil or a null node.
func (y *Node) IsNull() bool {
	return y == nil || y.Type == NullType
}

func (y *Node) Clone() *Node {
	if y == nil {
		return nil
	}
	res := &Node{
		Type:   y.Type,
		String: y.String,
		Bool:   y.Bool,
		Number: y.Number,
	}
	if y.Fields != nil {
		res.Fields = slices.Clone(y.Fields)
	}
	if y.Values != nil {
		res.Values = make([]*Node, len(y.Values))
		for i, v := range y.Values {
			res.Values[i] = v.Clone()
		}
	}
	return res
}

// FormatNumber renders f as the shortest decimal that parses back to f.
// Magnitudes of 1e21 and above use exponent form.
func FormatNumber(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "+Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	case math.IsNaN(f):
		return "NaN"
	}
	if math.Abs(f) >= 1e21 {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
