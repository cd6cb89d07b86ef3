package ir

import "slices"

// Equal reports structural equality. Object entries are matched by key, so
// two objects holding the same entries in different orders are equal.
func Equal(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case NullType:
		return true
	case BoolType:
		return a.Bool == b.Bool
	case NumberType:
		return a.Number == b.Number
	case StringType:
		return a.String == b.String
	case ArrayType:
		return slices.EqualFunc(a.Values, b.Values, Equal)
	case ObjectType:
		if len(a.Fields) != len(b.Fields) {
			return false
		}
		for i, f := range a.Fields {
			bv := Get(b, f)
			if bv == nil || !Equal(a.Values[i], bv) {
				return false
			}
		}
		return true
	}
	return false
}
