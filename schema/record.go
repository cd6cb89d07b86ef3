package schema

import (
	"fmt"
	"slices"
	"time"

	"github.com/signadot/objmap/ir"
)

// Record is an instance of a type without a Go struct. It holds field
// values by name in the order they were first set.
type Record struct {
	Type   TypeID
	names  []string
	values map[string]any
}

func NewRecord(id TypeID) *Record {
	return &Record{Type: id, values: map[string]any{}}
}

func (r *Record) Get(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

func (r *Record) Set(name string, v any) {
	if r.values == nil {
		r.values = map[string]any{}
	}
	if _, ok := r.values[name]; !ok {
		r.names = append(r.names, name)
	}
	r.values[name] = v
}

func (r *Record) Names() []string {
	return slices.Clone(r.names)
}

func (r *Record) Len() int {
	return len(r.names)
}

// Node renders r as an object keyed by field name. Nested records and
// arrays are rendered recursively, times in RFC 3339 and values without a
// node form with %v.
func (r *Record) Node() *ir.Node {
	kvs := make([]ir.KeyVal, len(r.names))
	for i, name := range r.names {
		kvs[i] = ir.KeyVal{Key: name, Val: valueNode(r.values[name])}
	}
	return ir.FromKeyVals(kvs)
}

func valueNode(v any) *ir.Node {
	switch x := v.(type) {
	case *Record:
		if x == nil {
			return ir.Null()
		}
		return x.Node()
	case []any:
		elts := make([]*ir.Node, len(x))
		for i, elt := range x {
			elts[i] = valueNode(elt)
		}
		return ir.FromSlice(elts)
	case time.Time:
		return ir.FromString(x.Format(time.RFC3339Nano))
	}
	y, err := ir.FromAny(v)
	if err != nil {
		return ir.FromString(fmt.Sprintf("%v", v))
	}
	return y
}
