package gomap

import (
	"fmt"

	"github.com/signadot/objmap/debug"
	"github.com/signadot/objmap/ir"
	"github.com/signadot/objmap/schema"
)

// Encode builds the node for inst, an instance of id, wrapped in the
// type's root key path if it has one.
//
// Fields are not required to be set; unset values encode as null, and
// optional fields holding nothing are omitted. Conversion problems are
// reported in the result and the affected values encode as null. The error
// is non-nil only for an unknown type or an instance of another Go type.
func (m *Mapper) Encode(id schema.TypeID, inst any) (*Result[*ir.Node], error) {
	ec := &encoder{snap: m.Registry().Snapshot(), cfg: &m.cfg}
	d, err := ec.snap.Lookup(id)
	if err != nil {
		return nil, err
	}
	return ec.encode(d, inst)
}

type encoder struct {
	snap *schema.Snapshot
	cfg  *config
}

func (ec *encoder) encode(d *schema.TypeDescriptor, inst any) (*Result[*ir.Node], error) {
	if !d.Accepts(inst) {
		return nil, &instanceError{id: d.ID, got: inst, want: d.GoType()}
	}
	if debug.Encode() {
		debug.Logf("encode %s from %T", d, inst)
	}
	y, errs, err := ec.object(d, inst, 0)
	if err != nil {
		return nil, err
	}
	if len(d.Root) > 0 {
		y = ir.Wrap(d.Root, y)
	}
	return &Result[*ir.Node]{Value: y, Errors: errs}, nil
}

func (ec *encoder) object(d *schema.TypeDescriptor, inst any, depth int) (*ir.Node, []*FieldError, error) {
	b := &objBuilder{}
	var errs []*FieldError
	for _, f := range d.Fields {
		v, err := f.Get(inst)
		if err != nil {
			return nil, nil, fmt.Errorf("type %s: field %s: %w", d.ID, f.Name, err)
		}
		if v == nil && f.Optional {
			continue
		}
		y, ferrs, err := ec.field(f, v, depth)
		if err != nil {
			return nil, nil, err
		}
		errs = append(errs, ferrs...)
		if y.IsNull() && ec.cfg.skipNullOnEncode {
			continue
		}
		if debug.Encode() {
			debug.Logf("  %s -> %s", f, y)
		}
		b.put(f.KeyPath, y)
	}
	return b.node(), errs, nil
}

func (ec *encoder) field(f *schema.Field, v any, depth int) (*ir.Node, []*FieldError, error) {
	if v == nil {
		return ir.Null(), nil, nil
	}
	switch f.Expected.Kind {
	case schema.ScalarKind:
		y, err := f.EncodeScalar(v)
		if err != nil {
			return ir.Null(), one(fieldError(f, err, -1)), nil
		}
		return y, nil, nil

	case schema.ObjectKind:
		y, ferr, err := ec.nested(f, f.Expected.Ref, v, depth, -1)
		return y, one(ferr), err

	case schema.ArrayKind:
		elts, ok := v.([]any)
		if !ok {
			return ir.Null(), one(&FieldError{
				Field:   f.Name,
				KeyPath: f.KeyPath,
				Kind:    CoercionFailed,
				Reason:  fmt.Sprintf("array field holds %T", v),
				Index:   -1,
			}), nil
		}
		ys := make([]*ir.Node, len(elts))
		var errs []*FieldError
		for i, ev := range elts {
			if ev == nil {
				ys[i] = ir.Null()
				continue
			}
			if f.Expected.Elem.Kind == schema.ObjectKind {
				y, ferr, err := ec.nested(f, f.Expected.Elem.Ref, ev, depth, i)
				if err != nil {
					return nil, nil, err
				}
				ys[i] = y
				if ferr != nil {
					errs = append(errs, ferr)
				}
				continue
			}
			y, err := f.EncodeScalar(ev)
			if err != nil {
				errs = append(errs, fieldError(f, err, i))
				y = ir.Null()
			}
			ys[i] = y
		}
		return ir.FromSlice(ys), errs, nil
	}
	return nil, nil, fmt.Errorf("field %s: unknown kind %v", f.Name, f.Expected.Kind)
}

func (ec *encoder) nested(f *schema.Field, ref schema.TypeID, v any, depth, index int) (*ir.Node, *FieldError, error) {
	d, err := ec.snap.Lookup(ref)
	if err != nil {
		return nil, nil, fmt.Errorf("field %s: %w", f.Name, err)
	}
	if !d.Accepts(v) {
		return ir.Null(), &FieldError{
			Field:   f.Name,
			KeyPath: f.KeyPath,
			Kind:    CoercionFailed,
			Reason:  fmt.Sprintf("holds %T, want %s", v, d.GoType()),
			Err:     ErrInstanceType,
			Index:   index,
		}, nil
	}
	if depth+1 >= ec.cfg.maxDepth {
		return ir.Null(), tooDeep(f, ec.cfg.maxDepth, index), nil
	}
	y, errs, err := ec.object(d, v, depth+1)
	if err != nil {
		return nil, nil, err
	}
	if len(errs) == 0 {
		return y, nil, nil
	}
	return y, &FieldError{
		Field:   f.Name,
		KeyPath: f.KeyPath,
		Kind:    NestedError,
		Nested:  errs,
		Index:   index,
	}, nil
}

// objBuilder assembles an object from values placed at key paths, keeping
// keys in first insertion order.
type objBuilder struct {
	keys []string
	vals map[string]*ir.Node
	subs map[string]*objBuilder
}

func (b *objBuilder) put(path []string, y *ir.Node) {
	key := path[0]
	if b.vals == nil {
		b.vals = map[string]*ir.Node{}
		b.subs = map[string]*objBuilder{}
	}
	_, isVal := b.vals[key]
	sub, isSub := b.subs[key]
	if !isVal && !isSub {
		b.keys = append(b.keys, key)
	}
	if len(path) == 1 {
		b.vals[key] = y
		delete(b.subs, key)
		return
	}
	if sub == nil {
		sub = &objBuilder{}
		b.subs[key] = sub
		delete(b.vals, key)
	}
	sub.put(path[1:], y)
}

func (b *objBuilder) node() *ir.Node {
	kvs := make([]ir.KeyVal, 0, len(b.keys))
	for _, k := range b.keys {
		if sub, ok := b.subs[k]; ok {
			kvs = append(kvs, ir.KeyVal{Key: k, Val: sub.node()})
			continue
		}
		kvs = append(kvs, ir.KeyVal{Key: k, Val: b.vals[k]})
	}
	return ir.FromKeyVals(kvs)
}
