package gomap

import (
	"fmt"

	"github.com/signadot/objmap/debug"
	"github.com/signadot/objmap/ir"
	"github.com/signadot/objmap/ir/kpath"
	"github.com/signadot/objmap/schema"
)

// Decode builds an instance of id from y.
//
// If the type has a root key path, y is first descended along it; when the
// path does not resolve every field is reported missing. Field problems are
// returned in the result with whatever could be decoded. The error is
// non-nil only for an unknown type, in which case no result is returned.
func (m *Mapper) Decode(id schema.TypeID, y *ir.Node) (*Result[any], error) {
	dc := &decoder{snap: m.Registry().Snapshot(), cfg: &m.cfg}
	d, err := dc.snap.Lookup(id)
	if err != nil {
		return nil, err
	}
	return dc.decode(d, y)
}

type decoder struct {
	snap *schema.Snapshot
	cfg  *config
}

func (dc *decoder) decode(d *schema.TypeDescriptor, y *ir.Node) (*Result[any], error) {
	if debug.Decode() {
		debug.Logf("decode %s from %s", d, y)
	}
	src := y
	if len(d.Root) > 0 {
		var ok bool
		src, ok = y.Lookup(d.Root...)
		if !ok {
			src = nil
		}
	}
	if !src.IsNull() && src.Type != ir.ObjectType {
		return &Result[any]{
			Value: d.New(),
			Errors: []*FieldError{{
				KeyPath:  d.Root,
				Kind:     KindMismatch,
				Expected: string(d.ID),
				Actual:   src.Type.String(),
				Index:    -1,
			}},
		}, nil
	}
	inst, errs, err := dc.object(d, src, 0)
	if err != nil {
		return nil, err
	}
	return &Result[any]{Value: inst, Errors: errs}, nil
}

// object decodes the fields of d from src, an object node or null.
func (dc *decoder) object(d *schema.TypeDescriptor, src *ir.Node, depth int) (any, []*FieldError, error) {
	inst := d.New()
	var errs []*FieldError
	for _, f := range d.Fields {
		ferrs, err := dc.field(f, inst, src, depth)
		if err != nil {
			return nil, nil, err
		}
		errs = append(errs, ferrs...)
	}
	return inst, errs, nil
}

func (dc *decoder) field(f *schema.Field, inst any, src *ir.Node, depth int) ([]*FieldError, error) {
	y, ferr := lookup(f, src)
	if ferr != nil {
		return []*FieldError{ferr}, nil
	}
	if y.IsNull() {
		return one(absent(f, inst)), nil
	}
	if debug.Decode() {
		debug.Logf("  %s <- %s", f, y)
	}
	switch f.Expected.Kind {
	case schema.ScalarKind:
		v, err := f.DecodeScalar(y)
		if err != nil {
			return one(fieldError(f, err, -1)), nil
		}
		return one(set(f, inst, v)), nil

	case schema.ObjectKind:
		nested, ferr, err := dc.nested(f, f.Expected.Ref, y, depth, -1)
		if err != nil {
			return nil, err
		}
		if nested != nil {
			if serr := set(f, inst, nested); serr != nil {
				return one(serr), nil
			}
		}
		return one(ferr), nil

	case schema.ArrayKind:
		if y.Type != ir.ArrayType {
			return one(mismatch(f, f.Expected.String(), y, -1)), nil
		}
		elem := f.Expected.Elem
		elts := make([]any, len(y.Values))
		var errs []*FieldError
		for i, ey := range y.Values {
			if elem.Kind == schema.ObjectKind {
				nested, ferr, err := dc.nested(f, elem.Ref, ey, depth, i)
				if err != nil {
					return nil, err
				}
				elts[i] = nested
				if ferr != nil {
					errs = append(errs, ferr)
				}
				continue
			}
			if ey.IsNull() {
				errs = append(errs, mismatch(f, elem.String(), ey, i))
				continue
			}
			v, err := f.DecodeScalar(ey)
			if err != nil {
				errs = append(errs, fieldError(f, err, i))
				continue
			}
			elts[i] = v
		}
		if serr := set(f, inst, elts); serr != nil {
			errs = append(errs, serr)
		}
		return errs, nil
	}
	return nil, fmt.Errorf("field %s: unknown kind %v", f.Name, f.Expected.Kind)
}

// nested decodes an object of type ref for f. A nil instance is returned
// when y is not an object or nesting is too deep.
func (dc *decoder) nested(f *schema.Field, ref schema.TypeID, y *ir.Node, depth, index int) (any, *FieldError, error) {
	d, err := dc.snap.Lookup(ref)
	if err != nil {
		return nil, nil, fmt.Errorf("field %s: %w", f.Name, err)
	}
	if y.IsNull() || y.Type != ir.ObjectType {
		return nil, mismatch(f, string(ref), y, index), nil
	}
	if depth+1 >= dc.cfg.maxDepth {
		return nil, tooDeep(f, dc.cfg.maxDepth, index), nil
	}
	inst, errs, err := dc.object(d, y, depth+1)
	if err != nil {
		return nil, nil, err
	}
	if len(errs) == 0 {
		return inst, nil, nil
	}
	return inst, &FieldError{
		Field:   f.Name,
		KeyPath: f.KeyPath,
		Kind:    NestedError,
		Nested:  errs,
		Index:   index,
	}, nil
}

// lookup resolves the key path of f in src. A path that ends early at a
// null or an object lacking the next key resolves to nil. A path running
// into any other value is a kind mismatch.
func lookup(f *schema.Field, src *ir.Node) (*ir.Node, *FieldError) {
	if src.IsNull() {
		return nil, nil
	}
	y, n := src.LookupPrefix(f.KeyPath)
	if n == len(f.KeyPath) {
		return y, nil
	}
	if y.IsNull() || y.Type == ir.ObjectType {
		return nil, nil
	}
	res := mismatch(f, ir.ObjectType.String(), y, -1)
	res.Reason = fmt.Sprintf("at %s", kpath.String(f.KeyPath[:n]))
	return nil, res
}

// absent handles a field whose value is missing or null.
func absent(f *schema.Field, inst any) *FieldError {
	switch {
	case f.HasDefault:
		return set(f, inst, f.Default)
	case f.Optional:
		return nil
	}
	return &FieldError{Field: f.Name, KeyPath: f.KeyPath, Kind: MissingKey, Index: -1}
}

func set(f *schema.Field, inst, v any) *FieldError {
	if err := f.Set(inst, v); err != nil {
		return &FieldError{
			Field:   f.Name,
			KeyPath: f.KeyPath,
			Kind:    CoercionFailed,
			Reason:  err.Error(),
			Err:     err,
			Index:   -1,
		}
	}
	return nil
}

func tooDeep(f *schema.Field, limit, index int) *FieldError {
	return &FieldError{
		Field:   f.Name,
		KeyPath: f.KeyPath,
		Kind:    CoercionFailed,
		Reason:  fmt.Sprintf("nesting exceeds maximum depth %d", limit),
		Index:   index,
	}
}

func one(e *FieldError) []*FieldError {
	if e == nil {
		return nil
	}
	return []*FieldError{e}
}
