package schema

import (
	"fmt"
	"slices"

	"github.com/signadot/objmap/ir/kpath"
)

// TypeDescriptor describes how instances of one type map to nodes.
//
// A descriptor is assembled with Describe or DynamicType and the With
// methods, then published with Registry.Register, which stores a checked
// copy. Later changes to the assembled value do not affect the registered
// copy.
type TypeDescriptor struct {
	ID     TypeID
	Fields []*Field
	// Root is the key path of the envelope holding the instance, if any.
	Root   []string
	Naming Naming
	Doc    string

	goType  string
	newInst func() any
	accepts func(any) bool
}

// Describe returns a descriptor for instances of type *T.
func Describe[T any](id TypeID, fields ...*Field) *TypeDescriptor {
	return &TypeDescriptor{
		ID:      id,
		Fields:  fields,
		goType:  fmt.Sprintf("%T", (*T)(nil)),
		newInst: func() any { return new(T) },
		accepts: func(inst any) bool {
			t, ok := inst.(*T)
			return ok && t != nil
		},
	}
}

// DynamicType returns a descriptor whose instances are *Record values.
func DynamicType(id TypeID, fields ...*Field) *TypeDescriptor {
	return &TypeDescriptor{
		ID:      id,
		Fields:  fields,
		goType:  "*schema.Record",
		newInst: func() any { return NewRecord(id) },
		accepts: func(inst any) bool {
			r, ok := inst.(*Record)
			return ok && r != nil
		},
	}
}

func (d *TypeDescriptor) WithRoot(path ...string) *TypeDescriptor {
	d.Root = slices.Clone(path)
	return d
}

func (d *TypeDescriptor) WithNaming(n Naming) *TypeDescriptor {
	d.Naming = n
	return d
}

func (d *TypeDescriptor) WithDoc(doc string) *TypeDescriptor {
	d.Doc = doc
	return d
}

// New returns a fresh zero instance.
func (d *TypeDescriptor) New() any {
	return d.newInst()
}

// Accepts reports whether inst is an instance of d.
func (d *TypeDescriptor) Accepts(inst any) bool {
	return d.accepts(inst)
}

// GoType is the Go type of instances, for messages.
func (d *TypeDescriptor) GoType() string {
	return d.goType
}

// Field returns the field called name, or nil.
func (d *TypeDescriptor) Field(name string) *Field {
	for _, f := range d.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func (d *TypeDescriptor) String() string {
	if len(d.Root) == 0 {
		return string(d.ID)
	}
	return fmt.Sprintf("%s@%s", d.ID, kpath.String(d.Root))
}

// resolve checks d and returns the copy to publish, with every field's
// key path filled in.
func resolve(d *TypeDescriptor) (*TypeDescriptor, error) {
	if d == nil {
		return nil, fmt.Errorf("%w: nil descriptor", ErrInvalidDescriptor)
	}
	if err := checkTypeID(d.ID); err != nil {
		return nil, err
	}
	if d.newInst == nil || d.accepts == nil {
		return nil, fmt.Errorf("%w: type %s has no constructor, build it with Describe or DynamicType", ErrInvalidDescriptor, d.ID)
	}
	if !d.Naming.Valid() {
		return nil, fmt.Errorf("%w: type %s: unknown naming %q", ErrInvalidDescriptor, d.ID, d.Naming)
	}
	res := *d
	res.Root = slices.Clone(d.Root)
	res.Fields = make([]*Field, len(d.Fields))
	names := make(map[string]bool, len(d.Fields))
	for i, f := range d.Fields {
		if f == nil {
			return nil, fmt.Errorf("%w: type %s: field %d is nil", ErrInvalidDescriptor, d.ID, i)
		}
		if f.Name == "" {
			return nil, fmt.Errorf("%w: type %s: field %d has no name", ErrInvalidDescriptor, d.ID, i)
		}
		if names[f.Name] {
			return nil, fmt.Errorf("%w: type %s: duplicate field %q", ErrInvalidDescriptor, d.ID, f.Name)
		}
		names[f.Name] = true
		cp := *f
		if f.pathSet {
			cp.KeyPath = slices.Clone(f.KeyPath)
		} else {
			cp.KeyPath = []string{d.Naming.Apply(f.Name)}
		}
		if len(cp.KeyPath) == 0 {
			return nil, fmt.Errorf("%w: type %s: field %q has an empty key path", ErrInvalidDescriptor, d.ID, f.Name)
		}
		if err := cp.Expected.check(); err != nil {
			return nil, fmt.Errorf("type %s: field %q: %w", d.ID, f.Name, err)
		}
		if cp.get == nil || cp.set == nil {
			return nil, fmt.Errorf("%w: type %s: field %q has no accessors", ErrInvalidDescriptor, d.ID, f.Name)
		}
		if cp.HasDefault {
			if err := cp.set(res.newInst(), cp.Default); err != nil {
				return nil, fmt.Errorf("%w: type %s: default of field %q: %w", ErrInvalidDescriptor, d.ID, f.Name, err)
			}
		}
		res.Fields[i] = &cp
	}
	if err := checkKeyPaths(&res); err != nil {
		return nil, err
	}
	return &res, nil
}

// checkKeyPaths rejects fields sharing a key path with different
// expectations, and key paths nested under another field's key path.
func checkKeyPaths(d *TypeDescriptor) error {
	for i, f := range d.Fields {
		for _, g := range d.Fields[:i] {
			switch {
			case slices.Equal(f.KeyPath, g.KeyPath):
				if !f.Expected.Equal(g.Expected) {
					return &DuplicateKeyPathError{
						Type:    d.ID,
						KeyPath: f.KeyPath,
						First:   g,
						Second:  f,
					}
				}
			case kpath.HasPrefix(f.KeyPath, g.KeyPath), kpath.HasPrefix(g.KeyPath, f.KeyPath):
				return fmt.Errorf("%w: type %s: key paths %s of field %q and %s of field %q overlap",
					ErrInvalidDescriptor, d.ID,
					kpath.String(g.KeyPath), g.Name, kpath.String(f.KeyPath), f.Name)
			}
		}
	}
	return nil
}
