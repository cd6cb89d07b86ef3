package schema

import (
	"fmt"
	"strings"

	"github.com/signadot/objmap/coerce"
	"github.com/signadot/objmap/ir"
)

// TypeID names a registered type.
type TypeID string

// Kind is the shape of value a field expects.
type Kind int

const (
	ScalarKind Kind = iota
	ObjectKind
	ArrayKind
)

func (k Kind) String() string {
	switch k {
	case ScalarKind:
		return "scalar"
	case ObjectKind:
		return "object"
	case ArrayKind:
		return "array"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Expected is the value a field expects: a scalar primitive, an object of
// a registered type, or an array of either.
type Expected struct {
	Kind      Kind
	Primitive coerce.Primitive
	Ref       TypeID
	Elem      *Expected
}

func ScalarOf(p coerce.Primitive) Expected {
	return Expected{Kind: ScalarKind, Primitive: p}
}

func ObjectOf(ref TypeID) Expected {
	return Expected{Kind: ObjectKind, Ref: ref}
}

func ArrayOf(elem Expected) Expected {
	return Expected{Kind: ArrayKind, Elem: &elem}
}

// String renders e the way ParseExpected reads it: "int", "User",
// "[]string".
func (e Expected) String() string {
	switch e.Kind {
	case ScalarKind:
		return e.Primitive.String()
	case ObjectKind:
		return string(e.Ref)
	case ArrayKind:
		if e.Elem == nil {
			return "[]?"
		}
		return "[]" + e.Elem.String()
	}
	return e.Kind.String()
}

func (e Expected) Equal(o Expected) bool {
	if e.Kind != o.Kind {
		return false
	}
	switch e.Kind {
	case ScalarKind:
		return e.Primitive == o.Primitive
	case ObjectKind:
		return e.Ref == o.Ref
	case ArrayKind:
		if e.Elem == nil || o.Elem == nil {
			return e.Elem == o.Elem
		}
		return e.Elem.Equal(*o.Elem)
	}
	return false
}

// NodeType is the type of node holding a value of e. Any scalars report
// NullType.
func (e Expected) NodeType() ir.Type {
	switch e.Kind {
	case ObjectKind:
		return ir.ObjectType
	case ArrayKind:
		return ir.ArrayType
	}
	return e.Primitive.NodeType()
}

// ParseExpected reads a field type: a primitive name, "[]" followed by an
// element type, or the id of a registered type.
func ParseExpected(s string) (Expected, error) {
	if elem, ok := strings.CutPrefix(s, "[]"); ok {
		if strings.HasPrefix(elem, "[]") {
			return Expected{}, fmt.Errorf("nested arrays are not supported: %q", s)
		}
		e, err := ParseExpected(elem)
		if err != nil {
			return Expected{}, err
		}
		return ArrayOf(e), nil
	}
	if p, err := coerce.ParsePrimitive(s); err == nil {
		return ScalarOf(p), nil
	}
	if err := checkTypeID(TypeID(s)); err != nil {
		return Expected{}, err
	}
	return ObjectOf(TypeID(s)), nil
}

func (e Expected) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

func (e *Expected) UnmarshalText(d []byte) error {
	x, err := ParseExpected(string(d))
	if err != nil {
		return err
	}
	*e = x
	return nil
}

func checkTypeID(id TypeID) error {
	if id == "" {
		return fmt.Errorf("%w: empty type id", ErrInvalidDescriptor)
	}
	if strings.ContainsAny(string(id), " \t\n[]{}\"'") {
		return fmt.Errorf("%w: invalid type id %q", ErrInvalidDescriptor, id)
	}
	return nil
}

func (e Expected) check() error {
	switch e.Kind {
	case ScalarKind:
		return nil
	case ObjectKind:
		return checkTypeID(e.Ref)
	case ArrayKind:
		if e.Elem == nil {
			return fmt.Errorf("%w: array without element type", ErrInvalidDescriptor)
		}
		if e.Elem.Kind == ArrayKind {
			return fmt.Errorf("%w: nested arrays are not supported", ErrInvalidDescriptor)
		}
		return e.Elem.check()
	}
	return fmt.Errorf("%w: unknown kind %v", ErrInvalidDescriptor, e.Kind)
}
