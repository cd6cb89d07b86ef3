package gomap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/signadot/objmap/coerce"
	"github.com/signadot/objmap/ir"
	"github.com/signadot/objmap/ir/kpath"
	"github.com/signadot/objmap/schema"
)

var (
	ErrUnknownType  = schema.ErrUnknownType
	ErrInstanceType = schema.ErrInstanceType
	// ErrNotSequence is returned by DecodeAll for input that is not an
	// array.
	ErrNotSequence = errors.New("not a sequence")

	// Field error kinds, matched by errors.Is against a *FieldError.
	ErrMissingKey     = errors.New("missing key")
	ErrKindMismatch   = errors.New("kind mismatch")
	ErrCoercionFailed = errors.New("coercion failed")
	ErrNested         = errors.New("nested error")
)

// ErrorKind classifies a FieldError.
type ErrorKind int

const (
	MissingKey ErrorKind = iota
	KindMismatch
	CoercionFailed
	NestedError
)

func (k ErrorKind) String() string {
	switch k {
	case MissingKey:
		return "MissingKey"
	case KindMismatch:
		return "KindMismatch"
	case CoercionFailed:
		return "CoercionFailed"
	case NestedError:
		return "NestedError"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

func (k ErrorKind) sentinel() error {
	switch k {
	case MissingKey:
		return ErrMissingKey
	case KindMismatch:
		return ErrKindMismatch
	case CoercionFailed:
		return ErrCoercionFailed
	}
	return ErrNested
}

// FieldError describes a problem with one field of one conversion.
type FieldError struct {
	// Field is the name of the field. It is empty for a problem with the
	// value as a whole.
	Field   string
	KeyPath []string
	Kind    ErrorKind
	// Expected and Actual are set for KindMismatch.
	Expected string
	Actual   string
	// Reason explains a CoercionFailed error and may locate a
	// KindMismatch.
	Reason string
	Err    error
	// Nested holds the errors of a nested object for NestedError.
	Nested []*FieldError
	// Index is the element position for errors about one array element,
	// otherwise -1.
	Index int
}

// Path renders the field name with its element index, like "items[1]".
func (e *FieldError) Path() string {
	name := e.Field
	if name == "" {
		name = "<root>"
	}
	if e.Index >= 0 {
		return fmt.Sprintf("%s[%d]", name, e.Index)
	}
	return name
}

func (e *FieldError) Error() string {
	var b strings.Builder
	b.WriteString(e.Path())
	b.WriteString(": ")
	switch e.Kind {
	case MissingKey:
		fmt.Fprintf(&b, "missing key %s", kpath.String(e.KeyPath))
	case KindMismatch:
		fmt.Fprintf(&b, "expected %s, got %s", e.Expected, e.Actual)
		if e.Reason != "" {
			b.WriteString(" " + e.Reason)
		}
	case CoercionFailed:
		b.WriteString(e.Reason)
	case NestedError:
		for i, n := range e.Nested {
			if i > 0 {
				b.WriteString("; ")
			}
			b.WriteString(n.Error())
		}
	}
	return b.String()
}

func (e *FieldError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

func (e *FieldError) Unwrap() []error {
	if e.Kind == NestedError {
		res := make([]error, len(e.Nested))
		for i, n := range e.Nested {
			res[i] = n
		}
		return res
	}
	if e.Err != nil {
		return []error{e.Err}
	}
	return nil
}

// Walk calls fn for every error in errs that does not wrap nested errors,
// with its full path such as "home.city" or "items[1].name".
func Walk(errs []*FieldError, fn func(path string, e *FieldError)) {
	walk("", errs, fn)
}

func walk(prefix string, errs []*FieldError, fn func(string, *FieldError)) {
	for _, e := range errs {
		p := e.Path()
		if prefix != "" {
			p = prefix + "." + p
		}
		if e.Kind == NestedError {
			walk(p, e.Nested, fn)
			continue
		}
		fn(p, e)
	}
}

type instanceError struct {
	id   schema.TypeID
	got  any
	want string
}

func (e *instanceError) Error() string {
	return fmt.Sprintf("%s: type %s: got %T, want %s", ErrInstanceType, e.id, e.got, e.want)
}

func (e *instanceError) Unwrap() error {
	return ErrInstanceType
}

// fieldError classifies an error from converting a value of f.
func fieldError(f *schema.Field, err error, index int) *FieldError {
	res := &FieldError{Field: f.Name, KeyPath: f.KeyPath, Err: err, Index: index}
	var kerr *coerce.KindMismatchError
	switch {
	case errors.As(err, &kerr):
		res.Kind = KindMismatch
		res.Expected = expectedName(f, kerr.Expected)
		res.Actual = kerr.Actual.String()
	case errors.Is(err, coerce.ErrNull):
		res.Kind = KindMismatch
		res.Expected = expectedName(f, f.Expected.Primitive)
		res.Actual = ir.NullType.String()
	default:
		res.Kind = CoercionFailed
		res.Reason = err.Error()
	}
	return res
}

func expectedName(f *schema.Field, p coerce.Primitive) string {
	if f.Transformer != nil || p == coerce.Any {
		return f.Expected.String()
	}
	return p.String()
}

func mismatch(f *schema.Field, expected string, y *ir.Node, index int) *FieldError {
	actual := ir.NullType
	if y != nil {
		actual = y.Type
	}
	return &FieldError{
		Field:    f.Name,
		KeyPath:  f.KeyPath,
		Kind:     KindMismatch,
		Expected: expected,
		Actual:   actual.String(),
		Index:    index,
	}
}
