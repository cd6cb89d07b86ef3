package schema

import (
	"fmt"
	"slices"

	"github.com/signadot/objmap/coerce"
	"github.com/signadot/objmap/ir"
	"github.com/signadot/objmap/transform"
)

// Field describes one field of a target type.
//
// Values cross the accessors in a fixed form. Scalar fields take and yield
// the field's Go value. Object fields take and yield a pointer to the
// nested instance, nil standing for none. Array fields take and yield a
// []any of element values in those same forms.
type Field struct {
	Name string
	// KeyPath is where the field's value is found in a source object. When
	// not set with At it is derived from Name by the descriptor's Naming.
	KeyPath     []string
	Expected    Expected
	Transformer transform.Transformer
	// Optional fields that are absent or null are left unset without an
	// error.
	Optional   bool
	HasDefault bool
	Default    any
	Doc        string

	pathSet    bool
	get        func(inst any) (any, error)
	set        func(inst, v any) error
	toScalar   func(*ir.Node) (any, error)
	fromScalar func(any) (*ir.Node, error)
}

// At sets the key path of f.
func (f *Field) At(path ...string) *Field {
	f.KeyPath = slices.Clone(path)
	if f.KeyPath == nil {
		f.KeyPath = []string{}
	}
	f.pathSet = true
	return f
}

// WithDefault sets the value assigned when the source holds null or lacks
// the key. v must have the form the field's setter accepts.
func (f *Field) WithDefault(v any) *Field {
	f.HasDefault = true
	f.Default = v
	return f
}

func (f *Field) AsOptional() *Field {
	f.Optional = true
	return f
}

func (f *Field) WithDoc(doc string) *Field {
	f.Doc = doc
	return f
}

// WithTransformer converts the field's scalars with t instead of the
// coercion rules. It is meant for fields built with Dynamic, whose
// setters accept any value; typed fields use Transformed.
func (f *Field) WithTransformer(t transform.Transformer) *Field {
	f.Transformer = t
	f.toScalar = t.FromValue
	f.fromScalar = t.ToValue
	if f.Expected.Kind == ScalarKind {
		f.Expected.Primitive = transformedPrimitive(t)
	}
	return f
}

// Get reads the field off inst.
func (f *Field) Get(inst any) (any, error) {
	return f.get(inst)
}

// Set assigns v to the field of inst.
func (f *Field) Set(inst, v any) error {
	return f.set(inst, v)
}

// DecodeScalar converts a scalar node, or an element of a scalar array, to
// the field's value form.
func (f *Field) DecodeScalar(y *ir.Node) (any, error) {
	return f.toScalar(y)
}

// EncodeScalar converts a scalar value, or an element of a scalar array,
// to a node.
func (f *Field) EncodeScalar(v any) (*ir.Node, error) {
	return f.fromScalar(v)
}

func (f *Field) String() string {
	return fmt.Sprintf("%s %s", f.Name, f.Expected)
}

func fieldOf[T, F any](inst any, field func(*T) *F) (*F, error) {
	t, ok := inst.(*T)
	if !ok || t == nil {
		return nil, fmt.Errorf("%w: got %T, want %T", ErrInstanceType, inst, t)
	}
	return field(t), nil
}

func assignError(v, target any) error {
	return fmt.Errorf("cannot assign %T to field of type %T", v, target)
}

func scalarAccessors[T, F any](f *Field, field func(*T) *F) {
	f.get = func(inst any) (any, error) {
		p, err := fieldOf(inst, field)
		if err != nil {
			return nil, err
		}
		return *p, nil
	}
	f.set = func(inst, v any) error {
		p, err := fieldOf(inst, field)
		if err != nil {
			return err
		}
		if v == nil {
			var zero F
			*p = zero
			return nil
		}
		x, ok := v.(F)
		if !ok {
			return assignError(v, *p)
		}
		*p = x
		return nil
	}
}

func convScalars[F any](f *Field, c coerce.Conv[F]) {
	f.toScalar = func(y *ir.Node) (any, error) {
		v, err := c.To(y)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
	f.fromScalar = func(v any) (*ir.Node, error) {
		x, ok := v.(F)
		if !ok {
			var zero F
			return nil, assignError(v, zero)
		}
		return c.From(x)
	}
}

// Scalar describes a field converted by c.
func Scalar[T, F any](name string, c coerce.Conv[F], field func(*T) *F) *Field {
	f := &Field{Name: name, Expected: ScalarOf(c.Primitive)}
	scalarAccessors(f, field)
	convScalars(f, c)
	return f
}

func String[T any, F ~string](name string, field func(*T) *F) *Field {
	return Scalar(name, coerce.StringOf[F](), field)
}

func Int[T any, F coerce.Integer](name string, field func(*T) *F) *Field {
	return Scalar(name, coerce.IntOf[F](), field)
}

func Float[T any, F coerce.Floating](name string, field func(*T) *F) *Field {
	return Scalar(name, coerce.FloatOf[F](), field)
}

func Bool[T any, F ~bool](name string, field func(*T) *F) *Field {
	return Scalar(name, coerce.BoolOf[F](), field)
}

// ScalarSlice describes an array field whose elements are converted by c.
// Elements that fail to convert are left at their zero value.
func ScalarSlice[T, F any](name string, c coerce.Conv[F], field func(*T) *[]F) *Field {
	f := &Field{Name: name, Expected: ArrayOf(ScalarOf(c.Primitive))}
	convScalars(f, c)
	f.get = func(inst any) (any, error) {
		p, err := fieldOf(inst, field)
		if err != nil {
			return nil, err
		}
		res := make([]any, len(*p))
		for i, v := range *p {
			res[i] = v
		}
		return res, nil
	}
	f.set = func(inst, v any) error {
		p, err := fieldOf(inst, field)
		if err != nil {
			return err
		}
		if v == nil {
			*p = nil
			return nil
		}
		elts, ok := v.([]any)
		if !ok {
			return assignError(v, *p)
		}
		res := make([]F, len(elts))
		for i, elt := range elts {
			if elt == nil {
				continue
			}
			x, ok := elt.(F)
			if !ok {
				return fmt.Errorf("[%d]: %w", i, assignError(elt, res[i]))
			}
			res[i] = x
		}
		*p = res
		return nil
	}
	return f
}

func Strings[T any, F ~string](name string, field func(*T) *[]F) *Field {
	return ScalarSlice(name, coerce.StringOf[F](), field)
}

func Ints[T any, F coerce.Integer](name string, field func(*T) *[]F) *Field {
	return ScalarSlice(name, coerce.IntOf[F](), field)
}

func Floats[T any, F coerce.Floating](name string, field func(*T) *[]F) *Field {
	return ScalarSlice(name, coerce.FloatOf[F](), field)
}

func Bools[T any, F ~bool](name string, field func(*T) *[]F) *Field {
	return ScalarSlice(name, coerce.BoolOf[F](), field)
}

// Object describes a nested object of the registered type ref held by
// value in a field of type N.
func Object[T, N any](name string, ref TypeID, field func(*T) *N) *Field {
	f := &Field{Name: name, Expected: ObjectOf(ref)}
	f.get = func(inst any) (any, error) {
		return fieldOf(inst, field)
	}
	f.set = func(inst, v any) error {
		p, err := fieldOf(inst, field)
		if err != nil {
			return err
		}
		if v == nil {
			var zero N
			*p = zero
			return nil
		}
		x, ok := v.(*N)
		if !ok {
			return assignError(v, p)
		}
		*p = *x
		return nil
	}
	return f
}

// ObjectPtr is like Object for a pointer field. A nil pointer encodes as
// null.
func ObjectPtr[T, N any](name string, ref TypeID, field func(*T) **N) *Field {
	f := &Field{Name: name, Expected: ObjectOf(ref)}
	f.get = func(inst any) (any, error) {
		p, err := fieldOf(inst, field)
		if err != nil || *p == nil {
			return nil, err
		}
		return *p, nil
	}
	f.set = func(inst, v any) error {
		p, err := fieldOf(inst, field)
		if err != nil {
			return err
		}
		if v == nil {
			*p = nil
			return nil
		}
		x, ok := v.(*N)
		if !ok {
			return assignError(v, *p)
		}
		*p = x
		return nil
	}
	return f
}

// ObjectSlice describes an array of nested objects of the registered type
// ref.
func ObjectSlice[T, N any](name string, ref TypeID, field func(*T) *[]N) *Field {
	f := &Field{Name: name, Expected: ArrayOf(ObjectOf(ref))}
	f.get = func(inst any) (any, error) {
		p, err := fieldOf(inst, field)
		if err != nil {
			return nil, err
		}
		res := make([]any, len(*p))
		for i := range *p {
			res[i] = &(*p)[i]
		}
		return res, nil
	}
	f.set = func(inst, v any) error {
		p, err := fieldOf(inst, field)
		if err != nil {
			return err
		}
		if v == nil {
			*p = nil
			return nil
		}
		elts, ok := v.([]any)
		if !ok {
			return assignError(v, *p)
		}
		res := make([]N, len(elts))
		for i, elt := range elts {
			if elt == nil {
				continue
			}
			x, ok := elt.(*N)
			if !ok {
				return fmt.Errorf("[%d]: %w", i, assignError(elt, &res[i]))
			}
			res[i] = *x
		}
		*p = res
		return nil
	}
	return f
}

// Transformed describes a scalar field converted by t. The values t
// produces when decoding must have type F.
func Transformed[T, F any](name string, t transform.Transformer, field func(*T) *F) *Field {
	f := &Field{
		Name:        name,
		Expected:    ScalarOf(transformedPrimitive(t)),
		Transformer: t,
	}
	scalarAccessors(f, field)
	f.toScalar = func(y *ir.Node) (any, error) {
		v, err := t.FromValue(y)
		if err != nil {
			return nil, err
		}
		if _, ok := v.(F); !ok {
			var zero F
			return nil, &coerce.CoercionError{
				Target: f.Expected.Primitive,
				Reason: fmt.Sprintf("transformer produced %T, want %T", v, zero),
			}
		}
		return v, nil
	}
	f.fromScalar = t.ToValue
	return f
}

// Dynamic describes a field of a Record. Scalars hold the values of
// coerce.Coerce, objects hold *Record and arrays hold []any.
func Dynamic(name string, e Expected) *Field {
	f := &Field{Name: name, Expected: e}
	p := e.Primitive
	if e.Kind == ArrayKind && e.Elem != nil {
		p = e.Elem.Primitive
	}
	c := coerce.Of(p)
	f.toScalar = c.To
	f.fromScalar = c.From
	f.get = func(inst any) (any, error) {
		r, ok := inst.(*Record)
		if !ok || r == nil {
			return nil, fmt.Errorf("%w: got %T, want *schema.Record", ErrInstanceType, inst)
		}
		v, _ := r.Get(name)
		return v, nil
	}
	f.set = func(inst, v any) error {
		r, ok := inst.(*Record)
		if !ok || r == nil {
			return fmt.Errorf("%w: got %T, want *schema.Record", ErrInstanceType, inst)
		}
		if elts, ok := v.([]any); ok {
			v = slices.Clone(elts)
		}
		r.Set(name, v)
		return nil
	}
	return f
}

func transformedPrimitive(t transform.Transformer) coerce.Primitive {
	tt, ok := t.(transform.Typed)
	if !ok {
		return coerce.Any
	}
	switch tt.NodeType() {
	case ir.StringType:
		return coerce.String
	case ir.NumberType:
		return coerce.Float
	case ir.BoolType:
		return coerce.Bool
	}
	return coerce.Any
}
