package schema

import (
	"slices"

	"github.com/invopop/jsonschema"

	"github.com/signadot/objmap/coerce"
	"github.com/signadot/objmap/ir"
	"github.com/signadot/objmap/transform"
)

// JSONSchema describes the values id decodes from as a JSON Schema. Types
// reachable from id are placed in $defs and referenced. The root envelope
// of id, if any, wraps the top level schema.
func JSONSchema(snap *Snapshot, id TypeID) (*jsonschema.Schema, error) {
	root, err := snap.Lookup(id)
	if err != nil {
		return nil, err
	}
	defs := jsonschema.Definitions{}
	queue := []TypeID{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if _, done := defs[string(cur)]; done {
			continue
		}
		d, err := snap.Lookup(cur)
		if err != nil {
			return nil, err
		}
		defs[string(cur)] = typeSchema(d)
		for _, f := range d.Fields {
			if ref := f.Expected.ref(); ref != "" {
				queue = append(queue, ref)
			}
		}
	}
	top := refSchema(id)
	for _, seg := range slices.Backward(root.Root) {
		env := objectSchema()
		env.Properties.Set(seg, top)
		env.Required = []string{seg}
		top = env
	}
	top.Version = jsonschema.Version
	top.Definitions = defs
	return top, nil
}

func (e Expected) ref() TypeID {
	switch e.Kind {
	case ObjectKind:
		return e.Ref
	case ArrayKind:
		if e.Elem != nil {
			return e.Elem.ref()
		}
	}
	return ""
}

func refSchema(id TypeID) *jsonschema.Schema {
	return &jsonschema.Schema{Ref: "#/$defs/" + string(id)}
}

func objectSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "object", Properties: jsonschema.NewProperties()}
}

func typeSchema(d *TypeDescriptor) *jsonschema.Schema {
	res := objectSchema()
	res.Title = string(d.ID)
	res.Description = d.Doc
	for _, f := range d.Fields {
		leaf := fieldSchema(f)
		required := !f.Optional && !f.HasDefault
		obj := res
		for _, seg := range f.KeyPath[:len(f.KeyPath)-1] {
			next, ok := obj.Properties.Get(seg)
			if !ok {
				next = objectSchema()
				obj.Properties.Set(seg, next)
			}
			if required {
				obj.Required = appendUnique(obj.Required, seg)
			}
			obj = next
		}
		last := f.KeyPath[len(f.KeyPath)-1]
		obj.Properties.Set(last, leaf)
		if required {
			obj.Required = appendUnique(obj.Required, last)
		}
	}
	return res
}

func fieldSchema(f *Field) *jsonschema.Schema {
	var res *jsonschema.Schema
	switch f.Expected.Kind {
	case ObjectKind:
		res = refSchema(f.Expected.Ref)
	case ArrayKind:
		res = &jsonschema.Schema{Type: "array"}
		if f.Expected.Elem.Kind == ObjectKind {
			res.Items = refSchema(f.Expected.Elem.Ref)
		} else {
			res.Items = scalarSchema(f.Expected.Elem.Primitive, f.Transformer)
		}
	default:
		res = scalarSchema(f.Expected.Primitive, f.Transformer)
		if f.HasDefault {
			if y, err := f.EncodeScalar(f.Default); err == nil {
				res.Default = ir.ToAny(y)
			}
		}
	}
	res.Description = f.Doc
	return res
}

func scalarSchema(p coerce.Primitive, t transform.Transformer) *jsonschema.Schema {
	res := &jsonschema.Schema{}
	switch p {
	case coerce.Bool:
		res.Type = "boolean"
	case coerce.Int:
		res.Type = "integer"
	case coerce.Float:
		res.Type = "number"
	case coerce.String:
		res.Type = "string"
	}
	if ft, ok := t.(transform.Formatted); ok {
		res.Format = ft.SchemaFormat()
	}
	return res
}

func appendUnique(xs []string, x string) []string {
	if slices.Contains(xs, x) {
		return xs
	}
	return append(xs, x)
}
