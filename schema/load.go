package schema

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/signadot/objmap/ir"
	"github.com/signadot/objmap/ir/kpath"
	"github.com/signadot/objmap/transform"
)

// File is a YAML document declaring dynamic types:
//
//	types:
//	- id: User
//	  root: response.user
//	  naming: snake
//	  fields:
//	  - {name: FullName, type: string}
//	  - {name: age, type: int, default: 0}
//	  - {name: born, type: string, transform: {name: date, arg: date}}
//	  - {name: tags, path: meta.tags, type: "[]string", optional: true}
//	  - {name: address, type: Address}
type File struct {
	Types []TypeDoc `yaml:"types"`
}

type TypeDoc struct {
	ID     TypeID      `yaml:"id"`
	Doc    string      `yaml:"doc,omitempty"`
	Root   string      `yaml:"root,omitempty"`
	Naming Naming      `yaml:"naming,omitempty"`
	Fields []*FieldDoc `yaml:"fields"`
}

type FieldDoc struct {
	Name string `yaml:"name"`
	// Path is a key path such as `user."first name"`.
	Path      *string         `yaml:"path,omitempty"`
	Type      string          `yaml:"type"`
	Default   any             `yaml:"default,omitempty"`
	Optional  bool            `yaml:"optional,omitempty"`
	Doc       string          `yaml:"doc,omitempty"`
	Transform *transform.Spec `yaml:"transform,omitempty"`
}

// Load parses a YAML type document into descriptors.
func Load(data []byte) ([]*TypeDescriptor, error) {
	var file File
	if err := yaml.UnmarshalWithOptions(data, &file, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("could not parse type document: %w", err)
	}
	res := make([]*TypeDescriptor, 0, len(file.Types))
	for i, td := range file.Types {
		d, err := td.Descriptor()
		if err != nil {
			return nil, fmt.Errorf("types[%d]: %w", i, err)
		}
		res = append(res, d)
	}
	return res, nil
}

// LoadFile reads the type document at path and registers its types in reg.
func LoadFile(reg *Registry, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	descs, err := Load(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := reg.Register(descs...); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Descriptor builds the dynamic type declared by td.
func (td *TypeDoc) Descriptor() (*TypeDescriptor, error) {
	if err := checkTypeID(td.ID); err != nil {
		return nil, err
	}
	fields := make([]*Field, len(td.Fields))
	for i, fd := range td.Fields {
		if fd == nil {
			return nil, fmt.Errorf("type %s: fields[%d] is empty", td.ID, i)
		}
		f, err := fd.field()
		if err != nil {
			return nil, fmt.Errorf("type %s: field %q: %w", td.ID, fd.Name, err)
		}
		fields[i] = f
	}
	d := DynamicType(td.ID, fields...).WithNaming(td.Naming).WithDoc(td.Doc)
	if td.Root != "" {
		root, err := kpath.Parse(td.Root)
		if err != nil {
			return nil, fmt.Errorf("type %s: root: %w", td.ID, err)
		}
		d.WithRoot(root...)
	}
	return d, nil
}

func (fd *FieldDoc) field() (*Field, error) {
	if fd.Type == "" {
		return nil, errors.New("missing type")
	}
	e, err := ParseExpected(fd.Type)
	if err != nil {
		return nil, err
	}
	f := Dynamic(fd.Name, e).WithDoc(fd.Doc)
	f.Optional = fd.Optional
	if fd.Path != nil {
		path, err := kpath.Parse(*fd.Path)
		if err != nil {
			return nil, err
		}
		f.At(path...)
	}
	if fd.Transform != nil {
		if e.Kind == ObjectKind || (e.Kind == ArrayKind && e.Elem.Kind == ObjectKind) {
			return nil, fmt.Errorf("transform %s on object field", fd.Transform)
		}
		t, err := transform.Lookup(*fd.Transform)
		if err != nil {
			return nil, err
		}
		f.WithTransformer(t)
	}
	if fd.Default != nil {
		v, err := fd.defaultValue(f)
		if err != nil {
			return nil, fmt.Errorf("default: %w", err)
		}
		f.WithDefault(v)
	}
	return f, nil
}

// defaultValue converts the declared default to the field's value form.
func (fd *FieldDoc) defaultValue(f *Field) (any, error) {
	y, err := ir.FromAny(fd.Default)
	if err != nil {
		return nil, err
	}
	switch f.Expected.Kind {
	case ScalarKind:
		return f.DecodeScalar(y)
	case ArrayKind:
		if f.Expected.Elem.Kind != ScalarKind {
			break
		}
		if y.Type != ir.ArrayType {
			return nil, fmt.Errorf("expected an array, got %s", y.Type)
		}
		res := make([]any, len(y.Values))
		for i, elt := range y.Values {
			v, err := f.DecodeScalar(elt)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			res[i] = v
		}
		return res, nil
	}
	return nil, fmt.Errorf("defaults are not supported for %s fields", f.Expected)
}
