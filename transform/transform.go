// Package transform provides custom value representations for fields,
// such as dates stored as formatted strings.
package transform

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/signadot/objmap/ir"
)

// Transformer converts a field between its node form and its Go form.
// Implementations must be safe for concurrent use.
type Transformer interface {
	FromValue(*ir.Node) (any, error)
	ToValue(any) (*ir.Node, error)
}

// Typed is implemented by transformers whose node form always has the same
// type.
type Typed interface {
	NodeType() ir.Type
}

// Formatted is implemented by transformers whose node form follows a
// JSON Schema "format", such as "date-time".
type Formatted interface {
	SchemaFormat() string
}

// Func adapts a pair of functions to a Transformer.
type Func struct {
	From func(*ir.Node) (any, error)
	To   func(any) (*ir.Node, error)
}

func (f Func) FromValue(y *ir.Node) (any, error) {
	return f.From(y)
}

func (f Func) ToValue(v any) (*ir.Node, error) {
	return f.To(v)
}

// Spec names a transformer in declarative descriptors.
//
//	transform: {name: date, arg: "2006-01-02"}
//	transform: {name: expr, decode: "value * 100", encode: "value / 100"}
type Spec struct {
	Name   string `yaml:"name" json:"name"`
	Arg    string `yaml:"arg,omitempty" json:"arg,omitempty"`
	Decode string `yaml:"decode,omitempty" json:"decode,omitempty"`
	Encode string `yaml:"encode,omitempty" json:"encode,omitempty"`
}

func (s Spec) String() string {
	if s.Arg == "" {
		return s.Name
	}
	return s.Name + ":" + s.Arg
}

// Factory builds a transformer from its spec.
type Factory func(Spec) (Transformer, error)

var (
	factoryMu sync.RWMutex
	factories = map[string]Factory{
		"date": func(s Spec) (Transformer, error) {
			return Date(s.Arg), nil
		},
		"unix": func(s Spec) (Transformer, error) {
			return Unix(), nil
		},
		"expr": func(s Spec) (Transformer, error) {
			return Expr(s.Decode, s.Encode)
		},
	}
)

// Register makes a transformer factory available to Lookup under name,
// replacing any previous factory of that name.
func Register(name string, f Factory) {
	factoryMu.Lock()
	defer factoryMu.Unlock()
	factories[name] = f
}

// Lookup builds the transformer described by s.
func Lookup(s Spec) (Transformer, error) {
	factoryMu.RLock()
	f, ok := factories[s.Name]
	factoryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown transformer %q", s.Name)
	}
	t, err := f(s)
	if err != nil {
		return nil, fmt.Errorf("transformer %s: %w", s, err)
	}
	return t, nil
}

// Names lists the registered transformer names.
func Names() []string {
	factoryMu.RLock()
	defer factoryMu.RUnlock()
	return slices.Sorted(maps.Keys(factories))
}
