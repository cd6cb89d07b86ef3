package gomap

import (
	"fmt"
	"sync/atomic"

	"github.com/signadot/objmap/ir"
	"github.com/signadot/objmap/schema"
)

var defaultRegistry atomic.Pointer[schema.Registry]

// SetDefaultRegistry sets the registry used by mappers created without
// one and by the package level functions. A nil reg restores
// schema.DefaultRegistry.
func SetDefaultRegistry(reg *schema.Registry) {
	defaultRegistry.Store(reg)
}

// DefaultRegistry returns the registry used when none is given.
func DefaultRegistry() *schema.Registry {
	if reg := defaultRegistry.Load(); reg != nil {
		return reg
	}
	return schema.DefaultRegistry()
}

// Mapper decodes and encodes instances of the types in a registry. A
// Mapper is safe for concurrent use.
type Mapper struct {
	registry *schema.Registry
	cfg      config
}

// NewMapper returns a mapper over reg. If reg is nil the default registry
// in effect at each conversion is used.
func NewMapper(reg *schema.Registry, opts ...Option) *Mapper {
	return &Mapper{registry: reg, cfg: newConfig(opts...)}
}

// DefaultMapper is equivalent to NewMapper(nil).
func DefaultMapper() *Mapper {
	return NewMapper(nil)
}

func (m *Mapper) Registry() *schema.Registry {
	if m.registry != nil {
		return m.registry
	}
	return DefaultRegistry()
}

// Register publishes descs in the default registry.
func Register(descs ...*schema.TypeDescriptor) error {
	return DefaultRegistry().Register(descs...)
}

func Decode(id schema.TypeID, y *ir.Node, opts ...Option) (*Result[any], error) {
	return NewMapper(nil, opts...).Decode(id, y)
}

func Encode(id schema.TypeID, inst any, opts ...Option) (*Result[*ir.Node], error) {
	return NewMapper(nil, opts...).Encode(id, inst)
}

func DecodeAll(id schema.TypeID, y *ir.Node, opts ...Option) ([]*Result[any], error) {
	return NewMapper(nil, opts...).DecodeAll(id, y)
}

func EncodeAll(id schema.TypeID, insts []any, opts ...Option) ([]*Result[*ir.Node], error) {
	return NewMapper(nil, opts...).EncodeAll(id, insts)
}

// DecodeAs decodes y as id and returns the instance as a *T. It fails with
// ErrInstanceType if id does not describe T.
func DecodeAs[T any](m *Mapper, id schema.TypeID, y *ir.Node) (*Result[*T], error) {
	res, err := m.Decode(id, y)
	if err != nil {
		return nil, err
	}
	v, ok := res.Value.(*T)
	if !ok {
		return nil, &instanceError{id: id, got: res.Value, want: fmt.Sprintf("%T", (*T)(nil))}
	}
	return &Result[*T]{Value: v, Errors: res.Errors}, nil
}
