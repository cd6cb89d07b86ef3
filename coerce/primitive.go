package coerce

import (
	"fmt"

	"github.com/signadot/objmap/ir"
)

// Primitive names a scalar target of a coercion.
type Primitive int

const (
	// Any accepts any scalar node and yields its natural Go value.
	Any Primitive = iota
	Bool
	Int
	Float
	String
)

var primNames = map[Primitive]string{
	Any:    "any",
	Bool:   "bool",
	Int:    "int",
	Float:  "float",
	String: "string",
}

var namePrims = map[string]Primitive{
	"any":     Any,
	"bool":    Bool,
	"boolean": Bool,
	"int":     Int,
	"integer": Int,
	"float":   Float,
	"number":  Float,
	"string":  String,
}

func (p Primitive) String() string {
	if s, ok := primNames[p]; ok {
		return s
	}
	return fmt.Sprintf("Primitive(%d)", int(p))
}

// ParsePrimitive returns the primitive named s. JSON Schema names
// ("boolean", "integer", "number") are accepted as aliases.
func ParsePrimitive(s string) (Primitive, error) {
	p, ok := namePrims[s]
	if !ok {
		return 0, fmt.Errorf("unknown primitive %q", s)
	}
	return p, nil
}

func (p Primitive) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Primitive) UnmarshalText(d []byte) error {
	q, err := ParsePrimitive(string(d))
	if err != nil {
		return err
	}
	*p = q
	return nil
}

// NodeType is the node type a value of p encodes to.
func (p Primitive) NodeType() ir.Type {
	switch p {
	case Bool:
		return ir.BoolType
	case Int, Float:
		return ir.NumberType
	case String:
		return ir.StringType
	}
	return ir.NullType
}
