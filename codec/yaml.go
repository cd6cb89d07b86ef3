package codec

import (
	"fmt"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/signadot/objmap/ir"
)

// DecodeYAML parses a single YAML document keeping the order of mapping
// keys. Scalar keys are rendered as strings; an empty document is null.
func DecodeYAML(data []byte) (*ir.Node, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(data, &v, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	y, err := fromYAML(v)
	if err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	return y, nil
}

func fromYAML(v any) (*ir.Node, error) {
	switch x := v.(type) {
	case yaml.MapSlice:
		kvs := make([]ir.KeyVal, len(x))
		for i, item := range x {
			key, err := yamlKey(item.Key)
			if err != nil {
				return nil, err
			}
			val, err := fromYAML(item.Value)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			kvs[i] = ir.KeyVal{Key: key, Val: val}
		}
		return ir.FromKeyVals(kvs), nil
	case []any:
		vals := make([]*ir.Node, len(x))
		for i, elt := range x {
			val, err := fromYAML(elt)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			vals[i] = val
		}
		return ir.FromSlice(vals), nil
	case time.Time:
		return ir.FromString(x.Format(time.RFC3339Nano)), nil
	}
	return ir.FromAny(v)
}

func yamlKey(k any) (string, error) {
	switch x := k.(type) {
	case string:
		return x, nil
	case nil:
		return "null", nil
	case bool, int, int64, uint64, float64:
		return fmt.Sprint(x), nil
	}
	return "", fmt.Errorf("unsupported mapping key %v (%T)", k, k)
}

// EncodeYAML renders y as a YAML document in node key order.
func EncodeYAML(y *ir.Node) ([]byte, error) {
	v := plain(y, func(keys []string, vals []any) any {
		res := make(yaml.MapSlice, len(keys))
		for i, k := range keys {
			res[i] = yaml.MapItem{Key: k, Value: vals[i]}
		}
		return res
	})
	d, err := yaml.MarshalWithOptions(v, yaml.Indent(2), yaml.IndentSequence(true))
	if err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	return d, nil
}
