package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/tidwall/jsonc"

	"github.com/signadot/objmap/ir"
)

// DecodeJSON parses a JSON document keeping the order of object keys.
// When a key repeats within an object the last value wins.
func DecodeJSON(data []byte) (*ir.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	y, err := jsonNext(dec)
	if err != nil {
		return nil, fmt.Errorf("json: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = errors.New("unexpected data after top-level value")
		}
		return nil, fmt.Errorf("json: offset %d: %w", dec.InputOffset(), err)
	}
	return y, nil
}

// DecodeJSONC parses JSON with comments and trailing commas.
func DecodeJSONC(data []byte) (*ir.Node, error) {
	return DecodeJSON(jsonc.ToJSON(data))
}

func jsonNext(dec *json.Decoder) (*ir.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	switch x := tok.(type) {
	case json.Delim:
		switch x {
		case '{':
			var kvs []ir.KeyVal
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := kt.(string)
				if !ok {
					return nil, fmt.Errorf("offset %d: expected object key, got %v", dec.InputOffset(), kt)
				}
				val, err := jsonNext(dec)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", key, err)
				}
				kvs = append(kvs, ir.KeyVal{Key: key, Val: val})
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return ir.FromKeyVals(kvs), nil
		case '[':
			var vals []*ir.Node
			for dec.More() {
				val, err := jsonNext(dec)
				if err != nil {
					return nil, fmt.Errorf("[%d]: %w", len(vals), err)
				}
				vals = append(vals, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return ir.FromSlice(vals), nil
		}
		return nil, fmt.Errorf("offset %d: unexpected %v", dec.InputOffset(), x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return nil, fmt.Errorf("number %s: %w", x, err)
		}
		return ir.FromFloat(f), nil
	case string:
		return ir.FromString(x), nil
	case bool:
		return ir.FromBool(x), nil
	case nil:
		return ir.Null(), nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

// EncodeJSON renders y as compact JSON in node key order. NaN and
// infinite numbers have no JSON form and are an error.
func EncodeJSON(y *ir.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, y); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeJSONIndent is like EncodeJSON with each element on its own line
// and a trailing newline.
func EncodeJSONIndent(y *ir.Node, indent string) ([]byte, error) {
	d, err := EncodeJSON(y)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, d, "", indent); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, y *ir.Node) error {
	if y == nil {
		buf.WriteString("null")
		return nil
	}
	switch y.Type {
	case ir.ObjectType:
		buf.WriteByte('{')
		for i, k := range y.Fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeJSONString(buf, k)
			buf.WriteByte(':')
			if err := writeJSON(buf, y.Values[i]); err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
		}
		buf.WriteByte('}')
	case ir.ArrayType:
		buf.WriteByte('[')
		for i, v := range y.Values {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, v); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
		buf.WriteByte(']')
	case ir.StringType:
		writeJSONString(buf, y.String)
	case ir.NumberType:
		if math.IsNaN(y.Number) || math.IsInf(y.Number, 0) {
			return fmt.Errorf("json: unsupported number %s", ir.FormatNumber(y.Number))
		}
		buf.WriteString(ir.FormatNumber(y.Number))
	case ir.BoolType:
		if y.Bool {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	default:
		buf.WriteString("null")
	}
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.Encode(s)
	buf.Truncate(buf.Len() - 1)
}
