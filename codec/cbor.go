package codec

import (
	"fmt"
	"reflect"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/signadot/objmap/ir"
)

// Core Deterministic Encoding (RFC 8949 §4.2): sorted map keys, smallest
// integer and float encodings, no indefinite-length items.
var (
	cborEnc cbor.EncMode
	cborDec cbor.DecMode
)

func init() {
	var err error
	cborEnc, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}
	cborDec, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// DecodeCBOR parses a CBOR data item. Maps must have text keys; their
// entries come out in sorted key order. Byte strings become strings and
// time tags RFC 3339 strings.
func DecodeCBOR(data []byte) (*ir.Node, error) {
	var v any
	if err := cborDec.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("cbor: %w", err)
	}
	y, err := ir.FromAny(fromCBOR(v))
	if err != nil {
		return nil, fmt.Errorf("cbor: %w", err)
	}
	return y, nil
}

func fromCBOR(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, elt := range x {
			x[k] = fromCBOR(elt)
		}
	case []any:
		for i, elt := range x {
			x[i] = fromCBOR(elt)
		}
	case []byte:
		return string(x)
	case time.Time:
		return x.Format(time.RFC3339Nano)
	case cbor.Tag:
		return fromCBOR(x.Content)
	}
	return v
}

// EncodeCBOR renders y with deterministic encoding.
func EncodeCBOR(y *ir.Node) ([]byte, error) {
	v := plain(y, func(keys []string, vals []any) any {
		res := make(map[string]any, len(keys))
		for i, k := range keys {
			res[k] = vals[i]
		}
		return res
	})
	d, err := cborEnc.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("cbor: %w", err)
	}
	return d, nil
}
