package codec

import (
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/signadot/objmap/ir"
)

// Patch applies an RFC 6902 JSON patch to y. The patch is itself a node,
// so it may come from any input format.
//
// The result is rebuilt from JSON text, so object keys may be reordered.
func Patch(y, patch *ir.Node) (*ir.Node, error) {
	doc, err := EncodeJSON(y)
	if err != nil {
		return nil, err
	}
	pd, err := EncodeJSON(patch)
	if err != nil {
		return nil, err
	}
	ops, err := jsonpatch.DecodePatch(pd)
	if err != nil {
		return nil, fmt.Errorf("json patch: %w", err)
	}
	out, err := ops.Apply(doc)
	if err != nil {
		return nil, fmt.Errorf("json patch: %w", err)
	}
	return DecodeJSON(out)
}

// MergePatch applies an RFC 7386 merge patch to y.
func MergePatch(y, patch *ir.Node) (*ir.Node, error) {
	doc, err := EncodeJSON(y)
	if err != nil {
		return nil, err
	}
	pd, err := EncodeJSON(patch)
	if err != nil {
		return nil, err
	}
	out, err := jsonpatch.MergePatch(doc, pd)
	if err != nil {
		return nil, fmt.Errorf("merge patch: %w", err)
	}
	return DecodeJSON(out)
}
