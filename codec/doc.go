// Package codec converts between serialized documents and [ir.Node] trees.
//
// JSON, JSONC and YAML input keep the key order of objects. CBOR maps are
// unordered on decode and written with deterministic (sorted) keys.
//
// The mapping packages never import codec; it is the byte-level
// collaborator used by tools such as cmd/omap.
package codec
