// Package ir provides the generic value representation exchanged with
// decoders and encoders.
//
// # Overview
//
// A decoded payload (JSON, YAML, CBOR, property lists...) is represented as
// a tree of *Node. The set of node types is closed:
//
//   - NullType: null value
//   - BoolType: boolean
//   - NumberType: number, held as float64
//   - StringType: string
//   - ArrayType: ordered list of nodes
//   - ObjectType: ordered key/value pairs with unique keys
//
// # Creating Nodes
//
//	node := ir.FromString("hello")
//	num := ir.FromInt(42)
//	obj := ir.FromKeyVals([]ir.KeyVal{
//	    {Key: "name", Val: ir.FromString("Ana")},
//	    {Key: "age", Val: ir.FromInt(41)},
//	})
//	arr := ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromInt(2)})
//
// Decoder output typed as any converts with FromAny, and back with ToAny.
//
// # Numbers
//
// Numbers are stored as a single float64, matching what common decoders
// produce. Integers beyond the 53-bit exact range lose precision; this is
// not corrected. FormatNumber gives the canonical decimal rendering.
//
// # Paths
//
// Lookup and LookupPrefix descend a key path through nested objects; Wrap
// builds the envelope for a key path. See package kpath for the textual
// form of key paths.
//
// # Equality
//
// Equal is structural and ignores object key order. Compare orders nodes
// and is key-order sensitive. Hash is consistent with Equal.
//
// # Thread Safety
//
// Nodes are not modified after construction, so trees may be shared for
// reading across goroutines. Callers that assign to Node fields directly
// give up that guarantee.
package ir
