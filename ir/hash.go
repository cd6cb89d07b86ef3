package ir

import (
	"encoding/binary"
	"hash/maphash"
	"math"
)

var seed = maphash.MakeSeed()

// Hash returns a 64-bit hash of the node consistent with Equal: object
// entries are combined independently of their order.
// It panics if n is nil.
func (n *Node) Hash() uint64 {
	if n == nil {
		panic("ir: Hash called on nil node")
	}

	var h maphash.Hash
	h.SetSeed(seed)
	h.WriteByte(byte(n.Type))

	var b [8]byte
	switch n.Type {
	case NullType:
	case BoolType:
		if n.Bool {
			h.WriteByte(1)
		} else {
			h.WriteByte(0)
		}
	case NumberType:
		f := n.Number
		if f == 0 {
			// +0 and -0 are Equal
			f = 0
		}
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(f))
		h.Write(b[:])
	case StringType:
		h.WriteString(n.String)
	case ArrayType:
		for _, v := range n.Values {
			binary.LittleEndian.PutUint64(b[:], v.Hash())
			h.Write(b[:])
		}
	case ObjectType:
		var acc uint64
		for i, field := range n.Fields {
			var eh maphash.Hash
			eh.SetSeed(seed)
			eh.WriteString(field)
			binary.LittleEndian.PutUint64(b[:], n.Values[i].Hash())
			eh.Write(b[:])
			acc += eh.Sum64()
		}
		binary.LittleEndian.PutUint64(b[:], acc)
		h.Write(b[:])
	}
	return h.Sum64()
}
