package gomap

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/signadot/objmap/ir"
	"github.com/signadot/objmap/schema"
)

// DecodeAll decodes each element of the array y as id. Results are in
// element order and each carries its own field errors. All elements are
// decoded against the same registry snapshot.
func (m *Mapper) DecodeAll(id schema.TypeID, y *ir.Node) ([]*Result[any], error) {
	dc := &decoder{snap: m.Registry().Snapshot(), cfg: &m.cfg}
	d, err := dc.snap.Lookup(id)
	if err != nil {
		return nil, err
	}
	if y == nil || y.Type != ir.ArrayType {
		got := ir.NullType
		if y != nil {
			got = y.Type
		}
		return nil, fmt.Errorf("%w: got %s", ErrNotSequence, got)
	}
	res := make([]*Result[any], len(y.Values))
	err = m.each(len(res), func(i int) error {
		r, err := dc.decode(d, y.Values[i])
		if err != nil {
			return fmt.Errorf("[%d]: %w", i, err)
		}
		res[i] = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// EncodeAll encodes each of insts as id, in order.
func (m *Mapper) EncodeAll(id schema.TypeID, insts []any) ([]*Result[*ir.Node], error) {
	ec := &encoder{snap: m.Registry().Snapshot(), cfg: &m.cfg}
	d, err := ec.snap.Lookup(id)
	if err != nil {
		return nil, err
	}
	res := make([]*Result[*ir.Node], len(insts))
	err = m.each(len(res), func(i int) error {
		r, err := ec.encode(d, insts[i])
		if err != nil {
			return fmt.Errorf("[%d]: %w", i, err)
		}
		res[i] = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Values collects the values of results into an array node.
func Values(results []*Result[*ir.Node]) *ir.Node {
	ys := make([]*ir.Node, len(results))
	for i, r := range results {
		ys[i] = r.Value
	}
	return ir.FromSlice(ys)
}

func (m *Mapper) each(n int, fn func(i int) error) error {
	if m.cfg.workers <= 1 || n < 2 {
		for i := 0; i < n; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}
	var g errgroup.Group
	g.SetLimit(m.cfg.workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			return fn(i)
		})
	}
	return g.Wait()
}
