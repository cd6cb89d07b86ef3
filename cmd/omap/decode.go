package main

import (
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/signadot/objmap/codec"
	"github.com/signadot/objmap/gomap"
	"github.com/signadot/objmap/ir"
	"github.com/signadot/objmap/schema"
)

func decode(cfg *DecodeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Decode.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Merge && cfg.Patch == "" {
		return fmt.Errorf("%w: -merge requires -patch", cli.ErrUsage)
	}
	m, err := loadMapper(cfg.Schema, cfg.Type, gomap.Workers(cfg.Workers))
	if err != nil {
		return err
	}
	var patch *ir.Node
	if cfg.Patch != "" {
		patch, err = readDoc(cfg.MainConfig, cc, cfg.Patch)
		if err != nil {
			return err
		}
	}
	id := schema.TypeID(cfg.Type)
	nErrs := 0
	for i, path := range inputs(args) {
		y, err := readDoc(cfg.MainConfig, cc, path)
		if err != nil {
			return err
		}
		if patch != nil {
			if cfg.Merge {
				y, err = codec.MergePatch(y, patch)
			} else {
				y, err = codec.Patch(y, patch)
			}
			if err != nil {
				return fmt.Errorf("error patching %s: %w", path, err)
			}
		}
		out, errs, err := decodeDoc(m, id, y)
		if err != nil {
			return fmt.Errorf("error decoding %s as %s: %w", path, id, err)
		}
		if err := writeDoc(cfg.MainConfig, cc.Out, out, i); err != nil {
			return err
		}
		nErrs += reportErrors(cfg.MainConfig, os.Stderr, path, errs)
	}
	if nErrs > 0 {
		theLog.Warn("decoded with field errors", "type", id, "count", nErrs)
		if cfg.Strict {
			return cli.ExitCodeErr(1)
		}
	}
	return nil
}

// decodeDoc decodes y as id and renders the resulting records. An array
// is decoded element-wise unless the type unwraps a root key path.
func decodeDoc(m *gomap.Mapper, id schema.TypeID, y *ir.Node) (*ir.Node, []fieldErrors, error) {
	d, err := m.Registry().Lookup(id)
	if err != nil {
		return nil, nil, err
	}
	if y.Type != ir.ArrayType || len(d.Root) > 0 {
		res, err := m.Decode(id, y)
		if err != nil {
			return nil, nil, err
		}
		return recordNode(res.Value), []fieldErrors{{errs: res.Errors}}, nil
	}
	all, err := m.DecodeAll(id, y)
	if err != nil {
		return nil, nil, err
	}
	vals := make([]*ir.Node, len(all))
	groups := make([]fieldErrors, len(all))
	for i, res := range all {
		vals[i] = recordNode(res.Value)
		groups[i] = fieldErrors{prefix: fmt.Sprintf("[%d]", i), errs: res.Errors}
	}
	return ir.FromSlice(vals), groups, nil
}

func recordNode(v any) *ir.Node {
	r, ok := v.(*schema.Record)
	if !ok {
		return ir.Null()
	}
	return r.Node()
}
