package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/signadot/objmap/gomap"
	"github.com/signadot/objmap/ir"
	"github.com/signadot/objmap/libdiff"
	"github.com/signadot/objmap/schema"
)

func roundtrip(cfg *RoundtripConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Roundtrip.Parse(cc, args)
	if err != nil {
		return err
	}
	m, err := loadMapper(cfg.Schema, cfg.Type)
	if err != nil {
		return err
	}
	id := schema.TypeID(cfg.Type)
	paths := inputs(args)
	changed := 0
	for _, path := range paths {
		y, err := readDoc(cfg.MainConfig, cc, path)
		if err != nil {
			return err
		}
		changes, err := roundtripDoc(cfg, m, id, path, y, os.Stderr)
		if err != nil {
			return err
		}
		if len(changes) == 0 {
			continue
		}
		changed++
		fmt.Fprintf(cc.Out, "%s:\n", path)
		reportChanges(cfg.MainConfig, cc.Out, changes)
	}
	if changed > 0 {
		summarize(id, changed, len(paths))
		return cli.ExitCodeErr(1)
	}
	return nil
}

// roundtripDoc decodes y as id, encodes the result and returns how the
// encoding differs from y. Field errors from both directions go to errw.
// Keys the type drops are left out unless -all is given.
func roundtripDoc(cfg *RoundtripConfig, m *gomap.Mapper, id schema.TypeID, path string, y *ir.Node, errw io.Writer) ([]libdiff.Change, error) {
	dec, err := m.Decode(id, y)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s as %s: %w", path, id, err)
	}
	enc, err := m.Encode(id, dec.Value)
	if err != nil {
		return nil, fmt.Errorf("error encoding %s as %s: %w", path, id, err)
	}
	reportErrors(cfg.MainConfig, errw, path, []fieldErrors{
		{prefix: "decode", errs: dec.Errors},
		{prefix: "encode", errs: enc.Errors},
	})
	changes := libdiff.Diff(y, enc.Value)
	if !cfg.All {
		changes = libdiff.Filter(changes, func(c libdiff.Change) bool {
			return c.Op != libdiff.Delete
		})
	}
	return changes, nil
}

func summarize(id schema.TypeID, changed, total int) {
	theLog.Warn("round trip changed documents", "type", id, "changed", changed, "total", total)
}
