package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/scott-cotton/cli"

	"github.com/signadot/objmap/codec"
	"github.com/signadot/objmap/ir/kpath"
	"github.com/signadot/objmap/schema"
)

func describe(cfg *DescribeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Describe.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: describe takes no arguments, got %v", cli.ErrUsage, args)
	}
	reg, err := loadRegistry(cfg.Schema)
	if err != nil {
		return err
	}
	snap := reg.Snapshot()
	ids := snap.Types()
	if cfg.Type != "" {
		ids = []schema.TypeID{schema.TypeID(cfg.Type)}
	}
	for i, id := range ids {
		s, err := schema.JSONSchema(snap, id)
		if err != nil {
			return err
		}
		d, err := json.Marshal(s)
		if err != nil {
			return fmt.Errorf("error encoding schema of %s: %w", id, err)
		}
		y, err := codec.DecodeJSON(d)
		if err != nil {
			return err
		}
		if err := writeDoc(cfg.MainConfig, cc.Out, y, i); err != nil {
			return err
		}
	}
	return nil
}

func listTypes(cfg *ListConfig, cc *cli.Context, args []string) error {
	args, err := cfg.List.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: types takes no arguments, got %v", cli.ErrUsage, args)
	}
	reg, err := loadRegistry(cfg.Schema)
	if err != nil {
		return err
	}
	snap := reg.Snapshot()
	w := tabwriter.NewWriter(cc.Out, 0, 4, 2, ' ', 0)
	for _, id := range snap.Types() {
		d, err := snap.Lookup(id)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, d.String())
		for _, f := range d.Fields {
			fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", f.Name, kpath.String(f.KeyPath), f.Expected, fieldFlags(f))
		}
	}
	return w.Flush()
}

func fieldFlags(f *schema.Field) string {
	var flags []string
	if f.Optional {
		flags = append(flags, "optional")
	}
	if f.HasDefault {
		flags = append(flags, fmt.Sprintf("default=%v", f.Default))
	}
	if f.Transformer != nil {
		flags = append(flags, fmt.Sprintf("transform=%T", f.Transformer))
	}
	return strings.Join(flags, " ")
}
