package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/signadot/objmap/codec"
	"github.com/signadot/objmap/ir"
)

func omMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Color && cfg.NoColor {
		return fmt.Errorf("%w: must specify at most one of -color -nocolor", cli.ErrUsage)
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

// inputs returns the files named by args, or stdin when there are none.
func inputs(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}

func readDoc(cfg *MainConfig, cc *cli.Context, path string) (*ir.Node, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("could not open %q: %w", path, err)
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}
	y, err := codec.Read(r, cfg.inFormat(path))
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", path, err)
	}
	return y, nil
}

// writeDoc writes y in the output format, separating documents after the
// first as the format allows.
func writeDoc(cfg *MainConfig, w io.Writer, y *ir.Node, i int) error {
	f := cfg.outFormat()
	d, err := codec.Encode(f, y)
	if err != nil {
		return fmt.Errorf("error encoding result %d: %w", i, err)
	}
	if i > 0 && f == codec.YAMLFormat {
		if _, err := w.Write([]byte("---\n")); err != nil {
			return err
		}
	}
	_, err = w.Write(d)
	return err
}
