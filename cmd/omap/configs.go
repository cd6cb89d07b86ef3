package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/signadot/objmap/codec"
	"github.com/signadot/objmap/gomap"
	"github.com/signadot/objmap/schema"
)

type MainConfig struct {
	Color   bool `cli:"name=color desc='color reports'"`
	NoColor bool `cli:"name=nocolor desc='never color reports'"`

	InFormat, OutFormat *codec.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**codec.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := codec.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

// inFormat is the format to read path in: -I, else the extension of path,
// else json.
func (cfg *MainConfig) inFormat(path string) codec.Format {
	if cfg.InFormat != nil {
		return *cfg.InFormat
	}
	if f, ok := codec.FormatOf(path); ok {
		return f
	}
	return codec.JSONFormat
}

func (cfg *MainConfig) outFormat() codec.Format {
	if cfg.OutFormat != nil {
		return *cfg.OutFormat
	}
	return codec.JSONFormat
}

// colorize reports whether reports written to w are colored: -color and
// -nocolor decide, otherwise w must be a terminal.
func (cfg *MainConfig) colorize(w io.Writer) bool {
	switch {
	case cfg.NoColor:
		return false
	case cfg.Color:
		return true
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (cfg *MainConfig) painter(w io.Writer, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if cfg.colorize(w) {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

func loadRegistry(path string) (*schema.Registry, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: -s is required", cli.ErrUsage)
	}
	reg := schema.NewRegistry()
	if err := schema.LoadFile(reg, path); err != nil {
		return nil, err
	}
	return reg, nil
}

// loadMapper loads the type document at path and checks that it declares
// typ.
func loadMapper(path, typ string, opts ...gomap.Option) (*gomap.Mapper, error) {
	if typ == "" {
		return nil, fmt.Errorf("%w: -t is required", cli.ErrUsage)
	}
	reg, err := loadRegistry(path)
	if err != nil {
		return nil, err
	}
	if _, err := reg.Lookup(schema.TypeID(typ)); err != nil {
		return nil, err
	}
	return gomap.NewMapper(reg, opts...), nil
}

type DecodeConfig struct {
	*MainConfig

	Schema  string `cli:"name=s aliases=schema desc='type document (yaml)'"`
	Type    string `cli:"name=t aliases=type desc='type id'"`
	Patch   string `cli:"name=patch desc='json patch applied to inputs before decoding'"`
	Merge   bool   `cli:"name=merge desc='apply -patch as a merge patch'"`
	Strict  bool   `cli:"name=strict desc='exit non-zero on field errors'"`
	Workers int    `cli:"name=workers desc='decode array inputs with this many workers'"`

	Decode *cli.Command
}

type RoundtripConfig struct {
	*MainConfig

	Schema string `cli:"name=s aliases=schema desc='type document (yaml)'"`
	Type   string `cli:"name=t aliases=type desc='type id'"`
	All    bool   `cli:"name=all desc='also show keys dropped by the type'"`

	Roundtrip *cli.Command
}

type DescribeConfig struct {
	*MainConfig

	Schema string `cli:"name=s aliases=schema desc='type document (yaml)'"`
	Type   string `cli:"name=t aliases=type desc='only this type'"`

	Describe *cli.Command
}

type ListConfig struct {
	*MainConfig

	Schema string `cli:"name=s aliases=schema desc='type document (yaml)'"`

	List *cli.Command
}
