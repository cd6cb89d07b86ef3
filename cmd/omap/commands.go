package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "I",
			Aliases:     []string{"ifmt"},
			Description: "input format: json/j, jsonc, yaml/y, cbor/c (default from file extension, else json)",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.InFormat), "(format)"),
		}, &cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: json/j, yaml/y, cbor/c (default json)",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "omap").
		WithSynopsis("omap [opts] command [opts]").
		WithDescription("omap maps documents onto declared types and back.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return omMain(cfg, cc, args)
		}).
		WithSubs(
			DecodeCommand(cfg),
			RoundtripCommand(cfg),
			DescribeCommand(cfg),
			TypesCommand(cfg))
}

func DecodeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DecodeConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Decode, "decode").
		WithAliases("d", "de").
		WithSynopsis("decode -s types.yaml -t Type [-patch p.json [-merge]] [-strict] [files]").
		WithDescription("decode documents as a declared type and print the field values and errors").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return decode(cfg, cc, args)
		})
}

func RoundtripCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &RoundtripConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Roundtrip, "roundtrip").
		WithAliases("rt").
		WithSynopsis("roundtrip -s types.yaml -t Type [-all] [files]").
		WithDescription("decode then encode documents and show what changed").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return roundtrip(cfg, cc, args)
		})
}

func DescribeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DescribeConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Describe, "describe").
		WithAliases("desc").
		WithSynopsis("describe -s types.yaml [-t Type]").
		WithDescription("print the JSON Schema of declared types").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return describe(cfg, cc, args)
		})
}

func TypesCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ListConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.List, "types").
		WithAliases("t", "ls").
		WithSynopsis("types -s types.yaml").
		WithDescription("list declared types and their fields").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return listTypes(cfg, cc, args)
		})
}
