package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/tomledit/encode"
	"github.com/signadot/tomledit/format"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	return viewFiles(cfg.MainConfig, cc, fileArgs(args), cfg.encOpts(cc.Out))
}

func export(cfg *ExportConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Export.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: export requires a format: json/j, yaml/y or toml/t", cli.ErrUsage)
	}
	f, err := format.ParseFormat(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	opts := append(cfg.encOpts(cc.Out), encode.EncodeFormat(f))
	return viewFiles(cfg.MainConfig, cc, fileArgs(args[1:]), opts)
}

func viewFiles(cfg *MainConfig, cc *cli.Context, files []string, opts []encode.EncodeOption) error {
	for i, file := range files {
		y, err := getDoc(cc, file, cfg.parseOpts()...)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", file, err)
		}
		if i > 0 {
			if _, err := cc.Out.Write([]byte("\n")); err != nil {
				return err
			}
		}
		if err := encode.Encode(y, cc.Out, opts...); err != nil {
			return fmt.Errorf("error encoding %s: %w", file, err)
		}
	}
	return nil
}
