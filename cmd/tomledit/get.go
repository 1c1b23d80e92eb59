package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/tomledit/ir"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a dotted path", cli.ErrUsage)
	}
	p, err := ir.ParsePath(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	for _, file := range fileArgs(args[1:]) {
		y, err := getDoc(cc, file, cfg.parseOpts()...)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", file, err)
		}
		v, ok := y.Get(p)
		if !ok {
			theLog.Warn("not found", "file", file, "path", p.String())
			return cli.ExitCodeErr(1)
		}
		if err := writeValue(cfg.MainConfig, cc.Out, v); err != nil {
			return fmt.Errorf("error encoding %s of %s: %w", p, file, err)
		}
	}
	return nil
}
