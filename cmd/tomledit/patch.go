package main

import (
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/signadot/tomledit/edit"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: patch requires a patch and optionally a file to which to apply it", cli.ErrUsage)
	}
	p := []byte(args[0])
	if !cfg.String {
		p, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
	}
	doc, file, err := loadDoc(cfg.MainConfig, cc, args[1:])
	if err != nil {
		return err
	}
	m := edit.ApplyJSONPatch(p)
	if cfg.Merge {
		m = edit.ApplyMergePatch(p)
	}
	if err := doc.Commit(m); err != nil {
		return fmt.Errorf("error patching %s: %w", file, err)
	}
	return writeDoc(cfg.MainConfig, cc.Out, doc)
}
