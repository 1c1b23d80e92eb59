package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/tomledit/document"
	"github.com/signadot/tomledit/edit"
	"github.com/signadot/tomledit/ir"
)

func set(cfg *SetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Set.Parse(cc, args)
	if err != nil {
		cfg.Set.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("%w: set requires a path, a value and optionally a file", cli.ErrUsage)
	}
	p, err := ir.ParsePath(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	doc, file, err := loadDoc(cfg.MainConfig, cc, args[2:])
	if err != nil {
		return err
	}
	m, err := cfg.mutator(p, args[1])
	if err != nil {
		return err
	}
	if err := doc.Commit(m); err != nil {
		return fmt.Errorf("error setting %s in %s: %w", p, file, err)
	}
	return writeDoc(cfg.MainConfig, cc.Out, doc)
}

func (cfg *SetConfig) mutator(p ir.Path, raw string) (document.Mutator, error) {
	switch {
	case cfg.Kind != "":
		k, err := edit.ParseKind(cfg.Kind)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		return edit.SetValue(p, k.Coerce(rawText(raw))), nil
	case cfg.String:
		return edit.SetValue(p, ir.FromString(raw)), nil
	}
	return setText(p, raw), nil
}

// setText replaces an existing scalar keeping its kind, and otherwise
// stores raw parsed as a value.
func setText(p ir.Path, raw string) document.Mutator {
	return func(tree *ir.Node) error {
		if cur, ok := tree.Get(p); ok {
			switch edit.KindOf(p.Last(), cur) {
			case edit.Array, edit.Table:
			default:
				return edit.SetRaw(p, rawText(raw))(tree)
			}
		}
		return edit.SetValue(p, parseValue(raw))(tree)
	}
}

func del(cfg *DelConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Del.Parse(cc, args)
	if err != nil {
		cfg.Del.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: del requires a path and optionally a file", cli.ErrUsage)
	}
	p, err := ir.ParsePath(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	doc, _, err := loadDoc(cfg.MainConfig, cc, args[1:])
	if err != nil {
		return err
	}
	if err := doc.Commit(edit.DeleteKey(p)); err != nil {
		return err
	}
	if !doc.Dirty() {
		theLog.Warn("not found", "path", p.String())
	}
	return writeDoc(cfg.MainConfig, cc.Out, doc)
}

// loadDoc reads the optional file argument, or stdin, into a document.
func loadDoc(cfg *MainConfig, cc *cli.Context, args []string) (*document.Document, string, error) {
	file := "-"
	if len(args) > 0 {
		file = args[0]
	}
	tree, err := getDoc(cc, file, cfg.parseOpts()...)
	if err != nil {
		return nil, file, fmt.Errorf("error decoding %s: %w", file, err)
	}
	doc := document.New(document.WithLogger(theLog), document.WithName(document.Stem(file)))
	if err := doc.LoadExternal(tree, ""); err != nil {
		return nil, file, err
	}
	return doc, file, nil
}
