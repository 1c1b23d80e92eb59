package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/signadot/tomledit/encode"
	"github.com/signadot/tomledit/format"
	"github.com/signadot/tomledit/ir"
	"github.com/signadot/tomledit/libdiff"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	if cfg.Text && cfg.Merge {
		return fmt.Errorf("%w: -text and -merge are exclusive", cli.ErrUsage)
	}
	y1, err := getDoc(cc, args[0], cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	y2, err := getDoc(cc, args[1], cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	if cfg.Reverse {
		y1, y2 = y2, y1
	}
	differs, err := diffInputs(cfg, cc.Out, y1, y2)
	if err != nil {
		return err
	}
	if differs {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func diffInputs(cfg *DiffConfig, w io.Writer, a, b *ir.Node) (bool, error) {
	changes := libdiff.Diff(a, b)
	if len(changes) == 0 {
		return false, nil
	}
	switch {
	case cfg.Merge:
		d, err := libdiff.MergePatch(a, b)
		if err != nil {
			return true, err
		}
		_, err = fmt.Fprintf(w, "%s\n", d)
		return true, err
	case cfg.Text:
		opts := []encode.EncodeOption{
			encode.EncodeFormat(format.TOMLFormat),
			encode.OmitNulls(cfg.OmitNulls),
		}
		ta, err := encodeString(a, opts)
		if err != nil {
			return true, err
		}
		tb, err := encodeString(b, opts)
		if err != nil {
			return true, err
		}
		_, err = io.WriteString(w, libdiff.Text(ta, tb, cfg.Context, cfg.textColors(w)))
		return true, err
	}
	colors := cfg.textColors(w)
	for _, c := range changes {
		ln := c.String()
		if colors != nil {
			switch c.Op {
			case libdiff.Insert:
				ln = colors.Insert("%s", ln)
			case libdiff.Delete:
				ln = colors.Delete("%s", ln)
			}
		}
		if _, err := fmt.Fprintln(w, ln); err != nil {
			return true, err
		}
	}
	ins, dels, reps := libdiff.Summary(changes)
	theLog.Info("diff", "inserted", ins, "deleted", dels, "replaced", reps)
	return true, nil
}
