package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/signadot/tomledit/ir"
	"github.com/signadot/tomledit/libdiff"
	"github.com/signadot/tomledit/query"
)

func queryCmd(cfg *QueryConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Query.Parse(cc, args)
	if err != nil {
		cfg.Query.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: query requires an expression", cli.ErrUsage)
	}
	for _, file := range fileArgs(args[1:]) {
		y, err := getDoc(cc, file, cfg.parseOpts()...)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", file, err)
		}
		if cfg.Keys {
			err = searchKeys(cc.Out, y, args[0])
		} else {
			err = filterEntries(cc.Out, y, args[0])
		}
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
	}
	return nil
}

func filterEntries(w io.Writer, y *ir.Node, src string) error {
	es, err := query.Filter(y, src)
	if err != nil {
		return err
	}
	for _, e := range es {
		if _, err := fmt.Fprintf(w, "%s = %s\n", e.Path, libdiff.Value(e.Value)); err != nil {
			return err
		}
	}
	return nil
}

// searchKeys applies the key filter to every table, printing matching
// paths.
func searchKeys(w io.Writer, y *ir.Node, needle string) error {
	tables := []ir.Path{{}}
	for _, e := range query.Entries(y) {
		if e.Value.Type == ir.TableType {
			tables = append(tables, e.Path)
		}
	}
	for _, p := range tables {
		t, _ := y.Get(p)
		for _, k := range query.Search(t, needle) {
			if _, err := fmt.Fprintln(w, p.Child(k)); err != nil {
				return err
			}
		}
	}
	return nil
}
