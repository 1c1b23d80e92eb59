package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/scott-cotton/cli"

	"github.com/signadot/tomledit/document"
	"github.com/signadot/tomledit/host"
	"github.com/signadot/tomledit/host/fshost"
	"github.com/signadot/tomledit/session"
)

func editMain(cfg *EditConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Edit.Parse(cc, args)
	if err != nil {
		cfg.Edit.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: edit requires a file", cli.ErrUsage)
	}
	path, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}
	dir := cfg.Dir
	if dir == "" {
		dir = filepath.Dir(path)
	}
	out := &syncWriter{w: cc.Out}
	h := fshost.New(fshost.WithDir(dir), fshost.WithLogger(theLog))
	defer h.Close()
	doc := document.New(document.WithLogger(theLog), document.WithName(document.Stem(path)))
	s := session.New(doc, h,
		session.WithLogger(theLog),
		session.WithEventHook(func(_ host.Event, st document.State) {
			fmt.Fprintln(out, st.Status)
		}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	if _, err := os.Stat(path); err == nil {
		if err := s.Open(ctx, path); err != nil {
			return err
		}
	}
	r := &repl{ctx: ctx, s: s, cfg: cfg.MainConfig, out: out}
	return r.run(cc.In)
}
