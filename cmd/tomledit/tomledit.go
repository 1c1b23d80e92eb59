package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
)

func tomleditMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer cfg.closeOut()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if n := count(cfg.T, cfg.J, cfg.Y); n > 1 {
		return fmt.Errorf("%w: -t, -j and -y are exclusive, got %d", cli.ErrUsage, n)
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	name := args[0]
	sub := cfg.Main.FindSub(cc, name)
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, name)
	}
	theLog.Debug("run", "command", name, "args", args[1:])
	err = sub.Run(cc, args[1:])
	if !errors.Is(err, cli.ErrUsage) {
		return err
	}
	sub.Usage(cc, err)
	cfg.closeOut()
	os.Exit(sub.Exit(cc, err))
	return nil
}

// count returns how many of vs are set.
func count(vs ...bool) (n int) {
	for _, v := range vs {
		if v {
			n++
		}
	}
	return n
}

// outOpt redirects command output to the file a; "-" keeps stdout.
func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" || a == "" {
		return nil, nil
	}
	f, err := os.Create(a)
	if err != nil {
		return nil, fmt.Errorf("output %s: %w", a, err)
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

func (cfg *MainConfig) closeOut() {
	if cfg.CloseOut == nil {
		return
	}
	if err := cfg.CloseOut(); err != nil {
		theLog.Warn("closing output", "file", cfg.Out, "error", err)
	}
	cfg.CloseOut = nil
}
