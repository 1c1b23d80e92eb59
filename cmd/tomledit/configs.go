package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/signadot/tomledit/encode"
	"github.com/signadot/tomledit/format"
	"github.com/signadot/tomledit/libdiff"
	"github.com/signadot/tomledit/parse"
)

type MainConfig struct {
	Color     bool `cli:"name=color desc='encode with color'"`
	OmitNulls bool `cli:"name=omit-nulls desc='drop null values instead of failing'"`

	T bool `cli:"name=t aliases=toml desc='do i/o in toml'"`
	J bool `cli:"name=j aliases=json desc='do i/o in json'"`
	Y bool `cli:"name=y aliases=yaml desc='do i/o in yaml'"`

	InFormat, OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) mainFormat() format.Format {
	switch {
	case cfg.Y:
		return format.YAMLFormat
	case cfg.J:
		return format.JSONFormat
	}
	return format.TOMLFormat
}

func (cfg *MainConfig) parseOpts() []parse.ParseOption {
	f := cfg.mainFormat()
	if cfg.InFormat != nil {
		f = *cfg.InFormat
	}
	return []parse.ParseOption{parse.ParseFormat(f)}
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	f := cfg.mainFormat()
	if cfg.OutFormat != nil {
		f = *cfg.OutFormat
	}
	res := []encode.EncodeOption{
		encode.EncodeFormat(f),
		encode.OmitNulls(cfg.OmitNulls),
	}
	if cfg.useColor(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

// useColor honors an explicit -color, and otherwise colors terminals.
func (cfg *MainConfig) useColor(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		if opt.Value != nil {
			return false
		}
		break
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

func (cfg *MainConfig) textColors(w io.Writer) *libdiff.TextColors {
	if !cfg.useColor(w) {
		return nil
	}
	return &libdiff.TextColors{
		Insert: color.New(color.FgGreen).SprintfFunc(),
		Delete: color.New(color.FgRed).SprintfFunc(),
	}
}

type ViewConfig struct {
	*MainConfig
	View *cli.Command
}

type ExportConfig struct {
	*MainConfig
	Export *cli.Command
}

type GetConfig struct {
	*MainConfig
	Get *cli.Command
}

type SetConfig struct {
	*MainConfig
	Kind   string `cli:"name=k aliases=kind desc='value kind: string, number, boolean, color'"`
	String bool   `cli:"name=s desc='store the value as a string'"`

	Set *cli.Command
}

type DelConfig struct {
	*MainConfig
	Del *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Reverse bool `cli:"name=r desc='reverse the diff'"`
	Text    bool `cli:"name=text desc='line diff of the encoded documents'"`
	Context int  `cli:"name=context desc='lines of context for -text, negative for all'"`
	Merge   bool `cli:"name=merge desc='output an RFC 7386 merge patch'"`

	Diff *cli.Command
}

type PatchConfig struct {
	*MainConfig
	Merge  bool `cli:"name=merge desc='patch is an RFC 7386 merge patch'"`
	String bool `cli:"name=s desc='patch arg as string'"`

	Patch *cli.Command
}

type QueryConfig struct {
	*MainConfig
	Keys bool `cli:"name=k aliases=keys desc='search keys by substring instead of an expression'"`

	Query *cli.Command
}

type EditConfig struct {
	*MainConfig
	Dir string `cli:"name=dir desc='directory for saves without a known path'"`

	Edit *cli.Command
}

type ServeConfig struct {
	*MainConfig
	Addr string `cli:"name=addr desc='TCP listen address; stdio if empty'"`
	Dir  string `cli:"name=dir desc='directory for saves without a known path'"`
	Gops bool   `cli:"name=gops desc='start a gops agent'"`

	Serve *cli.Command
}
