package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"

	"github.com/signadot/tomledit/document"
	"github.com/signadot/tomledit/encode"
	"github.com/signadot/tomledit/format"
	"github.com/signadot/tomledit/ir"
	"github.com/signadot/tomledit/parse"
)

func getDoc(cc *cli.Context, path string, opts ...parse.ParseOption) (*ir.Node, error) {
	var (
		r io.Reader
	)
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}

	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return parse.Parse(d, opts...)
}

func fileArgs(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}

// parseValue reads a command line value as a YAML flow value. Input that
// does not decode to a value is taken as a string.
func parseValue(raw string) *ir.Node {
	var v any
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil || v == nil {
		return ir.FromString(raw)
	}
	n, err := ir.FromAny(v)
	if err != nil {
		return ir.FromString(raw)
	}
	return n
}

// rawText is the text of raw with YAML quoting removed.
func rawText(raw string) string {
	if n := parseValue(raw); n.Type == ir.StringType {
		return n.String
	}
	return raw
}

func writeDoc(cfg *MainConfig, w io.Writer, doc *document.Document) error {
	s, err := doc.Serialize(cfg.encOpts(w)...)
	if err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	_, err = io.WriteString(w, s)
	return err
}

func writeValue(cfg *MainConfig, w io.Writer, v *ir.Node) error {
	opts := cfg.encOpts(w)
	if v.Type == ir.TableType || encode.FormatFromOpts(opts...) != format.TOMLFormat {
		return encode.Encode(v, w, opts...)
	}
	s, err := encode.Value(v, opts...)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, s)
	return err
}

func encodeString(y *ir.Node, opts []encode.EncodeOption) (string, error) {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(y, buf, opts...); err != nil {
		return "", err
	}
	return buf.String(), nil
}
