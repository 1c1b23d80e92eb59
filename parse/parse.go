package parse

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
	"github.com/signadot/tomledit/debug"
	"github.com/signadot/tomledit/format"
	"github.com/signadot/tomledit/ir"
)

// Parse reads a document. The result is always a table.
func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	pOpts := &parseOpts{}
	for _, opt := range opts {
		opt(pOpts)
	}
	var (
		node *ir.Node
		err  error
	)
	switch pOpts.format {
	case format.JSONFormat:
		node, err = parseJSON(d)
	case format.YAMLFormat:
		node, err = parseYAML(d)
	default:
		node, err = parseTOML(d)
	}
	if err != nil {
		if debug.Codec() {
			debug.Logf("parse %s: %v", pOpts.format, err)
		}
		return nil, err
	}
	if node.Type != ir.TableType {
		return nil, &GapError{What: fmt.Sprintf("top level is %s, not a table", node.Type)}
	}
	if debug.Codec() {
		debug.Logf("parse %s:\n%v", pOpts.format, node)
	}
	return node, nil
}

func ParseString(s string, opts ...ParseOption) (*ir.Node, error) {
	return Parse([]byte(s), opts...)
}

func parseTOML(d []byte) (*ir.Node, error) {
	m := map[string]any{}
	if _, err := toml.Decode(string(d), &m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return convert(ir.Path{}, m)
}

func parseJSON(d []byte) (*ir.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return convert(ir.Path{}, v)
}

func parseYAML(d []byte) (*ir.Node, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(d, &v, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if v == nil {
		return ir.NewTable(), nil
	}
	return convert(ir.Path{}, v)
}

// convert maps decoded TOML, JSON and YAML values onto the IR.
func convert(p ir.Path, v any) (*ir.Node, error) {
	switch x := v.(type) {
	case map[string]any:
		res := ir.NewTable()
		for _, k := range sortedKeys(x) {
			n, err := convert(p.Child(k), x[k])
			if err != nil {
				return nil, err
			}
			res.Put(k, n)
		}
		return res, nil
	case yaml.MapSlice:
		res := ir.NewTable()
		for _, item := range x {
			k, ok := item.Key.(string)
			if !ok {
				k = fmt.Sprint(item.Key)
			}
			n, err := convert(p.Child(k), item.Value)
			if err != nil {
				return nil, err
			}
			res.Put(k, n)
		}
		return res, nil
	case []map[string]any:
		return nil, &GapError{Path: p, What: "array of tables"}
	case []any:
		vs := make([]*ir.Node, len(x))
		for i, e := range x {
			ep := p.Child(fmt.Sprint(i))
			switch e.(type) {
			case map[string]any, yaml.MapSlice:
				return nil, &GapError{Path: ep, What: "table inside array"}
			}
			n, err := convert(ep, e)
			if err != nil {
				return nil, err
			}
			vs[i] = n
		}
		return ir.FromSlice(vs), nil
	case time.Time:
		return nil, &GapError{Path: p, What: "date-time value"}
	}
	n, err := ir.FromAny(v)
	if err != nil {
		return nil, &GapError{Path: p, What: err.Error()}
	}
	return n, nil
}

func sortedKeys(m map[string]any) []string {
	return slices.Sorted(maps.Keys(m))
}
