package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/signadot/tomledit/ir"
)

var ErrQuery = errors.New("query error")

type Entry struct {
	Path  ir.Path
	Value *ir.Node
}

func (e Entry) Key() string {
	return e.Path.Last()
}

// Entries lists the entries under tree in sorted key order, parents before
// their children. Arrays are leaves.
func Entries(tree *ir.Node) []Entry {
	var res []Entry
	walk(nil, tree, &res)
	return res
}

func walk(p ir.Path, t *ir.Node, res *[]Entry) {
	if t == nil || t.Type != ir.TableType {
		return
	}
	for _, k := range t.Keys() {
		v := t.Values[t.Index(k)]
		cp := p.Child(k)
		*res = append(*res, Entry{Path: cp, Value: v})
		walk(cp, v, res)
	}
}

// Search returns the sorted keys of table whose names contain needle,
// ignoring case. A blank needle matches every key.
func Search(table *ir.Node, needle string) []string {
	if table == nil || table.Type != ir.TableType {
		return nil
	}
	needle = strings.ToLower(strings.TrimSpace(needle))
	res := []string{}
	for _, k := range table.Keys() {
		if strings.Contains(strings.ToLower(k), needle) {
			res = append(res, k)
		}
	}
	return res
}

// Env is the set of variables a query sees for one entry.
type Env struct {
	Key   string `expr:"key"`
	Path  string `expr:"path"`
	Value any    `expr:"value"`
	Type  string `expr:"type"`
	Depth int    `expr:"depth"`
}

func envOf(e Entry) Env {
	return Env{
		Key:   e.Key(),
		Path:  e.Path.String(),
		Value: ir.ToAny(e.Value),
		Type:  e.Value.Type.Name(),
		Depth: len(e.Path),
	}
}

type Query struct {
	src  string
	root *ir.Node
	prg  *vm.Program
}

// Compile compiles src for evaluation against entries of root.
func Compile(src string, root *ir.Node) (*Query, error) {
	q := &Query{src: src, root: root}
	prg, err := expr.Compile(src, q.exprOpts()...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQuery, err)
	}
	q.prg = prg
	return q, nil
}

func (q *Query) String() string { return q.src }

func (q *Query) exprOpts() []expr.Option {
	return []expr.Option{
		expr.Env(Env{}),
		expr.AsBool(),
		expr.Function("get", func(params ...any) (any, error) {
			p, err := ir.ParsePath(params[0].(string))
			if err != nil {
				return nil, err
			}
			n, ok := q.root.Get(p)
			if !ok {
				return nil, nil
			}
			return ir.ToAny(n), nil
		},
			new(func(string) any)),
	}
}

// Match reports whether e satisfies the query.
func (q *Query) Match(e Entry) (bool, error) {
	res, err := expr.Run(q.prg, envOf(e))
	if err != nil {
		return false, fmt.Errorf("%w: %s: %w", ErrQuery, e.Path, err)
	}
	return res.(bool), nil
}

// Filter returns the entries of tree matching src.
func Filter(tree *ir.Node, src string) ([]Entry, error) {
	q, err := Compile(src, tree)
	if err != nil {
		return nil, err
	}
	res := []Entry{}
	for _, e := range Entries(tree) {
		ok, err := q.Match(e)
		if err != nil {
			return nil, err
		}
		if ok {
			res = append(res, e)
		}
	}
	return res, nil
}
