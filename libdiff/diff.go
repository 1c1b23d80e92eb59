package libdiff

import (
	"fmt"

	"github.com/signadot/tomledit/encode"
	"github.com/signadot/tomledit/ir"
)

type Op int

const (
	Insert Op = iota
	Delete
	Replace
)

func (o Op) String() string {
	switch o {
	case Insert:
		return "+"
	case Delete:
		return "-"
	case Replace:
		return "~"
	default:
		return "?"
	}
}

// Change is one difference at Path. For elements of arrays, the last path
// segment indexes the old array for Delete and the new array otherwise.
type Change struct {
	Op   Op
	Path ir.Path
	From *ir.Node
	To   *ir.Node
}

func (c Change) String() string {
	switch c.Op {
	case Insert:
		return fmt.Sprintf("+ %s = %s", c.Path, Value(c.To))
	case Delete:
		return fmt.Sprintf("- %s = %s", c.Path, Value(c.From))
	default:
		return fmt.Sprintf("~ %s: %s -> %s", c.Path, Value(c.From), Value(c.To))
	}
}

// Value renders n the way it would appear on the right of a TOML key.
func Value(n *ir.Node) string {
	switch n.Type {
	case ir.TableType:
		return fmt.Sprintf("{%d keys}", len(n.Fields))
	case ir.NullType:
		return "null"
	case ir.StringType:
		return encode.Quote(n.String)
	case ir.FloatType:
		return encode.Float(n.Float64)
	}
	d, err := n.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("<%s>", n.Type)
	}
	return string(d)
}

type DiffFunc func(p ir.Path, from, to *ir.Node) []Change

// Diff returns the changes turning from into to, ordered by path.
func Diff(from, to *ir.Node) []Change {
	return diff(ir.Path{}, from, to)
}

func diff(p ir.Path, from, to *ir.Node) []Change {
	switch {
	case from == nil && to == nil:
		return nil
	case from == nil:
		return []Change{{Op: Insert, Path: p, To: to.Clone()}}
	case to == nil:
		return []Change{{Op: Delete, Path: p, From: from.Clone()}}
	case from.Type != to.Type:
		return []Change{replace(p, from, to)}
	}
	switch from.Type {
	case ir.TableType:
		return DiffTable(p, from, to, diff)
	case ir.ArrayType:
		return DiffArrayByIndex(p, from, to, diff)
	}
	if ir.Equal(from, to) {
		return nil
	}
	return []Change{replace(p, from, to)}
}

func replace(p ir.Path, from, to *ir.Node) Change {
	return Change{Op: Replace, Path: p, From: from.Clone(), To: to.Clone()}
}

// Reverse returns the changes turning to back into from.
func Reverse(changes []Change) []Change {
	res := make([]Change, len(changes))
	for i, c := range changes {
		switch c.Op {
		case Insert:
			c.Op = Delete
		case Delete:
			c.Op = Insert
		}
		c.From, c.To = c.To, c.From
		res[i] = c
	}
	return res
}

// Summary counts changes by operation.
func Summary(changes []Change) (ins, del, rep int) {
	for _, c := range changes {
		switch c.Op {
		case Insert:
			ins++
		case Delete:
			del++
		case Replace:
			rep++
		}
	}
	return
}
