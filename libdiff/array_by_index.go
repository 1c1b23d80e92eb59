package libdiff

import (
	"strconv"
	"strings"

	"github.com/signadot/tomledit/ir"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// DiffArrayByIndex matches elements by a summary of their type and scalar
// value, then:
//
//  1. unmatched elements of from are deleted
//  2. unmatched elements of to are inserted; an insertion at the index of a
//     deletion just before it becomes a replacement
//  3. matched containers recurse through df
func DiffArrayByIndex(p ir.Path, from, to *ir.Node, df DiffFunc) []Change {
	m := map[string]rune{}
	fromRunes := mapValues(m, from)
	toRunes := mapValues(m, to)
	diffCfg := diffpatch.New()
	diffs := diffCfg.DiffMainRunes(fromRunes, toRunes, false)
	var res []Change

	fi, ti := 0, 0
	lastDel := -1
	for i := range diffs {
		d := &diffs[i]
		n := len([]rune(d.Text))
		switch d.Type {
		case diffpatch.DiffDelete:
			for range n {
				res = append(res, Change{Op: Delete, Path: p.Child(strconv.Itoa(fi)), From: from.Values[fi].Clone()})
				lastDel = len(res) - 1
				fi++
			}
		case diffpatch.DiffEqual:
			lastDel = -1
			for range n {
				res = append(res, df(p.Child(strconv.Itoa(ti)), from.Values[fi], to.Values[ti])...)
				fi++
				ti++
			}
		case diffpatch.DiffInsert:
			for range n {
				ip := p.Child(strconv.Itoa(ti))
				if lastDel >= 0 && res[lastDel].Path.Equal(ip) {
					res[lastDel] = replace(ip, res[lastDel].From, to.Values[ti])
				} else {
					res = append(res, Change{Op: Insert, Path: ip, To: to.Values[ti].Clone()})
				}
				lastDel = -1
				ti++
			}
		}
	}
	return res
}

func mapValues(m map[string]rune, node *ir.Node) []rune {
	rs := make([]rune, len(node.Values))
	for i, v := range node.Values {
		sum := summaryStr(v)
		r, ok := m[sum]
		if !ok {
			r = rune(len(m))
			m[sum] = r
		}
		rs[i] = r
	}
	return rs
}

func summaryStr(node *ir.Node) string {
	switch node.Type {
	case ir.TableType, ir.ArrayType, ir.NullType:
		return node.Type.String()
	case ir.BoolType:
		return node.Type.String() + "-" + strconv.FormatBool(node.Bool)
	case ir.StringType:
		if strings.Contains(node.String, "\n") {
			return node.Type.String() + "/m"
		}
		return node.Type.String() + "-" + node.String
	case ir.IntType:
		return node.Type.String() + "-" + strconv.FormatInt(node.Int64, 10)
	case ir.FloatType:
		return node.Type.String() + "-" + strconv.FormatFloat(node.Float64, 'g', -1, 64)
	default:
		panic("type")
	}
}
