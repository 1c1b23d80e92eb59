package libdiff

import (
	"github.com/signadot/tomledit/ir"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// DiffTable diffs the sorted key sequences of two tables. Keys only in from
// are deleted, keys only in to are inserted and common keys recurse
// through df.
func DiffTable(p ir.Path, from, to *ir.Node, df DiffFunc) []Change {
	fieldMap := map[string]rune{}
	runeMap := map[rune]string{}
	fromKeys, toKeys := from.Keys(), to.Keys()
	fromRunes := mapFieldsTo(fieldMap, runeMap, fromKeys)
	toRunes := mapFieldsTo(fieldMap, runeMap, toKeys)
	diffCfg := diffpatch.New()
	diffs := diffCfg.DiffMainRunes(fromRunes, toRunes, false)
	var res []Change
	for i := range diffs {
		d := &diffs[i]
		for _, r := range d.Text {
			k := runeMap[r]
			fv, _ := from.Field(k)
			tv, _ := to.Field(k)
			switch d.Type {
			case diffpatch.DiffDelete:
				res = append(res, Change{Op: Delete, Path: p.Child(k), From: fv.Clone()})
			case diffpatch.DiffInsert:
				res = append(res, Change{Op: Insert, Path: p.Child(k), To: tv.Clone()})
			case diffpatch.DiffEqual:
				res = append(res, df(p.Child(k), fv, tv)...)
			}
		}
	}
	return res
}

func mapFieldsTo(m map[string]rune, im map[rune]string, keys []string) []rune {
	rs := make([]rune, len(keys))
	for i, f := range keys {
		r, ok := m[f]
		if !ok {
			r = rune(len(m))
			m[f] = r
			im[r] = f
		}
		rs[i] = r
	}
	return rs
}
