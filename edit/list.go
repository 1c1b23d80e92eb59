package edit

import (
	"fmt"

	"github.com/signadot/tomledit/document"
	"github.com/signadot/tomledit/ir"
)

// listEdit reads the array at p, applies f to it and writes the result
// back. A missing array is treated as empty.
func listEdit(p ir.Path, f func(seq *ir.Node) (*ir.Node, error)) document.Mutator {
	return func(tree *ir.Node) error {
		if err := checkPath(p); err != nil {
			return err
		}
		cur, _ := tree.Get(p)
		res, err := f(cur)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		return put(tree, p, res)
	}
}

func ListAppend(p ir.Path, v *ir.Node) document.Mutator {
	return listEdit(p, func(seq *ir.Node) (*ir.Node, error) {
		return ir.Append(seq, v)
	})
}

// ListAppendRaw appends raw coerced to the kind inferred from the existing
// elements.
func ListAppendRaw(p ir.Path, raw string) document.Mutator {
	return listEdit(p, func(seq *ir.Node) (*ir.Node, error) {
		return ir.Append(seq, InferListKind(seq).Coerce(raw))
	})
}

func ListRemove(p ir.Path, i int) document.Mutator {
	return listEdit(p, func(seq *ir.Node) (*ir.Node, error) {
		return ir.RemoveAt(seq, i)
	})
}

func ListReplace(p ir.Path, i int, v *ir.Node) document.Mutator {
	return listEdit(p, func(seq *ir.Node) (*ir.Node, error) {
		return ir.ReplaceAt(seq, i, v)
	})
}

// ListMove moves element i by delta positions, shifting the elements in
// between.
func ListMove(p ir.Path, i, delta int) document.Mutator {
	return listEdit(p, func(seq *ir.Node) (*ir.Node, error) {
		if delta == 0 {
			return nil, document.ErrNoChange
		}
		res := seq
		for ; delta < 0; delta++ {
			next, err := ir.MoveUp(res, i)
			if err != nil {
				return nil, err
			}
			res, i = next, i-1
		}
		for ; delta > 0; delta-- {
			next, err := ir.MoveDown(res, i)
			if err != nil {
				return nil, err
			}
			res, i = next, i+1
		}
		return res, nil
	})
}
