package edit

import (
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/signadot/tomledit/document"
	"github.com/signadot/tomledit/ir"
)

// ApplyJSONPatch applies an RFC 6902 patch to the whole tree.
func ApplyJSONPatch(patch []byte) document.Mutator {
	return func(tree *ir.Node) error {
		ops, err := jsonpatch.DecodePatch(patch)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrPatch, err)
		}
		return viaJSON(tree, ops.Apply)
	}
}

// ApplyMergePatch applies an RFC 7386 merge patch to the whole tree. Null
// members of the patch delete keys.
func ApplyMergePatch(patch []byte) document.Mutator {
	return func(tree *ir.Node) error {
		return viaJSON(tree, func(doc []byte) ([]byte, error) {
			return jsonpatch.MergePatch(doc, patch)
		})
	}
}

func viaJSON(tree *ir.Node, f func([]byte) ([]byte, error)) error {
	d, err := tree.MarshalJSON()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPatch, err)
	}
	out, err := f(d)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPatch, err)
	}
	res := &ir.Node{}
	if err := res.UnmarshalJSON(out); err != nil {
		return fmt.Errorf("%w: %w", ErrPatch, err)
	}
	if res.Type != ir.TableType {
		return fmt.Errorf("%w: result is %s, not a table", ErrPatch, res.Type)
	}
	res.CloneTo(tree)
	return nil
}
