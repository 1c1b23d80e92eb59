package libdiff

import (
	jsonpatch "github.com/evanphx/json-patch"
	"github.com/signadot/tomledit/ir"
)

// MergePatch returns an RFC 7386 merge patch turning from into to. Whole
// floats in the patch read back as integers.
func MergePatch(from, to *ir.Node) ([]byte, error) {
	a, err := from.MarshalJSON()
	if err != nil {
		return nil, err
	}
	b, err := to.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return jsonpatch.CreateMergePatch(a, b)
}
