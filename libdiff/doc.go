// Package libdiff computes differences between document trees and between
// their texts.
//
// # Usage
//
//	// Structural changes between the saved and the current tree
//	changes := libdiff.Diff(saved, current)
//	for _, c := range changes {
//	    fmt.Println(c)
//	}
//
//	// Line diff of two TOML renderings
//	text := libdiff.Text(savedText, currentText)
//
// Table keys and array elements are matched with a longest common
// subsequence, so an insertion in the middle of an array is reported as one
// insertion rather than as changes to every following element.
//
// # Related Packages
//
//   - github.com/signadot/tomledit/ir - IR representation
//   - github.com/signadot/tomledit/document - Documents whose trees are diffed
package libdiff
