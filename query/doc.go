// Package query finds entries of a document tree.
//
// Search matches keys by case-insensitive substring, the way a key filter
// box narrows a table. Filter evaluates an expr-lang boolean expression
// against every entry, with the variables
//
//	key    the entry's key
//	path   the dotted path of the entry
//	value  the value as a Go value (tables are maps, arrays are slices)
//	type   the value type name, as ir.Type.Name reports it
//	depth  the number of path segments
//
// and the function get(path), which returns the value at a dotted path
// from the root, or nil.
package query
