// Package ir provides the in-memory value tree edited by tomledit.
//
// # Node Structure
//
// A Node is a tagged union over the value model of a configuration
// document. The Type field selects which of the remaining fields is
// meaningful:
//
//   - NullType: no value
//   - BoolType: Bool
//   - IntType: Int64
//   - FloatType: Float64
//   - StringType: String
//   - ArrayType: Values, an ordered list of nodes
//   - TableType: Fields and Values, where Fields[i] is the key of Values[i]
//
// Keys within a table are unique. Tables remember insertion order, but
// anything that must be deterministic (encoding, comparison, listing) uses
// Keys, which returns them sorted.
//
// Nodes carry no parent pointers, so a subtree can be attached anywhere
// without fixups. Callers that store a node in more than one place must
// Clone it; the document layer clones on every edit and every snapshot.
//
// # Paths
//
// A Path is a sequence of plain string segments:
//
//	p := ir.MustPath("server.tls")
//	v, ok := root.Get(p.Child("cert"))
//	root.Set(p.Child("port"), ir.FromInt(8443))
//	root.Delete(p)
//
// Get never fails: a missing location is reported through its boolean
// result. Set creates intermediate tables and overwrites any non-table it
// finds on the way. Delete is a no-op for missing locations.
//
// # Comparison
//
// Compare orders nodes by type and then by value; tables compare by sorted
// keys, so Equal ignores insertion order.
//
// # Thread Safety
//
// Node structures are not thread-safe.
package ir
