package ir

// InlineLimit is the largest table shown in compact form by Inline.
const InlineLimit = 5

// SplitTop partitions the direct children of a root table into two new
// tables: everything that is not a table, and the named sub-tables. Values
// are shared with root. Keys come out sorted.
func SplitTop(root *Node) (scalars, tables *Node) {
	scalars, tables = NewTable(), NewTable()
	if !root.IsTable() {
		return scalars, tables
	}
	for _, k := range root.Keys() {
		v, _ := root.Field(k)
		if v.Type == TableType {
			tables.Put(k, v)
			continue
		}
		scalars.Put(k, v)
	}
	return scalars, tables
}

// IsShallowScalar reports whether y is a table none of whose direct
// children is a container.
func IsShallowScalar(y *Node) bool {
	if !y.IsTable() {
		return false
	}
	for _, v := range y.Values {
		if v.IsContainer() {
			return false
		}
	}
	return true
}

// Inline reports whether y qualifies for compact display: a shallow
// scalar table with at most limit entries.
func Inline(y *Node, limit int) bool {
	return IsShallowScalar(y) && len(y.Values) <= limit
}
