package ir

import (
	"maps"
	"math"
	"slices"
	"strconv"
)

type Node struct {
	Type Type

	// Fields[i] is the key of Values[i] for TableType. ArrayType nodes use
	// Values only.
	Fields []string
	Values []*Node

	Bool    bool
	Int64   int64
	Float64 float64
	String  string
}

func (y *Node) Clone() *Node {
	if y == nil {
		return nil
	}
	res := &Node{}
	return y.CloneTo(res)
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Type = y.Type
	dst.Bool = y.Bool
	dst.Int64 = y.Int64
	dst.Float64 = y.Float64
	dst.String = y.String
	dst.Fields = nil
	dst.Values = nil
	if y.Fields != nil {
		dst.Fields = slices.Clone(y.Fields)
	}
	if y.Values != nil {
		dst.Values = make([]*Node, len(y.Values))
		for i, yv := range y.Values {
			dst.Values[i] = yv.Clone()
		}
	}
	return dst
}

func Null() *Node {
	return &Node{Type: NullType}
}

func FromBool(v bool) *Node {
	return &Node{Type: BoolType, Bool: v}
}

func FromInt(v int64) *Node {
	return &Node{Type: IntType, Int64: v}
}

func FromFloat(f float64) *Node {
	return &Node{Type: FloatType, Float64: f}
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromSlice(vs []*Node) *Node {
	if vs == nil {
		vs = []*Node{}
	}
	return &Node{Type: ArrayType, Values: vs}
}

func NewTable() *Node {
	return &Node{Type: TableType, Fields: []string{}, Values: []*Node{}}
}

// FromMap builds a table with keys in sorted order.
func FromMap(m map[string]*Node) *Node {
	res := NewTable()
	for _, k := range slices.Sorted(maps.Keys(m)) {
		res.Fields = append(res.Fields, k)
		res.Values = append(res.Values, m[k])
	}
	return res
}

type KeyVal struct {
	Key string
	Val *Node
}

// FromKeyVals builds a table preserving the order of kvs. Later duplicate
// keys replace earlier ones.
func FromKeyVals(kvs []KeyVal) *Node {
	res := NewTable()
	for _, kv := range kvs {
		res.Put(kv.Key, kv.Val)
	}
	return res
}

func (y *Node) IsTable() bool {
	return y != nil && y.Type == TableType
}

func (y *Node) IsArray() bool {
	return y != nil && y.Type == ArrayType
}

// IsContainer reports whether y is a table or an array.
func (y *Node) IsContainer() bool {
	return y.IsTable() || y.IsArray()
}

func (y *Node) Len() int {
	return len(y.Values)
}

// Index returns the position of key in y.Fields, or -1.
func (y *Node) Index(key string) int {
	if y.Type != TableType {
		return -1
	}
	return slices.Index(y.Fields, key)
}

// Field returns the value stored under key.
func (y *Node) Field(key string) (*Node, bool) {
	i := y.Index(key)
	if i == -1 {
		return nil, false
	}
	return y.Values[i], true
}

// Put stores v under key, replacing any existing entry in place and
// appending otherwise.
func (y *Node) Put(key string, v *Node) {
	if i := y.Index(key); i != -1 {
		y.Values[i] = v
		return
	}
	y.Fields = append(y.Fields, key)
	y.Values = append(y.Values, v)
}

// Remove deletes key from y and reports whether it was present.
func (y *Node) Remove(key string) bool {
	i := y.Index(key)
	if i == -1 {
		return false
	}
	y.Fields = slices.Delete(y.Fields, i, i+1)
	y.Values = slices.Delete(y.Values, i, i+1)
	return true
}

// Keys returns the table's keys in lexicographic order.
func (y *Node) Keys() []string {
	if y.Type != TableType {
		return nil
	}
	return slices.Sorted(slices.Values(y.Fields))
}

// ToMap returns the entries of a table keyed by field, or nil if y is not a
// table. Values are shared, not copied.
func ToMap(y *Node) map[string]*Node {
	if y.Type != TableType {
		return nil
	}
	res := make(map[string]*Node, len(y.Fields))
	for i, f := range y.Fields {
		res[f] = y.Values[i]
	}
	return res
}

// Infer converts raw editor input to a scalar: true and false become
// booleans, anything that parses as a number becomes an int or float, and
// everything else stays a string.
func Infer(raw string) *Node {
	switch raw {
	case "true":
		return FromBool(true)
	case "false":
		return FromBool(false)
	case "":
		return FromString(raw)
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return FromInt(i)
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return FromFloat(f)
	}
	return FromString(raw)
}
