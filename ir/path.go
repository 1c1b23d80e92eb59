package ir

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Sep separates the segments of a Path in its string form.
const Sep = "."

// Path addresses a location from the root of a tree. Segments are table keys,
// except that Get also accepts a decimal index into an array. The empty Path
// denotes the root.
type Path []string

// ParsePath splits a dotted path. "" parses to the root path.
func ParsePath(s string) (Path, error) {
	if s == "" {
		return Path{}, nil
	}
	parts := strings.Split(s, Sep)
	for i, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("%w: empty segment %d in %q", ErrBadPath, i, s)
		}
	}
	return Path(parts), nil
}

func MustPath(s string) Path {
	p, err := ParsePath(s)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Path) String() string {
	return strings.Join(p, Sep)
}

func (p Path) IsRoot() bool {
	return len(p) == 0
}

// Child returns a new path extending p by key.
func (p Path) Child(key string) Path {
	res := make(Path, len(p), len(p)+1)
	copy(res, p)
	return append(res, key)
}

// Parent returns p without its last segment. The parent of the root is the
// root.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return p
	}
	return slices.Clone(p[:len(p)-1])
}

// Last returns the final segment of p, or "" for the root.
func (p Path) Last() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

func (p Path) Equal(o Path) bool {
	return slices.Equal(p, o)
}

// Get returns the node at p. The returned node is shared with y. The
// second result is false if any segment is missing or crosses a leaf.
func (y *Node) Get(p Path) (*Node, bool) {
	res := y
	for _, seg := range p {
		if res == nil {
			return nil, false
		}
		switch res.Type {
		case TableType:
			next, ok := res.Field(seg)
			if !ok {
				return nil, false
			}
			res = next
		case ArrayType:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(res.Values) {
				return nil, false
			}
			res = res.Values[i]
		default:
			return nil, false
		}
	}
	return res, res != nil
}

// Set stores v at p, creating intermediate tables as needed. An
// intermediate location holding anything other than a table is replaced by
// a fresh empty table. Setting the root path is a no-op.
func (y *Node) Set(p Path, v *Node) {
	if len(p) == 0 {
		return
	}
	cur := y
	for _, seg := range p[:len(p)-1] {
		next, ok := cur.Field(seg)
		if !ok || next.Type != TableType {
			next = NewTable()
			cur.Put(seg, next)
		}
		cur = next
	}
	cur.Put(p.Last(), v)
}

// Delete removes the entry at p if its parent table exists and reports
// whether anything was removed.
func (y *Node) Delete(p Path) bool {
	if len(p) == 0 {
		return false
	}
	parent, ok := y.Get(p.Parent())
	if !ok || parent.Type != TableType {
		return false
	}
	return parent.Remove(p.Last())
}
