package ir

import (
	"errors"
	"testing"
)

func ints(vs ...int64) *Node {
	res := FromSlice(nil)
	for _, v := range vs {
		res.Values = append(res.Values, FromInt(v))
	}
	return res
}

func TestSeqOps(t *testing.T) {
	tests := []struct {
		name string
		op   func(*Node) (*Node, error)
		want *Node
		err  error
	}{
		{"append", func(y *Node) (*Node, error) { return Append(y, FromInt(4)) }, ints(1, 2, 3, 4), nil},
		{"remove first", func(y *Node) (*Node, error) { return RemoveAt(y, 0) }, ints(2, 3), nil},
		{"remove out of range", func(y *Node) (*Node, error) { return RemoveAt(y, 3) }, nil, ErrIndexRange},
		{"replace", func(y *Node) (*Node, error) { return ReplaceAt(y, 1, FromInt(9)) }, ints(1, 9, 3), nil},
		{"move up", func(y *Node) (*Node, error) { return MoveUp(y, 2) }, ints(1, 3, 2), nil},
		{"move up first", func(y *Node) (*Node, error) { return MoveUp(y, 0) }, nil, ErrIndexRange},
		{"move down", func(y *Node) (*Node, error) { return MoveDown(y, 0) }, ints(2, 1, 3), nil},
		{"move down last", func(y *Node) (*Node, error) { return MoveDown(y, 2) }, nil, ErrIndexRange},
		{"not an array", func(*Node) (*Node, error) { return Append(FromString("x"), FromInt(1)) }, nil, ErrNotArray},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := ints(1, 2, 3)
			got, err := tt.op(orig)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("expected %v, got %v", tt.err, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if !Equal(got, tt.want) {
				t.Errorf("got %v want %v", ToAny(got), ToAny(tt.want))
			}
			if !Equal(orig, ints(1, 2, 3)) {
				t.Error("operation modified its input")
			}
		})
	}
}

func TestAppendNil(t *testing.T) {
	got, err := Append(nil, FromString("a"))
	if err != nil {
		t.Fatal(err)
	}
	if got.Type != ArrayType || len(got.Values) != 1 {
		t.Errorf("unexpected result %v", ToAny(got))
	}
}

func TestSplitTop(t *testing.T) {
	root := FromMap(map[string]*Node{
		"name":  FromString("x"),
		"list":  FromSlice(nil),
		"empty": NewTable(),
		"db":    FromMap(map[string]*Node{"port": FromInt(5432)}),
	})
	scalars, tables := SplitTop(root)
	if got := scalars.Keys(); len(got) != 2 || got[0] != "list" || got[1] != "name" {
		t.Errorf("scalars = %v", got)
	}
	if got := tables.Keys(); len(got) != 2 || got[0] != "db" || got[1] != "empty" {
		t.Errorf("tables = %v", got)
	}
}

func TestShallowScalar(t *testing.T) {
	tests := []struct {
		name   string
		n      *Node
		want   bool
		inline bool
	}{
		{"scalars", FromMap(map[string]*Node{"a": FromInt(1), "b": Null()}), true, true},
		{"empty", NewTable(), true, true},
		{"nested table", FromMap(map[string]*Node{"a": NewTable()}), false, false},
		{"array child", FromMap(map[string]*Node{"a": FromSlice(nil)}), false, false},
		{"not a table", FromInt(1), false, false},
		{"too many", FromMap(map[string]*Node{
			"a": FromInt(1), "b": FromInt(2), "c": FromInt(3),
			"d": FromInt(4), "e": FromInt(5), "f": FromInt(6),
		}), true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsShallowScalar(tt.n); got != tt.want {
				t.Errorf("IsShallowScalar = %v", got)
			}
			if got := Inline(tt.n, InlineLimit); got != tt.inline {
				t.Errorf("Inline = %v", got)
			}
		})
	}
}

func TestJSON(t *testing.T) {
	root := FromMap(map[string]*Node{
		"b": FromFloat(1),
		"a": FromSlice([]*Node{FromInt(1), FromString("x"), FromBool(false), Null()}),
	})
	d, err := root.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	want := `{"a":[1,"x",false,null],"b":1.0}`
	if string(d) != want {
		t.Errorf("got %s want %s", d, want)
	}
	back := &Node{}
	if err := back.UnmarshalJSON(d); err != nil {
		t.Fatal(err)
	}
	if !Equal(back, root) {
		t.Errorf("json round trip: got %v", ToAny(back))
	}
}
