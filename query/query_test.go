package query

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/tomledit/ir"
)

func tree() *ir.Node {
	return ir.FromMap(map[string]*ir.Node{
		"title": ir.FromString("My App"),
		"debug": ir.FromBool(true),
		"server": ir.FromMap(map[string]*ir.Node{
			"port":    ir.FromInt(8080),
			"Host":    ir.FromString("localhost"),
			"timeout": ir.FromFloat(2.5),
		}),
		"tags": ir.FromSlice([]*ir.Node{ir.FromString("a")}),
	})
}

func paths(es []Entry) []string {
	res := make([]string, len(es))
	for i, e := range es {
		res[i] = e.Path.String()
	}
	return res
}

func TestEntries(t *testing.T) {
	want := []string{"debug", "server", "server.Host", "server.port", "server.timeout", "tags", "title"}
	if diff := cmp.Diff(want, paths(Entries(tree()))); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestSearch(t *testing.T) {
	server, _ := tree().Get(ir.MustPath("server"))
	tests := []struct {
		needle string
		want   []string
	}{
		{"", []string{"Host", "port", "timeout"}},
		{"host", []string{"Host"}},
		{" O ", []string{"Host", "port", "timeout"}},
		{"out", []string{"timeout"}},
		{"zzz", []string{}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, Search(server, tt.needle)); diff != "" {
			t.Errorf("%q (-want +got):\n%s", tt.needle, diff)
		}
	}
	if Search(ir.FromInt(1), "") != nil {
		t.Error("search of a scalar")
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		src  string
		want []string
	}{
		{`key == "port"`, []string{"server.port"}},
		{`type == "dict"`, []string{"server"}},
		{`depth == 1 && type != "dict"`, []string{"debug", "tags", "title"}},
		{`key contains "o" && depth > 1`, []string{"server.Host", "server.port", "server.timeout"}},
		{`type == "int" && value > 1000`, []string{"server.port"}},
		{`path startsWith "server." && get("debug") == true`, []string{"server.Host", "server.port", "server.timeout"}},
		{`get("missing") != nil`, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, err := Filter(tree(), tt.src)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, paths(got)); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilterErrors(t *testing.T) {
	for _, src := range []string{`key ==`, `key + "x"`} {
		if _, err := Filter(tree(), src); !errors.Is(err, ErrQuery) {
			t.Errorf("%s: expected ErrQuery, got %v", src, err)
		}
	}
}

func TestMatch(t *testing.T) {
	root := tree()
	q, err := Compile(`value > 1000`, root)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		path string
		want bool
	}{
		{"server.port", true},
		{"server.timeout", false},
	}
	for _, tt := range tests {
		v, _ := root.Get(ir.MustPath(tt.path))
		got, err := q.Match(Entry{Path: ir.MustPath(tt.path), Value: v})
		if err != nil {
			t.Fatalf("%s: %v", tt.path, err)
		}
		if got != tt.want {
			t.Errorf("%s: got %v want %v", tt.path, got, tt.want)
		}
	}
	if q.String() != `value > 1000` {
		t.Errorf("String() = %q", q.String())
	}
}
