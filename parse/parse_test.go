package parse

import (
	"errors"
	"math"
	"testing"

	"github.com/signadot/tomledit/encode"
	"github.com/signadot/tomledit/format"
	"github.com/signadot/tomledit/ir"
)

func TestParseTOML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *ir.Node
	}{
		{
			name: "basic",
			in:   "title = \"My App\"\n\n[server]\nport = 8080\n",
			want: ir.FromMap(map[string]*ir.Node{
				"title":  ir.FromString("My App"),
				"server": ir.FromMap(map[string]*ir.Node{"port": ir.FromInt(8080)}),
			}),
		},
		{
			name: "empty",
			in:   "",
			want: ir.NewTable(),
		},
		{
			name: "comments and types",
			in: `# top
on = true
ratio = 1.5
whole = 2.0
big = 1e3
list = [1, 2, 3]
mixed = ["a", ["b"]]
`,
			want: ir.FromMap(map[string]*ir.Node{
				"on":    ir.FromBool(true),
				"ratio": ir.FromFloat(1.5),
				"whole": ir.FromFloat(2),
				"big":   ir.FromFloat(1000),
				"list":  ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromInt(2), ir.FromInt(3)}),
				"mixed": ir.FromSlice([]*ir.Node{
					ir.FromString("a"),
					ir.FromSlice([]*ir.Node{ir.FromString("b")}),
				}),
			}),
		},
		{
			name: "inline table",
			in:   "point = { x = 1, y = 2 }\n",
			want: ir.FromMap(map[string]*ir.Node{
				"point": ir.FromMap(map[string]*ir.Node{"x": ir.FromInt(1), "y": ir.FromInt(2)}),
			}),
		},
		{
			name: "dotted and quoted",
			in:   "[a.b]\n\"k k\" = \"v\"\n",
			want: ir.FromMap(map[string]*ir.Node{
				"a": ir.FromMap(map[string]*ir.Node{
					"b": ir.FromMap(map[string]*ir.Node{"k k": ir.FromString("v")}),
				}),
			}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseString(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if !ir.Equal(got, tt.want) {
				t.Errorf("got %v want %v", ir.ToAny(got), ir.ToAny(tt.want))
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		gap  string
	}{
		{name: "syntax", in: "a = \n"},
		{name: "duplicate", in: "a = 1\na = 2\n"},
		{name: "datetime", in: "t = 1979-05-27T07:32:00Z\n", gap: "t"},
		{name: "local date", in: "[x]\nd = 1979-05-27\n", gap: "x.d"},
		{name: "array of tables", in: "[[items]]\nname = \"a\"\n", gap: "items"},
		{name: "table in array", in: "l = [1, { a = 1 }]\n", gap: "l.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.in)
			if tt.gap == "" {
				if !errors.Is(err, ErrParse) {
					t.Fatalf("expected ErrParse, got %v", err)
				}
				return
			}
			if !errors.Is(err, ErrUnsupported) {
				t.Fatalf("expected ErrUnsupported, got %v", err)
			}
			var gap *GapError
			if !errors.As(err, &gap) {
				t.Fatalf("expected *GapError, got %T", err)
			}
			if gap.Path.String() != tt.gap {
				t.Errorf("gap path %q, want %q", gap.Path, tt.gap)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	trees := []*ir.Node{
		ir.NewTable(),
		ir.FromMap(map[string]*ir.Node{
			"title": ir.FromString("quote \" and \\ and\nnewline\ttab \x01 ✓"),
			"n":     ir.FromInt(-42),
			"f":     ir.FromFloat(3),
			"tiny":  ir.FromFloat(1e-9),
			"huge":  ir.FromFloat(1e300),
			"inf":   ir.FromFloat(math.Inf(-1)),
			"b":     ir.FromBool(false),
			"list":  ir.FromSlice([]*ir.Node{ir.FromSlice(nil), ir.FromFloat(0.5)}),
			"odd key": ir.FromMap(map[string]*ir.Node{
				"x.y": ir.FromInt(1),
				"deep": ir.FromMap(map[string]*ir.Node{
					"deeper": ir.FromMap(map[string]*ir.Node{"z": ir.FromString("")}),
				}),
			}),
			"empty": ir.NewTable(),
		}),
	}
	for i, tree := range trees {
		text := encode.MustString(tree)
		back, err := ParseString(text)
		if err != nil {
			t.Fatalf("tree %d: %v\n%s", i, err, text)
		}
		if !ir.Equal(tree, back) {
			t.Errorf("tree %d: round trip mismatch\n%s\ngot %v", i, text, ir.ToAny(back))
		}
		if again := encode.MustString(back); again != text {
			t.Errorf("tree %d: encoding not stable:\n%s\n%s", i, text, again)
		}
	}
}

func TestImport(t *testing.T) {
	want := ir.FromMap(map[string]*ir.Node{
		"name":  ir.FromString("x"),
		"port":  ir.FromInt(80),
		"ratio": ir.FromFloat(1),
		"tags":  ir.FromSlice([]*ir.Node{ir.FromString("a"), ir.FromBool(true)}),
		"db":    ir.FromMap(map[string]*ir.Node{"user": ir.Null()}),
	})
	tests := []struct {
		f  format.Format
		in string
	}{
		{format.JSONFormat, `{"name": "x", "port": 80, "ratio": 1.0, "tags": ["a", true], "db": {"user": null}}`},
		{format.YAMLFormat, "name: x\nport: 80\nratio: 1.0\ntags:\n- a\n- true\ndb:\n  user: null\n"},
	}
	for _, tt := range tests {
		t.Run(tt.f.String(), func(t *testing.T) {
			got, err := ParseString(tt.in, ParseFormat(tt.f))
			if err != nil {
				t.Fatal(err)
			}
			if !ir.Equal(got, want) {
				t.Errorf("got %v", ir.ToAny(got))
			}
			exported := encode.MustString(got, encode.EncodeFormat(tt.f))
			back, err := ParseString(exported, ParseFormat(tt.f))
			if err != nil {
				t.Fatal(err)
			}
			if !ir.Equal(back, want) {
				t.Errorf("export/import changed the tree: %v", ir.ToAny(back))
			}
		})
	}
}

func TestImportNotTable(t *testing.T) {
	for _, f := range []format.Format{format.JSONFormat, format.YAMLFormat} {
		_, err := ParseString("[1, 2]", ParseFormat(f))
		if !errors.Is(err, ErrUnsupported) {
			t.Errorf("%s: expected ErrUnsupported, got %v", f, err)
		}
	}
	gaps := []struct {
		f    format.Format
		in   string
		path string
	}{
		{format.JSONFormat, `{"a": [{"x": 1}]}`, "a.0"},
		{format.JSONFormat, `{"t": {"l": [1, [{"y": true}]]}}`, "t.l.1.0"},
		{format.YAMLFormat, "a:\n- x: 1\n", "a.0"},
	}
	for _, tt := range gaps {
		_, err := ParseString(tt.in, ParseFormat(tt.f))
		var gap *GapError
		if !errors.As(err, &gap) || !errors.Is(err, ErrUnsupported) {
			t.Errorf("%s %s: expected a gap error, got %v", tt.f, tt.in, err)
			continue
		}
		if gap.Path.String() != tt.path {
			t.Errorf("%s %s: gap path %q, want %q", tt.f, tt.in, gap.Path, tt.path)
		}
	}
	if _, err := ParseString("{", ParseJSON()); !errors.Is(err, ErrParse) {
		t.Errorf("expected ErrParse, got %v", err)
	}
}
