package main

import (
	"testing"

	"github.com/signadot/tomledit/document"
	"github.com/signadot/tomledit/ir"
)

func TestSetText(t *testing.T) {
	tests := []struct {
		name string
		path string
		raw  string
		want *ir.Node
	}{
		{"array element", "ports.0", "9090", ir.FromMap(map[string]*ir.Node{
			"ports": ir.FromSlice([]*ir.Node{ir.FromInt(9090), ir.FromInt(2)}),
			"name":  ir.FromString("app"),
		})},
		{"keeps kind", "name", "42", ir.FromMap(map[string]*ir.Node{
			"ports": ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromInt(2)}),
			"name":  ir.FromString("42"),
		})},
		{"new key parsed", "db.port", "5432", ir.FromMap(map[string]*ir.Node{
			"ports": ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromInt(2)}),
			"name":  ir.FromString("app"),
			"db":    ir.FromMap(map[string]*ir.Node{"port": ir.FromInt(5432)}),
		})},
		{"whole array", "ports", "[3]", ir.FromMap(map[string]*ir.Node{
			"ports": ir.FromSlice([]*ir.Node{ir.FromInt(3)}),
			"name":  ir.FromString("app"),
		})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := document.New(document.WithTree(ir.FromMap(map[string]*ir.Node{
				"ports": ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromInt(2)}),
				"name":  ir.FromString("app"),
			})))
			if err := d.Commit(setText(ir.MustPath(tt.path), tt.raw)); err != nil {
				t.Fatal(err)
			}
			if got := d.Tree(); !ir.Equal(got, tt.want) {
				t.Errorf("got %v want %v", ir.ToAny(got), ir.ToAny(tt.want))
			}
		})
	}
}

func TestSetTextPastEnd(t *testing.T) {
	d := document.New(document.WithTree(ir.FromMap(map[string]*ir.Node{
		"ports": ir.FromSlice([]*ir.Node{ir.FromInt(1)}),
	})))
	if err := d.Commit(setText(ir.MustPath("ports.4"), "1")); err == nil {
		t.Fatal("expected an index error")
	}
	if p, _ := d.Get(ir.MustPath("ports")); p == nil || p.Type != ir.ArrayType {
		t.Errorf("ports is %v", p)
	}
}
