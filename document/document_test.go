package document

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/tomledit/ir"
	"github.com/signadot/tomledit/parse"
)

func set(path string, v *ir.Node) Mutator {
	return func(tree *ir.Node) error {
		tree.Set(ir.MustPath(path), v)
		return nil
	}
}

func mustSerialize(t *testing.T, d *Document) string {
	t.Helper()
	s, err := d.Serialize()
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestScenarioSerialize(t *testing.T) {
	d := New()
	if err := d.Commit(set("title", ir.FromString("My App"))); err != nil {
		t.Fatal(err)
	}
	if err := d.Commit(set("server.port", ir.FromInt(8080))); err != nil {
		t.Fatal(err)
	}
	want := "title = \"My App\"\n\n[server]\nport = 8080\n"
	if diff := cmp.Diff(want, mustSerialize(t, d)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestScenarioDelete(t *testing.T) {
	d := New(WithTree(ir.FromMap(map[string]*ir.Node{
		"a": ir.FromMap(map[string]*ir.Node{"b": ir.FromInt(1), "c": ir.FromInt(2)}),
	})))
	err := d.Commit(func(tree *ir.Node) error {
		tree.Delete(ir.MustPath("a.b"))
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff("[a]\nc = 2\n", mustSerialize(t, d)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestScenarioRedoDiscarded(t *testing.T) {
	d := New()
	d.Commit(set("a", ir.FromInt(1)))
	d.Commit(set("b", ir.FromInt(2)))
	if !d.Undo() {
		t.Fatal("undo unavailable")
	}
	if !d.CanRedo() {
		t.Fatal("redo should be available after undo")
	}
	d.Commit(set("c", ir.FromInt(3)))
	if d.CanRedo() || d.Redo() {
		t.Error("redo available after a new commit")
	}
	cursor, n := d.Position()
	if n != cursor+1 {
		t.Errorf("cursor %d len %d", cursor, n)
	}
	if _, ok := d.Get(ir.MustPath("b")); ok {
		t.Error("undone entry came back")
	}
}

func TestUndoAvailability(t *testing.T) {
	for n := 0; n < 4; n++ {
		d := New()
		for i := 0; i < n; i++ {
			d.Commit(set("k", ir.FromInt(int64(i))))
		}
		if d.CanUndo() != (n >= 1) {
			t.Errorf("%d commits: CanUndo = %v", n, d.CanUndo())
		}
		for k := 1; k <= n; k++ {
			if !d.Undo() {
				t.Fatalf("%d commits: undo %d failed", n, k)
			}
			if !d.CanRedo() {
				t.Errorf("%d commits: no redo after %d undos", n, k)
			}
		}
		if d.Undo() {
			t.Errorf("%d commits: undo past the first snapshot", n)
		}
	}
}

func TestUndoRedoRestoresTrees(t *testing.T) {
	d := New()
	d.Commit(set("v", ir.FromInt(1)))
	d.Commit(set("v", ir.FromInt(2)))
	tests := []struct {
		op   func() bool
		want string
	}{
		{d.Undo, "v = 1\n"},
		{d.Undo, ""},
		{d.Redo, "v = 1\n"},
		{d.Redo, "v = 2\n"},
	}
	for i, tt := range tests {
		if !tt.op() {
			t.Fatalf("step %d failed", i)
		}
		if got := mustSerialize(t, d); got != tt.want {
			t.Errorf("step %d: got %q want %q", i, got, tt.want)
		}
		if !d.Dirty() {
			t.Errorf("step %d: history replay cleared dirty", i)
		}
	}
}

func TestExternalLoad(t *testing.T) {
	d := New()
	d.Commit(set("a", ir.FromInt(1)))
	d.Commit(set("b", ir.FromInt(2)))
	if err := d.LoadText("x = true\n", "/tmp/settings.toml"); err != nil {
		t.Fatal(err)
	}
	cursor, n := d.Position()
	if n != 1 || cursor != 0 || d.Dirty() || d.CanUndo() || d.CanRedo() {
		t.Errorf("after load: %+v", d.State())
	}
	if d.Name() != "settings" {
		t.Errorf("name = %q", d.Name())
	}
	d.Commit(set("y", ir.FromInt(1)))
	if !d.Dirty() {
		t.Error("local edit after load is not dirty")
	}
	d.MarkSaved()
	if d.Dirty() {
		t.Error("save acknowledgment did not clear dirty")
	}
}

func TestLoadTextError(t *testing.T) {
	d := New()
	d.Commit(set("keep", ir.FromInt(1)))
	before := d.State()
	err := d.LoadText("when = 1979-05-27\n", "x.toml")
	if !errors.Is(err, parse.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
	if _, ok := d.Get(ir.MustPath("keep")); !ok {
		t.Error("failed load replaced the tree")
	}
	after := d.State()
	if after.Len != before.Len || after.Name != before.Name || !after.Dirty {
		t.Errorf("failed load changed state: %+v", after)
	}
	if ClassifyStatus(d.Status()) != StatusErr {
		t.Errorf("status %q not an error", d.Status())
	}
}

func TestLoadJSONGap(t *testing.T) {
	d := New()
	err := d.LoadText(`{"a": [{"x": 1}]}`, "a.json", parse.ParseJSON())
	var gap *parse.GapError
	if !errors.As(err, &gap) || gap.Path.String() != "a.0" {
		t.Fatalf("expected a gap at a.0, got %v", err)
	}
	if _, err := d.Serialize(); err != nil {
		t.Errorf("document no longer serializes: %v", err)
	}
}

func TestCommitErrors(t *testing.T) {
	d := New()
	boom := errors.New("boom")
	tests := []struct {
		name string
		m    Mutator
		err  error
	}{
		{"mutator error", func(tree *ir.Node) error {
			tree.Set(ir.MustPath("half"), ir.FromInt(1))
			return boom
		}, boom},
		{"no change", func(*ir.Node) error { return ErrNoChange }, nil},
		{"root replaced", func(tree *ir.Node) error {
			*tree = *ir.FromInt(1)
			return nil
		}, ErrNotTable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := d.Commit(tt.m)
			if !errors.Is(err, tt.err) {
				t.Fatalf("got %v want %v", err, tt.err)
			}
			if d.CanUndo() || d.Dirty() {
				t.Errorf("failed commit changed state: %+v", d.State())
			}
			if _, ok := d.Get(ir.MustPath("half")); ok {
				t.Error("partial edit leaked")
			}
		})
	}
}

func TestTreeIsolation(t *testing.T) {
	d := New()
	d.Commit(set("a.b", ir.FromInt(1)))
	tree := d.Tree()
	tree.Set(ir.MustPath("a.b"), ir.FromInt(99))
	got, _ := d.Get(ir.MustPath("a.b"))
	if got.Int64 != 1 {
		t.Error("Tree() aliases the canonical tree")
	}
	var kept *ir.Node
	d.Commit(func(tree *ir.Node) error {
		kept = tree
		return nil
	})
	kept.Set(ir.MustPath("a.b"), ir.FromInt(5))
	d.Undo()
	d.Redo()
	got, _ = d.Get(ir.MustPath("a.b"))
	if got.Int64 != 1 {
		t.Error("snapshot aliases the committed tree")
	}
}

func TestObserve(t *testing.T) {
	d := New()
	var origins []Origin
	d.Observe(func(c Change) { origins = append(origins, c.Origin) })
	d.Commit(set("a", ir.FromInt(1)))
	d.Undo()
	d.Redo()
	d.LoadExternal(ir.NewTable(), "")
	want := []Origin{LocalEdit, HistoryReplay, HistoryReplay, ExternalLoad}
	if diff := cmp.Diff(want, origins); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestNames(t *testing.T) {
	d := New(WithName("  "))
	if d.Name() != DefaultName {
		t.Errorf("blank name gave %q", d.Name())
	}
	d.SetName("app")
	if d.Name() != "app" {
		t.Errorf("name = %q", d.Name())
	}
	tests := []struct{ in, want string }{
		{"/a/b/config.toml", "config"},
		{"x.tar.toml", "x.tar"},
		{"plain", "plain"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Stem(tt.in); got != tt.want {
			t.Errorf("Stem(%q) = %q want %q", tt.in, got, tt.want)
		}
	}
}

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		in   string
		want StatusClass
	}{
		{"Ready.", StatusOK},
		{"Loaded: a.toml", StatusOK},
		{"Saved: a.toml", StatusOK},
		{"Error saving: denied", StatusErr},
		{"File not found: /x", StatusErr},
		{"Unknown command: x", StatusErr},
		{"Downloaded as file.", StatusNone},
	}
	for _, tt := range tests {
		if got := ClassifyStatus(tt.in); got != tt.want {
			t.Errorf("ClassifyStatus(%q) = %q want %q", tt.in, got, tt.want)
		}
	}
}

func TestUnsaved(t *testing.T) {
	d := New()
	d.LoadText("a = 1\n", "c.toml")
	if len(d.Unsaved()) != 0 {
		t.Fatalf("fresh load has changes: %v", d.Unsaved())
	}
	d.Commit(set("a", ir.FromInt(2)))
	d.Commit(set("b", ir.FromString("x")))
	changes := d.Unsaved()
	if len(changes) != 2 {
		t.Fatalf("got %v", changes)
	}
	d.MarkSaved()
	if len(d.Unsaved()) != 0 {
		t.Errorf("changes after save: %v", d.Unsaved())
	}
	d.Undo()
	if len(d.Unsaved()) != 1 {
		t.Errorf("undo after save: %v", d.Unsaved())
	}
	if got, _ := d.Baseline().Get(ir.MustPath("b")); got == nil || got.String != "x" {
		t.Errorf("baseline %v", ir.ToAny(d.Baseline()))
	}
}

func TestAckSave(t *testing.T) {
	d := New()
	d.Commit(set("a", ir.FromInt(1)))
	inFlight := d.Tree()
	d.Commit(set("b", ir.FromInt(2)))
	d.AckSave(inFlight)
	if !d.Dirty() {
		t.Error("edit made during a save was marked saved")
	}
	if diff := cmp.Diff([]string{"+ b = 2"}, changeStrings(d)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	d.AckSave(d.Tree())
	if d.Dirty() {
		t.Error("ack of the current tree left the document dirty")
	}
}

func changeStrings(d *Document) []string {
	var res []string
	for _, c := range d.Unsaved() {
		res = append(res, c.String())
	}
	return res
}
