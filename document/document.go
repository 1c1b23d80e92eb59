package document

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/signadot/tomledit/debug"
	"github.com/signadot/tomledit/encode"
	"github.com/signadot/tomledit/history"
	"github.com/signadot/tomledit/ir"
	"github.com/signadot/tomledit/libdiff"
	"github.com/signadot/tomledit/parse"
)

const DefaultName = "config"

var (
	// ErrNoChange may be returned by a Mutator to abandon a commit
	// without error and without a snapshot.
	ErrNoChange = errors.New("no change")
	ErrNotTable = errors.New("document root must be a table")
)

// Mutator edits a private copy of the canonical tree.
type Mutator func(tree *ir.Node) error

type State struct {
	Name    string
	Status  string
	Dirty   bool
	CanUndo bool
	CanRedo bool
	Cursor  int
	Len     int
}

// Document owns the canonical tree and its history. It is not safe for
// concurrent use.
type Document struct {
	tree      *ir.Node
	saved     *ir.Node
	hist      *history.History
	dirty     bool
	name      string
	status    string
	log       *slog.Logger
	observers []func(Change)
}

type Option func(*Document)

func WithLogger(l *slog.Logger) Option {
	return func(d *Document) { d.log = l }
}

func WithName(name string) Option {
	return func(d *Document) { d.SetName(name) }
}

// WithTree starts the document from tree instead of an empty table.
func WithTree(tree *ir.Node) Option {
	return func(d *Document) {
		if tree != nil && tree.Type == ir.TableType {
			d.tree = tree.Clone()
		}
	}
}

func New(opts ...Option) *Document {
	d := &Document{
		tree:   ir.NewTable(),
		hist:   history.New(),
		name:   DefaultName,
		status: ReadyStatus,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.hist.Reset(d.tree)
	d.saved = d.tree.Clone()
	return d
}

// Commit applies m to a copy of the tree and installs the result as one
// new snapshot. If m fails the document is unchanged.
func (d *Document) Commit(m Mutator) error {
	clone := d.tree.Clone()
	if err := m(clone); err != nil {
		if errors.Is(err, ErrNoChange) {
			return nil
		}
		d.log.Debug("commit rejected", "error", err)
		return err
	}
	if clone.Type != ir.TableType {
		return fmt.Errorf("%w: got %s", ErrNotTable, clone.Type)
	}
	d.replace(clone, LocalEdit)
	return nil
}

// Undo steps back one snapshot. It reports false at the oldest snapshot.
func (d *Document) Undo() bool {
	tree, ok := d.hist.Undo()
	if !ok {
		return false
	}
	d.replace(tree, HistoryReplay)
	return true
}

// Redo steps forward one snapshot. It reports false at the newest snapshot.
func (d *Document) Redo() bool {
	tree, ok := d.hist.Redo()
	if !ok {
		return false
	}
	d.replace(tree, HistoryReplay)
	return true
}

// LoadExternal replaces the document with tree, which becomes the only
// snapshot. A non-empty name renames the document after the file stem.
func (d *Document) LoadExternal(tree *ir.Node, name string) error {
	if tree == nil {
		tree = ir.NewTable()
	}
	if tree.Type != ir.TableType {
		return fmt.Errorf("%w: got %s", ErrNotTable, tree.Type)
	}
	if name != "" {
		d.SetName(Stem(name))
	}
	d.replace(tree.Clone(), ExternalLoad)
	return nil
}

// LoadText parses text and loads the result as LoadExternal does. On
// failure the document keeps its tree and the status reports the error.
func (d *Document) LoadText(text, name string, opts ...parse.ParseOption) error {
	tree, err := parse.ParseString(text, opts...)
	if err != nil {
		d.SetStatus(fmt.Sprintf("Error parsing TOML: %v", err))
		return err
	}
	return d.LoadExternal(tree, name)
}

func (d *Document) replace(tree *ir.Node, origin Origin) {
	d.tree = tree
	switch origin {
	case LocalEdit:
		d.hist.Push(tree)
		d.dirty = true
	case ExternalLoad:
		d.hist.Reset(tree)
		d.saved = tree.Clone()
		d.dirty = false
	}
	if debug.Commit() {
		debug.Logf("%s %d/%d:\n%v", origin, d.hist.Cursor(), d.hist.Len(), tree)
	}
	d.log.Debug("replace", "origin", origin, "cursor", d.hist.Cursor(), "len", d.hist.Len(), "dirty", d.dirty)
	if len(d.observers) == 0 {
		return
	}
	c := Change{Origin: origin, State: d.State()}
	for _, f := range d.observers {
		f(c)
	}
}

// Serialize renders the canonical tree, as TOML unless opts say otherwise.
func (d *Document) Serialize(opts ...encode.EncodeOption) (string, error) {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(d.tree, buf, opts...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Tree returns a copy of the canonical tree.
func (d *Document) Tree() *ir.Node {
	return d.tree.Clone()
}

// Get returns a copy of the value at p.
func (d *Document) Get(p ir.Path) (*ir.Node, bool) {
	n, ok := d.tree.Get(p)
	if !ok {
		return nil, false
	}
	return n.Clone(), true
}

func (d *Document) Dirty() bool   { return d.dirty }
func (d *Document) CanUndo() bool { return d.hist.CanUndo() }
func (d *Document) CanRedo() bool { return d.hist.CanRedo() }
func (d *Document) Name() string  { return d.name }
func (d *Document) Status() string {
	return d.status
}

func (d *Document) Position() (cursor, n int) {
	return d.hist.Cursor(), d.hist.Len()
}

func (d *Document) State() State {
	return State{
		Name:    d.name,
		Status:  d.status,
		Dirty:   d.dirty,
		CanUndo: d.hist.CanUndo(),
		CanRedo: d.hist.CanRedo(),
		Cursor:  d.hist.Cursor(),
		Len:     d.hist.Len(),
	}
}

// SetName renames the document; a blank name becomes DefaultName.
func (d *Document) SetName(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultName
	}
	d.name = name
}

func (d *Document) SetStatus(s string) {
	d.status = s
	d.log.Debug("status", "status", s, "class", ClassifyStatus(s))
}

// MarkSaved acknowledges a save of the current tree.
func (d *Document) MarkSaved() {
	d.AckSave(d.tree)
}

// AckSave acknowledges a save of tree. Local edits committed while the
// save was in flight keep the document dirty.
func (d *Document) AckSave(tree *ir.Node) {
	d.saved = tree.Clone()
	d.dirty = !ir.Equal(tree, d.tree)
	d.log.Debug("save acknowledged", "dirty", d.dirty)
}

// Baseline returns a copy of the tree as last loaded or saved.
func (d *Document) Baseline() *ir.Node {
	return d.saved.Clone()
}

// Unsaved lists the changes made since the last load or save.
func (d *Document) Unsaved() []libdiff.Change {
	return libdiff.Diff(d.saved, d.tree)
}

// Observe registers f to be called after every tree replacement.
func (d *Document) Observe(f func(Change)) {
	d.observers = append(d.observers, f)
}

// Stem returns the base name of a file path without its extension.
func Stem(name string) string {
	base := filepath.Base(name)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}
