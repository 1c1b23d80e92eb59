// Package history keeps a linear undo/redo list of whole-document
// snapshots.
//
// A History holds snapshots s[0..n) and a cursor c with 0 <= c < n once it
// has been initialized. s[c] is the current state. Push discards s(c..n)
// before appending, so a commit after an undo drops the redo tail.
//
// Snapshots are cloned when pushed and when read out; callers never share
// nodes with the history.
package history

import (
	"github.com/signadot/tomledit/debug"
	"github.com/signadot/tomledit/ir"
)

type History struct {
	snaps  []*ir.Node
	cursor int
}

func New() *History {
	return &History{}
}

// Reset discards all snapshots and makes tree the only one.
func (h *History) Reset(tree *ir.Node) {
	h.snaps = []*ir.Node{tree.Clone()}
	h.cursor = 0
	if debug.History() {
		debug.Logf("history reset")
	}
}

// Push records tree as the new current state. On an empty history it
// behaves as Reset.
func (h *History) Push(tree *ir.Node) {
	if len(h.snaps) == 0 {
		h.Reset(tree)
		return
	}
	clear(h.snaps[h.cursor+1:])
	h.snaps = append(h.snaps[:h.cursor+1], tree.Clone())
	h.cursor++
	if debug.History() {
		debug.Logf("history push %d/%d", h.cursor, len(h.snaps))
	}
}

func (h *History) CanUndo() bool {
	return len(h.snaps) != 0 && h.cursor > 0
}

func (h *History) CanRedo() bool {
	return len(h.snaps) != 0 && h.cursor < len(h.snaps)-1
}

// Undo moves the cursor back and returns a copy of the snapshot there.
func (h *History) Undo() (*ir.Node, bool) {
	if !h.CanUndo() {
		return nil, false
	}
	h.cursor--
	if debug.History() {
		debug.Logf("history undo %d/%d", h.cursor, len(h.snaps))
	}
	return h.snaps[h.cursor].Clone(), true
}

// Redo moves the cursor forward and returns a copy of the snapshot there.
func (h *History) Redo() (*ir.Node, bool) {
	if !h.CanRedo() {
		return nil, false
	}
	h.cursor++
	if debug.History() {
		debug.Logf("history redo %d/%d", h.cursor, len(h.snaps))
	}
	return h.snaps[h.cursor].Clone(), true
}

// Current returns a copy of the snapshot at the cursor.
func (h *History) Current() (*ir.Node, bool) {
	if len(h.snaps) == 0 {
		return nil, false
	}
	return h.snaps[h.cursor].Clone(), true
}

func (h *History) Len() int {
	return len(h.snaps)
}

func (h *History) Cursor() int {
	return h.cursor
}
