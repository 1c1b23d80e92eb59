package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/signadot/tomledit/document"
	"github.com/signadot/tomledit/host"
	"github.com/signadot/tomledit/host/fshost"
	"github.com/signadot/tomledit/ir"
)

type fakeBridge struct {
	mu     sync.Mutex
	sent   []host.Command
	events chan host.Event
}

func newFake() *fakeBridge {
	return &fakeBridge{events: make(chan host.Event, 4)}
}

func (f *fakeBridge) Send(ctx context.Context, cmd host.Command) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, cmd)
	return nil
}

func (f *fakeBridge) Events() <-chan host.Event { return f.events }

func (f *fakeBridge) last() host.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sent[len(f.sent)-1]
}

type harness struct {
	s       *Session
	applied chan document.State
	done    chan error
}

func start(t *testing.T, b host.Bridge) *harness {
	t.Helper()
	h := &harness{applied: make(chan document.State, 8), done: make(chan error, 1)}
	h.s = New(document.New(), b, WithEventHook(func(_ host.Event, st document.State) {
		h.applied <- st
	}))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { h.done <- h.s.Run(ctx) }()
	return h
}

func (h *harness) wait(t *testing.T) document.State {
	t.Helper()
	select {
	case st := <-h.applied:
		return st
	case <-time.After(5 * time.Second):
		t.Fatal("event not applied")
	}
	return document.State{}
}

func setInt(path string, v int64) document.Mutator {
	return func(tree *ir.Node) error {
		tree.Set(ir.MustPath(path), ir.FromInt(v))
		return nil
	}
}

func TestFilesystemSession(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "app.toml")
	if err := os.WriteFile(p, []byte("a = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	fs := fshost.New(fshost.WithDir(dir))
	h := start(t, fs)
	ctx := context.Background()

	if err := h.s.Open(ctx, p); err != nil {
		t.Fatal(err)
	}
	st := h.wait(t)
	if st.Name != "app" || st.Dirty || st.Len != 1 || st.Status != "Loaded: app.toml" {
		t.Fatalf("after open: %+v", st)
	}

	if err := h.s.Commit(ctx, setInt("b", 2)); err != nil {
		t.Fatal(err)
	}
	if st, _ = h.s.State(ctx); !st.Dirty || !st.CanUndo {
		t.Fatalf("after edit: %+v", st)
	}

	if err := h.s.Save(ctx); err != nil {
		t.Fatal(err)
	}
	st = h.wait(t)
	if st.Dirty || st.Status != "Saved: app.toml" {
		t.Fatalf("after save: %+v", st)
	}
	got, _ := os.ReadFile(p)
	if string(got) != "a = 1\nb = 2\n" {
		t.Errorf("file holds %q", got)
	}

	other := filepath.Join(dir, "out", "renamed.toml")
	if err := h.s.SaveAs(ctx, other); err != nil {
		t.Fatal(err)
	}
	if st = h.wait(t); st.Name != "renamed" {
		t.Errorf("save as did not rename: %+v", st)
	}

	if err := h.s.LoadRaw(ctx, "x = true\n", "up.toml"); err != nil {
		t.Fatal(err)
	}
	if st = h.wait(t); st.Name != "up" || st.CanUndo {
		t.Errorf("after load raw: %+v", st)
	}

	fs.Close()
	select {
	case err := <-h.done:
		if err != nil {
			t.Errorf("run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("run did not stop")
	}
	if err := h.s.Do(ctx, func(*document.Document) {}); !errors.Is(err, ErrStopped) {
		t.Errorf("do after stop: %v", err)
	}
}

func TestSaveWhileEditing(t *testing.T) {
	fb := newFake()
	h := start(t, fb)
	ctx := context.Background()
	h.s.Commit(ctx, setInt("a", 1))
	if err := h.s.Save(ctx); err != nil {
		t.Fatal(err)
	}
	cmd := fb.last()
	if cmd.Type != host.Save || cmd.Payload.Content != "a = 1\n" || cmd.Payload.Name != document.DefaultName {
		t.Fatalf("sent %+v", cmd)
	}
	h.s.Commit(ctx, setInt("b", 2))
	fb.events <- host.Event{Kind: host.Saved, Path: "/x/config.toml", Text: cmd.Payload.Content, Status: "Saved: config.toml"}
	if st := h.wait(t); !st.Dirty {
		t.Errorf("edit made during the save was acknowledged: %+v", st)
	}
}

func TestBadLoad(t *testing.T) {
	fb := newFake()
	h := start(t, fb)
	ctx := context.Background()
	h.s.Commit(ctx, setInt("keep", 1))
	fb.events <- host.Event{Kind: host.Loaded, Name: "bad.toml", Text: "a = \n", Status: "Loaded: bad.toml"}
	st := h.wait(t)
	if !strings.HasPrefix(st.Status, "Error parsing TOML") || st.Name != document.DefaultName || !st.CanUndo {
		t.Errorf("after bad load: %+v", st)
	}
	fb.events <- host.StatusEvent("Unknown command: x")
	if st = h.wait(t); document.ClassifyStatus(st.Status) != document.StatusErr {
		t.Errorf("status %q", st.Status)
	}
}

func TestSaveUnencodable(t *testing.T) {
	fb := newFake()
	h := start(t, fb)
	ctx := context.Background()
	h.s.Commit(ctx, func(tree *ir.Node) error {
		tree.Set(ir.MustPath("n"), ir.Null())
		return nil
	})
	if err := h.s.Save(ctx); err == nil {
		t.Fatal("expected an encoding error")
	}
	st, _ := h.s.State(ctx)
	if !strings.HasPrefix(st.Status, "Error saving") {
		t.Errorf("status %q", st.Status)
	}
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if len(fb.sent) != 0 {
		t.Errorf("sent %+v", fb.sent)
	}
}
