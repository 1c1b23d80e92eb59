// Package fshost runs host commands against the local filesystem.
package fshost

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/signadot/tomledit/debug"
	"github.com/signadot/tomledit/document"
	"github.com/signadot/tomledit/host"
)

var ErrClosed = errors.New("host closed")

// Host remembers the last path it read or wrote; a save without a path
// goes there, or to <name>.toml in its directory.
type Host struct {
	mu       sync.Mutex
	dir      string
	lastPath string
	events   chan host.Event
	closed   bool
	log      *slog.Logger
}

type Option func(*Host)

// WithDir sets the directory for saves with no known path.
func WithDir(dir string) Option {
	return func(h *Host) { h.dir = dir }
}

func WithLogger(l *slog.Logger) Option {
	return func(h *Host) { h.log = l }
}

// WithBuffer sets the capacity of the event channel.
func WithBuffer(n int) Option {
	return func(h *Host) { h.events = make(chan host.Event, n) }
}

func New(opts ...Option) *Host {
	h := &Host{
		dir:    ".",
		events: make(chan host.Event, 16),
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Send runs cmd and queues the resulting events.
func (h *Host) Send(ctx context.Context, cmd host.Command) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrClosed
	}
	for _, ev := range h.handle(cmd) {
		select {
		case h.events <- ev:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (h *Host) Events() <-chan host.Event {
	return h.events
}

func (h *Host) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.closed = true
	close(h.events)
	return nil
}

// Handle runs cmd and returns its events instead of queueing them.
func (h *Host) Handle(cmd host.Command) []host.Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.handle(cmd)
}

func (h *Host) LastPath() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastPath
}

func (h *Host) handle(cmd host.Command) []host.Event {
	if debug.Bridge() {
		debug.Logf("fshost %s path=%q name=%q (%d bytes)\n", cmd.Type, cmd.Payload.Path, cmd.Payload.Name, len(cmd.Payload.Content))
	}
	var ev host.Event
	switch cmd.Type {
	case host.Open:
		ev = h.open(cmd.Payload.Path)
	case host.LoadRaw:
		ev = h.loadRaw(cmd.Payload.Content, cmd.Payload.Name)
	case host.Save:
		ev = h.save(cmd.Payload.Content, cmd.Payload.Name)
	case host.SaveAs:
		ev = h.saveAs(cmd.Payload.Path, cmd.Payload.Content)
	case "":
		return nil
	default:
		ev = host.StatusEvent(fmt.Sprintf("Unknown command: %s", cmd.Type))
	}
	h.log.Info(string(cmd.Type), "status", ev.Status, "path", ev.Path)
	return []host.Event{ev}
}

func (h *Host) open(path string) host.Event {
	if path == "" {
		return host.StatusEvent("No path specified.")
	}
	p := expand(path)
	d, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return host.StatusEvent(fmt.Sprintf("File not found: %s", p))
	}
	if err != nil {
		return host.StatusEvent(fmt.Sprintf("Error loading TOML: %v", err))
	}
	h.lastPath = p
	base := filepath.Base(p)
	return host.Event{
		Kind:   host.Loaded,
		Name:   base,
		Path:   p,
		Text:   string(d),
		Status: fmt.Sprintf("Loaded: %s", base),
	}
}

func (h *Host) loadRaw(content, name string) host.Event {
	name = strings.TrimSpace(name)
	label := name
	if label == "" {
		label = "file"
	}
	// no absolute path comes with raw text; later saves go to the
	// directory under the suggested name.
	h.lastPath = ""
	if name != "" {
		h.lastPath = filepath.Join(h.dir, filepath.Base(name))
	}
	return host.Event{
		Kind:   host.Loaded,
		Name:   name,
		Text:   content,
		Status: fmt.Sprintf("Loaded: %s", label),
	}
}

func (h *Host) save(content, name string) host.Event {
	p := h.lastPath
	if p == "" {
		name = strings.TrimSpace(name)
		if name == "" {
			name = document.DefaultName
		}
		p = filepath.Join(h.dir, name+".toml")
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		return host.StatusEvent(fmt.Sprintf("Error saving: %v", err))
	}
	h.lastPath = p
	return host.Event{
		Kind:   host.Saved,
		Path:   p,
		Text:   content,
		Status: fmt.Sprintf("Saved: %s", filepath.Base(p)),
	}
}

func (h *Host) saveAs(path, content string) host.Event {
	if path == "" {
		return host.StatusEvent("No path specified.")
	}
	p := expand(path)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return host.StatusEvent(fmt.Sprintf("Error saving: %v", err))
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		return host.StatusEvent(fmt.Sprintf("Error saving: %v", err))
	}
	h.lastPath = p
	base := filepath.Base(p)
	return host.Event{
		Kind:   host.Saved,
		Name:   base,
		Path:   p,
		Text:   content,
		Status: fmt.Sprintf("Saved: %s", base),
	}
}

func expand(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
