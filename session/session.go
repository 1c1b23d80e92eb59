// Package session binds one document to one host bridge.
//
// Run is the only goroutine that touches the document. Host events and
// actions queued with Do are applied there one at a time. Open, LoadRaw,
// Save and SaveAs send commands from the caller's goroutine, so local edits
// keep flowing while a host command is outstanding.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/signadot/tomledit/debug"
	"github.com/signadot/tomledit/document"
	"github.com/signadot/tomledit/host"
	"github.com/signadot/tomledit/parse"
)

var ErrStopped = errors.New("session stopped")

type Session struct {
	doc     *document.Document
	bridge  host.Bridge
	actions chan func(*document.Document)
	stopped chan struct{}
	log     *slog.Logger
	onEvent func(host.Event, document.State)
}

type Option func(*Session)

func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithEventHook calls f after each host event is applied.
func WithEventHook(f func(host.Event, document.State)) Option {
	return func(s *Session) { s.onEvent = f }
}

func New(doc *document.Document, bridge host.Bridge, opts ...Option) *Session {
	s := &Session{
		doc:     doc,
		bridge:  bridge,
		actions: make(chan func(*document.Document)),
		stopped: make(chan struct{}),
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run applies events and actions until ctx is done or the bridge closes
// its event channel.
func (s *Session) Run(ctx context.Context) error {
	defer close(s.stopped)
	events := s.bridge.Events()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			s.apply(ev)
		case f := <-s.actions:
			open := s.drain(events)
			f(s.doc)
			if !open {
				return nil
			}
		}
	}
}

// drain applies the events already queued so that an action sees the
// effect of every command sent before it. It reports false once events is
// closed.
func (s *Session) drain(events <-chan host.Event) bool {
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return false
			}
			s.apply(ev)
		default:
			return true
		}
	}
}

func (s *Session) apply(ev host.Event) {
	if debug.Bridge() {
		debug.Logf("session event %s name=%q status=%q\n", ev.Kind, ev.Name, ev.Status)
	}
	d := s.doc
	switch ev.Kind {
	case host.Loaded:
		if err := d.LoadText(ev.Text, ev.Name); err != nil {
			s.log.Warn("load", "name", ev.Name, "error", err)
			break
		}
		d.SetStatus(ev.Status)
	case host.Saved:
		if ev.Name != "" {
			d.SetName(document.Stem(ev.Name))
		}
		tree, err := parse.ParseString(ev.Text)
		if err != nil {
			// the host wrote something other than our text.
			s.log.Warn("save acknowledgment", "path", ev.Path, "error", err)
			d.MarkSaved()
		} else {
			d.AckSave(tree)
		}
		d.SetStatus(ev.Status)
	case host.Status:
		d.SetStatus(ev.Status)
	default:
		s.log.Warn("unknown host event", "kind", ev.Kind)
		return
	}
	if s.onEvent != nil {
		s.onEvent(ev, d.State())
	}
}

// Do runs f on the session goroutine and waits for it to finish.
func (s *Session) Do(ctx context.Context, f func(*document.Document)) error {
	done := make(chan struct{})
	wrapped := func(d *document.Document) {
		defer close(done)
		f(d)
	}
	select {
	case s.actions <- wrapped:
	case <-s.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Commit is Do with a single document commit.
func (s *Session) Commit(ctx context.Context, m document.Mutator) error {
	var err error
	if derr := s.Do(ctx, func(d *document.Document) { err = d.Commit(m) }); derr != nil {
		return derr
	}
	return err
}

func (s *Session) State(ctx context.Context) (document.State, error) {
	var st document.State
	err := s.Do(ctx, func(d *document.Document) { st = d.State() })
	return st, err
}

func (s *Session) Open(ctx context.Context, path string) error {
	return s.bridge.Send(ctx, host.Command{Type: host.Open, Payload: host.Payload{Path: path}})
}

// LoadRaw hands text to the host as if it had been read from a file
// called name.
func (s *Session) LoadRaw(ctx context.Context, text, name string) error {
	return s.bridge.Send(ctx, host.Command{
		Type:    host.LoadRaw,
		Payload: host.Payload{Name: name, Content: text},
	})
}

func (s *Session) Save(ctx context.Context) error {
	return s.save(ctx, host.Save, "")
}

func (s *Session) SaveAs(ctx context.Context, path string) error {
	return s.save(ctx, host.SaveAs, path)
}

func (s *Session) save(ctx context.Context, t host.CommandType, path string) error {
	var (
		text, name string
		err        error
	)
	derr := s.Do(ctx, func(d *document.Document) {
		name = d.Name()
		text, err = d.Serialize()
		if err != nil {
			d.SetStatus(fmt.Sprintf("Error saving: %v", err))
		}
	})
	if derr != nil {
		return derr
	}
	if err != nil {
		return err
	}
	return s.bridge.Send(ctx, host.Command{
		Type:    t,
		Payload: host.Payload{Path: path, Name: name, Content: text},
	})
}
