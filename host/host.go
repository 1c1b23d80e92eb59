// Package host defines the boundary between a document session and the
// process that owns the file. A session sends commands over a Bridge and
// receives events back: loaded text, save acknowledgments, and status
// messages.
package host

import "context"

type CommandType string

const (
	Open    CommandType = "open"
	LoadRaw CommandType = "load_raw"
	Save    CommandType = "save"
	SaveAs  CommandType = "save_as"
)

type Payload struct {
	Path    string `json:"path,omitempty"`
	Name    string `json:"name,omitempty"`
	Content string `json:"content,omitempty"`
}

type Command struct {
	Type    CommandType `json:"type"`
	Payload Payload     `json:"payload"`
}

type EventKind string

const (
	// Loaded carries TOML text read from outside the session.
	Loaded EventKind = "loaded"
	// Saved acknowledges that Text was written to Path.
	Saved  EventKind = "saved"
	Status EventKind = "status"
)

// Event is a property change reported by the host. Name, when set, renames
// the document after its file.
type Event struct {
	Kind   EventKind `json:"kind"`
	Name   string    `json:"name,omitempty"`
	Path   string    `json:"path,omitempty"`
	Text   string    `json:"text,omitempty"`
	Status string    `json:"status,omitempty"`
}

func StatusEvent(s string) Event {
	return Event{Kind: Status, Status: s}
}

// Bridge is implemented by hosts. Events is closed when the host goes away.
type Bridge interface {
	Send(ctx context.Context, cmd Command) error
	Events() <-chan Event
}
