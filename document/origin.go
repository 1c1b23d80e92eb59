package document

// Origin classifies a replacement of the canonical tree.
type Origin int

const (
	// LocalEdit is a commit of a mutator.
	LocalEdit Origin = iota
	// HistoryReplay is an undo or redo.
	HistoryReplay
	// ExternalLoad is a tree that arrived from outside the editor. It is the
	// only origin that resets history and marks the document clean.
	ExternalLoad
)

func (o Origin) String() string {
	switch o {
	case LocalEdit:
		return "local-edit"
	case HistoryReplay:
		return "history-replay"
	case ExternalLoad:
		return "external-load"
	default:
		return "unknown-origin"
	}
}

// Change is passed to observers after every tree replacement.
type Change struct {
	Origin Origin
	State  State
}
