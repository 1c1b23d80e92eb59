package parse

import (
	"errors"
	"fmt"

	"github.com/signadot/tomledit/ir"
)

var (
	ErrParse       = errors.New("parse error")
	ErrUnsupported = errors.New("unsupported value")
)

// GapError reports a value that is valid input but has no IR representation.
type GapError struct {
	Path ir.Path
	What string
}

func (e *GapError) Error() string {
	if e.Path.IsRoot() {
		return fmt.Sprintf("%s: %s", ErrUnsupported, e.What)
	}
	return fmt.Sprintf("%s: %s: %s", ErrUnsupported, e.Path, e.What)
}

func (e *GapError) Unwrap() error {
	return ErrUnsupported
}
