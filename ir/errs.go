package ir

import (
	"errors"
)

var (
	ErrBadPath    = errors.New("bad path")
	ErrNotArray   = errors.New("not an array")
	ErrIndexRange = errors.New("index out of range")
)
