package edit

import "errors"

var (
	ErrInvalidKey = errors.New("invalid key")
	ErrKeyExists  = errors.New("key exists")
	ErrNotFound   = errors.New("not found")
	ErrPatch      = errors.New("patch error")
)
