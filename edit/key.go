package edit

import (
	"fmt"
	"strings"

	"github.com/signadot/tomledit/ir"
)

// ValidateKey trims k and rejects keys that cannot be a path segment.
func ValidateKey(k string) (string, error) {
	k = strings.TrimSpace(k)
	if k == "" {
		return "", fmt.Errorf("%w: empty key", ErrInvalidKey)
	}
	if strings.Contains(k, ir.Sep) {
		return "", fmt.Errorf("%w: %q contains %q", ErrInvalidKey, k, ir.Sep)
	}
	return k, nil
}
