package debug

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/signadot/tomledit/encode"
	"github.com/signadot/tomledit/ir"
)

type debug struct {
	Commit  bool
	History bool
	Codec   bool
	Bridge  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Commit = boolEnv("TOMLEDIT_DEBUG_COMMIT")
	d.History = boolEnv("TOMLEDIT_DEBUG_HISTORY")
	d.Codec = boolEnv("TOMLEDIT_DEBUG_CODEC")
	d.Bridge = boolEnv("TOMLEDIT_DEBUG_BRIDGE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Commit() bool {
	return d.Commit
}
func History() bool {
	return d.History
}
func Codec() bool {
	return d.Codec
}
func Bridge() bool {
	return d.Bridge
}

// Logf writes a debug line to stderr. *ir.Node arguments are rendered as
// TOML, or as JSON when they are not tables.
func Logf(f string, args ...any) {
	for i, arg := range args {
		n, ok := arg.(*ir.Node)
		if !ok {
			continue
		}
		args[i] = render(n)
	}
	msg := fmt.Sprintf(f, args...)
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	os.Stderr.WriteString(msg)
}

func render(n *ir.Node) string {
	if n == nil {
		return "<nil>"
	}
	buf := bytes.NewBuffer(nil)
	if n.Type == ir.TableType {
		if err := encode.Encode(n, buf, encode.OmitNulls(true)); err == nil {
			return strings.TrimSpace(buf.String())
		}
	}
	j, err := n.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("<%s: %v>", n.Type, err)
	}
	return string(j)
}
