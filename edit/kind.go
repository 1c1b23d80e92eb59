package edit

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/signadot/tomledit/ir"
)

// Kind is the type a user picks when adding a value.
type Kind int

const (
	String Kind = iota
	Number
	Boolean
	Color
	Array
	Table
)

var kindNames = []string{"string", "number", "boolean", "color", "array", "table"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

func ParseKind(s string) (Kind, error) {
	for i, n := range kindNames {
		if strings.EqualFold(s, n) {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown kind %q", s)
}

// Coerce converts raw input to a value of kind k. It never fails: input
// that does not fit falls back to the kind's zero value.
func (k Kind) Coerce(raw string) *ir.Node {
	switch k {
	case Table:
		return ir.NewTable()
	case Array:
		return ir.FromSlice(nil)
	case Boolean:
		return ir.FromBool(strings.ToLower(strings.TrimSpace(raw)) == "true")
	case Number:
		return ParseNumber(raw)
	case Color:
		return ir.FromString(ParseColor(raw))
	default:
		return ir.FromString(raw)
	}
}

// KindOf returns the kind an editor would use for n.
func KindOf(key string, n *ir.Node) Kind {
	switch n.Type {
	case ir.BoolType:
		return Boolean
	case ir.IntType, ir.FloatType:
		return Number
	case ir.ArrayType:
		return Array
	case ir.TableType:
		return Table
	case ir.StringType:
		if IsHexColor(n.String) || strings.Contains(strings.ToLower(key), "color") {
			return Color
		}
	}
	return String
}

// ParseNumber reads an integer if raw is one and a float otherwise.
// Unparsable and non-finite input gives 0.
func ParseNumber(raw string) *ir.Node {
	raw = strings.TrimSpace(raw)
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return ir.FromInt(i)
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return ir.FromInt(0)
	}
	return ir.FromFloat(f)
}

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

func IsHexColor(s string) bool {
	return hexColor.MatchString(s)
}

// ParseColor returns raw trimmed if it is a #RRGGBB color and #000000
// otherwise.
func ParseColor(raw string) string {
	raw = strings.TrimSpace(raw)
	if IsHexColor(raw) {
		return raw
	}
	return "#000000"
}

// InferListKind picks the kind for new elements of seq from its first
// non-null element.
func InferListKind(seq *ir.Node) Kind {
	if seq == nil {
		return String
	}
	for _, v := range seq.Values {
		switch v.Type {
		case ir.NullType:
			continue
		case ir.BoolType:
			return Boolean
		case ir.IntType, ir.FloatType:
			return Number
		}
		return String
	}
	return String
}
