package encode

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/signadot/tomledit/format"
	"github.com/signadot/tomledit/ir"
)

type EncState struct {
	format    format.Format
	omitNulls bool

	Color func(ir.Type, ColorAttr, string) string
}

var bareKey = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Encode writes node to w. In TOML format node must be a table.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	switch es.format {
	case format.JSONFormat:
		return encodeJSON(node, w)
	case format.YAMLFormat:
		return encodeYAML(node, w)
	}
	if node == nil || node.Type != ir.TableType {
		t := "nil"
		if node != nil {
			t = node.Type.String()
		}
		return fmt.Errorf("%w: top level must be a table, got %s", ErrEncoding, t)
	}
	sections := []string{}
	if err := es.table(ir.Path{}, node, &sections); err != nil {
		return err
	}
	if len(sections) == 0 {
		return nil
	}
	return writeString(w, strings.Join(sections, "\n\n")+"\n")
}

// Value renders a single non-table value as TOML. Only the color options
// apply.
func Value(v *ir.Node, opts ...EncodeOption) (string, error) {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	if v == nil || v.Type == ir.TableType || v.Type == ir.NullType {
		t := "nil"
		if v != nil {
			t = v.Type.String()
		}
		return "", fmt.Errorf("%w: %s is not a value", ErrEncoding, t)
	}
	return es.value(ir.Path{}, v)
}

func writeString(w io.Writer, s string) error {
	_, err := w.Write([]byte(s))
	return err
}

// table appends the section for t (header and non-table entries) and then
// the sections of its sub-tables in key order.
func (es *EncState) table(p ir.Path, t *ir.Node, sections *[]string) error {
	lines := []string{}
	if !p.IsRoot() {
		lines = append(lines, es.header(p))
	}
	subs := []string{}
	for _, k := range t.Keys() {
		if !utf8.ValidString(k) {
			return fmt.Errorf("%w: %s: key is not valid UTF-8", ErrEncoding, p.Child(k))
		}
		v, _ := t.Field(k)
		switch v.Type {
		case ir.TableType:
			subs = append(subs, k)
			continue
		case ir.NullType:
			if es.omitNulls {
				continue
			}
			return fmt.Errorf("%w: %s: null has no TOML representation", ErrEncoding, p.Child(k))
		}
		val, err := es.value(p.Child(k), v)
		if err != nil {
			return err
		}
		lines = append(lines, es.color(v.Type, FieldColor, Key(k))+es.color(v.Type, SepColor, " = ")+val)
	}
	if len(lines) != 0 {
		*sections = append(*sections, strings.Join(lines, "\n"))
	}
	for _, k := range subs {
		v, _ := t.Field(k)
		if err := es.table(p.Child(k), v, sections); err != nil {
			return err
		}
	}
	return nil
}

func (es *EncState) header(p ir.Path) string {
	keys := make([]string, len(p))
	for i, k := range p {
		keys[i] = Key(k)
	}
	return es.color(ir.TableType, SepColor, "[") +
		es.color(ir.TableType, HeaderColor, strings.Join(keys, ".")) +
		es.color(ir.TableType, SepColor, "]")
}

func (es *EncState) value(p ir.Path, v *ir.Node) (string, error) {
	switch v.Type {
	case ir.BoolType:
		return es.color(v.Type, ValueColor, strconv.FormatBool(v.Bool)), nil
	case ir.IntType:
		return es.color(v.Type, ValueColor, strconv.FormatInt(v.Int64, 10)), nil
	case ir.FloatType:
		return es.color(v.Type, ValueColor, Float(v.Float64)), nil
	case ir.StringType:
		if !utf8.ValidString(v.String) {
			return "", fmt.Errorf("%w: %s: string is not valid UTF-8", ErrEncoding, p)
		}
		return es.color(v.Type, ValueColor, Quote(v.String)), nil
	case ir.ArrayType:
		parts := make([]string, 0, len(v.Values))
		for i, e := range v.Values {
			ep := p.Child(strconv.Itoa(i))
			switch e.Type {
			case ir.NullType:
				if es.omitNulls {
					continue
				}
				return "", fmt.Errorf("%w: %s: null has no TOML representation", ErrEncoding, ep)
			case ir.TableType:
				return "", fmt.Errorf("%w: %s: tables inside arrays are not supported", ErrEncoding, ep)
			}
			s, err := es.value(ep, e)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		sep := es.color(ir.ArrayType, SepColor, ", ")
		return es.color(ir.ArrayType, SepColor, "[") + strings.Join(parts, sep) +
			es.color(ir.ArrayType, SepColor, "]"), nil
	}
	return "", fmt.Errorf("%w: %s: cannot encode %s as a value", ErrEncoding, p, v.Type)
}

func (es *EncState) color(t ir.Type, a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(t, a, s)
}

// Key renders k as a TOML key, quoting it unless it is a bare key.
func Key(k string) string {
	if bareKey.MatchString(k) {
		return k
	}
	return Quote(k)
}

// Float renders f as a TOML float. The result always reads back as a float.
func Float(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return ir.FormatFloat(f)
}

// Quote renders s as a TOML basic string. Invalid UTF-8 comes out as
// U+FFFD; Encode rejects such strings before quoting.
func Quote(s string) string {
	buf := bytes.NewBuffer(make([]byte, 0, len(s)+2))
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\b':
			buf.WriteString(`\b`)
		case '\t':
			buf.WriteString(`\t`)
		case '\n':
			buf.WriteString(`\n`)
		case '\f':
			buf.WriteString(`\f`)
		case '\r':
			buf.WriteString(`\r`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(buf, `\u%04X`, r)
				continue
			}
			buf.WriteRune(r)
		}
	}
	buf.WriteByte('"')
	return buf.String()
}
