package encode

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/signadot/tomledit/ir"
)

func encodeJSON(node *ir.Node, w io.Writer) error {
	if node == nil {
		node = ir.Null()
	}
	d, err := node.MarshalJSON()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	buf := bytes.NewBuffer(nil)
	if err := json.Indent(buf, d, "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err = w.Write(buf.Bytes())
	return err
}

func encodeYAML(node *ir.Node, w io.Writer) error {
	if node == nil {
		node = ir.Null()
	}
	d, err := yaml.Marshal(ToYAML(node))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	_, err = w.Write(d)
	return err
}

// ToYAML converts node into values go-yaml marshals deterministically:
// tables become yaml.MapSlice with sorted keys.
func ToYAML(node *ir.Node) any {
	switch node.Type {
	case ir.TableType:
		res := make(yaml.MapSlice, 0, len(node.Fields))
		for _, k := range node.Keys() {
			v, _ := node.Field(k)
			res = append(res, yaml.MapItem{Key: k, Value: ToYAML(v)})
		}
		return res
	case ir.ArrayType:
		res := make([]any, len(node.Values))
		for i, v := range node.Values {
			res[i] = ToYAML(v)
		}
		return res
	}
	return ir.ToAny(node)
}
