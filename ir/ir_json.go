package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
)

// MarshalJSON encodes y as a plain JSON value. Table keys are written in
// sorted order and floats always carry a fraction or exponent so that they
// decode back as floats.
func (y *Node) MarshalJSON() ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := writeJSON(buf, y); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (y *Node) UnmarshalJSON(d []byte) error {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	n, err := FromAny(v)
	if err != nil {
		return err
	}
	n.CloneTo(y)
	return nil
}

func writeJSON(buf *bytes.Buffer, y *Node) error {
	switch y.Type {
	case NullType:
		buf.WriteString("null")
	case BoolType:
		buf.WriteString(strconv.FormatBool(y.Bool))
	case IntType:
		buf.WriteString(strconv.FormatInt(y.Int64, 10))
	case FloatType:
		if math.IsInf(y.Float64, 0) || math.IsNaN(y.Float64) {
			return fmt.Errorf("cannot encode %v in json", y.Float64)
		}
		buf.WriteString(FormatFloat(y.Float64))
	case StringType:
		d, err := json.Marshal(y.String)
		if err != nil {
			return err
		}
		buf.Write(d)
	case ArrayType:
		buf.WriteByte('[')
		for i, v := range y.Values {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, v); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case TableType:
		buf.WriteByte('{')
		for i, k := range y.Keys() {
			if i > 0 {
				buf.WriteByte(',')
			}
			d, err := json.Marshal(k)
			if err != nil {
				return err
			}
			buf.Write(d)
			buf.WriteByte(':')
			v, _ := y.Field(k)
			if err := writeJSON(buf, v); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("unknown node type %d", y.Type)
	}
	return nil
}

// FormatFloat formats f in its shortest form, adding ".0" when the result
// would otherwise read as an integer.
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.ContainsAny(s, ".eEnN") {
		return s
	}
	return s + ".0"
}

// ToAny converts y to plain Go values: nil, bool, int64, float64, string,
// []any and map[string]any.
func ToAny(y *Node) any {
	switch y.Type {
	case BoolType:
		return y.Bool
	case IntType:
		return y.Int64
	case FloatType:
		return y.Float64
	case StringType:
		return y.String
	case ArrayType:
		res := make([]any, len(y.Values))
		for i, v := range y.Values {
			res[i] = ToAny(v)
		}
		return res
	case TableType:
		res := make(map[string]any, len(y.Fields))
		for i, f := range y.Fields {
			res[f] = ToAny(y.Values[i])
		}
		return res
	}
	return nil
}

// FromAny is the inverse of ToAny. It also accepts the other Go integer
// and float kinds and json.Number. Maps become tables with sorted keys.
func FromAny(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case *Node:
		return x.Clone(), nil
	case bool:
		return FromBool(x), nil
	case string:
		return FromString(x), nil
	case int:
		return FromInt(int64(x)), nil
	case int8:
		return FromInt(int64(x)), nil
	case int16:
		return FromInt(int64(x)), nil
	case int32:
		return FromInt(int64(x)), nil
	case int64:
		return FromInt(x), nil
	case uint:
		return fromUint(uint64(x))
	case uint8:
		return FromInt(int64(x)), nil
	case uint16:
		return FromInt(int64(x)), nil
	case uint32:
		return FromInt(int64(x)), nil
	case uint64:
		return fromUint(x)
	case float32:
		return FromFloat(float64(x)), nil
	case float64:
		return FromFloat(x), nil
	case json.Number:
		s := x.String()
		if !strings.ContainsAny(s, ".eE") {
			if i, err := x.Int64(); err == nil {
				return FromInt(i), nil
			}
		}
		f, err := x.Float64()
		if err != nil {
			return nil, err
		}
		return FromFloat(f), nil
	case []any:
		vs := make([]*Node, len(x))
		for i, e := range x {
			n, err := FromAny(e)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			vs[i] = n
		}
		return FromSlice(vs), nil
	case map[string]any:
		res := NewTable()
		for _, k := range slices.Sorted(maps.Keys(x)) {
			n, err := FromAny(x[k])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			res.Put(k, n)
		}
		return res, nil
	}
	return nil, fmt.Errorf("unsupported go type %T", v)
}

func fromUint(u uint64) (*Node, error) {
	if u > math.MaxInt64 {
		return nil, fmt.Errorf("integer %d overflows int64", u)
	}
	return FromInt(int64(u)), nil
}
