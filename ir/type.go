package ir

import "fmt"

type Type int

const (
	NullType Type = iota
	BoolType
	IntType
	FloatType
	StringType
	ArrayType
	TableType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		NullType:   "Null",
		BoolType:   "Bool",
		IntType:    "Int",
		FloatType:  "Float",
		StringType: "String",
		ArrayType:  "Array",
		TableType:  "Table",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, ok := map[string]Type{
		"Null":   NullType,
		"Bool":   BoolType,
		"Int":    IntType,
		"Float":  FloatType,
		"String": StringType,
		"Array":  ArrayType,
		"Table":  TableType,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized type %q", d)
	}
	*t = tt
	return nil
}

func Types() []Type {
	return []Type{
		NullType,
		BoolType,
		IntType,
		FloatType,
		StringType,
		ArrayType,
		TableType,
	}
}

// IsLeaf reports whether values of type t hold no children.
func (t Type) IsLeaf() bool {
	switch t {
	case ArrayType, TableType:
		return false
	default:
		return true
	}
}

// IsNumber reports whether t is IntType or FloatType.
func (t Type) IsNumber() bool {
	return t == IntType || t == FloatType
}

// Name returns the short type name used by editors: str, int, float, bool,
// arr, dict or null.
func (t Type) Name() string {
	switch t {
	case NullType:
		return "null"
	case BoolType:
		return "bool"
	case IntType:
		return "int"
	case FloatType:
		return "float"
	case StringType:
		return "str"
	case ArrayType:
		return "arr"
	case TableType:
		return "dict"
	}
	return "str"
}

// Badge returns a compact label for t.
func (t Type) Badge() string {
	switch t {
	case NullType:
		return "∅"
	case FloatType:
		return "f"
	case ArrayType:
		return "[]"
	case TableType:
		return "{}"
	}
	return t.Name()
}
