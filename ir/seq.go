package ir

import (
	"fmt"
	"slices"
)

// The sequence helpers below never modify their argument. Each returns a
// fresh array to be written back with Set.

func cloneArray(y *Node) (*Node, error) {
	if y == nil {
		return FromSlice(nil), nil
	}
	if y.Type != ArrayType {
		return nil, fmt.Errorf("%w: got %s", ErrNotArray, y.Type)
	}
	return y.Clone(), nil
}

func checkIndex(y *Node, i int) error {
	if i < 0 || i >= len(y.Values) {
		return fmt.Errorf("%w: %d (len %d)", ErrIndexRange, i, len(y.Values))
	}
	return nil
}

// Append returns y with v added at the end. A nil y is treated as empty.
func Append(y, v *Node) (*Node, error) {
	res, err := cloneArray(y)
	if err != nil {
		return nil, err
	}
	res.Values = append(res.Values, v.Clone())
	return res, nil
}

func RemoveAt(y *Node, i int) (*Node, error) {
	res, err := cloneArray(y)
	if err != nil {
		return nil, err
	}
	if err := checkIndex(res, i); err != nil {
		return nil, err
	}
	res.Values = slices.Delete(res.Values, i, i+1)
	return res, nil
}

func ReplaceAt(y *Node, i int, v *Node) (*Node, error) {
	res, err := cloneArray(y)
	if err != nil {
		return nil, err
	}
	if err := checkIndex(res, i); err != nil {
		return nil, err
	}
	res.Values[i] = v.Clone()
	return res, nil
}

// Swap exchanges elements i and j.
func Swap(y *Node, i, j int) (*Node, error) {
	res, err := cloneArray(y)
	if err != nil {
		return nil, err
	}
	if err := checkIndex(res, i); err != nil {
		return nil, err
	}
	if err := checkIndex(res, j); err != nil {
		return nil, err
	}
	res.Values[i], res.Values[j] = res.Values[j], res.Values[i]
	return res, nil
}

func MoveUp(y *Node, i int) (*Node, error) {
	return Swap(y, i-1, i)
}

func MoveDown(y *Node, i int) (*Node, error) {
	return Swap(y, i, i+1)
}
