package edit

import (
	"fmt"
	"strconv"

	"github.com/signadot/tomledit/document"
	"github.com/signadot/tomledit/ir"
)

// Apply commits m to doc as one snapshot.
func Apply(doc *document.Document, m document.Mutator) error {
	return doc.Commit(m)
}

// Batch runs ms in order as a single mutator, so that they produce one
// snapshot. The first error aborts the whole batch.
func Batch(ms ...document.Mutator) document.Mutator {
	return func(tree *ir.Node) error {
		for _, m := range ms {
			if err := m(tree); err != nil {
				return err
			}
		}
		return nil
	}
}

func checkPath(p ir.Path) error {
	if p.IsRoot() {
		return fmt.Errorf("%w: empty path", ErrInvalidKey)
	}
	for _, seg := range p {
		if _, err := ValidateKey(seg); err != nil {
			return err
		}
	}
	return nil
}

// put stores v at p. When the parent of p is an array the element is
// replaced in place, so arrays along the path are never turned into tables.
func put(tree *ir.Node, p ir.Path, v *ir.Node) error {
	if p.IsRoot() {
		return nil
	}
	parent, ok := tree.Get(p.Parent())
	if !ok || parent.Type != ir.ArrayType {
		// the deepest existing ancestor must not be an array
		for j := len(p) - 1; j > 0; j-- {
			n, ok := tree.Get(p[:j])
			if !ok {
				continue
			}
			if n.Type == ir.ArrayType {
				return fmt.Errorf("%s: %w: %q is not an index", p, ir.ErrIndexRange, p[j])
			}
			break
		}
		tree.Set(p, v)
		return nil
	}
	i, err := strconv.Atoi(p.Last())
	if err != nil {
		return fmt.Errorf("%s: %w: %q is not an index", p, ir.ErrIndexRange, p.Last())
	}
	seq, err := ir.ReplaceAt(parent, i, v)
	if err != nil {
		return fmt.Errorf("%s: %w", p, err)
	}
	return put(tree, p.Parent(), seq)
}

// SetValue stores a copy of v at p, creating intermediate tables.
func SetValue(p ir.Path, v *ir.Node) document.Mutator {
	return func(tree *ir.Node) error {
		if err := checkPath(p); err != nil {
			return err
		}
		return put(tree, p, v.Clone())
	}
}

// SetRaw replaces the value at p with raw coerced to the kind of the value
// already there.
func SetRaw(p ir.Path, raw string) document.Mutator {
	return func(tree *ir.Node) error {
		cur, ok := tree.Get(p)
		if !ok || p.IsRoot() {
			return fmt.Errorf("%w: %s", ErrNotFound, p)
		}
		k := KindOf(p.Last(), cur)
		switch k {
		case Array, Table:
			return fmt.Errorf("cannot set %s %s from text", k, p)
		}
		return put(tree, p, k.Coerce(raw))
	}
}

// AddKey adds key under the table at base with a value of the given kind.
// An existing key is left alone and reported as ErrKeyExists.
func AddKey(base ir.Path, key string, kind Kind, raw string) document.Mutator {
	return func(tree *ir.Node) error {
		k, err := ValidateKey(key)
		if err != nil {
			return err
		}
		full := base.Child(k)
		if _, ok := tree.Get(full); ok {
			return fmt.Errorf("%w: %s", ErrKeyExists, full)
		}
		tree.Set(full, kind.Coerce(raw))
		return nil
	}
}

// AddInferred adds key under base with a value typed from raw: true and
// false become booleans, numbers become numbers and anything else a string.
func AddInferred(base ir.Path, key, raw string) document.Mutator {
	return func(tree *ir.Node) error {
		k, err := ValidateKey(key)
		if err != nil {
			return err
		}
		full := base.Child(k)
		if _, ok := tree.Get(full); ok {
			return fmt.Errorf("%w: %s", ErrKeyExists, full)
		}
		tree.Set(full, ir.Infer(raw))
		return nil
	}
}

// DeleteKey removes the entry at p. A missing entry is not an edit.
func DeleteKey(p ir.Path) document.Mutator {
	return func(tree *ir.Node) error {
		if p.IsRoot() || !tree.Delete(p) {
			return document.ErrNoChange
		}
		return nil
	}
}

// RenameKey gives the entry at p a new key in the same table, keeping its
// value.
func RenameKey(p ir.Path, newKey string) document.Mutator {
	return func(tree *ir.Node) error {
		k, err := ValidateKey(newKey)
		if err != nil {
			return err
		}
		if p.IsRoot() {
			return fmt.Errorf("%w: cannot rename the root", ErrInvalidKey)
		}
		parent, ok := tree.Get(p.Parent())
		if !ok || parent.Type != ir.TableType {
			return fmt.Errorf("%w: %s", ErrNotFound, p)
		}
		i := parent.Index(p.Last())
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrNotFound, p)
		}
		if k == p.Last() {
			return document.ErrNoChange
		}
		if parent.Index(k) >= 0 {
			return fmt.Errorf("%w: %s", ErrKeyExists, p.Parent().Child(k))
		}
		parent.Fields[i] = k
		return nil
	}
}
