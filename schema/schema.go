// Package schema implements the ordered attribute-name-to-index mapping
// every Record, Table and operator in the pipeline is anchored to.
package schema

import (
	"github.com/relq/relq/relerr"
)

// Schema is an ordered mapping from attribute name to its 0-based
// positional index (insertion order), plus an ordered primary-key
// attribute list (possibly empty). Schemas are built once with a Builder
// and frozen before any Record is constructed against them.
type Schema struct {
	attrs   []string
	index   map[string]int
	keyCols []string
}

// Builder incrementally constructs a Schema.
type Builder struct {
	s *Schema
}

// NewBuilder starts an empty schema under construction.
func NewBuilder() *Builder {
	return &Builder{s: &Schema{index: make(map[string]int)}}
}

// Attribute appends an attribute to the schema under construction. Fails
// with relerr.DuplicateAttribute if the name already exists.
func (b *Builder) Attribute(name string) error {
	if _, exists := b.s.index[name]; exists {
		return relerr.DuplicateAttribute.New(name)
	}
	b.s.index[name] = len(b.s.attrs)
	b.s.attrs = append(b.s.attrs, name)
	return nil
}

// Key sets the primary-key attribute list. Fails with
// relerr.UnboundVariable if any named attribute does not exist in the
// schema under construction (the key columns must be declared first).
func (b *Builder) Key(names ...string) error {
	for _, n := range names {
		if _, ok := b.s.index[n]; !ok {
			return relerr.UnboundVariable.New(n)
		}
	}
	b.s.keyCols = append([]string(nil), names...)
	return nil
}

// Build freezes and returns the constructed Schema.
func (b *Builder) Build() *Schema {
	s := &Schema{
		attrs:   append([]string(nil), b.s.attrs...),
		index:   make(map[string]int, len(b.s.index)),
		keyCols: append([]string(nil), b.s.keyCols...),
	}
	for name, i := range b.s.index {
		s.index[name] = i
	}
	return s
}

// Len returns the number of attributes in the schema.
func (s *Schema) Len() int { return len(s.attrs) }

// Attributes returns the attribute names in schema order. The returned
// slice must not be mutated by callers.
func (s *Schema) Attributes() []string { return s.attrs }

// KeyAttributes returns the primary-key attribute names in key order. The
// returned slice must not be mutated by callers.
func (s *Schema) KeyAttributes() []string { return s.keyCols }

// HasKey reports whether the schema declares a non-empty primary key.
func (s *Schema) HasKey() bool { return len(s.keyCols) > 0 }

// IndexOf returns the 0-based position of name, or -1 if it is not part of
// the schema.
func (s *Schema) IndexOf(name string) int {
	if i, ok := s.index[name]; ok {
		return i
	}
	return -1
}

// Has reports whether name is an attribute of the schema.
func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// KeyIndexes returns the positional indexes of the key attributes, in key
// order. Precondition: HasKey().
func (s *Schema) KeyIndexes() []int {
	idx := make([]int, len(s.keyCols))
	for i, name := range s.keyCols {
		idx[i] = s.index[name]
	}
	return idx
}

// CommonAttributes returns the attribute names present in both s and other,
// in s's order — the "common attribute set" natural join matches on.
func (s *Schema) CommonAttributes(other *Schema) []string {
	var common []string
	for _, a := range s.attrs {
		if other.Has(a) {
			common = append(common, a)
		}
	}
	return common
}

// IsSupersetOf reports whether every name in names is an attribute of s.
func (s *Schema) IsSupersetOf(names []string) bool {
	for _, n := range names {
		if !s.Has(n) {
			return false
		}
	}
	return true
}

// Combine builds the output schema of a natural join: every attribute of
// left, then every attribute of right that left does not already contain,
// preserving right's internal order among those (§4.4.2). The combined
// schema carries no primary key of its own — joins are not re-keyed.
func Combine(left, right *Schema) *Schema {
	b := NewBuilder()
	for _, a := range left.attrs {
		_ = b.Attribute(a) // left's names are already unique
	}
	for _, a := range right.attrs {
		if !left.Has(a) {
			_ = b.Attribute(a)
		}
	}
	return b.Build()
}
