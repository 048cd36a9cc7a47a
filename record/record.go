// Package record implements the fixed-length, schema-anchored value tuples
// that flow through the operator pipeline.
package record

import (
	"github.com/relq/relq/relerr"
	"github.com/relq/relq/schema"
	"github.com/relq/relq/value"
)

// Record is an immutable, fixed-length array of Values parallel to its
// schema's positional order.
type Record struct {
	schema *schema.Schema
	values []value.Value
}

// New constructs a Record anchored to s from vals, in schema order. Fails
// with relerr.ArityMismatch if len(vals) != s.Len().
func New(s *schema.Schema, vals ...value.Value) (Record, error) {
	if len(vals) != s.Len() {
		return Record{}, relerr.ArityMismatch.New(s.Len(), len(vals))
	}
	cp := append([]value.Value(nil), vals...)
	return Record{schema: s, values: cp}, nil
}

// Schema returns the record's governing schema.
func (r Record) Schema() *schema.Schema { return r.schema }

// Len returns the number of values in the record.
func (r Record) Len() int { return len(r.values) }

// At returns the value at positional index i.
func (r Record) At(i int) value.Value { return r.values[i] }

// Attr returns the value of the named attribute. Fails with
// relerr.UnboundVariable if name is not part of the record's schema.
func (r Record) Attr(name string) (value.Value, error) {
	i := r.schema.IndexOf(name)
	if i < 0 {
		return value.Value{}, relerr.UnboundVariable.New(name)
	}
	return r.values[i], nil
}

// Key projects the record onto its schema's key positions, in key order —
// the "key-tuple" used by Table's index.
func (r Record) Key() []value.Value {
	idx := r.schema.KeyIndexes()
	key := make([]value.Value, len(idx))
	for i, pos := range idx {
		key[i] = r.values[pos]
	}
	return key
}

// Values returns the record's values in schema order. The returned slice
// must not be mutated by callers.
func (r Record) Values() []value.Value { return r.values }

// Concat concatenates left and right into a record over outSchema,
// preferring left's value for any attribute left's schema holds and
// right's value otherwise — the natural join combination rule of §4.4.2.
func Concat(outSchema *schema.Schema, left, right Record) Record {
	vals := make([]value.Value, outSchema.Len())
	for i, name := range outSchema.Attributes() {
		if j := left.schema.IndexOf(name); j >= 0 {
			vals[i] = left.values[j]
			continue
		}
		j := right.schema.IndexOf(name)
		vals[i] = right.values[j]
	}
	return Record{schema: outSchema, values: vals}
}
