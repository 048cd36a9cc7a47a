// Package table implements Table: a Schema plus a sorted index from
// key-tuple to Record (§3), backed by an in-memory B-tree so that full
// scans happen in key order and point lookups by key are O(log n) — the
// "B-tree-like index" exposing insert-if-absent, lookup-by-key, full scan
// in key order, and match-by-common-attributes described in spec.md §1.
package table

import (
	"fmt"
	"strings"

	"github.com/google/btree"
	"github.com/sirupsen/logrus"

	"github.com/relq/relq/record"
	"github.com/relq/relq/relerr"
	"github.com/relq/relq/rlog"
	"github.com/relq/relq/schema"
	"github.com/relq/relq/value"
)

// degree is the B-tree branching factor. It has no effect on observable
// behavior, only on the constant factor of scans/lookups.
const degree = 32

// row is the element type stored in the B-tree: the record together with
// its pre-computed key-tuple, so ordering never has to re-derive the key
// from the schema on every comparison.
type row struct {
	key []value.Value
	rec record.Record
}

func keyLess(a, b []value.Value) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if value.Less(a[i], b[i]) {
			return true
		}
		if value.Less(b[i], a[i]) {
			return false
		}
	}
	return len(a) < len(b)
}

// Table bundles a Schema with an ordered index of Records keyed by their
// primary-key tuple (§3). Tables are read-only during query execution;
// mutating a table while a Scan/NaturalJoin sequence over it is being
// consumed is undefined behavior (§5), matching the source.
type Table struct {
	name   string
	schema *schema.Schema
	index  *btree.BTreeG[row]
}

// New creates an empty Table named name over schema s.
func New(name string, s *schema.Schema) *Table {
	return &Table{
		name:   name,
		schema: s,
		index: btree.NewG(degree, func(a, b row) bool {
			return keyLess(a.key, b.key)
		}),
	}
}

// Name returns the table's name.
func (t *Table) Name() string { return t.name }

// Schema returns the table's schema.
func (t *Table) Schema() *schema.Schema { return t.schema }

// Len returns the number of records currently stored.
func (t *Table) Len() int { return t.index.Len() }

// Insert inserts r under its key-tuple. Fails with relerr.DuplicateKey if a
// record with that key-tuple already exists (insert-if-absent, §3/§6).
func (t *Table) Insert(r record.Record) error {
	k := r.Key()
	if _, exists := t.index.Get(row{key: k}); exists {
		return relerr.DuplicateKey.New(formatKey(k), t.name)
	}
	t.index.ReplaceOrInsert(row{key: k, rec: r})
	rlog.Logger().WithFields(logrus.Fields{"table": t.name, "rows": t.index.Len()}).Debug("table: inserted record")
	return nil
}

// InsertRecord constructs a Record over the table's schema from values
// and inserts it (§6's Table.insert_record). Fails with
// relerr.ArityMismatch on a wrong value count, relerr.DuplicateKey on a
// key-tuple conflict.
func (t *Table) InsertRecord(values ...value.Value) (record.Record, error) {
	r, err := record.New(t.schema, values...)
	if err != nil {
		return record.Record{}, err
	}
	if err := t.Insert(r); err != nil {
		return record.Record{}, err
	}
	return r, nil
}

// Find performs a point lookup by key-tuple (lookup-by-key). The second
// return is false if no record with that key exists.
func (t *Table) Find(key []value.Value) (record.Record, bool) {
	r, ok := t.index.Get(row{key: key})
	return r.rec, ok
}

// Scan invokes fn for every record in key order (full scan in key order).
// fn returning false stops the scan early.
func (t *Table) Scan(fn func(record.Record) bool) {
	t.index.Ascend(func(r row) bool {
		return fn(r.rec)
	})
}

// MatchCommon returns every record whose value at each attribute in
// commonAttrs equals probe's value for the same attribute
// (match-by-common-attributes, §3/§4.4.2's slow path). commonAttrs names
// attributes of both the probe's schema and this table's schema.
func (t *Table) MatchCommon(probe record.Record, commonAttrs []string) []record.Record {
	var out []record.Record
	t.index.Ascend(func(r row) bool {
		if rowMatches(r.rec, probe, commonAttrs) {
			out = append(out, r.rec)
		}
		return true
	})
	return out
}

// LookupByKeyMatch implements the NaturalJoin fast path (§4.4.2): when
// commonAttrs is a superset of this table's primary key, a single key-tuple
// lookup suffices. The key-tuple is built from probe's values for this
// table's key attributes (in key order), then the match is verified against
// every common attribute in case commonAttrs is a strict superset of the
// key. Returns at most one record.
func (t *Table) LookupByKeyMatch(probe record.Record, commonAttrs []string) []record.Record {
	keyAttrs := t.schema.KeyAttributes()
	key := make([]value.Value, len(keyAttrs))
	for i, name := range keyAttrs {
		v, err := probe.Attr(name)
		if err != nil {
			return nil
		}
		key[i] = v
	}
	rec, ok := t.Find(key)
	if !ok {
		return nil
	}
	if !rowMatches(rec, probe, commonAttrs) {
		return nil
	}
	return []record.Record{rec}
}

func rowMatches(rec, probe record.Record, commonAttrs []string) bool {
	for _, name := range commonAttrs {
		rv, err := rec.Attr(name)
		if err != nil {
			return false
		}
		pv, err := probe.Attr(name)
		if err != nil {
			return false
		}
		if !value.Equal(rv, pv) {
			return false
		}
	}
	return true
}

func formatKey(key []value.Value) string {
	parts := make([]string, len(key))
	for i, v := range key {
		parts[i] = v.String()
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
}
