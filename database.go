// Package relq is the embedded relational query engine's external
// surface (§6): a Database holds named Tables, built with a fluent
// SchemaBuilder, and queried with select/select_group_by query strings
// compiled by the compiler package into an operator.Operator pipeline.
package relq

import (
	"strings"
	"sync"

	"github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"

	"github.com/relq/relq/compiler"
	"github.com/relq/relq/operator"
	"github.com/relq/relq/record"
	"github.com/relq/relq/relerr"
	"github.com/relq/relq/rlog"
	"github.com/relq/relq/schema"
	"github.com/relq/relq/table"
)

// Database holds a set of named Tables (§6). Safe for concurrent table
// registration and lookup; the tables themselves follow §5's read-during-
// query-execution contract.
type Database struct {
	name string

	mu     sync.RWMutex
	tables map[string]*table.Table
}

// NewDatabase constructs an empty database named name.
func NewDatabase(name string) *Database {
	return &Database{name: name, tables: make(map[string]*table.Table)}
}

// Name returns the database's name.
func (d *Database) Name() string { return d.name }

// Table retrieves a previously created table by name, or nil if absent.
func (d *Database) Table(name string) *table.Table {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.tables[name]
}

// TableBuilder is the fluent SchemaBuilder of §6: Database.create_table
// returns one, attribute/key calls shape the schema, and Build registers
// the finished table on the owning Database.
type TableBuilder struct {
	db   *Database
	name string
	b    *schema.Builder
}

// CreateTable starts building a new table named name on d. The table is
// not registered on d until Build is called.
func (d *Database) CreateTable(name string) *TableBuilder {
	return &TableBuilder{db: d, name: name, b: schema.NewBuilder()}
}

// Attribute appends an attribute to the table under construction. Fails
// with relerr.DuplicateAttribute on a repeated name.
func (tb *TableBuilder) Attribute(name string) error {
	return tb.b.Attribute(name)
}

// Key sets the table's primary-key attribute list. Fails with
// relerr.UnboundVariable if a named attribute was not declared first.
func (tb *TableBuilder) Key(names ...string) error {
	return tb.b.Key(names...)
}

// Build freezes the schema, constructs the Table, registers it on the
// owning Database, and returns it.
func (tb *TableBuilder) Build() *table.Table {
	t := table.New(tb.name, tb.b.Build())
	tb.db.mu.Lock()
	tb.db.tables[tb.name] = t
	tb.db.mu.Unlock()
	return t
}

// Result is the lazy record sequence a select/select_group_by call
// returns (§6). It wraps the compiled operator's pull iterator.
type Result struct {
	schema *schema.Schema
	next   operator.Next
}

// Schema returns the output schema of the query that produced r.
func (r *Result) Schema() *schema.Schema { return r.schema }

// Next pulls the next record. ok is false once the sequence is
// exhausted; err stops the sequence immediately (§7's propagation
// policy — Selection swallows per-record errors internally, Projection
// and Aggregation surface them here).
func (r *Result) Next() (record.Record, bool, error) {
	return r.next()
}

// All drains the sequence into a slice, stopping at the first error.
func (r *Result) All() ([]record.Record, error) {
	var out []record.Record
	for {
		rec, ok, err := r.Next()
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, rec)
	}
}

func newResult(op operator.Operator) *Result {
	return &Result{schema: op.Schema(), next: op.Stream()}
}

// Select compiles and runs projection over tables with no predicate
// (§6's two-argument select).
func (d *Database) Select(projection, tables string) (*Result, error) {
	return d.selectWithGroup(projection, tables, "", "")
}

// SelectWhere compiles and runs projection over tables, filtering by
// predicate (§6's three-argument select).
func (d *Database) SelectWhere(projection, tables, predicate string) (*Result, error) {
	return d.selectWithGroup(projection, tables, predicate, "")
}

// SelectGroupBy compiles and runs projection over tables with no
// predicate, grouped by grouping (§6's select_group_by without a
// predicate).
func (d *Database) SelectGroupBy(projection, tables, grouping string) (*Result, error) {
	return d.selectWithGroup(projection, tables, "", grouping)
}

// SelectGroupByWhere compiles and runs projection over tables, filtered
// by predicate and grouped by grouping (§6's four-argument
// select_group_by).
func (d *Database) SelectGroupByWhere(projection, tables, predicate, grouping string) (*Result, error) {
	return d.selectWithGroup(projection, tables, predicate, grouping)
}

func (d *Database) selectWithGroup(projection, tables, predicate, grouping string) (*Result, error) {
	if strings.TrimSpace(tables) == "" {
		return nil, relerr.Parsing.New("empty table list")
	}
	op, err := compiler.Compile(d, compiler.Query{
		Projection: projection,
		Tables:     tables,
		Predicate:  predicate,
		Grouping:   grouping,
	})
	if err != nil {
		rlog.Logger().WithError(err).Debug("relq: query compilation failed")
		return nil, err
	}
	return newResult(op), nil
}

// SetLogger installs the structured logger used for the engine's Debug
// and Warn diagnostics (table inserts, dropped Selection records, failed
// compilations). Passing nil restores the default.
func SetLogger(l logrus.FieldLogger) {
	rlog.SetLogger(l)
}

// SetTracer installs the opentracing.Tracer used by operator.Trace-wrapped
// pipelines (§4.8). Passing nil restores the no-op tracer. Tracing is
// opt-in: select/select_group_by do not wrap their pipelines in Trace on
// their own.
func SetTracer(t opentracing.Tracer) {
	operator.SetTracer(t)
}
