// Package operator implements the relational operator pipeline (§4.4):
// Scan, NaturalJoin, Selection, Projection and Aggregation, each exposing
// an eagerly computed output schema and a lazy, single-pass record
// sequence. Operators compose by wrapping one another; nothing in the
// pipeline prefetches, so a consumer that stops pulling simply leaves the
// rest of the sequence unconsumed (§5).
package operator

import (
	"github.com/relq/relq/record"
	"github.com/relq/relq/schema"
)

// Next pulls the next record from a sequence. The second return is false
// when the sequence is exhausted; a non-nil error aborts the sequence
// (the caller must stop pulling).
type Next func() (record.Record, bool, error)

// Operator is a node of the pipeline: its output schema is available
// immediately, and Stream starts a fresh, independent pull over its
// output every time it is called.
type Operator interface {
	Schema() *schema.Schema
	Stream() Next
}
