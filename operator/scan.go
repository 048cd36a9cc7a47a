package operator

import (
	"github.com/relq/relq/record"
	"github.com/relq/relq/schema"
	"github.com/relq/relq/table"
)

// Scan wraps a Table (§4.4.1). Its output schema is the table's schema
// and its sequence yields records in the table's key order. Each call to
// Stream re-reads the table from the start, so a Scan can be consumed
// more than once.
type Scan struct {
	table *table.Table
}

// NewScan constructs a Scan over t.
func NewScan(t *table.Table) *Scan {
	return &Scan{table: t}
}

func (s *Scan) Schema() *schema.Schema { return s.table.Schema() }

func (s *Scan) Stream() Next {
	var recs []record.Record
	s.table.Scan(func(r record.Record) bool {
		recs = append(recs, r)
		return true
	})
	i := 0
	return func() (record.Record, bool, error) {
		if i >= len(recs) {
			return record.Record{}, false, nil
		}
		r := recs[i]
		i++
		return r, true, nil
	}
}
