package operator

import (
	"github.com/relq/relq/record"
	"github.com/relq/relq/schema"
	"github.com/relq/relq/table"
)

// NaturalJoin wraps a left sub-operator and a right Table (§4.4.2). The
// output schema is every attribute of left, then every attribute of
// right not already in left. For each left record it asks the right
// table for matches on the common attribute set, via the fast path (a
// single key-tuple lookup) when the common attributes cover right's
// primary key, or the slow path (a full scan) otherwise.
type NaturalJoin struct {
	left      Operator
	right     *table.Table
	outSchema *schema.Schema
	common    []string
	fastPath  bool
}

// NewNaturalJoin constructs a NaturalJoin of left against right.
func NewNaturalJoin(left Operator, right *table.Table) *NaturalJoin {
	common := left.Schema().CommonAttributes(right.Schema())
	return &NaturalJoin{
		left:      left,
		right:     right,
		outSchema: schema.Combine(left.Schema(), right.Schema()),
		common:    common,
		fastPath:  coveredBy(right.Schema().KeyAttributes(), common),
	}
}

// coveredBy reports whether every element of need is present in have —
// "the common attributes are a superset of the right table's primary
// key" (§4.4.2).
func coveredBy(need, have []string) bool {
	set := make(map[string]bool, len(have))
	for _, h := range have {
		set[h] = true
	}
	for _, n := range need {
		if !set[n] {
			return false
		}
	}
	return true
}

func (j *NaturalJoin) Schema() *schema.Schema { return j.outSchema }

func (j *NaturalJoin) Stream() Next {
	leftNext := j.left.Stream()
	var pending []record.Record
	var pendingLeft record.Record
	idx := 0

	return func() (record.Record, bool, error) {
		for {
			if idx < len(pending) {
				r := pending[idx]
				idx++
				return record.Concat(j.outSchema, pendingLeft, r), true, nil
			}
			lr, ok, err := leftNext()
			if err != nil {
				return record.Record{}, false, err
			}
			if !ok {
				return record.Record{}, false, nil
			}
			pendingLeft = lr
			if j.fastPath {
				pending = j.right.LookupByKeyMatch(lr, j.common)
			} else {
				pending = j.right.MatchCommon(lr, j.common)
			}
			idx = 0
		}
	}
}
