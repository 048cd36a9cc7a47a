package operator

import (
	"github.com/mitchellh/hashstructure"

	"github.com/relq/relq/record"
	"github.com/relq/relq/relerr"
	"github.com/relq/relq/schema"
	"github.com/relq/relq/value"
)

// AggSpec names one aggregate computation: applying Func (one of count,
// sum, avg, min, max) to the Arg attribute of each input record,
// producing an output attribute named OutName.
type AggSpec struct {
	Func    string
	Arg     string
	OutName string
}

// hashableKey is the exported mirror of a group-key tuple that
// mitchellh/hashstructure can actually see: value.Value's fields are
// unexported, so hashing a []value.Value directly would hash to the same
// thing for every key regardless of content.
type hashableKey struct {
	Kind  int
	Int   int64
	Float float64
	Str   string
}

func toHashable(key []value.Value) []hashableKey {
	h := make([]hashableKey, len(key))
	for i, v := range key {
		h[i] = hashableKey{Kind: int(v.Kind()), Int: v.Int(), Float: v.Float(), Str: v.Raw()}
	}
	return h
}

func keysEqual(a, b []value.Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !value.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

type group struct {
	key  []value.Value
	accs []accumulator
}

// Aggregation wraps a sub-operator, an ordered list of grouping attribute
// names, and an ordered list of aggregate specifications (§4.4.5). Output
// schema is the grouping attributes followed by the aggregate output
// names. The full input is consumed and partitioned into groups keyed by
// the grouping-attribute-value tuple before any output record is
// produced; group emission order is insertion order of first occurrence,
// which is deterministic for a given input order.
type Aggregation struct {
	sub        Operator
	groupAttrs []string
	groupIdx   []int
	specs      []AggSpec
	argIdx     []int
	outSchema  *schema.Schema
}

// NewAggregation resolves groupAttrs and each spec's Arg against sub's
// output schema, failing with relerr.UnboundVariable if any name is
// absent.
func NewAggregation(sub Operator, groupAttrs []string, specs []AggSpec) (*Aggregation, error) {
	in := sub.Schema()
	groupIdx := make([]int, len(groupAttrs))
	b := schema.NewBuilder()
	for i, name := range groupAttrs {
		idx := in.IndexOf(name)
		if idx < 0 {
			return nil, relerr.UnboundVariable.New(name)
		}
		groupIdx[i] = idx
		if err := b.Attribute(name); err != nil {
			return nil, err
		}
	}
	argIdx := make([]int, len(specs))
	for i, spec := range specs {
		idx := in.IndexOf(spec.Arg)
		if idx < 0 {
			return nil, relerr.UnboundVariable.New(spec.Arg)
		}
		argIdx[i] = idx
		if err := b.Attribute(spec.OutName); err != nil {
			return nil, err
		}
	}
	// Validate every spec's function name up front so a malformed
	// aggregate fails at construction rather than mid-stream.
	for _, spec := range specs {
		if _, err := newAccumulator(spec.Func); err != nil {
			return nil, err
		}
	}
	return &Aggregation{
		sub:        sub,
		groupAttrs: groupAttrs,
		groupIdx:   groupIdx,
		specs:      specs,
		argIdx:     argIdx,
		outSchema:  b.Build(),
	}, nil
}

func (a *Aggregation) Schema() *schema.Schema { return a.outSchema }

func (a *Aggregation) newAccumulators() []accumulator {
	accs := make([]accumulator, len(a.specs))
	for i, spec := range a.specs {
		acc, _ := newAccumulator(spec.Func) // validated in NewAggregation
		accs[i] = acc
	}
	return accs
}

func (a *Aggregation) Stream() Next {
	next := a.sub.Stream()

	var order []*group
	buckets := make(map[uint64][]*group)

	noGrouping := len(a.groupIdx) == 0
	var ungrouped *group
	if noGrouping {
		// §4.4.5: an empty grouping list means exactly one output
		// record is produced even if the input has zero records, so
		// the single group must exist before any record arrives.
		ungrouped = &group{key: []value.Value{}, accs: a.newAccumulators()}
		order = append(order, ungrouped)
	}

	var streamErr error
	for {
		r, ok, err := next()
		if err != nil {
			streamErr = err
			break
		}
		if !ok {
			break
		}

		var g *group
		if noGrouping {
			g = ungrouped
		} else {
			keyVals := make([]value.Value, len(a.groupIdx))
			for i, idx := range a.groupIdx {
				keyVals[i] = r.At(idx)
			}
			h, herr := hashstructure.Hash(toHashable(keyVals), nil)
			if herr != nil {
				streamErr = herr
				break
			}
			for _, cand := range buckets[h] {
				if keysEqual(cand.key, keyVals) {
					g = cand
					break
				}
			}
			if g == nil {
				g = &group{key: keyVals, accs: a.newAccumulators()}
				buckets[h] = append(buckets[h], g)
				order = append(order, g)
			}
		}

		for i, idx := range a.argIdx {
			if err := g.accs[i].Update(r.At(idx)); err != nil {
				streamErr = err
				break
			}
		}
		if streamErr != nil {
			break
		}
	}

	if streamErr != nil {
		return func() (record.Record, bool, error) { return record.Record{}, false, streamErr }
	}

	i := 0
	return func() (record.Record, bool, error) {
		if i >= len(order) {
			return record.Record{}, false, nil
		}
		g := order[i]
		i++
		vals := make([]value.Value, 0, len(g.key)+len(a.specs))
		vals = append(vals, g.key...)
		for _, acc := range g.accs {
			vals = append(vals, acc.Result())
		}
		rec, err := record.New(a.outSchema, vals...)
		if err != nil {
			return record.Record{}, false, err
		}
		return rec, true, nil
	}
}
