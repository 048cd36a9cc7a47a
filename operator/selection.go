package operator

import (
	"github.com/sirupsen/logrus"

	"github.com/relq/relq/ast"
	"github.com/relq/relq/parser"
	"github.com/relq/relq/record"
	"github.com/relq/relq/relerr"
	"github.com/relq/relq/rlog"
	"github.com/relq/relq/schema"
)

// binding pairs a parsed expression's Variable leaf with the positional
// index it resolves to in the operator's input schema.
type binding struct {
	v   *ast.Variable
	idx int
}

func resolveBindings(vars []*ast.Variable, s *schema.Schema) ([]binding, error) {
	binds := make([]binding, len(vars))
	for i, v := range vars {
		idx := s.IndexOf(v.Name)
		if idx < 0 {
			return nil, relerr.UnboundVariable.New(v.Name)
		}
		binds[i] = binding{v: v, idx: idx}
	}
	return binds, nil
}

func bindRecord(binds []binding, r record.Record) {
	for _, b := range binds {
		b.v.Bind(r.At(b.idx))
	}
}

// Selection wraps a sub-operator and a predicate string (§4.4.3). The
// predicate is parsed once at construction against the sub-operator's
// output schema; output schema equals input schema. A record is yielded
// when the predicate evaluates true. Any error raised while binding or
// evaluating the predicate against a particular record is swallowed and
// the record is treated as not matched — the source drops offending
// records rather than aborting the whole query — but it is logged at
// Warn so the condition is still observable.
type Selection struct {
	sub   Operator
	tree  *ast.Tree
	binds []binding
}

// NewSelection parses predicate as a logical expression against sub's
// output schema. Fails with relerr.Parsing on a malformed predicate or
// relerr.UnboundVariable if the predicate references a name sub's schema
// doesn't have.
func NewSelection(sub Operator, predicate string) (*Selection, error) {
	tree, err := parser.ParseLogical(predicate)
	if err != nil {
		return nil, err
	}
	binds, err := resolveBindings(tree.Vars, sub.Schema())
	if err != nil {
		return nil, err
	}
	return &Selection{sub: sub, tree: tree, binds: binds}, nil
}

func (s *Selection) Schema() *schema.Schema { return s.sub.Schema() }

func (s *Selection) Stream() Next {
	next := s.sub.Stream()
	return func() (record.Record, bool, error) {
		for {
			r, ok, err := next()
			if err != nil {
				return record.Record{}, false, err
			}
			if !ok {
				return record.Record{}, false, nil
			}
			bindRecord(s.binds, r)
			match, evalErr := s.tree.EvaluateBool()
			if evalErr != nil {
				rlog.Logger().WithFields(logrus.Fields{"error": evalErr}).Warn("selection: dropping record on evaluation error")
				continue
			}
			if match {
				return r, true, nil
			}
		}
	}
}
