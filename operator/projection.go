package operator

import (
	"github.com/relq/relq/ast"
	"github.com/relq/relq/parser"
	"github.com/relq/relq/record"
	"github.com/relq/relq/schema"
	"github.com/relq/relq/value"
)

// ProjectionItem names one output attribute and the arithmetic
// expression text that computes it.
type ProjectionItem struct {
	Name string
	Expr string
}

type projectionField struct {
	tree  *ast.Tree
	binds []binding
}

// Projection wraps a sub-operator and an ordered output-attribute ->
// arithmetic-expression mapping (§4.4.4). Output schema has exactly
// those attributes, in order; duplicate output names fail with
// relerr.DuplicateAttribute.
type Projection struct {
	sub       Operator
	outSchema *schema.Schema
	fields    []projectionField
}

// NewProjection parses each item's expression against sub's output
// schema.
func NewProjection(sub Operator, items []ProjectionItem) (*Projection, error) {
	b := schema.NewBuilder()
	fields := make([]projectionField, len(items))
	for i, item := range items {
		if err := b.Attribute(item.Name); err != nil {
			return nil, err
		}
		tree, err := parser.ParseArithmetic(item.Expr)
		if err != nil {
			return nil, err
		}
		binds, err := resolveBindings(tree.Vars, sub.Schema())
		if err != nil {
			return nil, err
		}
		fields[i] = projectionField{tree: tree, binds: binds}
	}
	return &Projection{sub: sub, outSchema: b.Build(), fields: fields}, nil
}

func (p *Projection) Schema() *schema.Schema { return p.outSchema }

func (p *Projection) Stream() Next {
	next := p.sub.Stream()
	return func() (record.Record, bool, error) {
		r, ok, err := next()
		if err != nil {
			return record.Record{}, false, err
		}
		if !ok {
			return record.Record{}, false, nil
		}
		vals := make([]value.Value, len(p.fields))
		for i, f := range p.fields {
			bindRecord(f.binds, r)
			v, err := f.tree.Evaluate()
			if err != nil {
				return record.Record{}, false, err
			}
			vals[i] = v
		}
		out, err := record.New(p.outSchema, vals...)
		if err != nil {
			return record.Record{}, false, err
		}
		return out, true, nil
	}
}
