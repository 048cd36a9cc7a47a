// Package ast defines the expression sub-language's abstract syntax tree
// (§3, §4.2): a small tree of leaves and operations, evaluated against
// values bound into its Variable leaves.
//
// Every node kind evaluates to a value.Value. A "boolean" result (the
// output of BinaryComparison and BinaryLogical) is a value.Value holding
// the integer 0 or 1 — the grammar itself requires this, since a
// parenthesized logical sub-expression is a valid `primary` inside an
// arithmetic expression, so a comparison's result must be usable as an
// ordinary value rather than a separate Go type. AsBool interprets a Value
// in a boolean context and is where "both operands must be boolean" is
// enforced, at evaluation time rather than by the type system.
package ast

import (
	"github.com/relq/relq/relerr"
	"github.com/relq/relq/value"
)

// Node is a node of the expression tree.
type Node interface {
	// Evaluate computes the node's value.Value. Variable leaves must
	// already be bound (see Variable.Bind) or evaluation fails with
	// relerr.UnboundVariable.
	Evaluate() (value.Value, error)
}

// AsBool interprets v in a boolean context: integer 1 is true, integer 0
// is false, anything else is relerr.UnsupportedOperation — the runtime
// check behind "both operands must be boolean" (BinaryLogical, §3).
func AsBool(v value.Value) (bool, error) {
	if v.Kind() != value.Int || (v.Int() != 0 && v.Int() != 1) {
		return false, relerr.UnsupportedOperation.New("expected a boolean value, got " + v.String())
	}
	return v.Int() == 1, nil
}

func boolValue(b bool) value.Value {
	if b {
		return value.One
	}
	return value.Zero
}

// Tree is a compiled expression: its root Node plus the ordered,
// de-duplicated list of Variable leaves encountered while parsing it (§3) —
// later references to the same name reuse the same *Variable. The
// Evaluator uses this list to resolve names to schema positions once, then
// binds per record thereafter.
type Tree struct {
	Root Node
	Vars []*Variable
}

// Evaluate evaluates the tree's root node.
func (t *Tree) Evaluate() (value.Value, error) {
	return t.Root.Evaluate()
}

// EvaluateBool evaluates the tree's root node and interprets the result as
// a boolean — the result type of the parse-logical grammar entry point
// (§4.2/§4.3).
func (t *Tree) EvaluateBool() (bool, error) {
	v, err := t.Root.Evaluate()
	if err != nil {
		return false, err
	}
	return AsBool(v)
}
