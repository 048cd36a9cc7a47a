package ast

import (
	"github.com/relq/relq/relerr"
	"github.com/relq/relq/value"
)

// Constant is a literal leaf: a numeric or string literal from the source
// text (§4.1).
type Constant struct {
	Value value.Value
}

func (c *Constant) Evaluate() (value.Value, error) { return c.Value, nil }

// Variable is a named leaf referring to an attribute of the record being
// evaluated against. One *Variable is shared by every occurrence of the
// same name within a single Tree (§3); Bind sets the value for the current
// record before Evaluate is called.
type Variable struct {
	Name  string
	bound bool
	value value.Value
}

// NewVariable constructs an unbound Variable leaf.
func NewVariable(name string) *Variable {
	return &Variable{Name: name}
}

// Bind sets the value this Variable evaluates to until the next Bind call.
func (v *Variable) Bind(val value.Value) {
	v.value = val
	v.bound = true
}

// Unbind clears the Variable's value, making Evaluate fail until the next
// Bind. The operators do not call it: they Bind every Variable of a tree
// before each evaluation.
func (v *Variable) Unbind() {
	v.bound = false
}

func (v *Variable) Evaluate() (value.Value, error) {
	if !v.bound {
		return value.Value{}, relerr.UnboundVariable.New(v.Name)
	}
	return v.value, nil
}

// Negate evaluates to the arithmetic negation of its operand (unary minus,
// §4.1/§4.2).
type Negate struct {
	Operand Node
}

func (n *Negate) Evaluate() (value.Value, error) {
	v, err := n.Operand.Evaluate()
	if err != nil {
		return value.Value{}, err
	}
	return value.Negate(v)
}

// ArithOp is one of the four arithmetic operators (§4.1).
type ArithOp = value.ArithOp

// BinaryArithmetic evaluates both operands and combines them with an
// arithmetic operator (+, -, *, /), promoting int/int to float when either
// operand requires it (§4.1).
type BinaryArithmetic struct {
	Op          ArithOp
	Left, Right Node
}

func (b *BinaryArithmetic) Evaluate() (value.Value, error) {
	l, err := b.Left.Evaluate()
	if err != nil {
		return value.Value{}, err
	}
	r, err := b.Right.Evaluate()
	if err != nil {
		return value.Value{}, err
	}
	return value.Arith(b.Op, l, r)
}

// CompareOp is one of the six comparison operators (§4.1).
type CompareOp = value.CompareOp

// BinaryComparison evaluates both operands and compares them, yielding a
// boolean-shaped Value (§4.1/§4.2).
type BinaryComparison struct {
	Op          CompareOp
	Left, Right Node
}

func (b *BinaryComparison) Evaluate() (value.Value, error) {
	l, err := b.Left.Evaluate()
	if err != nil {
		return value.Value{}, err
	}
	r, err := b.Right.Evaluate()
	if err != nil {
		return value.Value{}, err
	}
	result, err := value.Compare(b.Op, l, r)
	if err != nil {
		return value.Value{}, err
	}
	return boolValue(result), nil
}

// LogicalOp is AND or OR.
type LogicalOp int

const (
	And LogicalOp = iota
	Or
)

// BinaryLogical combines two boolean-shaped operands with AND/OR.
// Evaluation is eager: both operands are always evaluated, even when the
// operator's usual short-circuit would make the second one irrelevant —
// an explicit requirement of §3, since a discarded operand may still need
// to raise an evaluation error.
type BinaryLogical struct {
	Op          LogicalOp
	Left, Right Node
}

func (b *BinaryLogical) Evaluate() (value.Value, error) {
	lv, lerr := b.Left.Evaluate()
	rv, rerr := b.Right.Evaluate()
	if lerr != nil {
		return value.Value{}, lerr
	}
	if rerr != nil {
		return value.Value{}, rerr
	}
	l, err := AsBool(lv)
	if err != nil {
		return value.Value{}, err
	}
	r, err := AsBool(rv)
	if err != nil {
		return value.Value{}, err
	}
	if b.Op == And {
		return boolValue(l && r), nil
	}
	return boolValue(l || r), nil
}
