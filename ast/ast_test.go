package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relq/relq/value"
)

func TestConstantEvaluate(t *testing.T) {
	c := &Constant{Value: value.NewInt(42)}
	v, err := c.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, int64(42), v.Int())
}

func TestVariableUnboundFails(t *testing.T) {
	v := NewVariable("budget")
	_, err := v.Evaluate()
	require.Error(t, err)
}

func TestVariableBindAndUnbind(t *testing.T) {
	v := NewVariable("budget")
	v.Bind(value.NewFloat(1e6))
	got, err := v.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, 1e6, got.Float())

	v.Unbind()
	_, err = v.Evaluate()
	require.Error(t, err)
}

func TestNegate(t *testing.T) {
	n := &Negate{Operand: &Constant{Value: value.NewInt(5)}}
	v, err := n.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, int64(-5), v.Int())
}

func TestBinaryArithmeticPromotion(t *testing.T) {
	b := &BinaryArithmetic{
		Op:    Add,
		Left:  &Constant{Value: value.NewInt(1)},
		Right: &Constant{Value: value.NewFloat(2.5)},
	}
	v, err := b.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, value.Float, v.Kind())
	assert.Equal(t, 3.5, v.Float())
}

func TestBinaryComparisonYieldsBoolValue(t *testing.T) {
	b := &BinaryComparison{
		Op:    Gt,
		Left:  &Constant{Value: value.NewInt(5)},
		Right: &Constant{Value: value.NewInt(3)},
	}
	v, err := b.Evaluate()
	require.NoError(t, err)
	ok, err := AsBool(v)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBinaryLogicalIsEager(t *testing.T) {
	budget := NewVariable("budget")
	right := &Negate{Operand: budget} // fails: budget is unbound

	b := &BinaryLogical{
		Op:    Or,
		Left:  &Constant{Value: value.One},
		Right: right,
	}
	_, err := b.Evaluate()
	require.Error(t, err, "OR must still evaluate its right operand even though the left is already true")
}

func TestBinaryLogicalAndOr(t *testing.T) {
	trueC := &Constant{Value: value.One}
	falseC := &Constant{Value: value.Zero}

	and := &BinaryLogical{Op: And, Left: trueC, Right: falseC}
	v, err := and.Evaluate()
	require.NoError(t, err)
	ok, _ := AsBool(v)
	assert.False(t, ok)

	or := &BinaryLogical{Op: Or, Left: falseC, Right: trueC}
	v, err = or.Evaluate()
	require.NoError(t, err)
	ok, _ = AsBool(v)
	assert.True(t, ok)
}

func TestTreeEvaluateBool(t *testing.T) {
	tree := &Tree{Root: &Constant{Value: value.One}}
	ok, err := tree.EvaluateBool()
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAsBoolRejectsNonBooleanInt(t *testing.T) {
	_, err := AsBool(value.NewInt(2))
	require.Error(t, err)
}
