package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relq/relq/ast"
	"github.com/relq/relq/relerr"
	"github.com/relq/relq/value"
)

func evalArithmetic(t *testing.T, input string, binds map[string]value.Value) value.Value {
	t.Helper()
	tree, err := ParseArithmetic(input)
	require.NoError(t, err)
	for _, v := range tree.Vars {
		if bv, ok := binds[v.Name]; ok {
			v.Bind(bv)
		}
	}
	got, err := tree.Evaluate()
	require.NoError(t, err)
	return got
}

func TestParseArithmeticPrecedence(t *testing.T) {
	v := evalArithmetic(t, "2 + 3 * 4", nil)
	assert.Equal(t, int64(14), v.Int())
}

func TestParseArithmeticLeftAssociative(t *testing.T) {
	v := evalArithmetic(t, "10 - 3 - 2", nil)
	assert.Equal(t, int64(5), v.Int())
}

func TestParseArithmeticParentheses(t *testing.T) {
	v := evalArithmetic(t, "(2 + 3) * 4", nil)
	assert.Equal(t, int64(20), v.Int())
}

func TestParseArithmeticUnaryMinus(t *testing.T) {
	v := evalArithmetic(t, "-5 + 2", nil)
	assert.Equal(t, int64(-3), v.Int())
}

func TestParseArithmeticFloatPromotion(t *testing.T) {
	v := evalArithmetic(t, "1 + 2.5", nil)
	assert.Equal(t, value.Float, v.Kind())
	assert.Equal(t, 3.5, v.Float())
}

func TestParseArithmeticVariable(t *testing.T) {
	v := evalArithmetic(t, "budget * 2", map[string]value.Value{"budget": value.NewFloat(10)})
	assert.Equal(t, 20.0, v.Float())
}

func TestParseArithmeticRepeatedVariableSharesInstance(t *testing.T) {
	tree, err := ParseArithmetic("budget + budget")
	require.NoError(t, err)
	require.Len(t, tree.Vars, 1)
	tree.Vars[0].Bind(value.NewInt(7))
	got, err := tree.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, int64(14), got.Int())
}

func TestParseArithmeticUnexpectedTokenFails(t *testing.T) {
	_, err := ParseArithmetic("1 + ")
	require.Error(t, err)
	assert.True(t, relerr.Parsing.Is(err))
}

func TestParseArithmeticTrailingInputFails(t *testing.T) {
	_, err := ParseArithmetic("1 + 2 3")
	require.Error(t, err)
	assert.True(t, relerr.Parsing.Is(err))
}

func TestParseLogicalComparisonAndBoolean(t *testing.T) {
	tree, err := ParseLogical(`budget > 1000 and region = "west"`)
	require.NoError(t, err)
	var budget, region *ast.Variable
	for _, v := range tree.Vars {
		switch v.Name {
		case "budget":
			budget = v
		case "region":
			region = v
		}
	}
	require.NotNil(t, budget)
	require.NotNil(t, region)
	budget.Bind(value.NewInt(5000))
	region.Bind(value.NewString("west"))

	ok, err := tree.EvaluateBool()
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestParseLogicalOrShortCircuitIsStillEager(t *testing.T) {
	tree, err := ParseLogical(`budget > 0 or missing > 0`)
	require.NoError(t, err)
	for _, v := range tree.Vars {
		if v.Name == "budget" {
			v.Bind(value.NewInt(1))
		}
		// "missing" left unbound on purpose
	}
	_, err = tree.EvaluateBool()
	require.Error(t, err, "logical OR must evaluate both operands even when the left is true")
}

func TestParseLogicalParenthesizedInArithmeticContext(t *testing.T) {
	v := evalArithmetic(t, `(1 = 1) + 1`, nil)
	assert.Equal(t, int64(2), v.Int())
}

func TestParseLogicalEmptyInputFails(t *testing.T) {
	_, err := ParseLogical("")
	require.Error(t, err)
	assert.True(t, relerr.Parsing.Is(err))
}
