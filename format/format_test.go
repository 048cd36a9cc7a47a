package format_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relq/relq/ast"
	"github.com/relq/relq/format"
	"github.com/relq/relq/parser"
)

// structurallyEqual compares two expression trees by shape and leaf
// content, ignoring the distinct *ast.Variable pointer identity each
// parse produces.
func structurallyEqual(a, b ast.Node) bool {
	switch an := a.(type) {
	case *ast.Constant:
		bn, ok := b.(*ast.Constant)
		return ok && an.Value.Kind() == bn.Value.Kind() && an.Value.String() == bn.Value.String()
	case *ast.Variable:
		bn, ok := b.(*ast.Variable)
		return ok && an.Name == bn.Name
	case *ast.Negate:
		bn, ok := b.(*ast.Negate)
		return ok && structurallyEqual(an.Operand, bn.Operand)
	case *ast.BinaryArithmetic:
		bn, ok := b.(*ast.BinaryArithmetic)
		return ok && an.Op == bn.Op && structurallyEqual(an.Left, bn.Left) && structurallyEqual(an.Right, bn.Right)
	case *ast.BinaryComparison:
		bn, ok := b.(*ast.BinaryComparison)
		return ok && an.Op == bn.Op && structurallyEqual(an.Left, bn.Left) && structurallyEqual(an.Right, bn.Right)
	case *ast.BinaryLogical:
		bn, ok := b.(*ast.BinaryLogical)
		return ok && an.Op == bn.Op && structurallyEqual(an.Left, bn.Left) && structurallyEqual(an.Right, bn.Right)
	default:
		return false
	}
}

func TestRoundTripArithmetic(t *testing.T) {
	exprs := []string{
		"1 + 2 * 3",
		"(1 + 2) * 3",
		"a - b - c",
		"a - (b - c)",
		"-a * -b",
		"a / b / c",
		"1.5 + 2",
	}
	for _, src := range exprs {
		tree, err := parser.ParseArithmetic(src)
		require.NoError(t, err)

		out := format.Tree(tree)
		reparsed, err := parser.ParseArithmetic(out)
		require.NoError(t, err, "re-parsing formatted output %q", out)

		assert.True(t, structurallyEqual(tree.Root, reparsed.Root),
			"round trip changed structure: %q -> %q", src, out)
	}
}

func TestRoundTripLogical(t *testing.T) {
	exprs := []string{
		`a = 1 and b = 2`,
		`a = 1 or b = 2 and c = 3`,
		`(a = 1 or b = 2) and c = 3`,
		`budget > 1000000`,
		`name = "P00"`,
	}
	for _, src := range exprs {
		tree, err := parser.ParseLogical(src)
		require.NoError(t, err)

		out := format.Tree(tree)
		reparsed, err := parser.ParseLogical(out)
		require.NoError(t, err, "re-parsing formatted output %q", out)

		assert.True(t, structurallyEqual(tree.Root, reparsed.Root),
			"round trip changed structure: %q -> %q", src, out)
	}
}

func TestFormatFloatAlwaysHasDecimalPoint(t *testing.T) {
	tree, err := parser.ParseArithmetic("2.0")
	require.NoError(t, err)
	out := format.Tree(tree)
	assert.Contains(t, out, ".")
}
