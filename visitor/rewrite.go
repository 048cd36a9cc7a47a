package visitor

import "github.com/relq/relq/ast"

// ApplyFunc is called for each node during rewriting. Return the
// replacement node, or the original to keep it unchanged.
type ApplyFunc func(ast.Node) ast.Node

// Rewrite traverses node in post-order (children first, then the node
// itself) and applies f at every step, threading replacements back into
// parent nodes.
func Rewrite(node ast.Node, f ApplyFunc) ast.Node {
	if node == nil {
		return nil
	}
	rewriteChildren(node, f)
	return f(node)
}

func rewriteChildren(node ast.Node, f ApplyFunc) {
	switch n := node.(type) {
	case *ast.Negate:
		n.Operand = Rewrite(n.Operand, f)
	case *ast.BinaryArithmetic:
		n.Left = Rewrite(n.Left, f)
		n.Right = Rewrite(n.Right, f)
	case *ast.BinaryComparison:
		n.Left = Rewrite(n.Left, f)
		n.Right = Rewrite(n.Right, f)
	case *ast.BinaryLogical:
		n.Left = Rewrite(n.Left, f)
		n.Right = Rewrite(n.Right, f)
	case *ast.Constant, *ast.Variable:
		// leaves, no children
	}
}

// FoldConstants collapses any subtree whose operands are all Constant
// leaves into a single evaluated Constant. Used as a post-parse
// optimization so an expression like "budget > 10 * 100" evaluates its
// constant subexpression once at compile time rather than on every
// record. Variable-containing subtrees, and any subtree whose evaluation
// would error, are left untouched.
func FoldConstants(node ast.Node) ast.Node {
	return Rewrite(node, func(n ast.Node) ast.Node {
		if _, ok := n.(*ast.Constant); ok {
			return n
		}
		if !hasOnlyConstantOperands(n) {
			return n
		}
		v, err := n.Evaluate()
		if err != nil {
			return n
		}
		return &ast.Constant{Value: v}
	})
}

func hasOnlyConstantOperands(n ast.Node) bool {
	switch t := n.(type) {
	case *ast.Negate:
		return isConstant(t.Operand)
	case *ast.BinaryArithmetic:
		return isConstant(t.Left) && isConstant(t.Right)
	case *ast.BinaryComparison:
		return isConstant(t.Left) && isConstant(t.Right)
	case *ast.BinaryLogical:
		return isConstant(t.Left) && isConstant(t.Right)
	default:
		return false
	}
}

func isConstant(n ast.Node) bool {
	_, ok := n.(*ast.Constant)
	return ok
}
