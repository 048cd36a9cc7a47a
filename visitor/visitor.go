// Package visitor provides traversal and rewriting utilities over an
// expression ast.Node tree (§3/§4.2's six node kinds: Constant, Variable,
// Negate, BinaryArithmetic, BinaryComparison, BinaryLogical).
package visitor

import "github.com/relq/relq/ast"

// Visitor is the interface for AST traversal. Visit is called once per
// node in pre-order; the returned Visitor is used for that node's
// children (returning nil stops descent into them).
type Visitor interface {
	Visit(node ast.Node) Visitor
}

// Walk traverses node in depth-first pre-order.
func Walk(v Visitor, node ast.Node) {
	if node == nil {
		return
	}
	if v = v.Visit(node); v == nil {
		return
	}
	walkChildren(v, node)
}

func walkChildren(v Visitor, node ast.Node) {
	switch n := node.(type) {
	case *ast.Negate:
		Walk(v, n.Operand)
	case *ast.BinaryArithmetic:
		Walk(v, n.Left)
		Walk(v, n.Right)
	case *ast.BinaryComparison:
		Walk(v, n.Left)
		Walk(v, n.Right)
	case *ast.BinaryLogical:
		Walk(v, n.Left)
		Walk(v, n.Right)
	case *ast.Constant, *ast.Variable:
		// leaves, no children
	}
}

// VariableNames returns every distinct variable name referenced in node,
// in first-occurrence order.
func VariableNames(node ast.Node) []string {
	var names []string
	seen := make(map[string]bool)
	Walk(collectorFunc(func(n ast.Node) {
		if v, ok := n.(*ast.Variable); ok && !seen[v.Name] {
			seen[v.Name] = true
			names = append(names, v.Name)
		}
	}), node)
	return names
}

// collectorFunc adapts a plain func(ast.Node) into a Visitor that never
// stops descent.
type collectorFunc func(ast.Node)

func (f collectorFunc) Visit(node ast.Node) Visitor {
	f(node)
	return f
}
