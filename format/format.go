// Package format renders an expression ast.Node back to source text
// (spec.md §8's testable property: "parse-then-stringify round trip of a
// well-formed expression produces an expression tree equal to the
// original under structural equality, when the implementation exposes a
// printer"). It is a precedence-aware printer: parentheses are inserted
// only where the grammar of §4.2 would otherwise parse the output
// differently from the input tree.
package format

import (
	"strconv"
	"strings"

	"github.com/relq/relq/ast"
	"github.com/relq/relq/value"
)

// precedence levels, lowest first, matching §4.2's grammar nesting:
// logical (or, and) < comparison < additive < multiplicative < unary < primary.
const (
	precOr = iota + 1
	precAnd
	precComparison
	precAdditive
	precMultiplicative
	precUnary
	precPrimary
)

// String renders node as source text that parser.ParseLogical (or
// parser.ParseArithmetic, for a purely arithmetic node) would parse back
// into a structurally equal tree.
func String(node ast.Node) string {
	var b strings.Builder
	write(&b, node, 0)
	return b.String()
}

// Tree renders t.Root.
func Tree(t *ast.Tree) string {
	return String(t.Root)
}

func write(b *strings.Builder, node ast.Node, minPrec int) {
	prec, render := describe(node)
	if prec < minPrec {
		b.WriteByte('(')
		render(b)
		b.WriteByte(')')
		return
	}
	render(b)
}

// describe returns node's own precedence and a function that writes it
// without an enclosing paren (the caller adds one if needed).
func describe(node ast.Node) (int, func(*strings.Builder)) {
	switch n := node.(type) {
	case *ast.Constant:
		return precPrimary, func(b *strings.Builder) { b.WriteString(formatValue(n.Value)) }

	case *ast.Variable:
		return precPrimary, func(b *strings.Builder) { b.WriteString(n.Name) }

	case *ast.Negate:
		return precUnary, func(b *strings.Builder) {
			b.WriteByte('-')
			write(b, n.Operand, precUnary)
		}

	case *ast.BinaryArithmetic:
		prec := precAdditive
		if n.Op == value.Mul || n.Op == value.Div {
			prec = precMultiplicative
		}
		return prec, func(b *strings.Builder) {
			write(b, n.Left, prec)
			b.WriteByte(' ')
			b.WriteString(arithSymbol(n.Op))
			b.WriteByte(' ')
			write(b, n.Right, prec+1)
		}

	case *ast.BinaryComparison:
		return precComparison, func(b *strings.Builder) {
			write(b, n.Left, precAdditive)
			b.WriteByte(' ')
			b.WriteString(compareSymbol(n.Op))
			b.WriteByte(' ')
			write(b, n.Right, precAdditive)
		}

	case *ast.BinaryLogical:
		prec := precOr
		kw := "or"
		if n.Op == ast.And {
			prec = precAnd
			kw = "and"
		}
		return prec, func(b *strings.Builder) {
			write(b, n.Left, prec)
			b.WriteByte(' ')
			b.WriteString(kw)
			b.WriteByte(' ')
			write(b, n.Right, prec+1)
		}

	default:
		return precPrimary, func(b *strings.Builder) { b.WriteString("?") }
	}
}

func formatValue(v value.Value) string {
	switch v.Kind() {
	case value.String:
		return `"` + v.Raw() + `"`
	case value.Float:
		s := strconv.FormatFloat(v.Float(), 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	default:
		return strconv.FormatInt(v.Int(), 10)
	}
}

func arithSymbol(op value.ArithOp) string {
	switch op {
	case value.Add:
		return "+"
	case value.Sub:
		return "-"
	case value.Mul:
		return "*"
	default:
		return "/"
	}
}

func compareSymbol(op value.CompareOp) string {
	switch op {
	case value.Eq:
		return "="
	case value.Ne:
		return "<>"
	case value.Lt:
		return "<"
	case value.Le:
		return "<="
	case value.Gt:
		return ">"
	default:
		return ">="
	}
}
