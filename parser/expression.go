package parser

import (
	"strconv"
	"strings"

	"github.com/relq/relq/ast"
	"github.com/relq/relq/token"
	"github.com/relq/relq/value"
)

func parseFloat(s string) (float64, error) { return strconv.ParseFloat(s, 64) }
func parseInt(s string) (int64, error)     { return strconv.ParseInt(s, 10, 64) }

// parseLogical implements `logical := or_expr` (§4.2).
func (p *parser) parseLogical() (ast.Node, error) {
	return p.parseOr()
}

// parseOr implements `or_expr := and_expr ( 'or' and_expr )*`, left-associative.
func (p *parser) parseOr() (ast.Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.curIs(token.OR) {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryLogical{Op: ast.Or, Left: left, Right: right}
	}
	return left, nil
}

// parseAnd implements `and_expr := comparison ( 'and' comparison )*`, left-associative.
func (p *parser) parseAnd() (ast.Node, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.curIs(token.AND) {
		p.advance()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryLogical{Op: ast.And, Left: left, Right: right}
	}
	return left, nil
}

var compareOps = map[token.Token]ast.CompareOp{
	token.EQ:  value.Eq,
	token.NEQ: value.Ne,
	token.LT:  value.Lt,
	token.LE:  value.Le,
	token.GT:  value.Gt,
	token.GE:  value.Ge,
}

// parseComparison implements
// `comparison := arithmetic ( ('=' | '<>' | '<' | '<=' | '>' | '>=') arithmetic )?`
// — at most one comparison operator, not repeated.
func (p *parser) parseComparison() (ast.Node, error) {
	left, err := p.parseArithmetic()
	if err != nil {
		return nil, err
	}
	op, ok := compareOps[p.cur.Type]
	if !ok {
		return left, nil
	}
	p.advance()
	right, err := p.parseArithmetic()
	if err != nil {
		return nil, err
	}
	return &ast.BinaryComparison{Op: op, Left: left, Right: right}, nil
}

// parseArithmetic implements `arithmetic := term ( ('+' | '-') term )*`, left-associative.
func (p *parser) parseArithmetic() (ast.Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.curIs(token.PLUS) || p.curIs(token.MINUS) {
		op := value.Add
		if p.curIs(token.MINUS) {
			op = value.Sub
		}
		p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryArithmetic{Op: op, Left: left, Right: right}
	}
	return left, nil
}

// parseTerm implements `term := factor ( ('*' | '/') factor )*`, left-associative.
func (p *parser) parseTerm() (ast.Node, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.curIs(token.STAR) || p.curIs(token.SLASH) {
		op := value.Mul
		if p.curIs(token.SLASH) {
			op = value.Div
		}
		p.advance()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryArithmetic{Op: op, Left: left, Right: right}
	}
	return left, nil
}

// parseFactor implements `factor := '-' factor | primary`.
func (p *parser) parseFactor() (ast.Node, error) {
	if p.curIs(token.MINUS) {
		p.advance()
		operand, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return &ast.Negate{Operand: operand}, nil
	}
	return p.parsePrimary()
}

// parsePrimary implements `primary := number | string | identifier | '(' logical ')'`.
func (p *parser) parsePrimary() (ast.Node, error) {
	switch p.cur.Type {
	case token.NUMBER:
		lit := p.cur.Value
		p.advance()
		if strings.Contains(lit, ".") {
			f, err := parseFloat(lit)
			if err != nil {
				return nil, p.errorf("invalid number literal %q", lit)
			}
			return &ast.Constant{Value: value.NewFloat(f)}, nil
		}
		i, err := parseInt(lit)
		if err != nil {
			return nil, p.errorf("invalid number literal %q", lit)
		}
		return &ast.Constant{Value: value.NewInt(i)}, nil

	case token.STRING:
		lit := p.cur.Value
		p.advance()
		return &ast.Constant{Value: value.NewString(lit)}, nil

	case token.IDENT:
		name := p.cur.Value
		p.advance()
		return p.variableFor(name), nil

	case token.LPAREN:
		p.advance()
		inner, err := p.parseLogical()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return inner, nil

	default:
		return nil, p.errorf("unexpected token %v in expression", p.cur.Type)
	}
}
