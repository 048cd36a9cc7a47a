// Package parser implements the two-entry-point recursive-descent
// expression parser of §4.2: ParseArithmetic starts at the `arithmetic`
// grammar rule, ParseLogical starts at `logical`. Both return a compiled
// ast.Tree ready for binding and evaluation.
package parser

import (
	"fmt"
	"sync"

	"github.com/relq/relq/ast"
	"github.com/relq/relq/lexer"
	"github.com/relq/relq/relerr"
	"github.com/relq/relq/token"
	"github.com/relq/relq/visitor"
)

// parser holds the recursive-descent parsing state for a single
// expression string: the lexer, the current lookahead token, and the
// ordered/de-duplicated Variable leaves produced so far (§4.2's "the
// k-th distinct identifier encountered becomes the k-th Variable").
type parser struct {
	lexer    *lexer.Lexer
	cur      token.Item
	vars     []*ast.Variable
	varIndex map[string]*ast.Variable
}

var parserPool = sync.Pool{
	New: func() any { return &parser{varIndex: make(map[string]*ast.Variable)} },
}

func newParser(input string) *parser {
	p := parserPool.Get().(*parser)
	p.lexer = lexer.Get(input)
	p.vars = p.vars[:0]
	for k := range p.varIndex {
		delete(p.varIndex, k)
	}
	p.advance()
	return p
}

func (p *parser) release() {
	lexer.Put(p.lexer)
	p.lexer = nil
	parserPool.Put(p)
}

func (p *parser) advance() {
	p.cur = p.lexer.Next()
}

func (p *parser) curIs(t token.Token) bool {
	return p.cur.Type == t
}

// variableFor returns the shared *ast.Variable for name, creating and
// recording it (in first-seen order) the first time the name is seen.
func (p *parser) variableFor(name string) *ast.Variable {
	if v, ok := p.varIndex[name]; ok {
		return v
	}
	v := ast.NewVariable(name)
	p.varIndex[name] = v
	p.vars = append(p.vars, v)
	return v
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return relerr.Parsing.New(fmt.Sprintf(format, args...))
}

func (p *parser) expect(t token.Token) error {
	if !p.curIs(t) {
		return p.errorf("expected %v, got %v", t, p.cur.Type)
	}
	p.advance()
	return nil
}

// ParseArithmetic parses an arithmetic expression (the `arithmetic`
// grammar rule, §4.2) and fails with relerr.Parsing on any unexpected
// token or premature end of input, including unconsumed trailing input.
func ParseArithmetic(input string) (*ast.Tree, error) {
	p := newParser(input)
	defer p.release()

	root, err := p.parseArithmetic()
	if err != nil {
		return nil, err
	}
	if !p.curIs(token.EOF) {
		return nil, p.errorf("unexpected token %v after expression", p.cur.Type)
	}
	root = visitor.FoldConstants(root)
	return &ast.Tree{Root: root, Vars: append([]*ast.Variable(nil), p.vars...)}, nil
}

// ParseLogical parses a logical expression (the `logical` grammar rule,
// §4.2) and fails with relerr.Parsing on any unexpected token or
// premature end of input, including unconsumed trailing input.
func ParseLogical(input string) (*ast.Tree, error) {
	p := newParser(input)
	defer p.release()

	root, err := p.parseLogical()
	if err != nil {
		return nil, err
	}
	if !p.curIs(token.EOF) {
		return nil, p.errorf("unexpected token %v after expression", p.cur.Type)
	}
	root = visitor.FoldConstants(root)
	return &ast.Tree{Root: root, Vars: append([]*ast.Variable(nil), p.vars...)}, nil
}
