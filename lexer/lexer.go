// Package lexer provides the lexical scanner for the expression
// sub-language (§4.1): whitespace-separated numbers, double-quoted strings,
// identifiers/keywords, and the symbol set arithmetic, comparison and
// logical expressions use.
package lexer

import (
	"sync"

	"github.com/relq/relq/token"
)

// Lexer tokenizes an expression string.
type Lexer struct {
	input  string
	start  int // start offset of the token being scanned
	pos    int // current offset in input
	item   token.Item
	peeked bool
}

var lexerPool = sync.Pool{
	New: func() any { return &Lexer{} },
}

// New creates a new Lexer for the input string.
func New(input string) *Lexer {
	return &Lexer{input: input}
}

// Get returns a Lexer from the pool, initialized with the input. Queries are
// re-parsed on every call to the query compiler, so reusing lexer/parser
// scratch state avoids an allocation per compiled fragment.
func Get(input string) *Lexer {
	l := lexerPool.Get().(*Lexer)
	l.Reset(input)
	return l
}

// Put returns the Lexer to the pool.
func Put(l *Lexer) {
	lexerPool.Put(l)
}

// Reset rewinds the lexer to scan new input.
func (l *Lexer) Reset(input string) {
	l.input = input
	l.start = 0
	l.pos = 0
	l.item = token.Item{}
	l.peeked = false
}

// Next returns the next token, consuming it.
func (l *Lexer) Next() token.Item {
	if l.peeked {
		l.peeked = false
		return l.item
	}
	l.item = l.scan()
	return l.item
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() token.Item {
	if !l.peeked {
		l.item = l.scan()
		l.peeked = true
	}
	return l.item
}

func (l *Lexer) scan() token.Item {
	l.skipWhitespace()
	l.start = l.pos

	if l.pos >= len(l.input) {
		return l.makeItem(token.EOF, "")
	}

	ch := l.input[l.pos]
	switch ch {
	case '(':
		l.pos++
		return l.makeItem(token.LPAREN, "(")
	case ')':
		l.pos++
		return l.makeItem(token.RPAREN, ")")
	case ',':
		l.pos++
		return l.makeItem(token.COMMA, ",")
	case '+':
		l.pos++
		return l.makeItem(token.PLUS, "+")
	case '*':
		l.pos++
		return l.makeItem(token.STAR, "*")
	case '/':
		l.pos++
		return l.makeItem(token.SLASH, "/")
	case '-':
		l.pos++
		return l.makeItem(token.MINUS, "-")
	case '=':
		l.pos++
		return l.makeItem(token.EQ, "=")
	case '<':
		return l.scanLess()
	case '>':
		return l.scanGreater()
	case '"':
		return l.scanString()
	}

	if isIdentStart(ch) {
		return l.scanIdentifier()
	}
	if isDigit(ch) {
		return l.scanNumber()
	}

	l.pos++
	return l.makeItem(token.ILLEGAL, string(ch))
}

func (l *Lexer) scanLess() token.Item {
	l.pos++
	if l.pos < len(l.input) {
		switch l.input[l.pos] {
		case '=':
			l.pos++
			return l.makeItem(token.LE, "<=")
		case '>':
			l.pos++
			return l.makeItem(token.NEQ, "<>")
		}
	}
	return l.makeItem(token.LT, "<")
}

func (l *Lexer) scanGreater() token.Item {
	l.pos++
	if l.pos < len(l.input) && l.input[l.pos] == '=' {
		l.pos++
		return l.makeItem(token.GE, ">=")
	}
	return l.makeItem(token.GT, ">")
}

// scanString scans a double-quoted string literal. §4.1: no escape
// sequences are defined by the grammar, so a backslash is ordinary content.
func (l *Lexer) scanString() token.Item {
	l.pos++ // skip opening quote
	start := l.pos
	for l.pos < len(l.input) && l.input[l.pos] != '"' {
		l.pos++
	}
	val := l.input[start:l.pos]
	if l.pos >= len(l.input) {
		return l.makeItem(token.ILLEGAL, l.input[l.start:l.pos])
	}
	l.pos++ // skip closing quote
	return l.makeItem(token.STRING, val)
}

func (l *Lexer) scanIdentifier() token.Item {
	for l.pos < len(l.input) && isIdentChar(l.input[l.pos]) {
		l.pos++
	}
	val := l.input[l.start:l.pos]
	return l.makeItem(token.Lookup(val), val)
}

// scanNumber scans a §4.1 numeric literal: digits, optional single '.'
// followed by one or more fraction digits. No sign, no exponent.
func (l *Lexer) scanNumber() token.Item {
	for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
		l.pos++
	}
	if l.pos < len(l.input) && l.input[l.pos] == '.' && l.pos+1 < len(l.input) && isDigit(l.input[l.pos+1]) {
		l.pos++
		for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
			l.pos++
		}
	}
	return l.makeItem(token.NUMBER, l.input[l.start:l.pos])
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case ' ', '\t', '\n', '\r':
			l.pos++
		default:
			return
		}
	}
}

func (l *Lexer) makeItem(typ token.Token, val string) token.Item {
	return token.Item{
		Type:  typ,
		Value: val,
		Pos:   token.Pos{Offset: l.start, Column: l.start + 1},
	}
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentChar(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
