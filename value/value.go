// Package value implements the runtime value model shared by every layer of
// the query engine: a small tagged union over integer, floating and string
// data, with the numeric coercion and comparison rules the expression
// evaluator, natural join, and aggregation operators all rely on.
package value

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/relq/relq/relerr"
)

// Kind tags which arm of the Value union is populated.
type Kind int

const (
	// Int marks a Value holding an int64.
	Int Kind = iota
	// Float marks a Value holding a float64.
	Float
	// String marks a Value holding a string.
	String
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	default:
		return "unknown"
	}
}

// Value is a runtime-tagged variant over {integer, floating, string}. The
// zero Value is the integer 0. Values are immutable and safe to copy and use
// as map keys.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
}

// NewInt constructs an integer Value.
func NewInt(i int64) Value { return Value{kind: Int, i: i} }

// NewFloat constructs a floating Value.
func NewFloat(f float64) Value { return Value{kind: Float, f: f} }

// NewString constructs a string Value.
func NewString(s string) Value { return Value{kind: String, s: s} }

// Booleans live on the integer arm: there is no dedicated boolean Value
// kind. BinaryComparison and BinaryLogical nodes produce One or Zero, and
// BinaryLogical reads its operands back through ast.AsBool.
var (
	// Zero is the canonical false-ish integer zero value.
	Zero = NewInt(0)
	// One is the canonical true-ish integer one value.
	One = NewInt(1)
)

// Kind reports which arm of the union is populated.
func (v Value) Kind() Kind { return v.kind }

// Int returns the raw int64 payload; only meaningful when Kind() == Int.
func (v Value) Int() int64 { return v.i }

// Float returns the raw float64 payload; only meaningful when Kind() == Float.
func (v Value) Float() float64 { return v.f }

// String returns the raw string payload when Kind() == String, otherwise a
// human-readable rendering of the numeric payload (used for error messages
// and result formatting, never for equality).
func (v Value) String() string {
	switch v.kind {
	case Int:
		return strconv.FormatInt(v.i, 10)
	case Float:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	default:
		return v.s
	}
}

// Raw returns the string payload verbatim when Kind() == String; callers
// that need the numeric payload should use Int/Float directly.
func (v Value) Raw() string { return v.s }

// IsNumeric reports whether v's kind is Int or Float.
func (v Value) IsNumeric() bool { return v.kind == Int || v.kind == Float }

// AsFloat64 returns v's numeric payload widened to float64. Only valid when
// IsNumeric() is true.
func (v Value) AsFloat64() float64 {
	if v.kind == Int {
		return float64(v.i)
	}
	return v.f
}

// AsNumber parses a string Value into an integer or floating Value using the
// same lexical rules as a numeric literal (§4.1): one or more digits,
// optional single decimal point followed by one or more fraction digits, no
// sign, no exponent. Numeric Values are returned unchanged. Fails with
// relerr.NumberFormat when v is a non-numeric string.
func (v Value) AsNumber() (Value, error) {
	if v.IsNumeric() {
		return v, nil
	}
	s := v.s
	if !looksNumeric(s) {
		return Value{}, relerr.NumberFormat.New(s)
	}
	if strings.Contains(s, ".") {
		f, err := cast.ToFloat64E(s)
		if err != nil {
			return Value{}, relerr.NumberFormat.New(s)
		}
		return NewFloat(f), nil
	}
	i, err := cast.ToInt64E(s)
	if err != nil {
		return Value{}, relerr.NumberFormat.New(s)
	}
	return NewInt(i), nil
}

// looksNumeric checks the §4.1 numeric-literal grammar: digits, optional
// single '.', no sign, no exponent. cast.ToInt64E/ToFloat64E accept a wider
// surface (leading '+'/'-', exponents) than the expression language's own
// numeric-literal grammar, so this gate keeps AsNumber consistent with what
// the tokenizer would have accepted as a number-literal token.
func looksNumeric(s string) bool {
	if s == "" {
		return false
	}
	dots := 0
	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.':
			dots++
			if dots > 1 {
				return false
			}
		default:
			return false
		}
	}
	return digits > 0
}

// Negate computes the unary arithmetic negation of v, coercing a string
// operand to numeric first (relerr.NumberFormat on failure).
func Negate(v Value) (Value, error) {
	n, err := v.AsNumber()
	if err != nil {
		return Value{}, err
	}
	if n.kind == Int {
		return NewInt(-n.i), nil
	}
	return NewFloat(-n.f), nil
}

// ArithOp identifies a BinaryArithmetic operator.
type ArithOp int

const (
	Add ArithOp = iota
	Sub
	Mul
	Div
)

// Arith evaluates a binary arithmetic operation, coercing both operands to
// numeric and following the integer/floating promotion rule.
func Arith(op ArithOp, left, right Value) (Value, error) {
	l, err := left.AsNumber()
	if err != nil {
		return Value{}, err
	}
	r, err := right.AsNumber()
	if err != nil {
		return Value{}, err
	}
	if l.kind == Int && r.kind == Int {
		switch op {
		case Add:
			return NewInt(l.i + r.i), nil
		case Sub:
			return NewInt(l.i - r.i), nil
		case Mul:
			return NewInt(l.i * r.i), nil
		case Div:
			if r.i == 0 {
				return Value{}, relerr.UnsupportedOperation.New("integer division by zero")
			}
			return NewInt(l.i / r.i), nil
		}
	}
	lf, rf := l.AsFloat64(), r.AsFloat64()
	switch op {
	case Add:
		return NewFloat(lf + rf), nil
	case Sub:
		return NewFloat(lf - rf), nil
	case Mul:
		return NewFloat(lf * rf), nil
	case Div:
		return NewFloat(lf / rf), nil
	}
	return Value{}, relerr.UnsupportedOperation.New(fmt.Sprintf("arithmetic op %d", op))
}

// CompareOp identifies a BinaryComparison operator.
type CompareOp int

const (
	Eq CompareOp = iota
	Ne
	Lt
	Le
	Gt
	Ge
)

// Compare evaluates a binary comparison. If either operand is a string, Eq
// and Ne compare as strings; every other combination (including Eq/Ne
// between two numerics) coerces both sides to numeric first.
func Compare(op CompareOp, left, right Value) (bool, error) {
	if (op == Eq || op == Ne) && (left.kind == String || right.kind == String) {
		eq := left.kind == String && right.kind == String && left.s == right.s
		if op == Eq {
			return eq, nil
		}
		return !eq, nil
	}
	l, err := left.AsNumber()
	if err != nil {
		return false, err
	}
	r, err := right.AsNumber()
	if err != nil {
		return false, err
	}
	var cmp int
	if l.kind == Int && r.kind == Int {
		switch {
		case l.i < r.i:
			cmp = -1
		case l.i > r.i:
			cmp = 1
		}
	} else {
		lf, rf := l.AsFloat64(), r.AsFloat64()
		switch {
		case lf < rf:
			cmp = -1
		case lf > rf:
			cmp = 1
		}
	}
	switch op {
	case Eq:
		return cmp == 0, nil
	case Ne:
		return cmp != 0, nil
	case Lt:
		return cmp < 0, nil
	case Le:
		return cmp <= 0, nil
	case Gt:
		return cmp > 0, nil
	case Ge:
		return cmp >= 0, nil
	}
	return false, relerr.UnsupportedOperation.New(fmt.Sprintf("comparison op %d", op))
}

// Less defines the total order used by Table's key index and by min/max
// accumulators: numerics compare numerically (mixed Int/Float widened to
// float64), strings compare lexicographically. Comparing a numeric Value
// against a string Value is undefined behavior per §3/§9 — the engine does
// not guard against it, matching the source's raw Comparable key comparator;
// this implementation returns false in that case rather than panicking, but
// callers must keep keys homogeneous per attribute for the result to be
// meaningful.
func Less(a, b Value) bool {
	if a.kind == String && b.kind == String {
		return a.s < b.s
	}
	if a.IsNumeric() && b.IsNumeric() {
		if a.kind == Int && b.kind == Int {
			return a.i < b.i
		}
		return a.AsFloat64() < b.AsFloat64()
	}
	return false
}

// Equal reports whether two Values denote the same datum: numerics compare
// numerically after promotion, strings compare by content, and a numeric is
// never equal to a string (equality never implicitly coerces a string to a
// number, per §3).
func Equal(a, b Value) bool {
	if a.kind == String || b.kind == String {
		return a.kind == String && b.kind == String && a.s == b.s
	}
	if a.kind == Int && b.kind == Int {
		return a.i == b.i
	}
	return a.AsFloat64() == b.AsFloat64()
}
