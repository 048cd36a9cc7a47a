// Package relerr defines the typed error taxonomy shared by every layer of
// the query engine: value coercion, schema/record/table construction,
// expression parsing and evaluation, and query compilation.
//
// Each failure mode is a distinct *errors.Kind (gopkg.in/src-d/go-errors.v1)
// so callers can match on the kind of failure with Kind.Is. Errors are
// returned up through the layers as they were created, without wrapping, so
// the error a caller receives is the one its Kind produced.
package relerr

import "gopkg.in/src-d/go-errors.v1"

var (
	// DuplicateAttribute: adding an attribute whose name already exists in a schema.
	DuplicateAttribute = errors.NewKind("duplicate attribute %q")

	// DuplicateKey: inserting a record whose key-tuple matches an existing one.
	DuplicateKey = errors.NewKind("duplicate key %v in table %q")

	// ArityMismatch: constructing a record whose value count doesn't match the schema size.
	ArityMismatch = errors.NewKind("expected %d values, got %d")

	// UnboundVariable: a name not resolvable in the governing schema, or a
	// Variable node evaluated before being bound.
	UnboundVariable = errors.NewKind("unbound variable %q")

	// NumberFormat: a non-numeric value used in a numeric context.
	NumberFormat = errors.NewKind("cannot interpret %q as a number")

	// Parsing: a malformed expression or query fragment.
	Parsing = errors.NewKind("%s")

	// UnsupportedOperation: evaluation reached an operator/operand
	// combination the language does not define.
	UnsupportedOperation = errors.NewKind("unsupported operation: %s")
)
