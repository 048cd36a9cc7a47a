// Package compiler implements the query compiler of spec.md §4.5: it
// turns the three (or four) query strings a caller passes to
// Database.select/select_group_by into an assembled operator.Operator
// pipeline. It depends on operator, table and relerr, not on the root
// package, so the root package can depend on compiler without a cycle.
package compiler

import (
	"regexp"
	"strings"

	"github.com/relq/relq/operator"
	"github.com/relq/relq/relerr"
	"github.com/relq/relq/table"
)

// TableProvider resolves a table by name. The root Database type
// implements this; tests use a map-backed stand-in.
type TableProvider interface {
	Table(name string) *table.Table
}

// aggregateFuncs lists the recognized aggregate function names (§4.4.5),
// in the order the projection list is scanned for them (§4.5's "detect by
// substring search for each aggregate name immediately followed by `(`").
var aggregateFuncs = []string{"count", "sum", "avg", "min", "max"}

// naturalJoinSep matches the table-list separator: "natural join" with
// whitespace on both sides.
var naturalJoinSep = regexp.MustCompile(`\s+natural join\s+`)

// Query is the compiled input to Compile: the three required strings and
// the one optional grouping string from §4.5/§6.
type Query struct {
	Projection string
	Tables     string
	Predicate  string
	Grouping   string
}

// Compile assembles an operator.Operator for q against tables, following
// spec.md §4.5's steps exactly: split the table list on "natural join",
// split grouping (if any) on ",", wrap Scan in NaturalJoins, wrap in
// Selection if a predicate is present, then either Aggregation,
// passthrough, or Projection depending on the projection list's shape.
func Compile(tables TableProvider, q Query) (operator.Operator, error) {
	tableNames := splitTables(q.Tables)
	if len(tableNames) == 0 {
		return nil, relerr.Parsing.New("empty table list")
	}

	first, err := lookupTable(tables, tableNames[0])
	if err != nil {
		return nil, err
	}
	var op operator.Operator = operator.NewScan(first)

	for _, name := range tableNames[1:] {
		t, err := lookupTable(tables, name)
		if err != nil {
			return nil, err
		}
		op = operator.NewNaturalJoin(op, t)
	}

	if strings.TrimSpace(q.Predicate) != "" {
		sel, err := operator.NewSelection(op, q.Predicate)
		if err != nil {
			return nil, err
		}
		op = sel
	}

	fragments := splitFragments(q.Projection)
	groupAttrs := splitGrouping(q.Grouping)
	hasAggregates := containsAggregate(q.Projection)

	switch {
	case len(groupAttrs) > 0:
		specs := parseAggSpecs(fragments)
		agg, err := operator.NewAggregation(op, groupAttrs, specs)
		if err != nil {
			return nil, err
		}
		op = agg

	case hasAggregates:
		specs := parseAggSpecs(fragments)
		agg, err := operator.NewAggregation(op, nil, specs)
		if err != nil {
			return nil, err
		}
		op = agg

	case len(fragments) == 1 && fragments[0] == "*":
		// use the pipeline's current output directly

	default:
		items := make([]operator.ProjectionItem, 0, len(fragments))
		for _, frag := range fragments {
			name, expr := splitAlias(frag)
			items = append(items, operator.ProjectionItem{Name: name, Expr: expr})
		}
		proj, err := operator.NewProjection(op, items)
		if err != nil {
			return nil, err
		}
		op = proj
	}

	return op, nil
}

func lookupTable(tables TableProvider, name string) (*table.Table, error) {
	t := tables.Table(name)
	if t == nil {
		return nil, relerr.UnboundVariable.New(name)
	}
	return t, nil
}

// splitTables implements §4.5 step 2: split on the literal token "natural
// join" surrounded by whitespace, preserving order.
func splitTables(s string) []string {
	parts := naturalJoinSep.Split(s, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// splitFragments implements §4.5 step 1: split the projection list on ",".
func splitFragments(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// splitGrouping implements §4.5 step 3.
func splitGrouping(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return splitFragments(s)
}

func containsAggregate(projection string) bool {
	lower := strings.ToLower(projection)
	for _, fn := range aggregateFuncs {
		if strings.Contains(lower, fn+"(") {
			return true
		}
	}
	return false
}

// splitAlias splits a bare projection fragment on the literal " as ",
// per §9's "split on that exact substring, not on the word as as a
// token". A fragment without " as " projects under its own trimmed text.
func splitAlias(frag string) (name, expr string) {
	if i := strings.Index(frag, " as "); i >= 0 {
		return strings.TrimSpace(frag[i+len(" as "):]), strings.TrimSpace(frag[:i])
	}
	return frag, frag
}

// parseAggSpecs implements §4.5's aggregation-fragment parsing: each
// fragment must be `expression as name` (split on " as "); the left side
// is either an aggregate spec `func(arg)` or a grouping-attribute name.
// Grouping-attribute-name fragments and anything else malformed are
// silently skipped (source behavior, preserved per spec.md §9's default).
func parseAggSpecs(fragments []string) []operator.AggSpec {
	var specs []operator.AggSpec
	for _, frag := range fragments {
		i := strings.Index(frag, " as ")
		if i < 0 {
			continue
		}
		left := strings.TrimSpace(frag[:i])
		right := strings.TrimSpace(frag[i+len(" as "):])
		fn, arg, ok := parseAggCall(left)
		if !ok {
			continue
		}
		specs = append(specs, operator.AggSpec{Func: fn, Arg: arg, OutName: right})
	}
	return specs
}

// parseAggCall recognizes `func(arg)` where func is one of the five
// recognized aggregate names, case-insensitively.
func parseAggCall(s string) (fn, arg string, ok bool) {
	open := strings.Index(s, "(")
	if open < 0 || !strings.HasSuffix(s, ")") {
		return "", "", false
	}
	name := strings.ToLower(strings.TrimSpace(s[:open]))
	for _, candidate := range aggregateFuncs {
		if name == candidate {
			return name, strings.TrimSpace(s[open+1 : len(s)-1]), true
		}
	}
	return "", "", false
}
