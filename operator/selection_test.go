package operator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scenario 1 from spec.md §8: select("*", "projects", "budget > 1000000")
// yields 4 records: the six projects minus the two with budget 1e6 (P00, P03).
func TestSelectionFiltersProjectsByBudget(t *testing.T) {
	sel, err := NewSelection(NewScan(projectsTable(t)), "budget > 1000000")
	require.NoError(t, err)

	recs := collect(t, sel)
	require.Len(t, recs, 4)

	first, _ := recs[0].Attr("projectName")
	last, _ := recs[len(recs)-1].Attr("projectName")
	assert.Equal(t, "P01", first.Raw())
	assert.Equal(t, "P05", last.Raw())
}

// Scenario 3 from spec.md §8: a predicate over a joined stream.
func TestSelectionOverJoinedStream(t *testing.T) {
	join := NewNaturalJoin(NewScan(employeesTable(t)), projectsTable(t))
	sel, err := NewSelection(join, `employeeNumber = "E15"`)
	require.NoError(t, err)

	recs := collect(t, sel)
	require.Len(t, recs, 1)
	budget, err := recs[0].Attr("budget")
	require.NoError(t, err)
	assert.Equal(t, 3e6, budget.Float())
}

func TestSelectionSwallowsEvaluationErrors(t *testing.T) {
	// projectName ("P00", ...) is never numeric, so coercing it for
	// arithmetic fails relerr.NumberFormat on every record.
	sel, err := NewSelection(NewScan(projectsTable(t)), `projectName + 1 > 0`)
	require.NoError(t, err)
	recs := collect(t, sel)
	assert.Empty(t, recs, "an evaluation error should drop the record, not abort the stream")
}

func TestSelectionUnboundPredicateNameFailsAtConstruction(t *testing.T) {
	_, err := NewSelection(NewScan(projectsTable(t)), "nonexistent > 1")
	require.Error(t, err)
}
