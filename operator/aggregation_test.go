package operator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scenario 4 from spec.md §8: count(employeeNumber) as count over
// employees, no grouping, yields a single row.
func TestAggregationCountWithoutGrouping(t *testing.T) {
	agg, err := NewAggregation(NewScan(employeesTable(t)), nil, []AggSpec{
		{Func: "count", Arg: "employeeNumber", OutName: "count"},
	})
	require.NoError(t, err)
	recs := collect(t, agg)
	require.Len(t, recs, 1)
	v, err := recs[0].Attr("count")
	require.NoError(t, err)
	assert.Equal(t, int64(19), v.Int())
}

// Scenario 5 from spec.md §8: sum(budget) as sumBudget over projects.
func TestAggregationSumWithoutGrouping(t *testing.T) {
	agg, err := NewAggregation(NewScan(projectsTable(t)), nil, []AggSpec{
		{Func: "sum", Arg: "budget", OutName: "sumBudget"},
	})
	require.NoError(t, err)
	recs := collect(t, agg)
	require.Len(t, recs, 1)
	v, err := recs[0].Attr("sumBudget")
	require.NoError(t, err)
	assert.Equal(t, 1.2e7, v.Float())
}

func TestAggregationEmptyGroupingStillEmitsOneRowOnEmptyInput(t *testing.T) {
	empty := NewScan(projectsTable(t))
	sel, err := NewSelection(empty, "budget > 999999999")
	require.NoError(t, err)

	agg, err := NewAggregation(sel, nil, []AggSpec{
		{Func: "count", Arg: "budget", OutName: "n"},
	})
	require.NoError(t, err)
	recs := collect(t, agg)
	require.Len(t, recs, 1)
	v, err := recs[0].Attr("n")
	require.NoError(t, err)
	assert.Equal(t, int64(0), v.Int())
}

func TestAggregationGroupByAttribute(t *testing.T) {
	agg, err := NewAggregation(NewScan(projectsTable(t)), []string{"budget"}, []AggSpec{
		{Func: "count", Arg: "projectName", OutName: "n"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"budget", "n"}, agg.Schema().Attributes())

	recs := collect(t, agg)
	require.Len(t, recs, 3) // budgets 1e6, 2e6, 3e6, two projects each

	total := int64(0)
	for _, r := range recs {
		n, err := r.Attr("n")
		require.NoError(t, err)
		total += n.Int()
	}
	assert.Equal(t, int64(6), total)
}

func TestAggregationMinMax(t *testing.T) {
	agg, err := NewAggregation(NewScan(projectsTable(t)), nil, []AggSpec{
		{Func: "min", Arg: "budget", OutName: "lo"},
		{Func: "max", Arg: "budget", OutName: "hi"},
		{Func: "avg", Arg: "budget", OutName: "avg"},
	})
	require.NoError(t, err)
	recs := collect(t, agg)
	require.Len(t, recs, 1)

	lo, _ := recs[0].Attr("lo")
	hi, _ := recs[0].Attr("hi")
	avg, _ := recs[0].Attr("avg")
	assert.Equal(t, 1e6, lo.Float())
	assert.Equal(t, 3e6, hi.Float())
	assert.Equal(t, 2e6, avg.Float())
}

func TestAggregationRejectsUnboundGroupingAttribute(t *testing.T) {
	_, err := NewAggregation(NewScan(projectsTable(t)), []string{"nope"}, nil)
	require.Error(t, err)
}
