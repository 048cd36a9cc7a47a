package operator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectionComputesExpressionsInOrder(t *testing.T) {
	proj, err := NewProjection(NewScan(projectsTable(t)), []ProjectionItem{
		{Name: "name", Expr: "projectName"},
		{Name: "doubled", Expr: "budget * 2"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "doubled"}, proj.Schema().Attributes())

	recs := collect(t, proj)
	require.Len(t, recs, 6)
	doubled, err := recs[0].Attr("doubled")
	require.NoError(t, err)
	assert.Equal(t, 2e6, doubled.Float())
}

func TestProjectionRejectsDuplicateOutputName(t *testing.T) {
	_, err := NewProjection(NewScan(projectsTable(t)), []ProjectionItem{
		{Name: "x", Expr: "budget"},
		{Name: "x", Expr: "projectName"},
	})
	require.Error(t, err)
}

func TestProjectionPropagatesEvaluationErrors(t *testing.T) {
	proj, err := NewProjection(NewScan(projectsTable(t)), []ProjectionItem{
		{Name: "bad", Expr: "projectName + 1"},
	})
	require.NoError(t, err)
	next := proj.Stream()
	_, _, err = next()
	require.Error(t, err, "projection does not swallow evaluation errors the way Selection does")
}
