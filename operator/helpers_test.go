package operator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relq/relq/record"
	"github.com/relq/relq/schema"
	"github.com/relq/relq/table"
	"github.com/relq/relq/value"
)

// projectsTable builds the exact dataset spec.md §8 uses: projects(projectName key, budget).
func projectsTable(t *testing.T) *table.Table {
	t.Helper()
	b := schema.NewBuilder()
	require.NoError(t, b.Attribute("projectName"))
	require.NoError(t, b.Attribute("budget"))
	require.NoError(t, b.Key("projectName"))
	tbl := table.New("projects", b.Build())

	data := []struct {
		name   string
		budget float64
	}{
		{"P00", 1e6}, {"P01", 2e6}, {"P02", 3e6},
		{"P03", 1e6}, {"P04", 2e6}, {"P05", 3e6},
	}
	for _, d := range data {
		r, err := record.New(tbl.Schema(), value.NewString(d.name), value.NewFloat(d.budget))
		require.NoError(t, err)
		require.NoError(t, tbl.Insert(r))
	}
	return tbl
}

// employeesTable builds employees(employeeNumber key, zipCode, projectName):
// 19 rows E00..E18, zip cycling through the four zips and projectName
// assigned in blocks of three (E00-E02 on P00, ..., E15-E18 on P05), so
// the budget groups hold 6, 6 and 7 employees and E15 and E18 both sit on
// a 3e6 project.
func employeesTable(t *testing.T) *table.Table {
	t.Helper()
	b := schema.NewBuilder()
	require.NoError(t, b.Attribute("employeeNumber"))
	require.NoError(t, b.Attribute("zipCode"))
	require.NoError(t, b.Attribute("projectName"))
	require.NoError(t, b.Key("employeeNumber"))
	tbl := table.New("employees", b.Build())

	zips := []string{"12222", "12223", "12224", "12225"}
	projects := []string{"P00", "P01", "P02", "P03", "P04", "P05"}
	for i := 0; i < 19; i++ {
		name := "E" + pad2(i)
		r, err := record.New(tbl.Schema(),
			value.NewString(name),
			value.NewString(zips[i%len(zips)]),
			value.NewString(projects[min(i/3, len(projects)-1)]),
		)
		require.NoError(t, err)
		require.NoError(t, tbl.Insert(r))
	}
	return tbl
}

func pad2(i int) string {
	if i < 10 {
		return "0" + string(rune('0'+i))
	}
	return string(rune('0'+i/10)) + string(rune('0'+i%10))
}

func collect(t *testing.T, op Operator) []record.Record {
	t.Helper()
	next := op.Stream()
	var out []record.Record
	for {
		r, ok, err := next()
		require.NoError(t, err)
		if !ok {
			return out
		}
		out = append(out, r)
	}
}
