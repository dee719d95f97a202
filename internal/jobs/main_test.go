package jobs

import (
	"context"
	"sync/atomic"
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var testHeader = []string{"name", "employer", "location", "position type", "core competency"}

// countingSource serves a fixed table and counts Load calls.
type countingSource struct {
	calls atomic.Int32
	table *Table
	err   error
}

func (c *countingSource) Load(ctx context.Context) (*Table, error) {
	c.calls.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	return c.table, nil
}

func newTestStore(rows ...[]string) (*Store, *countingSource) {
	src := &countingSource{table: &Table{Header: testHeader, Rows: rows}}
	return NewStore(src), src
}

// job builds a row in testHeader order.
func job(name, employer, location, positionType, competency string) []string {
	return []string{name, employer, location, positionType, competency}
}

func names(rs []Record) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Value(ColumnName)
	}
	return out
}

func pairs(rs []Record, a, b string) [][2]string {
	out := make([][2]string, len(rs))
	for i, r := range rs {
		out[i] = [2]string{r.Value(a), r.Value(b)}
	}
	return out
}
