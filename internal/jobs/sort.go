package jobs

import (
	"cmp"
	"slices"

	"golang.org/x/text/cases"
)

// Column names used by the default ordering.
const (
	ColumnName           = "name"
	ColumnPositionType   = "position type"
	ColumnCoreCompetency = "core competency"
	ColumnEmployer       = "employer"
	ColumnLocation       = "location"
)

// SortOrder is the column priority of the composite order.
var SortOrder = []string{
	ColumnName,
	ColumnPositionType,
	ColumnCoreCompetency,
	ColumnEmployer,
	ColumnLocation,
}

// keyed pairs a record with its case-folded sort keys.
type keyed struct {
	rec  Record
	keys []string
}

// sortRecords stably sorts rs in place by the given columns, ascending and
// case-insensitive. The first column is the most significant. Columns a
// record does not carry compare as "".
func sortRecords(rs []Record, columns ...string) {
	if len(rs) < 2 || len(columns) == 0 {
		return
	}

	// A Caser holds state and is not shared between calls.
	fold := cases.Fold()

	items := make([]keyed, len(rs))
	for i, r := range rs {
		keys := make([]string, len(columns))
		for j, col := range columns {
			keys[j] = fold.String(r.Value(col))
		}
		items[i] = keyed{rec: r, keys: keys}
	}

	slices.SortStableFunc(items, func(a, b keyed) int {
		for i := range a.keys {
			if c := cmp.Compare(a.keys[i], b.keys[i]); c != 0 {
				return c
			}
		}
		return 0
	})

	for i := range items {
		rs[i] = items[i].rec
	}
}

// compositeSort orders rs by SortOrder.
func compositeSort(rs []Record) {
	sortRecords(rs, SortOrder...)
}
