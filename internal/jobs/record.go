package jobs

import (
	"encoding/json"
	"maps"
)

// Record is one job listing: an immutable mapping from column name to value.
//
// The zero value is an empty record. Columns keep the order of the source
// header.
type Record struct {
	columns []string
	values  map[string]string
}

// NewRecord builds a record from a header and one row of values.
// Missing trailing values are stored as empty strings.
func NewRecord(header, row []string) Record {
	values := make(map[string]string, len(header))
	for i, col := range header {
		if i < len(row) {
			values[col] = row[i]
		} else {
			values[col] = ""
		}
	}
	return Record{
		columns: append([]string(nil), header...),
		values:  values,
	}
}

// Value returns the value stored under column, or "" if absent.
func (r Record) Value(column string) string {
	return r.values[column]
}

// Columns returns a copy of the column names in header order.
func (r Record) Columns() []string {
	return append([]string(nil), r.columns...)
}

// Map returns a copy of the record as a plain map.
func (r Record) Map() map[string]string {
	if r.values == nil {
		return map[string]string{}
	}
	return maps.Clone(r.values)
}

// Values returns the values in header order.
func (r Record) Values() []string {
	out := make([]string, len(r.columns))
	for i, col := range r.columns {
		out[i] = r.values[col]
	}
	return out
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	return Record{
		columns: r.Columns(),
		values:  r.Map(),
	}
}

// Equal reports whether both records hold the same columns and values.
func (r Record) Equal(other Record) bool {
	if len(r.columns) != len(other.columns) {
		return false
	}
	return maps.Equal(r.values, other.values)
}

// cloneRecords deep-copies every record in rs.
func cloneRecords(rs []Record) []Record {
	out := make([]Record, len(rs))
	for i, r := range rs {
		out[i] = r.Clone()
	}
	return out
}

// MarshalJSON encodes the record as a JSON object keyed by column name.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Map())
}
