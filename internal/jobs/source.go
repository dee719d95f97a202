package jobs

import (
	"context"
	"fmt"
	"strings"
)

// Table is the raw output of a Source: a header and the rows beneath it.
type Table struct {
	Header []string
	Rows   [][]string
}

// Source produces the job data a Store serves.
type Source interface {
	// Load reads the whole table. It is called at most once per successful
	// Store load.
	Load(ctx context.Context) (*Table, error)
}

// SourceFunc adapts a plain function to the Source interface.
type SourceFunc func(ctx context.Context) (*Table, error)

// Load calls f(ctx).
func (f SourceFunc) Load(ctx context.Context) (*Table, error) {
	return f(ctx)
}

// normalizeHeader trims header names and rejects empty, repeated or
// reserved column names.
func normalizeHeader(header []string) ([]string, error) {
	if len(header) == 0 {
		return nil, ErrEmptyHeader
	}

	out := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			return nil, fmt.Errorf("invalid csv: empty column name at position %d", i+1)
		}
		if name == FieldAll {
			return nil, fmt.Errorf("%w %q", ErrReservedColumn, name)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w %q", ErrDuplicateColumn, name)
		}
		seen[name] = true
		out[i] = name
	}
	return out, nil
}

// buildRecords converts a Table into records keyed by its header.
func buildRecords(t *Table) ([]string, []Record, error) {
	if t == nil {
		return nil, nil, ErrEmptyHeader
	}

	header, err := normalizeHeader(t.Header)
	if err != nil {
		return nil, nil, err
	}

	records := make([]Record, 0, len(t.Rows))
	for i, row := range t.Rows {
		if len(row) > len(header) {
			return nil, nil, fmt.Errorf("invalid csv: row %d has %d fields, header has %d",
				i+1, len(row), len(header))
		}
		records = append(records, NewRecord(header, row))
	}
	return header, records, nil
}
