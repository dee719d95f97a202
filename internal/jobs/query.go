package jobs

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

// FieldAll selects every column in Search.
const FieldAll = "all"

// ListDistinctValues returns each distinct value of field once, in the
// order the values first appear in the data.
func (s *Store) ListDistinctValues(ctx context.Context, field string) ([]string, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	columns, records := s.snapshot()
	if !slices.Contains(columns, field) {
		return nil, unknownField(field)
	}

	values := make([]string, 0)
	seen := make(map[string]bool)
	for _, r := range records {
		v := r.Value(field)
		if seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	return values, nil
}

// ListAll returns a copy of every record in composite order.
func (s *Store) ListAll(ctx context.Context) ([]Record, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	_, records := s.snapshot()
	out := cloneRecords(records)
	compositeSort(out)
	return out, nil
}

// SearchByFieldAndValue returns the records whose column contains value,
// ignoring case. Results are ordered by column first, then by the composite
// order.
func (s *Store) SearchByFieldAndValue(ctx context.Context, column, value string) ([]Record, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	columns, records := s.snapshot()
	if !slices.Contains(columns, column) {
		return nil, unknownField(column)
	}

	term := strings.ToLower(value)
	matches := make([]Record, 0)
	for _, r := range records {
		if containsFold(r.Value(column), term) {
			matches = append(matches, r.Clone())
		}
	}

	compositeSort(matches)
	sortRecords(matches, column)
	return matches, nil
}

// SearchAnyField returns the records with at least one column containing
// value, ignoring case. Records with identical contents are returned once.
func (s *Store) SearchAnyField(ctx context.Context, value string) ([]Record, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	_, records := s.snapshot()

	term := strings.ToLower(value)
	matches := make([]Record, 0)
	seen := make(map[string][]Record)
	for _, r := range records {
		if !matchesAny(r, term) {
			continue
		}
		key := recordKey(r)
		if slices.ContainsFunc(seen[key], r.Equal) {
			continue
		}
		seen[key] = append(seen[key], r)
		matches = append(matches, r.Clone())
	}

	compositeSort(matches)
	return matches, nil
}

// Search dispatches to SearchAnyField when field is "all" and to
// SearchByFieldAndValue otherwise. "all" is never a column name; sources
// reject it in the header.
func (s *Store) Search(ctx context.Context, field, value string) ([]Record, error) {
	if field == FieldAll {
		return s.SearchAnyField(ctx, value)
	}
	return s.SearchByFieldAndValue(ctx, field, value)
}

// containsFold reports whether lower(v) contains term. term must already
// be lower case.
func containsFold(v, term string) bool {
	return strings.Contains(strings.ToLower(v), term)
}

func matchesAny(r Record, term string) bool {
	for _, col := range r.columns {
		if containsFold(r.values[col], term) {
			return true
		}
	}
	return false
}

// recordKey buckets records by contents. Distinct records may share a key;
// Equal decides within a bucket.
func recordKey(r Record) string {
	return strings.Join(r.Values(), "\x00")
}

func unknownField(field string) error {
	return fmt.Errorf("%w: %q", ErrUnknownField, field)
}
