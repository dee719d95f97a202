package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRows is an in-memory pgx.Rows.
type fakeRows struct {
	fields []pgconn.FieldDescription
	rows   [][]any
	pos    int
	err    error
	closed bool
}

func (r *fakeRows) Close()                                       { r.closed = true }
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.NewCommandTag("SELECT") }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return r.fields }
func (r *fakeRows) Scan(dest ...any) error                       { return errors.New("not implemented") }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.rows) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Values() ([]any, error) {
	return r.rows[r.pos-1], nil
}

type fakeQuerier struct {
	sql  string
	rows *fakeRows
	err  error
}

func (q *fakeQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.sql = sql
	if q.err != nil {
		return nil, q.err
	}
	return q.rows, nil
}

func TestPostgresSource_Load(t *testing.T) {
	rows := &fakeRows{
		fields: []pgconn.FieldDescription{{Name: "name"}, {Name: "employer"}, {Name: "posted"}, {Name: "openings"}},
		rows: [][]any{
			{"Web Developer", "Cerner", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), int32(2)},
			{"QA", nil, nil, pgtype.Int8{Int64: 7, Valid: true}},
		},
	}
	q := &fakeQuerier{rows: rows}

	store := NewStore(NewPostgresSource(q, "public.jobs"))
	got, err := store.ListAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, `SELECT * FROM "public"."jobs"`, q.sql)
	assert.True(t, rows.closed)
	require.Len(t, got, 2)
	assert.Equal(t, map[string]string{"name": "QA", "employer": "", "posted": "", "openings": "7"}, got[0].Map())
	assert.Equal(t, map[string]string{"name": "Web Developer", "employer": "Cerner", "posted": "2024-03-01", "openings": "2"}, got[1].Map())
}

func TestPostgresSource_QueryError(t *testing.T) {
	q := &fakeQuerier{err: errors.New("connection refused")}

	_, err := NewPostgresSource(q, "jobs").Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query jobs")
}

func TestPostgresSource_RowsError(t *testing.T) {
	q := &fakeQuerier{rows: &fakeRows{
		fields: []pgconn.FieldDescription{{Name: "name"}},
		err:    errors.New("conn closed"),
	}}

	_, err := NewPostgresSource(q, "jobs").Load(context.Background())
	assert.ErrorContains(t, err, "conn closed")
}

func TestFormatValue(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"x", "x"},
		{[]byte("raw"), "raw"},
		{int64(42), "42"},
		{true, "true"},
		{ts, "2024-03-01T12:30:00Z"},
		{pgtype.Text{String: "t", Valid: true}, "t"},
		{pgtype.Text{}, ""},
	}

	for _, tt := range tests {
		if got := formatValue(tt.in); got != tt.want {
			t.Errorf("formatValue(%#v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
