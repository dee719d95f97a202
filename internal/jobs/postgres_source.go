package jobs

import (
	"context"
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

// Querier is the subset of *pgxpool.Pool (or *pgx.Conn) a PostgresSource needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresSource loads job data from a PostgreSQL table. Every column of the
// table becomes a record field; NULL reads as "".
type PostgresSource struct {
	db    Querier
	table string
}

// NewPostgresSource returns a Source reading table through db. The table
// name may be schema-qualified ("public.jobs").
func NewPostgresSource(db Querier, table string) *PostgresSource {
	return &PostgresSource{db: db, table: table}
}

// Load runs SELECT * against the table.
func (s *PostgresSource) Load(ctx context.Context) (*Table, error) {
	ident := pgx.Identifier(strings.Split(s.table, "."))
	query := "SELECT * FROM " + ident.Sanitize()

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", s.table, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	t := &Table{Header: make([]string, len(fields))}
	for i, fd := range fields {
		t.Header[i] = fd.Name
	}

	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", s.table, err)
		}
		row := make([]string, len(vals))
		for i, v := range vals {
			row[i] = formatValue(v)
		}
		t.Rows = append(t.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", s.table, err)
	}

	return t, nil
}

// formatValue renders a decoded column value as the string a CSV cell
// would hold.
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format(time.DateOnly)
		}
		return x.Format(time.RFC3339)
	case driver.Valuer:
		dv, err := x.Value()
		if err != nil || dv == nil {
			return ""
		}
		return formatValue(dv)
	default:
		return fmt.Sprint(x)
	}
}
