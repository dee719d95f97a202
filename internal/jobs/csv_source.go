package jobs

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ctxCheckInterval is how many rows are read between context checks.
const ctxCheckInterval = 1000

// CSVSource loads job data from an RFC 4180 CSV file whose first row is the
// header.
type CSVSource struct {
	path string
}

// NewCSVSource returns a Source reading the CSV file at path.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

// Path returns the file the source reads.
func (s *CSVSource) Path() string {
	return s.path
}

// Load opens and parses the file.
func (s *CSVSource) Load(ctx context.Context) (*Table, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()

	t, err := ReadCSV(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	return t, nil
}

// ReadCSV parses CSV data from r. A leading UTF-8 byte order mark is
// dropped and invalid UTF-8 is replaced with U+FFFD. Every row must have as
// many fields as the header; blank lines are skipped.
func ReadCSV(ctx context.Context, r io.Reader) (*Table, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	cr := csv.NewReader(decoded)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyHeader
	}
	if err != nil {
		return nil, fmt.Errorf("invalid csv: header: %w", err)
	}
	if isBlankRow(header) {
		return nil, ErrEmptyHeader
	}

	t := &Table{Header: header}
	for n := 1; ; n++ {
		if n%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid csv: %w", err)
		}
		t.Rows = append(t.Rows, row)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
