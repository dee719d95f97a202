package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/JonMunkholm/techjobs/internal/jobs"
)

// printer handles table or JSON output.
type printer struct {
	format string
	w      io.Writer
}

func newPrinter(format string, w io.Writer) *printer {
	return &printer{format: format, w: w}
}

// json marshals v as indented JSON.
func (p *printer) json(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// table writes header then rows, tab aligned.
func (p *printer) table(header []string, rows [][]string) {
	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		_, _ = fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	_ = tw.Flush()
}

// records prints records in the chosen format. Table columns follow the
// data header.
func (p *printer) records(columns []string, records []jobs.Record) error {
	if p.format == "json" {
		return p.json(records)
	}
	if len(records) == 0 {
		_, err := fmt.Fprintln(p.w, "No results")
		return err
	}

	header := make([]string, len(columns))
	for i, c := range columns {
		header[i] = strings.ToUpper(c)
	}
	rows := make([][]string, len(records))
	for i, r := range records {
		row := make([]string, len(columns))
		for j, c := range columns {
			row[j] = r.Value(c)
		}
		rows[i] = row
	}
	p.table(header, rows)
	return nil
}

// values prints the distinct values of field.
func (p *printer) values(field string, values []string) error {
	if p.format == "json" {
		return p.json(values)
	}
	rows := make([][]string, len(values))
	for i, v := range values {
		rows[i] = []string{v}
	}
	p.table([]string{strings.ToUpper(field)}, rows)
	return nil
}
