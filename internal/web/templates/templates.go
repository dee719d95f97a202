// Package templates renders the HTML pages of the job search UI as templ
// components.
package templates

import (
	"context"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// SearchForm holds the state of the search form.
type SearchForm struct {
	Fields []string // selectable columns; "all" is always offered first
	Field  string
	Query  string
}

// Results is the body of the results page. Exactly one of Rows or Values
// is rendered.
type Results struct {
	Heading string
	Columns []string
	Rows    [][]string

	// Values lists distinct values of ValuesField, each linking to a search.
	ValuesField string
	Values      []string
}

// page accumulates HTML and remembers the first write error.
type page struct {
	w   io.Writer
	err error
}

func (p *page) raw(parts ...string) {
	for _, s := range parts {
		if p.err != nil {
			return
		}
		_, p.err = io.WriteString(p.w, s)
	}
}

func (p *page) text(s string) {
	p.raw(templ.EscapeString(s))
}

// Layout wraps body in the page chrome.
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &page{w: w}
		p.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`,
			`<meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		p.text(title)
		p.raw(`</title></head><body><main><h1>`)
		p.text(title)
		p.raw(`</h1>`)
		if p.err != nil {
			return p.err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		p.raw(`</main></body></html>`)
		return p.err
	})
}

// Form renders the field selector and search box.
func Form(f SearchForm) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &page{w: w}
		p.raw(`<form method="get" action="/" class="search"><select name="field">`)
		for _, field := range append([]string{"all"}, f.Fields...) {
			p.raw(`<option value="`)
			p.text(field)
			p.raw(`"`)
			if field == f.Field {
				p.raw(` selected`)
			}
			p.raw(`>`)
			p.text(field)
			p.raw(`</option>`)
		}
		p.raw(`</select><input type="search" name="q" value="`)
		p.text(f.Query)
		p.raw(`" placeholder="Search term"><button type="submit">Search</button></form>`)
		return p.err
	})
}

// ResultsTable renders the heading and either the record table or the
// value list.
func ResultsTable(r Results) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &page{w: w}
		p.raw(`<h2>`)
		p.text(r.Heading)
		p.raw(`</h2>`)

		if r.ValuesField != "" {
			renderValues(p, r)
			return p.err
		}

		if len(r.Rows) == 0 {
			p.raw(`<p class="empty">No results</p>`)
			return p.err
		}

		p.raw(`<p class="count">`, strconv.Itoa(len(r.Rows)), ` result(s)</p><table><thead><tr>`)
		for _, col := range r.Columns {
			p.raw(`<th>`)
			p.text(col)
			p.raw(`</th>`)
		}
		p.raw(`</tr></thead><tbody>`)
		for _, row := range r.Rows {
			p.raw(`<tr>`)
			for _, cell := range row {
				p.raw(`<td>`)
				p.text(cell)
				p.raw(`</td>`)
			}
			p.raw(`</tr>`)
		}
		p.raw(`</tbody></table>`)
		return p.err
	})
}

func renderValues(p *page, r Results) {
	if len(r.Values) == 0 {
		p.raw(`<p class="empty">No values</p>`)
		return
	}
	p.raw(`<ul class="values">`)
	for _, v := range r.Values {
		q := url.Values{"field": {r.ValuesField}, "q": {v}}
		p.raw(`<li><a href="/?`)
		p.text(q.Encode())
		p.raw(`">`)
		p.text(v)
		p.raw(`</a></li>`)
	}
	p.raw(`</ul>`)
}

// ErrorAlert renders a user-facing error message.
func ErrorAlert(message, action, code string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &page{w: w}
		p.raw(`<div class="alert" role="alert"><p>`)
		p.text(message)
		p.raw(`</p>`)
		if action != "" {
			p.raw(`<p class="action">`)
			p.text(action)
			p.raw(`</p>`)
		}
		if code = strings.TrimSpace(code); code != "" {
			p.raw(`<p class="code">Error code: `)
			p.text(code)
			p.raw(`</p>`)
		}
		p.raw(`</div>`)
		return p.err
	})
}

// Join renders components one after another.
func Join(components ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, c := range components {
			if err := c.Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}
