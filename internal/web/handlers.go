package web

import (
	"net/http"
	"strings"

	"github.com/JonMunkholm/techjobs/internal/jobs"
	"github.com/JonMunkholm/techjobs/internal/logging"
	"github.com/JonMunkholm/techjobs/internal/web/templates"
	"github.com/go-chi/chi/v5"
)

// JobsResponse is the body of the job listing endpoints.
type JobsResponse struct {
	Field string        `json:"field,omitempty"`
	Query string        `json:"query,omitempty"`
	Count int           `json:"count"`
	Jobs  []jobs.Record `json:"jobs"`
}

// ValuesResponse is the body of the distinct-values endpoint.
type ValuesResponse struct {
	Field  string   `json:"field"`
	Count  int      `json:"count"`
	Values []string `json:"values"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady reports ready once the data set has been loaded.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	st := s.store.Status()
	if !st.Loaded {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not loaded"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Status())
}

func (s *Server) handleListFields(w http.ResponseWriter, r *http.Request) {
	cols, err := s.store.Columns(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"fields": cols})
}

func (s *Server) handleListValues(w http.ResponseWriter, r *http.Request) {
	field := chi.URLParam(r, "field")
	values, err := s.store.ListDistinctValues(r.Context(), field)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ValuesResponse{Field: field, Count: len(values), Values: values})
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.ListAll(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, JobsResponse{Count: len(records), Jobs: records})
}

// handleSearchJobs serves /api/jobs/search?field=<column|all>&q=<term>.
// A missing field searches every column.
func (s *Server) handleSearchJobs(w http.ResponseWriter, r *http.Request) {
	field := strings.TrimSpace(r.URL.Query().Get("field"))
	if field == "" {
		field = jobs.FieldAll
	}
	q := r.URL.Query().Get("q")

	records, err := s.store.Search(r.Context(), field, q)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, JobsResponse{Field: field, Query: q, Count: len(records), Jobs: records})
}

// handleIndex renders the search page. With q set it shows search results;
// with only a column selected it lists that column's distinct values;
// otherwise it lists every job.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	field := strings.TrimSpace(r.URL.Query().Get("field"))
	q := r.URL.Query().Get("q")

	cols, err := s.store.Columns(ctx)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	var res templates.Results
	switch {
	case q != "":
		if field == "" {
			field = jobs.FieldAll
		}
		records, err := s.store.Search(ctx, field, q)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		res = recordResults("Search results", cols, records)
	case field != "" && field != jobs.FieldAll:
		values, err := s.store.ListDistinctValues(ctx, field)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		res = templates.Results{Heading: "All " + field + " values", ValuesField: field, Values: values}
	default:
		records, err := s.store.ListAll(ctx)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		res = recordResults("All jobs", cols, records)
	}

	form := templates.SearchForm{Fields: cols, Field: field, Query: q}
	page := templates.Layout("Tech Jobs", templates.Join(templates.Form(form), templates.ResultsTable(res)))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Render(ctx, w); err != nil {
		logging.FromContext(ctx).Error("render index", "error", err)
	}
}

// recordResults lays records out as table rows in column order.
func recordResults(heading string, cols []string, records []jobs.Record) templates.Results {
	rows := make([][]string, len(records))
	for i, rec := range records {
		row := make([]string, len(cols))
		for j, c := range cols {
			row[j] = rec.Value(c)
		}
		rows[i] = row
	}
	return templates.Results{Heading: heading, Columns: cols, Rows: rows}
}
