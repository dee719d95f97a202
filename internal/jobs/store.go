package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// DefaultLoadTimeout bounds a load attempt unless WithLoadTimeout says
// otherwise.
const DefaultLoadTimeout = 30 * time.Second

// Status describes the load state of a Store.
type Status struct {
	Loaded    bool      `json:"loaded"`
	LoadID    string    `json:"load_id,omitempty"`
	Rows      int       `json:"rows"`
	Columns   []string  `json:"columns"`
	LoadedAt  time.Time `json:"loaded_at,omitzero"`
	Attempts  int       `json:"attempts"`
	LastError string    `json:"last_error,omitempty"`
}

// Store holds the job data loaded from a Source and answers queries over it.
//
// Data is loaded on the first query. Once loaded it never changes and is
// never handed out by reference. A Store is safe for concurrent use.
type Store struct {
	source      Source
	logger      *slog.Logger
	loadTimeout time.Duration

	loaded atomic.Bool
	group  singleflight.Group

	mu        sync.RWMutex
	columns   []string
	records   []Record
	loadID    string
	loadedAt  time.Time
	attempts  int
	lastError error
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for load diagnostics.
func WithLogger(l *slog.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLoadTimeout bounds a single load attempt. Zero means no bound.
func WithLoadTimeout(d time.Duration) StoreOption {
	return func(s *Store) {
		if d >= 0 {
			s.loadTimeout = d
		}
	}
}

// NewStore creates a Store serving data from src. Nothing is read until
// the first query.
func NewStore(src Source, opts ...StoreOption) *Store {
	s := &Store{
		source:      src,
		logger:      slog.Default(),
		loadTimeout: DefaultLoadTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ensureLoaded loads the data if no earlier load succeeded. Concurrent
// callers share one load, which runs detached from any single caller's
// context and is bounded by the load timeout. A caller whose own ctx ends
// stops waiting without failing the others. On failure the store stays
// unloaded, so the next call tries again.
func (s *Store) ensureLoaded(ctx context.Context) error {
	if s.loaded.Load() {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrNotLoaded, err)
	}

	ch := s.group.DoChan("load", func() (any, error) {
		if s.loaded.Load() {
			return nil, nil
		}
		loadCtx := context.WithoutCancel(ctx)
		if s.loadTimeout > 0 {
			var cancel context.CancelFunc
			loadCtx, cancel = context.WithTimeout(loadCtx, s.loadTimeout)
			defer cancel()
		}
		return nil, s.load(loadCtx)
	})

	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrNotLoaded, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return fmt.Errorf("%w: %w", ErrNotLoaded, res.Err)
		}
		return nil
	}
}

func (s *Store) load(ctx context.Context) error {
	start := time.Now()

	s.mu.Lock()
	s.attempts++
	attempt := s.attempts
	s.mu.Unlock()

	s.logger.Info("loading job data", "attempt", attempt)

	columns, records, err := s.read(ctx)
	if err != nil {
		s.mu.Lock()
		s.lastError = err
		s.mu.Unlock()

		s.logger.Error("failed to load job data", "attempt", attempt, "error", err)
		return err
	}

	id := uuid.Must(uuid.NewV7()).String()

	s.mu.Lock()
	s.columns = columns
	s.records = records
	s.loadID = id
	s.loadedAt = time.Now()
	s.lastError = nil
	s.mu.Unlock()
	s.loaded.Store(true)

	s.logger.Info("job data loaded",
		"load_id", id,
		"rows", len(records),
		"columns", len(columns),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

func (s *Store) read(ctx context.Context) ([]string, []Record, error) {
	table, err := s.source.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	return buildRecords(table)
}

// snapshot returns the loaded columns and records. Callers must not modify
// the returned slices.
func (s *Store) snapshot() ([]string, []Record) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.columns, s.records
}

// Load forces the initial load without running a query.
func (s *Store) Load(ctx context.Context) error {
	return s.ensureLoaded(ctx)
}

// Loaded reports whether the data has been loaded.
func (s *Store) Loaded() bool {
	return s.loaded.Load()
}

// Columns returns the column names of the loaded data in header order.
func (s *Store) Columns(ctx context.Context) ([]string, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	cols, _ := s.snapshot()
	return append([]string(nil), cols...), nil
}

// Status returns the current load state without triggering a load.
func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Status{
		Loaded:   s.loaded.Load(),
		LoadID:   s.loadID,
		Rows:     len(s.records),
		Columns:  append([]string{}, s.columns...),
		LoadedAt: s.loadedAt,
		Attempts: s.attempts,
	}
	if s.lastError != nil {
		st.LastError = s.lastError.Error()
	}
	return st
}
