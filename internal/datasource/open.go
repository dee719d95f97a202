// Package datasource builds the configured jobs.Source.
package datasource

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/JonMunkholm/techjobs/internal/config"
	"github.com/JonMunkholm/techjobs/internal/jobs"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Open returns the source selected by cfg.Data.Source. The returned close
// function releases any connections and is never nil.
func Open(ctx context.Context, cfg *config.Config) (jobs.Source, func(), error) {
	switch cfg.Data.Source {
	case config.SourceCSV, "":
		slog.Info("using csv job data", "file", cfg.Data.File)
		return jobs.NewCSVSource(cfg.Data.File), func() {}, nil
	case config.SourcePostgres:
		pool, err := connect(ctx, cfg.Database)
		if err != nil {
			return nil, func() {}, err
		}
		slog.Info("using postgres job data", "table", cfg.Data.Table)
		return jobs.NewPostgresSource(pool, cfg.Data.Table), pool.Close, nil
	default:
		return nil, func() {}, fmt.Errorf("unknown data source %q", cfg.Data.Source)
	}
}

// poolConfig parses the database URL and applies pool settings.
func poolConfig(db config.DatabaseConfig) (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(db.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	pc.MaxConns = int32(db.MaxConns)
	pc.MinConns = int32(db.MinConns)
	pc.MaxConnLifetime = db.MaxConnLifetime
	pc.MaxConnIdleTime = db.MaxConnIdleTime
	return pc, nil
}

func connect(ctx context.Context, db config.DatabaseConfig) (*pgxpool.Pool, error) {
	pc, err := poolConfig(db)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if u, err := url.Parse(db.URL); err == nil {
		slog.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
	} else {
		slog.Info("connected to database")
	}
	return pool, nil
}
