// Package sqlite provides an embedded sqlite client (modernc, cgo-free)
// with optional query tracing
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Config configures the sqlite file database
type Config struct {
	Path          string
	BusyTimeoutMs int
	SlowMs        int
}

// DB is a sqlite client with the shared handle and optional tracer
type DB struct {
	SQL    *sql.DB
	Tracer QueryTracer
	SlowMs int
}

var openSQL = sql.Open

// Open opens (and creates if missing) the database file. Pragmas are set
// through the DSN so every pooled connection gets them
func Open(ctx context.Context, cfg Config, tracer QueryTracer) (*DB, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite: empty path")
	}
	busy := cfg.BusyTimeoutMs
	if busy <= 0 {
		busy = 5000
	}

	dsn := fmt.Sprintf(
		"%s?_pragma=journal_mode(wal)&_pragma=busy_timeout(%d)&_pragma=foreign_keys(1)",
		cfg.Path, busy,
	)

	db, err := openSQL("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// the file is a single writer; serialize through one connection so
	// concurrent readers never trip SQLITE_BUSY mid-transaction
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &DB{
		SQL:    db,
		Tracer: tracer,
		SlowMs: cfg.SlowMs,
	}, nil
}

// Close closes the underlying handle
func (d *DB) Close() error {
	if d == nil || d.SQL == nil {
		return nil
	}
	return d.SQL.Close()
}
