// Package store provides a unified sql seam over the supported backends
package store

import (
	"context"
	"errors"
	"fmt"

	"prenoms/internal/platform/logger"
)

// Store is the facade over the selected backend
// zero value is safe but does nothing
type Store struct {
	// Log is the logger used by subclients
	// zero means a no op zerolog logger
	Log logger.Logger

	// DB is the sql seam repos run against, nil when nothing is open
	DB TxRunner
}

// Row exposes the minimal scan contract a single row needs
type Row interface {
	Scan(dest ...any) error
}

// Rows exposes the minimal iteration and scan for a result set
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
	Columns() []string
}

// CommandTag is a tiny interface to inspect command results
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is the read and write surface repos use for sql
// placeholders are always written postgres style ($1, $2, ...); the sqlite
// backend rewrites them before execution
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner wraps transaction execution around a function
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Pinger is any seam that can report readiness
type Pinger interface{ Ping(context.Context) error }

// Open constructs a Store with the backend cfg.Backend selects.
// An empty Backend means sqlite, the embedded default
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}

	// defaults for zero logger to avoid nil checks
	s.Log = s.Log.With().Logger()

	switch cfg.Backend {
	case BackendPostgres:
		db, err := openPG(ctx, cfg, s)
		if err != nil {
			return nil, err
		}
		s.DB = db
	case BackendSQLite, "":
		db, err := openSQLite(ctx, cfg, s)
		if err != nil {
			return nil, err
		}
		s.DB = db
	default:
		return nil, fmt.Errorf("store: unknown backend %q", cfg.Backend)
	}

	return s, nil
}

// Guard verifies the open seam responds before the process accepts work
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	if s.DB == nil {
		return errors.New("store: no database open")
	}
	if p, ok := any(s.DB).(Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			return fmt.Errorf("db: %w", err)
		}
	}
	return nil
}

// Close closes the open backend gracefully
// a nil seam is ignored
func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.DB == nil {
		return nil
	}
	if c, ok := s.DB.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
