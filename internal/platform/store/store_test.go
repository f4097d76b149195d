package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

// TestOpen_SQLiteDefault_SetsDB exercises the sqlite success path from Open
func TestOpen_SQLiteDefault_SetsDB(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cfg := Config{
		// Backend left empty on purpose: sqlite is the default
		SQLite: SQLiteConfig{
			Path: filepath.Join(t.TempDir(), "open.db"),
		},
	}

	s, err := Open(ctx, cfg)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if s == nil || s.DB == nil {
		t.Fatalf("Open did not initialize DB")
	}

	if err := s.Guard(ctx); err != nil {
		t.Fatalf("Guard returned error: %v", err)
	}
	if err := s.Close(ctx); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
}

// TestOpen_Postgres_BadURL_BubblesError covers the PG error path
func TestOpen_Postgres_BadURL_BubblesError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cfg := Config{
		Backend: BackendPostgres,
		PG: PGConfig{
			URL:         "://bad", // parse error inside pg.Open
			MaxConns:    1,
			SlowQueryMs: 0,
			LogSQL:      false,
		},
	}

	s, err := Open(ctx, cfg)
	if err == nil {
		t.Fatalf("expected Open error for bad PG URL, got store=%#v", s)
	}
	if s != nil {
		t.Fatalf("expected nil store on error, got %#v", s)
	}
}

// TestOpen_UnknownBackend_Errors rejects backends outside the closed set
func TestOpen_UnknownBackend_Errors(t *testing.T) {
	t.Parallel()

	s, err := Open(context.Background(), Config{Backend: "mssql"})
	if err == nil {
		t.Fatalf("expected Open error for unknown backend, got store=%#v", s)
	}
}

// TestOpen_OptionsApplied_NoPanicOnWithLogger exercises the WithLogger option path
func TestOpen_OptionsApplied_NoPanicOnWithLogger(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	// Build a zero-value zerolog.Logger (valid, no-op)
	var zl zerolog.Logger

	cfg := Config{
		SQLite: SQLiteConfig{Path: filepath.Join(t.TempDir(), "opt.db")},
	}

	s, err := Open(ctx, cfg, WithLogger(zl))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if s == nil {
		t.Fatalf("Open returned nil store")
	}
	if e := s.Close(ctx); e != nil {
		t.Fatalf("Close returned error: %v", e)
	}
}
