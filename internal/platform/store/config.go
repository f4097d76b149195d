package store

import "time"

// Backend names accepted by Config.Backend
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Config aggregates per backend configuration
// exactly one backend is opened, selected by Backend
type Config struct {
	AppName string

	// Backend selects the sql engine: "sqlite" (default) or "postgres"
	Backend string

	PG     PGConfig
	SQLite SQLiteConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// Guard/boot knobs:
	ConnectRetries int           // default 6 (63s(ish) max with exponential backoff)
	PingTimeout    time.Duration // default 5s
}

// SQLiteConfig configures the embedded sqlite file database
type SQLiteConfig struct {
	// Path is the database file; ":memory:" opens a throwaway in-memory db
	Path          string
	BusyTimeoutMs int
	LogSQL        bool
	SlowQueryMs   int
}
