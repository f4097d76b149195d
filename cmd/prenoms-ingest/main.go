package main

import (
	"context"
	"flag"

	"github.com/joho/godotenv"

	"prenoms/internal/platform/config"
	"prenoms/internal/platform/logger"
	"prenoms/internal/platform/store"

	ingestsvc "prenoms/internal/services/ingest/service"
	recrepo "prenoms/internal/services/records/repo"
)

func main() {
	_ = godotenv.Load()

	root := config.New()
	dbCfg := root.Prefix("SERVICE_DB_")

	l := logger.Get()

	var (
		fManifest = flag.String("manifest", "manifest.yaml", "dataset manifest to import")
		fFresh    = flag.Bool("fresh", false, "delete existing records before importing")
		fBatch    = flag.Int("batch", 0, "records per insert transaction (0 = default)")
	)
	flag.Parse()

	st, err := store.Open(context.Background(), store.Config{
		AppName: "prenoms",
		Backend: dbCfg.MayString("BACKEND", store.BackendSQLite),
		SQLite: store.SQLiteConfig{
			Path:          dbCfg.MayString("SQLITE_PATH", "prenoms.db"),
			BusyTimeoutMs: dbCfg.MayInt("SQLITE_BUSY_MS", 5000),
			SlowQueryMs:   dbCfg.MayInt("SLOW_MS", 500),
			LogSQL:        dbCfg.MayBool("LOG_SQL", false),
		},
		PG: store.PGConfig{
			URL:         dbCfg.MayString("PG_DBURL", ""),
			MaxConns:    int32(dbCfg.MayInt("PG_MAX_CONNS", 4)),
			SlowQueryMs: dbCfg.MayInt("SLOW_MS", 500),
			LogSQL:      dbCfg.MayBool("LOG_SQL", false),
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	svc := ingestsvc.New(st.DB, recrepo.NewStore(), ingestsvc.Config{
		BatchSize: *fBatch,
		Fresh:     *fFresh,
	})

	res, err := svc.Run(context.Background(), *fManifest)
	if err != nil {
		l.Panic().Err(err).Str("manifest", *fManifest).Msg("import failed")
	}

	l.Info().
		Str("run_id", res.RunID).
		Int64("inserted", res.Inserted).
		Int64("skipped", res.Skipped).
		Msg("done")
}
