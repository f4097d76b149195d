// @title         Prenoms API
// @version       0.1.0
// @description   Read only endpoints for french first name statistics

package main

import (
	"context"

	"github.com/joho/godotenv"

	"prenoms/internal/platform/config"
	"prenoms/internal/platform/logger"
	phttp "prenoms/internal/platform/net/http"
	"prenoms/internal/platform/store"

	"prenoms/internal/services/api"
)

func main() {
	_ = godotenv.Load()

	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	dbCfg := root.Prefix("SERVICE_DB_")

	// bring up logging early
	l := logger.Get()

	st, err := store.Open(
		context.Background(),
		store.Config{
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
		},
		store.WithLogger(*l),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Store:          st,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	// run
	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
