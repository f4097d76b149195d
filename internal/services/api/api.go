// Package api provides the HTTP API for the application
package api

import (
	"prenoms/internal/platform/config"
	"prenoms/internal/platform/logger"
	phttp "prenoms/internal/platform/net/http"
	"prenoms/internal/platform/store"

	"prenoms/internal/modkit"
	"prenoms/internal/modkit/httpkit"
	"prenoms/internal/modkit/module"
	"prenoms/internal/modkit/swaggerkit"

	metamod "prenoms/internal/services/api/meta/module"
	namesmod "prenoms/internal/services/api/names/module"
	rankingsmod "prenoms/internal/services/api/rankings/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		DB:  opt.Store.DB,
	}

	mods := []module.Module{
		metamod.New(deps),
		rankingsmod.New(deps),
		namesmod.New(deps),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
