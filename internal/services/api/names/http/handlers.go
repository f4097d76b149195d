// Package http provides http transport for names
package http

import (
	stdhttp "net/http"

	"prenoms/internal/modkit/httpkit"
	"prenoms/internal/services/api/names/domain"
	svc "prenoms/internal/services/api/names/service"
)

// Register mounts name endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// prefix search over group keys
	httpkit.PostJSON[domain.SearchInput](r, "/search", h.search)

	// one group's records, year ascending
	httpkit.PostJSON[domain.ByNameInput](r, "/by-name", h.byName)

	// union of records for several names
	httpkit.PostJSON[domain.CompareInput](r, "/compare", h.compare)
}

type handlers struct{ svc svc.Service }

// @Summary Search name groups by prefix
// @Tags Names
// @Accept json
// @Produce json
// @Param payload body domain.SearchInput true "Query"
// @Success 200 {object} domain.SearchPage "ok"
// @Router /names/search [post]
func (h *handlers) search(r *stdhttp.Request, in domain.SearchInput) (any, error) {
	return h.svc.Search(r.Context(), in)
}

// @Summary Records for one name's group
// @Tags Names
// @Accept json
// @Produce json
// @Param payload body domain.ByNameInput true "Query"
// @Success 200 {object} domain.NameRecords "ok"
// @Router /names/by-name [post]
func (h *handlers) byName(r *stdhttp.Request, in domain.ByNameInput) (any, error) {
	return h.svc.ByName(r.Context(), in)
}

// @Summary Compare several names
// @Tags Names
// @Accept json
// @Produce json
// @Param payload body domain.CompareInput true "Query"
// @Success 200 {object} domain.ComparePage "ok"
// @Router /names/compare [post]
func (h *handlers) compare(r *stdhttp.Request, in domain.CompareInput) (any, error) {
	return h.svc.Compare(r.Context(), in)
}
