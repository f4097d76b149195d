// Package http provides http transport for rankings
package http

import (
	stdhttp "net/http"

	"prenoms/internal/modkit/httpkit"
	"prenoms/internal/services/api/rankings/domain"
	svc "prenoms/internal/services/api/rankings/service"
)

// Register mounts ranking endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// ranked window for a sex and year
	httpkit.PostJSON[domain.RankingInput](r, "/", h.getRanking)

	// summed births for a sex and year
	httpkit.PostJSON[domain.TotalsInput](r, "/totals", h.totals)
}

type handlers struct{ svc svc.Service }

// @Summary Ranked name groups for a sex and year
// @Tags Rankings
// @Accept json
// @Produce json
// @Param payload body domain.RankingInput true "Query"
// @Success 200 {object} domain.RankingPage "ok"
// @Router /rankings [post]
func (h *handlers) getRanking(r *stdhttp.Request, in domain.RankingInput) (any, error) {
	return h.svc.GetRanking(r.Context(), in)
}

// @Summary Total births for a sex and year
// @Tags Rankings
// @Accept json
// @Produce json
// @Param payload body domain.TotalsInput true "Query"
// @Success 200 {object} domain.TotalsRow "ok"
// @Router /rankings/totals [post]
func (h *handlers) totals(r *stdhttp.Request, in domain.TotalsInput) (any, error) {
	return h.svc.GetTotalBirths(r.Context(), in)
}
