package module

import (
	"context"

	"prenoms/internal/services/api/rankings/domain"
	ranksvc "prenoms/internal/services/api/rankings/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptRankingsPort struct{ svc ranksvc.Service }

// GetRanking returns a ranked window of name groups
func (a adaptRankingsPort) GetRanking(ctx context.Context, in domain.RankingInput) (domain.RankingPage, error) {
	return a.svc.GetRanking(ctx, in)
}

// GetTotalBirths returns summed births for a sex and year
func (a adaptRankingsPort) GetTotalBirths(ctx context.Context, in domain.TotalsInput) (domain.TotalsRow, error) {
	return a.svc.GetTotalBirths(ctx, in)
}
