package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	GetRanking(ctx context.Context, in RankingInput) (RankingPage, error)
	GetTotalBirths(ctx context.Context, in TotalsInput) (TotalsRow, error)
}
