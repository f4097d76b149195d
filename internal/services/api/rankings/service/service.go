// Package service contains the ranking workflows
package service

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"prenoms/internal/core/names"
	"prenoms/internal/modkit/repokit"
	perr "prenoms/internal/platform/errors"
	"prenoms/internal/services/api/rankings/domain"
	recdomain "prenoms/internal/services/records/domain"
	recrepo "prenoms/internal/services/records/repo"
	"prenoms/internal/services/variants"
)

const (
	defaultLimit = 100

	// rankingCacheSize bounds the per-process cache of full ranked lists
	// a (policy, sex, year) triple is one entry; the dataset is immutable
	// for the process lifetime so entries never go stale
	rankingCacheSize = 128
)

// Service defines the rankings service contract
type Service interface {
	domain.ServicePort
}

// rankKey identifies one cached full ranking
type rankKey struct {
	policy names.Policy
	sex    recdomain.Sex
	year   int
}

// Svc implements the rankings service
type Svc struct {
	Repo   recrepo.Repo
	binder repokit.Binder[recrepo.Repo]
	db     repokit.TxRunner
	labels *variants.Resolver
	cache  *lru.Cache[rankKey, []recdomain.GroupTotal]
}

// New constructs a rankings service
func New(db repokit.TxRunner, binder repokit.Binder[recrepo.Repo]) *Svc {
	if db == nil {
		panic("rankings.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("rankings.Service requires a non nil Repo binder")
	}
	cache, err := lru.New[rankKey, []recdomain.GroupTotal](rankingCacheSize)
	if err != nil {
		panic(err)
	}
	repo := binder.Bind(db)
	return &Svc{
		Repo:   repo,
		binder: binder,
		db:     db,
		labels: variants.New(repo),
		cache:  cache,
	}
}

// GetRanking returns one window of the ranked groups for a sex and year,
// with each row's rank in the 1, 5, and 10 year earlier rankings
func (s *Svc) GetRanking(ctx context.Context, in domain.RankingInput) (domain.RankingPage, error) {
	p, ok := names.ParsePolicy(in.Policy)
	if !ok {
		return domain.RankingPage{}, perr.InvalidArgf("unknown policy %q", in.Policy)
	}
	sex, ok := recdomain.ParseSex(in.Sex)
	if !ok {
		return domain.RankingPage{}, perr.InvalidArgf("unknown sex %q", in.Sex)
	}
	limit := in.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	current, err := s.ranked(ctx, rankKey{policy: p, sex: sex, year: in.Year})
	if err != nil {
		return domain.RankingPage{}, err
	}

	// the cached ranking holds every group for the slice, so its length is
	// already the distinct-group count and no CountGroups round trip is needed
	page := domain.RankingPage{
		Rows:  []domain.GroupedResult{},
		Total: int64(len(current)),
	}
	if in.Offset >= len(current) {
		return page, nil
	}
	end := in.Offset + limit
	if end > len(current) {
		end = len(current)
	}
	window := current[in.Offset:end]

	// the three historical rankings; an out-of-range year just yields an
	// empty list, meaning every lookup misses
	prev, err := s.rankIndex(ctx, rankKey{policy: p, sex: sex, year: in.Year - 1})
	if err != nil {
		return domain.RankingPage{}, err
	}
	five, err := s.rankIndex(ctx, rankKey{policy: p, sex: sex, year: in.Year - 5})
	if err != nil {
		return domain.RankingPage{}, err
	}
	ten, err := s.rankIndex(ctx, rankKey{policy: p, sex: sex, year: in.Year - 10})
	if err != nil {
		return domain.RankingPage{}, err
	}

	keys := make([]string, len(window))
	for i, gt := range window {
		keys[i] = gt.Key
	}
	labels, err := s.labels.LabelMany(ctx, p, keys, sex)
	if err != nil {
		return domain.RankingPage{}, err
	}

	page.Rows = make([]domain.GroupedResult, 0, len(window))
	for i, gt := range window {
		page.Rows = append(page.Rows, domain.GroupedResult{
			Key:          gt.Key,
			DisplayName:  labels[gt.Key],
			Sex:          sex.String(),
			Year:         in.Year,
			Total:        gt.Total,
			CurrentRank:  in.Offset + i + 1,
			PreviousRank: rankOf(prev, gt.Key),
			FiveYearRank: rankOf(five, gt.Key),
			TenYearRank:  rankOf(ten, gt.Key),
		})
	}
	return page, nil
}

// GetTotalBirths returns the summed births for a sex and year
func (s *Svc) GetTotalBirths(ctx context.Context, in domain.TotalsInput) (domain.TotalsRow, error) {
	sex, ok := recdomain.ParseSex(in.Sex)
	if !ok {
		return domain.TotalsRow{}, perr.InvalidArgf("unknown sex %q", in.Sex)
	}
	births, err := s.Repo.TotalBirths(ctx, sex, in.Year)
	if err != nil {
		return domain.TotalsRow{}, perr.FromDB(err, "total births")
	}
	return domain.TotalsRow{Sex: sex.String(), Year: in.Year, Births: births}, nil
}

// ranked returns the full ordered ranking for one (policy, sex, year),
// loading through the cache
func (s *Svc) ranked(ctx context.Context, k rankKey) ([]recdomain.GroupTotal, error) {
	if hit, ok := s.cache.Get(k); ok {
		return hit, nil
	}
	totals, err := s.Repo.GroupTotals(ctx, k.policy, k.sex, k.year)
	if err != nil {
		return nil, perr.FromDB(err, "group totals")
	}
	s.cache.Add(k, totals)
	return totals, nil
}

// rankIndex maps group key to 1-based rank for one (policy, sex, year)
func (s *Svc) rankIndex(ctx context.Context, k rankKey) (map[string]int, error) {
	totals, err := s.ranked(ctx, k)
	if err != nil {
		return nil, err
	}
	idx := make(map[string]int, len(totals))
	for i, gt := range totals {
		idx[gt.Key] = i + 1
	}
	return idx, nil
}

func rankOf(idx map[string]int, key string) *int {
	if r, ok := idx[key]; ok {
		return &r
	}
	return nil
}
