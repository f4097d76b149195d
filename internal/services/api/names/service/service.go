// Package service contains the per-name query workflows
package service

import (
	"context"

	"prenoms/internal/core/names"
	"prenoms/internal/modkit/repokit"
	perr "prenoms/internal/platform/errors"
	"prenoms/internal/services/api/names/domain"
	recdomain "prenoms/internal/services/records/domain"
	recrepo "prenoms/internal/services/records/repo"
	"prenoms/internal/services/variants"
)

const defaultSearchLimit = 20

// Service defines the names service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the names service
type Svc struct {
	Repo   recrepo.Repo
	binder repokit.Binder[recrepo.Repo]
	db     repokit.TxRunner
	labels *variants.Resolver
}

// New constructs a names service
func New(db repokit.TxRunner, binder repokit.Binder[recrepo.Repo]) *Svc {
	if db == nil {
		panic("names.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("names.Service requires a non nil Repo binder")
	}
	repo := binder.Bind(db)
	return &Svc{
		Repo:   repo,
		binder: binder,
		db:     db,
		labels: variants.New(repo),
	}
}

// Search matches groups whose key starts with the normalized pattern.
// A pattern that matches nothing is an empty page, not an error
func (s *Svc) Search(ctx context.Context, in domain.SearchInput) (domain.SearchPage, error) {
	p, sex, err := parseSelection(in.Policy, in.Sex)
	if err != nil {
		return domain.SearchPage{}, err
	}
	limit := in.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	prefix := p.Key(in.Pattern)
	page := domain.SearchPage{Rows: []domain.SearchRow{}}
	if prefix == "" {
		return page, nil
	}

	groups, err := s.Repo.SearchGroups(ctx, p, prefix, sex, in.Year, limit)
	if err != nil {
		return domain.SearchPage{}, perr.FromDB(err, "search groups")
	}

	keys := make([]string, len(groups))
	for i, g := range groups {
		keys[i] = g.Key
	}
	labels, err := s.labels.LabelMany(ctx, p, keys, sex)
	if err != nil {
		return domain.SearchPage{}, err
	}

	for _, g := range groups {
		page.Rows = append(page.Rows, domain.SearchRow{
			Key:         g.Key,
			DisplayName: labels[g.Key],
			Total:       g.Total,
		})
	}
	return page, nil
}

// ByName returns one group's records sorted year ascending, each carrying
// the group's display label
func (s *Svc) ByName(ctx context.Context, in domain.ByNameInput) (domain.NameRecords, error) {
	p, sex, err := parseSelection(in.Policy, in.Sex)
	if err != nil {
		return domain.NameRecords{}, err
	}

	key := p.Key(in.Name)
	if key == "" {
		return domain.NameRecords{}, perr.InvalidArgf("blank name")
	}

	recs, err := s.Repo.RecordsByKeys(ctx, p, []string{key}, sex)
	if err != nil {
		return domain.NameRecords{}, perr.FromDB(err, "records by name")
	}
	series, err := s.Repo.YearSeries(ctx, p, key, sex)
	if err != nil {
		return domain.NameRecords{}, perr.FromDB(err, "year series")
	}
	label, err := s.labels.Label(ctx, p, key, sex)
	if err != nil {
		return domain.NameRecords{}, err
	}

	out := domain.NameRecords{
		Key:         key,
		DisplayName: label,
		Rows:        make([]domain.RecordRow, 0, len(recs)),
		Series:      make([]domain.YearTotal, 0, len(series)),
	}
	for _, rec := range recs {
		out.Rows = append(out.Rows, recordRow(rec, label))
	}
	for _, yc := range series {
		out.Series = append(out.Series, domain.YearTotal{Year: yc.Year, Total: yc.Total})
	}
	return out, nil
}

// Compare returns the union of records whose key matches any input name.
// Non-exact policies can pull in spellings that were not asked for; the
// caller sees them labeled under their own group
func (s *Svc) Compare(ctx context.Context, in domain.CompareInput) (domain.ComparePage, error) {
	p, sex, err := parseSelection(in.Policy, in.Sex)
	if err != nil {
		return domain.ComparePage{}, err
	}

	seen := make(map[string]struct{}, len(in.Names))
	keys := make([]string, 0, len(in.Names))
	for _, n := range in.Names {
		k := p.Key(n)
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return domain.ComparePage{}, perr.InvalidArgf("no usable names")
	}

	recs, err := s.Repo.RecordsByKeys(ctx, p, keys, sex)
	if err != nil {
		return domain.ComparePage{}, perr.FromDB(err, "records by names")
	}
	labels, err := s.labels.LabelMany(ctx, p, keys, sex)
	if err != nil {
		return domain.ComparePage{}, err
	}

	page := domain.ComparePage{Keys: keys, Rows: make([]domain.RecordRow, 0, len(recs))}
	for _, rec := range recs {
		label, ok := labels[p.Key(rec.Name)]
		if !ok {
			label = names.FormatDisplay(p.Key(rec.Name))
		}
		page.Rows = append(page.Rows, recordRow(rec, label))
	}
	return page, nil
}

func parseSelection(policy, sex string) (names.Policy, recdomain.Sex, error) {
	p, ok := names.ParsePolicy(policy)
	if !ok {
		return 0, 0, perr.InvalidArgf("unknown policy %q", policy)
	}
	sx, ok := recdomain.ParseSex(sex)
	if !ok {
		return 0, 0, perr.InvalidArgf("unknown sex %q", sex)
	}
	return p, sx, nil
}

func recordRow(rec recdomain.BirthRecord, label string) domain.RecordRow {
	return domain.RecordRow{
		Name:        rec.Name,
		DisplayName: label,
		Sex:         rec.Sex.String(),
		Year:        rec.Year,
		Count:       rec.Count,
	}
}
