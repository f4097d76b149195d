// Package repo provides sql access to the birth record dataset
package repo

import (
	"context"
	"fmt"
	"strings"

	"prenoms/internal/core/names"
	"prenoms/internal/modkit/repokit"
	"prenoms/internal/services/records/domain"
)

// Repo is the persistence surface for birth records
// read queries accept a grouping policy; the policy's key expression comes
// from a closed set, never from user input
type Repo interface {
	GroupTotals(ctx context.Context, p names.Policy, sex domain.Sex, year int) ([]domain.GroupTotal, error)
	VariantsByKey(ctx context.Context, p names.Policy, key string, sex domain.Sex) ([]domain.VariantCount, error)
	VariantsByKeys(ctx context.Context, p names.Policy, keys []string, sex domain.Sex) (map[string][]domain.VariantCount, error)
	CountGroups(ctx context.Context, p names.Policy, sex domain.Sex, year int) (int64, error)
	YearSeries(ctx context.Context, p names.Policy, key string, sex domain.Sex) ([]domain.YearCount, error)
	RecordsByKeys(ctx context.Context, p names.Policy, keys []string, sex domain.Sex) ([]domain.BirthRecord, error)
	TotalBirths(ctx context.Context, sex domain.Sex, year int) (int64, error)
	SearchGroups(ctx context.Context, p names.Policy, prefix string, sex domain.Sex, year, limit int) ([]domain.GroupTotal, error)
	YearBounds(ctx context.Context) (minYear, maxYear int, err error)

	EnsureSchema(ctx context.Context) error
	InsertRecords(ctx context.Context, recs []domain.BirthRecord) error
	DeleteAll(ctx context.Context) error
	SetDatasetMeta(ctx context.Context, m domain.DatasetMeta) error
	DatasetMeta(ctx context.Context) (domain.DatasetMeta, error)
	CountRecords(ctx context.Context) (int64, error)
	CountNames(ctx context.Context) (int64, error)
}

type (
	// Store is a binder that can bind the repo to a Queryer or TxRunner
	Store struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// NewStore returns a binder that can bind the repo to a Queryer or TxRunner
func NewStore() repokit.Binder[Repo] { return Store{} }

// Bind wires a Queryer to the repo
func (Store) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) GroupTotals(
	ctx context.Context,
	p names.Policy,
	sex domain.Sex,
	year int,
) ([]domain.GroupTotal, error) {
	sql := `
select ` + p.KeyExpr() + ` as k, sum(count) as total
from birth_records
where year = $1
and ($2 = 0 or sex = $2)
group by k
order by total desc, k asc
`
	rows, err := r.q.Query(ctx, sql, year, int(sex))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.GroupTotal
	for rows.Next() {
		var gt domain.GroupTotal
		if err := rows.Scan(&gt.Key, &gt.Total); err != nil {
			return nil, err
		}
		out = append(out, gt)
	}
	return out, rows.Err()
}

func (r *queries) VariantsByKey(
	ctx context.Context,
	p names.Policy,
	key string,
	sex domain.Sex,
) ([]domain.VariantCount, error) {
	sql := `
select name, sum(count) as total
from birth_records
where ` + p.KeyExpr() + ` = $1
and ($2 = 0 or sex = $2)
group by name, name_ci
order by total desc, name_ci asc
`
	rows, err := r.q.Query(ctx, sql, key, int(sex))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.VariantCount
	for rows.Next() {
		var vc domain.VariantCount
		if err := rows.Scan(&vc.Name, &vc.Total); err != nil {
			return nil, err
		}
		out = append(out, vc)
	}
	return out, rows.Err()
}

// VariantsByKeys is the batch form used when labeling a page of groups:
// one query instead of one per key
func (r *queries) VariantsByKeys(
	ctx context.Context,
	p names.Policy,
	keys []string,
	sex domain.Sex,
) (map[string][]domain.VariantCount, error) {
	out := make(map[string][]domain.VariantCount, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	ph := make([]string, len(keys))
	args := make([]any, 0, len(keys)+1)
	args = append(args, int(sex))
	for i, k := range keys {
		ph[i] = fmt.Sprintf("$%d", i+2)
		args = append(args, k)
	}

	sql := `
select ` + p.KeyExpr() + ` as k, name, sum(count) as total
from birth_records
where ($1 = 0 or sex = $1)
and ` + p.KeyExpr() + ` in (` + strings.Join(ph, ", ") + `)
group by k, name, name_ci
order by k asc, total desc, name_ci asc
`
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var key string
		var vc domain.VariantCount
		if err := rows.Scan(&key, &vc.Name, &vc.Total); err != nil {
			return nil, err
		}
		out[key] = append(out[key], vc)
	}
	return out, rows.Err()
}

func (r *queries) CountGroups(ctx context.Context, p names.Policy, sex domain.Sex, year int) (int64, error) {
	sql := `
select count(distinct ` + p.KeyExpr() + `)
from birth_records
where year = $1
and ($2 = 0 or sex = $2)
`
	var n int64
	if err := r.q.QueryRow(ctx, sql, year, int(sex)).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *queries) YearSeries(
	ctx context.Context,
	p names.Policy,
	key string,
	sex domain.Sex,
) ([]domain.YearCount, error) {
	sql := `
select year, sum(count) as total
from birth_records
where ` + p.KeyExpr() + ` = $1
and ($2 = 0 or sex = $2)
group by year
order by year asc
`
	rows, err := r.q.Query(ctx, sql, key, int(sex))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.YearCount
	for rows.Next() {
		var yc domain.YearCount
		if err := rows.Scan(&yc.Year, &yc.Total); err != nil {
			return nil, err
		}
		out = append(out, yc)
	}
	return out, rows.Err()
}

// RecordsByKeys returns the raw per-year records whose group key matches any
// of the given keys. Multi-key calls have union semantics: every spelling
// sharing a key with an input is included
func (r *queries) RecordsByKeys(
	ctx context.Context,
	p names.Policy,
	keys []string,
	sex domain.Sex,
) ([]domain.BirthRecord, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	ph := make([]string, len(keys))
	args := make([]any, 0, len(keys)+1)
	args = append(args, int(sex))
	for i, k := range keys {
		ph[i] = fmt.Sprintf("$%d", i+2)
		args = append(args, k)
	}

	sql := `
select name, sex, year, count, accent_key, phonetic_key
from birth_records
where ($1 = 0 or sex = $1)
and ` + p.KeyExpr() + ` in (` + strings.Join(ph, ", ") + `)
order by year asc, name_ci asc, sex asc
`
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.BirthRecord
	for rows.Next() {
		var rec domain.BirthRecord
		var sx int
		if err := rows.Scan(&rec.Name, &sx, &rec.Year, &rec.Count, &rec.AccentKey, &rec.PhoneticKey); err != nil {
			return nil, err
		}
		rec.Sex = domain.Sex(sx)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *queries) TotalBirths(ctx context.Context, sex domain.Sex, year int) (int64, error) {
	const sql = `
select coalesce(sum(count), 0)
from birth_records
where year = $1
and ($2 = 0 or sex = $2)
`
	var n int64
	if err := r.q.QueryRow(ctx, sql, year, int(sex)).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *queries) SearchGroups(
	ctx context.Context,
	p names.Policy,
	prefix string,
	sex domain.Sex,
	year, limit int,
) ([]domain.GroupTotal, error) {
	sql := `
select ` + p.KeyExpr() + ` as k, sum(count) as total
from birth_records
where ` + p.KeyExpr() + ` like $1 || '%' escape '\'
and ($2 = 0 or sex = $2)
and ($3 = 0 or year = $3)
group by k
order by total desc, k asc
limit $4
`
	rows, err := r.q.Query(ctx, sql, escapeLike(prefix), int(sex), year, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.GroupTotal
	for rows.Next() {
		var gt domain.GroupTotal
		if err := rows.Scan(&gt.Key, &gt.Total); err != nil {
			return nil, err
		}
		out = append(out, gt)
	}
	return out, rows.Err()
}

// likeEscaper neutralizes the LIKE wildcards so a search prefix only ever
// matches literally
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func (r *queries) YearBounds(ctx context.Context) (int, int, error) {
	const sql = `
select coalesce(min(year), 0), coalesce(max(year), 0)
from birth_records
`
	var lo, hi int
	if err := r.q.QueryRow(ctx, sql).Scan(&lo, &hi); err != nil {
		return 0, 0, err
	}
	return lo, hi, nil
}
