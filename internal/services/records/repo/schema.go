package repo

import (
	"context"
	"strings"

	perr "prenoms/internal/platform/errors"
	"prenoms/internal/services/records/domain"
)

// DDL kept portable between sqlite and postgres: no serial columns, text
// timestamps, and a stored name_ci column because sqlite lower() is ascii-only
var schemaStatements = []string{
	`
create table if not exists birth_records (
	name text not null,
	name_ci text not null,
	sex integer not null,
	year integer not null,
	count integer not null,
	accent_key text not null,
	phonetic_key text not null,
	primary key (name, sex, year)
)`,
	`create index if not exists idx_birth_records_accent on birth_records (accent_key)`,
	`create index if not exists idx_birth_records_phonetic on birth_records (phonetic_key)`,
	`create index if not exists idx_birth_records_year_sex on birth_records (year, sex)`,
	`create index if not exists idx_birth_records_name_ci on birth_records (name_ci)`,
	`
create table if not exists dataset_meta (
	id integer primary key check (id = 1),
	run_id text not null,
	source text not null,
	imported_at text not null,
	records integer not null,
	names integer not null,
	min_year integer not null,
	max_year integer not null
)`,
}

func (r *queries) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := r.q.Exec(ctx, stmt); err != nil {
			return perr.FromDB(err, "ensure schema")
		}
	}
	return nil
}

func (r *queries) InsertRecords(ctx context.Context, recs []domain.BirthRecord) error {
	const sql = `
insert into birth_records (name, name_ci, sex, year, count, accent_key, phonetic_key)
values ($1, $2, $3, $4, $5, $6, $7)
on conflict (name, sex, year) do update set count = count + excluded.count
`
	for _, rec := range recs {
		_, err := r.q.Exec(ctx, sql,
			rec.Name, strings.ToLower(rec.Name), int(rec.Sex), rec.Year, rec.Count,
			rec.AccentKey, rec.PhoneticKey,
		)
		if err != nil {
			return perr.FromDBf(err, "insert record %q/%d", rec.Name, rec.Year)
		}
	}
	return nil
}

func (r *queries) DeleteAll(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `delete from birth_records`); err != nil {
		return perr.FromDB(err, "clear birth records")
	}
	if _, err := r.q.Exec(ctx, `delete from dataset_meta`); err != nil {
		return perr.FromDB(err, "clear dataset meta")
	}
	return nil
}

func (r *queries) SetDatasetMeta(ctx context.Context, m domain.DatasetMeta) error {
	const sql = `
insert into dataset_meta (id, run_id, source, imported_at, records, names, min_year, max_year)
values (1, $1, $2, $3, $4, $5, $6, $7)
on conflict (id) do update set
	run_id = excluded.run_id,
	source = excluded.source,
	imported_at = excluded.imported_at,
	records = excluded.records,
	names = excluded.names,
	min_year = excluded.min_year,
	max_year = excluded.max_year
`
	_, err := r.q.Exec(ctx, sql,
		m.RunID, m.Source, m.ImportedAt, m.Records, m.Names, m.MinYear, m.MaxYear,
	)
	if err != nil {
		return perr.FromDB(err, "set dataset meta")
	}
	return nil
}

func (r *queries) DatasetMeta(ctx context.Context) (domain.DatasetMeta, error) {
	const sql = `
select run_id, source, imported_at, records, names, min_year, max_year
from dataset_meta
where id = 1
`
	var m domain.DatasetMeta
	err := r.q.QueryRow(ctx, sql).Scan(
		&m.RunID, &m.Source, &m.ImportedAt, &m.Records, &m.Names, &m.MinYear, &m.MaxYear,
	)
	if err != nil {
		return domain.DatasetMeta{}, err
	}
	return m, nil
}

func (r *queries) CountRecords(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `select count(*) from birth_records`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *queries) CountNames(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `select count(distinct name) from birth_records`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
