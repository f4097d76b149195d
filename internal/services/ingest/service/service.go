// Package service runs dataset imports end to end: manifest, CSV, keys,
// batched inserts, provenance
package service

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"prenoms/internal/core/names"
	"prenoms/internal/modkit/repokit"
	perr "prenoms/internal/platform/errors"
	"prenoms/internal/platform/logger"
	"prenoms/internal/services/ingest/domain"
	"prenoms/internal/services/ingest/reader"
	recdomain "prenoms/internal/services/records/domain"
	recrepo "prenoms/internal/services/records/repo"
)

// Config holds import tuning
type Config struct {
	// BatchSize is the number of records per insert transaction; <=0 -> default
	BatchSize int

	// Fresh drops existing records before importing
	Fresh bool
}

const defaultBatchSize = 5000

// Service implements the import runner
type Service struct {
	DB     repokit.TxRunner
	Binder repokit.Binder[recrepo.Repo]
	Cfg    Config
}

// New constructs an import service
func New(db repokit.TxRunner, binder repokit.Binder[recrepo.Repo], cfg Config) *Service {
	if db == nil {
		panic("ingest.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("ingest.Service requires a non nil Repo binder")
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	return &Service{DB: db, Binder: binder, Cfg: cfg}
}

// Run imports the dataset the manifest at path describes
func (s *Service) Run(ctx context.Context, manifestPath string) (domain.RunResult, error) {
	m, err := domain.LoadManifest(manifestPath)
	if err != nil {
		return domain.RunResult{}, err
	}

	f, err := os.Open(m.Source)
	if err != nil {
		return domain.RunResult{}, perr.Wrapf(err, perr.ErrorCodeNotFound, "open source %s", m.Source)
	}
	defer func() { _ = f.Close() }()

	return s.load(ctx, m, f)
}

// load drives the reader and writes batches inside transactions
func (s *Service) load(ctx context.Context, m domain.Manifest, src io.Reader) (domain.RunResult, error) {
	log := logger.C(ctx)
	runID := uuid.NewString()

	rd, err := reader.New(src, m.Format)
	if err != nil {
		return domain.RunResult{}, err
	}

	repo := s.Binder.Bind(s.DB)
	if err := repo.EnsureSchema(ctx); err != nil {
		return domain.RunResult{}, err
	}
	if s.Cfg.Fresh {
		if err := repo.DeleteAll(ctx); err != nil {
			return domain.RunResult{}, err
		}
	}

	var inserted int64
	batch := make([]recdomain.BirthRecord, 0, s.Cfg.BatchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		err := repokit.WithTx(ctx, s.DB, func(q repokit.Queryer) error {
			return s.Binder.Bind(q).InsertRecords(ctx, batch)
		})
		if err != nil {
			return err
		}
		inserted += int64(len(batch))
		batch = batch[:0]
		return nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return domain.RunResult{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "import canceled")
		}

		row, err := rd.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return domain.RunResult{}, err
		}

		batch = append(batch, recdomain.BirthRecord{
			Name:        row.Name,
			Sex:         row.Sex,
			Year:        row.Year,
			Count:       row.Count,
			AccentKey:   names.PolicyAccent.Key(row.Name),
			PhoneticKey: names.PolicyPhonetic.Key(row.Name),
		})
		if len(batch) >= s.Cfg.BatchSize {
			if err := flush(); err != nil {
				return domain.RunResult{}, err
			}
		}
	}
	if err := flush(); err != nil {
		return domain.RunResult{}, err
	}

	stats := rd.Stats()
	res := domain.RunResult{
		RunID:    runID,
		Source:   m.Source,
		Read:     stats.Read,
		Inserted: inserted,
		Skipped:  stats.Skipped,
	}

	if res.Names, err = repo.CountNames(ctx); err != nil {
		return domain.RunResult{}, err
	}
	records, err := repo.CountRecords(ctx)
	if err != nil {
		return domain.RunResult{}, err
	}
	if res.MinYear, res.MaxYear, err = repo.YearBounds(ctx); err != nil {
		return domain.RunResult{}, err
	}

	meta := recdomain.DatasetMeta{
		RunID:      runID,
		Source:     m.ID,
		ImportedAt: time.Now().UTC().Format(time.RFC3339),
		Records:    records,
		Names:      res.Names,
		MinYear:    res.MinYear,
		MaxYear:    res.MaxYear,
	}
	if err := repo.SetDatasetMeta(ctx, meta); err != nil {
		return domain.RunResult{}, err
	}

	log.Info().
		Str("run_id", runID).
		Str("source", m.ID).
		Int64("read", res.Read).
		Int64("inserted", res.Inserted).
		Int64("skipped", res.Skipped).
		Int64("names", res.Names).
		Int("min_year", res.MinYear).
		Int("max_year", res.MaxYear).
		Msg("import complete")

	return res, nil
}
