// Package reader parses the INSEE first-name CSV layout.
//
// The file carries one row per (name, sex, year) with a birth count.
// Rows that cannot contribute to statistics are skipped rather than
// failing the run: the rare-name sentinel, unknown years, blank names,
// and, in departmental files, rows outside the national aggregate
package reader

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	perr "prenoms/internal/platform/errors"
	"prenoms/internal/services/ingest/domain"
	recdomain "prenoms/internal/services/records/domain"
)

// rareSentinel marks rows where the source aggregates all rare names
const rareSentinel = "_PRENOMS_RARES"

// Row is one usable dataset row
type Row struct {
	Name  string
	Sex   recdomain.Sex
	Year  int
	Count int64
}

// Stats counts what the reader saw
type Stats struct {
	Read    int64
	Skipped int64
}

// Reader streams usable rows out of a CSV source
type Reader struct {
	csv    *csv.Reader
	cols   domain.ColumnSpec
	idx    colIndex
	stats  Stats
	geoIdx int
}

type colIndex struct {
	sex, name, year, count int
}

// New wraps r with a reader configured from the manifest format.
// The first record is consumed as the header
func New(r io.Reader, f domain.FormatSpec) (*Reader, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	if f.Delimiter != "" {
		cr.Comma = rune(f.Delimiter[0])
	}
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeValidation, "csv header")
	}

	at := func(name string) int {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), name) {
				return i
			}
		}
		return -1
	}

	idx := colIndex{
		sex:   at(f.Columns.Sex),
		name:  at(f.Columns.Name),
		year:  at(f.Columns.Year),
		count: at(f.Columns.Count),
	}
	if idx.sex < 0 || idx.name < 0 || idx.year < 0 || idx.count < 0 {
		return nil, perr.Newf(perr.ErrorCodeValidation,
			"csv header missing one of %q %q %q %q",
			f.Columns.Sex, f.Columns.Name, f.Columns.Year, f.Columns.Count)
	}

	geoIdx := -1
	if f.Columns.Geography != "" {
		geoIdx = at(f.Columns.Geography)
	}

	return &Reader{csv: cr, cols: f.Columns, idx: idx, geoIdx: geoIdx}, nil
}

// Next returns the next usable row, io.EOF when the source is exhausted.
// Skipped rows are counted, not returned
func (r *Reader) Next() (Row, error) {
	for {
		rec, err := r.csv.Read()
		if err == io.EOF {
			return Row{}, io.EOF
		}
		if err != nil {
			return Row{}, perr.Wrap(err, perr.ErrorCodeValidation, "csv row")
		}
		r.stats.Read++

		row, ok := r.parse(rec)
		if !ok {
			r.stats.Skipped++
			continue
		}
		return row, nil
	}
}

// Stats reports what has been read so far
func (r *Reader) Stats() Stats { return r.stats }

func (r *Reader) parse(rec []string) (Row, bool) {
	max := r.idx.count
	if r.idx.sex > max {
		max = r.idx.sex
	}
	if r.idx.name > max {
		max = r.idx.name
	}
	if r.idx.year > max {
		max = r.idx.year
	}
	if r.geoIdx > max {
		max = r.geoIdx
	}
	if len(rec) <= max {
		return Row{}, false
	}

	if r.geoIdx >= 0 {
		keep := r.cols.GeographyKeep
		if strings.TrimSpace(rec[r.geoIdx]) != keep {
			return Row{}, false
		}
	}

	name := strings.TrimSpace(rec[r.idx.name])
	if name == "" || name == rareSentinel {
		return Row{}, false
	}

	var sex recdomain.Sex
	switch strings.TrimSpace(rec[r.idx.sex]) {
	case "1":
		sex = recdomain.SexMale
	case "2":
		sex = recdomain.SexFemale
	default:
		return Row{}, false
	}

	// the source writes XXXX for rows it cannot place in a year
	year, err := strconv.Atoi(strings.TrimSpace(rec[r.idx.year]))
	if err != nil {
		return Row{}, false
	}

	count, err := strconv.ParseInt(strings.TrimSpace(rec[r.idx.count]), 10, 64)
	if err != nil || count <= 0 {
		return Row{}, false
	}

	return Row{Name: name, Sex: sex, Year: year, Count: count}, true
}
