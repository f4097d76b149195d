package service

import (
	"context"
	"testing"

	"prenoms/internal/core/names"
	"prenoms/internal/modkit/repokit"
	perr "prenoms/internal/platform/errors"
	"prenoms/internal/services/api/rankings/domain"
	recdomain "prenoms/internal/services/records/domain"
	recrepo "prenoms/internal/services/records/repo"
)

// fakeRepo serves canned rankings per year and counts repo round trips
type fakeRepo struct {
	recrepo.Repo
	totalsByYear map[int][]recdomain.GroupTotal
	birthsByYear map[int]int64
	groupCalls   int
}

func (f *fakeRepo) GroupTotals(
	_ context.Context, _ names.Policy, _ recdomain.Sex, year int,
) ([]recdomain.GroupTotal, error) {
	f.groupCalls++
	return f.totalsByYear[year], nil
}

func (f *fakeRepo) VariantsByKeys(
	_ context.Context, _ names.Policy, keys []string, _ recdomain.Sex,
) (map[string][]recdomain.VariantCount, error) {
	out := make(map[string][]recdomain.VariantCount)
	for _, k := range keys {
		out[k] = []recdomain.VariantCount{{Name: k, Total: 1}}
	}
	return out, nil
}

func (f *fakeRepo) TotalBirths(_ context.Context, _ recdomain.Sex, year int) (int64, error) {
	return f.birthsByYear[year], nil
}

type fakeBinder struct{ r *fakeRepo }

func (b fakeBinder) Bind(_ repokit.Queryer) recrepo.Repo { return b.r }

// nopTx satisfies the TxRunner constructor check; the fake repo never touches it
type nopTx struct{ repokit.TxRunner }

func newSvc(f *fakeRepo) *Svc { return New(nopTx{}, fakeBinder{r: f}) }

func TestGetRanking_RanksAndHistory(t *testing.T) {
	t.Parallel()

	f := &fakeRepo{totalsByYear: map[int][]recdomain.GroupTotal{
		2024: {
			{Key: "a", Total: 100},
			{Key: "b", Total: 100},
			{Key: "c", Total: 50},
		},
		2023: {
			{Key: "c", Total: 80},
			{Key: "x", Total: 70},
			{Key: "y", Total: 60},
			{Key: "b", Total: 55},
			{Key: "z", Total: 52},
			{Key: "w", Total: 51},
			{Key: "a", Total: 50},
		},
		// 2019 and 2014 missing: every five/ten year lookup must be unset
	}}
	s := newSvc(f)

	page, err := s.GetRanking(context.Background(), domain.RankingInput{
		Policy: "exact",
		Sex:    "male",
		Year:   2024,
	})
	if err != nil {
		t.Fatalf("GetRanking: %v", err)
	}
	if page.Total != 3 || len(page.Rows) != 3 {
		t.Fatalf("page = %+v", page)
	}

	// equal totals tie-break alphabetically: a then b, both above c
	for i, wantKey := range []string{"a", "b", "c"} {
		if page.Rows[i].Key != wantKey || page.Rows[i].CurrentRank != i+1 {
			t.Fatalf("row %d = %+v, want key %q rank %d", i, page.Rows[i], wantKey, i+1)
		}
	}

	// a was rank 7 the year before: delta +4 from the third row's view is
	// checked below on c; here check raw ranks
	a := page.Rows[0]
	if a.PreviousRank == nil || *a.PreviousRank != 7 {
		t.Fatalf("a.PreviousRank = %v, want 7", a.PreviousRank)
	}
	if a.FiveYearRank != nil || a.TenYearRank != nil {
		t.Fatalf("missing historical years must leave ranks unset, got %+v", a)
	}

	c := page.Rows[2]
	if c.PreviousRank == nil || *c.PreviousRank != 1 {
		t.Fatalf("c.PreviousRank = %v, want 1", c.PreviousRank)
	}

	// delta sign convention: current 1, previous 7 -> +6 improvement;
	// current 3, previous 1 -> -2 decline
	if d, ok := domain.RankDelta(a.CurrentRank, a.PreviousRank); !ok || d != 6 {
		t.Fatalf("RankDelta(a) = %d, %v; want +6", d, ok)
	}
	if d, ok := domain.RankDelta(c.CurrentRank, c.PreviousRank); !ok || d != -2 {
		t.Fatalf("RankDelta(c) = %d, %v; want -2", d, ok)
	}
	if _, ok := domain.RankDelta(a.CurrentRank, a.FiveYearRank); ok {
		t.Fatalf("absent historical rank must have no delta")
	}
}

func TestGetRanking_WindowAndTotal(t *testing.T) {
	t.Parallel()

	f := &fakeRepo{totalsByYear: map[int][]recdomain.GroupTotal{
		2024: {
			{Key: "a", Total: 5},
			{Key: "b", Total: 4},
			{Key: "c", Total: 3},
			{Key: "d", Total: 2},
			{Key: "e", Total: 1},
		},
	}}
	s := newSvc(f)

	page, err := s.GetRanking(context.Background(), domain.RankingInput{
		Policy: "exact", Sex: "all", Year: 2024, Offset: 1, Limit: 2,
	})
	if err != nil {
		t.Fatalf("GetRanking: %v", err)
	}
	if page.Total != 5 {
		t.Fatalf("Total = %d, want 5", page.Total)
	}
	if len(page.Rows) != 2 || page.Rows[0].Key != "b" || page.Rows[1].Key != "c" {
		t.Fatalf("window = %+v", page.Rows)
	}
	if page.Rows[0].CurrentRank != 2 || page.Rows[1].CurrentRank != 3 {
		t.Fatalf("window ranks = %+v", page.Rows)
	}

	// offset past the end: empty window, total intact
	page, err = s.GetRanking(context.Background(), domain.RankingInput{
		Policy: "exact", Sex: "all", Year: 2024, Offset: 99,
	})
	if err != nil {
		t.Fatalf("GetRanking: %v", err)
	}
	if page.Total != 5 || len(page.Rows) != 0 {
		t.Fatalf("page past end = %+v", page)
	}
}

func TestGetRanking_MissingYearIsEmptyNotError(t *testing.T) {
	t.Parallel()

	s := newSvc(&fakeRepo{totalsByYear: map[int][]recdomain.GroupTotal{}})

	page, err := s.GetRanking(context.Background(), domain.RankingInput{
		Policy: "accent", Sex: "female", Year: 1802,
	})
	if err != nil {
		t.Fatalf("GetRanking: %v", err)
	}
	if page.Total != 0 || len(page.Rows) != 0 {
		t.Fatalf("page = %+v, want empty", page)
	}
}

func TestGetRanking_UnknownPolicyIsInvalidArgument(t *testing.T) {
	t.Parallel()

	s := newSvc(&fakeRepo{})

	_, err := s.GetRanking(context.Background(), domain.RankingInput{
		Policy: "soundex", Sex: "all", Year: 2024,
	})
	if err == nil {
		t.Fatalf("expected error for unknown policy")
	}
	if perr.CodeOf(err) != perr.ErrorCodeInvalidArgument {
		t.Fatalf("CodeOf = %v, want ErrorCodeInvalidArgument", perr.CodeOf(err))
	}
}

func TestGetRanking_CachesFullRankings(t *testing.T) {
	t.Parallel()

	f := &fakeRepo{totalsByYear: map[int][]recdomain.GroupTotal{
		2024: {{Key: "a", Total: 1}},
	}}
	s := newSvc(f)

	in := domain.RankingInput{Policy: "exact", Sex: "all", Year: 2024}
	if _, err := s.GetRanking(context.Background(), in); err != nil {
		t.Fatalf("GetRanking: %v", err)
	}
	// current year plus three historical years
	if f.groupCalls != 4 {
		t.Fatalf("groupCalls after first page = %d, want 4", f.groupCalls)
	}

	if _, err := s.GetRanking(context.Background(), in); err != nil {
		t.Fatalf("GetRanking (cached): %v", err)
	}
	if f.groupCalls != 4 {
		t.Fatalf("groupCalls after cached page = %d, want 4", f.groupCalls)
	}
}

func TestGetRanking_PhoneticLabelsFromSpellings(t *testing.T) {
	t.Parallel()

	f := &fakeRepo{totalsByYear: map[int][]recdomain.GroupTotal{
		2024: {{Key: "sofi", Total: 42}},
	}}
	s := newSvc(f)

	page, err := s.GetRanking(context.Background(), domain.RankingInput{
		Policy: "phonetic", Sex: "all", Year: 2024,
	})
	if err != nil {
		t.Fatalf("GetRanking: %v", err)
	}
	// fake repo echoes the key as the only spelling
	if page.Rows[0].DisplayName != "Sofi" {
		t.Fatalf("DisplayName = %q", page.Rows[0].DisplayName)
	}
}

func TestGetTotalBirths(t *testing.T) {
	t.Parallel()

	s := newSvc(&fakeRepo{birthsByYear: map[int]int64{1995: 729609}})

	row, err := s.GetTotalBirths(context.Background(), domain.TotalsInput{Sex: "all", Year: 1995})
	if err != nil {
		t.Fatalf("GetTotalBirths: %v", err)
	}
	if row.Births != 729609 || row.Sex != "all" || row.Year != 1995 {
		t.Fatalf("row = %+v", row)
	}

	if _, err := s.GetTotalBirths(context.Background(), domain.TotalsInput{Sex: "x", Year: 1995}); err == nil {
		t.Fatalf("expected error for unknown sex")
	}
}
