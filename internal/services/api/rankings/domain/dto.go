// Package domain holds DTOs for rankings http and service contracts
package domain

// RankingInput selects one ranked page of name groups
type RankingInput struct {
	Policy string `json:"policy" validate:"required,oneof=exact accent phonetic" example:"phonetic"`
	Sex    string `json:"sex" validate:"required,oneof=all male female" example:"female"`
	Year   int    `json:"year" validate:"required,min=1800,max=2100" example:"1995"`
	Offset int    `json:"offset,omitempty" validate:"omitempty,min=0" example:"0"`
	Limit  int    `json:"limit,omitempty" validate:"omitempty,min=1,max=500" example:"100"`
}

// GroupedResult is one ranked group
// historical ranks are nil when the group was absent that year, which is
// different from rank zero
type GroupedResult struct {
	Key          string `json:"key" example:"sofi"`
	DisplayName  string `json:"display_name" example:"Sophie / Sofie"`
	Sex          string `json:"sex" example:"female"`
	Year         int    `json:"year" example:"1995"`
	Total        int64  `json:"total" example:"7344"`
	CurrentRank  int    `json:"current_rank" example:"12"`
	PreviousRank *int   `json:"previous_rank,omitempty" example:"14"`
	FiveYearRank *int   `json:"five_year_rank,omitempty" example:"9"`
	TenYearRank  *int   `json:"ten_year_rank,omitempty" example:"31"`
}

// RankingPage is the getRanking result: the requested window plus the
// total number of groups in the full ranking
type RankingPage struct {
	Rows  []GroupedResult `json:"rows"`
	Total int64           `json:"total" example:"2481"`
}

// TotalsInput selects the birth total for a sex and year
type TotalsInput struct {
	Sex  string `json:"sex" validate:"required,oneof=all male female" example:"all"`
	Year int    `json:"year" validate:"required,min=1800,max=2100" example:"1995"`
}

// TotalsRow is the birth total for the selection
type TotalsRow struct {
	Sex    string `json:"sex" example:"all"`
	Year   int    `json:"year" example:"1995"`
	Births int64  `json:"births" example:"729609"`
}

// RankDelta reports how a group moved against a historical ranking.
// Positive means improvement (toward rank 1). ok is false when the group
// was absent from the historical year; no delta exists then
func RankDelta(current int, historical *int) (delta int, ok bool) {
	if historical == nil {
		return 0, false
	}
	return *historical - current, true
}
