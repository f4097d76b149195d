// Package domain holds DTOs for names http and service contracts
package domain

// SearchInput matches name groups by key prefix
type SearchInput struct {
	Pattern string `json:"pattern" validate:"required,min=1,max=64" example:"sof"`
	Policy  string `json:"policy" validate:"required,oneof=exact accent phonetic" example:"phonetic"`
	Sex     string `json:"sex,omitempty" validate:"omitempty,oneof=all male female" example:"all"`
	Year    int    `json:"year,omitempty" validate:"omitempty,min=1800,max=2100" example:"1995"`
	Limit   int    `json:"limit,omitempty" validate:"omitempty,min=1,max=100" example:"20"`
}

// SearchRow is one matching group
type SearchRow struct {
	Key         string `json:"key" example:"sofi"`
	DisplayName string `json:"display_name" example:"Sophie / Sofie"`
	Total       int64  `json:"total" example:"184233"`
}

// SearchPage is the search result
type SearchPage struct {
	Rows []SearchRow `json:"rows"`
}

// ByNameInput selects the records of one name's group
type ByNameInput struct {
	Name   string `json:"name" validate:"required,min=1,max=64" example:"marie"`
	Policy string `json:"policy" validate:"required,oneof=exact accent phonetic" example:"exact"`
	Sex    string `json:"sex,omitempty" validate:"omitempty,oneof=all male female" example:"female"`
}

// RecordRow is one dataset record with its group label applied
type RecordRow struct {
	Name        string `json:"name" example:"MARIE"`
	DisplayName string `json:"display_name" example:"Marie"`
	Sex         string `json:"sex" example:"female"`
	Year        int    `json:"year" example:"1920"`
	Count       int64  `json:"count" example:"500"`
}

// YearTotal is the group's summed count for one year
type YearTotal struct {
	Year  int   `json:"year" example:"1920"`
	Total int64 `json:"total" example:"512"`
}

// NameRecords is the getByName result, records sorted year ascending.
// Series aggregates the group per year; under non-exact policies a year can
// hold several spellings, so Series is the plottable view of Rows
type NameRecords struct {
	Key         string      `json:"key" example:"marie"`
	DisplayName string      `json:"display_name" example:"Marie"`
	Rows        []RecordRow `json:"rows"`
	Series      []YearTotal `json:"series"`
}

// CompareInput selects the union of records matching any of the names
type CompareInput struct {
	Names  []string `json:"names" validate:"required,min=1,max=10,dive,min=1,max=64" example:"sophie,sofie"`
	Policy string   `json:"policy" validate:"required,oneof=exact accent phonetic" example:"phonetic"`
	Sex    string   `json:"sex,omitempty" validate:"omitempty,oneof=all male female" example:"all"`
}

// ComparePage is the multi-name comparison result.
// Under non-exact policies the union can include spellings that share a key
// with an input without being one of the inputs
type ComparePage struct {
	Keys []string    `json:"keys" example:"sofi"`
	Rows []RecordRow `json:"rows"`
}
