// Package domain defines the types shared by everything that reads or
// writes the birth record dataset
package domain

import "strings"

// Sex filters queries by the recorded sex of the newborns
// zero means both
type Sex uint8

const (
	// SexAll matches every row
	SexAll Sex = 0

	// SexMale is the dataset code 1
	SexMale Sex = 1

	// SexFemale is the dataset code 2
	SexFemale Sex = 2
)

// ParseSex maps the wire token (or the raw dataset code) to a Sex
func ParseSex(s string) (Sex, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return SexAll, true
	case "1", "m", "male":
		return SexMale, true
	case "2", "f", "female":
		return SexFemale, true
	}
	return SexAll, false
}

func (s Sex) String() string {
	switch s {
	case SexMale:
		return "male"
	case SexFemale:
		return "female"
	default:
		return "all"
	}
}

// BirthRecord is one dataset row: how many children of a sex got a given
// spelling in a given year. Keys are precomputed at ingest time
type BirthRecord struct {
	Name        string
	Sex         Sex
	Year        int
	Count       int64
	AccentKey   string
	PhoneticKey string
}

// GroupTotal aggregates every spelling that folds to Key
type GroupTotal struct {
	Key   string
	Total int64
}

// VariantCount is one raw spelling inside a group with its summed births
type VariantCount struct {
	Name  string
	Total int64
}

// YearCount is one point of a group's yearly series
type YearCount struct {
	Year  int
	Total int64
}

// DatasetMeta describes the currently imported dataset
type DatasetMeta struct {
	RunID      string
	Source     string
	ImportedAt string
	Records    int64
	Names      int64
	MinYear    int
	MaxYear    int
}
