package names

import "strings"

// Policy selects how raw spellings are folded into grouping keys
type Policy uint8

const (
	// PolicyExact groups on the lowercased spelling only
	PolicyExact Policy = iota

	// PolicyAccent groups accent-insensitively
	PolicyAccent

	// PolicyPhonetic groups names that sound alike
	PolicyPhonetic
)

// ParsePolicy maps the wire token to a Policy. ok is false for anything
// outside the closed set
func ParsePolicy(s string) (p Policy, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "exact":
		return PolicyExact, true
	case "accent":
		return PolicyAccent, true
	case "phonetic":
		return PolicyPhonetic, true
	}
	return PolicyExact, false
}

func (p Policy) String() string {
	switch p {
	case PolicyAccent:
		return "accent"
	case PolicyPhonetic:
		return "phonetic"
	default:
		return "exact"
	}
}

// Key folds a raw spelling into this policy's grouping key
func (p Policy) Key(name string) string {
	switch p {
	case PolicyAccent:
		return NormalizeAccent(name)
	case PolicyPhonetic:
		return NormalizePhonetic(name)
	default:
		return strings.ToLower(strings.TrimSpace(name))
	}
}

// KeyExpr is the SQL column that holds this policy's key for a row of
// birth_records. All three are precomputed at ingest time: sqlite's lower()
// only folds ascii, so even the exact key cannot be derived in sql
func (p Policy) KeyExpr() string {
	switch p {
	case PolicyAccent:
		return "accent_key"
	case PolicyPhonetic:
		return "phonetic_key"
	default:
		return "name_ci"
	}
}
