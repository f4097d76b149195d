// Package names provides the deterministic first-name normalizers used to
// group spellings of the same name
// Accent pass
// 1 trim and lowercase
// 2 Unicode NFD decomposition
// 3 strip combining marks
// 4 NFC recomposition
// Phonetic pass continues from the accent output
// 5 y->i
// 6 collapse immediately repeated letters
// 7 ph->f then qu->k then ck->k
// 8 trailing ard->ar and trailing ie->i at the end of each hyphen segment
// 9 drop every h
// 10 collapse whitespace and hyphen runs and trim separators
package names

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// pool of fresh accent-stripping transformer chains
var chainPool = sync.Pool{
	New: func() any {
		// decompose, drop the combining marks, recompose
		return transform.Chain(
			norm.NFD,
			runes.Remove(runes.In(unicode.Mn)),
			norm.NFC,
		)
	},
}

// NormalizeAccent lowercases s and folds accented letters to their base form
// (é->e, ç->c, ñ->n and so on). Hyphens and spaces pass through untouched.
// Whitespace-only input yields the empty string, which is never a valid key
func NormalizeAccent(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)

	tr := chainPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		// invalid UTF-8 in the input; fall back to the lowercased original
		return s
	}
	return ns
}

// NormalizePhonetic folds s down to a phonetic key. It is intentionally
// many-to-one: names that sound alike in French collapse to the same key.
// The rewrite sequence matters and must not be reordered
func NormalizePhonetic(s string) string {
	s = NormalizeAccent(s)
	if s == "" {
		return ""
	}

	// y folds to i before the repeat squeeze so pairs the fold creates
	// ("ayi" -> "aii") collapse in the same pass and the key is stable
	// under re-normalization
	s = strings.ReplaceAll(s, "y", "i")

	s = collapseRepeats(s)

	s = strings.ReplaceAll(s, "ph", "f")
	s = strings.ReplaceAll(s, "qu", "k")
	s = strings.ReplaceAll(s, "ck", "k")

	s = rewriteSegmentEndings(s)

	// silent h removal happens after the digraph rules so ph has already
	// been consumed
	s = strings.ReplaceAll(s, "h", "")

	return collapseSeparators(s)
}

// collapseRepeats squeezes any immediately repeated rune to one occurrence
// ("tt" -> "t", "ll" -> "l")
func collapseRepeats(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	var prev rune = -1
	for _, r := range s {
		if r == prev {
			continue
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}

// rewriteSegmentEndings applies the word-final rules to the end of each
// hyphen-delimited segment: "ard" loses its d and "ie" loses its e
func rewriteSegmentEndings(s string) string {
	if !strings.ContainsAny(s, "-") {
		return rewriteEnding(s)
	}
	segs := strings.Split(s, "-")
	for i, seg := range segs {
		segs[i] = rewriteEnding(seg)
	}
	return strings.Join(segs, "-")
}

func rewriteEnding(seg string) string {
	switch {
	case strings.HasSuffix(seg, "ard"):
		return seg[:len(seg)-1]
	case strings.HasSuffix(seg, "ie"):
		return seg[:len(seg)-1]
	}
	return seg
}

// collapseSeparators squeezes whitespace runs to a single space and hyphen
// runs to a single hyphen, then trims separators from both edges
func collapseSeparators(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	inHyphen := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			if !inWS {
				b.WriteByte(' ')
			}
			inWS = true
			inHyphen = false
		case r == '-':
			if !inHyphen {
				b.WriteByte('-')
			}
			inHyphen = true
			inWS = false
		default:
			b.WriteRune(r)
			inWS = false
			inHyphen = false
		}
	}
	return strings.Trim(b.String(), "- ")
}
