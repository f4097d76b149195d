package names

import (
	"strings"
	"unicode"
)

// FormatDisplay renders a stored key or raw spelling for presentation:
// each hyphen-delimited segment gets an uppercase first letter and a
// lowercase remainder ("jean-pierre" -> "Jean-Pierre"). Empty segments
// are preserved so the hyphen structure of the input survives a round trip
func FormatDisplay(s string) string {
	if s == "" {
		return ""
	}
	segs := strings.Split(s, "-")
	for i, seg := range segs {
		segs[i] = titleSegment(seg)
	}
	return strings.Join(segs, "-")
}

func titleSegment(seg string) string {
	if seg == "" {
		return seg
	}
	rs := []rune(seg)
	var b strings.Builder
	b.Grow(len(seg))
	b.WriteRune(unicode.ToUpper(rs[0]))
	for _, r := range rs[1:] {
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
