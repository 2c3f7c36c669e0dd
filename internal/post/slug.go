package post

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// deaccent decomposes characters and strips combining marks so that
// "réact-à-porter" slugs come out ASCII-clean.
var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify normalizes a raw filename stem into a URL-safe slug: accents
// stripped, lowercased, anything outside [a-z0-9] collapsed to single hyphens.
func Slugify(raw string) string {
	cleaned, _, err := transform.String(deaccent, raw)
	if err != nil {
		cleaned = raw
	}

	var b strings.Builder
	b.Grow(len(cleaned))
	prevHyphen := false
	for _, r := range strings.ToLower(cleaned) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevHyphen = false
		default:
			if !prevHyphen && b.Len() > 0 {
				b.WriteByte('-')
				prevHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
