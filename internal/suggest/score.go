// Package suggest turns raw catalog candidates into the typed, ranked
// suggestion groups behind the search box.
package suggest

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Match tiers. The gap between tiers is deliberately wide so that a better
// match class always outranks any tie-break nudge applied downstream.
const (
	scoreExact      = 100
	scorePrefix     = 80
	scoreWordPrefix = 65
	scoreSubstring  = 45
)

// foldTransform decomposes accented characters (NFD) and strips the
// combining marks, so "Brontë" and "bronte" compare equal.
var foldTransform = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

// Fold normalizes a string for matching: NFD-decompose, drop diacritics,
// lowercase, trim surrounding whitespace.
func Fold(s string) string {
	folded, _, err := transform.String(foldTransform, s)
	if err != nil {
		// The transform chain cannot fail on valid UTF-8; fall back to the
		// raw string rather than dropping the candidate.
		folded = s
	}
	return strings.TrimSpace(strings.ToLower(folded))
}

// Score rates how well candidate matches query on a 0–100 scale.
//
// Tiers, checked in order after normalization:
//
//	exact match            → 100
//	candidate has prefix   → 80
//	any word has prefix    → 65
//	substring anywhere     → 45
//	otherwise              → 0
//
// Pure and deterministic; a zero score means "no match" and is excluded
// downstream. Candidate pools are pre-filtered to a few dozen rows by a
// server-side substring query, so this runs on small inputs only.
func Score(query, candidate string) int {
	q := Fold(query)
	if q == "" {
		return 0
	}
	c := Fold(candidate)

	switch {
	case c == q:
		return scoreExact
	case strings.HasPrefix(c, q):
		return scorePrefix
	}

	for _, word := range strings.Fields(c) {
		if strings.HasPrefix(word, q) {
			return scoreWordPrefix
		}
	}

	if strings.Contains(c, q) {
		return scoreSubstring
	}

	return 0
}
