package suggest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkshelf/inkshelf/internal/suggest"
)

/*
TestFold verifies diacritic stripping, lowercasing, and trimming.
*/
func TestFold(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain lowercase passthrough", input: "dune", expected: "dune"},
		{name: "uppercase folded", input: "DUNE", expected: "dune"},
		{name: "diacritics stripped", input: "Brontë", expected: "bronte"},
		{name: "combining marks stripped", input: "Ursula K. Le Guin", expected: "ursula k. le guin"},
		{name: "surrounding whitespace trimmed", input: "  asimov \t", expected: "asimov"},
		{name: "empty stays empty", input: "", expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, suggest.Fold(tc.input))
		})
	}
}

/*
TestScore_Tiers verifies the four match tiers and the no-match zero.
*/
func TestScore_Tiers(t *testing.T) {
	testCases := []struct {
		name      string
		query     string
		candidate string
		expected  int
	}{
		{name: "exact", query: "dune", candidate: "Dune", expected: 100},
		{name: "exact with accents", query: "bronte", candidate: "Brontë", expected: 100},
		{name: "prefix", query: "dun", candidate: "Dune", expected: 80},
		{name: "word prefix", query: "mess", candidate: "Dune Messiah", expected: 65},
		{name: "substring", query: "ess", candidate: "Dune Messiah", expected: 45},
		{name: "no match", query: "tolkien", candidate: "Dune", expected: 0},
		{name: "empty query never matches", query: "", candidate: "Dune", expected: 0},
		{name: "whitespace query never matches", query: "   ", candidate: "Dune", expected: 0},
		{name: "empty candidate never matches", query: "dune", candidate: "", expected: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, suggest.Score(tc.query, tc.candidate))
		})
	}
}

/*
TestScore_PrefixBeatsWordPrefix pins the documented ordering property:
a whole-string prefix is strictly better than a later word's prefix.
*/
func TestScore_PrefixBeatsWordPrefix(t *testing.T) {
	// "Asimov, Isaac" starts with the query; "Isaac Asimov" only contains a
	// word starting with it.
	sortForm := suggest.Score("asimov", "Asimov, Isaac")
	displayForm := suggest.Score("asimov", "Isaac Asimov")

	assert.Equal(t, 80, sortForm)
	assert.Equal(t, 65, displayForm)
	assert.Greater(t, sortForm, displayForm)
}
