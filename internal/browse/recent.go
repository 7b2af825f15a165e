package browse

import (
	"context"
	"strings"
)

// MaxRecentSearches is how many history entries are kept. The list is a
// most-recently-used queue: re-searching an old entry moves it to the front.
const MaxRecentSearches = 6

// RecentStore persists the recent-search history.
type RecentStore interface {
	// Add records query at the front of the history, removing any older
	// occurrence of the same query first.
	Add(ctx context.Context, query string) error
	// List returns the history, most recent first, at most
	// [MaxRecentSearches] entries.
	List(ctx context.Context) ([]string, error)
}

// NormalizeRecent canonicalizes a query before it enters the history, so
// "  Dune " and "Dune" occupy one slot.
func NormalizeRecent(query string) string {
	return strings.Join(strings.Fields(query), " ")
}
