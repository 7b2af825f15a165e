package suggest

import (
	"fmt"
	"strconv"
	"strings"
)

// Facet names one of the four suggestion categories. The on-screen group
// order is fixed: authors, titles, series, publishers.
type Facet string

const (
	FacetAuthor    Facet = "author"
	FacetTitle     Facet = "title"
	FacetSeries    Facet = "series"
	FacetPublisher Facet = "publisher"
)

// Suggestion is the sum type over the four facet variants. Each variant
// carries only the fields relevant to its facet; consumers branch on the
// concrete type (or [Suggestion.Facet]) exhaustively at render and at
// selection time.
type Suggestion interface {
	// Facet tags the variant.
	Facet() Facet
	// Value is the machine value used to re-query when the entry is picked.
	Value() string
	// Display is the human-readable string shown in the dropdown.
	Display() string
	// Meta is the facet-specific secondary line (may be empty).
	Meta() string
}

// AuthorSuggestion proposes a contributor name.
type AuthorSuggestion struct {
	// Name is the canonical (display) form.
	Name string `json:"name"`
	// Alt is the first-seen alternate (sort) form, empty when none differs.
	Alt string `json:"alt,omitempty"`
	// Count is how many candidate books carry this author.
	Count int `json:"count"`
	// ShowAlt is set when the alternate form matched the query better and
	// should be the one displayed.
	ShowAlt bool `json:"-"`
}

func (s AuthorSuggestion) Facet() Facet  { return FacetAuthor }
func (s AuthorSuggestion) Value() string { return s.Name }

func (s AuthorSuggestion) Display() string {
	if s.ShowAlt && s.Alt != "" {
		return s.Alt
	}
	return s.Name
}

// Meta carries whichever name form Display did not pick, so the dropdown
// always shows both forms when they differ.
func (s AuthorSuggestion) Meta() string {
	if s.ShowAlt && s.Alt != "" {
		return s.Name
	}
	return s.Alt
}

// TitleSuggestion proposes a single book.
type TitleSuggestion struct {
	Title string `json:"title"`
	// BookID back-references the originating record.
	BookID int `json:"book_id"`
	// Detail is the author list joined by comma plus the publication year,
	// middle-dot separated, omitting missing parts.
	Detail string `json:"detail,omitempty"`
}

func (s TitleSuggestion) Facet() Facet    { return FacetTitle }
func (s TitleSuggestion) Value() string   { return s.Title }
func (s TitleSuggestion) Display() string { return s.Title }
func (s TitleSuggestion) Meta() string    { return s.Detail }

// SeriesSuggestion proposes a series value with its occurrence count.
type SeriesSuggestion struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func (s SeriesSuggestion) Facet() Facet    { return FacetSeries }
func (s SeriesSuggestion) Value() string   { return s.Name }
func (s SeriesSuggestion) Display() string { return s.Name }
func (s SeriesSuggestion) Meta() string    { return strconv.Itoa(s.Count) + " in collection" }

// PublisherSuggestion proposes a publisher value with its occurrence count.
type PublisherSuggestion struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func (s PublisherSuggestion) Facet() Facet    { return FacetPublisher }
func (s PublisherSuggestion) Value() string   { return s.Name }
func (s PublisherSuggestion) Display() string { return s.Name }
func (s PublisherSuggestion) Meta() string    { return strconv.Itoa(s.Count) + " in collection" }

// TitleDetail renders the secondary line for a title suggestion:
// "Author A, Author B · 1974". Either part may be absent.
func TitleDetail(authors []string, year *int) string {
	var parts []string
	if len(authors) > 0 {
		parts = append(parts, strings.Join(authors, ", "))
	}
	if year != nil {
		parts = append(parts, fmt.Sprintf("%d", *year))
	}
	return strings.Join(parts, " · ")
}
