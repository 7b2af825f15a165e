// Package catalog holds the book collection domain: records, the search
// gateway, and the HTTP surface for browsing them.
package catalog

import (
	"sort"
	"time"
)

// Role classifies a contributor's relationship to a book.
type Role string

const (
	RoleAuthor Role = "author"
	RoleEditor Role = "editor"
)

// Person is a contributor identity. At least one of the two names is
// expected to be present in practice, but both are nullable in the schema.
type Person struct {
	ID          int     `json:"id"`
	DisplayName *string `json:"display_name"`
	SortName    *string `json:"sort_name"`
}

// Name returns the preferred rendering of the person: display name first,
// sort name as fallback, empty string when both are absent.
func (p Person) Name() string {
	if p.DisplayName != nil && *p.DisplayName != "" {
		return *p.DisplayName
	}
	if p.SortName != nil {
		return *p.SortName
	}
	return ""
}

// Contributor links a book to a person with a role and an optional credit
// order used to sequence multiple authors deterministically.
type Contributor struct {
	Role        Role   `json:"role"`
	CreditOrder *int   `json:"credit_order"`
	Person      Person `json:"person"`
}

// Publisher is associated 0..1 with a book.
type Publisher struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Book represents one bibliographic item in the collection. It is only ever
// read by this service, never mutated.
type Book struct {
	ID           int           `json:"id"`
	Title        string        `json:"title"`
	SortTitle    *string       `json:"sort_title"`
	PubYear      *int          `json:"pub_year"`
	Series       *string       `json:"series"`
	WorkType     *string       `json:"work_type"`
	Tier         *string       `json:"tier"`
	Signed       bool          `json:"signed"`
	Notes        *string       `json:"notes"`
	CreatedAt    time.Time     `json:"created_at"`
	Publisher    *Publisher    `json:"publisher"`
	Contributors []Contributor `json:"contributors"`
}

// SortKey returns the ordering key for list views: the explicit sort title
// when present, the title otherwise.
func (b *Book) SortKey() string {
	if b.SortTitle != nil && *b.SortTitle != "" {
		return *b.SortTitle
	}
	return b.Title
}

// Authors returns the book's author-role contributors ordered by credit
// order ascending, missing orders last. The sort is stable so equal orders
// keep their storage sequence.
func (b *Book) Authors() []Contributor {
	var authors []Contributor
	for _, c := range b.Contributors {
		if c.Role == RoleAuthor {
			authors = append(authors, c)
		}
	}

	sort.SliceStable(authors, func(i, j int) bool {
		oi, oj := authors[i].CreditOrder, authors[j].CreditOrder
		switch {
		case oi == nil:
			return false
		case oj == nil:
			return true
		default:
			return *oi < *oj
		}
	})

	return authors
}

// AuthorNames returns the ordered author names, dropping contributors whose
// person carries neither a display nor a sort name.
func (b *Book) AuthorNames() []string {
	var names []string
	for _, c := range b.Authors() {
		if name := c.Person.Name(); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// MergeByID combines several result sets into one, deduplicating by book
// identifier. When the same id appears in multiple sets the later one wins;
// output order is otherwise unspecified (callers impose ordering).
func MergeByID(sets ...[]*Book) []*Book {
	byID := make(map[int]*Book)
	for _, set := range sets {
		for _, book := range set {
			byID[book.ID] = book
		}
	}

	merged := make([]*Book, 0, len(byID))
	for _, book := range byID {
		merged = append(merged, book)
	}
	return merged
}
