package catalog

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkshelf/inkshelf/pkg/pointer"
)

// stubRepo serves a fixed book list; search legs echo slices of it so the
// service-level ordering and capping rules can be observed in isolation.
type stubRepo struct {
	books []*Book
}

func (s *stubRepo) ListBooks(ctx context.Context, limit, offset int) ([]*Book, int, error) {
	if limit > len(s.books) {
		limit = len(s.books)
	}
	return s.books[:limit], len(s.books), nil
}

func (s *stubRepo) GetBook(ctx context.Context, id int) (*Book, error) {
	return s.books[0], nil
}

func (s *stubRepo) BooksByField(ctx context.Context, field, q string, limit int) ([]*Book, error) {
	if field == "title" {
		return s.books, nil
	}
	return nil, nil
}

func (s *stubRepo) BooksByAuthorName(ctx context.Context, q string, limit int) ([]*Book, error) {
	return nil, nil
}

func (s *stubRepo) BooksByPublisherName(ctx context.Context, q string, limit int) ([]*Book, error) {
	return nil, nil
}

func (s *stubRepo) AttachContributors(ctx context.Context, books []*Book) error {
	return nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, slog.Default())
}

/*
TestService_Search_OrdersBySortKey verifies that merged results come back in
sort-key order with the title as fallback key and the id as final tie-break.
*/
func TestService_Search_OrdersBySortKey(t *testing.T) {
	repo := &stubRepo{books: []*Book{
		{ID: 3, Title: "The Left Hand of Darkness", SortTitle: pointer.To("Left Hand of Darkness, The")},
		{ID: 1, Title: "Rocannon's World"},
		{ID: 2, Title: "City of Illusions"},
	}}

	service := newTestService(repo)

	books, err := service.Search(context.Background(), "hain")
	require.NoError(t, err)
	require.Len(t, books, 3)

	assert.Equal(t, "City of Illusions", books[0].Title)
	assert.Equal(t, "The Left Hand of Darkness", books[1].Title)
	assert.Equal(t, "Rocannon's World", books[2].Title)
}

/*
TestService_RandomShelf_Deterministic verifies the partial shuffle under an
injected picker: with a picker that always returns 0 the sample is the list
prefix, and n is clamped to the catalog size.
*/
func TestService_RandomShelf_Deterministic(t *testing.T) {
	repo := &stubRepo{books: []*Book{
		{ID: 1, Title: "A"}, {ID: 2, Title: "B"}, {ID: 3, Title: "C"},
	}}

	service := newTestService(repo)
	service.shuffle = func(n int) int { return 0 }

	books, err := service.RandomShelf(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, 1, books[0].ID)
	assert.Equal(t, 2, books[1].ID)

	// n larger than the catalog clamps.
	books, err = service.RandomShelf(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, books, 3)
}

/*
TestService_RandomShelf_UsesPicker verifies that the picker actually drives
the selection: always picking the last remaining index reverses the prefix.
*/
func TestService_RandomShelf_UsesPicker(t *testing.T) {
	repo := &stubRepo{books: []*Book{
		{ID: 1, Title: "A"}, {ID: 2, Title: "B"}, {ID: 3, Title: "C"},
	}}

	service := newTestService(repo)
	service.shuffle = func(n int) int { return n - 1 }

	// Swap trace: [1 2 3] → pick last → [3 2 1] → pick last → [3 1 2].
	books, err := service.RandomShelf(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, 3, books[0].ID)
	assert.Equal(t, 1, books[1].ID)
}

/*
TestService_FacetRollup verifies per-author and per-publisher counts sorted
by count descending, value ascending.
*/
func TestService_FacetRollup(t *testing.T) {
	leGuin := []Contributor{{
		Role:   RoleAuthor,
		Person: Person{ID: 1, DisplayName: pointer.To("Ursula K. Le Guin")},
	}}
	butler := []Contributor{{
		Role:   RoleAuthor,
		Person: Person{ID: 2, DisplayName: pointer.To("Octavia E. Butler")},
	}}
	harper := &Publisher{ID: 1, Name: "Harper & Row"}
	tor := &Publisher{ID: 2, Name: "Tor"}

	repo := &stubRepo{books: []*Book{
		{ID: 1, Title: "The Dispossessed", Contributors: leGuin, Publisher: harper},
		{ID: 2, Title: "The Lathe of Heaven", Contributors: leGuin, Publisher: tor},
		{ID: 3, Title: "Kindred", Contributors: butler, Publisher: tor},
	}}

	service := newTestService(repo)

	authors, publishers, err := service.FacetRollup(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []FacetCount{
		{Value: "Ursula K. Le Guin", Count: 2},
		{Value: "Octavia E. Butler", Count: 1},
	}, authors)

	assert.Equal(t, []FacetCount{
		{Value: "Tor", Count: 2},
		{Value: "Harper & Row", Count: 1},
	}, publishers)
}
