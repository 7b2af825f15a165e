package catalog

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sort"
)

// BrowseCeiling caps how many rows a single search can pull into memory.
const BrowseCeiling = 600

// FacetCount is one row of an "explore by" roll-up.
type FacetCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Service exposes catalog read operations to the transport layers.
type Service struct {
	repo    Repository
	gateway *Gateway
	logger  *slog.Logger

	// shuffle picks a random index in [0,n); injectable for deterministic tests.
	shuffle func(n int) int
}

// NewService wires a catalog service over the repository.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		gateway: NewGateway(repo),
		logger:  logger,
		shuffle: rand.IntN,
	}
}

// ListBooks returns one page of the full catalog, sort-key ascending.
func (service *Service) ListBooks(ctx context.Context, limit, offset int) ([]*Book, int, error) {
	return service.repo.ListBooks(ctx, limit, offset)
}

// GetBook returns a single book with publisher and ordered contributors.
func (service *Service) GetBook(ctx context.Context, id int) (*Book, error) {
	return service.repo.GetBook(ctx, id)
}

// Search runs the browse fan-out for q and imposes sort-key order on the
// merged set. The result is capped at [BrowseCeiling] rows.
func (service *Service) Search(ctx context.Context, q string) ([]*Book, error) {
	books, err := service.gateway.Search(ctx, q, BrowsePlan)
	if err != nil {
		return nil, err
	}

	sort.Slice(books, func(i, j int) bool {
		ki, kj := books[i].SortKey(), books[j].SortKey()
		if ki != kj {
			return ki < kj
		}
		return books[i].ID < books[j].ID
	})

	if len(books) > BrowseCeiling {
		books = books[:BrowseCeiling]
	}

	return books, nil
}

// Candidates runs the given plan for q without imposing any order. It is the
// entry point for the suggestion pipeline and the ask relay.
func (service *Service) Candidates(ctx context.Context, q string, plan Plan) ([]*Book, error) {
	return service.gateway.Search(ctx, q, plan)
}

// RandomShelf returns up to n random books from the unfiltered catalog for
// discovery browsing.
//
// The sample is a partial Fisher–Yates shuffle: only the first n positions
// are settled, so the cost is O(n) swaps over one loaded page.
func (service *Service) RandomShelf(ctx context.Context, n int) ([]*Book, error) {
	books, _, err := service.repo.ListBooks(ctx, BrowseCeiling, 0)
	if err != nil {
		return nil, err
	}

	if n > len(books) {
		n = len(books)
	}

	for i := 0; i < n; i++ {
		j := i + service.shuffle(len(books)-i)
		books[i], books[j] = books[j], books[i]
	}

	return books[:n], nil
}

// FacetRollup computes occurrence counts per author and per publisher over
// the currently loadable set, each sorted by count descending then value
// ascending for stable output.
func (service *Service) FacetRollup(ctx context.Context) (authors, publishers []FacetCount, err error) {
	books, _, err := service.repo.ListBooks(ctx, BrowseCeiling, 0)
	if err != nil {
		return nil, nil, err
	}

	authorCounts := make(map[string]int)
	publisherCounts := make(map[string]int)

	for _, b := range books {
		for _, name := range b.AuthorNames() {
			authorCounts[name]++
		}
		if b.Publisher != nil {
			publisherCounts[b.Publisher.Name]++
		}
	}

	return sortedCounts(authorCounts), sortedCounts(publisherCounts), nil
}

func sortedCounts(counts map[string]int) []FacetCount {
	out := make([]FacetCount, 0, len(counts))
	for value, count := range counts {
		out = append(out, FacetCount{Value: value, Count: count})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})

	return out
}
