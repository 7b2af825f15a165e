package catalog

import "context"

// Repository is the read-side contract for the catalog. The collection is
// maintained elsewhere; this service never writes to it.
type Repository interface {
	// ListBooks returns books ordered by sort key ascending with a total count.
	ListBooks(ctx context.Context, limit, offset int) ([]*Book, int, error)

	// GetBook returns one book with its publisher and contributors attached.
	GetBook(ctx context.Context, id int) (*Book, error)

	SearchStore
}

// SearchStore is the slice of the repository the fan-out gateway depends on.
// Each lookup is an independent, capped, case-insensitive substring match;
// none of them attach contributors — the gateway does that once for the
// merged set.
type SearchStore interface {
	// BooksByField matches %q% against a single book column.
	BooksByField(ctx context.Context, field, q string, limit int) ([]*Book, error)

	// BooksByAuthorName matches %q% against contributor display or sort names.
	BooksByAuthorName(ctx context.Context, q string, limit int) ([]*Book, error)

	// BooksByPublisherName matches %q% against publisher names.
	BooksByPublisherName(ctx context.Context, q string, limit int) ([]*Book, error)

	// AttachContributors loads ordered contributors for every book in the slice.
	AttachContributors(ctx context.Context, books []*Book) error
}
