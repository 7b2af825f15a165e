/*
Package catalog — PostgreSQL implementation of the catalog read store.

The store keeps every lookup a single round-trip:
  - Publisher association is resolved with a LEFT JOIN on every book query.
  - Contributors are attached for a whole result set at once via ANY($1),
    avoiding N+1 queries after a fan-out merge.
  - List queries use COUNT(*) OVER() to return the total without a second
    count query.
*/
package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkshelf/inkshelf/internal/platform/database/schema"
	"github.com/inkshelf/inkshelf/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed catalog store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// searchableColumns is the allowlist for BooksByField. Field names arrive
// from in-process plans, but interpolating an unchecked identifier into SQL
// is still off the table.
var searchableColumns = map[string]bool{
	schema.Book.Title:    true,
	schema.Book.Series:   true,
	schema.Book.Notes:    true,
	schema.Book.WorkType: true,
	schema.Book.Tier:     true,
}

// bookSelect is the shared projection: all book columns plus the 0..1
// publisher resolved in the same round-trip.
func bookSelect() string {
	return fmt.Sprintf(`
		SELECT b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s,
		       p.%s, p.%s
		FROM %s b
		LEFT JOIN %s p ON p.%s = b.%s
	`,
		schema.Book.ID, schema.Book.Title, schema.Book.SortTitle, schema.Book.PubYear,
		schema.Book.Series, schema.Book.WorkType, schema.Book.Tier, schema.Book.Signed,
		schema.Book.Notes, schema.Book.CreatedAt,
		schema.Publisher.ID, schema.Publisher.Name,
		schema.Book.Table,
		schema.Publisher.Table, schema.Publisher.ID, schema.Book.PublisherID,
	)
}

// scanBook reads one row of the bookSelect projection.
func scanBook(row interface{ Scan(...any) error }) (*Book, error) {
	b := &Book{}
	var pubID *int
	var pubName *string

	if err := row.Scan(
		&b.ID, &b.Title, &b.SortTitle, &b.PubYear, &b.Series, &b.WorkType,
		&b.Tier, &b.Signed, &b.Notes, &b.CreatedAt, &pubID, &pubName,
	); err != nil {
		return nil, err
	}

	if pubID != nil && pubName != nil {
		b.Publisher = &Publisher{ID: *pubID, Name: *pubName}
	}

	return b, nil
}

func (repository *PostgresRepository) ListBooks(ctx context.Context, limit, offset int) ([]*Book, int, error) {
	query := bookSelect() + fmt.Sprintf(`
		ORDER BY COALESCE(b.%s, b.%s) ASC
		LIMIT $1 OFFSET $2
	`, schema.Book.SortTitle, schema.Book.Title)

	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.Book.Table)

	var total int
	if err := repository.db.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_books")
	}

	rows, err := repository.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_books")
	}
	defer rows.Close()

	var books []*Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_book")
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_books")
	}

	if err := repository.AttachContributors(ctx, books); err != nil {
		return nil, 0, err
	}

	return books, total, nil
}

func (repository *PostgresRepository) GetBook(ctx context.Context, id int) (*Book, error) {
	query := bookSelect() + fmt.Sprintf(` WHERE b.%s = $1`, schema.Book.ID)

	b, err := scanBook(repository.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_book")
	}

	if err := repository.AttachContributors(ctx, []*Book{b}); err != nil {
		return nil, err
	}

	return b, nil
}

func (repository *PostgresRepository) BooksByField(ctx context.Context, field, q string, limit int) ([]*Book, error) {
	if !searchableColumns[field] {
		return nil, fmt.Errorf("catalog: column %q is not searchable", field)
	}

	query := bookSelect() + fmt.Sprintf(` WHERE b.%s ILIKE $1 LIMIT $2`, field)

	return repository.queryBooks(ctx, "search_"+field, query, "%"+q+"%", limit)
}

func (repository *PostgresRepository) BooksByAuthorName(ctx context.Context, q string, limit int) ([]*Book, error) {
	// Traverses the contributor/person relation so a match on either name
	// form of any contributor surfaces the book.
	query := bookSelect() + fmt.Sprintf(`
		WHERE b.%s IN (
			SELECT c.%s
			FROM %s c
			JOIN %s pe ON pe.%s = c.%s
			WHERE pe.%s ILIKE $1 OR pe.%s ILIKE $1
		)
		LIMIT $2
	`,
		schema.Book.ID,
		schema.Contributor.BookID,
		schema.Contributor.Table,
		schema.Person.Table, schema.Person.ID, schema.Contributor.PersonID,
		schema.Person.DisplayName, schema.Person.SortName,
	)

	return repository.queryBooks(ctx, "search_author", query, "%"+q+"%", limit)
}

func (repository *PostgresRepository) BooksByPublisherName(ctx context.Context, q string, limit int) ([]*Book, error) {
	query := bookSelect() + fmt.Sprintf(` WHERE p.%s ILIKE $1 LIMIT $2`, schema.Publisher.Name)

	return repository.queryBooks(ctx, "search_publisher", query, "%"+q+"%", limit)
}

// queryBooks runs a two-argument (pattern, limit) book query and scans the rows.
func (repository *PostgresRepository) queryBooks(ctx context.Context, action, query, pattern string, limit int) ([]*Book, error) {
	rows, err := repository.db.Query(ctx, query, pattern, limit)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	defer rows.Close()

	var books []*Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_book")
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, action)
	}

	return books, nil
}

func (repository *PostgresRepository) AttachContributors(ctx context.Context, books []*Book) error {
	if len(books) == 0 {
		return nil
	}

	byID := make(map[int]*Book, len(books))
	ids := make([]int32, 0, len(books))
	for _, b := range books {
		byID[b.ID] = b
		ids = append(ids, int32(b.ID))
	}

	// Credit order ascending with NULLs last mirrors how author credits are
	// displayed; uncredited contributors trail the explicit ones.
	query := fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, pe.%s, pe.%s, pe.%s
		FROM %s c
		JOIN %s pe ON pe.%s = c.%s
		WHERE c.%s = ANY($1)
		ORDER BY c.%s, c.%s ASC NULLS LAST
	`,
		schema.Contributor.BookID, schema.Contributor.Role, schema.Contributor.CreditOrder,
		schema.Person.ID, schema.Person.DisplayName, schema.Person.SortName,
		schema.Contributor.Table,
		schema.Person.Table, schema.Person.ID, schema.Contributor.PersonID,
		schema.Contributor.BookID,
		schema.Contributor.BookID, schema.Contributor.CreditOrder,
	)

	rows, err := repository.db.Query(ctx, query, ids)
	if err != nil {
		return dberr.Wrap(err, "attach_contributors")
	}
	defer rows.Close()

	for rows.Next() {
		var bookID int
		var c Contributor
		if err := rows.Scan(&bookID, &c.Role, &c.CreditOrder, &c.Person.ID, &c.Person.DisplayName, &c.Person.SortName); err != nil {
			return dberr.Wrap(err, "scan_contributor")
		}
		if b, ok := byID[bookID]; ok {
			b.Contributors = append(b.Contributors, c)
		}
	}

	return dberr.Wrap(rows.Err(), "attach_contributors")
}
