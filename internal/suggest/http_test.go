package suggest_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkshelf/inkshelf/internal/catalog"
	"github.com/inkshelf/inkshelf/internal/suggest"
	"github.com/inkshelf/inkshelf/pkg/pointer"
)

// candidateRepo serves a fixed candidate set for every title lookup.
type candidateRepo struct {
	books []*catalog.Book
}

func (r *candidateRepo) ListBooks(ctx context.Context, limit, offset int) ([]*catalog.Book, int, error) {
	return r.books, len(r.books), nil
}

func (r *candidateRepo) GetBook(ctx context.Context, id int) (*catalog.Book, error) {
	return nil, errors.New("not found")
}

func (r *candidateRepo) BooksByField(ctx context.Context, field, q string, limit int) ([]*catalog.Book, error) {
	if field == "title" {
		return r.books, nil
	}
	return nil, nil
}

func (r *candidateRepo) BooksByAuthorName(ctx context.Context, q string, limit int) ([]*catalog.Book, error) {
	return nil, nil
}

func (r *candidateRepo) BooksByPublisherName(ctx context.Context, q string, limit int) ([]*catalog.Book, error) {
	return nil, nil
}

func (r *candidateRepo) AttachContributors(ctx context.Context, books []*catalog.Book) error {
	return nil
}

func newSuggestServer(books []*catalog.Book) *httptest.Server {
	service := catalog.NewService(&candidateRepo{books: books}, slog.Default())
	return httptest.NewServer(suggest.NewHandler(service).Routes())
}

/*
TestHandler_EmptyQuery verifies that a blank query returns an empty list,
not an error.
*/
func TestHandler_EmptyQuery(t *testing.T) {
	server := newSuggestServer(nil)
	defer server.Close()

	response, err := http.Get(server.URL + "/?q=++")
	require.NoError(t, err)
	defer response.Body.Close()

	assert.Equal(t, http.StatusOK, response.StatusCode)

	var envelope struct {
		Data []json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(response.Body).Decode(&envelope))
	assert.Empty(t, envelope.Data)
}

/*
TestHandler_RendersFacets verifies the flattened wire shape for a matching
query: the author block first, the alternate name displayed when it scores
higher, and the title carrying its book id.
*/
func TestHandler_RendersFacets(t *testing.T) {
	books := []*catalog.Book{
		{
			ID:    7,
			Title: "I, Robot",
			Contributors: []catalog.Contributor{
				{
					Role: catalog.RoleAuthor,
					Person: catalog.Person{
						ID:          1,
						DisplayName: pointer.To("Isaac Asimov"),
						SortName:    pointer.To("Asimov, Isaac"),
					},
				},
			},
		},
	}

	server := newSuggestServer(books)
	defer server.Close()

	response, err := http.Get(server.URL + "/?q=asimov")
	require.NoError(t, err)
	defer response.Body.Close()

	var envelope struct {
		Data []struct {
			Facet   string `json:"facet"`
			Value   string `json:"value"`
			Display string `json:"display"`
			BookID  *int   `json:"book_id"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(response.Body).Decode(&envelope))
	require.Len(t, envelope.Data, 2)

	// Author block precedes the title block.
	assert.Equal(t, "author", envelope.Data[0].Facet)
	assert.Equal(t, "Isaac Asimov", envelope.Data[0].Value)
	assert.Equal(t, "Asimov, Isaac", envelope.Data[0].Display)
	assert.Nil(t, envelope.Data[0].BookID)

	assert.Equal(t, "title", envelope.Data[1].Facet)
	require.NotNil(t, envelope.Data[1].BookID)
	assert.Equal(t, 7, *envelope.Data[1].BookID)
}
