package suggest

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/inkshelf/inkshelf/internal/catalog"
	"github.com/inkshelf/inkshelf/internal/platform/respond"
	"github.com/inkshelf/inkshelf/pkg/slice"
)

// Handler serves the autocomplete endpoint: candidate fetch through the
// catalog's suggest plan, then ranking and grouping here.
type Handler struct {
	service *catalog.Service
}

func NewHandler(service *catalog.Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.suggestions)
	return router
}

// suggestionJSON is the flattened wire shape shared by all four variants.
type suggestionJSON struct {
	Facet   Facet  `json:"facet"`
	Value   string `json:"value"`
	Display string `json:"display"`
	Meta    string `json:"meta,omitempty"`
	BookID  *int   `json:"book_id,omitempty"`
	Count   int    `json:"count,omitempty"`
}

// renderSuggestion flattens one variant. The type switch is exhaustive over
// the sum type; an unknown variant falls back to the interface accessors.
func renderSuggestion(s Suggestion) suggestionJSON {
	out := suggestionJSON{
		Facet:   s.Facet(),
		Value:   s.Value(),
		Display: s.Display(),
		Meta:    s.Meta(),
	}

	switch v := s.(type) {
	case AuthorSuggestion:
		out.Count = v.Count
	case TitleSuggestion:
		id := v.BookID
		out.BookID = &id
	case SeriesSuggestion:
		out.Count = v.Count
	case PublisherSuggestion:
		out.Count = v.Count
	}

	return out
}

// suggestions handles GET /suggest?q=. An empty query yields an empty list
// rather than an error: the dropdown simply has nothing to show.
func (handler *Handler) suggestions(writer http.ResponseWriter, request *http.Request) {
	q := strings.TrimSpace(request.URL.Query().Get("q"))
	if q == "" {
		respond.OK(writer, []suggestionJSON{})
		return
	}

	candidates, err := handler.service.Candidates(request.Context(), q, catalog.SuggestPlan)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	out := slice.Map(Aggregate(q, candidates), renderSuggestion)
	if out == nil {
		out = []suggestionJSON{}
	}
	respond.OK(writer, out)
}
