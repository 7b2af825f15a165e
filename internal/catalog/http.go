package catalog

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/inkshelf/inkshelf/internal/platform/apperr"
	requestutil "github.com/inkshelf/inkshelf/internal/platform/request"
	"github.com/inkshelf/inkshelf/internal/platform/respond"
	"github.com/inkshelf/inkshelf/pkg/convert"
	"github.com/inkshelf/inkshelf/pkg/pagination"
)

// Handler owns the catalog's HTTP surface: browsing, search, the random
// discovery shelf, and the facet roll-ups.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Route("/books", func(r chi.Router) {
		r.Get("/", handler.listBooks)
		r.Get("/{id}", handler.getBook)
	})

	router.Get("/shelf/random", handler.randomShelf)
	router.Get("/facets", handler.facets)

	return router
}

// listBooks handles GET /books. With ?q= it runs the search fan-out and
// returns the (capped) matched set; without it, one sort-ordered page.
func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	q := strings.TrimSpace(request.URL.Query().Get("q"))

	if q != "" {
		books, err := handler.service.Search(request.Context(), q)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, books)
		return
	}

	params := pagination.FromRequest(request)

	books, total, err := handler.service.ListBooks(request.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, books, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getBook(writer http.ResponseWriter, request *http.Request) {
	id, err := strconv.Atoi(requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("Invalid book id"))
		return
	}

	book, err := handler.service.GetBook(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, book)
}

// randomShelf handles GET /shelf/random?n= for discovery browsing.
func (handler *Handler) randomShelf(writer http.ResponseWriter, request *http.Request) {
	n := convert.ToIntD(request.URL.Query().Get("n"), 12)
	if n < 1 || n > pagination.MaxLimit {
		n = 12
	}

	books, err := handler.service.RandomShelf(request.Context(), n)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, books)
}

// facets handles GET /facets: the per-author / per-publisher roll-ups that
// feed the "explore by" panel.
func (handler *Handler) facets(writer http.ResponseWriter, request *http.Request) {
	authors, publishers, err := handler.service.FacetRollup(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string][]FacetCount{
		"authors":    authors,
		"publishers": publishers,
	})
}
