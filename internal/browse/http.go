package browse

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/inkshelf/inkshelf/internal/platform/request"
	"github.com/inkshelf/inkshelf/internal/platform/respond"
	"github.com/inkshelf/inkshelf/internal/platform/validate"
)

// Handler serves the recent-search history endpoints.
type Handler struct {
	recent RecentStore
}

func NewHandler(recent RecentStore) *Handler {
	return &Handler{recent: recent}
}

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/recent", handler.listRecent)
	router.Post("/recent", handler.addRecent)
	return router
}

func (handler *Handler) listRecent(writer http.ResponseWriter, request *http.Request) {
	entries, err := handler.recent.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if entries == nil {
		entries = []string{}
	}
	respond.OK(writer, entries)
}

type addRecentRequest struct {
	Query string `json:"query"`
}

func (handler *Handler) addRecent(writer http.ResponseWriter, request *http.Request) {
	var payload addRecentRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var v validate.Validator
	if err := v.Required("query", payload.Query).MaxLen("query", payload.Query, 200).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.recent.Add(request.Context(), payload.Query); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
