package ask

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/inkshelf/inkshelf/internal/platform/request"
	"github.com/inkshelf/inkshelf/internal/platform/respond"
)

// Handler serves the ask relay endpoint.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/", handler.ask)
	return router
}

func (handler *Handler) ask(writer http.ResponseWriter, request *http.Request) {
	var payload Request
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	response, err := handler.service.Ask(request.Context(), payload.Question)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, response)
}
