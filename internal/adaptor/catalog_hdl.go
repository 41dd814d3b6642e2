package adaptor

import (
	"net/http"

	"cinema-api/internal/dto/request"
	"cinema-api/internal/usecase"
	"cinema-api/pkg/utils"

	"go.uber.org/zap"
)

type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log.With(zap.String("handler", "catalog")),
	}
}

// GetGenres handles GET /api/genres
func (h *CatalogHandler) GetGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.service.GetGenres(r.Context(), paginationFromQuery(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get genres")
		return
	}

	utils.ResponseSuccess(w, "Genres retrieved successfully", genres)
}

// CreateGenre handles POST /api/genres
func (h *CatalogHandler) CreateGenre(w http.ResponseWriter, r *http.Request) {
	var req request.GenreRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	genre, err := h.service.CreateGenre(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create genre")
		return
	}

	utils.ResponseCreated(w, "Genre created successfully", genre)
}

// GetActors handles GET /api/actors
func (h *CatalogHandler) GetActors(w http.ResponseWriter, r *http.Request) {
	actors, err := h.service.GetActors(r.Context(), paginationFromQuery(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get actors")
		return
	}

	utils.ResponseSuccess(w, "Actors retrieved successfully", actors)
}

// CreateActor handles POST /api/actors
func (h *CatalogHandler) CreateActor(w http.ResponseWriter, r *http.Request) {
	var req request.ActorRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	actor, err := h.service.CreateActor(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create actor")
		return
	}

	utils.ResponseCreated(w, "Actor created successfully", actor)
}

// GetCinemaHalls handles GET /api/cinema-halls
func (h *CatalogHandler) GetCinemaHalls(w http.ResponseWriter, r *http.Request) {
	halls, err := h.service.GetCinemaHalls(r.Context(), paginationFromQuery(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get cinema halls")
		return
	}

	utils.ResponseSuccess(w, "Cinema halls retrieved successfully", halls)
}

// CreateCinemaHall handles POST /api/cinema-halls
func (h *CatalogHandler) CreateCinemaHall(w http.ResponseWriter, r *http.Request) {
	var req request.CinemaHallRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	hall, err := h.service.CreateCinemaHall(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create cinema hall")
		return
	}

	utils.ResponseCreated(w, "Cinema hall created successfully", hall)
}
