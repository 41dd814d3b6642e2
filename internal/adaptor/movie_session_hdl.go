package adaptor

import (
	"net/http"

	"cinema-api/internal/dto/request"
	"cinema-api/internal/usecase"
	"cinema-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MovieSessionHandler struct {
	service usecase.MovieSessionService
	log     *zap.Logger
}

func NewMovieSessionHandler(service usecase.MovieSessionService, log *zap.Logger) *MovieSessionHandler {
	return &MovieSessionHandler{
		service: service,
		log:     log.With(zap.String("handler", "movie_session")),
	}
}

// GetMovieSessions handles GET /api/movie-sessions?date=YYYY-MM-DD&movie=<id>
func (h *MovieSessionHandler) GetMovieSessions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.MovieSessionFilterRequest{
		PaginatedRequest: paginationFromQuery(r),
		Date:             query.Get("date"),
		Movie:            query.Get("movie"),
	}

	sessions, err := h.service.GetMovieSessions(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "get movie sessions")
		return
	}

	utils.ResponseSuccess(w, "Movie sessions retrieved successfully", sessions)
}

// GetMovieSessionByID handles GET /api/movie-sessions/{id}
func (h *MovieSessionHandler) GetMovieSessionByID(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.GetMovieSessionByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get movie session")
		return
	}

	utils.ResponseSuccess(w, "Movie session retrieved successfully", session)
}

// CreateMovieSession handles POST /api/movie-sessions
func (h *MovieSessionHandler) CreateMovieSession(w http.ResponseWriter, r *http.Request) {
	var req request.MovieSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	session, err := h.service.CreateMovieSession(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create movie session")
		return
	}

	utils.ResponseCreated(w, "Movie session created successfully", session)
}

// UpdateMovieSession handles PUT /api/movie-sessions/{id}
func (h *MovieSessionHandler) UpdateMovieSession(w http.ResponseWriter, r *http.Request) {
	var req request.MovieSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	session, err := h.service.UpdateMovieSession(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update movie session")
		return
	}

	utils.ResponseSuccess(w, "Movie session updated successfully", session)
}

// DeleteMovieSession handles DELETE /api/movie-sessions/{id}
func (h *MovieSessionHandler) DeleteMovieSession(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteMovieSession(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete movie session")
		return
	}

	utils.ResponseNoContent(w)
}
