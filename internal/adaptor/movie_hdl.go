package adaptor

import (
	"net/http"

	"cinema-api/internal/dto/request"
	"cinema-api/internal/usecase"
	"cinema-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxImageSize = 10 << 20

type MovieHandler struct {
	service usecase.MovieService
	log     *zap.Logger
}

func NewMovieHandler(service usecase.MovieService, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		log:     log.With(zap.String("handler", "movie")),
	}
}

// GetMovies handles GET /api/movies?title=&genres=&actors=
func (h *MovieHandler) GetMovies(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.MovieFilterRequest{
		PaginatedRequest: paginationFromQuery(r),
		Title:            query.Get("title"),
		Genres:           query.Get("genres"),
		Actors:           query.Get("actors"),
	}

	movies, err := h.service.GetMovies(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "get movies")
		return
	}

	utils.ResponseSuccess(w, "Movies retrieved successfully", movies)
}

// GetMovieByID handles GET /api/movies/{id}
func (h *MovieHandler) GetMovieByID(w http.ResponseWriter, r *http.Request) {
	movie, err := h.service.GetMovieByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get movie by ID")
		return
	}

	utils.ResponseSuccess(w, "Movie retrieved successfully", movie)
}

// CreateMovie handles POST /api/movies
func (h *MovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var req request.MovieRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	movie, err := h.service.CreateMovie(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create movie")
		return
	}

	utils.ResponseCreated(w, "Movie created successfully", movie)
}

// UploadImage handles POST /api/movies/{id}/upload-image (multipart field "image")
func (h *MovieHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize)
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		utils.ResponseBadRequest(w, "Invalid multipart form", map[string]string{"image": "Image is required (max 10MB)"})
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		utils.ResponseBadRequest(w, "Validation failed", map[string]string{"image": "No file was submitted"})
		return
	}
	defer file.Close()

	movie, err := h.service.UploadImage(r.Context(), chi.URLParam(r, "id"), header.Filename, file)
	if err != nil {
		handleServiceError(w, h.log, err, "upload movie image")
		return
	}

	utils.ResponseSuccess(w, "Image uploaded successfully", movie)
}

// MethodNotAllowed answers DELETE on movies, which is never exposed.
func (h *MovieHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	utils.ResponseMethodNotAllowed(w, "Method \""+r.Method+"\" not allowed")
}
