package wire

import (
	"cinema-api/internal/adaptor"
	"cinema-api/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireMovie(r chi.Router, movieHandler *adaptor.MovieHandler, log *zap.Logger) {
	admin := middleware.Admin(log)

	r.Route("/movies", func(r chi.Router) {
		r.Get("/", movieHandler.GetMovies)
		r.With(admin).Post("/", movieHandler.CreateMovie)

		r.Get("/{id}", movieHandler.GetMovieByID)
		// movies are never deleted through the API
		r.Delete("/{id}", movieHandler.MethodNotAllowed)

		r.With(admin).Post("/{id}/upload-image", movieHandler.UploadImage)
	})
}
