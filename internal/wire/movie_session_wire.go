package wire

import (
	"cinema-api/internal/adaptor"
	"cinema-api/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireMovieSession(r chi.Router, sessionHandler *adaptor.MovieSessionHandler, log *zap.Logger) {
	r.With(middleware.StaffWrites(log)).Route("/movie-sessions", func(r chi.Router) {
		r.Get("/", sessionHandler.GetMovieSessions)
		r.Post("/", sessionHandler.CreateMovieSession)

		r.Get("/{id}", sessionHandler.GetMovieSessionByID)
		r.Put("/{id}", sessionHandler.UpdateMovieSession)
		r.Delete("/{id}", sessionHandler.DeleteMovieSession)
	})
}
