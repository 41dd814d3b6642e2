package wire

import (
	"cinema-api/internal/adaptor"
	"cinema-api/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireCatalog registers genres, actors and cinema halls. Reads are open to
// any authenticated user, writes need staff.
func wireCatalog(r chi.Router, catalogHandler *adaptor.CatalogHandler, log *zap.Logger) {
	staff := middleware.StaffWrites(log)

	r.With(staff).Route("/genres", func(r chi.Router) {
		r.Get("/", catalogHandler.GetGenres)
		r.Post("/", catalogHandler.CreateGenre)
	})

	r.With(staff).Route("/actors", func(r chi.Router) {
		r.Get("/", catalogHandler.GetActors)
		r.Post("/", catalogHandler.CreateActor)
	})

	r.With(staff).Route("/cinema-halls", func(r chi.Router) {
		r.Get("/", catalogHandler.GetCinemaHalls)
		r.Post("/", catalogHandler.CreateCinemaHall)
	})
}
