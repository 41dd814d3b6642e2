package wire

import (
	"cinema-api/internal/adaptor"
	"cinema-api/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireOrder(r chi.Router, orderHandler *adaptor.OrderHandler, deps Deps) {
	limit := middleware.RateLimit(deps.Config.RateLimit, deps.Redis, deps.Logger)

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", orderHandler.GetOrders)
		r.With(limit).Post("/", orderHandler.CreateOrder)
	})
}
