package wire

import (
	"net/http"

	"cinema-api/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	authn func(http.Handler) http.Handler,
) {
	// public
	r.Post("/register", authHandler.Register)
	r.Post("/login", authHandler.Login)

	r.With(authn).Post("/logout", authHandler.Logout)
	r.With(authn).Get("/me", authHandler.Me)
}
