package wire

import (
	"net/http"

	"sports-club/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireUser mounts the user routes. Registration and lookups stay public,
// revoking a membership requires a verified token.
func wireUser(r chi.Router, userHandler *adaptor.UserHandler, protect func(http.Handler) http.Handler) {
	r.Route("/users", func(r chi.Router) {
		r.Post("/", userHandler.RegisterUser)
		r.Get("/members", userHandler.GetMembers)
		r.Get("/{email}", userHandler.GetUser)
		r.With(protect).Delete("/member/{email}", userHandler.RevokeMembership)
	})
}
