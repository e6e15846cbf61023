package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORSOptions lets the browser client call every route with a bearer token
// from the given origins. "*" allows any origin.
func CORSOptions(origins []string) cors.Options {
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           600, // seconds
	}
}
