// Package router sets up the HTTP routes and middleware chain for the blog
// content API.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"agencyweb/internal/handlers"
	"agencyweb/internal/middleware"
)

// New creates and returns the configured Chi router. limiter may be nil to
// serve the API without rate limiting.
func New(content *handlers.Content, limiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request. Logger runs first so
	// recovered panics are logged with their request id.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SecureHeaders)

	// Health check, never rate limited.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		if limiter != nil {
			r.Use(limiter.Middleware)
		}
		r.Get("/categories", content.Categories)
		r.Get("/articles", content.Articles)
		r.Get("/articles/{id}", content.Article)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, `{"error":"Not Found"}`)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, `{"error":"Method Not Allowed"}`)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, `{"status":"ok"}`)
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}
