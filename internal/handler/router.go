package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bookvault/bookvault-go/internal/middleware"
)

// RouterConfig holds the settings the router applies to its route groups.
type RouterConfig struct {
	JWTSecret     string
	AuthRateRPS   float64
	AuthRateBurst int
}

// NewRouter wires every route. Book routes and /me require a bearer token;
// /register and /login are rate limited per client IP. ctx bounds the
// rate limiter's background cleanup.
func NewRouter(ctx context.Context, auth *AuthHandler, books *BookHandler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	notFound := func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, "Endpoint not found")
	}
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(ctx, cfg.AuthRateRPS, cfg.AuthRateBurst))
		r.Post("/register", auth.HandleRegister)
		r.Post("/login", auth.HandleLogin)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(cfg.JWTSecret))
		r.Get("/me", auth.HandleMe)

		r.Get("/books", books.HandleListBooks)
		r.Post("/books", books.HandleCreateBook)
		r.Get("/books/{id}", books.HandleGetBook)
		r.Put("/books/{id}", books.HandleUpdateBook)
		r.Delete("/books/{id}", books.HandleDeleteBook)
	})

	return r
}
