package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"chatrelay/internal/handlers"
	"chatrelay/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	RelayService service.RelayService
	HomeHandler  *handlers.HomeHandler // optional; "/" is not served when nil
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)

	// CORS applies to every route, preflight included
	r.Use(CORS)

	r.Method(http.MethodGet, "/health", handlers.NewHealthHandler())

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/chat", handlers.NewRelayHandler(deps.RelayService))
	})

	if deps.HomeHandler != nil {
		r.Method(http.MethodGet, "/", deps.HomeHandler)
	}

	return r
}
