package httpserver

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (s *Server) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	// Middleware block
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Compress(5))

	r.Get("/healthz", s.HandleHealth)

	// Operator routes (auth required)
	r.Route("/api", func(r chi.Router) {
		r.Use(s.AuthMiddleware)

		r.Get("/stats", s.HandleStats)
		r.Get("/search", s.HandleSearch)
	})

	return r
}
