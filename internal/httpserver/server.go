package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/rx3lixir/fonoteka/internal/catalog"
	"github.com/rx3lixir/fonoteka/pkg/jwt"
)

// Server is the operator-facing HTTP API: health probe plus JWT-protected
// stats and search endpoints over the same catalog core the bot uses.
type Server struct {
	catalog    *catalog.Service
	jwtService *jwt.Service
	log        *log.Logger
	httpServer *http.Server
}

func New(addr string, svc *catalog.Service, jwtService *jwt.Service, logger *log.Logger) *Server {
	s := &Server{
		catalog:    svc,
		jwtService: jwtService,
		log:        logger,
	}

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.setupRoutes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
