// Package api exposes the most recent sample over HTTP. It is a read-only
// consumer of the sampler's published state and never triggers sampling.
package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/nhdewitt/memwatch/internal/sampler"
)

// Server is the HTTP status server.
type Server struct {
	app     *fiber.App
	sampler *sampler.Sampler
	id      string
	started time.Time
}

// NewServer creates the status server for a sampler.
func NewServer(s *sampler.Sampler) *Server {
	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ServerHeader: "memwatch",
		AppName:      "memwatch v1.0",
	})

	srv := &Server{
		app:     app,
		sampler: s,
		id:      uuid.NewString(),
		started: time.Now(),
	}
	srv.setupRoutes()
	return srv
}

func (s *Server) setupRoutes() {
	api := s.app.Group("/api/v1")
	api.Get("/status", s.getStatus)
	api.Get("/health", s.healthCheck)
}

// Start blocks serving on the given address.
func (s *Server) Start(address string) error {
	return s.app.Listen(address)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
