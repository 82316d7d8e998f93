package server

import (
	"weathercat/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// StatsSource provides the numbers served on /api/v1/stats
type StatsSource interface {
	Snapshot() service.Stats
}

// Server is the health and stats HTTP surface
type Server struct {
	app    *fiber.App
	logger *zap.Logger
}

// New creates the server and registers its routes
func New(stats StatsSource, logger *zap.Logger) *Server {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	RegisterRoutes(app, stats)
	return &Server{app: app, logger: logger}
}

// RegisterRoutes wires the HTTP handlers into the Fiber app
func RegisterRoutes(app *fiber.App, stats StatsSource) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	v1 := app.Group("/api/v1")
	v1.Get("/stats", func(c *fiber.Ctx) error {
		return c.JSON(stats.Snapshot())
	})
}

// Start listens on addr in the background
func (s *Server) Start(addr string) {
	go func() {
		s.logger.Info("HTTP server listening", zap.String("addr", addr))
		if err := s.app.Listen(addr); err != nil {
			s.logger.Error("HTTP server stopped", zap.Error(err))
		}
	}()
}

// Shutdown stops accepting connections and waits for active requests
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
