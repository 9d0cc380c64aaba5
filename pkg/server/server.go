// Package server is the HTTP boundary: routing, CORS, upload parsing, and
// error payloads. The conversion logic itself lives in pkg/core.
package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/RaHuL-SrIrAM-E/automation-tester/pkg/core"
)

// Server exposes the converter over HTTP.
type Server struct {
	app       *fiber.App
	cfg       core.Config
	converter *core.Converter
	log       *zap.Logger
}

// New creates the fiber application with its routes and middleware.
func New(cfg core.Config, converter *core.Converter, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		BodyLimit:             cfg.MaxUploadBytes,
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	s := &Server{app: app, cfg: cfg, converter: converter, log: log}
	app.Get("/health", s.handleHealth)
	app.Post("/convert", s.handleConvert)
	return s
}

// App exposes the underlying fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen blocks serving HTTP on the configured port.
func (s *Server) Listen() error {
	s.log.Info("listening", zap.String("port", s.cfg.Port), zap.Bool("llm_enabled", s.cfg.LLMEnabled()))
	return s.app.Listen(":" + s.cfg.Port)
}
