package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/converter-api/api/types"
	"github.com/killallgit/converter-api/pkg/config"
)

// Server represents the HTTP server
type Server struct {
	engine     *gin.Engine
	httpServer *http.Server
	cfg        *config.Config

	// Dependencies for handlers
	dependencies *types.Dependencies
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config, deps *types.Dependencies) *Server {
	engine := gin.New()
	// Redirects bypass middleware; a trailing slash is just an unknown path
	engine.RedirectTrailingSlash = false

	if deps == nil {
		deps = &types.Dependencies{}
	}

	return &Server{
		engine:       engine,
		cfg:          cfg,
		dependencies: deps,
		httpServer: &http.Server{
			Addr:           fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler:        engine,
			ReadTimeout:    cfg.Server.ReadTimeout,
			WriteTimeout:   cfg.Server.WriteTimeout,
			MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
		},
	}
}

// Engine returns the Gin engine for testing
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Initialize sets up middleware and routes
func (s *Server) Initialize() error {
	// Setup global middleware
	s.setupMiddleware()

	// Setup routes
	return RegisterRoutes(s.engine, s.dependencies, s.cfg)
}

// setupMiddleware configures global middleware. Middleware registered with
// Use also runs for unmatched routes, so CORS answers preflights on any path.
func (s *Server) setupMiddleware() {
	log := s.dependencies.Log()

	if s.cfg.Security.EnableRequestID {
		s.engine.Use(RequestID())
	}
	s.engine.Use(RequestLogger(log))
	s.engine.Use(CORS())
	s.engine.Use(Recovery(log))
}

// Start starts the HTTP server
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
