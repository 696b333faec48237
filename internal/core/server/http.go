// Package server provides HTTP server lifecycle management.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/nfrf/lightfeedback/internal/core/api"
	"github.com/nfrf/lightfeedback/internal/core/config"
)

// HTTPServer manages HTTP server lifecycle.
type HTTPServer struct {
	server  *http.Server
	handler http.Handler
	config  *config.ServerConfig
	logger  *slog.Logger
}

// NewHTTPServer creates the HTTP server with routes registered and CORS plus
// request-logging middleware applied.
func NewHTTPServer(cfg *config.ServerConfig, service *api.Service, logger *slog.Logger) (*HTTPServer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("cfg cannot be nil")
	}
	if service == nil {
		return nil, fmt.Errorf("service cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()
	service.RegisterRoutes(mux)

	handler := corsMiddleware(cfg.CORSOrigins, requestLogMiddleware(logger, mux))

	return &HTTPServer{
		handler: handler,
		config:  cfg,
		logger:  logger,
	}, nil
}

// Handler returns the fully wrapped handler. Exposed for httptest use.
func (s *HTTPServer) Handler() http.Handler {
	return s.handler
}

// Start binds the listener and serves until Shutdown is called.
func (s *HTTPServer) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("http server listening", "addr", addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("serve %s: %w", addr, err)
	}
	return nil
}

// Shutdown gracefully stops the server with a 30-second timeout.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		s.server.Close()
		return fmt.Errorf("graceful shutdown failed, forced close: %w", err)
	}
	return nil
}
