// ============================================================================
// nestedencoder (nenc) - Verschachtelte Zeichenketten-Kodierung
// ============================================================================
//
// Package:     handler
// Description: HTTP server wiring routes, WebSocket and request logging
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package handler

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/msto63/nestedencoder/internal/encoder/service"
	"github.com/msto63/nestedencoder/pkg/core/health"
	"github.com/msto63/nestedencoder/pkg/core/logging"
	"github.com/msto63/nestedencoder/pkg/core/version"
)

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host           string
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxRequestSize int64
	CORSEnabled    bool
	AllowedOrigins []string
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:           "0.0.0.0",
		Port:           8080,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxRequestSize: 1 << 20,
		AllowedOrigins: []string{"*"},
	}
}

// Server is the nenc HTTP server
type Server struct {
	httpServer *http.Server
	handler    *Handler
	health     *health.Registry
	logger     *logging.Logger
	config     ServerConfig
}

// NewServer creates the HTTP server around svc. The caller owns svc.
func NewServer(cfg ServerConfig, svc *service.Service) *Server {
	logger := logging.New("nenc-http-server")

	healthRegistry := health.NewRegistry("nenc-http", version.HTTP)
	svc.RegisterHealthChecks(healthRegistry)

	h := NewHandler(svc, healthRegistry, Config{
		Version:        version.HTTP,
		MaxRequestSize: cfg.MaxRequestSize,
		CORSEnabled:    cfg.CORSEnabled,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	mux := http.NewServeMux()
	mux.Handle("/api/v1/encode/ws", NewWebSocketHandler(svc, cfg.AllowedOrigins))
	mux.Handle("/health", h)
	mux.Handle("/api/v1/", h)
	mux.Handle("/", h)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      loggingMiddleware(logger, mux),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &Server{
		httpServer: httpServer,
		handler:    h,
		health:     healthRegistry,
		logger:     logger,
		config:     cfg,
	}
}

// loggingMiddleware adds request logging
func loggingMiddleware(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapper, r)

		logger.Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapper.statusCode,
			"request_id", wrapper.Header().Get(RequestIDHeader),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWrapper) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// Hijack implements http.Hijacker for the WebSocket upgrade
func (w *responseWrapper) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	w.statusCode = http.StatusSwitchingProtocols
	return hijacker.Hijack()
}

// Start starts the server and blocks
func (s *Server) Start() error {
	s.logger.Info("Starting nenc HTTP server", "host", s.config.Host, "port", s.config.Port)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Serve serves on an existing listener and blocks
func (s *Server) Serve(lis net.Listener) error {
	if err := s.httpServer.Serve(lis); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop gracefully stops the server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping nenc HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// Handler returns the root HTTP handler including middleware
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Address returns the server address
func (s *Server) Address() string {
	return s.httpServer.Addr
}

// HealthRegistry returns the health check registry
func (s *Server) HealthRegistry() *health.Registry {
	return s.health
}
