// ============================================================================
// nestedencoder (nenc) - Verschachtelte Zeichenketten-Kodierung
// ============================================================================
//
// Package:     grpc
// Description: Integration test helpers for a running nenc server
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package grpc

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/msto63/nestedencoder/internal/encoder/server"
	coreGrpc "github.com/msto63/nestedencoder/pkg/core/grpc"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceConfig holds the address of a running server
type ServiceConfig struct {
	Name    string
	Host    string
	Port    int
	Timeout time.Duration
}

// DefaultServiceConfigs returns the addresses used by `nenc serve`
func DefaultServiceConfigs() map[string]ServiceConfig {
	return map[string]ServiceConfig{
		"grpc": {
			Name:    "grpc",
			Host:    getEnvOrDefault("NENC_GRPC_HOST", "localhost"),
			Port:    getEnvOrDefaultInt("NENC_GRPC_PORT", 9090),
			Timeout: 10 * time.Second,
		},
		"http": {
			Name:    "http",
			Host:    getEnvOrDefault("NENC_HTTP_HOST", "localhost"),
			Port:    getEnvOrDefaultInt("NENC_HTTP_PORT", 8080),
			Timeout: 10 * time.Second,
		},
	}
}

// Address returns host:port
func (c ServiceConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// TestConnection is a gRPC connection to a running server
type TestConnection struct {
	conn   *grpc.ClientConn
	client *server.Client
	config ServiceConfig
}

// NewTestConnection connects and waits until the encoder service reports
// SERVING
func NewTestConnection(cfg ServiceConfig) (*TestConnection, error) {
	conn, err := coreGrpc.DialSimple(cfg.Address())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s at %s: %w", cfg.Name, cfg.Address(), err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{
		Service: server.ServiceName,
	})
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("health check on %s failed: %w", cfg.Address(), err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		conn.Close()
		return nil, fmt.Errorf("%s is %s", server.ServiceName, resp.GetStatus())
	}

	return &TestConnection{
		conn:   conn,
		client: server.NewClient(conn),
		config: cfg,
	}, nil
}

// Client returns the encoder client
func (tc *TestConnection) Client() *server.Client {
	return tc.client
}

// Conn returns the underlying gRPC connection
func (tc *TestConnection) Conn() *grpc.ClientConn {
	return tc.conn
}

// ContextWithTimeout returns a new context with a custom timeout
func (tc *TestConnection) ContextWithTimeout(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// Close closes the connection
func (tc *TestConnection) Close() error {
	return tc.conn.Close()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var intValue int
		if _, err := fmt.Sscanf(value, "%d", &intValue); err == nil {
			return intValue
		}
	}
	return defaultValue
}
