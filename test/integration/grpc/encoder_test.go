// ============================================================================
// nestedencoder (nenc) - Verschachtelte Zeichenketten-Kodierung
// ============================================================================
//
// Package:     grpc
// Description: Integration tests against a running `nenc serve`
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

//go:build integration

package grpc

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/msto63/nestedencoder/internal/encoder/server"
)

func newTestConnection(t *testing.T) *TestConnection {
	t.Helper()
	conn, err := NewTestConnection(DefaultServiceConfigs()["grpc"])
	if err != nil {
		t.Skipf("nenc gRPC server not available: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestEncoderEncode(t *testing.T) {
	conn := newTestConnection(t)

	tests := []struct {
		text    string
		pattern string
		want    string
	}{
		{"Hi", "ascii,hex", "48 69"},
		{"Hello", "rot13", "Uryyb"},
		{"Hi", "base64", "SGk="},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			ctx, cancel := conn.ContextWithTimeout(5 * time.Second)
			defer cancel()

			resp, err := conn.Client().Encode(ctx, tt.text, tt.pattern)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if resp.Result == nil || resp.Result.Result != tt.want {
				t.Errorf("Encode(%q, %q) = %+v, want %q", tt.text, tt.pattern, resp.Result, tt.want)
			}
		})
	}
}

func TestEncoderMalformedToken(t *testing.T) {
	conn := newTestConnection(t)

	ctx, cancel := conn.ContextWithTimeout(5 * time.Second)
	defer cancel()

	_, err := conn.Client().Encode(ctx, "Hi", "ascii,base0")
	if err == nil {
		t.Fatal("expected an error for base0")
	}
	info, ok := server.ErrorInfo(err)
	if !ok {
		t.Fatalf("error carries no ErrorInfo: %v", err)
	}
	if info.Reason != "MALFORMED_TOKEN" {
		t.Errorf("Reason = %q, want MALFORMED_TOKEN", info.Reason)
	}
}

// TestHTTPMatchesGRPC checks that both servers share one encoder
func TestHTTPMatchesGRPC(t *testing.T) {
	conn := newTestConnection(t)

	ctx, cancel := conn.ContextWithTimeout(5 * time.Second)
	defer cancel()

	grpcResp, err := conn.Client().EncodeTokens(ctx, "nenc", []string{"ascii", "oct"})
	if err != nil {
		t.Fatalf("EncodeTokens failed: %v", err)
	}

	body, _ := json.Marshal(map[string]interface{}{
		"plainString": "nenc",
		"pattern":     []string{"ascii", "oct"},
	})
	httpAddr := DefaultServiceConfigs()["http"].Address()
	resp, err := http.Post("http://"+httpAddr+"/api/v1/encode", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Skipf("nenc HTTP server not available: %v", err)
	}
	defer resp.Body.Close()

	var httpResp struct {
		Result string `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&httpResp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if httpResp.Result != grpcResp.Result.Result {
		t.Errorf("HTTP result %q != gRPC result %q", httpResp.Result, grpcResp.Result.Result)
	}
}
