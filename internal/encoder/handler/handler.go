// ============================================================================
// nestedencoder (nenc) - Verschachtelte Zeichenketten-Kodierung
// ============================================================================
//
// Package:     handler
// Description: HTTP API for the encoder service
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	mdwerror "github.com/msto63/nestedencoder/foundation/core/error"
	mdwregistry "github.com/msto63/nestedencoder/foundation/nenc/registry"
	"github.com/msto63/nestedencoder/internal/encoder/service"
	"github.com/msto63/nestedencoder/pkg/core/health"
	"github.com/msto63/nestedencoder/pkg/core/logging"
)

// RequestIDHeader carries the request ID in both directions
const RequestIDHeader = "X-Request-ID"

// PatternValue accepts a JSON string or a JSON array of strings
type PatternValue struct {
	Pattern string
	Tokens  []string
}

// UnmarshalJSON implements json.Unmarshaler
func (p *PatternValue) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = PatternValue{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*p = PatternValue{Pattern: s}
		return nil
	}
	var tokens []string
	if err := json.Unmarshal(data, &tokens); err != nil {
		return errors.New("pattern must be a string or an array of strings")
	}
	if tokens == nil {
		tokens = []string{}
	}
	*p = PatternValue{Tokens: tokens}
	return nil
}

// EncodeRequest represents an encode request body
type EncodeRequest struct {
	PlainString string       `json:"plainString"`
	Pattern     PatternValue `json:"pattern"`
}

func (r *EncodeRequest) toService(requestID string) *service.Request {
	return &service.Request{
		Text:      r.PlainString,
		Pattern:   r.Pattern.Pattern,
		Tokens:    r.Pattern.Tokens,
		RequestID: requestID,
	}
}

// ErrorBody is the payload of an error response
type ErrorBody struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// InfoResponse is returned for the API root
type InfoResponse struct {
	Name      string   `json:"name"`
	Version   string   `json:"version"`
	Uptime    string   `json:"uptime"`
	Endpoints []string `json:"endpoints"`
}

// Config holds handler configuration
type Config struct {
	Version        string
	MaxRequestSize int64
	CORSEnabled    bool
	AllowedOrigins []string
}

// Handler serves the HTTP API
type Handler struct {
	service   *service.Service
	health    *health.Registry
	logger    *logging.Logger
	config    Config
	startTime time.Time
}

// NewHandler creates a new HTTP handler
func NewHandler(svc *service.Service, healthRegistry *health.Registry, cfg Config) *Handler {
	if cfg.MaxRequestSize <= 0 {
		cfg.MaxRequestSize = 1 << 20
	}
	return &Handler{
		service:   svc,
		health:    healthRegistry,
		logger:    logging.New("nenc-http"),
		config:    cfg,
		startTime: time.Now(),
	}
}

// ServeHTTP implements http.Handler
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.applyCORS(w, r)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/v1")
	path = strings.Trim(path, "/")

	switch path {
	case "":
		h.handleRoot(w, r)
	case "health":
		h.handleHealth(w, r)
	case "encode":
		h.handleEncode(w, r)
	case "options":
		h.handleOptions(w, r)
	case "history":
		h.handleHistory(w, r)
	case "stats":
		h.handleStats(w, r)
	default:
		h.writeError(w, http.StatusNotFound, string(mdwerror.CodeNotFound), "Unknown endpoint: "+r.URL.Path, nil)
	}
}

func (h *Handler) applyCORS(w http.ResponseWriter, r *http.Request) {
	if !h.config.CORSEnabled {
		return
	}
	origin := r.Header.Get("Origin")
	for _, allowed := range h.config.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			w.Header().Set("Access-Control-Allow-Origin", allowed)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+RequestIDHeader)
			return
		}
	}
}

func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, InfoResponse{
		Name:    "nenc",
		Version: h.config.Version,
		Uptime:  time.Since(h.startTime).Round(time.Second).String(),
		Endpoints: []string{
			"GET  /health",
			"GET  /api/v1/encode",
			"POST /api/v1/encode",
			"GET  /api/v1/encode/ws",
			"GET  /api/v1/options",
			"GET  /api/v1/history",
			"GET  /api/v1/stats",
		},
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.methodNotAllowed(w, "GET")
		return
	}

	report := h.health.Check(r.Context())
	status := http.StatusOK
	if report.Status == health.StatusUnhealthy {
		status = http.StatusServiceUnavailable
	}
	h.writeJSON(w, status, report)
}

func (h *Handler) handleEncode(w http.ResponseWriter, r *http.Request) {
	var req EncodeRequest

	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		req.PlainString = q.Get(mdwregistry.ParamText)
		switch patterns := q[mdwregistry.ParamPattern]; len(patterns) {
		case 0:
		case 1:
			req.Pattern.Pattern = patterns[0]
		default:
			req.Pattern.Tokens = patterns
		}
	case http.MethodPost:
		body := http.MaxBytesReader(w, r.Body, h.config.MaxRequestSize)
		if err := json.NewDecoder(body).Decode(&req); err != nil {
			h.writeError(w, http.StatusBadRequest, string(mdwerror.CodeInvalidInput), "Invalid JSON body", map[string]interface{}{
				"reason": err.Error(),
			})
			return
		}
	default:
		h.methodNotAllowed(w, "GET, POST")
		return
	}

	requestID := h.requestID(w, r)

	resp, err := h.service.Encode(r.Context(), req.toService(requestID))
	if err != nil {
		h.writeEncodeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleOptions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.methodNotAllowed(w, "GET")
		return
	}
	h.writeJSON(w, http.StatusOK, h.service.Options())
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.methodNotAllowed(w, "GET")
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			h.writeError(w, http.StatusBadRequest, string(mdwerror.CodeInvalidInput), "limit must be a non-negative integer", nil)
			return
		}
		limit = n
	}

	entries, err := h.service.History(r.Context(), limit)
	if err != nil {
		h.writeEncodeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
		"total":   len(entries),
	})
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.methodNotAllowed(w, "GET")
		return
	}
	h.writeJSON(w, http.StatusOK, h.service.Stats(r.Context()))
}

func (h *Handler) requestID(w http.ResponseWriter, r *http.Request) string {
	id := r.Header.Get(RequestIDHeader)
	if id == "" {
		id = uuid.New().String()
	}
	w.Header().Set(RequestIDHeader, id)
	return id
}

func (h *Handler) methodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed)
	h.writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", fmt.Sprintf("Use %s", allowed), nil)
}

func (h *Handler) writeEncodeError(w http.ResponseWriter, err error) {
	h.writeError(w, mdwerror.GetCode(err).HTTPStatus(), string(mdwerror.GetCode(err)), err.Error(), errorDetails(err))
}

func errorDetails(err error) map[string]interface{} {
	if e, ok := mdwerror.As(err); ok && len(e.Details()) > 0 {
		return e.Details()
	}
	return nil
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("Failed to write response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, code, message string, details map[string]interface{}) {
	h.writeJSON(w, status, ErrorResponse{Error: ErrorBody{
		Code:    code,
		Message: message,
		Details: details,
	}})
}
