// ============================================================================
// nestedencoder (nenc) - Verschachtelte Zeichenketten-Kodierung
// ============================================================================
//
// Package:     handler
// Description: WebSocket endpoint for live encoding
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	mdwerror "github.com/msto63/nestedencoder/foundation/core/error"
	"github.com/msto63/nestedencoder/internal/encoder/service"
	"github.com/msto63/nestedencoder/pkg/core/logging"
)

const wsReadTimeout = 120 * time.Second

// WebSocketHandler handles WebSocket connections for live encoding
type WebSocketHandler struct {
	service  *service.Service
	upgrader websocket.Upgrader
	logger   *logging.Logger
}

// NewWebSocketHandler creates a new WebSocket handler. Origins are checked
// against allowedOrigins; "*" allows every origin.
func NewWebSocketHandler(svc *service.Service, allowedOrigins []string) *WebSocketHandler {
	return &WebSocketHandler{
		service: svc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		logger: logging.New("nenc-websocket"),
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || a == origin {
				return true
			}
		}
		return false
	}
}

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string          `json:"type"`    // "encode", "options", "ping"
	ID      string          `json:"id,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// WSResponse represents a WebSocket response
type WSResponse struct {
	Type    string      `json:"type"` // "result", "options", "error", "pong"
	ID      string      `json:"id,omitempty"`
	Payload interface{} `json:"payload,omitempty"`
}

// ServeHTTP handles WebSocket upgrade and connections
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("WebSocket upgrade failed", "error", err)
		return
	}
	h.handleConnection(r, conn)
}

// handleConnection serves one connection. Messages are answered in order.
func (h *WebSocketHandler) handleConnection(r *http.Request, conn *websocket.Conn) {
	defer conn.Close()

	h.logger.Info("WebSocket connection established", "remote", conn.RemoteAddr().String())

	conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
		return nil
	})

	for {
		var msg WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("WebSocket read error", "error", err)
			} else {
				h.logger.Info("WebSocket connection closed")
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(wsReadTimeout))

		switch msg.Type {
		case "ping":
			h.send(conn, WSResponse{Type: "pong", ID: msg.ID})

		case "options":
			catalog := h.service.Options()
			h.send(conn, WSResponse{Type: "options", ID: msg.ID, Payload: catalog})

		case "encode":
			var payload EncodeRequest
			if len(msg.Payload) > 0 {
				if err := json.Unmarshal(msg.Payload, &payload); err != nil {
					h.sendError(conn, msg.ID, ErrorBody{
						Code:    string(mdwerror.CodeInvalidInput),
						Message: "Invalid encode payload",
						Details: map[string]interface{}{"reason": err.Error()},
					})
					continue
				}
			}

			requestID := msg.ID
			if requestID == "" {
				requestID = uuid.New().String()
			}
			resp, err := h.service.Encode(r.Context(), payload.toService(requestID))
			if err != nil {
				h.sendError(conn, msg.ID, ErrorBody{
					Code:    string(mdwerror.GetCode(err)),
					Message: err.Error(),
					Details: errorDetails(err),
				})
				continue
			}
			if resp.IsOptions() {
				h.send(conn, WSResponse{Type: "options", ID: msg.ID, Payload: resp.Options})
				continue
			}
			h.send(conn, WSResponse{Type: "result", ID: msg.ID, Payload: resp.Result})

		default:
			h.sendError(conn, msg.ID, ErrorBody{
				Code:    string(mdwerror.CodeInvalidInput),
				Message: "Unknown message type: " + msg.Type,
			})
		}
	}
}

// send sends a response message via WebSocket
func (h *WebSocketHandler) send(conn *websocket.Conn, resp WSResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		h.logger.Error("WebSocket send error", "error", err)
	}
}

// sendError sends an error response via WebSocket
func (h *WebSocketHandler) sendError(conn *websocket.Conn, id string, body ErrorBody) {
	h.send(conn, WSResponse{Type: "error", ID: id, Payload: body})
}
