package handler

import (
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dialWS(t *testing.T) *websocket.Conn {
	t.Helper()
	ts := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/v1/encode/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, msg string) map[string]interface{} {
	t.Helper()
	if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
		t.Fatalf("WriteMessage() error = %v", err)
	}
	var resp map[string]interface{}
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	return resp
}

func TestWebSocket_Messages(t *testing.T) {
	conn := dialWS(t)

	tests := []struct {
		name     string
		msg      string
		wantType string
		check    func(t *testing.T, payload interface{})
	}{
		{"ping", `{"type":"ping","id":"1"}`, "pong", nil},
		{"encode", `{"type":"encode","id":"2","payload":{"plainString":"Hi","pattern":"ascii,hex"}}`, "result",
			func(t *testing.T, payload interface{}) {
				if payload.(map[string]interface{})["result"] != "48 69" {
					t.Errorf("payload = %v", payload)
				}
			}},
		{"encode tokens", `{"type":"encode","payload":{"plainString":"a","pattern":["ascii","base2"]}}`, "result",
			func(t *testing.T, payload interface{}) {
				if payload.(map[string]interface{})["result"] != "1100001" {
					t.Errorf("payload = %v", payload)
				}
			}},
		{"empty encode yields catalog", `{"type":"encode","payload":{"plainString":""}}`, "options", nil},
		{"options", `{"type":"options"}`, "options",
			func(t *testing.T, payload interface{}) {
				if _, ok := payload.(map[string]interface{})["encodings"]; !ok {
					t.Errorf("payload = %v", payload)
				}
			}},
		{"malformed token", `{"type":"encode","payload":{"plainString":"x","pattern":"abase99"}}`, "error",
			func(t *testing.T, payload interface{}) {
				if payload.(map[string]interface{})["code"] != "MALFORMED_TOKEN" {
					t.Errorf("payload = %v", payload)
				}
			}},
		{"bad payload", `{"type":"encode","payload":{"pattern":7}}`, "error", nil},
		{"unknown type", `{"type":"decode"}`, "error", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := roundTrip(t, conn, tt.msg)
			if resp["type"] != tt.wantType {
				t.Fatalf("type = %v, want %v (%v)", resp["type"], tt.wantType, resp)
			}
			if tt.check != nil {
				tt.check(t, resp["payload"])
			}
		})
	}
}

func TestWebSocket_EchoesID(t *testing.T) {
	conn := dialWS(t)

	resp := roundTrip(t, conn, `{"type":"ping","id":"abc"}`)
	if resp["id"] != "abc" {
		t.Errorf("id = %v, want abc", resp["id"])
	}
}
