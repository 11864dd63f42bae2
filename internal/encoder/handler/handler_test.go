package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	mdwlog "github.com/msto63/nestedencoder/foundation/core/log"
	"github.com/msto63/nestedencoder/internal/encoder/service"
	"github.com/msto63/nestedencoder/internal/encoder/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := service.DefaultConfig()
	cfg.Logger = mdwlog.Discard()
	cfg.History = store.NewMemoryHistoryStore()
	svc := service.NewService(cfg)
	t.Cleanup(func() { svc.Close() })

	srv := NewServer(DefaultServerConfig(), svc)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func decode(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func TestHandler_EncodePost(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		body string
		want string
	}{
		{"string pattern", `{"plainString":"Hi","pattern":"ascii,hex"}`, "48 69"},
		{"array pattern", `{"plainString":"Hi","pattern":["ascii","hex"]}`, "48 69"},
		{"rotation", `{"plainString":"abc","pattern":"rot1"}`, "bcd"},
		{"unknown token is skipped", `{"plainString":"abc","pattern":"nothing"}`, "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/api/v1/encode", "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatalf("POST error = %v", err)
			}
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, want 200", resp.StatusCode)
			}
			if resp.Header.Get(RequestIDHeader) == "" {
				t.Error("missing request id header")
			}
			body := decode(t, resp)
			if body["result"] != tt.want {
				t.Errorf("result = %v, want %q", body["result"], tt.want)
			}
		})
	}
}

func TestHandler_EncodeGet(t *testing.T) {
	ts := newTestServer(t)

	q := url.Values{}
	q.Set("plainString", "Hi")
	q.Add("pattern", "ascii")
	q.Add("pattern", "oct")

	resp, err := http.Get(ts.URL + "/api/v1/encode?" + q.Encode())
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	body := decode(t, resp)
	if body["result"] != "110 151" {
		t.Errorf("result = %v, want 110 151", body["result"])
	}
}

func TestHandler_EncodeReturnsCatalog(t *testing.T) {
	ts := newTestServer(t)

	for _, body := range []string{`{}`, `{"plainString":"x"}`, `{"pattern":"hex"}`, `{"plainString":"x","pattern":[]}`} {
		resp, err := http.Post(ts.URL+"/api/v1/encode", "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatalf("POST error = %v", err)
		}
		got := decode(t, resp)
		if _, ok := got["encodings"]; !ok {
			t.Errorf("body %s: response %v has no encodings", body, got)
		}
		if _, ok := got["result"]; ok {
			t.Errorf("body %s: catalog response carries a result", body)
		}
	}
}

func TestHandler_EncodeErrors(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"malformed token", `{"plainString":"x","pattern":"ascii,base0"}`, http.StatusBadRequest, "MALFORMED_TOKEN"},
		{"malformed pipeline", `{"plainString":"x","pattern":"hex"}`, http.StatusUnprocessableEntity, "MALFORMED_PIPELINE"},
		{"invalid json", `{"plainString":`, http.StatusBadRequest, "INVALID_INPUT"},
		{"numeric pattern", `{"plainString":"x","pattern":5}`, http.StatusBadRequest, "INVALID_INPUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/api/v1/encode", "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatalf("POST error = %v", err)
			}
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			body := decode(t, resp)
			errBody, ok := body["error"].(map[string]interface{})
			if !ok {
				t.Fatalf("body = %v, want error object", body)
			}
			if errBody["code"] != tt.code {
				t.Errorf("code = %v, want %v", errBody["code"], tt.code)
			}
			if errBody["message"] == "" {
				t.Error("empty error message")
			}
		})
	}
}

func TestHandler_MalformedTokenDetails(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/v1/encode", "application/json",
		strings.NewReader(`{"plainString":"x","pattern":"ascii,base0"}`))
	if err != nil {
		t.Fatalf("POST error = %v", err)
	}
	body := decode(t, resp)
	details := body["error"].(map[string]interface{})["details"].(map[string]interface{})
	if details["stage"] != float64(1) {
		t.Errorf("details.stage = %v, want 1", details["stage"])
	}
	if details["token"] != "base0" {
		t.Errorf("details.token = %v, want base0", details["token"])
	}
}

func TestHandler_Routes(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/api/v1/health", http.StatusOK},
		{http.MethodGet, "/api/v1/options", http.StatusOK},
		{http.MethodGet, "/api/v1/history", http.StatusOK},
		{http.MethodGet, "/api/v1/history?limit=abc", http.StatusBadRequest},
		{http.MethodGet, "/api/v1/stats", http.StatusOK},
		{http.MethodGet, "/api/v1", http.StatusOK},
		{http.MethodPut, "/api/v1/encode", http.StatusMethodNotAllowed},
		{http.MethodPost, "/api/v1/options", http.StatusMethodNotAllowed},
		{http.MethodGet, "/api/v1/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req, _ := http.NewRequest(tt.method, ts.URL+tt.path, nil)
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				t.Fatalf("request error = %v", err)
			}
			resp.Body.Close()
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
		})
	}
}

func TestHandler_Options(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/v1/options")
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	body := decode(t, resp)
	params, _ := body["parameters"].([]interface{})
	if len(params) != 2 || params[0] != "plainString" || params[1] != "pattern" {
		t.Errorf("parameters = %v", body["parameters"])
	}
	encodings, _ := body["encodings"].(map[string]interface{})
	if len(encodings) != 18 {
		t.Errorf("encodings = %d entries, want 18", len(encodings))
	}
}

func TestHandler_RequestIDPropagates(t *testing.T) {
	ts := newTestServer(t)

	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/api/v1/encode",
		strings.NewReader(`{"plainString":"a","pattern":"ascii"}`))
	req.Header.Set(RequestIDHeader, "client-id-1")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST error = %v", err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got != "client-id-1" {
		t.Errorf("request id = %q, want client-id-1", got)
	}

	resp, err = http.Get(ts.URL + "/api/v1/history?limit=1")
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	body := decode(t, resp)
	entries := body["entries"].([]interface{})
	if len(entries) != 1 {
		t.Fatalf("entries = %v", entries)
	}
	if entries[0].(map[string]interface{})["request_id"] != "client-id-1" {
		t.Errorf("history entry = %v", entries[0])
	}
}

func TestPatternValue_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in      string
		pattern string
		tokens  []string
		wantErr bool
	}{
		{`"hex"`, "hex", nil, false},
		{`["a","b"]`, "", []string{"a", "b"}, false},
		{`[""]`, "", []string{""}, false},
		{`null`, "", nil, false},
		{`5`, "", nil, true},
		{`[1]`, "", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var p PatternValue
			err := json.Unmarshal([]byte(tt.in), &p)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if p.Pattern != tt.pattern || len(p.Tokens) != len(tt.tokens) {
				t.Errorf("got %+v", p)
			}
		})
	}
}
