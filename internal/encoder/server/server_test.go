package server

import (
	"context"
	"net"
	"testing"
	"time"

	mdwlog "github.com/msto63/nestedencoder/foundation/core/log"
	"github.com/msto63/nestedencoder/internal/encoder/service"
	coreGrpc "github.com/msto63/nestedencoder/pkg/core/grpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

func startTestServer(t *testing.T) *Client {
	t.Helper()

	cfg := service.DefaultConfig()
	cfg.Logger = mdwlog.Discard()
	svc := service.NewService(cfg)
	t.Cleanup(func() { svc.Close() })

	srvCfg := DefaultConfig()
	srvCfg.EnableReflection = false
	srv := New(srvCfg, svc)

	lis := bufconn.Listen(1024 * 1024)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Stop(ctx)
	})

	conn, err := coreGrpc.Dial(coreGrpc.DefaultClientConfig("passthrough:///bufnet"),
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
	)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return NewClient(conn)
}

func TestServer_Encode(t *testing.T) {
	client := startTestServer(t)
	ctx := context.Background()

	resp, err := client.Encode(ctx, "Hi", "ascii,hex")
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if resp.IsOptions() || resp.Result.Result != "48 69" {
		t.Errorf("Encode() = %+v, want 48 69", resp)
	}

	resp, err = client.EncodeTokens(ctx, "Hi", []string{"ascii", "binary"})
	if err != nil {
		t.Fatalf("EncodeTokens() error = %v", err)
	}
	if resp.Result.Result != "1001000 1101001" {
		t.Errorf("EncodeTokens() = %q, want 1001000 1101001", resp.Result.Result)
	}
}

func TestServer_EncodeEmptyReturnsCatalog(t *testing.T) {
	client := startTestServer(t)

	resp, err := client.Encode(context.Background(), "", "hex")
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !resp.IsOptions() {
		t.Fatal("Encode() did not return the catalog")
	}
	if len(resp.Options.Parameters) != 2 {
		t.Errorf("Parameters = %v, want 2 entries", resp.Options.Parameters)
	}
	if _, ok := resp.Options.Encodings["rot<x>"]; !ok {
		t.Errorf("Encodings missing rot<x>: %v", resp.Options.Encodings)
	}
}

func TestServer_Options(t *testing.T) {
	client := startTestServer(t)

	catalog, err := client.Options(context.Background())
	if err != nil {
		t.Fatalf("Options() error = %v", err)
	}
	if len(catalog.Encodings) != 18 {
		t.Errorf("Encodings = %d entries, want 18", len(catalog.Encodings))
	}
}

func TestServer_EncodeErrors(t *testing.T) {
	client := startTestServer(t)

	tests := []struct {
		name    string
		text    string
		pattern string
		code    codes.Code
		reason  string
		stage   string
	}{
		{"malformed token", "x", "ascii,base0", codes.InvalidArgument, "MALFORMED_TOKEN", "1"},
		{"malformed pipeline", "x", "hex", codes.FailedPrecondition, "MALFORMED_PIPELINE", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.Encode(context.Background(), tt.text, tt.pattern)
			if status.Code(err) != tt.code {
				t.Fatalf("code = %v, want %v (%v)", status.Code(err), tt.code, err)
			}
			info, ok := ErrorInfo(err)
			if !ok {
				t.Fatal("ErrorInfo() missing")
			}
			if info.GetReason() != tt.reason {
				t.Errorf("Reason = %q, want %q", info.GetReason(), tt.reason)
			}
			if info.GetMetadata()["stage"] != tt.stage {
				t.Errorf("Metadata[stage] = %q, want %q", info.GetMetadata()["stage"], tt.stage)
			}
		})
	}
}

func TestRequestFromStruct(t *testing.T) {
	tests := []struct {
		name    string
		fields  map[string]interface{}
		text    string
		pattern string
		tokens  []string
		wantErr bool
	}{
		{"string pattern", map[string]interface{}{"text": "a", "pattern": "hex"}, "a", "hex", nil, false},
		{"list pattern", map[string]interface{}{"text": "a", "pattern": []interface{}{"ascii", "hex"}}, "a", "", []string{"ascii", "hex"}, false},
		{"catalog parameter name", map[string]interface{}{"plainString": "b", "pattern": "hex"}, "b", "hex", nil, false},
		{"missing fields", map[string]interface{}{}, "", "", nil, false},
		{"numeric text", map[string]interface{}{"text": 5.0}, "", "", nil, true},
		{"numeric pattern", map[string]interface{}{"text": "a", "pattern": 5.0}, "", "", nil, true},
		{"mixed list", map[string]interface{}{"text": "a", "pattern": []interface{}{"hex", true}}, "", "", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := structpb.NewStruct(tt.fields)
			if err != nil {
				t.Fatalf("NewStruct() error = %v", err)
			}
			req, err := RequestFromStruct(in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("RequestFromStruct() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if req.Text != tt.text || req.Pattern != tt.pattern {
				t.Errorf("RequestFromStruct() = %+v", req)
			}
			if len(req.Tokens) != len(tt.tokens) {
				t.Fatalf("Tokens = %v, want %v", req.Tokens, tt.tokens)
			}
			for i := range tt.tokens {
				if req.Tokens[i] != tt.tokens[i] {
					t.Errorf("Tokens[%d] = %q, want %q", i, req.Tokens[i], tt.tokens[i])
				}
			}
		})
	}
}
