package executor

import (
	"context"
	"errors"
	"strings"
	"testing"

	mdwerror "github.com/msto63/nestedencoder/foundation/core/error"
	mdwlog "github.com/msto63/nestedencoder/foundation/core/log"
	mdwast "github.com/msto63/nestedencoder/foundation/nenc/ast"
	"github.com/msto63/nestedencoder/foundation/nenc/codec"
)

func pos(i int, token string) mdwast.Position {
	return mdwast.Position{Index: i, Token: token}
}

func newTestEngine() *Engine {
	return New(Options{Logger: mdwlog.Discard()})
}

func TestExecute(t *testing.T) {
	tests := []struct {
		name   string
		stages []mdwast.Stage
		input  string
		want   string
	}{
		{
			name:   "ascii then hex",
			stages: []mdwast.Stage{&mdwast.ASCII{Pos: pos(0, "ascii")}, &mdwast.Base{Radix: 16, Pos: pos(1, "hex")}},
			input:  "Hi",
			want:   "48 69",
		},
		{
			name:   "abase2",
			stages: []mdwast.Stage{&mdwast.ABase{Radix: 2, Pos: pos(0, "abase2")}},
			input:  "A",
			want:   "1000001",
		},
		{
			name:   "abase1",
			stages: []mdwast.Stage{&mdwast.ABase{Radix: 1, Pos: pos(0, "abase1")}},
			input:  "hi",
			want:   strings.Repeat("1", 104) + " " + strings.Repeat("1", 105),
		},
		{
			name:   "abase64 encodes the codepoint list",
			stages: []mdwast.Stage{&mdwast.ABase{Radix: 64, Pos: pos(0, "abase64")}},
			input:  "hi",
			want:   "MTA0IDEwNQ==",
		},
		{
			name:   "base64",
			stages: []mdwast.Stage{&mdwast.Base64{Pos: pos(0, "base64")}},
			input:  "Hello",
			want:   "SGVsbG8=",
		},
		{
			name:   "rotation then html",
			stages: []mdwast.Stage{&mdwast.Rotate{Shift: 1, Pos: pos(0, "rot1")}, &mdwast.HTML{Pos: pos(1, "html")}},
			input:  "AZ",
			want:   "&#x42;&#x41;",
		},
		{
			name:   "unicode",
			stages: []mdwast.Stage{&mdwast.Unicode{Pos: pos(0, "unicode")}},
			input:  "A",
			want:   "\\u0041",
		},
		{
			name:   "noop passes through",
			stages: []mdwast.Stage{&mdwast.NoOp{Pos: pos(0, "morse")}, &mdwast.NoOp{Pos: pos(1, "")}},
			input:  "unchanged",
			want:   "unchanged",
		},
		{
			name:   "empty pipeline",
			stages: nil,
			input:  "same",
			want:   "same",
		},
	}

	e := newTestEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Execute(context.Background(), &mdwast.Pipeline{Stages: tt.stages}, tt.input)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Execute() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExecuteStageOrderMatters(t *testing.T) {
	e := newTestEngine()
	asciiFirst := &mdwast.Pipeline{Stages: []mdwast.Stage{
		&mdwast.ASCII{Pos: pos(0, "ascii")},
		&mdwast.Rotate{Shift: 1, FullCharset: true, Pos: pos(1, "rot1a")},
	}}
	rotFirst := &mdwast.Pipeline{Stages: []mdwast.Stage{
		&mdwast.Rotate{Shift: 1, FullCharset: true, Pos: pos(0, "rot1a")},
		&mdwast.ASCII{Pos: pos(1, "ascii")},
	}}

	a, _ := e.Execute(context.Background(), asciiFirst, "A")
	b, _ := e.Execute(context.Background(), rotFirst, "A")
	if a != "76" || b != "66" {
		t.Errorf("Execute() = %q and %q, want %q and %q", a, b, "76", "66")
	}
}

func TestExecuteMalformedPipeline(t *testing.T) {
	tests := []struct {
		name      string
		stages    []mdwast.Stage
		input     string
		wantStage int
		wantCause error
	}{
		{
			name:      "base without ascii",
			stages:    []mdwast.Stage{&mdwast.Base{Radix: 16, Pos: pos(0, "base16")}},
			input:     "A",
			wantStage: 0,
			wantCause: codec.ErrNotNumeral,
		},
		{
			name:      "unary after text",
			stages:    []mdwast.Stage{&mdwast.NoOp{Pos: pos(0, "x")}, &mdwast.Unary{Pos: pos(1, "unary")}},
			input:     "hi",
			wantStage: 1,
			wantCause: codec.ErrNotNumeral,
		},
		{
			name: "base after html",
			stages: []mdwast.Stage{
				&mdwast.HTML{Pos: pos(0, "html")},
				&mdwast.Base{Radix: 2, Pos: pos(1, "binary")},
			},
			input:     "A",
			wantStage: 1,
			wantCause: codec.ErrNotNumeral,
		},
		{
			name:      "base64 beyond latin1",
			stages:    []mdwast.Stage{&mdwast.Base64{Pos: pos(0, "base64")}},
			input:     "\u20ac",
			wantStage: 0,
			wantCause: codec.ErrNotLatin1,
		},
		{
			name: "unary of binary digits",
			stages: []mdwast.Stage{
				&mdwast.ABase{Radix: 2, Pos: pos(0, "abase2")},
				&mdwast.Unary{Pos: pos(1, "unary")},
			},
			input:     "\u00ff\u00ff\u00ff\u00ff",
			wantStage: 1,
			wantCause: codec.ErrUnaryTooLarge,
		},
	}

	e := newTestEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Execute(context.Background(), &mdwast.Pipeline{Stages: tt.stages}, tt.input)
			if err == nil {
				t.Fatalf("Execute() = %q, want error", got)
			}
			if got != "" {
				t.Errorf("Execute() returned partial result %q", got)
			}
			if !mdwerror.HasCode(err, mdwerror.CodeMalformedPipeline) {
				t.Errorf("code = %v, want MALFORMED_PIPELINE", mdwerror.GetCode(err))
			}
			if !errors.Is(err, tt.wantCause) {
				t.Errorf("error %v does not wrap %v", err, tt.wantCause)
			}
			merr, _ := mdwerror.As(err)
			if stage, _ := merr.Detail("stage"); stage != tt.wantStage {
				t.Errorf("stage = %v, want %d", stage, tt.wantStage)
			}
		})
	}
}

func TestExecuteOutputLimit(t *testing.T) {
	e := New(Options{Logger: mdwlog.Discard(), MaxOutputLength: 16})
	p := &mdwast.Pipeline{Stages: []mdwast.Stage{
		&mdwast.ASCII{Pos: pos(0, "ascii")},
		&mdwast.HTML{Pos: pos(1, "html")},
	}}

	got, err := e.Execute(context.Background(), p, "AB")
	if err == nil {
		t.Fatalf("Execute() = %q, want error", got)
	}
	if !errors.Is(err, ErrOutputTooLarge) {
		t.Errorf("error %v does not wrap ErrOutputTooLarge", err)
	}
	if !mdwerror.HasCode(err, mdwerror.CodeMalformedPipeline) {
		t.Errorf("code = %v, want MALFORMED_PIPELINE", mdwerror.GetCode(err))
	}
	merr, _ := mdwerror.As(err)
	if stage, _ := merr.Detail("stage"); stage != 1 {
		t.Errorf("stage = %v, want 1", stage)
	}
}

func TestExecuteErrorMessage(t *testing.T) {
	p := &mdwast.Pipeline{Stages: []mdwast.Stage{&mdwast.Base{Radix: 16, Pos: pos(0, "base16")}}}
	_, err := newTestEngine().Execute(context.Background(), p, "A")
	want := `stage 0 (base16): not a decimal integer: "A"`
	if err == nil || err.Error() != want {
		t.Errorf("Execute() error = %v, want %s", err, want)
	}
}

func TestExecuteCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &mdwast.Pipeline{Stages: []mdwast.Stage{&mdwast.ASCII{Pos: pos(0, "ascii")}}}
	_, err := newTestEngine().Execute(ctx, p, "A")
	if !mdwerror.HasCode(err, mdwerror.CodeCanceled) {
		t.Errorf("Execute() error = %v, want CANCELED", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Execute() error does not wrap context.Canceled")
	}
}

func TestExecuteNilPipeline(t *testing.T) {
	_, err := newTestEngine().Execute(context.Background(), nil, "A")
	if !mdwerror.HasCode(err, mdwerror.CodeInvalidInput) {
		t.Errorf("Execute(nil) error = %v, want INVALID_INPUT", err)
	}
}
