// File: error_test.go
// Title: Error Module Tests
// Description: Tests for error creation, wrapping, codes and metadata.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19

package error

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	msg := "test error message"
	err := New(msg)

	if err == nil {
		t.Fatal("New() returned nil")
	}
	if err.Error() != msg {
		t.Errorf("Error() = %q, want %q", err.Error(), msg)
	}
	if err.Code() != CodeUnknown {
		t.Errorf("Code() = %v, want %v", err.Code(), CodeUnknown)
	}
	if err.Severity() != SeverityMedium {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityMedium)
	}
	if err.Timestamp().IsZero() {
		t.Error("Timestamp() should not be zero")
	}
	if len(err.StackTrace()) == 0 {
		t.Error("StackTrace() should not be empty")
	}
}

func TestNewf(t *testing.T) {
	err := Newf("radix %d is not supported", 10)
	if err.Error() != "radix 10 is not supported" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		message string
		wantNil bool
		wantMsg string
	}{
		{
			name:    "wrap nil error",
			err:     nil,
			message: "context",
			wantNil: true,
		},
		{
			name:    "wrap standard error",
			err:     errors.New("original"),
			message: "context",
			wantMsg: "context: original",
		},
		{
			name:    "wrap structured error",
			err:     New("inner").WithCode(CodeMalformedPipeline),
			message: "outer",
			wantMsg: "outer: inner",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.err, tt.message)
			if tt.wantNil {
				if got != nil {
					t.Errorf("Wrap() = %v, want nil", got)
				}
				return
			}
			if got.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got.Error(), tt.wantMsg)
			}
			if !errors.Is(got, tt.err) {
				t.Error("errors.Is() should find the wrapped error")
			}
		})
	}
}

func TestWrapInheritsCodeAndDetails(t *testing.T) {
	inner := New("bad token").
		WithCode(CodeMalformedToken).
		WithDetail("token", "base10").
		WithOperation("parser.Parse")

	outer := Wrap(inner, "encode failed")

	if outer.Code() != CodeMalformedToken {
		t.Errorf("Code() = %v, want %v", outer.Code(), CodeMalformedToken)
	}
	if outer.Severity() != SeverityLow {
		t.Errorf("Severity() = %v, want %v", outer.Severity(), SeverityLow)
	}
	if v, ok := outer.Detail("token"); !ok || v != "base10" {
		t.Errorf("Detail(token) = %v, %v", v, ok)
	}
	if outer.Operation() != "parser.Parse" {
		t.Errorf("Operation() = %q", outer.Operation())
	}
	if outer.RootCause() != inner {
		t.Errorf("RootCause() = %v, want inner error", outer.RootCause())
	}
}

func TestHasCodeThroughFmtWrapping(t *testing.T) {
	base := New("stage failed").WithCode(CodeMalformedPipeline)
	wrapped := fmt.Errorf("request 42: %w", base)

	if !HasCode(wrapped, CodeMalformedPipeline) {
		t.Error("HasCode() should look through fmt wrapping")
	}
	if HasCode(wrapped, CodeMalformedToken) {
		t.Error("HasCode() matched the wrong code")
	}
	if GetCode(wrapped) != CodeMalformedPipeline {
		t.Errorf("GetCode() = %v", GetCode(wrapped))
	}
	if GetCode(errors.New("plain")) != CodeUnknown {
		t.Error("GetCode() of a plain error should be UNKNOWN")
	}
	if GetSeverity(errors.New("plain")) != SeverityMedium {
		t.Error("GetSeverity() of a plain error should be medium")
	}
}

func TestWithCodeKeepsExplicitSeverity(t *testing.T) {
	err := New("x").WithSeverity(SeverityCritical).WithCode(CodeMalformedToken)
	if err.Severity() != SeverityCritical {
		t.Errorf("Severity() = %v, want critical", err.Severity())
	}
}

func TestDetailsIsCopy(t *testing.T) {
	err := New("x").WithDetails(map[string]interface{}{"stage": 1})
	d := err.Details()
	d["stage"] = 99
	if v, _ := err.Detail("stage"); v != 1 {
		t.Errorf("Details() returned the internal map")
	}
}

func TestString(t *testing.T) {
	err := New("boom").
		WithCode(CodeMalformedPipeline).
		WithOperation("executor.Execute").
		WithRequestID("req-1").
		WithDetail("stage", 2).
		WithDetail("token", "hex")

	s := err.String()
	for _, want := range []string{
		"Error: boom",
		"Code: MALFORMED_PIPELINE",
		"Operation: executor.Execute",
		"RequestID: req-1",
		"Details: {stage=2, token=hex}",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q in:\n%s", want, s)
		}
	}
}

func TestMarshalJSON(t *testing.T) {
	err := Wrap(errors.New("cause"), "msg").
		WithCode(CodeMalformedToken).
		WithDetail("token", "rotx")

	data, jerr := json.Marshal(err)
	if jerr != nil {
		t.Fatalf("Marshal() error = %v", jerr)
	}

	var decoded map[string]interface{}
	if jerr := json.Unmarshal(data, &decoded); jerr != nil {
		t.Fatalf("Unmarshal() error = %v", jerr)
	}
	if decoded["code"] != "MALFORMED_TOKEN" {
		t.Errorf("code = %v", decoded["code"])
	}
	if decoded["cause"] != "cause" {
		t.Errorf("cause = %v", decoded["cause"])
	}
	if decoded["severity"] != "low" {
		t.Errorf("severity = %v", decoded["severity"])
	}
}
