// Package error provides structured error handling for nestedencoder.
//
// Package: error
// Title: Encoder Error Handling Framework
// Description: Implements coded errors with severity, details and operation
//              context. Every failure of the pattern interpreter surfaces as
//              an *Error carrying one of the codes defined in codes.go, so
//              transports (CLI, HTTP, gRPC) can map it without string
//              matching.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors and codes
// - 2026-10-19 v0.2.0: Encoder codes (MALFORMED_TOKEN, MALFORMED_PIPELINE)
//
// Usage:
//
//	import mdwerror "github.com/msto63/nestedencoder/foundation/core/error"
//
//	err := mdwerror.New("radix 10 is not supported").
//		WithCode(mdwerror.CodeMalformedToken).
//		WithDetail("token", "base10")
//
//	if mdwerror.HasCode(err, mdwerror.CodeMalformedToken) {
//		// reject the pattern
//	}
package error
