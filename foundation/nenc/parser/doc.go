// File: doc.go
// Title: Pattern Parser Package Documentation
// Description: Package documentation for the lexer and parser that turn an
//              encoding pattern into a pipeline of resolved stages.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial parser
// - 2026-10-19 v0.2.0: Encoding pattern resolution

// Package parser resolves encoding patterns.
//
// A pattern is a comma separated list of tokens such as "ascii,hex,rot13".
// The Lexer lower-cases the pattern and splits it on commas without trimming,
// so order, duplicates and empty tokens survive. The Parser resolves every
// token into an ast.Stage:
//
//   - aliases ("hex", "binary", ...) are replaced by their base<N> form
//   - abase<N> becomes ABase, base<N> becomes Base, Unary (N=1) or Base64 (N=64)
//   - rot<M> becomes a Latin rotation, rot<M>a a full charset rotation
//   - ascii, html and unicode become their encoders
//   - anything else becomes a NoOp
//
// Malformed parametrized tokens fail with the MALFORMED_TOKEN error code.
// A Parser holds no per-call state and may be shared between goroutines.
package parser
