// File: doc.go
// Title: Pipeline AST Package Documentation
// Description: Package documentation for the resolved stage types of an
//              encoding pipeline.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial AST node definitions
// - 2026-10-19 v0.2.0: Stage variants for encoding pipelines

// Package ast defines the resolved form of an encoding pattern.
//
// The parser turns every token of a pattern into exactly one Stage. Stages
// form a closed set of variants:
//
//	Base{Radix}              numeral conversion of a codepoint list
//	ABase{Radix}             ascii followed by the base conversion
//	Rotate{Shift, Full}      Caesar rotation, Latin-only or full charset
//	ASCII, HTML, Unicode     representation encoders
//	Base64, Unary            the special radixes 64 and 1
//	NoOp                     unknown token, passes the string through
//
// A Pipeline is the ordered list of stages. The order always matches the
// order of the tokens in the pattern.
package ast
