// File: lexer.go
// Title: Pattern Lexer
// Description: Splits an encoding pattern into tokens while keeping their
//              stage index and byte offset for error reporting.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial lexer implementation
// - 2026-10-19 v0.2.0: Comma separated encoding tokens

package parser

import (
	"fmt"
	"strings"
)

// Separator between the tokens of a pattern
const Separator = ","

// Token is one element of a pattern
type Token struct {
	Value  string // Lower-cased token text, untrimmed
	Index  int    // Stage index (0-based)
	Offset int    // Byte offset in the lower-cased pattern
}

// String returns a string representation of the token
func (t Token) String() string {
	return fmt.Sprintf("%d:%q", t.Index, t.Value)
}

// Lexer tokenizes a raw pattern string
type Lexer struct {
	input string
}

// NewLexer creates a lexer for the given pattern
func NewLexer(pattern string) *Lexer {
	return &Lexer{input: strings.ToLower(pattern)}
}

// Input returns the lower-cased pattern
func (l *Lexer) Input() string {
	return l.input
}

// Tokenize splits the pattern on commas. An empty pattern yields a single
// empty token.
func (l *Lexer) Tokenize() []Token {
	parts := strings.Split(l.input, Separator)
	tokens := make([]Token, len(parts))

	offset := 0
	for i, part := range parts {
		tokens[i] = Token{Value: part, Index: i, Offset: offset}
		offset += len(part) + len(Separator)
	}
	return tokens
}

// tokensFrom lower-cases an already split pattern
func tokensFrom(values []string) []Token {
	tokens := make([]Token, len(values))

	offset := 0
	for i, v := range values {
		lower := strings.ToLower(v)
		tokens[i] = Token{Value: lower, Index: i, Offset: offset}
		offset += len(lower) + len(Separator)
	}
	return tokens
}
