// File: nodes.go
// Title: Pipeline Stage Definitions
// Description: Defines the stage variants produced by the pattern parser and
//              the Pipeline container that holds them in application order.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial AST node definitions
// - 2026-10-19 v0.2.0: Stage variants for encoding pipelines

package ast

import (
	"strconv"
	"strings"
)

// Stage is one resolved transformation of a pipeline
type Stage interface {
	// Position returns where the stage came from in the pattern
	Position() Position

	// String returns the canonical token for the stage
	String() string

	stageNode()
}

// Position identifies the originating token of a stage
type Position struct {
	Index int    // Stage index (0-based)
	Token string // Lower-cased token as written, before alias resolution
}

// Base converts a codepoint list into the given radix
type Base struct {
	Radix int
	Pos   Position
}

// ABase ascii-encodes the string and then converts it into the given radix
type ABase struct {
	Radix int
	Pos   Position
}

// Rotate shifts character codes. FullCharset disables the Latin band wrap.
type Rotate struct {
	Shift       int
	FullCharset bool
	Pos         Position
}

// ASCII renders each character as its decimal codepoint
type ASCII struct {
	Pos Position
}

// HTML renders each character as a hexadecimal numeric entity
type HTML struct {
	Pos Position
}

// Unicode renders each character as a \u escape
type Unicode struct {
	Pos Position
}

// Base64 encodes the string with standard padded Base64
type Base64 struct {
	Pos Position
}

// Unary renders each integer of a codepoint list as a run of ones
type Unary struct {
	Pos Position
}

// NoOp passes the string through unchanged
type NoOp struct {
	Pos Position
}

func (s *Base) Position() Position    { return s.Pos }
func (s *ABase) Position() Position   { return s.Pos }
func (s *Rotate) Position() Position  { return s.Pos }
func (s *ASCII) Position() Position   { return s.Pos }
func (s *HTML) Position() Position    { return s.Pos }
func (s *Unicode) Position() Position { return s.Pos }
func (s *Base64) Position() Position  { return s.Pos }
func (s *Unary) Position() Position   { return s.Pos }
func (s *NoOp) Position() Position    { return s.Pos }

func (s *Base) String() string  { return "base" + strconv.Itoa(s.Radix) }
func (s *ABase) String() string { return "abase" + strconv.Itoa(s.Radix) }

func (s *Rotate) String() string {
	token := "rot" + strconv.Itoa(s.Shift)
	if s.FullCharset {
		token += "a"
	}
	return token
}

func (s *ASCII) String() string   { return "ascii" }
func (s *HTML) String() string    { return "html" }
func (s *Unicode) String() string { return "unicode" }
func (s *Base64) String() string  { return "base64" }
func (s *Unary) String() string   { return "base1" }

// String of a NoOp returns the token it was created from
func (s *NoOp) String() string { return s.Pos.Token }

func (*Base) stageNode()    {}
func (*ABase) stageNode()   {}
func (*Rotate) stageNode()  {}
func (*ASCII) stageNode()   {}
func (*HTML) stageNode()    {}
func (*Unicode) stageNode() {}
func (*Base64) stageNode()  {}
func (*Unary) stageNode()   {}
func (*NoOp) stageNode()    {}

// Pipeline is an ordered list of stages
type Pipeline struct {
	Stages []Stage
}

// Len returns the number of stages
func (p *Pipeline) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Stages)
}

// String returns the canonical pattern, stages joined by commas
func (p *Pipeline) String() string {
	if p == nil {
		return ""
	}
	tokens := make([]string, len(p.Stages))
	for i, s := range p.Stages {
		tokens[i] = s.String()
	}
	return strings.Join(tokens, ",")
}

// IsIdentity reports whether every stage is a NoOp
func (p *Pipeline) IsIdentity() bool {
	for _, s := range p.Stages {
		if _, ok := s.(*NoOp); !ok {
			return false
		}
	}
	return true
}
