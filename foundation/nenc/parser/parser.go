// File: parser.go
// Title: Pattern Parser
// Description: Resolves pattern tokens into pipeline stages using the alias
//              table and the parametrized token forms base<N>, abase<N>,
//              rot<M> and rot<M>a.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial parser implementation
// - 2026-10-19 v0.2.0: Encoding token resolution with strict and extended modes

package parser

import (
	"fmt"
	"strconv"
	"strings"

	mdwerror "github.com/msto63/nestedencoder/foundation/core/error"
	mdwlog "github.com/msto63/nestedencoder/foundation/core/log"
	mdwast "github.com/msto63/nestedencoder/foundation/nenc/ast"
	mdwregistry "github.com/msto63/nestedencoder/foundation/nenc/registry"
)

// DefaultMaxPatternLength limits the pattern size in bytes
const DefaultMaxPatternLength = 4096

const (
	prefixABase  = "abase"
	prefixBase   = "base"
	prefixRotate = "rot"
	suffixFull   = "a"

	minExtendedRadix = 2
	maxExtendedRadix = 36
)

// Parser resolves patterns into pipelines
type Parser struct {
	logger   *mdwlog.Logger
	registry *mdwregistry.Registry
	options  Options
}

// Options configures parser behavior
type Options struct {
	Logger           *mdwlog.Logger
	Registry         *mdwregistry.Registry
	MaxPatternLength int

	// StrictTokens rejects tokens that resolve to nothing instead of
	// passing the string through.
	StrictTokens bool

	// ExtendedRadix accepts every radix from 2 to 36 in addition to the
	// registry's supported set.
	ExtendedRadix bool
}

// New creates a new parser with the given options
func New(opts Options) *Parser {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.Registry == nil {
		opts.Registry = mdwregistry.Default()
	}
	if opts.MaxPatternLength <= 0 {
		opts.MaxPatternLength = DefaultMaxPatternLength
	}

	return &Parser{
		logger:   opts.Logger.WithField("component", "nenc-parser"),
		registry: opts.Registry,
		options:  opts,
	}
}

// Parse resolves a comma separated pattern
func (p *Parser) Parse(pattern string) (*mdwast.Pipeline, error) {
	if err := p.checkLength(len(pattern)); err != nil {
		return nil, err
	}
	return p.resolveAll(NewLexer(pattern).Tokenize())
}

// ParseTokens resolves an already split pattern. Every token is lower-cased.
func (p *Parser) ParseTokens(tokens []string) (*mdwast.Pipeline, error) {
	length := 0
	for _, t := range tokens {
		length += len(t) + len(Separator)
	}
	if length > 0 {
		length -= len(Separator)
	}
	if err := p.checkLength(length); err != nil {
		return nil, err
	}
	return p.resolveAll(tokensFrom(tokens))
}

func (p *Parser) checkLength(n int) error {
	if n <= p.options.MaxPatternLength {
		return nil
	}
	return mdwerror.Newf("pattern exceeds maximum length: %d > %d", n, p.options.MaxPatternLength).
		WithCode(mdwerror.CodeInvalidInput).
		WithOperation("parser.Parse").
		WithDetail("length", n).
		WithDetail("max_length", p.options.MaxPatternLength)
}

func (p *Parser) resolveAll(tokens []Token) (*mdwast.Pipeline, error) {
	pipeline := &mdwast.Pipeline{Stages: make([]mdwast.Stage, 0, len(tokens))}

	for _, tok := range tokens {
		stage, err := p.resolve(tok)
		if err != nil {
			p.logger.Debug("Pattern rejected", mdwlog.Fields{
				"stage": tok.Index,
				"token": tok.Value,
				"error": err.Error(),
			})
			return nil, err
		}
		pipeline.Stages = append(pipeline.Stages, stage)
	}

	p.logger.Trace("Pattern resolved", mdwlog.Fields{
		"stages":    pipeline.Len(),
		"canonical": pipeline.String(),
	})
	return pipeline, nil
}

// resolve maps one lower-cased token to its stage
func (p *Parser) resolve(tok Token) (mdwast.Stage, error) {
	pos := mdwast.Position{Index: tok.Index, Token: tok.Value}
	canonical, _ := p.registry.ResolveAlias(tok.Value)

	switch {
	case strings.HasPrefix(canonical, prefixABase):
		radix, err := p.parseRadix(canonical[len(prefixABase):], pos)
		if err != nil {
			return nil, err
		}
		return &mdwast.ABase{Radix: radix, Pos: pos}, nil

	case strings.HasPrefix(canonical, prefixBase):
		radix, err := p.parseRadix(canonical[len(prefixBase):], pos)
		if err != nil {
			return nil, err
		}
		switch radix {
		case 1:
			return &mdwast.Unary{Pos: pos}, nil
		case 64:
			return &mdwast.Base64{Pos: pos}, nil
		default:
			return &mdwast.Base{Radix: radix, Pos: pos}, nil
		}

	case strings.HasPrefix(canonical, prefixRotate):
		magnitude := canonical[len(prefixRotate):]
		full := strings.HasSuffix(magnitude, suffixFull)
		if full {
			magnitude = strings.TrimSuffix(magnitude, suffixFull)
		}
		shift, err := strconv.Atoi(magnitude)
		if err != nil {
			return nil, malformedToken(pos, fmt.Sprintf("rotation %q is not an integer", magnitude))
		}
		return &mdwast.Rotate{Shift: shift, FullCharset: full, Pos: pos}, nil
	}

	switch canonical {
	case "ascii":
		return &mdwast.ASCII{Pos: pos}, nil
	case "html":
		return &mdwast.HTML{Pos: pos}, nil
	case "unicode":
		return &mdwast.Unicode{Pos: pos}, nil
	}

	if p.options.StrictTokens {
		return nil, malformedToken(pos, "unknown encoding")
	}
	return &mdwast.NoOp{Pos: pos}, nil
}

func (p *Parser) parseRadix(value string, pos mdwast.Position) (int, error) {
	radix, err := strconv.Atoi(value)
	if err != nil {
		return 0, malformedToken(pos, fmt.Sprintf("base %q is not an integer", value))
	}
	if p.registry.IsSupportedRadix(radix) {
		return radix, nil
	}
	if p.options.ExtendedRadix && radix >= minExtendedRadix && radix <= maxExtendedRadix {
		return radix, nil
	}
	return 0, malformedToken(pos, fmt.Sprintf("base %d is not supported", radix))
}

func malformedToken(pos mdwast.Position, reason string) *mdwerror.Error {
	return mdwerror.Newf("malformed token %q at stage %d: %s", pos.Token, pos.Index, reason).
		WithCode(mdwerror.CodeMalformedToken).
		WithOperation("parser.Parse").
		WithDetail("stage", pos.Index).
		WithDetail("token", pos.Token).
		WithDetail("reason", reason)
}
