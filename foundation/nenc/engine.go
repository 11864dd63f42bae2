// File: engine.go
// Title: Nested Encoder Engine
// Description: High-level entry point that combines parser and executor and
//              falls back to the options catalog for incomplete requests.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial high-level engine
// - 2026-10-19 v0.2.0: Encode and options entry points

package nenc

import (
	"context"
	"encoding/json"
	"sync"

	mdwerror "github.com/msto63/nestedencoder/foundation/core/error"
	mdwlog "github.com/msto63/nestedencoder/foundation/core/log"
	mdwast "github.com/msto63/nestedencoder/foundation/nenc/ast"
	mdwexecutor "github.com/msto63/nestedencoder/foundation/nenc/executor"
	mdwparser "github.com/msto63/nestedencoder/foundation/nenc/parser"
	mdwregistry "github.com/msto63/nestedencoder/foundation/nenc/registry"
)

// Result is the successful output of an encode call
type Result struct {
	Result string `json:"result"`
}

// OptionsCatalog lists the accepted parameters and encodings
type OptionsCatalog = mdwregistry.OptionsCatalog

// Response holds either a Result or the OptionsCatalog, never both
type Response struct {
	Result  *Result
	Options *OptionsCatalog
}

// IsOptions reports whether the response carries the catalog
func (r *Response) IsOptions() bool {
	return r != nil && r.Options != nil
}

// MarshalJSON renders the populated variant only
func (r *Response) MarshalJSON() ([]byte, error) {
	if r.Options != nil {
		return json.Marshal(r.Options)
	}
	if r.Result != nil {
		return json.Marshal(r.Result)
	}
	return []byte("null"), nil
}

// Encoder is the high-level nested encoder
type Encoder struct {
	parser   *mdwparser.Parser
	executor *mdwexecutor.Engine
	registry *mdwregistry.Registry
	logger   *mdwlog.Logger
	options  Options
}

// Options configures the encoder
type Options struct {
	Logger           *mdwlog.Logger
	Registry         *mdwregistry.Registry
	MaxPatternLength int
	StrictTokens     bool
	ExtendedRadix    bool

	// MaxOutputLength bounds every intermediate string; zero uses the
	// executor default
	MaxOutputLength int
}

// New creates a new encoder with the given options
func New(opts Options) *Encoder {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.Registry == nil {
		opts.Registry = mdwregistry.Default()
	}
	if opts.MaxPatternLength <= 0 {
		opts.MaxPatternLength = mdwparser.DefaultMaxPatternLength
	}

	logger := opts.Logger.WithField("component", "nenc-engine")

	e := &Encoder{
		parser: mdwparser.New(mdwparser.Options{
			Logger:           opts.Logger,
			Registry:         opts.Registry,
			MaxPatternLength: opts.MaxPatternLength,
			StrictTokens:     opts.StrictTokens,
			ExtendedRadix:    opts.ExtendedRadix,
		}),
		executor: mdwexecutor.New(mdwexecutor.Options{
			Logger:          opts.Logger,
			MaxOutputLength: opts.MaxOutputLength,
		}),
		registry: opts.Registry,
		logger:   logger,
		options:  opts,
	}

	logger.Debug("Nested encoder initialized", mdwlog.Fields{
		"maxPatternLength": opts.MaxPatternLength,
		"strictTokens":     opts.StrictTokens,
		"extendedRadix":    opts.ExtendedRadix,
	})

	return e
}

// Encode applies a comma separated pattern to text. An empty text or
// pattern yields the options catalog.
func (e *Encoder) Encode(ctx context.Context, text, pattern string) (*Response, error) {
	if text == "" || pattern == "" {
		return e.optionsResponse(), nil
	}

	pipeline, err := e.parser.Parse(pattern)
	if err != nil {
		return nil, err
	}
	return e.run(ctx, pipeline, text)
}

// EncodeTokens applies an already split pattern to text. An empty text or
// an empty token list yields the options catalog.
func (e *Encoder) EncodeTokens(ctx context.Context, text string, tokens []string) (*Response, error) {
	if text == "" || len(tokens) == 0 {
		return e.optionsResponse(), nil
	}

	pipeline, err := e.parser.ParseTokens(tokens)
	if err != nil {
		return nil, err
	}
	return e.run(ctx, pipeline, text)
}

// Parse resolves a pattern without executing it
func (e *Encoder) Parse(pattern string) (*mdwast.Pipeline, error) {
	return e.parser.Parse(pattern)
}

// Execute runs a resolved pipeline
func (e *Encoder) Execute(ctx context.Context, pipeline *mdwast.Pipeline, text string) (*Result, error) {
	out, err := e.executor.Execute(ctx, pipeline, text)
	if err != nil {
		return nil, err
	}
	return &Result{Result: out}, nil
}

// Options returns the options catalog
func (e *Encoder) Options() OptionsCatalog {
	return e.registry.Catalog()
}

// Registry returns the registry used for token resolution
func (e *Encoder) Registry() *mdwregistry.Registry {
	return e.registry
}

func (e *Encoder) run(ctx context.Context, pipeline *mdwast.Pipeline, text string) (*Response, error) {
	e.logger.Debug("Encoding text", mdwlog.Fields{
		"pattern":     pipeline.String(),
		"stages":      pipeline.Len(),
		"text_length": len(text),
	})

	result, err := e.Execute(ctx, pipeline, text)
	if err != nil {
		return nil, err
	}
	return &Response{Result: result}, nil
}

func (e *Encoder) optionsResponse() *Response {
	catalog := e.registry.Catalog()
	return &Response{Options: &catalog}
}

var defaultEncoder = sync.OnceValue(func() *Encoder {
	return New(Options{})
})

// Encode applies pattern to text with a default encoder
func Encode(text, pattern string) (*Response, error) {
	return defaultEncoder().Encode(context.Background(), text, pattern)
}

// IsMalformedToken reports whether err was caused by an unparsable token
func IsMalformedToken(err error) bool {
	return mdwerror.HasCode(err, mdwerror.CodeMalformedToken)
}

// IsMalformedPipeline reports whether err was caused by a stage that could
// not consume its input
func IsMalformedPipeline(err error) bool {
	return mdwerror.HasCode(err, mdwerror.CodeMalformedPipeline)
}

// FailedStage returns the stage index reported by a token or pipeline error
func FailedStage(err error) (int, bool) {
	e, ok := mdwerror.As(err)
	if !ok {
		return 0, false
	}
	v, ok := e.Detail("stage")
	if !ok {
		return 0, false
	}
	stage, ok := v.(int)
	return stage, ok
}
