// File: executor.go
// Title: Pipeline Executor
// Description: Applies the stages of a resolved pipeline to a working string
//              and reports stage failures with their position.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial executor implementation
// - 2026-10-19 v0.2.0: Encoding stages, cancellation between stages, output limit

package executor

import (
	"context"
	"errors"
	"fmt"

	mdwerror "github.com/msto63/nestedencoder/foundation/core/error"
	mdwlog "github.com/msto63/nestedencoder/foundation/core/log"
	mdwast "github.com/msto63/nestedencoder/foundation/nenc/ast"
	"github.com/msto63/nestedencoder/foundation/nenc/codec"
)

// DefaultMaxOutputLength bounds the working string between stages
const DefaultMaxOutputLength = 1 << 26

// ErrOutputTooLarge is returned when a stage output exceeds MaxOutputLength
var ErrOutputTooLarge = errors.New("stage output exceeds the length limit")

// Engine executes pipelines
type Engine struct {
	logger  *mdwlog.Logger
	options Options
}

// Options configures executor behavior
type Options struct {
	Logger *mdwlog.Logger

	// MaxOutputLength is the largest working string in bytes a stage may
	// produce; zero means DefaultMaxOutputLength
	MaxOutputLength int
}

// New creates a new pipeline executor
func New(opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.MaxOutputLength <= 0 {
		opts.MaxOutputLength = DefaultMaxOutputLength
	}

	return &Engine{
		logger:  opts.Logger.WithField("component", "nenc-executor"),
		options: opts,
	}
}

// Execute applies every stage of pipeline to text and returns the final
// working string. The context is checked before each stage.
func (e *Engine) Execute(ctx context.Context, pipeline *mdwast.Pipeline, text string) (string, error) {
	if pipeline == nil {
		return "", mdwerror.New("pipeline cannot be nil").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("executor.Execute")
	}

	timer := e.logger.StartTimer("pipeline").
		WithField("stages", pipeline.Len()).
		WithField("input_length", len(text))

	working := text
	for i, stage := range pipeline.Stages {
		if err := ctx.Err(); err != nil {
			timer.WithField("success", false).Stop()
			return "", interrupted(err, i)
		}

		out, err := apply(stage, working)
		if err != nil {
			timer.WithField("success", false).WithField("failed_stage", i).Stop()
			return "", stageFailure(err, i, stage)
		}
		if len(out) > e.options.MaxOutputLength {
			timer.WithField("success", false).WithField("failed_stage", i).Stop()
			return "", stageFailure(fmt.Errorf("%w: %d bytes, limit %d",
				ErrOutputTooLarge, len(out), e.options.MaxOutputLength), i, stage)
		}

		e.logger.Trace("Stage applied", mdwlog.Fields{
			"stage":         i,
			"token":         stage.Position().Token,
			"canonical":     stage.String(),
			"output_length": len(out),
		})
		working = out
	}

	timer.WithField("success", true).WithField("output_length", len(working)).Stop()
	return working, nil
}

// apply runs a single stage; the switch covers every stage variant
func apply(stage mdwast.Stage, s string) (string, error) {
	switch st := stage.(type) {
	case *mdwast.ASCII:
		return codec.ASCII(s)
	case *mdwast.Base:
		return convert(s, st.Radix)
	case *mdwast.ABase:
		list, err := codec.ASCII(s)
		if err != nil {
			return "", err
		}
		return convert(list, st.Radix)
	case *mdwast.Unary:
		return codec.Unary(s)
	case *mdwast.Base64:
		return codec.Base64(s)
	case *mdwast.Rotate:
		return codec.Rotate(s, st.Shift, st.FullCharset)
	case *mdwast.HTML:
		return codec.HTML(s)
	case *mdwast.Unicode:
		return codec.Unicode(s)
	case *mdwast.NoOp:
		return s, nil
	default:
		return "", fmt.Errorf("unsupported stage type %T", stage)
	}
}

// convert dispatches a radix to its converter: 1 is unary, 64 is Base64
func convert(s string, radix int) (string, error) {
	switch radix {
	case 1:
		return codec.Unary(s)
	case 64:
		return codec.Base64(s)
	default:
		return codec.Numeral(s, radix)
	}
}

func stageFailure(err error, index int, stage mdwast.Stage) *mdwerror.Error {
	token := stage.Position().Token
	return mdwerror.Wrap(err, fmt.Sprintf("stage %d (%s)", index, token)).
		WithCode(mdwerror.CodeMalformedPipeline).
		WithOperation("executor.Execute").
		WithDetail("stage", index).
		WithDetail("token", token).
		WithDetail("canonical", stage.String())
}

func interrupted(err error, index int) *mdwerror.Error {
	code := mdwerror.CodeCanceled
	if errors.Is(err, context.DeadlineExceeded) {
		code = mdwerror.CodeTimeout
	}
	return mdwerror.Wrap(err, fmt.Sprintf("pipeline interrupted before stage %d", index)).
		WithCode(code).
		WithOperation("executor.Execute").
		WithDetail("stage", index)
}
