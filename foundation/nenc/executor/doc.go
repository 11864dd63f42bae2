// File: doc.go
// Title: Pipeline Executor Package Documentation
// Description: Package documentation for the engine that applies resolved
//              pipelines to a string.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial executor
// - 2026-10-19 v0.2.0: Encoding pipeline execution

// Package executor folds a pipeline over its input string. Stages run in
// the order of the pattern; each stage receives the output of the previous
// one. A failing stage aborts the run and no partial result is returned.
//
// Failures are reported with the MALFORMED_PIPELINE error code and carry
// the stage index and token as details:
//
//	out, err := executor.New(executor.Options{}).Execute(ctx, pipeline, "A")
//	// err: stage 0 (base16): not a decimal integer: "A"
package executor
