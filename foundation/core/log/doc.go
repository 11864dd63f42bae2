// File: doc.go
// Title: Structured Logging Package
// Description: Package documentation for the foundation logger used by the
//              nested encoder engine, its services and the command line tool.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation
// - 2026-10-19 v0.2.0: Reduced to the encoder's needs, error-code aware output

// Package log provides structured logging for the nested encoder.
//
// A Logger writes Entry values through a Formatter (JSON, text, console or
// logfmt). Loggers are immutable: With* methods return a configured copy,
// so a component can derive its own logger without affecting others.
//
//	logger := log.New().WithFormat(log.FormatText).WithField("component", "executor")
//	logger.Info("pipeline executed", log.Fields{"stages": 3})
//
//	timer := logger.StartTimer("encode")
//	defer timer.Stop()
//
// Errors created by the foundation error package are logged with their code,
// severity and details through LogError.
package log
