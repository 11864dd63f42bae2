// File: doc.go
// Title: Encoding Registry Package Documentation
// Description: Package documentation for the alias table, supported radixes
//              and the options catalog.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial registry
// - 2026-10-19 v0.2.0: Encoding aliases and options catalog

// Package registry holds the static knowledge about encodings: the alias
// table that maps readable names such as "hex" to their canonical base
// token, the set of supported radixes and the options catalog returned
// when an encode call is missing its text or pattern.
//
// A Registry is immutable once built. Default returns the instance shared
// by the whole process; every accessor returns a copy.
package registry
