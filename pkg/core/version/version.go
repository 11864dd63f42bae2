// ============================================================================
// nestedencoder (nenc) - Verschachtelte Zeichenketten-Kodierung
// ============================================================================
//
// Package:     version
// Description: Central version management for all components
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package version

// Version constants for all nenc components
const (
	// Platform version
	Platform = "1.0.0"

	// Component versions
	Engine  = "1.0.0"
	CLI     = "1.0.0"
	HTTP    = "1.0.0"
	GRPC    = "1.0.0"
	History = "1.0.0"
)

// Build information, set via -ldflags at build time
var (
	Commit    = "unknown"
	BuildDate = "unknown"
)

// ServiceVersion returns the version for a given component name
func ServiceVersion(name string) string {
	switch name {
	case "engine":
		return Engine
	case "cli":
		return CLI
	case "http":
		return HTTP
	case "grpc":
		return GRPC
	case "history":
		return History
	default:
		return Platform
	}
}
