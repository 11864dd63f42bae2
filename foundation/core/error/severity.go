// File: severity.go
// Title: Error Severity Levels
// Description: Severity classification used by the logger to pick a level
//              when an *Error is logged.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow covers rejected user input such as malformed patterns
	SeverityLow Severity = iota

	// SeverityMedium is the default for uncategorized errors
	SeverityMedium

	// SeverityHigh covers storage and service failures
	SeverityHigh

	// SeverityCritical makes the process unusable
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ShouldAlert returns true if this severity level should trigger alerts
func (s Severity) ShouldAlert() bool {
	return s >= SeverityHigh
}

// GetSeverityFromCode determines appropriate severity level based on error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeServiceUnavailable:
		return SeverityCritical
	case CodeDatabaseError, CodeServiceInitialization, CodeInvalidConfig, CodeMissingConfig:
		return SeverityHigh
	case CodeInvalidInput, CodeNotFound, CodeMalformedToken, CodeMalformedPipeline, CodeCanceled:
		return SeverityLow
	default:
		return SeverityMedium
	}
}
