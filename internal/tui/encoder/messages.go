// ============================================================================
// nestedencoder (nenc) - Verschachtelte Zeichenketten-Kodierung
// ============================================================================
//
// Package:     encoder
// Description: Message types for async operations in the encoder TUI
// Author:      Mike Stoffels
// Created:     2025-12-07
// License:     MIT
// ============================================================================

package encoder

import (
	"github.com/msto63/nestedencoder/foundation/nenc"
)

// encodedMsg is sent when an encode run finished. seq identifies the input
// state it was started for; stale results are dropped.
type encodedMsg struct {
	seq  int
	resp *nenc.Response
	err  error
}
