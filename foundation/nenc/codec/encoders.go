// File: encoders.go
// Title: Representation Encoders
// Description: HTML numeric entity, Unicode escape and Base64 encoders.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.2.0: Initial implementation

package codec

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNotLatin1 is returned by Base64 for characters above U+00FF
var ErrNotLatin1 = errors.New("character does not fit into a single byte")

// HTML renders every character as a hexadecimal numeric entity, &#x41; for A
func HTML(s string) (string, error) {
	var b strings.Builder
	b.Grow(len(s) * 6)

	for _, r := range s {
		b.WriteString("&#x")
		b.WriteString(strconv.FormatInt(int64(r), 16))
		b.WriteByte(';')
	}
	return b.String(), nil
}

// Unicode renders every character as \u followed by at least four hex digits
func Unicode(s string) (string, error) {
	var b strings.Builder
	b.Grow(len(s) * 6)

	for _, r := range s {
		hex := strconv.FormatInt(int64(r), 16)
		b.WriteString(`\u`)
		if pad := 4 - len(hex); pad > 0 {
			b.WriteString(strings.Repeat("0", pad))
		}
		b.WriteString(hex)
	}
	return b.String(), nil
}

// Base64 encodes s with padded standard Base64, taking every character as
// one byte.
func Base64(s string) (string, error) {
	raw := make([]byte, 0, len(s))
	for i, r := range s {
		if r > 0xFF {
			return "", fmt.Errorf("%w: %U at offset %d", ErrNotLatin1, r, i)
		}
		raw = append(raw, byte(r))
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}
