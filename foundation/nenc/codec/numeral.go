// File: numeral.go
// Title: Numeral Converters
// Description: Codepoint list rendering and conversion of decimal integer
//              lists into other radixes, including the unary system.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.2.0: Initial implementation

package codec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ListSeparator joins the integers of a codepoint list
const ListSeparator = " "

// MaxUnaryOutput caps the total length of a unary rendering, separators
// included
const MaxUnaryOutput = 1 << 24

var (
	// ErrNotNumeral is returned when a list element is not a decimal integer
	ErrNotNumeral = errors.New("not a decimal integer")

	// ErrNegativeUnary is returned for negative values in unary conversion
	ErrNegativeUnary = errors.New("negative value has no unary form")

	// ErrUnaryTooLarge is returned when a unary rendering would exceed
	// MaxUnaryOutput
	ErrUnaryTooLarge = errors.New("value too large for unary form")

	// ErrInvalidRadix is returned for radixes outside 2 to 36
	ErrInvalidRadix = errors.New("radix must be between 2 and 36")
)

// ASCII renders every character as its decimal codepoint, separated by a
// single space.
func ASCII(s string) (string, error) {
	var b strings.Builder
	b.Grow(len(s) * 4)

	first := true
	for _, r := range s {
		if !first {
			b.WriteString(ListSeparator)
		}
		first = false
		b.WriteString(strconv.Itoa(int(r)))
	}
	return b.String(), nil
}

// Numeral converts a list of decimal integers into the given radix using
// the digits 0-9a-z.
func Numeral(s string, radix int) (string, error) {
	if radix < 2 || radix > 36 {
		return "", fmt.Errorf("%w: %d", ErrInvalidRadix, radix)
	}

	parts := strings.Split(s, ListSeparator)
	var b strings.Builder
	b.Grow(len(s) * 2)

	for i, part := range parts {
		v, err := parseNumeral(part)
		if err != nil {
			return "", err
		}
		if i > 0 {
			b.WriteString(ListSeparator)
		}
		b.WriteString(strconv.FormatInt(v, radix))
	}
	return b.String(), nil
}

// Unary renders every integer n of a list as n ones. The output length is
// computed before anything is allocated.
func Unary(s string) (string, error) {
	parts := strings.Split(s, ListSeparator)
	values := make([]int64, len(parts))
	total := int64(len(parts) - 1)

	for i, part := range parts {
		v, err := parseNumeral(part)
		if err != nil {
			return "", err
		}
		if v < 0 {
			return "", fmt.Errorf("%w: %d", ErrNegativeUnary, v)
		}
		if v > MaxUnaryOutput || total+v > MaxUnaryOutput {
			return "", fmt.Errorf("%w: more than %d characters", ErrUnaryTooLarge, MaxUnaryOutput)
		}
		total += v
		values[i] = v
	}

	var b strings.Builder
	b.Grow(int(total))
	for i, v := range values {
		if i > 0 {
			b.WriteString(ListSeparator)
		}
		b.WriteString(strings.Repeat("1", int(v)))
	}
	return b.String(), nil
}

func parseNumeral(part string) (int64, error) {
	v, err := strconv.ParseInt(part, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotNumeral, part)
	}
	return v, nil
}
