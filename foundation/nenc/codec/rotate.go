// File: rotate.go
// Title: Rotation Cipher
// Description: Caesar rotation restricted to the Latin letter bands or
//              applied to the full codepoint range.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.2.0: Initial implementation

package codec

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

const (
	latinLetters = 26

	upperFirst = 'A' // 65
	upperEnd   = '[' // 91, first code after the uppercase band
	lowerLast  = '`' // 96, last code before the lowercase band
	lowerEnd   = 'z' // 122
)

// Rotate shifts every character by shift.
//
// In Latin mode the shift is taken modulo 26, keeping its sign, and only
// the letters A-Z and a-z move; each band wraps on its own. In full charset
// mode every codepoint moves by shift without wrapping, and results that are
// not valid codepoints become U+FFFD. A zero shift returns s unchanged.
func Rotate(s string, shift int, fullCharset bool) (string, error) {
	if !fullCharset {
		shift %= latinLetters
	}
	if shift == 0 {
		return s, nil
	}

	var mapping func(rune) rune
	if fullCharset {
		mapping = fullMapping(shift)
	} else {
		mapping = latinMapping(shift)
	}

	out, _, err := transform.String(runes.Map(mapping), s)
	if err != nil {
		return "", err
	}
	return out, nil
}

// latinMapping expects |shift| < 26
func latinMapping(shift int) func(rune) rune {
	move := rune(shift)
	return func(c rune) rune {
		if c < upperFirst || c > lowerEnd || (c >= upperEnd && c <= lowerLast) {
			return c
		}

		n := c + move
		switch {
		case c < upperEnd && n >= upperEnd:
			return n - latinLetters
		case c > lowerLast && n <= lowerLast:
			return n + latinLetters
		case n < upperFirst:
			return n + latinLetters
		case n > lowerEnd:
			return n - latinLetters
		default:
			return n
		}
	}
}

func fullMapping(shift int) func(rune) rune {
	move := int64(shift)
	return func(c rune) rune {
		n := int64(c) + move
		if n < 0 || n > unicode.MaxRune || !utf8.ValidRune(rune(n)) {
			return utf8.RuneError
		}
		return rune(n)
	}
}
