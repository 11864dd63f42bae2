// File: doc.go
// Title: Codec Package Documentation
// Description: Package documentation for the numeral converters, the
//              rotation cipher and the representation encoders.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.2.0: Initial codec implementation

// Package codec implements the string transformations applied by pipeline
// stages. Every function is stateless and returns the transformed string or
// an error; none of them retain their input.
//
// Characters are Unicode codepoints. ASCII renders a string as its list of
// decimal codepoints ("AB" becomes "65 66"); Numeral and Unary consume such
// a list and fail with ErrNotNumeral on anything else:
//
//	list, _ := codec.ASCII("Hi")       // "72 105"
//	hex, _ := codec.Numeral(list, 16)  // "48 69"
//	_, err := codec.Numeral("Hi", 16)  // errors.Is(err, codec.ErrNotNumeral)
package codec
