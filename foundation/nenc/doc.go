// File: doc.go
// Title: Nested Encoder Package Documentation
// Description: Package documentation for the nested encoder entry point.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial engine
// - 2026-10-19 v0.2.0: Nested encoder entry point

/*
Package nenc applies a chain of string encodings, described by a pattern,
to a text.

A pattern is a comma separated list of encoding tokens that is applied from
left to right, every stage consuming the output of the previous one:

	resp, err := nenc.Encode("Hi", "ascii,hex")
	// resp.Result.Result == "48 69"

Supported tokens:

	ascii                 decimal codepoints separated by spaces
	html                  &#x..; numeric entities
	unicode               \u escapes with at least four hex digits
	base<N>               convert a codepoint list into radix N
	abase<N>              ascii followed by base<N>
	rot<M>                Caesar rotation of the Latin letters by M
	rot<M>a               rotation of every codepoint by M
	binary, oct, hex ...  aliases of base<N>

N is one of 1, 2, 3, 4, 5, 6, 7, 8, 12, 16, 20 or 64, where 1 produces unary
runs of ones and 64 produces Base64. Unknown tokens leave the string
unchanged.

When the text or the pattern is empty, the encoder answers with the options
catalog instead of a result. Errors are coded with the foundation error
package: MALFORMED_TOKEN for unparsable tokens and MALFORMED_PIPELINE when a
stage cannot consume its input, for example base16 applied to plain text.
An encode call either returns the complete result or an error.
*/
package nenc
