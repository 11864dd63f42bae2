// File: registry.go
// Title: Encoding Registry
// Description: Immutable alias table, supported radix set and options
//              catalog for the nested encoder.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial registry
// - 2026-10-19 v0.2.0: Encoding aliases and options catalog

package registry

import (
	"sort"
)

// Parameter names of the encode entry point
const (
	ParamText    = "plainString"
	ParamPattern = "pattern"
)

// OptionsCatalog describes the accepted parameters and encodings
type OptionsCatalog struct {
	Parameters []string          `json:"parameters"`
	Encodings  map[string]string `json:"encodings"`
}

// EncodingInfo is a single catalog entry
type EncodingInfo struct {
	Pattern     string `json:"pattern"`
	Description string `json:"description"`
}

// Registry is the immutable lookup structure for token resolution
type Registry struct {
	aliases   map[string]string
	radixes   map[int]struct{}
	encodings map[string]string
}

var defaultRegistry = New()

// Default returns the process-wide registry
func Default() *Registry {
	return defaultRegistry
}

// New builds a registry with the built-in aliases and catalog
func New() *Registry {
	r := &Registry{
		aliases: map[string]string{
			"binary":     "base2",
			"duodec":     "base12",
			"hex":        "base16",
			"oct":        "base8",
			"pental":     "base5",
			"quaternary": "base4",
			"senary":     "base6",
			"septenary":  "base7",
			"trinary":    "base3",
			"unary":      "base1",
			"vigesimal":  "base20",
		},
		radixes: make(map[int]struct{}),
		encodings: map[string]string{
			"ascii":      "ASCII encoding",
			"base<x>":    "different numbering systems where x is the base of the numbering system; x can be one of: 1, 2, 3, 4, 5, 6, 7, 8, 12, 16, 20, 64",
			"abase<x>":   "building onto base (see base<x>) the string is ASCII encoded (see ascii) before the base encoding",
			"binary":     "see base2",
			"duodec":     "see base12",
			"hex":        "see base16",
			"html":       "HTML based encoding",
			"oct":        "see base8",
			"pental":     "see base5",
			"quaternary": "see base4",
			"rot<x>":     "rotate the characters by x (can be negative); only rotates the base latin letters in the ASCII table",
			"rot<x>a":    "building onto rot (see rot<x>) the string is rotated regardless of the position on the ASCII / Unicode table",
			"senary":     "see base6",
			"septenary":  "see base7",
			"trinary":    "see base3",
			"unary":      "see base1",
			"unicode":    "Unicode based encoding",
			"vigesimal":  "see base20",
		},
	}
	for _, n := range []int{1, 2, 3, 4, 5, 6, 7, 8, 12, 16, 20, 64} {
		r.radixes[n] = struct{}{}
	}
	return r
}

// ResolveAlias returns the canonical token for an alias. Resolution is one
// level deep; a token that is not an alias is returned unchanged with ok false.
func (r *Registry) ResolveAlias(token string) (string, bool) {
	canonical, ok := r.aliases[token]
	if !ok {
		return token, false
	}
	return canonical, true
}

// Aliases returns a copy of the alias table
func (r *Registry) Aliases() map[string]string {
	out := make(map[string]string, len(r.aliases))
	for k, v := range r.aliases {
		out[k] = v
	}
	return out
}

// IsSupportedRadix reports whether n is a radix of base<N> and abase<N>
func (r *Registry) IsSupportedRadix(n int) bool {
	_, ok := r.radixes[n]
	return ok
}

// SupportedRadixes returns the supported radixes in ascending order
func (r *Registry) SupportedRadixes() []int {
	out := make([]int, 0, len(r.radixes))
	for n := range r.radixes {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// Catalog returns a fresh copy of the options catalog
func (r *Registry) Catalog() OptionsCatalog {
	encodings := make(map[string]string, len(r.encodings))
	for k, v := range r.encodings {
		encodings[k] = v
	}
	return OptionsCatalog{
		Parameters: []string{ParamText, ParamPattern},
		Encodings:  encodings,
	}
}

// Encodings returns the catalog entries sorted by pattern
func (r *Registry) Encodings() []EncodingInfo {
	out := make([]EncodingInfo, 0, len(r.encodings))
	for pattern, desc := range r.encodings {
		out = append(out, EncodingInfo{Pattern: pattern, Description: desc})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Pattern < out[j].Pattern })
	return out
}
