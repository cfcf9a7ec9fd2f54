// Package lang is the external boundary of the quasiquoter (spec
// component G): the per-target-language contract the formatter delegates
// string quoting, import collection, and item rendering to, plus a
// process-wide registry concrete adapters register themselves into.
package lang

import "io"

// Part is one piece of a quoted-string body handed to an adapter's
// QuoteString: either a literal run copied verbatim from the template
// source, or an already-rendered interpolated value spliced into the
// string.
type Part struct {
	Literal string
	Value   string
	IsValue bool
}

// Config is the per-render formatting configuration an adapter defaults
// and a caller may override.
type Config struct {
	Indent     string
	LineEnding string
}

// Resolver lets an adapter's RenderItem hook ask how a previously
// registered item should be referred to at its point of use — qualified,
// aliased, or bare — honoring whatever policy it was registered under.
type Resolver interface {
	Resolve(item any) (string, error)
}

// Adapter is the contract each target language implements (spec §4.G).
type Adapter interface {
	// Name is the adapter's registry key, e.g. "rust", "go", "python".
	Name() string

	// DefaultConfig returns this language's default indentation unit and
	// line ending.
	DefaultConfig() Config

	// QuoteString renders a sequence of literal/interpolated parts as one
	// target-language string literal, including escaping and, where the
	// language supports it, embedded interpolation syntax.
	QuoteString(parts []Part) (string, error)

	// RegisterItem normalizes and deduplicates an import-like item into
	// set. Called once per occurrence; set handles dedup by key.
	RegisterItem(item any, set *ImportSet) error

	// RenderItem produces the occurrence form of item at its point of
	// use, resolving aliasing/qualification through resolver.
	RenderItem(item any, resolver Resolver) (string, error)

	// EmitImports writes the grouped import block to sink, in whatever
	// order and grouping this language's conventions call for.
	EmitImports(set *ImportSet, sink io.Writer) error
}
