// Package quasigen is the library facade: the public entry point a Go
// program embeds to parse or build a quasiquote and render it against a
// target language. Everything it does is a thin composition of
// internal/parser, internal/eval, and internal/format — this package adds
// no algorithm of its own, only the surface a caller imports.
package quasigen

import (
	"io"
	"strings"

	"github.com/oxhq/quasigen/internal/eval"
	"github.com/oxhq/quasigen/internal/format"
	"github.com/oxhq/quasigen/internal/model"
	"github.com/oxhq/quasigen/internal/parser"
	"github.com/oxhq/quasigen/internal/token"
	"github.com/oxhq/quasigen/lang"
)

// Env resolves the opaque host expressions a parsed template captures.
// Re-exported from internal/eval so callers implementing one don't need
// to import an internal package.
type Env = eval.Env

// Value is the result an Env.Resolve call returns for one expression.
type Value = eval.Value

// MapEnv is a convenience Env backed by a flat map of variable name to
// string value, for callers whose templates only need $name/$(expr)
// substitution and no $match or $for. Re-exported from internal/eval.
type MapEnv = eval.MapEnv

// Template is a quasiquote, built either by parsing $-sigil source text
// (Parse) or directly from Go code (Quote). It renders any number of
// times, against any Env and lang.Adapter.
type Template struct {
	nodes []model.Node
	built []Atom
}

// Parse reads $-sigil source text and returns the Template it describes.
func Parse(source string) (*Template, error) {
	tmpl, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}
	return &Template{nodes: tmpl.Nodes}, nil
}

// Atom is one piece of a Template built directly with Quote, the
// library's quote!-equivalent builder API: an alternative to writing and
// parsing $-sigil source when the value to interpolate is already a Go
// value at the call site, not an expression an Env needs to resolve
// later. Consecutive atoms are joined by a single space, mirroring the
// reference generator's token-append spacing default.
type Atom struct {
	text string
	item any
}

// Lit builds a literal-text Atom.
func Lit(text string) Atom { return Atom{text: text} }

// Ref builds an Atom for an adapter-specific importable item, such as a
// value returned by golang.Imported or rust.Imported.
func Ref(item any) Atom { return Atom{item: item} }

// Quote builds a Template directly from atoms, with no $-sigil source
// text or Env involved: every value is already in hand.
func Quote(atoms ...Atom) *Template {
	return &Template{built: atoms}
}

// Render evaluates t against env (ignored for a Quote-built Template,
// whose atoms need no resolution) using adapter, and writes the rendered
// target-language source to sink. cfg may be nil to use the adapter's
// default formatting configuration.
func (t *Template) Render(env Env, adapter lang.Adapter, cfg *lang.Config, sink io.Writer) error {
	stream, set, err := t.evaluate(env, adapter)
	if err != nil {
		return err
	}
	return format.Render(stream, set, adapter, cfg, sink)
}

// RenderString is Render, returning the output as a string.
func (t *Template) RenderString(env Env, adapter lang.Adapter, cfg *lang.Config) (string, error) {
	var b strings.Builder
	if err := t.Render(env, adapter, cfg, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (t *Template) evaluate(env Env, adapter lang.Adapter) (*token.Stream, *lang.ImportSet, error) {
	if t.built != nil {
		return evalBuilt(t.built, adapter)
	}
	return eval.Eval(&model.Template{Nodes: t.nodes}, env, adapter)
}

func evalBuilt(atoms []Atom, adapter lang.Adapter) (*token.Stream, *lang.ImportSet, error) {
	stream := token.NewStream()
	set := lang.NewImportSet()
	for i, a := range atoms {
		if i > 0 {
			stream.AppendSpace()
		}
		if a.item != nil {
			if err := adapter.RegisterItem(a.item, set); err != nil {
				return nil, nil, err
			}
			stream.AppendItem(a.item)
			continue
		}
		stream.AppendText(a.text)
	}
	return stream, set, nil
}

// ExtractVariables reports the distinct variable names a host expression
// references, for tooling that wants to inspect a template without
// rendering it.
func ExtractVariables(source string) ([]string, error) {
	return eval.ExtractVariables(source)
}
