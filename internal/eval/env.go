package eval

import (
	"github.com/oxhq/quasigen/internal/model"
	"github.com/oxhq/quasigen/internal/token"
	"github.com/oxhq/quasigen/lang"
)

// Value is what an Env returns for one opaque host expression. Which
// field the evaluator reads depends on the node kind the expression came
// from: Interp reads Stream/Item/Text (in that priority), Register reads
// Stream/Item and ignores Text, If reads Bool, and Let/Ref only check that
// the expression resolves without error, discarding the Value.
type Value struct {
	// Text is the rendered form of a plain (non-importable) expression,
	// used directly for $name / $(expr) interpolation.
	Text string

	// Item, when non-nil, is an adapter-specific import value (built with
	// a constructor like golang.Imported(...)) standing in for Text: the
	// evaluator registers it with the adapter and defers rendering its
	// occurrence text to the formatter, once the whole import set — and
	// any aliasing it forces — is known.
	Item any

	// Stream, when non-nil, is the already-evaluated token stream of a
	// nested quasiquote (see RenderNested): it is spliced directly into
	// the parent stream instead of being collapsed to text first, and
	// Imports is folded into the parent's import set. Takes priority over
	// both Item and Text when set.
	Stream  *token.Stream
	Imports *lang.ImportSet

	// Bool is the truthiness of a $if condition.
	Bool bool
}

// RenderNested evaluates a template's source as a nested quasiquote
// against env and adapter, producing a Value whose Stream/Imports splice
// directly into the enclosing render — the Go equivalent of the reference
// implementation's Tokens: FormatInto, which extends the destination
// stream in place rather than formatting its argument to a string first.
// An Env's Resolve implementation calls this when a host expression's
// value is itself a sub-template rather than a plain string.
func RenderNested(tmpl *model.Template, env Env, adapter lang.Adapter) (Value, error) {
	stream, set, err := Eval(tmpl, env, adapter)
	if err != nil {
		return Value{}, err
	}
	return Value{Stream: stream, Imports: set}, nil
}

// Env resolves the opaque host expressions a template captures verbatim.
// quasigen never parses or evaluates expression text itself; Env is the
// seam the embedding program implements to do that, the same role
// interfaces.Data/hilTransform play for the reference interpolation
// library this is grounded on.
type Env interface {
	// Resolve evaluates a single opaque expression — an Interp's Value, a
	// Register's Value, an If's Cond, a Let's LetValue, or a Ref's Value.
	Resolve(expr model.Expr) (Value, error)

	// Match evaluates scrutinee against patterns, in order, and returns
	// the index of the first arm whose pattern matches, or -1 if none
	// does. Pattern text is opaque to quasigen; only Env knows how to
	// compare it against the scrutinee's value.
	Match(scrutinee model.Expr, patterns []string) (int, error)

	// Iterate evaluates a $for's Iterable and returns one child Env per
	// produced element, each scoped so that Resolve(binding) inside the
	// loop body answers with that element. All child Envs are produced
	// up front in one slice; elements are not pulled one at a time.
	Iterate(iterable model.Expr, binding string) ([]Env, error)
}
