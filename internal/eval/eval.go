// Package eval is the evaluator (spec component E): it walks a parsed
// template, asking an Env to resolve each opaque host expression, and
// writes the result into a token.Stream plus a lang.ImportSet, ready for
// the formatter to render. It holds no target-language knowledge of its
// own beyond the lang.Adapter it's handed — quoting and import rendering
// stay the adapter's job.
package eval

import (
	"strings"

	"github.com/oxhq/quasigen/internal/model"
	"github.com/oxhq/quasigen/internal/token"
	"github.com/oxhq/quasigen/internal/whitespace"
	"github.com/oxhq/quasigen/lang"
)

// Eval walks tmpl against env using adapter and returns the resulting
// token stream and the set of items registered along the way.
func Eval(tmpl *model.Template, env Env, adapter lang.Adapter) (*token.Stream, *lang.ImportSet, error) {
	w := &walker{
		stream:  token.NewStream(),
		set:     lang.NewImportSet(),
		ws:      whitespace.NewState(),
		adapter: adapter,
	}
	if err := w.walkNodes(tmpl.Nodes, env, false); err != nil {
		return nil, nil, err
	}
	return w.stream, w.set, nil
}

type walker struct {
	stream  *token.Stream
	set     *lang.ImportSet
	ws      *whitespace.State
	adapter lang.Adapter
}

func (w *walker) walkNodes(nodes []model.Node, env Env, soft bool) error {
	for _, n := range nodes {
		if err := w.walkNode(n, env, soft); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) walkNode(n model.Node, env Env, soft bool) error {
	switch n.Kind {
	case model.KindLiteral:
		for _, a := range n.Atoms {
			w.ws.Atom(w.stream, a, soft)
		}
		return nil

	case model.KindEscape:
		w.ws.Transition(w.stream, n.Span, soft)
		w.stream.AppendText(string(n.Char))
		return nil

	case model.KindInterp:
		return w.interp(n, env, soft)

	case model.KindRef:
		return w.ref(n, env, soft)

	case model.KindRegister:
		return w.register(n, env)

	case model.KindLet:
		// A $let binding has no token-stream output of its own: it exists
		// to introduce a name the Env resolves on later Resolve calls
		// within this scope. Evaluating it here only surfaces a bad
		// expression as an error at the point it's declared rather than
		// at first use.
		_, err := env.Resolve(n.LetValue)
		return err

	case model.KindIf:
		return w.ifNode(n, env, soft)

	case model.KindMatch:
		return w.matchNode(n, env, soft)

	case model.KindRepeat:
		return w.repeatNode(n, env, soft)

	case model.KindQuotedString:
		return w.quotedString(n, env, soft)
	}
	return nil
}

func (w *walker) interp(n model.Node, env Env, soft bool) error {
	val, err := env.Resolve(n.Value)
	if err != nil {
		return err
	}
	if val.Stream != nil {
		w.ws.Transition(w.stream, n.Span, soft)
		w.stream.Splice(val.Stream.Tokens())
		w.set.Merge(val.Imports)
		return nil
	}
	if val.Item != nil {
		if err := w.adapter.RegisterItem(val.Item, w.set); err != nil {
			return err
		}
		w.ws.Item(w.stream, n.Span, val.Item, soft)
		return nil
	}
	w.ws.Transition(w.stream, n.Span, soft)
	w.stream.AppendText(val.Text)
	return nil
}

// ref evaluates a $ref expression purely for its effect on spacing: the
// expression's value participates in the whitespace inferencer's position
// tracking (so surrounding atoms still space themselves correctly against
// it) but is never rendered and never registered as an import. This is
// what separates $ref from $(expr): the latter both renders and registers,
// the former does neither.
func (w *walker) ref(n model.Node, env Env, soft bool) error {
	if _, err := env.Resolve(n.Value); err != nil {
		return err
	}
	w.ws.Transition(w.stream, n.Span, soft)
	return nil
}

func (w *walker) register(n model.Node, env Env) error {
	val, err := env.Resolve(n.Value)
	if err != nil {
		return err
	}
	if val.Stream != nil {
		w.set.Merge(val.Imports)
		return nil
	}
	if val.Item == nil {
		return nil
	}
	return w.adapter.RegisterItem(val.Item, w.set)
}

// evalNested runs nodes as a construct body evaluated in place: it enters
// a fresh indentation scope so the body's first atom lands at its own
// column rather than inheriting the column of whatever preceded the
// construct, then closes the scope with a synthetic Unindent on exit.
func (w *walker) evalNested(nodes []model.Node, env Env, soft bool) error {
	saved := w.ws.EnterNested()
	if err := w.walkNodes(nodes, env, soft); err != nil {
		return err
	}
	w.ws.ExitNested(w.stream, saved)
	return nil
}

func (w *walker) ifNode(n model.Node, env Env, soft bool) error {
	val, err := env.Resolve(n.Cond)
	if err != nil {
		return err
	}
	if val.Bool {
		// Transition on the construct's own span before entering its
		// nested scope: evalNested resets hasPrev, so this is the only
		// chance for the $if's starting position (relative to whatever
		// preceded it) to earn a leading Push or Indent.
		w.ws.Transition(w.stream, n.Span, soft)
		return w.evalNested(n.Then, env, soft)
	}
	if !n.HasElse {
		return nil
	}
	w.ws.Transition(w.stream, n.Span, soft)
	return w.evalNested(n.Else, env, soft)
}

func (w *walker) matchNode(n model.Node, env Env, soft bool) error {
	var flatPatterns []string
	var owningArm []int
	for armIdx, arm := range n.Arms {
		for _, p := range arm.Patterns {
			flatPatterns = append(flatPatterns, p)
			owningArm = append(owningArm, armIdx)
		}
	}
	idx, err := env.Match(n.Scrutinee, flatPatterns)
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(flatPatterns) {
		return nil
	}
	// See ifNode: the construct's own span earns the leading break/indent
	// before evalNested resets hasPrev for the chosen arm's body.
	w.ws.Transition(w.stream, n.Span, soft)
	arm := n.Arms[owningArm[idx]]
	return w.evalNested(arm.Body, env, soft)
}

func (w *walker) repeatNode(n model.Node, env Env, soft bool) error {
	envs, err := env.Iterate(n.Iterable, n.Binding)
	if err != nil {
		return err
	}
	if len(envs) > 0 {
		// See ifNode: earn the loop's own leading break/indent once, before
		// the first iteration's evalNested resets hasPrev.
		w.ws.Transition(w.stream, n.Span, soft)
	}
	for i, itemEnv := range envs {
		if i > 0 {
			switch {
			case n.HasJoin:
				// The join body's embedded newlines are a formatting
				// hint, not a source indentation signal: emit it in soft
				// mode so the formatter may suppress the line break.
				if err := w.walkNodes(n.Join, env, true); err != nil {
					return err
				}
			case len(n.Separator) > 0:
				if err := w.walkNodes(n.Separator, env, false); err != nil {
					return err
				}
			}
		}
		if err := w.evalNested(n.Body, itemEnv, false); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) quotedString(n model.Node, env Env, soft bool) error {
	parts := make([]lang.Part, 0, len(n.Parts))
	for _, p := range n.Parts {
		switch p.Kind {
		case model.KindLiteral:
			var b strings.Builder
			for _, a := range p.Atoms {
				b.WriteString(a.Text)
			}
			parts = append(parts, lang.Part{Literal: b.String()})

		case model.KindInterp:
			val, err := env.Resolve(p.Value)
			if err != nil {
				return err
			}
			text := val.Text
			if val.Item != nil {
				if err := w.adapter.RegisterItem(val.Item, w.set); err != nil {
					return err
				}
				// A quoted string collapses to one Text token immediately,
				// so an item referenced inside one can't wait for the
				// formatter's final import-aliasing pass the way a plain
				// $(expr) interpolation can: render it now, resolver-less.
				// Adapters whose RenderItem needs alias negotiation (e.g.
				// kotlin's name-collision handling) see an empty resolver
				// here and fall back to their unaliased form.
				rendered, err := w.adapter.RenderItem(val.Item, nil)
				if err != nil {
					return err
				}
				text = rendered
			}
			parts = append(parts, lang.Part{Value: text, IsValue: true})
		}
	}
	quoted, err := w.adapter.QuoteString(parts)
	if err != nil {
		return err
	}
	w.ws.Transition(w.stream, n.Span, soft)
	w.stream.AppendText(quoted)
	return nil
}
