// Package parser lowers $-prefixed template source into a model.Template:
// a tree of literal runs, interpolations, and control constructs, each
// carrying the source span it came from. It performs no evaluation; host
// expressions are kept as opaque, verbatim text for the evaluator to
// resolve against an Env at render time.
package parser

import (
	"github.com/oxhq/quasigen/internal/cursor"
	"github.com/oxhq/quasigen/internal/model"
)

type parser struct {
	cur *cursor.Cursor
	src string
}

// Parse tokenizes and parses template source into an immutable Template
// that can be rendered any number of times.
func Parse(source string) (*model.Template, error) {
	p := &parser{cur: cursor.New(lex(source)), src: source}
	nodes, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	return &model.Template{Nodes: nodes, Source: source}, nil
}

// parseBody consumes nodes until EOF (no stops given) or until it finds, at
// bracket depth 0, an atom whose text is one of stops — left unconsumed for
// the caller, which owns the matching opener. Depth tracks every bracket
// kind together so that balanced literal target-code braces nested inside a
// construct's body (e.g. a generated Rust impl block) don't prematurely
// satisfy an enclosing $if/$for/$match's own closing delimiter.
func (p *parser) parseBody(stops ...string) ([]model.Node, error) {
	var nodes []model.Node
	var pending []model.Atom
	depth := 0

	flush := func() {
		if len(pending) > 0 {
			nodes = append(nodes, model.Node{Kind: model.KindLiteral, Atoms: pending, Span: spanOf(pending)})
			pending = nil
		}
	}

	for {
		a, ok := p.cur.Peek()
		if !ok {
			break
		}
		if depth == 0 && matchesAny(a.Text, stops) {
			break
		}
		if a.Text == "$" && p.cur.JointWithNext() {
			flush()
			sentinelStart := a.Span.Start
			p.cur.Next()
			node, err := p.parseForm(sentinelStart)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)
			continue
		}
		if isOpenBracket(a.Text) {
			depth++
		}
		if isCloseBracket(a.Text) {
			depth--
		}
		pending = append(pending, a)
		p.cur.Next()
	}
	flush()
	return nodes, nil
}

// parseForm dispatches on the atom immediately after a joint leading `$`,
// which the caller has already consumed; sentinelStart is that leading
// `$`'s own start position.
func (p *parser) parseForm(sentinelStart model.Position) (model.Node, error) {
	a, ok := p.cur.Peek()
	if !ok {
		return model.Node{}, &model.ParseError{Err: model.ErrUnexpectedEOF}
	}

	switch {
	case a.Text == "$":
		p.cur.Next()
		// The escape's span must cover its leading sentinel `$`, not just
		// the escaped `$` itself: two adjacent `$$` escapes need adjacent
		// spans so the whitespace inferencer sees no gap between them
		// (spec's escape law quote!($$$$) == "$$" depends on this).
		return model.Node{Kind: model.KindEscape, Char: '$', Span: model.Span{Start: sentinelStart, End: a.Span.End}}, nil

	case a.Text == "(":
		p.cur.Next()
		expr, err := p.captureBalanced()
		if err != nil {
			return model.Node{}, err
		}
		return model.Node{Kind: model.KindInterp, Value: expr, Span: expr.Span}, nil

	case a.Text == "[":
		p.cur.Next()
		expr, err := p.captureBalanced()
		if err != nil {
			return model.Node{}, err
		}
		return model.Node{Kind: model.KindRegister, Value: expr, Span: expr.Span}, nil

	case a.Text == "{":
		p.cur.Next()
		return p.parseQuotedString()

	case a.Text == "if":
		p.cur.Next()
		return p.parseIf()

	case a.Text == "match":
		p.cur.Next()
		return p.parseMatch()

	case a.Text == "for":
		p.cur.Next()
		return p.parseFor()

	case a.Text == "let":
		p.cur.Next()
		return p.parseLet()

	case a.Text == "ref":
		p.cur.Next()
		return p.parseRef()

	case isIdentAtomText(a.Text):
		p.cur.Next()
		return model.Node{Kind: model.KindInterp, Value: model.Expr{Source: a.Text, Span: a.Span}, Span: a.Span}, nil

	default:
		return model.Node{}, &model.ParseError{Span: a.Span, Err: model.ErrUnexpectedEOF}
	}
}

func (p *parser) captureBalanced() (model.Expr, error) {
	return captureBalanced(p.cur, p.src)
}

// expect consumes the next atom and requires it to equal text, reporting
// err (wrapped in a ParseError) otherwise.
func (p *parser) expect(text string, err error) (model.Atom, error) {
	a, ok := p.cur.Next()
	if !ok || a.Text != text {
		sp := model.Span{}
		if ok {
			sp = a.Span
		}
		return model.Atom{}, &model.ParseError{Span: sp, Err: err}
	}
	return a, nil
}
