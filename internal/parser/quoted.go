package parser

import "github.com/oxhq/quasigen/internal/model"

// parseQuotedString parses the `${"..."}` form: the leading `$` and `{`
// have already been consumed. The quoted atom the lexer produced is
// re-lexed on its own so that `$`-interpolations written inside the
// literal are recognized textually, without the outer lexer or whitespace
// inferencer ever seeing the string's interior: quoted bodies are handed
// to the target language's own string-quoting routine as a flat sequence
// of literal/interpolated parts, not run through structural formatting.
func (p *parser) parseQuotedString() (model.Node, error) {
	openBrace := model.Span{}
	if a, ok := p.cur.PeekAt(-1); ok {
		openBrace = a.Span
	}

	quoteAtom, ok := p.cur.Next()
	if !ok || !isQuoted(quoteAtom.Text) {
		sp := openBrace
		if ok {
			sp = quoteAtom.Span
		}
		return model.Node{}, &model.ParseError{Span: sp, Err: model.ErrUnexpectedEOF}
	}

	inner := quoteAtom.Text[1 : len(quoteAtom.Text)-1]
	parts, err := parseQuotedInner(inner)
	if err != nil {
		return model.Node{}, err
	}

	closeAtom, err := p.expect("}", model.ErrUnmatchedBracket)
	if err != nil {
		return model.Node{}, err
	}

	return model.Node{
		Kind:  model.KindQuotedString,
		Parts: parts,
		Span:  model.Span{Start: quoteAtom.Span.Start, End: closeAtom.Span.End},
	}, nil
}

// parseQuotedInner re-tokenizes the text between the quotes of a `${"..."}`
// body and splits it into literal runs and interpolations. Positions in
// this re-lexed stream are local to inner, not the owning template: quoted
// parts bypass the whitespace inferencer entirely, so global position
// accuracy doesn't matter here.
func parseQuotedInner(inner string) ([]model.Node, error) {
	atoms := lex(inner)
	cur := newAtomCursor(atoms)

	var nodes []model.Node
	var pending []model.Atom

	flush := func() {
		if len(pending) > 0 {
			nodes = append(nodes, model.Node{Kind: model.KindLiteral, Atoms: pending, Span: spanOf(pending)})
			pending = nil
		}
	}

	for {
		a, ok := cur.Peek()
		if !ok {
			break
		}
		if a.Text == "$" && cur.jointWithNext() {
			flush()
			cur.Next()
			n, ok := cur.Peek()
			if !ok {
				return nil, &model.ParseError{Span: a.Span, Err: model.ErrUnexpectedEOF}
			}
			switch {
			case n.Text == "$":
				cur.Next()
				nodes = append(nodes, model.Node{Kind: model.KindEscape, Char: '$', Span: n.Span})
			case n.Text == "(":
				cur.Next()
				expr, err := captureBalanced(cur, inner)
				if err != nil {
					return nil, err
				}
				nodes = append(nodes, model.Node{Kind: model.KindInterp, Value: expr, Span: expr.Span})
			case isIdentAtomText(n.Text):
				cur.Next()
				nodes = append(nodes, model.Node{Kind: model.KindInterp, Value: model.Expr{Source: n.Text, Span: n.Span}, Span: n.Span})
			default:
				return nil, &model.ParseError{Span: n.Span, Err: model.ErrUnexpectedEOF}
			}
			continue
		}
		pending = append(pending, a)
		cur.Next()
	}
	flush()
	return nodes, nil
}

// atomCursor is a minimal, local stand-in for cursor.Cursor used only
// while parsing a quoted-string's interior; it avoids taking a dependency
// on the shared cursor package's template-wide position bookkeeping, which
// doesn't apply inside an already-lexed literal.
type atomCursor struct {
	atoms []model.Atom
	pos   int
}

func newAtomCursor(atoms []model.Atom) *atomCursor {
	return &atomCursor{atoms: atoms}
}

func (c *atomCursor) Peek() (model.Atom, bool) {
	if c.pos >= len(c.atoms) {
		return model.Atom{}, false
	}
	return c.atoms[c.pos], true
}

func (c *atomCursor) peekAt(offset int) (model.Atom, bool) {
	i := c.pos + offset
	if i < 0 || i >= len(c.atoms) {
		return model.Atom{}, false
	}
	return c.atoms[i], true
}

func (c *atomCursor) Next() (model.Atom, bool) {
	a, ok := c.Peek()
	if ok {
		c.pos++
	}
	return a, ok
}

func (c *atomCursor) jointWithNext() bool {
	cur, ok := c.Peek()
	if !ok {
		return false
	}
	next, ok := c.peekAt(1)
	if !ok {
		return false
	}
	return cur.Span.End == next.Span.Start
}
