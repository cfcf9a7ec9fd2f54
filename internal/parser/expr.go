package parser

import "github.com/oxhq/quasigen/internal/model"

// captureBare scans a host expression that has no surrounding brackets,
// used for the condition of $if, the scrutinee of $match, the iterable of
// $for, and the right-hand side of $let/$ref. Parens and square brackets
// nested inside the expression are balanced (so `a.b(c, d)` isn't cut
// short at the first comma-like stop atom); a literal `{` always ends the
// scan, since it is reserved for the construct's own body — an expression
// that itself needs a brace literal must use the bracketed $(expr) form
// instead. extraStop, when non-nil, is consulted at depth 0 for
// construct-specific terminators (a `|` or `=>` in a match pattern, the
// `join`/`sep` keyword after a for's iterable).
func (p *parser) captureBare(extraStop func(model.Atom) bool) (model.Expr, error) {
	depth := 0
	haveFirst := false
	var startPos model.Position
	var startOff int
	var lastAtom model.Atom

	for {
		a, ok := p.cur.Peek()
		if !ok {
			break
		}
		if a.Text == "{" || a.Text == "}" {
			// "{" is always reserved for the construct's own body; "}" can
			// only be a stray closer here, since depth is never opened by a
			// "{" this capture consumes itself (it always stops the scan).
			break
		}
		if depth == 0 {
			if a.Text == ")" || a.Text == "]" {
				break
			}
			if haveFirst && a.Span.Start.Line > lastAtom.Span.End.Line {
				break
			}
			if extraStop != nil && extraStop(a) {
				break
			}
		}
		if a.Text == "(" || a.Text == "[" {
			depth++
		} else if a.Text == ")" || a.Text == "]" {
			depth--
		}
		if !haveFirst {
			startPos = a.Span.Start
			startOff = a.Start
			haveFirst = true
		}
		lastAtom = a
		p.cur.Next()
	}

	if !haveFirst {
		at, ok := p.cur.Peek()
		pos := model.Position{}
		if ok {
			pos = at.Span.Start
		}
		return model.Expr{Source: "", Span: model.Span{Start: pos, End: pos}}, nil
	}
	return model.Expr{Source: p.src[startOff:lastAtom.End], Span: model.Span{Start: startPos, End: lastAtom.Span.End}}, nil
}

func (p *parser) isArrowAhead() bool {
	a, ok := p.cur.Peek()
	if !ok || a.Text != "=" {
		return false
	}
	if !p.cur.JointWithNext() {
		return false
	}
	b, ok := p.cur.PeekAt(1)
	return ok && b.Text == ">"
}

func (p *parser) expectArrow() error {
	a, ok := p.cur.Next()
	if !ok || a.Text != "=" {
		sp := model.Span{}
		if ok {
			sp = a.Span
		}
		return &model.ParseError{Span: sp, Err: model.ErrMissingArrow}
	}
	b, ok := p.cur.Next()
	if !ok || b.Text != ">" {
		return &model.ParseError{Span: a.Span, Err: model.ErrMissingArrow}
	}
	return nil
}

// parseIf parses `if cond { then } (else { else })?`; the leading `if`
// atom has already been consumed by parseForm.
func (p *parser) parseIf() (model.Node, error) {
	start, _ := p.cur.Peek()
	startPos := start.Span.Start

	cond, err := p.captureBare(nil)
	if err != nil {
		return model.Node{}, err
	}
	if _, err := p.expect("{", model.ErrUnexpectedEOF); err != nil {
		return model.Node{}, err
	}
	then, err := p.parseBody("}")
	if err != nil {
		return model.Node{}, err
	}
	closeAtom, err := p.expect("}", model.ErrUnexpectedEOF)
	if err != nil {
		return model.Node{}, err
	}

	node := model.Node{Kind: model.KindIf, Cond: cond, Then: then, Span: model.Span{Start: startPos, End: closeAtom.Span.End}}

	if a, ok := p.cur.Peek(); ok && a.Text == "else" {
		p.cur.Next()
		if _, err := p.expect("{", model.ErrUnexpectedEOF); err != nil {
			return model.Node{}, err
		}
		elseBody, err := p.parseBody("}")
		if err != nil {
			return model.Node{}, err
		}
		closeElse, err := p.expect("}", model.ErrUnexpectedEOF)
		if err != nil {
			return model.Node{}, err
		}
		node.Else = elseBody
		node.HasElse = true
		node.Span.End = closeElse.Span.End
	}

	return node, nil
}

// parseMatch parses `match scrutinee { (pattern ('|' pattern)* '=>' (body |
// '{' body '}'))','? ... }`; the leading `match` atom has already been
// consumed.
func (p *parser) parseMatch() (model.Node, error) {
	start, _ := p.cur.Peek()
	startPos := start.Span.Start

	scrutinee, err := p.captureBare(nil)
	if err != nil {
		return model.Node{}, err
	}
	if _, err := p.expect("{", model.ErrUnexpectedEOF); err != nil {
		return model.Node{}, err
	}

	var arms []model.MatchArm
	for {
		a, ok := p.cur.Peek()
		if !ok {
			return model.Node{}, &model.ParseError{Err: model.ErrUnexpectedEOF}
		}
		if a.Text == "}" {
			break
		}

		var patterns []string
		for {
			pat, err := p.captureBare(func(a model.Atom) bool {
				return a.Text == "|" || p.isArrowAhead()
			})
			if err != nil {
				return model.Node{}, err
			}
			patterns = append(patterns, pat.Source)
			if n, ok := p.cur.Peek(); ok && n.Text == "|" {
				p.cur.Next()
				continue
			}
			break
		}

		if err := p.expectArrow(); err != nil {
			return model.Node{}, err
		}

		var body []model.Node
		if n, ok := p.cur.Peek(); ok && n.Text == "{" {
			p.cur.Next()
			body, err = p.parseBody("}")
			if err != nil {
				return model.Node{}, err
			}
			if _, err := p.expect("}", model.ErrUnexpectedEOF); err != nil {
				return model.Node{}, err
			}
		} else {
			body, err = p.parseBody("}", ",")
			if err != nil {
				return model.Node{}, err
			}
		}

		arms = append(arms, model.MatchArm{Patterns: patterns, Body: body})

		if n, ok := p.cur.Peek(); ok && n.Text == "," {
			p.cur.Next()
			continue
		}
		break
	}

	closeAtom, err := p.expect("}", model.ErrUnexpectedEOF)
	if err != nil {
		return model.Node{}, err
	}

	return model.Node{Kind: model.KindMatch, Scrutinee: scrutinee, Arms: arms, Span: model.Span{Start: startPos, End: closeAtom.Span.End}}, nil
}

// parseFor parses `for binding in iterable (join '(' body ')' | sep '('
// body ')')? '{' body '}'`; the leading `for` atom has already been
// consumed. `sep` is a supplement alongside the `join` form the grammar
// documents: both insert something between items, but sep emits plain
// literal separator text while join's body is rendered with suppressible
// soft line breaks (see the evaluator).
func (p *parser) parseFor() (model.Node, error) {
	start, _ := p.cur.Peek()
	startPos := start.Span.Start

	bindingAtom, ok := p.cur.Next()
	if !ok || !isIdentAtomText(bindingAtom.Text) {
		sp := model.Span{}
		if ok {
			sp = bindingAtom.Span
		}
		return model.Node{}, &model.ParseError{Span: sp, Err: model.ErrMissingIn}
	}
	if _, err := p.expect("in", model.ErrMissingIn); err != nil {
		return model.Node{}, err
	}

	iterable, err := p.captureBare(func(a model.Atom) bool {
		return a.Text == "join" || a.Text == "sep"
	})
	if err != nil {
		return model.Node{}, err
	}

	node := model.Node{Kind: model.KindRepeat, Binding: bindingAtom.Text, Iterable: iterable}

	if a, ok := p.cur.Peek(); ok && (a.Text == "join" || a.Text == "sep") {
		isJoin := a.Text == "join"
		p.cur.Next()
		if _, err := p.expect("(", model.ErrUnexpectedEOF); err != nil {
			return model.Node{}, err
		}
		body, err := p.parseBody(")")
		if err != nil {
			return model.Node{}, err
		}
		if _, err := p.expect(")", model.ErrUnmatchedBracket); err != nil {
			return model.Node{}, err
		}
		if isJoin {
			node.Join = body
			node.HasJoin = true
		} else {
			node.Separator = body
		}
	}

	if _, err := p.expect("{", model.ErrUnexpectedEOF); err != nil {
		return model.Node{}, err
	}
	body, err := p.parseBody("}")
	if err != nil {
		return model.Node{}, err
	}
	closeAtom, err := p.expect("}", model.ErrUnexpectedEOF)
	if err != nil {
		return model.Node{}, err
	}
	node.Body = body
	node.Span = model.Span{Start: startPos, End: closeAtom.Span.End}
	return node, nil
}

// parseLet parses `let name = value`; the leading `let` atom has already
// been consumed.
func (p *parser) parseLet() (model.Node, error) {
	start, _ := p.cur.Peek()
	startPos := start.Span.Start

	nameAtom, ok := p.cur.Next()
	if !ok || !isIdentAtomText(nameAtom.Text) {
		sp := model.Span{}
		if ok {
			sp = nameAtom.Span
		}
		return model.Node{}, &model.ParseError{Span: sp, Err: model.ErrUnexpectedEOF}
	}
	if _, err := p.expect("=", model.ErrUnexpectedEOF); err != nil {
		return model.Node{}, err
	}
	value, err := p.captureBare(nil)
	if err != nil {
		return model.Node{}, err
	}
	return model.Node{Kind: model.KindLet, LetName: nameAtom.Text, LetValue: value, Span: model.Span{Start: startPos, End: value.Span.End}}, nil
}

// parseRef parses `ref expr`; the leading `ref` atom has already been
// consumed.
func (p *parser) parseRef() (model.Node, error) {
	start, _ := p.cur.Peek()
	startPos := start.Span.Start
	value, err := p.captureBare(nil)
	if err != nil {
		return model.Node{}, err
	}
	return model.Node{Kind: model.KindRef, Value: value, Span: model.Span{Start: startPos, End: value.Span.End}}, nil
}
