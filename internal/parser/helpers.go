package parser

import (
	"unicode/utf8"

	"github.com/oxhq/quasigen/internal/model"
)

func matchesAny(text string, candidates []string) bool {
	for _, c := range candidates {
		if text == c {
			return true
		}
	}
	return false
}

func isOpenBracket(t string) bool {
	return t == "(" || t == "[" || t == "{"
}

func isCloseBracket(t string) bool {
	return t == ")" || t == "]" || t == "}"
}

// isIdentAtomText reports whether an atom's text is shaped like an
// identifier (used to dispatch the short `$name` interpolation form and to
// recognize the `$if`/`$match`/`$for`/`$let`/`$for ... in`/`$ref` keywords,
// which lex to ordinary identifier atoms).
func isIdentAtomText(t string) bool {
	if t == "" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(t)
	return isIdentStart(r)
}

// spanOf returns the span covering a run of atoms, used to stamp a Literal
// node's overall position from its constituent atoms.
func spanOf(atoms []model.Atom) model.Span {
	if len(atoms) == 0 {
		return model.Span{}
	}
	return model.Span{Start: atoms[0].Span.Start, End: atoms[len(atoms)-1].Span.End}
}

// captureBalanced assumes the caller already consumed an opening bracket
// atom (`(` or `[`) and returns the verbatim source text up to, but not
// including, its matching close, consuming that close in the process.
// Bracket kinds are not distinguished from one another while tracking
// depth: any opener increments, any closer decrements. This is a deliberate
// simplification (see DESIGN.md) that handles correctly nested, even
// mixed-kind brackets, as long as the expression itself is well-formed.
func captureBalanced(cur cursorPeeker, src string) (model.Expr, error) {
	depth := 1
	haveFirst := false
	var startPos model.Position
	var startOff int
	var lastAtom model.Atom

	for {
		a, ok := cur.Peek()
		if !ok {
			sp := model.Span{}
			if haveFirst {
				sp = model.Span{Start: startPos, End: lastAtom.Span.End}
			}
			return model.Expr{}, &model.ParseError{Span: sp, Err: model.ErrUnmatchedBracket}
		}
		if isOpenBracket(a.Text) {
			depth++
		}
		if isCloseBracket(a.Text) {
			depth--
			if depth == 0 {
				cur.Next()
				if !haveFirst {
					return model.Expr{Source: "", Span: model.Span{Start: a.Span.Start, End: a.Span.Start}}, nil
				}
				return model.Expr{Source: src[startOff:lastAtom.End], Span: model.Span{Start: startPos, End: lastAtom.Span.End}}, nil
			}
		}
		if !haveFirst {
			startPos = a.Span.Start
			startOff = a.Start
			haveFirst = true
		}
		lastAtom = a
		cur.Next()
	}
}

// cursorPeeker is the minimal cursor surface captureBalanced needs; both
// *cursor.Cursor and the local cursor used to parse a quoted-string body
// satisfy it.
type cursorPeeker interface {
	Peek() (model.Atom, bool)
	Next() (model.Atom, bool)
}
