package whitespace

import (
	"testing"

	"github.com/oxhq/quasigen/internal/model"
	"github.com/oxhq/quasigen/internal/token"
)

func atomAt(text string, line, col uint32) model.Atom {
	return model.Atom{
		Text: text,
		Span: model.Span{
			Start: model.Position{Line: line, Column: col},
			End:   model.Position{Line: line, Column: col + uint32(len(text))},
		},
	}
}

func kinds(s *token.Stream) []token.Kind {
	var ks []token.Kind
	for _, tok := range s.Tokens() {
		ks = append(ks, tok.Kind)
	}
	return ks
}

func sameKinds(got, want []token.Kind) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestAtomEmitsSpaceForColumnGapOnSameLine(t *testing.T) {
	s := token.NewStream()
	st := NewState()
	st.Atom(s, atomAt("fn", 1, 1), false)
	st.Atom(s, atomAt("test", 1, 6), false)

	want := []token.Kind{token.KindText, token.KindSpace, token.KindText}
	if got := kinds(s); !sameKinds(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestAtomEmitsNoSpaceWhenAdjacent(t *testing.T) {
	s := token.NewStream()
	st := NewState()
	st.Atom(s, atomAt("test", 1, 1), false)
	st.Atom(s, atomAt("(", 1, 5), false)

	want := []token.Kind{token.KindText, token.KindText}
	if got := kinds(s); !sameKinds(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestAtomEmitsPushAndIndentForDeeperLine(t *testing.T) {
	s := token.NewStream()
	st := NewState()
	st.Atom(s, atomAt("outer", 1, 1), false)
	st.Atom(s, atomAt("inner", 2, 5), false)

	want := []token.Kind{token.KindText, token.KindPush, token.KindIndent, token.KindText}
	if got := kinds(s); !sameKinds(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestAtomCollapsesBlankLines(t *testing.T) {
	s := token.NewStream()
	st := NewState()
	st.Atom(s, atomAt("a", 1, 1), false)
	st.Atom(s, atomAt("b", 4, 1), false)

	toks := s.Tokens()
	if len(toks) != 3 || toks[1].Kind != token.KindPush || !toks[1].Blank {
		t.Fatalf("expected a single blank-marked Push between two same-column lines, got %+v", toks)
	}
}

func TestAtomDedentPopsMultipleLevels(t *testing.T) {
	s := token.NewStream()
	st := NewState()
	st.Atom(s, atomAt("a", 1, 1), false)
	st.Atom(s, atomAt("b", 2, 5), false)
	st.Atom(s, atomAt("c", 3, 9), false)
	st.Atom(s, atomAt("d", 4, 1), false)

	var unindents int
	for _, tok := range s.Tokens() {
		if tok.Kind == token.KindUnindent {
			unindents++
		}
	}
	if unindents != 2 {
		t.Fatalf("expected 2 Unindents popping back to column 1, got %d (%v)", unindents, kinds(s))
	}
}

func TestSoftModeEmitsLineInsteadOfPush(t *testing.T) {
	s := token.NewStream()
	st := NewState()
	st.Atom(s, atomAt("a", 1, 1), true)
	st.Atom(s, atomAt("b", 2, 1), true)

	want := []token.Kind{token.KindText, token.KindLine, token.KindText}
	if got := kinds(s); !sameKinds(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestEnterExitNestedScopesColumnStack(t *testing.T) {
	s := token.NewStream()
	st := NewState()
	st.Atom(s, atomAt("outer", 1, 1), false)

	saved := st.EnterNested()
	st.Atom(s, atomAt("inner", 5, 20), false)
	st.ExitNested(s, saved)

	toks := s.Tokens()
	if len(toks) != 3 || toks[2].Kind != token.KindUnindent {
		t.Fatalf("expected a synthetic Unindent right after the nested content, got %+v", kinds(s))
	}
}
