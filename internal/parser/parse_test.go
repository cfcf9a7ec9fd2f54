package parser

import (
	"testing"

	"github.com/oxhq/quasigen/internal/model"
)

func TestParseLiteralOnly(t *testing.T) {
	tpl, err := Parse("fn test() {}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tpl.Nodes) != 1 || tpl.Nodes[0].Kind != model.KindLiteral {
		t.Fatalf("expected single literal node, got %+v", tpl.Nodes)
	}
}

func TestParseShortInterp(t *testing.T) {
	tpl, err := Parse("let x = $value;")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var found bool
	for _, n := range tpl.Nodes {
		if n.Kind == model.KindInterp && n.Value.Source == "value" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an Interp node for 'value', got %+v", tpl.Nodes)
	}
}

func TestParseBracketedInterpCapturesExpr(t *testing.T) {
	tpl, err := Parse("$(user.name.to_upper())")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tpl.Nodes) != 1 || tpl.Nodes[0].Kind != model.KindInterp {
		t.Fatalf("expected a single Interp node, got %+v", tpl.Nodes)
	}
	if tpl.Nodes[0].Value.Source != "user.name.to_upper()" {
		t.Fatalf("unexpected captured expr: %q", tpl.Nodes[0].Value.Source)
	}
}

func TestParseRegister(t *testing.T) {
	tpl, err := Parse("$[hash_map]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tpl.Nodes) != 1 || tpl.Nodes[0].Kind != model.KindRegister {
		t.Fatalf("expected a single Register node, got %+v", tpl.Nodes)
	}
	if tpl.Nodes[0].Value.Source != "hash_map" {
		t.Fatalf("unexpected captured expr: %q", tpl.Nodes[0].Value.Source)
	}
}

func TestParseDollarEscapeRequiresJoint(t *testing.T) {
	tpl, err := Parse("$$literal")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tpl.Nodes[0].Kind != model.KindEscape {
		t.Fatalf("expected an Escape node first, got %+v", tpl.Nodes[0])
	}

	tpl, err = Parse("$ not a form")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tpl.Nodes[0].Kind != model.KindLiteral {
		t.Fatalf("expected a non-joint '$' to fall back to literal text, got %+v", tpl.Nodes[0])
	}
}

func TestParseConsecutiveDollarEscapesHaveAdjacentSpans(t *testing.T) {
	tpl, err := Parse("$$$$")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tpl.Nodes) != 2 {
		t.Fatalf("expected two Escape nodes, got %+v", tpl.Nodes)
	}
	first, second := tpl.Nodes[0], tpl.Nodes[1]
	if first.Kind != model.KindEscape || second.Kind != model.KindEscape {
		t.Fatalf("expected both nodes to be Escape, got %+v", tpl.Nodes)
	}
	if first.Span.End != second.Span.Start {
		t.Fatalf("expected the second escape's span to start where the first ends, got %+v then %+v", first.Span, second.Span)
	}
}

func TestParseIfElse(t *testing.T) {
	tpl, err := Parse(`$if x.is_some() { some } else { none }`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tpl.Nodes) != 1 || tpl.Nodes[0].Kind != model.KindIf {
		t.Fatalf("expected a single If node, got %+v", tpl.Nodes)
	}
	n := tpl.Nodes[0]
	if n.Cond.Source != "x.is_some()" {
		t.Fatalf("unexpected cond: %q", n.Cond.Source)
	}
	if !n.HasElse {
		t.Fatal("expected HasElse to be true")
	}
}

func TestParseIfWithoutElseStopsAtClosingBrace(t *testing.T) {
	tpl, err := Parse(`$if ok { yes }trailing`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tpl.Nodes) != 2 {
		t.Fatalf("expected the If node and trailing literal, got %+v", tpl.Nodes)
	}
	if tpl.Nodes[0].Kind != model.KindIf || tpl.Nodes[0].HasElse {
		t.Fatalf("unexpected If node: %+v", tpl.Nodes[0])
	}
	if tpl.Nodes[1].Kind != model.KindLiteral {
		t.Fatalf("expected trailing literal, got %+v", tpl.Nodes[1])
	}
}

func TestParseIfBodyToleratesNestedBraces(t *testing.T) {
	tpl, err := Parse(`$if ok { impl Foo { x } }`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n := tpl.Nodes[0]
	if n.Kind != model.KindIf {
		t.Fatalf("expected an If node, got %+v", n)
	}
	if len(n.Then) != 1 || n.Then[0].Kind != model.KindLiteral {
		t.Fatalf("expected nested braces to stay inside the then-body, got %+v", n.Then)
	}
}

func TestParseMatchWithMultiplePatternsAndBraceBody(t *testing.T) {
	tpl, err := Parse(`$match n { 0 | 1 => base case, n => $(n - 1) }`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tpl.Nodes) != 1 || tpl.Nodes[0].Kind != model.KindMatch {
		t.Fatalf("expected a single Match node, got %+v", tpl.Nodes)
	}
	arms := tpl.Nodes[0].Arms
	if len(arms) != 2 {
		t.Fatalf("expected 2 arms, got %d: %+v", len(arms), arms)
	}
	if len(arms[0].Patterns) != 2 || arms[0].Patterns[0] != "0" || arms[0].Patterns[1] != "1" {
		t.Fatalf("unexpected patterns for first arm: %+v", arms[0].Patterns)
	}
	if len(arms[1].Body) != 1 || arms[1].Body[0].Kind != model.KindInterp {
		t.Fatalf("expected bare arm body to become a single Interp node: %+v", arms[1].Body)
	}
}

func TestParseMatchMissingArrowIsError(t *testing.T) {
	_, err := Parse(`$match n { 0 -> zero }`)
	if err == nil {
		t.Fatal("expected an error for a missing '=>'")
	}
	var pe *model.ParseError
	if !asParseError(err, &pe) {
		t.Fatalf("expected a *model.ParseError, got %T: %v", err, err)
	}
}

func TestParseForWithJoin(t *testing.T) {
	tpl, err := Parse(`$for arg in args join (, ) { $arg }`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n := tpl.Nodes[0]
	if n.Kind != model.KindRepeat {
		t.Fatalf("expected a Repeat node, got %+v", n)
	}
	if n.Binding != "arg" {
		t.Fatalf("unexpected binding: %q", n.Binding)
	}
	if n.Iterable.Source != "args" {
		t.Fatalf("unexpected iterable: %q", n.Iterable.Source)
	}
	if !n.HasJoin || len(n.Join) == 0 {
		t.Fatalf("expected a non-empty join body, got %+v", n.Join)
	}
}

func TestParseForWithSep(t *testing.T) {
	tpl, err := Parse(`$for arg in args sep (; ) { $arg }`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n := tpl.Nodes[0]
	if n.HasJoin {
		t.Fatal("expected HasJoin to be false for a sep-form loop")
	}
	if len(n.Separator) == 0 {
		t.Fatalf("expected a non-empty separator body, got %+v", n.Separator)
	}
}

func TestParseForMissingInIsError(t *testing.T) {
	_, err := Parse(`$for arg args { $arg }`)
	if err == nil {
		t.Fatal("expected an error for a missing 'in'")
	}
}

func TestParseLet(t *testing.T) {
	tpl, err := Parse(`$let total = a + b`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n := tpl.Nodes[0]
	if n.Kind != model.KindLet || n.LetName != "total" {
		t.Fatalf("unexpected Let node: %+v", n)
	}
	if n.LetValue.Source != "a + b" {
		t.Fatalf("unexpected let value: %q", n.LetValue.Source)
	}
}

func TestParseRef(t *testing.T) {
	tpl, err := Parse("$ref renderedBlock")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n := tpl.Nodes[0]
	if n.Kind != model.KindRef || n.Value.Source != "renderedBlock" {
		t.Fatalf("unexpected Ref node: %+v", n)
	}
}

func TestParseQuotedStringWithInterpolation(t *testing.T) {
	tpl, err := Parse(`${"Hello $name, total is $(count + 1)"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n := tpl.Nodes[0]
	if n.Kind != model.KindQuotedString {
		t.Fatalf("expected a QuotedString node, got %+v", n)
	}
	var interps []string
	for _, part := range n.Parts {
		if part.Kind == model.KindInterp {
			interps = append(interps, part.Value.Source)
		}
	}
	if len(interps) != 2 || interps[0] != "name" || interps[1] != "count + 1" {
		t.Fatalf("unexpected interpolations: %v", interps)
	}
}

func TestParseUnmatchedBracketIsError(t *testing.T) {
	_, err := Parse("$(unterminated")
	if err == nil {
		t.Fatal("expected an error for an unterminated bracket")
	}
}

func asParseError(err error, target **model.ParseError) bool {
	pe, ok := err.(*model.ParseError)
	if ok {
		*target = pe
	}
	return ok
}
