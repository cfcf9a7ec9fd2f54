package format_test

import (
	"strings"
	"testing"

	"github.com/oxhq/quasigen/internal/format"
	"github.com/oxhq/quasigen/internal/token"
	"github.com/oxhq/quasigen/lang"
	"github.com/oxhq/quasigen/lang/golang"
)

func TestRenderTextSpaceAndIndentWithoutPush(t *testing.T) {
	s := token.NewStream()
	s.AppendText("func")
	s.AppendSpace()
	s.AppendText("main")
	s.AppendIndent()
	s.AppendText("body")
	s.AppendUnindent()

	var buf strings.Builder
	adapter := golang.New()
	if err := format.Render(s, lang.NewImportSet(), adapter, nil, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := buf.String(), "func mainbody"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderPushEmitsLineEndingAndIndent(t *testing.T) {
	s := token.NewStream()
	s.AppendText("a")
	s.AppendIndent()
	s.AppendPush()
	s.AppendText("b")
	s.AppendUnindent()

	var buf strings.Builder
	adapter := golang.New()
	if err := format.Render(s, lang.NewImportSet(), adapter, nil, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := buf.String(), "a\n\tb"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderBlankPushDoublesLineEnding(t *testing.T) {
	s := token.NewStream()
	s.AppendText("a")
	s.AppendPush()
	s.AppendPush()
	s.AppendText("b")

	var buf strings.Builder
	adapter := golang.New()
	if err := format.Render(s, lang.NewImportSet(), adapter, nil, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := buf.String(), "a\n\nb"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderUnindentNeverGoesNegative(t *testing.T) {
	s := token.NewStream()
	s.AppendUnindent()
	s.AppendUnindent()
	s.AppendText("a")
	s.AppendPush()
	s.AppendText("b")

	var buf strings.Builder
	adapter := golang.New()
	if err := format.Render(s, lang.NewImportSet(), adapter, nil, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := buf.String(), "a\nb"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderItemToken(t *testing.T) {
	s := token.NewStream()
	s.AppendItem(golang.Imported("fmt", "Println"))

	var buf strings.Builder
	adapter := golang.New()
	set := lang.NewImportSet()
	_ = adapter.RegisterItem(golang.Imported("fmt", "Println"), set)

	if err := format.Render(s, set, adapter, nil, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := buf.String(), "import \"fmt\"\n\nfmt.Println"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderIndentsWhenPushPrecedesIndent(t *testing.T) {
	// The real whitespace inferencer emits Push before Indent for a
	// deeper line (see internal/whitespace's
	// TestAtomEmitsPushAndIndentForDeeperLine), not the other order the
	// other tests in this file hand-build. The indent must still land on
	// the following Text even though it's only known after the Push.
	s := token.NewStream()
	s.AppendText("outer")
	s.AppendPush()
	s.AppendIndent()
	s.AppendText("inner")

	var buf strings.Builder
	adapter := golang.New()
	if err := format.Render(s, lang.NewImportSet(), adapter, nil, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := buf.String(), "outer\n\tinner"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderSuppressesLeadingAndTrailingLine(t *testing.T) {
	s := token.NewStream()
	s.AppendLine()
	s.AppendText("a")
	s.AppendLine()
	s.AppendText("b")
	s.AppendLine()

	var buf strings.Builder
	adapter := golang.New()
	if err := format.Render(s, lang.NewImportSet(), adapter, nil, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := buf.String(), "a\nb"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderCustomConfigOverridesIndent(t *testing.T) {
	s := token.NewStream()
	s.AppendText("a")
	s.AppendIndent()
	s.AppendPush()
	s.AppendText("b")

	var buf strings.Builder
	adapter := golang.New()
	cfg := &lang.Config{Indent: "  ", LineEnding: "\n"}
	if err := format.Render(s, lang.NewImportSet(), adapter, cfg, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := buf.String(), "a\n  b"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
