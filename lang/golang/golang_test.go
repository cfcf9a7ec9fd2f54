package golang_test

import (
	"strings"
	"testing"

	"github.com/oxhq/quasigen/lang"
	"github.com/oxhq/quasigen/lang/golang"
)

func TestQuoteStringEscapesControlCharacters(t *testing.T) {
	a := golang.New()
	got, err := a.QuoteString([]lang.Part{{Literal: "hello \n world"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := `"hello \n world"`; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderItemUsesLastPathSegment(t *testing.T) {
	a := golang.New()
	got, err := a.RenderItem(golang.Imported("fmt", "Println"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "fmt.Println" {
		t.Fatalf("got %q, want fmt.Println", got)
	}
}

func TestEmitImportsSingleUsesOneLiner(t *testing.T) {
	a := golang.New()
	set := lang.NewImportSet()
	if err := a.RegisterItem(golang.Imported("fmt", "Println"), set); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var buf strings.Builder
	if err := a.EmitImports(set, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := buf.String(), "import \"fmt\"\n\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEmitImportsMultipleUsesGroupedBlock(t *testing.T) {
	a := golang.New()
	set := lang.NewImportSet()
	_ = a.RegisterItem(golang.Imported("fmt", "Println"), set)
	_ = a.RegisterItem(golang.Imported("os", "Exit"), set)
	_ = a.RegisterItem(golang.Imported("fmt", "Sprintf"), set)

	var buf strings.Builder
	if err := a.EmitImports(set, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "import (\n\t\"fmt\"\n\t\"os\"\n)\n\n"
	if got := buf.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEmitImportsSkipsItemsWithoutPath(t *testing.T) {
	a := golang.New()
	set := lang.NewImportSet()
	_ = a.RegisterItem(golang.Local("len"), set)

	var buf strings.Builder
	if err := a.EmitImports(set, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := buf.String(); got != "" {
		t.Fatalf("expected no import block for a local item, got %q", got)
	}
}
