package c_test

import (
	"strings"
	"testing"

	"github.com/oxhq/quasigen/lang"
	c "github.com/oxhq/quasigen/lang/c"
)

func TestQuoteStringEscapesNewline(t *testing.T) {
	a := c.New()
	got, err := a.QuoteString([]lang.Part{{Literal: "hello \n world"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := `"hello \n world"`; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEmitImportsDistinguishesSystemAndLocalIncludes(t *testing.T) {
	a := c.New()
	set := lang.NewImportSet()
	_ = a.RegisterItem(c.IncludeSystem("stdio.h", "printf"), set)
	_ = a.RegisterItem(c.Include("myheader.h", "my_fn"), set)

	var buf strings.Builder
	if err := a.EmitImports(set, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "#include \"myheader.h\"\n#include <stdio.h>\n\n"; buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestRenderItemReturnsItemName(t *testing.T) {
	a := c.New()
	got, err := a.RenderItem(c.IncludeSystem("stdio.h", "printf"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "printf" {
		t.Fatalf("got %q, want printf", got)
	}
}
