package lang_test

import (
	"io"
	"testing"

	"github.com/oxhq/quasigen/lang"
)

func TestRegisterPanicsOnNilAdapter(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic registering a nil adapter")
		}
	}()
	lang.Register("nil-adapter", nil)
}

func TestRegisterPanicsOnDuplicate(t *testing.T) {
	lang.Register("dup-test", stubDup{})
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate registration")
		}
	}()
	lang.Register("dup-test", stubDup{})
}

type stubDup struct{}

func (stubDup) Name() string                                  { return "dup-test" }
func (stubDup) DefaultConfig() lang.Config                    { return lang.Config{} }
func (stubDup) QuoteString([]lang.Part) (string, error)       { return "", nil }
func (stubDup) RegisterItem(any, *lang.ImportSet) error       { return nil }
func (stubDup) RenderItem(any, lang.Resolver) (string, error) { return "", nil }
func (stubDup) EmitImports(*lang.ImportSet, io.Writer) error  { return nil }

func TestNamesIncludesRegisteredAdapters(t *testing.T) {
	found := false
	for _, n := range lang.Names() {
		if n == "dup-test" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected Names() to include dup-test after registration")
	}
}
