package lang_test

import (
	"testing"

	"github.com/oxhq/quasigen/lang"
)

func TestImportSetAddSkipsDuplicateKey(t *testing.T) {
	s := lang.NewImportSet()
	if !s.Add("fmt", "a") {
		t.Fatal("expected first Add to report a new entry")
	}
	if s.Add("fmt", "b") {
		t.Fatal("expected duplicate key Add to report no new entry")
	}
	if s.Len() != 1 {
		t.Fatalf("expected one entry, got %d", s.Len())
	}
	var got any
	s.Each(func(key string, item any) { got = item })
	if got != "a" {
		t.Fatalf("expected the first registration to win, got %v", got)
	}
}

func TestImportSetMergePreservesOrderAndSkipsExisting(t *testing.T) {
	parent := lang.NewImportSet()
	parent.Add("fmt", "parent-fmt")

	child := lang.NewImportSet()
	child.Add("fmt", "child-fmt")
	child.Add("os", "child-os")
	child.Add("io", "child-io")

	parent.Merge(child)

	if parent.Len() != 3 {
		t.Fatalf("expected parent to gain the two new keys, got %d", parent.Len())
	}
	var keys []string
	var items []any
	parent.Each(func(key string, item any) {
		keys = append(keys, key)
		items = append(items, item)
	})
	if keys[0] != "fmt" || items[0] != "parent-fmt" {
		t.Fatalf("expected parent's own fmt registration to survive the merge, got %v=%v", keys[0], items[0])
	}
	if keys[1] != "os" || keys[2] != "io" {
		t.Fatalf("expected merged keys to preserve child's registration order, got %v", keys)
	}
}
