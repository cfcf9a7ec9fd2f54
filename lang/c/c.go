// Package c adapts C as a quasiquoter target: double-quoted string
// literals, and included headers collected as `#include <path>` (system)
// or `#include "path"` (local) lines — grounded on the reference
// generator's c.rs specialization.
package c

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/oxhq/quasigen/lang"
	"github.com/oxhq/quasigen/lang/escape"
)

func init() {
	lang.Register("c", New())
}

type Import struct {
	Path   string
	Item   string
	System bool
}

func Include(path, item string) Import { return Import{Path: path, Item: item} }

func IncludeSystem(path, item string) Import {
	return Import{Path: path, Item: item, System: true}
}

func (i Import) key() string { return i.Path + "\x00" + i.Item }

type adapter struct{}

func New() lang.Adapter { return adapter{} }

func (adapter) Name() string { return "c" }

func (adapter) DefaultConfig() lang.Config {
	return lang.Config{Indent: "    ", LineEnding: "\n"}
}

func (adapter) QuoteString(parts []lang.Part) (string, error) {
	var b strings.Builder
	b.WriteByte('"')
	for _, p := range parts {
		if p.IsValue {
			b.WriteString(escape.Basic(p.Value, '"'))
			continue
		}
		b.WriteString(escape.Basic(p.Literal, '"'))
	}
	b.WriteByte('"')
	return b.String(), nil
}

func (adapter) RegisterItem(item any, set *lang.ImportSet) error {
	im, ok := item.(Import)
	if !ok {
		return fmt.Errorf("c: RegisterItem expects c.Import, got %T", item)
	}
	set.Add(im.key(), im)
	return nil
}

func (adapter) RenderItem(item any, _ lang.Resolver) (string, error) {
	im, ok := item.(Import)
	if !ok {
		return "", fmt.Errorf("c: RenderItem expects c.Import, got %T", item)
	}
	return im.Item, nil
}

func (adapter) EmitImports(set *lang.ImportSet, sink io.Writer) error {
	type include struct {
		path   string
		system bool
	}
	seen := make(map[include]bool)
	var includes []include
	set.Each(func(_ string, item any) {
		im := item.(Import)
		inc := include{im.Path, im.System}
		if seen[inc] {
			return
		}
		seen[inc] = true
		includes = append(includes, inc)
	})
	if len(includes) == 0 {
		return nil
	}
	sort.Slice(includes, func(i, j int) bool { return includes[i].path < includes[j].path })
	for _, inc := range includes {
		if inc.system {
			if _, err := fmt.Fprintf(sink, "#include <%s>\n", inc.path); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(sink, "#include %q\n", inc.path); err != nil {
			return err
		}
	}
	_, err := io.WriteString(sink, "\n")
	return err
}
