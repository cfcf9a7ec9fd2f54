// Package javascript adapts JavaScript as a quasiquoter target:
// double-quoted string literals, and named imports grouped per module as
// `import { a, b } from "module";` — grounded on the reference
// generator's js.rs specialization.
package javascript

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/oxhq/quasigen/lang"
	"github.com/oxhq/quasigen/lang/escape"
)

func init() {
	lang.Register("javascript", New())
}

type Import struct {
	Module string
	Name   string
}

func Imported(module, name string) Import { return Import{Module: module, Name: name} }
func Local(name string) Import            { return Import{Name: name} }

func (i Import) key() string { return i.Module + "\x00" + i.Name }

type adapter struct{}

func New() lang.Adapter { return adapter{} }

func (adapter) Name() string { return "javascript" }

func (adapter) DefaultConfig() lang.Config {
	return lang.Config{Indent: "  ", LineEnding: "\n"}
}

func (adapter) QuoteString(parts []lang.Part) (string, error) {
	var b strings.Builder
	b.WriteByte('"')
	for _, p := range parts {
		if p.IsValue {
			b.WriteString(escape.WithControlCodes(p.Value, '"'))
			continue
		}
		b.WriteString(escape.WithControlCodes(p.Literal, '"'))
	}
	b.WriteByte('"')
	return b.String(), nil
}

func (adapter) RegisterItem(item any, set *lang.ImportSet) error {
	im, ok := item.(Import)
	if !ok {
		return fmt.Errorf("javascript: RegisterItem expects javascript.Import, got %T", item)
	}
	set.Add(im.key(), im)
	return nil
}

func (adapter) RenderItem(item any, _ lang.Resolver) (string, error) {
	im, ok := item.(Import)
	if !ok {
		return "", fmt.Errorf("javascript: RenderItem expects javascript.Import, got %T", item)
	}
	return im.Name, nil
}

func (adapter) EmitImports(set *lang.ImportSet, sink io.Writer) error {
	names := make(map[string]map[string]bool)
	var modules []string
	set.Each(func(_ string, item any) {
		im := item.(Import)
		if im.Module == "" {
			return
		}
		group, ok := names[im.Module]
		if !ok {
			group = make(map[string]bool)
			names[im.Module] = group
			modules = append(modules, im.Module)
		}
		group[im.Name] = true
	})
	if len(modules) == 0 {
		return nil
	}
	sort.Strings(modules)
	for _, mod := range modules {
		group := names[mod]
		sorted := make([]string, 0, len(group))
		for n := range group {
			sorted = append(sorted, n)
		}
		sort.Strings(sorted)
		if _, err := fmt.Fprintf(sink, "import { %s } from %q;\n", strings.Join(sorted, ", "), mod); err != nil {
			return err
		}
	}
	_, err := io.WriteString(sink, "\n")
	return err
}
