// Package csharp adapts C# as a quasiquoter target: double-quoted string
// literals, and imports collected as `using Namespace;` lines — grounded
// on the reference generator's csharp/mod.rs specialization.
package csharp

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/oxhq/quasigen/lang"
	"github.com/oxhq/quasigen/lang/escape"
)

func init() {
	lang.Register("csharp", New())
}

type Import struct {
	Namespace string
	Name      string
}

func Imported(namespace, name string) Import { return Import{Namespace: namespace, Name: name} }
func Local(name string) Import               { return Import{Name: name} }

func (i Import) key() string { return i.Namespace + "\x00" + i.Name }

type adapter struct{}

func New() lang.Adapter { return adapter{} }

func (adapter) Name() string { return "csharp" }

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
		return fmt.Errorf("csharp: RegisterItem expects csharp.Import, got %T", item)
	}
	set.Add(im.key(), im)
	return nil
}

func (adapter) RenderItem(item any, _ lang.Resolver) (string, error) {
	im, ok := item.(Import)
	if !ok {
		return "", fmt.Errorf("csharp: RenderItem expects csharp.Import, got %T", item)
	}
	return im.Name, nil
}

func (adapter) EmitImports(set *lang.ImportSet, sink io.Writer) error {
	var namespaces []string
	seen := make(map[string]bool)
	set.Each(func(_ string, item any) {
		im := item.(Import)
		if im.Namespace == "" || seen[im.Namespace] {
			return
		}
		seen[im.Namespace] = true
		namespaces = append(namespaces, im.Namespace)
	})
	if len(namespaces) == 0 {
		return nil
	}
	sort.Strings(namespaces)
	for _, ns := range namespaces {
		if _, err := fmt.Fprintf(sink, "using %s;\n", ns); err != nil {
			return err
		}
	}
	_, err := io.WriteString(sink, "\n")
	return err
}
