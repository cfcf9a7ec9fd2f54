// Package python adapts Python as a quasiquoter target: double-quoted
// string literals, and imports collected as `import module` or
// `import module as alias` lines — grounded on the reference generator's
// python.rs specialization.
package python

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/oxhq/quasigen/lang"
	"github.com/oxhq/quasigen/lang/escape"
)

func init() {
	lang.Register("python", New())
}

type Import struct {
	Module string
	Name   string
	Alias  string
}

func Imported(module, name string) Import { return Import{Module: module, Name: name} }
func Local(name string) Import            { return Import{Name: name} }

func (i Import) Aliased(alias string) Import {
	i.Alias = alias
	return i
}

func (i Import) key() string { return i.Module + "\x00" + i.Alias }

type adapter struct{}

func New() lang.Adapter { return adapter{} }

func (adapter) Name() string { return "python" }

func (adapter) DefaultConfig() lang.Config {
	return lang.Config{Indent: "    ", LineEnding: "\n"}
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
		return fmt.Errorf("python: RegisterItem expects python.Import, got %T", item)
	}
	set.Add(im.key(), im)
	return nil
}

func (adapter) RenderItem(item any, _ lang.Resolver) (string, error) {
	im, ok := item.(Import)
	if !ok {
		return "", fmt.Errorf("python: RenderItem expects python.Import, got %T", item)
	}
	if im.Alias != "" {
		return im.Alias + "." + im.Name, nil
	}
	if im.Module == "" {
		return im.Name, nil
	}
	return im.Module + "." + im.Name, nil
}

func (adapter) EmitImports(set *lang.ImportSet, sink io.Writer) error {
	type use struct{ module, alias string }
	seen := make(map[use]bool)
	var uses []use
	set.Each(func(_ string, item any) {
		im := item.(Import)
		if im.Module == "" {
			return
		}
		u := use{im.Module, im.Alias}
		if seen[u] {
			return
		}
		seen[u] = true
		uses = append(uses, u)
	})
	if len(uses) == 0 {
		return nil
	}
	sort.Slice(uses, func(i, j int) bool {
		if uses[i].module != uses[j].module {
			return uses[i].module < uses[j].module
		}
		return uses[i].alias < uses[j].alias
	})
	for _, u := range uses {
		if u.alias != "" {
			if _, err := fmt.Fprintf(sink, "import %s as %s\n", u.module, u.alias); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(sink, "import %s\n", u.module); err != nil {
			return err
		}
	}
	_, err := io.WriteString(sink, "\n")
	return err
}
