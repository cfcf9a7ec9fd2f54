// Package rust adapts Rust as a quasiquoter target: double-quoted string
// literals, and imports collected as `use module::Name;` lines, skipping
// single-segment (crate-local) modules — grounded on the reference
// generator's rust.rs specialization.
package rust

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/oxhq/quasigen/lang"
	"github.com/oxhq/quasigen/lang/escape"
)

func init() {
	lang.Register("rust", New())
}

// Import is a Rust path reference, optionally aliased with `as`.
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

func (i Import) key() string { return i.Module + "\x00" + i.Name + "\x00" + i.Alias }

type adapter struct{}

func New() lang.Adapter { return adapter{} }

func (adapter) Name() string { return "rust" }

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
		return fmt.Errorf("rust: RegisterItem expects rust.Import, got %T", item)
	}
	set.Add(im.key(), im)
	return nil
}

func (adapter) RenderItem(item any, _ lang.Resolver) (string, error) {
	im, ok := item.(Import)
	if !ok {
		return "", fmt.Errorf("rust: RenderItem expects rust.Import, got %T", item)
	}
	if im.Alias != "" {
		return im.Alias + "::" + im.Name, nil
	}
	if im.Module == "" {
		return im.Name, nil
	}
	if strings.Count(im.Module, "::") == 0 {
		// Single-segment module: EmitImports skips these as crate-local, so
		// no `use` statement brings Name into scope on its own — the
		// occurrence has to stay qualified.
		return im.Module + "::" + im.Name, nil
	}
	// Module already names the full path EmitImports writes as `use
	// module;`, bringing Name directly into scope — the occurrence is bare.
	return im.Name, nil
}

func (adapter) EmitImports(set *lang.ImportSet, sink io.Writer) error {
	type use struct{ module, alias string }
	seen := make(map[use]bool)
	var uses []use
	set.Each(func(_ string, item any) {
		im := item.(Import)
		if im.Module == "" || strings.Count(im.Module, "::") == 0 {
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
	sort.Slice(uses, func(i, j int) bool { return uses[i].module < uses[j].module })
	for _, u := range uses {
		if u.alias != "" {
			if _, err := fmt.Fprintf(sink, "use %s as %s;\n", u.module, u.alias); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(sink, "use %s;\n", u.module); err != nil {
			return err
		}
	}
	_, err := io.WriteString(sink, "\n")
	return err
}
