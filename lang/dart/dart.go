// Package dart adapts Dart as a quasiquoter target: double-quoted string
// literals, and imports collected as `import "uri";` lines, optionally
// aliased — grounded on the reference generator's dart/mod.rs
// specialization.
package dart

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/oxhq/quasigen/lang"
	"github.com/oxhq/quasigen/lang/escape"
)

func init() {
	lang.Register("dart", New())
}

type Import struct {
	URI   string
	Name  string
	Alias string
}

func Imported(uri, name string) Import { return Import{URI: uri, Name: name} }
func Local(name string) Import         { return Import{Name: name} }

func (i Import) Aliased(alias string) Import {
	i.Alias = alias
	return i
}

func (i Import) key() string { return i.URI + "\x00" + i.Alias }

type adapter struct{}

func New() lang.Adapter { return adapter{} }

func (adapter) Name() string { return "dart" }

func (adapter) DefaultConfig() lang.Config {
	return lang.Config{Indent: "  ", LineEnding: "\n"}
}

func (adapter) QuoteString(parts []lang.Part) (string, error) {
	var b strings.Builder
	b.WriteByte('"')
	for _, p := range parts {
		if p.IsValue {
			// Dart natively supports `$name`/`${expr}` interpolation inside
			// string literals; splice the already-rendered expression in
			// using that form instead of closing and reopening the quote.
			b.WriteString("${")
			b.WriteString(p.Value)
			b.WriteByte('}')
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
		return fmt.Errorf("dart: RegisterItem expects dart.Import, got %T", item)
	}
	set.Add(im.key(), im)
	return nil
}

func (adapter) RenderItem(item any, _ lang.Resolver) (string, error) {
	im, ok := item.(Import)
	if !ok {
		return "", fmt.Errorf("dart: RenderItem expects dart.Import, got %T", item)
	}
	if im.Alias != "" {
		return im.Alias + "." + im.Name, nil
	}
	return im.Name, nil
}

func (adapter) EmitImports(set *lang.ImportSet, sink io.Writer) error {
	type use struct{ uri, alias string }
	seen := make(map[use]bool)
	var uses []use
	set.Each(func(_ string, item any) {
		im := item.(Import)
		if im.URI == "" {
			return
		}
		u := use{im.URI, im.Alias}
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
		if uses[i].uri != uses[j].uri {
			return uses[i].uri < uses[j].uri
		}
		return uses[i].alias < uses[j].alias
	})
	for _, u := range uses {
		if u.alias != "" {
			if _, err := fmt.Fprintf(sink, "import %q as %s;\n", u.uri, u.alias); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(sink, "import %q;\n", u.uri); err != nil {
			return err
		}
	}
	_, err := io.WriteString(sink, "\n")
	return err
}
