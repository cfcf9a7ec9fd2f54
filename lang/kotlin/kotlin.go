// Package kotlin adapts Kotlin as a quasiquoter target: double-quoted
// string literals, and imports collected as `import package.Name` lines
// (no semicolon) — grounded on the reference generator's kotlin/mod.rs
// specialization, including its name-collision rule: if two different
// packages would import the same simple name, only the first registered
// wins an import line; later occurrences still render qualified.
package kotlin

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/oxhq/quasigen/lang"
	"github.com/oxhq/quasigen/lang/escape"
)

func init() {
	lang.Register("kotlin", New())
}

type Import struct {
	Package string
	Name    string
}

func Imported(pkg, name string) Import { return Import{Package: pkg, Name: name} }
func Local(name string) Import         { return Import{Name: name} }

func (i Import) key() string { return i.Package + "\x00" + i.Name }

type adapter struct{}

func New() lang.Adapter { return adapter{} }

func (adapter) Name() string { return "kotlin" }

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
		return fmt.Errorf("kotlin: RegisterItem expects kotlin.Import, got %T", item)
	}
	set.Add(im.key(), im)
	return nil
}

func (adapter) RenderItem(item any, _ lang.Resolver) (string, error) {
	im, ok := item.(Import)
	if !ok {
		return "", fmt.Errorf("kotlin: RenderItem expects kotlin.Import, got %T", item)
	}
	return im.Name, nil
}

func (adapter) EmitImports(set *lang.ImportSet, sink io.Writer) error {
	var ordered []Import
	set.Each(func(_ string, item any) { ordered = append(ordered, item.(Import)) })

	firstPackageFor := make(map[string]string)
	var winners []Import
	for _, im := range ordered {
		if im.Package == "" {
			continue
		}
		if pkg, claimed := firstPackageFor[im.Name]; claimed {
			if pkg != im.Package {
				continue
			}
			continue
		}
		firstPackageFor[im.Name] = im.Package
		winners = append(winners, im)
	}
	if len(winners) == 0 {
		return nil
	}
	sort.Slice(winners, func(i, j int) bool {
		if winners[i].Package != winners[j].Package {
			return winners[i].Package < winners[j].Package
		}
		return winners[i].Name < winners[j].Name
	})
	for _, im := range winners {
		if _, err := fmt.Fprintf(sink, "import %s.%s\n", im.Package, im.Name); err != nil {
			return err
		}
	}
	_, err := io.WriteString(sink, "\n")
	return err
}
