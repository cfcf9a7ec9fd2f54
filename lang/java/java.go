// Package java adapts Java as a quasiquoter target: double-quoted string
// literals with the \b/\f control escapes Java's grammar recognizes, and
// imports collected as `import package.Name;` lines, skipping java.lang —
// grounded on the reference generator's java/mod.rs specialization.
package java

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/oxhq/quasigen/lang"
	"github.com/oxhq/quasigen/lang/escape"
)

const javaLang = "java.lang"

func init() {
	lang.Register("java", New())
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

func (adapter) Name() string { return "java" }

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
		return fmt.Errorf("java: RegisterItem expects java.Import, got %T", item)
	}
	set.Add(im.key(), im)
	return nil
}

func (adapter) RenderItem(item any, _ lang.Resolver) (string, error) {
	im, ok := item.(Import)
	if !ok {
		return "", fmt.Errorf("java: RenderItem expects java.Import, got %T", item)
	}
	return im.Name, nil
}

func (adapter) EmitImports(set *lang.ImportSet, sink io.Writer) error {
	type line struct{ pkg, name string }
	seen := make(map[line]bool)
	var lines []line
	set.Each(func(_ string, item any) {
		im := item.(Import)
		if im.Package == "" || im.Package == javaLang {
			return
		}
		l := line{im.Package, im.Name}
		if seen[l] {
			return
		}
		seen[l] = true
		lines = append(lines, l)
	})
	if len(lines) == 0 {
		return nil
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].pkg != lines[j].pkg {
			return lines[i].pkg < lines[j].pkg
		}
		return lines[i].name < lines[j].name
	})
	for _, l := range lines {
		if _, err := fmt.Fprintf(sink, "import %s.%s;\n", l.pkg, l.name); err != nil {
			return err
		}
	}
	_, err := io.WriteString(sink, "\n")
	return err
}
