// Package golang adapts Go as a quasiquoter target: double-quoted string
// literals, and imports collected as bare `"path"` lines keyed by the last
// path segment (grounded on the reference generator's go.rs specialization).
package golang

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/oxhq/quasigen/lang"
	"github.com/oxhq/quasigen/lang/escape"
)

func init() {
	lang.Register("go", New())
}

// Import is a Go package reference: an import path and the name used at
// the point of use. A bare Local import has no Path and renders as-is.
type Import struct {
	Path string
	Name string
}

// Imported builds a reference to name, imported from path.
func Imported(path, name string) Import { return Import{Path: path, Name: name} }

// Local builds a reference to a name with no import requirement.
func Local(name string) Import { return Import{Name: name} }

func (i Import) key() string { return i.Path + "\x00" + i.Name }

type adapter struct{}

// New returns the Go adapter.
func New() lang.Adapter { return adapter{} }

func (adapter) Name() string { return "go" }

func (adapter) DefaultConfig() lang.Config {
	return lang.Config{Indent: "\t", LineEnding: "\n"}
}

func (adapter) QuoteString(parts []lang.Part) (string, error) {
	var b strings.Builder
	b.WriteByte('"')
	for _, p := range parts {
		if p.IsValue {
			// Go string literals have no embedded interpolation syntax;
			// values must already be rendered expressions spliced in by
			// the caller outside the quoted literal. Represent them here
			// as a concatenation boundary the formatter can't see inside
			// a single token, so fold the rendered text in verbatim.
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
		return fmt.Errorf("golang: RegisterItem expects golang.Import, got %T", item)
	}
	set.Add(im.key(), im)
	return nil
}

func (adapter) RenderItem(item any, _ lang.Resolver) (string, error) {
	im, ok := item.(Import)
	if !ok {
		return "", fmt.Errorf("golang: RenderItem expects golang.Import, got %T", item)
	}
	if im.Path == "" {
		return im.Name, nil
	}
	pkg := im.Path
	if idx := strings.LastIndex(pkg, "/"); idx >= 0 {
		pkg = pkg[idx+1:]
	}
	return pkg + "." + im.Name, nil
}

func (adapter) EmitImports(set *lang.ImportSet, sink io.Writer) error {
	var paths []string
	seen := make(map[string]bool)
	set.Each(func(_ string, item any) {
		im := item.(Import)
		if im.Path == "" || seen[im.Path] {
			return
		}
		seen[im.Path] = true
		paths = append(paths, im.Path)
	})
	if len(paths) == 0 {
		return nil
	}
	sort.Strings(paths)
	if len(paths) == 1 {
		_, err := fmt.Fprintf(sink, "import %q\n\n", paths[0])
		return err
	}
	if _, err := io.WriteString(sink, "import (\n"); err != nil {
		return err
	}
	for _, p := range paths {
		if _, err := fmt.Fprintf(sink, "\t%q\n", p); err != nil {
			return err
		}
	}
	_, err := io.WriteString(sink, ")\n\n")
	return err
}
