// Command quasigen-lang-gen scaffolds a new lang.Adapter package: a
// starting point for adding a tenth target language without hand-writing
// the registration boilerplate every adapter repeats.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/spf13/cobra"
)

const adapterTemplate = `// Package {{.Package}} adapts {{.DisplayName}} as a quasiquoter target.
package {{.Package}}

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/oxhq/quasigen/lang"
	"github.com/oxhq/quasigen/lang/escape"
)

func init() {
	lang.Register("{{.Name}}", New())
}

// Import is a {{.DisplayName}} import-like item this adapter collects
// and emits. Replace its fields with whatever {{.DisplayName}}'s import
// syntax actually needs (path, alias, symbol name, ...).
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

// New builds the {{.DisplayName}} adapter.
func New() lang.Adapter { return adapter{} }

func (adapter) Name() string { return "{{.Name}}" }

func (adapter) DefaultConfig() lang.Config {
	return lang.Config{Indent: "{{.Indent}}", LineEnding: "\n"}
}

// QuoteString renders parts as a {{.DisplayName}} string literal.
// TODO: adjust escaping/interpolation syntax for {{.DisplayName}}.
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

// RegisterItem normalizes item into an Import and dedups it into set.
// TODO: reject or convert item types this adapter doesn't expect.
func (adapter) RegisterItem(item any, set *lang.ImportSet) error {
	imp, ok := item.(Import)
	if !ok {
		return fmt.Errorf("{{.Package}}: RegisterItem: unsupported item type %T", item)
	}
	set.Add(imp.key(), imp)
	return nil
}

// RenderItem produces the occurrence form of item at its point of use.
// TODO: honor resolver for qualified/aliased references if {{.DisplayName}}
// supports them.
func (adapter) RenderItem(item any, _ lang.Resolver) (string, error) {
	imp, ok := item.(Import)
	if !ok {
		return "", fmt.Errorf("{{.Package}}: RenderItem: unsupported item type %T", item)
	}
	return imp.Name, nil
}

// EmitImports writes the import block to sink.
// TODO: match {{.DisplayName}}'s real import statement syntax.
func (adapter) EmitImports(set *lang.ImportSet, sink io.Writer) error {
	var items []Import
	set.Each(func(_ string, item any) {
		items = append(items, item.(Import))
	})
	sort.Slice(items, func(i, j int) bool {
		return items[i].Path < items[j].Path
	})
	for _, imp := range items {
		if imp.Path == "" {
			continue
		}
		if _, err := fmt.Fprintf(sink, "import %q;\n", imp.Path); err != nil {
			return err
		}
	}
	return nil
}
`

func main() {
	var displayName, indent string

	root := &cobra.Command{
		Use:   "quasigen-lang-gen <name>",
		Short: "Scaffold a new quasigen lang.Adapter package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.ToLower(args[0])
			if displayName == "" {
				displayName = strings.ToUpper(name[:1]) + name[1:]
			}
			return scaffold(name, displayName, indent)
		},
	}

	root.Flags().StringVar(&displayName, "display", "", "Display name shown in doc comments (defaults to a capitalized name).")
	root.Flags().StringVar(&indent, "indent", "    ", "Default indent unit for the generated adapter.")

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func scaffold(name, displayName, indent string) error {
	data := map[string]any{
		"Package":     name,
		"Name":        name,
		"DisplayName": displayName,
		"Indent":      indent,
	}

	tmpl, err := template.New("adapter").Parse(adapterTemplate)
	if err != nil {
		return fmt.Errorf("parsing adapter template: %w", err)
	}

	dir := filepath.Join("lang", name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, name+".go")
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", path, err)
	}
	defer file.Close()

	if err := tmpl.Execute(file, data); err != nil {
		return fmt.Errorf("executing adapter template: %w", err)
	}

	fmt.Printf("Adapter skeleton created at %s\n", path)
	fmt.Println("Next steps:")
	fmt.Println("  1. Replace Import with whatever this language's import syntax needs")
	fmt.Println("  2. Fill in QuoteString's escaping/interpolation rules")
	fmt.Println("  3. Fill in EmitImports' grouping and ordering")
	fmt.Printf("  4. Add a blank import for lang/%s to cmd/quasigen/main.go\n", name)
	return nil
}
