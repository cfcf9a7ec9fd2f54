package eval

import (
	"sort"

	"github.com/hashicorp/hil"
	"github.com/hashicorp/hil/ast"
)

// ExtractVariables parses source as a HIL interpolation expression and
// returns the distinct variable names it references, sorted. It's a
// narrow, read-only helper (re-exported as quasigen.ExtractVariables) for
// tooling that wants to know what a captured host expression depends on without evaluating it — quasigen's own
// evaluator never calls this; Env implementations are free to use
// whatever expression language they like, HIL or otherwise.
func ExtractVariables(source string) ([]string, error) {
	tree, err := hil.Parse(source)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	visitor := func(n ast.Node) ast.Node {
		if va, ok := n.(*ast.VariableAccess); ok {
			seen[va.Name] = true
		}
		return n
	}
	tree.Accept(visitor)

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
