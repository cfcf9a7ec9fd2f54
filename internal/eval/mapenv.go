package eval

import (
	"fmt"

	"github.com/hashicorp/hil"
	"github.com/hashicorp/hil/ast"

	"github.com/oxhq/quasigen/internal/model"
)

// MapEnv is a convenience Env backed by a flat map of variable name to
// string value. Unlike ExtractVariables, which only pulls out bare
// identifier names, MapEnv actually evaluates the host expression through
// HIL's own interpreter, so interpolations like "${name}_suffix" resolve
// correctly, not just bare "$name" references.
//
// MapEnv has no flat-map equivalent for $match or $for: Match always
// reports no match and Iterate always reports no elements. Callers that
// need those constructs implement Env themselves.
type MapEnv map[string]string

// Resolve implements Env.
func (m MapEnv) Resolve(expr model.Expr) (Value, error) {
	// A bare name is looked up directly: HIL would read it as literal text.
	if v, ok := m[expr.Source]; ok {
		return Value{Text: v, Bool: v != "" && v != "false"}, nil
	}

	root, err := hil.Parse(expr.Source)
	if err != nil {
		return Value{}, fmt.Errorf("eval: parse %q: %w", expr.Source, err)
	}

	varMap := make(map[string]ast.Variable, len(m))
	for k, v := range m {
		varMap[k] = ast.Variable{Type: ast.TypeString, Value: v}
	}

	result, err := hil.Eval(root, &hil.EvalConfig{
		GlobalScope: &ast.BasicScope{VarMap: varMap},
	})
	if err != nil {
		return Value{}, fmt.Errorf("eval: resolve %q: %w", expr.Source, err)
	}

	text, ok := result.Value.(string)
	if !ok {
		text = fmt.Sprintf("%v", result.Value)
	}
	return Value{Text: text, Bool: text != "" && text != "false"}, nil
}

// Match implements Env. A flat variable map carries no pattern-matching
// information, so every scrutinee reports no match.
func (m MapEnv) Match(model.Expr, []string) (int, error) { return -1, nil }

// Iterate implements Env. A flat variable map carries no iterable
// collections, so every iterable reports zero elements.
func (m MapEnv) Iterate(model.Expr, string) ([]Env, error) { return nil, nil }
