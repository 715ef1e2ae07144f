package cmd

import (
	"fmt"
	"sort"

	"github.com/streamforge/filterx/internal/expr"
	"github.com/streamforge/filterx/internal/funclib"
	"github.com/streamforge/filterx/internal/host"
	"github.com/streamforge/filterx/internal/object"
	"github.com/streamforge/filterx/internal/variable"
)

// exampleBuilder constructs a demonstration expression tree bound to the
// given message store, standing in for the tree an external parser would
// hand the evaluator (spec.md §6 — FilterX's actual configuration surface
// is expression source, not Go code).
type exampleBuilder func(dir *variable.Directory, store host.MessageStore) (expr.Expr, error)

var examples = map[string]exampleBuilder{
	"startswith": func(dir *variable.Directory, store host.MessageStore) (expr.Expr, error) {
		return funclib.NewCall(expr.Location{}, "startswith", []expr.Expr{
			fieldRef(dir, store, "MESSAGE"),
			expr.NewLiteral(expr.Location{}, object.String{Value: "GET "}),
		}, nil)
	},
	"includes": func(dir *variable.Directory, store host.MessageStore) (expr.Expr, error) {
		return funclib.NewCall(expr.Location{}, "includes", []expr.Expr{
			fieldRef(dir, store, "MESSAGE"),
			expr.NewLiteral(expr.Location{}, object.String{Value: "error"}),
		}, map[string]expr.Expr{
			"ignorecase": expr.NewLiteral(expr.Location{}, object.Boolean{Value: true}),
		})
	},
	"regexp_search": func(dir *variable.Directory, store host.MessageStore) (expr.Expr, error) {
		return funclib.NewCall(expr.Location{}, "regexp_search", []expr.Expr{
			fieldRef(dir, store, "MESSAGE"),
			expr.NewLiteral(expr.Location{}, object.String{Value: `(?<status>\d{3})`}),
		}, nil)
	},
	"compound": func(dir *variable.Directory, store host.MessageStore) (expr.Expr, error) {
		h := dir.InternFloating("x")
		ref := expr.NewVariableRef(expr.Location{}, h, "x")
		assign := expr.NewAssign(expr.Location{}, ref, expr.NewLiteral(expr.Location{}, object.Integer{Value: 1}))
		eq := expr.NewBinary(expr.Location{}, expr.OpEq, ref, expr.NewLiteral(expr.Location{}, object.Integer{Value: 1}))
		return expr.NewCompound(expr.Location{}, true, assign, eq), nil
	},
}

// fieldRef interns a message-tied variable handle bound to store's own
// field id for name, so the variable reads through to the same record
// field the store was constructed against.
func fieldRef(dir *variable.Directory, store host.MessageStore, name string) *expr.VariableRef {
	fieldID := store.Name(name)
	h := dir.InternMessageTied(name, fieldID)
	return expr.NewVariableRef(expr.Location{}, h, name)
}

// exampleNames returns every registered demonstration tree name, sorted.
func exampleNames() []string {
	names := make([]string, 0, len(examples))
	for n := range examples {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func buildExample(name string, dir *variable.Directory, store host.MessageStore) (expr.Expr, error) {
	b, ok := examples[name]
	if !ok {
		return nil, fmt.Errorf("unknown example %q (available: %v)", name, exampleNames())
	}
	return b(dir, store)
}
