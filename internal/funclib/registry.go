// Package funclib implements FilterX's function library (spec.md §2.5/§4.7/
// §4.8): host-provided callable expression nodes, registered by name at
// configuration time rather than hard-wired into the expression tree
// builder.
package funclib

import (
	"fmt"
	"sync"

	"github.com/streamforge/filterx/internal/expr"
)

// Builtin is a registered function's factory: given the call-site
// location and already-parsed argument expressions, it produces the
// expr.Expr node that implements the call. Keyword arguments (ignorecase,
// keep_zero, list_mode, ...) are passed separately since FilterX's
// external parser resolves them to names before the tree reaches this
// library.
type Builtin interface {
	Name() string
	NewCall(loc expr.Location, args []expr.Expr, kwargs map[string]expr.Expr) (expr.Expr, error)
}

// registry is the process-wide name→Builtin map (spec.md §2.5 "registered
// at configuration time"), guarded by its own lock per spec.md §5
// "Locking" — the same locked-global-map pattern the teacher uses for its
// extension builtin table.
var registry = struct {
	mu    sync.RWMutex
	funcs map[string]Builtin
}{funcs: make(map[string]Builtin)}

// Register adds b to the global registry. Re-registering the same name
// overwrites the previous entry, matching the teacher's "last registration
// wins" convention for config reloads.
func Register(b Builtin) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.funcs[b.Name()] = b
}

// Lookup resolves name to its Builtin.
func Lookup(name string) (Builtin, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	b, ok := registry.funcs[name]
	return b, ok
}

// Names returns every currently registered function name, in no defined
// order, for introspection.
func Names() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	names := make([]string, 0, len(registry.funcs))
	for name := range registry.funcs {
		names = append(names, name)
	}
	return names
}

// NewCall resolves name in the registry and builds its call node,
// returning a configuration error if the function is unknown.
func NewCall(loc expr.Location, name string, args []expr.Expr, kwargs map[string]expr.Expr) (expr.Expr, error) {
	b, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown function %q", name)
	}
	return b.NewCall(loc, args, kwargs)
}

func init() {
	Register(affixBuiltin{name: "startswith", mode: affixStartsWith})
	Register(affixBuiltin{name: "endswith", mode: affixEndsWith})
	Register(affixBuiltin{name: "includes", mode: affixIncludes})
	Register(regexSearchBuiltin{})
}
