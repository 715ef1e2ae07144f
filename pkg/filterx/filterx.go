// Package filterx is the public embedding facade over the internal
// expression evaluator (spec.md §6 "FilterX is embedded"). A host binds
// a MessageStore (or several, for correlated records) and options into
// an evaluation Context, builds an expression tree with the internal/expr
// constructors and internal/funclib's registry (the real parser is
// external per spec.md §6), and evaluates it once per record.
//
// Grounded on funvibe-funxy/pkg/embed's New()/Eval() facade shape, but
// taking an already-built expr.Expr instead of source text.
package filterx

import (
	"github.com/streamforge/filterx/internal/evalctx"
	"github.com/streamforge/filterx/internal/expr"
	"github.com/streamforge/filterx/internal/ferrors"
	"github.com/streamforge/filterx/internal/host"
	"github.com/streamforge/filterx/internal/object"
	"github.com/streamforge/filterx/internal/variable"
)

// Filter owns one initialized expression tree, ready to be evaluated
// against any number of contexts sequentially (spec.md §5 "Scheduling":
// one context per worker, the tree itself is shared read-only).
type Filter struct {
	tree expr.Expr
	cfg  *expr.Config
}

// New initializes tree against cfg (spec.md §4.3 lifecycle contract) and
// returns a Filter ready to Eval. The caller owns tree's lifetime via
// Filter.Close.
func New(tree expr.Expr, cfg *expr.Config) (*Filter, error) {
	if err := tree.Init(cfg); err != nil {
		return nil, err
	}
	return &Filter{tree: tree, cfg: cfg}, nil
}

// Close deinitializes and frees the owned expression tree. Safe to call
// once; calling Eval afterward is a caller bug.
func (f *Filter) Close() {
	f.tree.Deinit(f.cfg)
	f.tree.Free()
}

// NewDirectory creates a fresh variable-handle interning directory, shared
// across every Context built for this Filter's trees.
func NewDirectory() *variable.Directory { return variable.NewDirectory() }

// NewContext creates a per-record evaluation context bound to msgs.
func NewContext(dir *variable.Directory, msgs ...host.MessageStore) *evalctx.Context {
	return evalctx.New(dir, msgs...)
}

// Result is the outcome of one Eval call.
type Result struct {
	// Value is the tree's return value; nil if evaluation failed.
	Value object.FilterXObject
	// Modifier is the context's control modifier after evaluation
	// (spec.md §5 "Cancellation": DROP/DONE are not errors).
	Modifier evalctx.Modifier
}

// Matched reports whether the record should be kept: no DROP modifier and
// a truthy result (the conventional FilterX "filter expression" reading).
func (r *Result) Matched() bool {
	if r == nil {
		return false
	}
	if r.Modifier == evalctx.ModDrop {
		return false
	}
	return object.IsTruthy(r.Value)
}

// Eval runs the tree once against ctx. A returned error is always an
// *ferrors.Error already pushed onto ctx's error stack (spec.md §7
// "Propagation"); cancellation via DROP/DONE is reported through
// Result.Modifier, never as an error.
func (f *Filter) Eval(ctx *evalctx.Context) (*Result, error) {
	v, err := f.tree.Eval(ctx)
	if err != nil {
		ferr, ok := err.(*ferrors.Error)
		if !ok {
			ferr = ferrors.New(ferrors.CodeEval, "evaluation failed").Wrap(err)
		}
		ctx.PushError(ferr)
		return nil, ferr
	}
	return &Result{Value: v, Modifier: ctx.Modifier()}, nil
}
