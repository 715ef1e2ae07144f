package expr

import (
	"github.com/streamforge/filterx/internal/evalctx"
	"github.com/streamforge/filterx/internal/ferrors"
	"github.com/streamforge/filterx/internal/object"
)

// Compound chains expressions into a filter statement block (spec.md
// §4.4). Each child's result is checked for truthiness unless the child
// opted out via IgnoreFalsyResult (assignments, declarations); the first
// falsy, non-ignored result bails out the whole compound with an
// EvalError. A DROP/DONE modifier set by an earlier child short-circuits
// the remaining children without that being treated as failure.
type Compound struct {
	Base
	Children   []Expr
	// ReturnLastResult makes Eval return the final child's value instead
	// of a fixed `true`, for compounds used in expression position
	// (spec.md §4.4's "last value" form) rather than statement position.
	ReturnLastResult bool
}

// NewCompound creates a compound expression over children.
func NewCompound(loc Location, returnLast bool, children ...Expr) *Compound {
	c := &Compound{Children: children, ReturnLastResult: returnLast}
	c.Location = loc
	return c
}

func (c *Compound) Init(cfg *Config) error {
	if err := InitChildren(cfg, c.Children); err != nil {
		return err
	}
	c.RegisterStat(cfg, "compound")
	return nil
}
func (c *Compound) Deinit(cfg *Config) {
	c.DeregisterStat()
	DeinitChildren(cfg, c.Children)
}
func (c *Compound) Free() { FreeChildren(c.Children) }

func (c *Compound) Optimize() Expr {
	for i, child := range c.Children {
		if replacement := child.Optimize(); replacement != nil {
			c.Children[i] = replacement
		}
	}
	return nil
}

func (c *Compound) Eval(ctx *evalctx.Context) (object.FilterXObject, error) {
	c.bump()

	var last object.FilterXObject
	for _, child := range c.Children {
		if mod := ctx.Modifier(); mod == evalctx.ModDrop || mod == evalctx.ModDone {
			ctx.Trace("compound", "short-circuited by drop/done", false)
			return object.Boolean{Value: true}, nil
		}

		res, err := child.Eval(ctx)
		if err != nil {
			return nil, err
		}
		last = res

		ok := child.IgnoreFalsyResult() || object.IsTruthy(res)
		ctx.Trace("compound-child", object.Repr(res), !ok)
		if !ok {
			return nil, ferrors.Evalf("bailing out due to a falsy expr: %s", object.Repr(res)).
				At(c.Location.Line, c.Location.Column)
		}
	}

	if c.ReturnLastResult && last != nil {
		return last, nil
	}
	return object.Boolean{Value: true}, nil
}
