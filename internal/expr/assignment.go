package expr

import (
	"github.com/streamforge/filterx/internal/evalctx"
	"github.com/streamforge/filterx/internal/ferrors"
	"github.com/streamforge/filterx/internal/object"
	"github.com/streamforge/filterx/internal/variable"
)

// Assign implements `target = value` (SPEC_FULL.md's supplemented
// "assignment-target grammar" — spec.md describes variables and
// subscripts but leaves the write side implicit). Assignment always
// succeeds truthy-wise: IgnoreFalsyResult is set so a compound doesn't
// bail out just because the assigned value happens to be falsy.
type Assign struct {
	Base
	Target Expr
	Value  Expr
}

// NewAssign creates an assignment node. target must be a *VariableRef or
// a *Subscript chain rooted at one; anything else is a configuration
// error caught at Init.
func NewAssign(loc Location, target Expr, value Expr) *Assign {
	a := &Assign{Target: target, Value: value}
	a.Location = loc
	a.SetIgnoreFalsyResult(true)
	return a
}

func (a *Assign) Init(cfg *Config) error {
	if !isAssignable(a.Target) {
		return ferrors.New(ferrors.CodeConfig, "assignment target is not an lvalue").
			At(a.Location.Line, a.Location.Column)
	}
	if err := InitChildren(cfg, []Expr{a.Target, a.Value}); err != nil {
		return err
	}
	a.RegisterStat(cfg, "assign")
	return nil
}
func (a *Assign) Deinit(cfg *Config) {
	a.DeregisterStat()
	DeinitChildren(cfg, []Expr{a.Target, a.Value})
}
func (a *Assign) Free() { FreeChildren([]Expr{a.Target, a.Value}) }

func (a *Assign) Eval(ctx *evalctx.Context) (object.FilterXObject, error) {
	a.bump()
	v, err := a.Value.Eval(ctx)
	if err != nil {
		return nil, err
	}
	if err := assignTo(ctx, a.Target, object.Clone(v), a.Location); err != nil {
		return nil, err
	}
	ctx.Trace("assign", object.Repr(v), false)
	return object.Boolean{Value: true}, nil
}

// Unset implements `unset(target)`, clearing a variable or removing a
// dict/list key.
type Unset struct {
	Base
	Target Expr
}

func NewUnset(loc Location, target Expr) *Unset {
	u := &Unset{Target: target}
	u.Location = loc
	u.SetIgnoreFalsyResult(true)
	return u
}

func (u *Unset) Init(cfg *Config) error {
	if !isAssignable(u.Target) {
		return ferrors.New(ferrors.CodeConfig, "unset target is not an lvalue").
			At(u.Location.Line, u.Location.Column)
	}
	if err := u.Target.Init(cfg); err != nil {
		return err
	}
	u.RegisterStat(cfg, "unset")
	return nil
}
func (u *Unset) Deinit(cfg *Config) {
	u.DeregisterStat()
	u.Target.Deinit(cfg)
}
func (u *Unset) Free() { u.Target.Free() }

func (u *Unset) Eval(ctx *evalctx.Context) (object.FilterXObject, error) {
	u.bump()
	switch t := u.Target.(type) {
	case *VariableRef:
		if slot, ok := ctx.Vars.Get(t.Handle); ok {
			slot.Unset()
		}
	case *Subscript:
		container, err := t.Target.Eval(ctx)
		if err != nil {
			return nil, err
		}
		key, err := t.Key.Eval(ctx)
		if err != nil {
			return nil, err
		}
		container, err = object.ResolveOperand(container)
		if err != nil {
			return nil, ferrors.Evalf("resolving unset target: %v", err).At(u.Location.Line, u.Location.Column)
		}
		sub, ok := container.(object.Subscriptable)
		if !ok {
			return nil, ferrors.Evalf("%s does not support unset", container.Type()).
				At(u.Location.Line, u.Location.Column)
		}
		if err := sub.UnsetKey(key); err != nil {
			return nil, ferrors.Evalf("unset failed: %v", err).At(u.Location.Line, u.Location.Column)
		}
	default:
		return nil, ferrors.Evalf("unsupported unset target").At(u.Location.Line, u.Location.Column)
	}
	ctx.Trace("unset", "ok", false)
	return object.Boolean{Value: true}, nil
}

func isAssignable(e Expr) bool {
	switch t := e.(type) {
	case *VariableRef:
		return true
	case *Subscript:
		return isAssignable(t.Target)
	default:
		return false
	}
}

// assignTo writes value into target. Dict/List are reference types, so a
// nested `a.b.c = v` mutates the shared container in place once resolved
// down to its innermost subscript — there is no copy-on-write container
// substitution to propagate back up (spec.md §4.1's COW borrowing rule
// applies to scratch/shared object handles, not to in-place container
// mutation).
func assignTo(ctx *evalctx.Context, target Expr, value object.FilterXObject, loc Location) error {
	switch t := target.(type) {
	case *VariableRef:
		return bindVariable(ctx, t, value)
	case *Subscript:
		container, err := t.Target.Eval(ctx)
		if err != nil {
			return err
		}
		key, err := t.Key.Eval(ctx)
		if err != nil {
			return err
		}
		container, err = object.ResolveOperand(container)
		if err != nil {
			return ferrors.Evalf("resolving assignment target: %v", err).At(loc.Line, loc.Column)
		}
		sub, ok := container.(object.Subscriptable)
		if !ok {
			return ferrors.Evalf("%s is not subscriptable", container.Type()).At(loc.Line, loc.Column)
		}
		if _, err := sub.SetSubscript(key, value); err != nil {
			return ferrors.Evalf("assignment failed: %v", err).At(loc.Line, loc.Column)
		}
		return nil
	default:
		return ferrors.Evalf("unsupported assignment target").At(loc.Line, loc.Column)
	}
}

func bindVariable(ctx *evalctx.Context, ref *VariableRef, value object.FilterXObject) error {
	if ref.Handle.IsFloating() {
		kind := variable.Floating
		if ref.Declared {
			kind = variable.DeclaredFloating
		}
		slot := ctx.Vars.Declare(ref.Handle, kind)
		slot.Set(value)
		return nil
	}
	slot := ctx.Vars.BindMessageTied(ref.Handle, nil)
	slot.Set(value)
	return nil
}
