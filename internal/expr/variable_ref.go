package expr

import (
	"github.com/streamforge/filterx/internal/evalctx"
	"github.com/streamforge/filterx/internal/ferrors"
	"github.com/streamforge/filterx/internal/object"
	"github.com/streamforge/filterx/internal/variable"
)

// VariableRef reads a variable by handle (spec.md §3 FilterXVariable,
// §4.2 "Variable lookup in the evaluation context is O(1) on the
// handle"). Message-tied handles are resolved lazily against the bound
// message the first time they are read in a given context.
type VariableRef struct {
	Base
	Handle variable.Handle
	Name   string // for error messages / trace display only
	// Declared marks a floating variable introduced by an explicit
	// declaration (e.g. a generator-function's loop variable) so an
	// Assign targeting it persists across PushScope/PopScope cycles
	// instead of being cleared with its innermost frame.
	Declared bool
}

// NewVariableRef creates a reference to the variable addressed by h.
func NewVariableRef(loc Location, h variable.Handle, name string) *VariableRef {
	v := &VariableRef{Handle: h, Name: name}
	v.Location = loc
	return v
}

// NewDeclaredVariableRef creates a reference to a floating variable that
// should persist across nested scope frames once assigned.
func NewDeclaredVariableRef(loc Location, h variable.Handle, name string) *VariableRef {
	v := NewVariableRef(loc, h, name)
	v.Declared = true
	return v
}

func (v *VariableRef) Init(cfg *Config) error {
	v.RegisterStat(cfg, "variable-ref")
	return nil
}
func (v *VariableRef) Deinit(cfg *Config) { v.DeregisterStat() }

func (v *VariableRef) Eval(ctx *evalctx.Context) (object.FilterXObject, error) {
	v.bump()

	if slot, ok := ctx.Vars.Get(v.Handle); ok && slot.Live() {
		ctx.Trace("variable-ref", object.Repr(slot.Value), false)
		return slot.Value, nil
	}

	if v.Handle.IsFloating() {
		return nil, ferrors.Evalf("variable %q is not assigned", v.Name).
			At(v.Location.Line, v.Location.Column)
	}

	if len(ctx.Messages) == 0 {
		return nil, ferrors.Evalf("variable %q: no message bound to context", v.Name).
			At(v.Location.Line, v.Location.Column)
	}
	raw, logType, ok := ctx.Messages[0].GetValue(v.Handle.FieldID())
	if !ok {
		bound := ctx.Vars.BindMessageTied(v.Handle, object.Null{})
		ctx.Trace("variable-ref", "null", true)
		return bound.Value, nil
	}
	mv := object.NewMessageValue(raw, logType, object.DefaultResolver{})
	bound := ctx.Vars.BindMessageTied(v.Handle, mv)
	ctx.Trace("variable-ref", object.Repr(bound.Value), false)
	return bound.Value, nil
}
