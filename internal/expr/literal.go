package expr

import (
	"github.com/streamforge/filterx/internal/evalctx"
	"github.com/streamforge/filterx/internal/object"
)

// Literal is a constant value known at configuration time (spec.md §3
// "literals"). Primitive literals are frozen/immutable so Eval can return
// the same object every call without cloning.
type Literal struct {
	Base
	Value object.FilterXObject
}

// NewLiteral creates a literal expression node wrapping a constant value.
func NewLiteral(loc Location, v object.FilterXObject) *Literal {
	l := &Literal{Value: v}
	l.Location = loc
	return l
}

func (l *Literal) Init(cfg *Config) error {
	l.RegisterStat(cfg, "literal")
	return nil
}
func (l *Literal) Deinit(cfg *Config) { l.DeregisterStat() }

func (l *Literal) Eval(ctx *evalctx.Context) (object.FilterXObject, error) {
	l.bump()
	ctx.Trace("literal", object.Repr(l.Value), false)
	return l.Value, nil
}

// AsLiteralString reports whether this literal holds a string, and its
// value — used by funclib's affix functions to cache literal needles at
// Init time (spec.md §4.7).
func (l *Literal) AsLiteralString() (string, bool) {
	s, ok := l.Value.(object.String)
	if !ok {
		return "", false
	}
	return s.Value, true
}
