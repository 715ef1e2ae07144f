package expr

import (
	"github.com/streamforge/filterx/internal/evalctx"
	"github.com/streamforge/filterx/internal/ferrors"
	"github.com/streamforge/filterx/internal/object"
)

// BinOp names a binary operator (spec.md §4.3 lists "unary/binary op" as
// a node subtype without enumerating the set — SPEC_FULL.md §"Operators"
// picks the ones needed to exercise truthy/repr/get_subscript end to end).
type BinOp string

const (
	OpEq  BinOp = "=="
	OpNe  BinOp = "!="
	OpLt  BinOp = "<"
	OpLe  BinOp = "<="
	OpGt  BinOp = ">"
	OpGe  BinOp = ">="
	OpAdd BinOp = "+"
	OpAnd BinOp = "and"
	OpOr  BinOp = "or"
)

// Binary is a two-operand expression. `and`/`or` short-circuit: the right
// operand is only evaluated when the left one did not already decide the
// result (spec.md §4's general short-circuit theme, extended here from
// compound statements to boolean operators).
type Binary struct {
	Base
	Op          BinOp
	Left, Right Expr
}

// NewBinary creates a binary operator node.
func NewBinary(loc Location, op BinOp, left, right Expr) *Binary {
	b := &Binary{Op: op, Left: left, Right: right}
	b.Location = loc
	return b
}

func (b *Binary) Init(cfg *Config) error {
	if err := InitChildren(cfg, []Expr{b.Left, b.Right}); err != nil {
		return err
	}
	b.RegisterStat(cfg, "binary:"+string(b.Op))
	return nil
}
func (b *Binary) Deinit(cfg *Config) {
	b.DeregisterStat()
	DeinitChildren(cfg, []Expr{b.Left, b.Right})
}
func (b *Binary) Free() { FreeChildren([]Expr{b.Left, b.Right}) }

func (b *Binary) Eval(ctx *evalctx.Context) (object.FilterXObject, error) {
	b.bump()

	left, err := b.Left.Eval(ctx)
	if err != nil {
		return nil, err
	}

	if b.Op == OpAnd {
		if !object.IsTruthy(left) {
			return object.Boolean{Value: false}, nil
		}
		right, err := b.Right.Eval(ctx)
		if err != nil {
			return nil, err
		}
		return object.Boolean{Value: object.IsTruthy(right)}, nil
	}
	if b.Op == OpOr {
		if object.IsTruthy(left) {
			return object.Boolean{Value: true}, nil
		}
		right, err := b.Right.Eval(ctx)
		if err != nil {
			return nil, err
		}
		return object.Boolean{Value: object.IsTruthy(right)}, nil
	}

	right, err := b.Right.Eval(ctx)
	if err != nil {
		return nil, err
	}

	left, err = object.ResolveOperand(left)
	if err != nil {
		return nil, ferrors.Evalf("resolving left operand: %v", err).At(b.Location.Line, b.Location.Column)
	}
	right, err = object.ResolveOperand(right)
	if err != nil {
		return nil, ferrors.Evalf("resolving right operand: %v", err).At(b.Location.Line, b.Location.Column)
	}

	switch b.Op {
	case OpEq:
		return object.Boolean{Value: object.Equal(left, right)}, nil
	case OpNe:
		return object.Boolean{Value: !object.Equal(left, right)}, nil
	case OpAdd:
		return evalAdd(left, right, b.Location)
	case OpLt, OpLe, OpGt, OpGe:
		return evalCompare(b.Op, left, right, b.Location)
	default:
		return nil, ferrors.Evalf("unsupported binary operator %q", b.Op).
			At(b.Location.Line, b.Location.Column)
	}
}

func evalAdd(left, right object.FilterXObject, loc Location) (object.FilterXObject, error) {
	switch l := left.(type) {
	case object.Integer:
		switch r := right.(type) {
		case object.Integer:
			return object.Integer{Value: l.Value + r.Value}, nil
		case object.Double:
			return object.Double{Value: float64(l.Value) + r.Value}, nil
		}
	case object.Double:
		switch r := right.(type) {
		case object.Integer:
			return object.Double{Value: l.Value + float64(r.Value)}, nil
		case object.Double:
			return object.Double{Value: l.Value + r.Value}, nil
		}
	case object.String:
		if r, ok := right.(object.String); ok {
			return object.String{Value: l.Value + r.Value}, nil
		}
	}
	return nil, ferrors.Evalf("operator + not defined between %s and %s", left.Type(), right.Type()).
		At(loc.Line, loc.Column)
}

func asFloat(o object.FilterXObject) (float64, bool) {
	switch v := o.(type) {
	case object.Integer:
		return float64(v.Value), true
	case object.Double:
		return v.Value, true
	}
	return 0, false
}

func evalCompare(op BinOp, left, right object.FilterXObject, loc Location) (object.FilterXObject, error) {
	if lf, ok := asFloat(left); ok {
		if rf, ok2 := asFloat(right); ok2 {
			return object.Boolean{Value: compareFloats(op, lf, rf)}, nil
		}
	}
	if ls, ok := left.(object.String); ok {
		if rs, ok2 := right.(object.String); ok2 {
			return object.Boolean{Value: compareStrings(op, ls.Value, rs.Value)}, nil
		}
	}
	return nil, ferrors.Evalf("operator %s not defined between %s and %s", op, left.Type(), right.Type()).
		At(loc.Line, loc.Column)
}

func compareFloats(op BinOp, l, r float64) bool {
	switch op {
	case OpLt:
		return l < r
	case OpLe:
		return l <= r
	case OpGt:
		return l > r
	case OpGe:
		return l >= r
	}
	return false
}

func compareStrings(op BinOp, l, r string) bool {
	switch op {
	case OpLt:
		return l < r
	case OpLe:
		return l <= r
	case OpGt:
		return l > r
	case OpGe:
		return l >= r
	}
	return false
}

// Not is the unary boolean negation.
type Not struct {
	Base
	Operand Expr
}

func NewNot(loc Location, operand Expr) *Not {
	n := &Not{Operand: operand}
	n.Location = loc
	return n
}

func (n *Not) Init(cfg *Config) error {
	if err := n.Operand.Init(cfg); err != nil {
		return err
	}
	n.RegisterStat(cfg, "not")
	return nil
}
func (n *Not) Deinit(cfg *Config) {
	n.DeregisterStat()
	n.Operand.Deinit(cfg)
}
func (n *Not) Free() { n.Operand.Free() }

func (n *Not) Eval(ctx *evalctx.Context) (object.FilterXObject, error) {
	n.bump()
	v, err := n.Operand.Eval(ctx)
	if err != nil {
		return nil, err
	}
	return object.Boolean{Value: !object.IsTruthy(v)}, nil
}

// Subscript reads target[key] (dict/list get_subscript, spec.md §4.1).
// Member access (`target.field`) is expressed by the same node with a
// Literal string Key.
type Subscript struct {
	Base
	Target, Key Expr
}

func NewSubscript(loc Location, target, key Expr) *Subscript {
	s := &Subscript{Target: target, Key: key}
	s.Location = loc
	return s
}

func (s *Subscript) Init(cfg *Config) error {
	if err := InitChildren(cfg, []Expr{s.Target, s.Key}); err != nil {
		return err
	}
	s.RegisterStat(cfg, "subscript")
	return nil
}
func (s *Subscript) Deinit(cfg *Config) {
	s.DeregisterStat()
	DeinitChildren(cfg, []Expr{s.Target, s.Key})
}
func (s *Subscript) Free() { FreeChildren([]Expr{s.Target, s.Key}) }

func (s *Subscript) Eval(ctx *evalctx.Context) (object.FilterXObject, error) {
	s.bump()
	target, err := s.Target.Eval(ctx)
	if err != nil {
		return nil, err
	}
	key, err := s.Key.Eval(ctx)
	if err != nil {
		return nil, err
	}
	target, err = object.ResolveOperand(target)
	if err != nil {
		return nil, ferrors.Evalf("resolving subscript target: %v", err).At(s.Location.Line, s.Location.Column)
	}
	key, err = object.ResolveOperand(key)
	if err != nil {
		return nil, ferrors.Evalf("resolving subscript key: %v", err).At(s.Location.Line, s.Location.Column)
	}
	sub, ok := target.(object.Subscriptable)
	if !ok {
		return nil, ferrors.Evalf("%s is not subscriptable", target.Type()).
			At(s.Location.Line, s.Location.Column)
	}
	v, err := sub.GetSubscript(key)
	if err != nil {
		return nil, ferrors.Evalf("subscript %s failed: %v", object.Repr(key), err).
			At(s.Location.Line, s.Location.Column)
	}
	return v, nil
}
