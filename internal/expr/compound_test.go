package expr

import (
	"testing"

	"github.com/streamforge/filterx/internal/evalctx"
	"github.com/streamforge/filterx/internal/object"
	"github.com/streamforge/filterx/internal/variable"
)

func lit(v object.FilterXObject) *Literal {
	return NewLiteral(Location{}, v)
}

func newTestCtx() *evalctx.Context {
	dir := variable.NewDirectory()
	return evalctx.New(dir)
}

func TestCompoundAllTruthyReturnsTrue(t *testing.T) {
	c := NewCompound(Location{}, false,
		lit(object.Boolean{Value: true}),
		lit(object.Integer{Value: 1}),
	)
	res, err := c.Eval(newTestCtx())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b, ok := res.(object.Boolean); !ok || !b.Value {
		t.Fatalf("expected true, got %v", res)
	}
}

func TestCompoundReturnLastResult(t *testing.T) {
	c := NewCompound(Location{}, true,
		lit(object.Boolean{Value: true}),
		lit(object.String{Value: "tail"}),
	)
	res, err := c.Eval(newTestCtx())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s, ok := res.(object.String)
	if !ok || s.Value != "tail" {
		t.Fatalf("expected last value 'tail', got %v", res)
	}
}

type countingExpr struct {
	Base
	calls *int
	value object.FilterXObject
}

func (c *countingExpr) Eval(ctx *evalctx.Context) (object.FilterXObject, error) {
	*c.calls++
	return c.value, nil
}

func TestCompoundShortCircuitsOnFalsyChild(t *testing.T) {
	calls := 0
	falsy := &countingExpr{calls: &calls, value: object.Boolean{Value: false}}
	after := &countingExpr{calls: &calls, value: object.Boolean{Value: true}}
	c := NewCompound(Location{}, false, lit(object.Boolean{Value: true}), falsy, after)

	_, err := c.Eval(newTestCtx())
	if err == nil {
		t.Fatalf("expected falsy bail-out error")
	}
	if calls != 1 {
		t.Fatalf("expected only the falsy child to run, got %d calls", calls)
	}
}

func TestCompoundDropModifierShortCircuits(t *testing.T) {
	calls := 0
	dropper := &countingExpr{calls: &calls, value: object.Boolean{Value: true}}
	after := &countingExpr{calls: &calls, value: object.Boolean{Value: true}}

	ctx := newTestCtx()
	c := NewCompound(Location{}, false, dropper)
	res, err := c.Eval(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b, ok := res.(object.Boolean); !ok || !b.Value {
		t.Fatalf("expected true before modifier set, got %v", res)
	}

	ctx.SetModifier(evalctx.ModDrop)
	c2 := NewCompound(Location{}, false, after)
	res2, err := c2.Eval(ctx)
	if err != nil {
		t.Fatalf("unexpected error after drop: %v", err)
	}
	if b, ok := res2.(object.Boolean); !ok || !b.Value {
		t.Fatalf("expected true on drop short-circuit, got %v", res2)
	}
	if calls != 1 {
		t.Fatalf("expected the post-drop child not to run, got %d calls", calls)
	}
}

func TestCompoundEmptyReturnsTrue(t *testing.T) {
	c := NewCompound(Location{}, false)
	res, err := c.Eval(newTestCtx())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b, ok := res.(object.Boolean); !ok || !b.Value {
		t.Fatalf("expected true for empty compound, got %v", res)
	}
}

func TestCompoundIgnoresFalsyWhenFlagged(t *testing.T) {
	assign := lit(object.Boolean{Value: false})
	assign.SetIgnoreFalsyResult(true)
	c := NewCompound(Location{}, false, assign, lit(object.Boolean{Value: true}))
	res, err := c.Eval(newTestCtx())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b, ok := res.(object.Boolean); !ok || !b.Value {
		t.Fatalf("expected true, got %v", res)
	}
}
