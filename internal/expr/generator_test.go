package expr

import (
	"testing"

	"github.com/streamforge/filterx/internal/object"
)

func TestListGeneratorOrderAndCount(t *testing.T) {
	g := NewListGenerator(Location{},
		GeneratorElem{Value: lit(object.Integer{Value: 1})},
		GeneratorElem{Value: lit(object.Integer{Value: 2})},
		GeneratorElem{Value: lit(object.Integer{Value: 3})},
	)
	res, err := g.Eval(newTestCtx())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	list := res.(*object.List)
	if list.Len() != 3 {
		t.Fatalf("expected 3 elements, got %d", list.Len())
	}
	for i, want := range []int64{1, 2, 3} {
		v, err := list.GetSubscript(object.Integer{Value: int64(i)})
		if err != nil {
			t.Fatalf("subscript %d: %v", i, err)
		}
		if iv, ok := v.(object.Integer); !ok || iv.Value != want {
			t.Fatalf("index %d: expected %d, got %v", i, want, v)
		}
	}
}

func TestListGeneratorCloneableElementsAreDistinct(t *testing.T) {
	shared := object.NewDict()
	shared.Set("a", object.Integer{Value: 1})

	sharedLit := NewLiteral(Location{}, shared)
	g := NewListGenerator(Location{},
		GeneratorElem{Value: sharedLit, Cloneable: true},
		GeneratorElem{Value: sharedLit, Cloneable: true},
	)
	res, err := g.Eval(newTestCtx())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	list := res.(*object.List)
	first, _ := list.GetSubscript(object.Integer{Value: 0})
	second, _ := list.GetSubscript(object.Integer{Value: 1})
	if first == second {
		t.Fatalf("expected distinct objects from cloneable elements")
	}
	firstDict := first.(*object.Dict)
	firstDict.Set("a", object.Integer{Value: 99})
	secondDict := second.(*object.Dict)
	v, _ := secondDict.GetSubscript(object.String{Value: "a"})
	if iv, ok := v.(object.Integer); !ok || iv.Value != 1 {
		t.Fatalf("expected second clone unaffected by mutation of first, got %v", v)
	}
}

func TestDictGeneratorEvaluatedKeyOrder(t *testing.T) {
	g := NewDictGenerator(Location{},
		GeneratorElem{Key: lit(object.String{Value: "first"}), Value: lit(object.Integer{Value: 1})},
		GeneratorElem{Key: lit(object.String{Value: "second"}), Value: lit(object.Integer{Value: 2})},
	)
	res, err := g.Eval(newTestCtx())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dict := res.(*object.Dict)
	if got := dict.Keys(); len(got) != 2 || got[0] != "first" || got[1] != "second" {
		t.Fatalf("expected keys in declaration order, got %v", got)
	}
}
