package expr

import (
	"testing"

	"github.com/streamforge/filterx/internal/evalctx"
	"github.com/streamforge/filterx/internal/host"
	"github.com/streamforge/filterx/internal/object"
	"github.com/streamforge/filterx/internal/variable"
)

// messageFieldRef builds a VariableRef bound to a field of a fresh
// JSONMessageStore, mirroring how cmd/filterxctl's examples wire a
// message-tied handle to the field a real host would report.
func messageFieldRef(dir *variable.Directory, store *host.JSONMessageStore, name string) *VariableRef {
	fieldID := store.Name(name)
	h := dir.InternMessageTied(name, fieldID)
	return NewVariableRef(Location{}, h, name)
}

func TestBinaryEqualResolvesMessageTiedOperand(t *testing.T) {
	store := host.NewJSONMessageStore(`{"MESSAGE":"hello"}`)
	dir := variable.NewDirectory()
	ref := messageFieldRef(dir, store, "MESSAGE")

	ctx := evalctx.New(dir, store)
	bin := NewBinary(Location{}, OpEq, ref, lit(object.String{Value: "hello"}))
	res, err := bin.Eval(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b, ok := res.(object.Boolean); !ok || !b.Value {
		t.Fatalf("expected $MESSAGE == \"hello\" to be true, got %v", res)
	}
}

func TestBinaryAddResolvesMessageTiedOperand(t *testing.T) {
	store := host.NewJSONMessageStore(`{"count":41}`)
	dir := variable.NewDirectory()
	ref := messageFieldRef(dir, store, "count")

	ctx := evalctx.New(dir, store)
	bin := NewBinary(Location{}, OpAdd, ref, lit(object.Integer{Value: 1}))
	res, err := bin.Eval(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if i, ok := res.(object.Integer); !ok || i.Value != 42 {
		t.Fatalf("expected $count + 1 == 42, got %v", res)
	}
}

func TestBinaryCompareResolvesMessageTiedOperand(t *testing.T) {
	store := host.NewJSONMessageStore(`{"count":5}`)
	dir := variable.NewDirectory()
	ref := messageFieldRef(dir, store, "count")

	ctx := evalctx.New(dir, store)
	bin := NewBinary(Location{}, OpLt, ref, lit(object.Integer{Value: 10}))
	res, err := bin.Eval(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b, ok := res.(object.Boolean); !ok || !b.Value {
		t.Fatalf("expected $count < 10 to be true, got %v", res)
	}
}

// dictResolver resolves any MessageValue straight to a fixed Dict,
// standing in for a host that reports a structured field directly rather
// than through JSONMessageStore's string/int/bool-only decoding.
type dictResolver struct{ dict *object.Dict }

func (r dictResolver) ResolveMessageValue(*object.MessageValue) (object.FilterXObject, error) {
	return r.dict, nil
}

// messageValueExpr evaluates to a fixed MessageValue, standing in for a
// VariableRef read of a message-tied field whose value the underlying
// store reports as structured data.
type messageValueExpr struct {
	Base
	mv *object.MessageValue
}

func (e *messageValueExpr) Eval(*evalctx.Context) (object.FilterXObject, error) {
	return e.mv, nil
}

func TestSubscriptResolvesMessageTiedTarget(t *testing.T) {
	dict := object.NewDict()
	dict.Set("key", object.String{Value: "value"})
	mv := object.NewMessageValue(nil, object.LogDict, dictResolver{dict: dict})

	sub := NewSubscript(Location{}, &messageValueExpr{mv: mv}, lit(object.String{Value: "key"}))
	res, err := sub.Eval(newTestCtx())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s, ok := res.(object.String); !ok || s.Value != "value" {
		t.Fatalf("expected dict.key == \"value\", got %v", res)
	}
}

func TestNotResolvesMessageTiedOperand(t *testing.T) {
	store := host.NewJSONMessageStore(`{"flag":false}`)
	dir := variable.NewDirectory()
	ref := messageFieldRef(dir, store, "flag")

	ctx := evalctx.New(dir, store)
	n := NewNot(Location{}, ref)
	res, err := n.Eval(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b, ok := res.(object.Boolean); !ok || !b.Value {
		t.Fatalf("expected not $flag to be true, got %v", res)
	}
}
