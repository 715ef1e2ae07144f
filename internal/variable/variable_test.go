package variable

import (
	"testing"

	"github.com/streamforge/filterx/internal/object"
)

func TestDirectoryInterningIsStable(t *testing.T) {
	d := NewDirectory()
	h1 := d.InternFloating("x")
	h2 := d.InternFloating("x")
	if h1 != h2 {
		t.Fatalf("interning the same name twice produced different handles: %v vs %v", h1, h2)
	}
	if !h1.IsFloating() {
		t.Fatalf("floating handle should have MSB set")
	}

	mh := d.InternMessageTied("MESSAGE", 7)
	if mh.IsFloating() {
		t.Fatalf("message-tied handle should not have MSB set")
	}
	if mh.FieldID() != 7 {
		t.Fatalf("FieldID = %d, want 7", mh.FieldID())
	}

	if name, ok := d.Name(h1); !ok || name != "x" {
		t.Fatalf("Name(h1) = %q, %v", name, ok)
	}
}

func TestVariableLiveAndUnset(t *testing.T) {
	v := &Variable{}
	if v.Live() {
		t.Fatalf("zero-value variable should not be live")
	}
	v.Set(object.Integer{Value: 1})
	if !v.Live() || !v.Assigned {
		t.Fatalf("expected live+assigned after Set")
	}
	gen := v.Generation
	v.Unset()
	if v.Live() {
		t.Fatalf("expected not live after Unset")
	}
	if v.Generation != gen+1 {
		t.Fatalf("Unset should bump generation: got %d want %d", v.Generation, gen+1)
	}
}

func TestTableScopingDeclaredVsPlainFloating(t *testing.T) {
	d := NewDirectory()
	declHandle := d.InternFloating("persistent")
	plainHandle := d.InternFloating("transient")

	tbl := NewTable()
	declared := tbl.Declare(declHandle, DeclaredFloating)
	declared.Set(object.Integer{Value: 1})

	tbl.PushScope()
	plain := tbl.Declare(plainHandle, Floating)
	plain.Set(object.Integer{Value: 2})

	if v, ok := tbl.Get(declHandle); !ok || v.Value.(object.Integer).Value != 1 {
		t.Fatalf("declared floating should be visible from nested scope")
	}

	tbl.PopScope()

	if _, ok := tbl.Get(plainHandle); ok {
		t.Fatalf("plain floating variable should not survive PopScope")
	}
	if v, ok := tbl.Get(declHandle); !ok || v.Value.(object.Integer).Value != 1 {
		t.Fatalf("declared floating should survive PopScope of an inner frame")
	}
}

func TestTableMessageTiedBindOnce(t *testing.T) {
	d := NewDirectory()
	h := d.InternMessageTied("MESSAGE", 1)

	tbl := NewTable()
	v1 := tbl.BindMessageTied(h, object.String{Value: "first"})
	v2 := tbl.BindMessageTied(h, object.String{Value: "second"})
	if v1 != v2 {
		t.Fatalf("BindMessageTied should return the same slot on repeat calls")
	}
	if v1.Value.(object.String).Value != "first" {
		t.Fatalf("second bind call should not overwrite the existing slot")
	}
}

func TestTableResetClearsEverything(t *testing.T) {
	d := NewDirectory()
	fh := d.InternFloating("x")
	mh := d.InternMessageTied("MESSAGE", 2)

	tbl := NewTable()
	tbl.Declare(fh, Floating).Set(object.Integer{Value: 1})
	tbl.BindMessageTied(mh, object.Integer{Value: 2})

	tbl.Reset()

	if _, ok := tbl.Get(fh); ok {
		t.Fatalf("floating variable should not survive Reset")
	}
	if _, ok := tbl.Get(mh); ok {
		t.Fatalf("message-tied variable should not survive Reset")
	}
}
