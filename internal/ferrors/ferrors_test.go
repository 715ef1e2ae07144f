package ferrors

import (
	"errors"
	"testing"
)

func TestFluentBuildersAreNonMutating(t *testing.T) {
	base := Evalf("bad operand")
	located := base.At(3, 7)
	withCtx := located.Ctx("type", "integer")

	if base.line != 0 {
		t.Fatalf("At mutated the receiver")
	}
	if len(located.fields) != 0 {
		t.Fatalf("Ctx mutated the receiver")
	}
	if withCtx.Error() != "3:7: bad operand type=integer" {
		t.Fatalf("unexpected message: %q", withCtx.Error())
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := New(CodeResource, "scratch alloc failed").Wrap(cause)

	if !errors.Is(err, cause) {
		t.Fatalf("errors.Is should see through Wrap/Unwrap")
	}
}

func TestIsCode(t *testing.T) {
	err := New(CodeConfig, "bad pattern")
	if !IsCode(err, CodeConfig) {
		t.Fatalf("expected CodeConfig")
	}
	if IsCode(err, CodeEval) {
		t.Fatalf("did not expect CodeEval")
	}
}
