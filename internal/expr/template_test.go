package expr

import (
	"testing"

	"github.com/streamforge/filterx/internal/host"
	"github.com/streamforge/filterx/internal/object"
)

type fakeTemplateEngine struct {
	text    string
	logType object.LogType
	err     error
}

func (f *fakeTemplateEngine) Format(template string, messages []host.MessageStore, opts host.TemplateOptions) (string, object.LogType, error) {
	if f.err != nil {
		return "", "", f.err
	}
	return f.text, f.logType, nil
}

func TestTemplateRendersThroughEngine(t *testing.T) {
	tpl := NewTemplate(Location{}, "${MESSAGE}")
	engine := &fakeTemplateEngine{text: "hello", logType: object.LogString}
	if err := tpl.Init(&Config{Templates: engine}); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	res, err := tpl.Eval(newTestCtx())
	if err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	if object.Repr(res) != "hello" {
		t.Fatalf("expected 'hello', got %v", object.Repr(res))
	}
}

func TestTemplateInitFailsWithoutEngine(t *testing.T) {
	tpl := NewTemplate(Location{}, "${MESSAGE}")
	if err := tpl.Init(&Config{}); err == nil {
		t.Fatalf("expected init error without a configured template engine")
	}
}
