package expr

import (
	"github.com/streamforge/filterx/internal/evalctx"
	"github.com/streamforge/filterx/internal/ferrors"
	"github.com/streamforge/filterx/internal/host"
	"github.com/streamforge/filterx/internal/object"
)

// Template renders a host template string against the context's bound
// messages (spec.md §4.6). The rendered text is wrapped in a
// scratch-buffer-backed MessageValue bracketed by a Mark/Reclaim pair, so
// a caller storing the result into a persistent container must Clone it
// first, exactly like a message-tied field read.
type Template struct {
	Base
	Source string

	engine host.TemplateEngine
}

// NewTemplate creates a template expression over a template-engine
// source string.
func NewTemplate(loc Location, source string) *Template {
	t := &Template{Source: source}
	t.Location = loc
	return t
}

func (t *Template) Init(cfg *Config) error {
	if cfg.Templates == nil {
		return ferrors.New(ferrors.CodeConfig, "template %q: no template engine configured", t.Source).
			At(t.Location.Line, t.Location.Column)
	}
	t.engine = cfg.Templates
	t.RegisterStat(cfg, "template")
	return nil
}

func (t *Template) Deinit(cfg *Config) {
	t.DeregisterStat()
	t.engine = nil
}

func (t *Template) Eval(ctx *evalctx.Context) (object.FilterXObject, error) {
	t.bump()

	depth := ctx.Mark()
	defer ctx.Reclaim(depth)

	text, logType, err := t.engine.Format(t.Source, ctx.Messages, ctx.Options)
	if err != nil {
		return nil, ferrors.Evalf("template %q: %v", t.Source, err).At(t.Location.Line, t.Location.Column)
	}
	mv := object.NewMessageValue([]byte(text), logType, object.DefaultResolver{})
	ctx.Trace("template", object.Repr(mv), false)
	return mv, nil
}
