package funclib

import (
	"fmt"
	"strconv"

	"github.com/streamforge/filterx/internal/evalctx"
	"github.com/streamforge/filterx/internal/expr"
	"github.com/streamforge/filterx/internal/ferrors"
	"github.com/streamforge/filterx/internal/host"
	"github.com/streamforge/filterx/internal/object"
)

type regexSearchBuiltin struct{}

func (regexSearchBuiltin) Name() string { return "regexp_search" }

func (regexSearchBuiltin) NewCall(loc expr.Location, args []expr.Expr, kwargs map[string]expr.Expr) (expr.Expr, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("regexp_search: expected 2 arguments (string, pattern), got %d", len(args))
	}
	patternLit, ok := args[1].(*expr.Literal)
	if !ok {
		return nil, fmt.Errorf("regexp_search: pattern must be a compile-time literal")
	}
	pattern, ok := patternLit.AsLiteralString()
	if !ok {
		return nil, fmt.Errorf("regexp_search: pattern must be a literal string")
	}

	keepZero, err := literalBoolArg(kwargs, "keep_zero", false)
	if err != nil {
		return nil, err
	}
	listMode, err := literalBoolArg(kwargs, "list_mode", false)
	if err != nil {
		return nil, err
	}

	call := &RegexSearchCall{
		Subject:  args[0],
		Pattern:  pattern,
		KeepZero: keepZero,
		ListMode: listMode,
	}
	call.Location = loc
	return call, nil
}

func literalBoolArg(kwargs map[string]expr.Expr, name string, def bool) (bool, error) {
	e, ok := kwargs[name]
	if !ok {
		return def, nil
	}
	lit, ok := e.(*expr.Literal)
	if !ok {
		return false, fmt.Errorf("regexp_search: %s must be a literal boolean", name)
	}
	b, ok := lit.Value.(object.Boolean)
	if !ok {
		return false, fmt.Errorf("regexp_search: %s must be a literal boolean", name)
	}
	return b.Value, nil
}

// RegexSearchCall implements regexp_search (spec.md §4.8): a
// generator-function whose pattern is compiled once, at Init, and whose
// Eval re-matches the (re-evaluated) subject on every call, filling
// either a list or a dict container depending on ListMode.
type RegexSearchCall struct {
	expr.Base
	Subject  expr.Expr
	Pattern  string
	KeepZero bool
	ListMode bool

	regex   host.RegexEngine
	compiled host.CompiledPattern
}

func (c *RegexSearchCall) Init(cfg *expr.Config) error {
	if cfg.Regex == nil {
		return ferrors.New(ferrors.CodeConfig, "regexp_search: no regex engine configured").
			At(c.Location.Line, c.Location.Column)
	}
	if err := c.Subject.Init(cfg); err != nil {
		return err
	}
	compiled, err := cfg.Regex.Compile(c.Pattern)
	if err != nil {
		c.Subject.Deinit(cfg)
		return ferrors.New(ferrors.CodeConfig, "regexp_search: pattern %q: %v", c.Pattern, err).
			At(c.Location.Line, c.Location.Column)
	}
	c.regex = cfg.Regex
	c.compiled = compiled
	c.RegisterStat(cfg, "regexp_search")
	return nil
}

func (c *RegexSearchCall) Deinit(cfg *expr.Config) {
	c.DeregisterStat()
	c.Subject.Deinit(cfg)
}
func (c *RegexSearchCall) Free() { c.Subject.Free() }

// CreateContainer allocates the (empty) result container, satisfying
// expr.Generator alongside literal dict/list generators.
func (c *RegexSearchCall) CreateContainer() object.FilterXObject {
	if c.ListMode {
		return object.NewList()
	}
	return object.NewDict()
}

// Generate matches Subject and fills container, implementing
// expr.Generator's write half.
func (c *RegexSearchCall) Generate(ctx *evalctx.Context, container object.FilterXObject) error {
	subj, err := c.Subject.Eval(ctx)
	if err != nil {
		return err
	}
	subject := object.Repr(subj)

	match, err := c.regex.Match(c.compiled, subject)
	if err != nil {
		return ferrors.Evalf("regexp_search: match failed: %v", err).At(c.Location.Line, c.Location.Column)
	}
	if match == nil {
		return nil
	}

	if c.ListMode {
		list := container.(*object.List)
		start := 1
		if c.KeepZero && len(match.Groups) > 1 {
			start = 0
		}
		for i := start; i < len(match.Groups); i++ {
			list.Append(object.String{Value: match.Groups[i]})
		}
		return nil
	}

	dict := container.(*object.Dict)
	for i, g := range match.Groups {
		if i == 0 && !(c.KeepZero && len(match.Groups) > 1) {
			continue
		}
		dict.Set(strconv.Itoa(i), object.String{Value: g})
	}
	// Named groups rename their numeric key to the name, last write wins
	// on collision (spec.md §9 open question (b), carried forward).
	for idx, name := range match.GroupNames {
		v, ok := dict.GetByIndexKey(idx)
		if !ok {
			continue
		}
		dict.Delete(strconv.Itoa(idx))
		dict.Set(name, v)
	}
	return nil
}

func (c *RegexSearchCall) Eval(ctx *evalctx.Context) (object.FilterXObject, error) {
	c.Bump()
	container := c.CreateContainer()
	if err := c.Generate(ctx, container); err != nil {
		return nil, err
	}
	ctx.Trace("regexp_search", object.Repr(container), false)
	return container, nil
}
