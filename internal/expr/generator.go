package expr

import (
	"github.com/streamforge/filterx/internal/evalctx"
	"github.com/streamforge/filterx/internal/object"
)

// GeneratorElem is one key/value pair contributed to a container literal
// (spec.md §4.5). Key is nil for list elements. Cloneable marks elements
// whose evaluated value is deep-copied (object.Clone) on every Generate
// before it is stored, so the container never aliases the object the
// element's expression returned.
type GeneratorElem struct {
	Key       Expr
	Value     Expr
	Cloneable bool
}

// Generator produces a container value (spec.md §4.5 "literal generators
// ... create_container then fill it"). CreateContainer allocates the
// (initially empty) container; Generate evaluates every element against
// ctx and fills it in. Function-style generators (regexp_search,
// spec.md §4.8) implement this interface too even though they live in
// the function-library package rather than here, since the protocol is
// identical.
type Generator interface {
	Expr
	CreateContainer() object.FilterXObject
	Generate(ctx *evalctx.Context, container object.FilterXObject) error
}

// ListGenerator evaluates a `[a, b, c]` literal.
type ListGenerator struct {
	Base
	Elems []GeneratorElem
}

func NewListGenerator(loc Location, elems ...GeneratorElem) *ListGenerator {
	g := &ListGenerator{Elems: elems}
	g.Location = loc
	return g
}

func (g *ListGenerator) children() []Expr {
	cs := make([]Expr, 0, len(g.Elems))
	for _, e := range g.Elems {
		cs = append(cs, e.Value)
	}
	return cs
}

func (g *ListGenerator) Init(cfg *Config) error {
	if err := InitChildren(cfg, g.children()); err != nil {
		return err
	}
	g.RegisterStat(cfg, "list-generator")
	return nil
}
func (g *ListGenerator) Deinit(cfg *Config) {
	g.DeregisterStat()
	DeinitChildren(cfg, g.children())
}
func (g *ListGenerator) Free() { FreeChildren(g.children()) }

func (g *ListGenerator) CreateContainer() object.FilterXObject { return object.NewList() }

func (g *ListGenerator) Generate(ctx *evalctx.Context, container object.FilterXObject) error {
	list := container.(*object.List)
	for _, e := range g.Elems {
		v, err := e.Value.Eval(ctx)
		if err != nil {
			return err
		}
		if e.Cloneable {
			v = object.Clone(v)
		}
		if err := list.Append(v); err != nil {
			return err
		}
	}
	return nil
}

func (g *ListGenerator) Eval(ctx *evalctx.Context) (object.FilterXObject, error) {
	g.bump()
	list := g.CreateContainer()
	if err := g.Generate(ctx, list); err != nil {
		return nil, err
	}
	ctx.Trace("list-generator", object.Repr(list), false)
	return list, nil
}

// Foreach exposes elements in declaration order for funclib's literal
// generator introspection (spec.md §4.7 startswith/endswith accepting a
// literal list of needles).
func (g *ListGenerator) Foreach(fn func(value Expr)) {
	for _, e := range g.Elems {
		fn(e.Value)
	}
}

// DictGenerator evaluates a `{"k": v, ...}` literal. Keys are evaluated
// expressions (spec.md §4.5 "keyed by evaluated keys"), not bare
// identifiers, and must yield a String at eval time.
type DictGenerator struct {
	Base
	Elems []GeneratorElem
}

func NewDictGenerator(loc Location, elems ...GeneratorElem) *DictGenerator {
	g := &DictGenerator{Elems: elems}
	g.Location = loc
	return g
}

func (g *DictGenerator) children() []Expr {
	cs := make([]Expr, 0, len(g.Elems)*2)
	for _, e := range g.Elems {
		if e.Key != nil {
			cs = append(cs, e.Key)
		}
		cs = append(cs, e.Value)
	}
	return cs
}

func (g *DictGenerator) Init(cfg *Config) error {
	if err := InitChildren(cfg, g.children()); err != nil {
		return err
	}
	g.RegisterStat(cfg, "dict-generator")
	return nil
}
func (g *DictGenerator) Deinit(cfg *Config) {
	g.DeregisterStat()
	DeinitChildren(cfg, g.children())
}
func (g *DictGenerator) Free() { FreeChildren(g.children()) }

func (g *DictGenerator) CreateContainer() object.FilterXObject { return object.NewDict() }

func (g *DictGenerator) Generate(ctx *evalctx.Context, container object.FilterXObject) error {
	dict := container.(*object.Dict)
	for _, e := range g.Elems {
		keyObj, err := e.Key.Eval(ctx)
		if err != nil {
			return err
		}
		key, ok := keyObj.(object.String)
		if !ok {
			return object.ErrKeyType
		}
		v, err := e.Value.Eval(ctx)
		if err != nil {
			return err
		}
		if e.Cloneable {
			v = object.Clone(v)
		}
		dict.Set(key.Value, v)
	}
	return nil
}

func (g *DictGenerator) Eval(ctx *evalctx.Context) (object.FilterXObject, error) {
	g.bump()
	dict := g.CreateContainer()
	if err := g.Generate(ctx, dict); err != nil {
		return nil, err
	}
	ctx.Trace("dict-generator", object.Repr(dict), false)
	return dict, nil
}

// Foreach exposes each element's key and value expressions (unevaluated)
// in declaration order, mirroring ListGenerator.Foreach for symmetry in
// funclib introspection helpers.
func (g *DictGenerator) Foreach(fn func(key, value Expr)) {
	for _, e := range g.Elems {
		fn(e.Key, e.Value)
	}
}
