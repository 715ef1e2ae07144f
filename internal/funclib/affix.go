package funclib

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/streamforge/filterx/internal/evalctx"
	"github.com/streamforge/filterx/internal/expr"
	"github.com/streamforge/filterx/internal/ferrors"
	"github.com/streamforge/filterx/internal/object"
)

type affixMode int

const (
	affixStartsWith affixMode = iota
	affixEndsWith
	affixIncludes
)

func (m affixMode) predicate(haystack, needle string) bool {
	switch m {
	case affixStartsWith:
		return strings.HasPrefix(haystack, needle)
	case affixEndsWith:
		return strings.HasSuffix(haystack, needle)
	default:
		return strings.Contains(haystack, needle)
	}
}

// affixBuiltin registers startswith/endswith/includes (spec.md §4.7) under
// a single implementation differing only by predicate.
type affixBuiltin struct {
	name string
	mode affixMode
}

func (b affixBuiltin) Name() string { return b.name }

func (b affixBuiltin) NewCall(loc expr.Location, args []expr.Expr, kwargs map[string]expr.Expr) (expr.Expr, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("%s: expected 2 arguments (haystack, needle), got %d", b.name, len(args))
	}
	var ignoreCase bool
	if ic, ok := kwargs["ignorecase"]; ok {
		lit, ok := ic.(*expr.Literal)
		if !ok {
			return nil, fmt.Errorf("%s: ignorecase must be a literal boolean", b.name)
		}
		bv, ok := lit.Value.(object.Boolean)
		if !ok {
			return nil, fmt.Errorf("%s: ignorecase must be a literal boolean", b.name)
		}
		ignoreCase = bv.Value
	}

	var needles []expr.Expr
	if lg, ok := args[1].(*expr.ListGenerator); ok {
		lg.Foreach(func(v expr.Expr) { needles = append(needles, v) })
	} else {
		needles = []expr.Expr{args[1]}
	}

	call := &AffixCall{
		Haystack:   args[0],
		Needles:    needles,
		IgnoreCase: ignoreCase,
		mode:       b.mode,
		name:       b.name,
	}
	call.Location = loc
	return call, nil
}

// AffixCall implements startswith/endswith/includes. Literal-string needle
// expressions are pre-rendered and pre-folded at Init time (spec.md §4.7
// "cached at init time"); non-literal needles are re-evaluated on every
// call.
type AffixCall struct {
	expr.Base
	Haystack   expr.Expr
	Needles    []expr.Expr
	IgnoreCase bool

	mode affixMode
	name string

	cachedLiteral []string // cachedLiteral[i] is valid iff literalValid[i]
	literalValid  []bool
}

func (c *AffixCall) children() []expr.Expr {
	cs := make([]expr.Expr, 0, len(c.Needles)+1)
	cs = append(cs, c.Haystack)
	cs = append(cs, c.Needles...)
	return cs
}

func (c *AffixCall) Init(cfg *expr.Config) error {
	if err := expr.InitChildren(cfg, c.children()); err != nil {
		return err
	}
	c.RegisterStat(cfg, c.name)
	c.cachedLiteral = make([]string, len(c.Needles))
	c.literalValid = make([]bool, len(c.Needles))
	for i, n := range c.Needles {
		lit, ok := n.(*expr.Literal)
		if !ok {
			continue
		}
		s, ok := lit.AsLiteralString()
		if !ok {
			continue
		}
		if c.IgnoreCase {
			s = foldCase(s)
		}
		c.cachedLiteral[i] = s
		c.literalValid[i] = true
	}
	return nil
}

func (c *AffixCall) Deinit(cfg *expr.Config) {
	c.DeregisterStat()
	expr.DeinitChildren(cfg, c.children())
}
func (c *AffixCall) Free() { expr.FreeChildren(c.children()) }

func foldCase(s string) string { return strings.ToLower(s) }

func (c *AffixCall) Eval(ctx *evalctx.Context) (object.FilterXObject, error) {
	c.Bump()
	hv, err := c.Haystack.Eval(ctx)
	if err != nil {
		return nil, err
	}
	haystack := object.Repr(hv)
	if c.IgnoreCase {
		if !utf8.ValidString(haystack) {
			return nil, ferrors.Evalf("%s: haystack is not valid UTF-8 under ignorecase", c.name).
				At(c.Location.Line, c.Location.Column)
		}
		haystack = foldCase(haystack)
	}

	for i, n := range c.Needles {
		var needle string
		if c.literalValid[i] {
			needle = c.cachedLiteral[i]
		} else {
			nv, err := n.Eval(ctx)
			if err != nil {
				return nil, err
			}
			needle = object.Repr(nv)
			if c.IgnoreCase {
				needle = foldCase(needle)
			}
		}
		if needle == "" {
			return object.Boolean{Value: true}, nil
		}
		if len(needle) > len(haystack) {
			continue
		}
		if c.mode.predicate(haystack, needle) {
			return object.Boolean{Value: true}, nil
		}
	}
	return object.Boolean{Value: false}, nil
}
