// Package expr implements FilterX's expression tree (spec.md §3 FilterXExpr,
// §4.3): literals, operators, compound (sequencing) expressions, variable
// references, assignment targets, and literal container generators. Trees
// are built by an external parser (spec.md §6) and are immutable and
// shared after Init; this package only walks them.
package expr

import (
	"sync/atomic"

	"github.com/streamforge/filterx/internal/evalctx"
	"github.com/streamforge/filterx/internal/host"
	"github.com/streamforge/filterx/internal/object"
)

// Location is a source position, carried for error messages and (when
// debug is on) display text (spec.md §3 "display text (only when debug is
// on)").
type Location struct {
	Line   int
	Column int
}

// Config is passed to Init/Deinit; it carries the host collaborators an
// expression may need to register against at configuration time (spec.md
// §4.3 "register statistics counters", §4.8 pattern compilation).
type Config struct {
	Stats     host.StatsRegistry
	Regex     host.RegexEngine
	Templates host.TemplateEngine
	Debug     bool
}

// Expr is a node in the expression tree (spec.md §4.3 lifecycle contract).
// Eval may be called only between a successful Init and the matching
// Deinit.
type Expr interface {
	Init(cfg *Config) error
	Deinit(cfg *Config)
	// Optimize may return a replacement node (constant folding, literal
	// trivialization) or nil to keep the receiver as-is.
	Optimize() Expr
	Eval(ctx *evalctx.Context) (object.FilterXObject, error)
	Free()

	// IgnoreFalsyResult reports whether a Compound parent should treat
	// this child as successful even when its result is falsy (spec.md
	// §4.4 "statements may opt-out by setting ignore_falsy_result").
	IgnoreFalsyResult() bool
	SetIgnoreFalsyResult(bool)

	EvalCount() uint64
	Loc() Location
}

// Base implements the optional/no-op parts of Expr (spec.md §4.1's
// "composition of optional capability slots" — concrete nodes embed Base
// and only override what they need, rather than inheriting a full
// implementation).
type Base struct {
	Location          Location
	ignoreFalsy       bool
	suppressFromTrace bool
	evalCount         uint64

	statCounter    *uint64
	unregisterStat func()
}

func (b *Base) Init(*Config) error  { return nil }
func (b *Base) Deinit(*Config)      { b.DeregisterStat() }
func (b *Base) Optimize() Expr      { return nil }
func (b *Base) Free()               {}
func (b *Base) Loc() Location       { return b.Location }
func (b *Base) EvalCount() uint64   { return b.evalCount }
func (b *Base) bump() {
	b.evalCount++
	if b.statCounter != nil {
		atomic.AddUint64(b.statCounter, 1)
	}
}

// Bump increments the eval counter; exported so nodes defined outside
// this package (funclib's call nodes) can participate in the same
// eval_count bookkeeping (spec.md §3).
func (b *Base) Bump() { b.bump() }

// RegisterStat registers a process-wide eval counter for this node under
// kind (spec.md §4.3 "register statistics counters" at Init time, §6
// register_counter(key, labels, ptr)). A nil cfg.Stats is a no-op: tests
// commonly build a bare *Config, and statistics are observability, not a
// correctness dependency.
func (b *Base) RegisterStat(cfg *Config, kind string) {
	if cfg == nil || cfg.Stats == nil {
		return
	}
	counter, unregister := cfg.Stats.RegisterCounter("filterx_expr_eval_total", map[string]string{"kind": kind})
	b.statCounter = counter
	b.unregisterStat = unregister
}

// DeregisterStat releases the counter registered by RegisterStat, if any.
// Safe to call unconditionally from Deinit.
func (b *Base) DeregisterStat() {
	if b.unregisterStat != nil {
		b.unregisterStat()
		b.unregisterStat = nil
		b.statCounter = nil
	}
}
func (b *Base) IgnoreFalsyResult() bool     { return b.ignoreFalsy }
func (b *Base) SetIgnoreFalsyResult(v bool) { b.ignoreFalsy = v }
func (b *Base) SetSuppressFromTrace(v bool) { b.suppressFromTrace = v }
func (b *Base) SuppressFromTrace() bool     { return b.suppressFromTrace }

// InitChildren runs Init on each child in order; on the first failure it
// Deinits the already-initialized children in reverse and returns the
// error (spec.md §4.3 "Fails if any child fails; on failure, already-
// initialized children are deinit-ed in reverse").
func InitChildren(cfg *Config, children []Expr) error {
	for i, c := range children {
		if err := c.Init(cfg); err != nil {
			for j := i - 1; j >= 0; j-- {
				children[j].Deinit(cfg)
			}
			return err
		}
	}
	return nil
}

// DeinitChildren tears down children in reverse declaration order.
func DeinitChildren(cfg *Config, children []Expr) {
	for i := len(children) - 1; i >= 0; i-- {
		children[i].Deinit(cfg)
	}
}

// FreeChildren drops owned child references.
func FreeChildren(children []Expr) {
	for _, c := range children {
		c.Free()
	}
}
