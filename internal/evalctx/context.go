// Package evalctx implements the per-record evaluation environment
// (spec.md §3 FilterXEvalContext): bound messages, template options,
// scratch-buffer marks, the variable table, the error stack, and the
// cooperative DROP/DONE control modifier (spec.md §4.4/§5).
package evalctx

import (
	"github.com/google/uuid"

	"github.com/streamforge/filterx/internal/ferrors"
	"github.com/streamforge/filterx/internal/host"
	"github.com/streamforge/filterx/internal/variable"
)

// Modifier is the cooperative control-flow signal a compound expression
// observes before evaluating each child (spec.md §3/§4.4/§5).
type Modifier uint8

const (
	ModNone Modifier = iota
	ModDrop
	ModDone
)

// Context is created per record and is single-threaded for its lifetime
// (spec.md §5 "Concurrency & Resource Model" invariant). It is not safe to
// share across goroutines; callers evaluating many records in parallel
// create one Context per worker, typically reused via Reset between
// records to avoid per-record allocation.
type Context struct {
	Messages []host.MessageStore
	Options  host.TemplateOptions
	Vars     *variable.Table
	Dir      *variable.Directory

	modifier Modifier
	errors   []*ferrors.Error
	trace    []Event
	tracing  bool
	debug    bool

	scratchDepth int
	// traceID is this context's correlation id, generated on the first
	// TraceID call (github.com/google/uuid, a direct teacher dependency).
	// PushError and Trace do not attach it to frames or events.
	traceID string
}

// New creates a fresh evaluation context bound to msgs, using dir to
// resolve variable handles and a fresh variable.Table.
func New(dir *variable.Directory, msgs ...host.MessageStore) *Context {
	return &Context{
		Messages: msgs,
		Vars:     variable.NewTable(),
		Dir:      dir,
	}
}

// Reset clears a Context's per-record state (messages, variables,
// modifier, errors, trace events, scratch marks, trace id) so it can be
// reused for the next record without reallocating (spec.md §4.2
// "non-declared floatings are cleared each record"). The tracing and
// debug flags and Options are kept.
func (c *Context) Reset(msgs ...host.MessageStore) {
	c.Messages = msgs
	c.Vars.Reset()
	c.modifier = ModNone
	c.errors = c.errors[:0]
	c.trace = c.trace[:0]
	c.scratchDepth = 0
	c.traceID = ""
}

// SetModifier sets the cooperative control modifier (spec.md §5
// "Cancellation"). Once set to ModDrop or ModDone it is observed by the
// next Compound loop iteration; it is never cleared automatically.
func (c *Context) SetModifier(m Modifier) { c.modifier = m }

// Modifier reports the current control modifier.
func (c *Context) Modifier() Modifier { return c.modifier }

// PushError records an error frame on the context's error stack (spec.md
// §7). Only the outermost driver decides what to do about it — eval()
// itself just returns nil, err up the call chain.
func (c *Context) PushError(err *ferrors.Error) {
	c.errors = append(c.errors, err)
}

// Errors returns the accumulated error stack, outermost-call-first.
func (c *Context) Errors() []*ferrors.Error { return c.errors }

// EnableTracing turns on per-eval trace event recording (spec.md §7
// "every eval step emits a trace entry when tracing is enabled").
func (c *Context) EnableTracing(on bool) { c.tracing = on }

// EnableDebug sets the debug flag reported by Debug. No component in this
// module reads it, so it produces no debug logging of falsy compound
// results.
func (c *Context) EnableDebug(on bool) { c.debug = on }

func (c *Context) Tracing() bool { return c.tracing }
func (c *Context) Debug() bool   { return c.debug }

// TraceID lazily allocates and returns this context's trace correlation
// id.
func (c *Context) TraceID() string {
	if c.traceID == "" {
		c.traceID = uuid.NewString()
	}
	return c.traceID
}

// Event is one recorded trace entry (spec.md §3 eval_count / §7 tracing).
type Event struct {
	Node   string
	Result string
	Falsy  bool
}

// Trace appends an event when tracing is enabled; a no-op call otherwise,
// so call sites never need to branch on Tracing() themselves.
func (c *Context) Trace(node, result string, falsy bool) {
	if !c.tracing {
		return
	}
	c.trace = append(c.trace, Event{Node: node, Result: result, Falsy: falsy})
}

// Events returns the recorded trace, if tracing was enabled.
func (c *Context) Events() []Event { return c.trace }
