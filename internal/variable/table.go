package variable

import "github.com/streamforge/filterx/internal/object"

// Table is the per-context scoped variable store (spec.md §3
// FilterXEvalContext "scoped variable table"). Message-tied lookups are
// O(1) on the handle (spec.md §4.2); floating variables live in a stack of
// scope frames so that nested blocks (e.g. loop bodies feeding a
// generator-function) can introduce local names without leaking them to
// the enclosing block, while DECLARED_FLOATING variables — declared once
// in an outer frame — keep their value across the inner frames' lifetime
// (spec.md §3 invariant ii).
type Table struct {
	messageTied map[Handle]*Variable
	frames      []map[Handle]*Variable
}

// NewTable creates a table with a single (root) floating scope, ready to
// bind message-tied variables as the tree touches them.
func NewTable() *Table {
	return &Table{
		messageTied: make(map[Handle]*Variable),
		frames:      []map[Handle]*Variable{make(map[Handle]*Variable)},
	}
}

// PushScope opens a nested floating scope, e.g. for a generator-function's
// loop body.
func (t *Table) PushScope() {
	t.frames = append(t.frames, make(map[Handle]*Variable))
}

// PopScope discards the innermost floating scope and every plain (not
// DeclaredFloating) variable it introduced. DeclaredFloating variables
// introduced by that scope move to the enclosing one.
func (t *Table) PopScope() {
	if len(t.frames) > 1 {
		inner := t.frames[len(t.frames)-1]
		t.frames = t.frames[:len(t.frames)-1]
		outer := t.frames[len(t.frames)-1]
		for h, v := range inner {
			if v.Kind == DeclaredFloating {
				outer[h] = v
			}
		}
	}
}

// lookupFrame finds the frame holding h, searching innermost-out.
func (t *Table) lookupFrame(h Handle) (map[Handle]*Variable, bool) {
	for i := len(t.frames) - 1; i >= 0; i-- {
		if _, ok := t.frames[i][h]; ok {
			return t.frames[i], true
		}
	}
	return nil, false
}

// Declare introduces a floating variable in the current scope. kind
// distinguishes a DeclaredFloating (kept by PopScope, which moves it to
// the enclosing frame) from a plain Floating slot (lives only in the
// frame it was declared in).
func (t *Table) Declare(h Handle, kind Kind) *Variable {
	if v, ok := t.lookupFrame(h); ok {
		return v[h]
	}
	v := &Variable{Handle: h, Kind: kind}
	t.frames[len(t.frames)-1][h] = v
	return v
}

// Get resolves h to its Variable, checking message-tied storage first and
// then the floating scope stack innermost-out. Reports false if the
// variable was never declared/interned in this table.
func (t *Table) Get(h Handle) (*Variable, bool) {
	if !h.IsFloating() {
		v, ok := t.messageTied[h]
		return v, ok
	}
	if frame, ok := t.lookupFrame(h); ok {
		return frame[h], true
	}
	return nil, false
}

// BindMessageTied registers the message-tied slot for h, backed by a
// value that the caller (typically a MessageValue resolver) produces —
// called the first time an expression touches that message field.
func (t *Table) BindMessageTied(h Handle, value object.FilterXObject) *Variable {
	if v, ok := t.messageTied[h]; ok {
		return v
	}
	v := &Variable{Handle: h, Kind: MessageTied, Value: value, Assigned: value != nil}
	t.messageTied[h] = v
	return v
}

// Reset clears every floating scope and message-tied binding, restoring
// the table to its just-created state — used between records when a
// Table is reused rather than reallocated (spec.md §4.2 "non-declared
// floatings are cleared each record").
func (t *Table) Reset() {
	t.messageTied = make(map[Handle]*Variable)
	t.frames = []map[Handle]*Variable{make(map[Handle]*Variable)}
}
