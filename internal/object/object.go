// Package object implements FilterX's polymorphic value universe: the
// capability-dispatched object model described in spec.md §3/§4.1.
// Objects carry no reference count; their memory is managed by Go's
// garbage collector.
package object

import "fmt"

// Type names every concrete FilterXObject carries. Kept as a distinct
// string type (rather than an int enum) so error messages and trace output
// never need a lookup table.
type Type string

const (
	TypeBoolean Type = "boolean"
	TypeInteger Type = "integer"
	TypeDouble  Type = "double"
	TypeString  Type = "string"
	TypeBytes   Type = "bytes"
	TypeNull    Type = "null"
	TypeDict    Type = "dict"
	TypeList    Type = "list"
	TypeMessage Type = "message_value"
)

// LogType is the typed-text-rendering tag carried by Marshal, mirroring the
// host message store's LogMessageValueType (spec.md §3 "marshal (typed text
// rendering with a LogMessageValueType tag)").
type LogType string

const (
	LogString   LogType = "string"
	LogInt      LogType = "int"
	LogDouble   LogType = "double"
	LogBool     LogType = "bool"
	LogBytes    LogType = "bytes"
	LogNull     LogType = "null"
	LogDict     LogType = "dict"
	LogList     LogType = "list"
	LogDatetime LogType = "datetime"
)

// FilterXObject is the universal value interface (spec.md §3). Every type
// implements the mandatory core; optional capabilities are exposed through
// interface assertions (Truthy, Reprer, Marshaler, Cloner, Lenner,
// Subscriptable, Appendable, Iterable) per spec.md §9's "tagged variant with
// a trait/interface boundary" guidance — there is no capability-table
// struct of function pointers, just narrow Go interfaces an object may or
// may not satisfy.
type FilterXObject interface {
	// Type identifies the concrete kind for dispatch and error messages.
	Type() Type
	// Frozen reports whether mutating capability calls must be rejected
	// (spec.md §3 invariant ii).
	Frozen() bool
}

// Truthy is implemented by objects with boolean-context semantics.
type Truthy interface {
	Truthy() bool
}

// Reprer renders a human/debug string form.
type Reprer interface {
	Repr() string
}

// Marshaler renders the typed-text form the host message store expects.
type Marshaler interface {
	Marshal() (text string, logType LogType)
}

// Cloner produces a deep, independent copy. Required before a
// scratch-borrowed or shared object may be stored into a longer-lived
// container (spec.md §4.1 "Borrowing rule").
type Cloner interface {
	Clone() FilterXObject
}

// Lenner reports container/string length.
type Lenner interface {
	Len() int
}

// Subscriptable is implemented by dict/list and exposes get/set/unset.
// SetSubscript takes the replacement by value and returns the object that
// should actually be adopted by the caller — the callee may perform a
// copy-on-write substitution (spec.md §4.1).
type Subscriptable interface {
	GetSubscript(key FilterXObject) (FilterXObject, error)
	SetSubscript(key FilterXObject, value FilterXObject) (FilterXObject, error)
	UnsetKey(key FilterXObject) error
}

// Appendable is implemented by list-like containers.
type Appendable interface {
	Append(value FilterXObject) error
}

// Iterable yields key/value pairs in container order (index→value for
// lists, stringkey→value for dicts).
type Iterable interface {
	Iterate(func(key, value FilterXObject) bool)
}

// IsTruthy evaluates o's boolean-context value; objects without a Truthy
// capability default to true, matching the teacher's permissive
// "non-boolean values are truthy unless they say otherwise" convention.
func IsTruthy(o FilterXObject) bool {
	if o == nil {
		return false
	}
	if t, ok := o.(Truthy); ok {
		return t.Truthy()
	}
	return true
}

// Repr renders o for debug/trace/error purposes, falling back to its type
// name when the object has no Reprer capability.
func Repr(o FilterXObject) string {
	if o == nil {
		return "<nil>"
	}
	if r, ok := o.(Reprer); ok {
		return r.Repr()
	}
	return fmt.Sprintf("<%s>", o.Type())
}

// Clone deep-copies o when it implements Cloner; otherwise o is returned
// unchanged (true for frozen immutable primitives, which are safe to
// share).
func Clone(o FilterXObject) FilterXObject {
	if o == nil {
		return nil
	}
	if c, ok := o.(Cloner); ok {
		return c.Clone()
	}
	return o
}

// Len reports o's length, or -1 when o has no Lenner capability.
func Len(o FilterXObject) int {
	if l, ok := o.(Lenner); ok {
		return l.Len()
	}
	return -1
}
