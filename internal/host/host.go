// Package host defines FilterX's external collaborators (spec.md §6):
// narrow interfaces for the log message store, template engine, regex
// engine, transport, and statistics registry. These are the daemon's
// components FilterX observes and calls into; FilterX never implements
// them for production use. The bundled implementations in this package
// (jsonstore.go, stdregex.go, simpletemplate.go, memstats.go) are
// reference test doubles used by this module's own tests and by
// cmd/filterxctl, not a claim that the real host is built this way.
package host

import "github.com/streamforge/filterx/internal/object"

// MessageStore is the host's key/value/typed-value pair store reachable
// by opaque field handles (spec.md §6). FilterX's message-tied variables
// resolve through this interface. The expression tree only reads it:
// assigning to a message-tied variable updates the evaluation context's
// variable table and does not call SetValue or UnsetValue.
type MessageStore interface {
	// GetValue returns the raw payload and its LogType for handle, or
	// ok=false if the field is absent from this message.
	GetValue(handle uint32) (raw []byte, logType object.LogType, ok bool)
	// SetValue stores raw under handle with the given LogType.
	SetValue(handle uint32, raw []byte, logType object.LogType)
	// UnsetValue removes handle from the message, if present.
	UnsetValue(handle uint32)
	// Name registers (or looks up) the field identifier for a field name,
	// mirroring spec.md §6 "name → handle registration".
	Name(name string) uint32
}

// TemplateOptions carries the rendering options the template engine needs
// (time zone, escaping mode, etc.) — left opaque to FilterX itself, which
// only threads it through to Format (spec.md §4.6).
type TemplateOptions struct {
	TimeZone string
	Escape   bool
}

// TemplateEngine produces a textual (or typed) rendering of a message
// under options (spec.md §6 "format_value_and_type_with_context").
type TemplateEngine interface {
	Format(template string, messages []MessageStore, opts TemplateOptions) (text string, logType object.LogType, err error)
}

// RegexMatch is the result of a successful RegexEngine.Match call: the
// whole match plus any capture groups, with names for those that are
// named captures (spec.md §6 NAMETABLE/NAMEENTRYSIZE/NAMECOUNT
// introspection, surfaced here as a plain Go slice/map instead of the raw
// PCRE2 ovector format).
type RegexMatch struct {
	Groups     []string // Groups[0] is the whole match; Groups[i] may be "" if group i did not participate.
	GroupNames map[int]string
}

// CompiledPattern is an opaque handle to a compiled pattern, returned by
// RegexEngine.Compile.
type CompiledPattern interface{}

// RegexEngine is the PCRE2-compatible regex binding of spec.md §6/§4.9.
// pattern compilation is expected to happen once, at configuration time;
// Match is called on the hot path.
type RegexEngine interface {
	Compile(pattern string) (CompiledPattern, error)
	Match(code CompiledPattern, subject string) (*RegexMatch, error)
}

// StatsRegistry is the process-wide counter registry of spec.md §6,
// guarded by its own internal lock on the host side; FilterX only ever
// registers counters at init() and unregisters them at deinit().
type StatsRegistry interface {
	RegisterCounter(key string, labels map[string]string) (counter *uint64, unregister func())
}
