package object

// Resolver is implemented by whatever owns a scratch-buffer-backed byte
// payload (typically the evaluation context) and knows how to render it as
// a primitive FilterXObject on first read. MessageValue defers to it so
// that the raw bytes are only decoded when the expression tree actually
// touches the field (spec.md §3 "lazily borrows raw message fields").
type Resolver interface {
	ResolveMessageValue(mv *MessageValue) (FilterXObject, error)
}

// MessageValue is the dynamically-resolved value described in spec.md §3:
// it borrows its payload from a scratch buffer and lazily decodes it into
// one of the other object kinds the first time a capability is used on it.
// Storing a MessageValue into a persistent container without first Clone
// is a bug in the caller — spec.md §4.1's "Borrowing rule" — so Clone
// forces resolution and returns the resolved, independently-owned object.
type MessageValue struct {
	Raw      []byte
	LogKind  LogType
	resolver Resolver
	resolved FilterXObject
}

// NewMessageValue creates a lazily-resolved value over raw bytes tagged
// with their host-reported LogType, to be decoded via resolver on first
// use.
func NewMessageValue(raw []byte, logKind LogType, resolver Resolver) *MessageValue {
	return &MessageValue{Raw: raw, LogKind: logKind, resolver: resolver}
}

func (mv *MessageValue) Type() Type   { return TypeMessage }
func (mv *MessageValue) Frozen() bool { return true }

// resolve decodes the borrowed payload exactly once and caches the result
// for the remainder of the evaluation.
func (mv *MessageValue) resolve() (FilterXObject, error) {
	if mv.resolved != nil {
		return mv.resolved, nil
	}
	v, err := mv.resolver.ResolveMessageValue(mv)
	if err != nil {
		return nil, err
	}
	mv.resolved = v
	return v, nil
}

func (mv *MessageValue) Truthy() bool {
	v, err := mv.resolve()
	if err != nil {
		return false
	}
	return IsTruthy(v)
}

func (mv *MessageValue) Repr() string {
	v, err := mv.resolve()
	if err != nil {
		return "<unresolved message value>"
	}
	return Repr(v)
}

func (mv *MessageValue) Marshal() (string, LogType) {
	v, err := mv.resolve()
	if err != nil {
		return "", mv.LogKind
	}
	if m, ok := v.(Marshaler); ok {
		return m.Marshal()
	}
	return Repr(v), mv.LogKind
}

// Clone resolves and deep-copies the underlying value, producing an object
// safe to store past the scratch buffer's lifetime (spec.md §4.1).
func (mv *MessageValue) Clone() FilterXObject {
	v, err := mv.resolve()
	if err != nil {
		return Null{}
	}
	return Clone(v)
}

func (mv *MessageValue) Len() int {
	v, err := mv.resolve()
	if err != nil {
		return -1
	}
	return Len(v)
}

// Resolve forces decoding of the lazily-resolved payload and returns the
// concrete object behind it. Exported so operator/subscript dispatch can
// see past the MessageValue wrapper before switching on concrete Go type
// (spec.md §3: a message-tied read always yields a MessageValue, whose own
// Type() is TypeMessage regardless of what the field actually decodes to).
func (mv *MessageValue) Resolve() (FilterXObject, error) {
	return mv.resolve()
}

// ResolveOperand returns o unchanged unless it is a *MessageValue, in which
// case it resolves the value the field lazily wraps. Any code that
// dispatches on an operand's concrete type or Type() — binary operators,
// subscript/member access — must call this first, or every message-tied
// variable read compares/adds/indexes as an opaque "message_value" instead
// of the string/int/dict it actually decodes to.
func ResolveOperand(o FilterXObject) (FilterXObject, error) {
	if mv, ok := o.(*MessageValue); ok {
		return mv.Resolve()
	}
	return o, nil
}
