package object

import (
	"fmt"
	"strconv"
)

// Null is FilterX's unit value: an unset variable, a missing key, the
// result of an expression with no useful value.
type Null struct{}

func (Null) Type() Type          { return TypeNull }
func (Null) Frozen() bool        { return true }
func (Null) Truthy() bool        { return false }
func (Null) Repr() string        { return "null" }
func (Null) Clone() FilterXObject { return Null{} }
func (Null) Marshal() (string, LogType) { return "", LogNull }

// Boolean wraps a bool.
type Boolean struct{ Value bool }

func (Boolean) Type() Type   { return TypeBoolean }
func (Boolean) Frozen() bool { return true }
func (b Boolean) Truthy() bool { return b.Value }
func (b Boolean) Repr() string {
	if b.Value {
		return "true"
	}
	return "false"
}
func (b Boolean) Clone() FilterXObject { return b }
func (b Boolean) Marshal() (string, LogType) {
	return b.Repr(), LogBool
}

// Integer wraps an int64.
type Integer struct{ Value int64 }

func (Integer) Type() Type   { return TypeInteger }
func (Integer) Frozen() bool { return true }
func (i Integer) Truthy() bool { return i.Value != 0 }
func (i Integer) Repr() string { return strconv.FormatInt(i.Value, 10) }
func (i Integer) Clone() FilterXObject { return i }
func (i Integer) Marshal() (string, LogType) {
	return i.Repr(), LogInt
}

// Double wraps a float64.
type Double struct{ Value float64 }

func (Double) Type() Type   { return TypeDouble }
func (Double) Frozen() bool { return true }
func (d Double) Truthy() bool { return d.Value != 0 }
func (d Double) Repr() string { return strconv.FormatFloat(d.Value, 'g', -1, 64) }
func (d Double) Clone() FilterXObject { return d }
func (d Double) Marshal() (string, LogType) {
	return d.Repr(), LogDouble
}

// String wraps a resident (not scratch-backed) Go string. Immutable and
// safe to share without cloning (spec.md §4.1).
type String struct{ Value string }

func (String) Type() Type   { return TypeString }
func (String) Frozen() bool { return true }
func (s String) Truthy() bool { return s.Value != "" }
func (s String) Repr() string { return s.Value }
func (s String) Len() int     { return len(s.Value) }
func (s String) Clone() FilterXObject { return s }
func (s String) Marshal() (string, LogType) {
	return s.Value, LogString
}

// Bytes wraps a raw byte payload (spec.md §4.1 "bytes" capability; its
// marshal form is hex, matching how typed binary record fields are
// rendered in the host message store's text representation).
type Bytes struct{ Value []byte }

func (Bytes) Type() Type   { return TypeBytes }
func (Bytes) Frozen() bool { return true }
func (b Bytes) Truthy() bool { return len(b.Value) != 0 }
func (b Bytes) Len() int     { return len(b.Value) }
func (b Bytes) Repr() string { return fmt.Sprintf("%x", b.Value) }
func (b Bytes) Clone() FilterXObject {
	cp := make([]byte, len(b.Value))
	copy(cp, b.Value)
	return Bytes{Value: cp}
}
func (b Bytes) Marshal() (string, LogType) {
	return b.Repr(), LogBytes
}
