package variable

import "github.com/streamforge/filterx/internal/object"

// Variable is a named slot (spec.md §3 FilterXVariable): a handle, its
// scope kind, whether it has ever been assigned, a generation counter that
// discriminates stale holders when a slot pool is reused, and an owned
// value (nil meaning unset).
type Variable struct {
	Handle     Handle
	Kind       Kind
	Assigned   bool
	Generation uint16
	Value      object.FilterXObject
}

// Live reports whether the variable currently holds a value (spec.md §3
// invariant i: "a variable is considered live iff value != null").
func (v *Variable) Live() bool {
	return v.Value != nil
}

// Unset clears the value but keeps the slot alive and bumps its
// generation, so stale holders elsewhere can detect the slot was reused
// (spec.md §4.2).
func (v *Variable) Unset() {
	v.Value = nil
	v.Generation++
}

// Set assigns a value and marks the variable as assigned.
func (v *Variable) Set(value object.FilterXObject) {
	v.Value = value
	v.Assigned = true
}
