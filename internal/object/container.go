package object

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrFrozen is returned by mutating capability calls on a frozen
	// object (spec.md §3 invariant ii).
	ErrFrozen = errors.New("object is frozen")
	// ErrKeyType is returned when a subscript key has the wrong kind of
	// object for the container (e.g. a non-integer List index).
	ErrKeyType = errors.New("invalid subscript key type")
	// ErrNoSuchKey is returned by GetSubscript/UnsetKey for a missing key.
	ErrNoSuchKey = errors.New("no such key")
	// ErrIndexRange is returned by List subscript operations out of bounds.
	ErrIndexRange = errors.New("index out of range")
)

// List is FilterX's ordered, homogeneous-or-not sequence container.
type List struct {
	items  []FilterXObject
	frozen bool
}

// NewList creates a fresh, mutable, empty list (spec.md §4.5
// create_container for list literals/generators).
func NewList() *List { return &List{} }

func (l *List) Type() Type   { return TypeList }
func (l *List) Frozen() bool { return l.frozen }
func (l *List) Freeze()      { l.frozen = true }

func (l *List) Truthy() bool { return len(l.items) != 0 }
func (l *List) Len() int     { return len(l.items) }

func (l *List) Repr() string {
	parts := make([]string, len(l.items))
	for i, v := range l.items {
		parts[i] = Repr(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (l *List) Marshal() (string, LogType) { return l.Repr(), LogList }

func (l *List) Clone() FilterXObject {
	cp := make([]FilterXObject, len(l.items))
	for i, v := range l.items {
		cp[i] = Clone(v)
	}
	return &List{items: cp}
}

// Slice exposes the backing elements in list order; callers must treat
// the returned slice as read-only.
func (l *List) Slice() []FilterXObject { return l.items }

func indexOf(key FilterXObject) (int, error) {
	i, ok := key.(Integer)
	if !ok {
		return 0, ErrKeyType
	}
	return int(i.Value), nil
}

func (l *List) GetSubscript(key FilterXObject) (FilterXObject, error) {
	idx, err := indexOf(key)
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(l.items) {
		return nil, ErrIndexRange
	}
	return l.items[idx], nil
}

func (l *List) SetSubscript(key FilterXObject, value FilterXObject) (FilterXObject, error) {
	if l.frozen {
		return nil, ErrFrozen
	}
	idx, err := indexOf(key)
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(l.items) {
		return nil, ErrIndexRange
	}
	l.items[idx] = value
	return value, nil
}

func (l *List) UnsetKey(key FilterXObject) error {
	if l.frozen {
		return ErrFrozen
	}
	idx, err := indexOf(key)
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(l.items) {
		return ErrIndexRange
	}
	l.items = append(l.items[:idx], l.items[idx+1:]...)
	return nil
}

func (l *List) Append(value FilterXObject) error {
	if l.frozen {
		return ErrFrozen
	}
	l.items = append(l.items, value)
	return nil
}

func (l *List) Iterate(fn func(key, value FilterXObject) bool) {
	for i, v := range l.items {
		if !fn(Integer{Value: int64(i)}, v) {
			return
		}
	}
}

// Dict is FilterX's string-keyed container, iterated in insertion order
// (spec.md §4.5 "keyed by evaluated keys" — order is preserved so that
// repr/marshal output and regexp_search's dict-mode results are
// deterministic).
type Dict struct {
	keys   []string
	values map[string]FilterXObject
	frozen bool
}

// NewDict creates a fresh, mutable, empty dict.
func NewDict() *Dict {
	return &Dict{values: make(map[string]FilterXObject)}
}

func (d *Dict) Type() Type   { return TypeDict }
func (d *Dict) Frozen() bool { return d.frozen }
func (d *Dict) Freeze()      { d.frozen = true }

func (d *Dict) Truthy() bool { return len(d.keys) != 0 }
func (d *Dict) Len() int     { return len(d.keys) }

func (d *Dict) Repr() string {
	parts := make([]string, 0, len(d.keys))
	for _, k := range d.keys {
		parts = append(parts, fmt.Sprintf("%q: %s", k, Repr(d.values[k])))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (d *Dict) Marshal() (string, LogType) { return d.Repr(), LogDict }

func (d *Dict) Clone() FilterXObject {
	cp := NewDict()
	for _, k := range d.keys {
		cp.Set(k, Clone(d.values[k]))
	}
	return cp
}

// Set inserts or overwrites a key, preserving first-insertion order.
func (d *Dict) Set(key string, value FilterXObject) {
	if _, exists := d.values[key]; !exists {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
}

// Delete removes a key. Reports whether the key existed.
func (d *Dict) Delete(key string) bool {
	if _, exists := d.values[key]; !exists {
		return false
	}
	delete(d.values, key)
	for i, k := range d.keys {
		if k == key {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			break
		}
	}
	return true
}

func keyString(key FilterXObject) (string, error) {
	s, ok := key.(String)
	if !ok {
		return "", ErrKeyType
	}
	return s.Value, nil
}

func (d *Dict) GetSubscript(key FilterXObject) (FilterXObject, error) {
	k, err := keyString(key)
	if err != nil {
		return nil, err
	}
	v, ok := d.values[k]
	if !ok {
		return nil, ErrNoSuchKey
	}
	return v, nil
}

func (d *Dict) SetSubscript(key FilterXObject, value FilterXObject) (FilterXObject, error) {
	if d.frozen {
		return nil, ErrFrozen
	}
	k, err := keyString(key)
	if err != nil {
		return nil, err
	}
	d.Set(k, value)
	return value, nil
}

func (d *Dict) UnsetKey(key FilterXObject) error {
	if d.frozen {
		return ErrFrozen
	}
	k, err := keyString(key)
	if err != nil {
		return err
	}
	d.Delete(k)
	return nil
}

func (d *Dict) Iterate(fn func(key, value FilterXObject) bool) {
	for _, k := range d.keys {
		if !fn(String{Value: k}, d.values[k]) {
			return
		}
	}
}

// Keys returns the dict's keys in insertion order.
func (d *Dict) Keys() []string { return d.keys }

// GetByIndexKey is a convenience used by regexp_search's dict mode, whose
// natural key is a decimal group index.
func (d *Dict) GetByIndexKey(idx int) (FilterXObject, bool) {
	v, ok := d.values[strconv.Itoa(idx)]
	return v, ok
}
