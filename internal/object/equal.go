package object

// Equal implements FilterX's `==` operator semantics: same-kind value
// equality for primitives, recursive structural equality for containers.
// Values of different Types are never equal, matching the teacher's
// strict (no implicit numeric-to-string coercion) equality convention.
func Equal(a, b FilterXObject) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Type() != b.Type() {
		return false
	}
	switch av := a.(type) {
	case Null:
		return true
	case Boolean:
		return av.Value == b.(Boolean).Value
	case Integer:
		return av.Value == b.(Integer).Value
	case Double:
		return av.Value == b.(Double).Value
	case String:
		return av.Value == b.(String).Value
	case Bytes:
		bv := b.(Bytes)
		if len(av.Value) != len(bv.Value) {
			return false
		}
		for i := range av.Value {
			if av.Value[i] != bv.Value[i] {
				return false
			}
		}
		return true
	case *List:
		bv := b.(*List)
		if av.Len() != bv.Len() {
			return false
		}
		for i, v := range av.items {
			if !Equal(v, bv.items[i]) {
				return false
			}
		}
		return true
	case *Dict:
		bv := b.(*Dict)
		if av.Len() != bv.Len() {
			return false
		}
		for _, k := range av.keys {
			bvVal, ok := bv.values[k]
			if !ok || !Equal(av.values[k], bvVal) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
