package payload

// Kind tags the variant held by a Value.
type Kind uint8

const (
	// KindNil is the zero Kind: no content (empty inbox, unset vertex value).
	KindNil Kind = iota
	// KindNumber holds a float64.
	KindNumber
	// KindMap holds a string-keyed collection of Values (no key order).
	KindMap
	// KindList holds an ordered sequence of Values.
	KindList
	// KindOpaque holds an arbitrary scalar the engine does not interpret.
	KindOpaque
)

// Value is the tagged sum type flowing through vertex state, message
// content, and compute results. The zero Value is KindNil.
type Value struct {
	kind   Kind
	number float64
	m      map[string]Value
	list   []Value
	opaque any
}

// Nil is the canonical empty Value.
var Nil = Value{kind: KindNil}

// Number constructs a KindNumber Value.
func Number(n float64) Value { return Value{kind: KindNumber, number: n} }

// Map constructs a KindMap Value from a plain map. The argument is copied;
// callers may continue to mutate their own map without affecting the Value.
func Map(m map[string]Value) Value {
	cp := make(map[string]Value, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return Value{kind: KindMap, m: cp}
}

// List constructs a KindList Value. The argument slice is copied.
func List(items []Value) Value {
	cp := make([]Value, len(items))
	copy(cp, items)
	return Value{kind: KindList, list: cp}
}

// Opaque wraps any value the engine does not interpret structurally.
func Opaque(v any) Value { return Value{kind: KindOpaque, opaque: v} }

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// IsNil reports whether v is the empty/absent Value.
func (v Value) IsNil() bool { return v.kind == KindNil }

// Number returns the numeric payload and whether v holds one.
func (v Value) Number() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.number, true
}

// Map returns a read-only view of the map payload and whether v holds one.
// The returned map must not be mutated by callers.
func (v Value) Map() (map[string]Value, bool) {
	if v.kind != KindMap {
		return nil, false
	}
	return v.m, true
}

// List returns the list payload and whether v holds one.
func (v Value) List() ([]Value, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return v.list, true
}

// Opaque returns the wrapped value and whether v holds one.
func (v Value) Opaque() (any, bool) {
	if v.kind != KindOpaque {
		return nil, false
	}
	return v.opaque, true
}

// Equal reports structural equality between a and b. It is used only by
// tests and diagnostics — compute-result classification never relies on
// equality probing (see payload.Merge / core's Result sum type).
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNil:
		return true
	case KindNumber:
		return a.number == b.number
	case KindOpaque:
		return a.opaque == b.opaque
	case KindList:
		if len(a.list) != len(b.list) {
			return false
		}
		for i := range a.list {
			if !Equal(a.list[i], b.list[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(a.m) != len(b.m) {
			return false
		}
		for k, av := range a.m {
			bv, ok := b.m[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
