package record

import (
	"fmt"
)

// ValueKind discriminates Value.
type ValueKind uint8

const (
	KindNull ValueKind = iota
	KindInt
	KindFloat
	KindBool
	KindSignature
	KindString
	KindBlob
	KindRef
	KindOwned
	KindInlined
)

var valueKindNames = [...]string{
	KindNull:      "null",
	KindInt:       "int",
	KindFloat:     "float",
	KindBool:      "bool",
	KindSignature: "signature",
	KindString:    "string",
	KindBlob:      "blob",
	KindRef:       "ref",
	KindOwned:     "record",
	KindInlined:   "fragment",
}

func (k ValueKind) String() string {
	if int(k) < len(valueKindNames) {
		return valueKindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Value is one field of a record or fragment.
type Value struct {
	rec  Record
	frag Fragment
	s    string
	b    []byte
	i    int64
	f    float64
	kind ValueKind
}

type integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32
}

// Int returns an integer value.
func Int[T integer](v T) Value {
	return Value{kind: KindInt, i: int64(v)}
}

// Float returns a float value.
func Float[T ~float32 | ~float64](v T) Value {
	return Value{kind: KindFloat, f: float64(v)}
}

// Bool returns a boolean value.
func Bool(v bool) Value {
	val := Value{kind: KindBool}
	if v {
		val.i = 1
	}
	return val
}

// Signature returns a raw four byte tag such as "DICT".
func Signature(tag string) Value {
	return Value{kind: KindSignature, s: tag}
}

// String returns a pooled string value. The empty string encodes as 0.
func String(s string) Value {
	return Value{kind: KindString, s: s}
}

// Blob returns a pooled binary value. It occupies two slots: the length and
// a pointer to the pooled bytes. An empty blob encodes as (0, 0).
func Blob(b []byte) Value {
	return Value{kind: KindBlob, b: b}
}

// Ref returns a weak reference to an arena record. The zero ID encodes as 0.
func Ref(id ID) Value {
	if id == 0 {
		return Null()
	}
	return Value{kind: KindRef, i: int64(id)}
}

// Null returns an absent optional field, encoded as 0.
func Null() Value {
	return Value{}
}

// Owned returns a nested record placed after its owner. A nil record is
// treated as Null.
func Owned(r Record) Value {
	if isNil(r) {
		return Null()
	}
	return Value{kind: KindOwned, rec: r}
}

// Inlined returns a fragment whose values are spliced into the owner.
func Inlined(f Fragment) Value {
	if isNil(f) {
		return Null()
	}
	return Value{kind: KindInlined, frag: f}
}

// List maps items to values.
func List[T any](items []T, fn func(T) Value) []Value {
	out := make([]Value, len(items))
	for i, it := range items {
		out[i] = fn(it)
	}
	return out
}

// Kind returns the value kind.
func (v Value) Kind() ValueKind {
	return v.kind
}

// IsNull reports whether the value is absent.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// AsInt returns the integer payload of an int or bool value.
func (v Value) AsInt() int64 {
	return v.i
}

// AsFloat returns the float payload.
func (v Value) AsFloat() float64 {
	return v.f
}

// AsString returns the payload of a string or signature value.
func (v Value) AsString() string {
	return v.s
}

// AsBlob returns the payload of a blob value.
func (v Value) AsBlob() []byte {
	return v.b
}

// Record returns the owned record, if any.
func (v Value) Record() Record {
	return v.rec
}

// Fragment returns the inlined fragment, if any.
func (v Value) Fragment() Fragment {
	return v.frag
}

// RefID returns the arena ID of a reference value.
func (v Value) RefID() ID {
	if v.kind != KindRef {
		return 0
	}
	return ID(v.i)
}

// slots returns how many shape slots the value occupies once flattened.
func (v Value) slots() int {
	if v.kind == KindBlob {
		return 2
	}
	return 1
}

func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return fmt.Sprintf("int(%d)", v.i)
	case KindFloat:
		return fmt.Sprintf("float(%g)", v.f)
	case KindBool:
		return fmt.Sprintf("bool(%t)", v.i != 0)
	case KindSignature:
		return fmt.Sprintf("signature(%q)", v.s)
	case KindString:
		return fmt.Sprintf("string(%q)", v.s)
	case KindBlob:
		return fmt.Sprintf("blob(%d bytes)", len(v.b))
	case KindRef:
		return fmt.Sprintf("ref(%d)", v.i)
	case KindOwned:
		return "record(" + typeName(v.rec) + ")"
	case KindInlined:
		return "fragment(" + typeName(v.frag) + ")"
	default:
		return "null"
	}
}
