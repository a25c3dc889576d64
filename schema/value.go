package schema

import (
	"encoding/json"
	"strconv"
	"unique"
)

// Kind identifies the concrete type stored in a Value.
type Kind uint8

const (
	// KindInvalid represents an invalid (zero) value.
	KindInvalid Kind = iota
	// KindUint represents an unsigned 32-bit integer value.
	KindUint
	// KindInt represents a signed 64-bit integer value.
	KindInt
	// KindString represents a string value.
	KindString
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindUint:
		return "Uint"
	case KindInt:
		return "Int"
	case KindString:
		return "String"
	default:
		return "Invalid"
	}
}

// Value is a small typed field value.
//
// No reflection and no fmt-based stringification on the hot path.
type Value struct {
	Kind Kind
	U32  uint32
	I64  int64
	s    unique.Handle[string]
}

// Uint returns an unsigned integer Value.
func Uint(v uint32) Value { return Value{Kind: KindUint, U32: v} }

// Int returns a signed integer Value.
func Int(v int64) Value { return Value{Kind: KindInt, I64: v} }

// String returns an interned string Value.
func String(v string) Value { return Value{Kind: KindString, s: unique.Make(v)} }

// AsUint returns the unsigned value if Kind is KindUint.
func (v Value) AsUint() (uint32, bool) {
	if v.Kind != KindUint {
		return 0, false
	}
	return v.U32, true
}

// AsInt returns the signed value if Kind is KindInt.
func (v Value) AsInt() (int64, bool) {
	if v.Kind != KindInt {
		return 0, false
	}
	return v.I64, true
}

// AsString returns the string value if Kind is KindString.
// A KindString value not built by String reports false.
func (v Value) AsString() (string, bool) {
	if v.Kind != KindString || v.s == (unique.Handle[string]{}) {
		return "", false
	}
	return v.s.Value(), true
}

// Valid reports whether v carries a payload of its Kind. Only values built
// by the constructors are valid; a bare Value{Kind: KindString} is not.
func (v Value) Valid() bool {
	switch v.Kind {
	case KindUint, KindInt:
		return true
	case KindString:
		return v.s != (unique.Handle[string]{})
	default:
		return false
	}
}

// String formats the value the way a query would spell it.
func (v Value) String() string {
	switch v.Kind {
	case KindUint:
		return strconv.FormatUint(uint64(v.U32), 10)
	case KindInt:
		return strconv.FormatInt(v.I64, 10)
	case KindString:
		if s, ok := v.AsString(); ok {
			return s
		}
		return "<invalid>"
	default:
		return "<invalid>"
	}
}

// MarshalJSON implements json.Marshaler.
// Numbers encode as JSON numbers and text as JSON strings.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindUint:
		return strconv.AppendUint(nil, uint64(v.U32), 10), nil
	case KindInt:
		return strconv.AppendInt(nil, v.I64, 10), nil
	case KindString:
		if s, ok := v.AsString(); ok {
			return json.Marshal(s)
		}
		return []byte("null"), nil
	default:
		return []byte("null"), nil
	}
}

// Record is an ordered tuple of values in schema column order.
type Record []Value

// Clone returns a copy of the record that shares no backing array with r.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	copy(out, r)
	return out
}
