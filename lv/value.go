// Package lv implements the heterogeneous, dynamically-typed value and
// tuple representation of the tuple space: Value (a closed sum type),
// Tuple (a short-optimized ordered sequence of Values), and Template
// (a Tuple-shaped pattern mixing literals with typed wildcards).
package lv

import (
	"fmt"
	"hash/maphash"
	"math"
)

// Kind tags the dynamic type of a Value. The zero Kind is invalid; every
// constructed Value carries one of the named kinds below.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindI16
	KindU16
	KindI32
	KindU32
	KindI64
	KindU64
	KindF32
	KindF64
	KindString
	KindCallTag
	KindCallHolder
	KindTypeRef
)

func (k Kind) String() string {
	switch k {
	case KindI16:
		return "i16"
	case KindU16:
		return "u16"
	case KindI32:
		return "i32"
	case KindU32:
		return "u32"
	case KindI64:
		return "i64"
	case KindU64:
		return "u64"
	case KindF32:
		return "f32"
	case KindF64:
		return "f64"
	case KindString:
		return "string"
	case KindCallTag:
		return "call_tag"
	case KindCallHolder:
		return "fn_call"
	case KindTypeRef:
		return "ref_type"
	default:
		return "invalid"
	}
}

// Value is a closed sum over the scalar, string, call, and type-reference
// variants of §3. Every Value carries its Kind tag; comparison first
// orders by tag, then by payload within that tag.
//
// A Value built with Type[T]() is a typed wildcard: it never equals a
// concrete value (its own tag, KindTypeRef, always differs from a
// concrete value's tag, so Compare orders the two apart) but Match
// treats it specially (see match.go).
type Value struct {
	kind Kind

	i     int64   // KindI16/I32/I64 (sign-extended)
	u     uint64  // KindU16/U32/U64
	f     float64 // KindF32/F64 (widened; f32 ops re-narrow before compare)
	s     string  // KindString
	call  *CallHolder
	refOf Kind // KindTypeRef: the referenced type
}

// I16 constructs a 16-bit signed integer Value.
func I16(v int16) Value { return Value{kind: KindI16, i: int64(v)} }

// U16 constructs a 16-bit unsigned integer Value.
func U16(v uint16) Value { return Value{kind: KindU16, u: uint64(v)} }

// I32 constructs a 32-bit signed integer Value.
func I32(v int32) Value { return Value{kind: KindI32, i: int64(v)} }

// U32 constructs a 32-bit unsigned integer Value.
func U32(v uint32) Value { return Value{kind: KindU32, u: uint64(v)} }

// I64 constructs a 64-bit signed integer Value.
func I64(v int64) Value { return Value{kind: KindI64, i: v} }

// U64 constructs a 64-bit unsigned integer Value.
func U64(v uint64) Value { return Value{kind: KindU64, u: v} }

// F32 constructs a 32-bit IEEE-754 float Value.
func F32(v float32) Value { return Value{kind: KindF32, f: float64(v)} }

// F64 constructs a 64-bit IEEE-754 float Value.
func F64(v float64) Value { return Value{kind: KindF64, f: v} }

// Str constructs a UTF-8 string Value.
func Str(v string) Value { return Value{kind: KindString, s: v} }

// CallTag constructs the call-tag sentinel Value (an empty marker on the
// wire, tag 10 of §6).
func CallTag() Value { return Value{kind: KindCallTag} }

// Call constructs a call-holder Value from a CallHolder.
func Call(h CallHolder) Value {
	cp := h
	return Value{kind: KindCallHolder, call: &cp}
}

// Scalar is the set of Go primitive types a typed wildcard can stand for.
type Scalar interface {
	int16 | uint16 | int32 | uint32 | int64 | uint64 | float32 | float64 | string
}

func kindOf[T Scalar]() Kind {
	var zero T
	switch any(zero).(type) {
	case int16:
		return KindI16
	case uint16:
		return KindU16
	case int32:
		return KindI32
	case uint32:
		return KindU32
	case int64:
		return KindI64
	case uint64:
		return KindU64
	case float32:
		return KindF32
	case float64:
		return KindF64
	case string:
		return KindString
	default:
		return KindInvalid // unreachable: Scalar is exhaustive above
	}
}

// Type constructs a typed wildcard standing for "any value of type T",
// the Go counterpart of the original's ldb::type<T> stub. It is only
// valid inside a Template (see template.go); used as a literal Value it
// never equals a concrete value, though Compare treats two wildcards of
// the same type as equal.
func Type[T Scalar]() Value {
	return Value{kind: KindTypeRef, refOf: kindOf[T]()}
}

// TypeOf constructs a typed wildcard from an explicit Kind, for callers
// that don't have a concrete Go type parameter on hand (e.g. the wire
// decoder).
func TypeOf(k Kind) Value {
	return Value{kind: KindTypeRef, refOf: k}
}

// Kind returns the value's dynamic type tag.
func (v Value) Kind() Kind { return v.kind }

// IsWildcard reports whether v is a typed-wildcard (type-reference) value.
func (v Value) IsWildcard() bool { return v.kind == KindTypeRef }

// RefKind returns the type a typed wildcard stands for. Valid only when
// IsWildcard() is true.
func (v Value) RefKind() Kind { return v.refOf }

// AsI64 returns the value as an int64, valid for any signed integer kind.
func (v Value) AsI64() int64 { return v.i }

// AsU64 returns the value as a uint64, valid for any unsigned kind.
func (v Value) AsU64() uint64 { return v.u }

// AsF64 returns the value as a float64, valid for any float kind.
func (v Value) AsF64() float64 { return v.f }

// AsString returns the string payload, valid for KindString.
func (v Value) AsString() string { return v.s }

// AsCall returns the call-holder payload, valid for KindCallHolder.
func (v Value) AsCall() *CallHolder { return v.call }

func (v Value) String() string {
	switch v.kind {
	case KindI16, KindI32, KindI64:
		return fmt.Sprintf("%d", v.i)
	case KindU16, KindU32, KindU64:
		return fmt.Sprintf("%d", v.u)
	case KindF32, KindF64:
		return fmt.Sprintf("%g", v.f)
	case KindString:
		return fmt.Sprintf("%q", v.s)
	case KindCallTag:
		return "<call>"
	case KindCallHolder:
		return v.call.String()
	case KindTypeRef:
		return fmt.Sprintf("<%s>", v.refOf)
	default:
		return "<invalid>"
	}
}

// Compare implements the total order of §4.1: first by tag, then by
// payload within that tag. It never special-cases wildcards — for
// matching semantics use Match in match.go.
func Compare(a, b Value) int {
	if a.kind != b.kind {
		if a.kind < b.kind {
			return -1
		}
		return 1
	}
	switch a.kind {
	case KindI16, KindI32, KindI64:
		return cmpI64(a.i, b.i)
	case KindU16, KindU32, KindU64:
		return cmpU64(a.u, b.u)
	case KindF32:
		return cmpFloatTotal(float64(float32(a.f)), float64(float32(b.f)))
	case KindF64:
		return cmpFloatTotal(a.f, b.f)
	case KindString:
		return cmpString(a.s, b.s)
	case KindCallTag:
		return 0
	case KindCallHolder:
		return compareCallHolder(*a.call, *b.call)
	case KindTypeRef:
		// Two wildcards of the same referenced type are still distinct
		// "instances" conceptually, but for the purpose of a total order
		// (needed so Values can key a Payload) we order by referenced kind.
		if a.refOf == b.refOf {
			return 0
		}
		if a.refOf < b.refOf {
			return -1
		}
		return 1
	default:
		return 0
	}
}

// Equal reports whether a and b compare equal under Compare.
func Equal(a, b Value) bool { return Compare(a, b) == 0 }

func cmpI64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpU64(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// cmpFloatTotal orders floats per IEEE-754 total order: NaNs are ordered
// (not silently equal to each other or to anything else) rather than
// comparing unordered, per §4.1.
func cmpFloatTotal(a, b float64) int {
	ai := floatTotalOrderKey(a)
	bi := floatTotalOrderKey(b)
	switch {
	case ai < bi:
		return -1
	case ai > bi:
		return 1
	default:
		return 0
	}
}

// floatTotalOrderKey maps a float64's bits onto a totally ordered uint64
// space per IEEE-754-2008 §5.10 totalOrder: negative values have their
// whole bit pattern flipped (so more-negative sorts lower), and
// non-negative values have only their sign bit flipped (so they sort
// above every negative value instead of colliding with its flipped
// range).
func floatTotalOrderKey(f float64) uint64 {
	bits := math.Float64bits(f)
	var mask uint64
	if bits>>63 != 0 {
		mask = ^uint64(0)
	} else {
		mask = 1 << 63
	}
	return bits ^ mask
}

var hashSeed = maphash.MakeSeed()

// Hash returns a hash consistent with Compare/Equal: two Values that
// compare equal always hash equal.
func Hash(v Value) uint64 {
	var h maphash.Hash
	h.SetSeed(hashSeed)
	_ = h.WriteByte(byte(v.kind))
	switch v.kind {
	case KindI16, KindI32, KindI64:
		var b [8]byte
		putU64(b[:], uint64(v.i))
		_, _ = h.Write(b[:])
	case KindU16, KindU32, KindU64:
		var b [8]byte
		putU64(b[:], v.u)
		_, _ = h.Write(b[:])
	case KindF32:
		var b [8]byte
		putU64(b[:], uint64(math.Float32bits(float32(v.f))))
		_, _ = h.Write(b[:])
	case KindF64:
		var b [8]byte
		putU64(b[:], math.Float64bits(v.f))
		_, _ = h.Write(b[:])
	case KindString:
		_, _ = h.WriteString(v.s)
	case KindCallHolder:
		_, _ = h.WriteString(v.call.Name())
	case KindTypeRef:
		_ = h.WriteByte(byte(v.refOf))
	}
	return h.Sum64()
}

func putU64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}
