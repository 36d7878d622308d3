// Package wire implements the bit-exact binary encoding of §6 used by
// the (out-of-scope) replication layer to ship tuples between peers.
// It is summarized for completeness: the core store never needs it to
// operate, only the broadcast seam (package bcast) and the admin debug
// dump do.
//
// Encoding is fixed little-endian regardless of host byte order and
// floats are bit-cast without conversion, per §6.
package wire

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/lindadb/ldb/lv"
)

// Version is the only wire version this package emits or accepts.
const Version = 1

// tag values, fixed by §6: 0-5 and 7-8 are fixed-width integer/float
// payloads; 6 (string) and 9 (fn_call) are the two call-outs that
// override the "0..9 numeric" range with variable-length payloads; 10
// and 11 follow as call_tag and ref_type.
const (
	tagI16        byte = 0
	tagU16        byte = 1
	tagI32        byte = 2
	tagU32        byte = 3
	tagI64        byte = 4
	tagU64        byte = 5
	tagString     byte = 6
	tagF32        byte = 7
	tagF64        byte = 8
	tagCallHolder byte = 9
	tagCallTag    byte = 10
	tagTypeRef    byte = 11
)

func tagForKind(k lv.Kind) (byte, bool) {
	switch k {
	case lv.KindI16:
		return tagI16, true
	case lv.KindU16:
		return tagU16, true
	case lv.KindI32:
		return tagI32, true
	case lv.KindU32:
		return tagU32, true
	case lv.KindI64:
		return tagI64, true
	case lv.KindU64:
		return tagU64, true
	case lv.KindF32:
		return tagF32, true
	case lv.KindF64:
		return tagF64, true
	case lv.KindString:
		return tagString, true
	case lv.KindCallHolder:
		return tagCallHolder, true
	case lv.KindCallTag:
		return tagCallTag, true
	case lv.KindTypeRef:
		return tagTypeRef, true
	default:
		return 0, false
	}
}

func kindForTag(tag byte) (lv.Kind, bool) {
	switch tag {
	case tagI16:
		return lv.KindI16, true
	case tagU16:
		return lv.KindU16, true
	case tagI32:
		return lv.KindI32, true
	case tagU32:
		return lv.KindU32, true
	case tagI64:
		return lv.KindI64, true
	case tagU64:
		return lv.KindU64, true
	case tagF32:
		return lv.KindF32, true
	case tagF64:
		return lv.KindF64, true
	case tagString:
		return lv.KindString, true
	case tagCallHolder:
		return lv.KindCallHolder, true
	case tagCallTag:
		return lv.KindCallTag, true
	case tagTypeRef:
		return lv.KindTypeRef, true
	default:
		return 0, false
	}
}

// Encode serializes a tuple per §6:
//
//	tuple  := u8(version=1) u64_LE(arity) value*arity
//	value  := u8(type_tag)  payload(type_tag)
func Encode(t lv.Tuple) []byte {
	var buf bytes.Buffer
	buf.WriteByte(Version)
	var arityBuf [8]byte
	binary.LittleEndian.PutUint64(arityBuf[:], uint64(t.Arity()))
	buf.Write(arityBuf[:])
	for i := 0; i < t.Arity(); i++ {
		encodeValue(&buf, t.At(i))
	}
	return buf.Bytes()
}

func encodeValue(buf *bytes.Buffer, v lv.Value) {
	tag, ok := tagForKind(v.Kind())
	if !ok {
		// Unreachable for values constructed through the lv package's
		// public API; defend against future Kinds being added there
		// without a matching wire tag.
		panic(&lv.InvalidWireError{Reason: "unknown value kind on encode"})
	}
	buf.WriteByte(tag)
	switch v.Kind() {
	case lv.KindI16:
		writeLE(buf, int16(v.AsI64()))
	case lv.KindU16:
		writeLE(buf, uint16(v.AsU64()))
	case lv.KindI32:
		writeLE(buf, int32(v.AsI64()))
	case lv.KindU32:
		writeLE(buf, uint32(v.AsU64()))
	case lv.KindI64:
		writeLE(buf, v.AsI64())
	case lv.KindU64:
		writeLE(buf, v.AsU64())
	case lv.KindF32:
		writeLE(buf, float32(v.AsF64()))
	case lv.KindF64:
		writeLE(buf, v.AsF64())
	case lv.KindString:
		s := v.AsString()
		var lenBuf [8]byte
		binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(s)))
		buf.Write(lenBuf[:])
		buf.WriteString(s)
	case lv.KindCallHolder:
		h := v.AsCall()
		buf.Write(Encode(h.Args()))
		encodeValue(buf, lv.Str(h.Name()))
	case lv.KindCallTag:
		// empty payload
	case lv.KindTypeRef:
		refTag, ok := tagForKind(v.RefKind())
		if !ok {
			panic(&lv.InvalidWireError{Reason: "unknown ref_type kind on encode"})
		}
		writeLE(buf, int8(refTag))
	}
}

func writeLE(buf *bytes.Buffer, v any) {
	// binary.Write's reflection path is fine here: wire encoding is not
	// on ldb's hot path (index search/insert is), only replication and
	// debug dumps are.
	if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
		panic(&lv.InvalidWireError{Reason: err.Error()})
	}
}

// Decode parses a tuple previously produced by Encode. It returns an
// *lv.InvalidWireError on any malformed input, never a panic,
// so that a replicator can discard the offending message per §7.
func Decode(data []byte) (tuple lv.Tuple, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(*lv.InvalidWireError); ok {
				err = e
				return
			}
			err = &lv.InvalidWireError{Reason: "malformed tuple"}
		}
	}()

	r := bytes.NewReader(data)
	return decodeTuple(r)
}

func decodeTuple(r *bytes.Reader) (lv.Tuple, error) {
	version, err := r.ReadByte()
	if err != nil {
		return lv.Tuple{}, &lv.InvalidWireError{Reason: "missing version byte"}
	}
	if version != Version {
		return lv.Tuple{}, &lv.InvalidWireError{Reason: "unsupported wire version"}
	}
	var arity uint64
	if err := binary.Read(r, binary.LittleEndian, &arity); err != nil {
		return lv.Tuple{}, &lv.InvalidWireError{Reason: "truncated arity"}
	}
	if arity > lv.MaxArity {
		return lv.Tuple{}, &lv.InvalidWireError{Reason: "arity exceeds MaxArity"}
	}
	values := make([]lv.Value, arity)
	for i := range values {
		v, err := decodeValue(r)
		if err != nil {
			return lv.Tuple{}, err
		}
		values[i] = v
	}
	return lv.NewTuple(values...), nil
}

func decodeValue(r *bytes.Reader) (lv.Value, error) {
	tagByte, err := r.ReadByte()
	if err != nil {
		return lv.Value{}, &lv.InvalidWireError{Reason: "truncated value tag"}
	}
	kind, ok := kindForTag(tagByte)
	if !ok {
		return lv.Value{}, &lv.InvalidWireError{Reason: "unknown value tag"}
	}
	switch kind {
	case lv.KindI16:
		var x int16
		if err := binary.Read(r, binary.LittleEndian, &x); err != nil {
			return lv.Value{}, &lv.InvalidWireError{Reason: "truncated i16"}
		}
		return lv.I16(x), nil
	case lv.KindU16:
		var x uint16
		if err := binary.Read(r, binary.LittleEndian, &x); err != nil {
			return lv.Value{}, &lv.InvalidWireError{Reason: "truncated u16"}
		}
		return lv.U16(x), nil
	case lv.KindI32:
		var x int32
		if err := binary.Read(r, binary.LittleEndian, &x); err != nil {
			return lv.Value{}, &lv.InvalidWireError{Reason: "truncated i32"}
		}
		return lv.I32(x), nil
	case lv.KindU32:
		var x uint32
		if err := binary.Read(r, binary.LittleEndian, &x); err != nil {
			return lv.Value{}, &lv.InvalidWireError{Reason: "truncated u32"}
		}
		return lv.U32(x), nil
	case lv.KindI64:
		var x int64
		if err := binary.Read(r, binary.LittleEndian, &x); err != nil {
			return lv.Value{}, &lv.InvalidWireError{Reason: "truncated i64"}
		}
		return lv.I64(x), nil
	case lv.KindU64:
		var x uint64
		if err := binary.Read(r, binary.LittleEndian, &x); err != nil {
			return lv.Value{}, &lv.InvalidWireError{Reason: "truncated u64"}
		}
		return lv.U64(x), nil
	case lv.KindF32:
		var x float32
		if err := binary.Read(r, binary.LittleEndian, &x); err != nil {
			return lv.Value{}, &lv.InvalidWireError{Reason: "truncated f32"}
		}
		return lv.F32(x), nil
	case lv.KindF64:
		var x float64
		if err := binary.Read(r, binary.LittleEndian, &x); err != nil {
			return lv.Value{}, &lv.InvalidWireError{Reason: "truncated f64"}
		}
		return lv.F64(x), nil
	case lv.KindString:
		var length uint64
		if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
			return lv.Value{}, &lv.InvalidWireError{Reason: "truncated string length"}
		}
		buf := make([]byte, length)
		if _, err := io.ReadFull(r, buf); err != nil {
			return lv.Value{}, &lv.InvalidWireError{Reason: "truncated string body"}
		}
		return lv.Str(string(buf)), nil
	case lv.KindCallHolder:
		args, err := decodeTuple(r)
		if err != nil {
			return lv.Value{}, err
		}
		nameVal, err := decodeValue(r)
		if err != nil {
			return lv.Value{}, err
		}
		if nameVal.Kind() != lv.KindString {
			return lv.Value{}, &lv.InvalidWireError{Reason: "fn_call name is not a string"}
		}
		return lv.Call(lv.NewCallHolder(nameVal.AsString(), args)), nil
	case lv.KindCallTag:
		return lv.CallTag(), nil
	case lv.KindTypeRef:
		var refTag int8
		if err := binary.Read(r, binary.LittleEndian, &refTag); err != nil {
			return lv.Value{}, &lv.InvalidWireError{Reason: "truncated ref_type tag"}
		}
		refKind, ok := kindForTag(byte(refTag))
		if !ok {
			return lv.Value{}, &lv.InvalidWireError{Reason: "unknown ref_type tag"}
		}
		return lv.TypeOf(refKind), nil
	default:
		return lv.Value{}, &lv.InvalidWireError{Reason: "unhandled value kind"}
	}
}
