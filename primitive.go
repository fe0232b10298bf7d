package msgpackstrict

import (
	"reflect"
	"strconv"
	"time"

	"github.com/drewnoakes/msgpack-strict/internal/msgpack"
)

// Decimal is an arbitrary-precision decimal value carried on the wire as its
// invariant (locale-independent) string form, preserving exact decimal
// semantics that a binary float representation would lose (§4.2, §9).
type Decimal string

var (
	decimalType   = reflect.TypeOf(Decimal(""))
	timestampType = reflect.TypeOf(time.Time{})
	bytesType     = reflect.TypeOf([]byte(nil))
)

// primitiveKindOf reports the primitive Kind of t, if any.
func primitiveKindOf(t reflect.Type) (Kind, bool) {
	switch {
	case t == decimalType:
		return KindDecimal, true
	case t == timestampType:
		return KindTimestamp, true
	case t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8:
		return KindBytes, true
	}

	switch t.Kind() {
	case reflect.Bool:
		return KindBool, true
	case reflect.Int8:
		return KindInt8, true
	case reflect.Int16:
		return KindInt16, true
	case reflect.Int32:
		return KindInt32, true
	case reflect.Int64, reflect.Int:
		return KindInt64, true
	case reflect.Uint8:
		return KindUint8, true
	case reflect.Uint16:
		return KindUint16, true
	case reflect.Uint32:
		return KindUint32, true
	case reflect.Uint64, reflect.Uint:
		return KindUint64, true
	case reflect.Float32:
		return KindFloat32, true
	case reflect.Float64:
		return KindFloat64, true
	case reflect.String:
		return KindString, true
	default:
		return 0, false
	}
}

// writePrimitive encodes v (whose Kind must match kind, per primitiveKindOf)
// to w.
func writePrimitive(w *msgpack.Writer, kind Kind, v reflect.Value) error {
	switch kind {
	case KindBool:
		w.WriteBool(v.Bool())
	case KindInt8, KindInt16, KindInt32, KindInt64:
		w.WriteInt(v.Int())
	case KindUint8, KindUint16, KindUint32, KindUint64:
		w.WriteUint(v.Uint())
	case KindFloat32:
		w.WriteFloat32(float32(v.Float()))
	case KindFloat64:
		w.WriteFloat64(v.Float())
	case KindString:
		w.WriteString(v.String())
	case KindBytes:
		w.WriteBinary(v.Bytes())
	case KindDecimal:
		w.WriteString(string(v.Convert(decimalType).Interface().(Decimal)))
	case KindTimestamp:
		t := v.Convert(timestampType).Interface().(time.Time)
		w.WriteString(t.UTC().Format(time.RFC3339Nano))
	default:
		return &SerialisationFault{Op: "writePrimitive", Err: faultf("writePrimitive", "not a primitive kind: %s", kind)}
	}
	return nil
}

// readPrimitive decodes a value of the given kind from r into dst, which
// must be addressable and of a type primitiveKindOf maps to kind (subject
// to the widening rules already validated by CanReadFrom: the wire carries
// whatever integer width the writer chose, not necessarily dst's width).
func readPrimitive(r *msgpack.Reader, kind Kind, dst reflect.Value) error {
	switch kind {
	case KindBool:
		v, err := r.ReadBool()
		if err != nil {
			return faultf("readPrimitive(bool)", "%w", err)
		}
		dst.SetBool(v)
	case KindInt8, KindInt16, KindInt32, KindInt64:
		v, err := r.ReadInt()
		if err != nil {
			return faultf("readPrimitive(int)", "%w", err)
		}
		if dst.OverflowInt(v) {
			return faultf("readPrimitive(int)", "value %d overflows %s", v, dst.Type())
		}
		dst.SetInt(v)
	case KindUint8, KindUint16, KindUint32, KindUint64:
		v, err := r.ReadUint()
		if err != nil {
			return faultf("readPrimitive(uint)", "%w", err)
		}
		if dst.OverflowUint(v) {
			return faultf("readPrimitive(uint)", "value %d overflows %s", v, dst.Type())
		}
		dst.SetUint(v)
	case KindFloat32:
		v, err := r.ReadFloat32()
		if err != nil {
			return faultf("readPrimitive(float32)", "%w", err)
		}
		dst.SetFloat(float64(v))
	case KindFloat64:
		v, err := r.ReadFloat64()
		if err != nil {
			return faultf("readPrimitive(float64)", "%w", err)
		}
		dst.SetFloat(v)
	case KindString:
		v, err := r.ReadString()
		if err != nil {
			return faultf("readPrimitive(string)", "%w", err)
		}
		dst.SetString(v)
	case KindBytes:
		v, err := r.ReadBinary()
		if err != nil {
			return faultf("readPrimitive(bytes)", "%w", err)
		}
		dst.SetBytes(v)
	case KindDecimal:
		s, err := r.ReadString()
		if err != nil {
			return faultf("readPrimitive(decimal)", "%w", err)
		}
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			return faultf("readPrimitive(decimal)", "unparseable decimal literal %q: %w", s, err)
		}
		dst.Set(reflect.ValueOf(Decimal(s)).Convert(dst.Type()))
	case KindTimestamp:
		s, err := r.ReadString()
		if err != nil {
			return faultf("readPrimitive(timestamp)", "%w", err)
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return faultf("readPrimitive(timestamp)", "unparseable timestamp %q: %w", s, err)
		}
		dst.Set(reflect.ValueOf(t).Convert(dst.Type()))
	default:
		return faultf("readPrimitive", "not a primitive kind: %s", kind)
	}
	return nil
}

// widens reports whether a value written under the "from" primitive kind
// may be read under the "to" primitive kind when relaxed widening is
// permitted (§4.7). Equal kinds are handled by the caller, not here.
func widens(from, to Kind) bool {
	switch from {
	case KindInt8:
		return to == KindInt16 || to == KindInt32 || to == KindInt64
	case KindInt16:
		return to == KindInt32 || to == KindInt64
	case KindInt32:
		return to == KindInt64
	case KindUint8:
		return to == KindUint16 || to == KindUint32 || to == KindUint64 ||
			to == KindInt16 || to == KindInt32 || to == KindInt64
	case KindUint16:
		return to == KindUint32 || to == KindUint64 || to == KindInt32 || to == KindInt64
	case KindUint32:
		return to == KindUint64 || to == KindInt64
	case KindFloat32:
		return to == KindFloat64
	default:
		return false
	}
}
