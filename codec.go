package msgpackstrict

import (
	"reflect"
	"sort"

	"github.com/drewnoakes/msgpack-strict/internal/msgpack"
	"github.com/drewnoakes/msgpack-strict/logging"
)

// UnexpectedFieldPolicy controls how a Deserialiser reacts to a Complex
// field present on the wire but not declared on the read schema (§4.4).
type UnexpectedFieldPolicy int

const (
	// Ignore discards the unexpected field's encoded value.
	Ignore UnexpectedFieldPolicy = iota
	// Throw raises a DeserialisationFault for the unexpected field.
	Throw
)

// readCtx bundles the per-call configuration threaded through the read
// dispatch recursion, avoiding a parameter per concern at every call site.
type readCtx struct {
	strict bool
	policy UnexpectedFieldPolicy
	logger logging.Logger
}

// writeValue encodes v, whose type must be schema.GoType (or assignable to
// it), to w according to schema's wire form (§6.1). schema is always a
// write schema.
func writeValue(w *msgpack.Writer, schema *Schema, v reflect.Value) error {
	switch schema.Kind {
	case KindNullable:
		if v.IsNil() {
			w.WriteNil()
			return nil
		}
		return writeValue(w, schema.Elem, v.Elem())
	case KindSequence:
		n := v.Len()
		w.WriteArrayHeader(n)
		for i := 0; i < n; i++ {
			if err := writeValue(w, schema.Elem, v.Index(i)); err != nil {
				return err
			}
		}
		return nil
	case KindTuple:
		n := len(schema.Elements)
		w.WriteArrayHeader(n)
		for i := 0; i < n; i++ {
			if err := writeValue(w, schema.Elements[i], tupleElem(v, i)); err != nil {
				return err
			}
		}
		return nil
	case KindMapping:
		keys := v.MapKeys()
		w.WriteMapHeader(len(keys))
		for _, k := range keys {
			if err := writeValue(w, schema.MapKey, k); err != nil {
				return err
			}
			if err := writeValue(w, schema.MapValue, v.MapIndex(k)); err != nil {
				return err
			}
		}
		return nil
	case KindEnum:
		name, err := enumMemberName(v, schema.Members)
		if err != nil {
			return &SerialisationFault{Op: "writeValue(enum)", Err: err}
		}
		w.WriteString(name)
		return nil
	case KindComplex:
		return writeComplex(w, schema, v)
	case KindUnion:
		return writeUnion(w, schema, v)
	case KindEmpty:
		w.WriteMapHeader(0)
		return nil
	default:
		return writePrimitive(w, schema.Kind, v)
	}
}

func writeComplex(w *msgpack.Writer, schema *Schema, v reflect.Value) error {
	w.WriteMapHeader(len(schema.Fields))
	for _, f := range schema.Fields {
		w.WriteString(f.Name)
		if err := writeValue(w, f.Schema, v.FieldByIndex(f.GoIndex)); err != nil {
			return err
		}
	}
	return nil
}

func writeUnion(w *msgpack.Writer, schema *Schema, v reflect.Value) error {
	if v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	member := findUnionMemberByGoType(schema, v.Type())
	if member == nil {
		return &SerialisationFault{Op: "writeValue(union)", Err: faultf("writeValue(union)", "no registered union member for type %s", v.Type())}
	}

	w.WriteArrayHeader(2)
	w.WriteString(member.Name)
	return writeValue(w, member.Schema, v)
}

func findUnionMemberByGoType(schema *Schema, t reflect.Type) *Member {
	for _, m := range schema.UnionMembers {
		if m.GoType == t {
			return m
		}
	}
	return nil
}

// readValue decodes a value of readSchema's shape from r into dst, which
// must be addressable and assignable from readSchema.GoType. writeSchema is
// the schema the incoming bytes were actually encoded under; it has already
// been checked compatible with readSchema via CanReadFrom, but the decoder
// must still follow writeSchema's shape on the wire (e.g. a writer field the
// reader doesn't have must still be skipped byte-for-byte).
func readValue(r *msgpack.Reader, readSchema, writeSchema *Schema, dst reflect.Value, ctx *readCtx) error {
	if readSchema.Kind == KindEmpty {
		return r.Skip()
	}

	if readSchema.Kind == KindNullable && writeSchema.Kind != KindNullable {
		dst.Set(reflect.New(readSchema.Elem.GoType))
		return readValue(r, readSchema.Elem, writeSchema, dst.Elem(), ctx)
	}

	switch writeSchema.Kind {
	case KindNullable:
		typ, err := r.PeekType()
		if err != nil {
			return faultf("readValue", "%w", err)
		}
		if typ == msgpack.TypeNil {
			if err := r.ReadNil(); err != nil {
				return faultf("readValue(nullable)", "%w", err)
			}
			dst.Set(reflect.Zero(dst.Type()))
			return nil
		}
		if readSchema.Kind == KindNullable {
			dst.Set(reflect.New(readSchema.Elem.GoType))
			return readValue(r, readSchema.Elem, writeSchema.Elem, dst.Elem(), ctx)
		}
		return readValue(r, readSchema, writeSchema.Elem, dst, ctx)
	case KindSequence:
		n, err := r.ReadArrayHeader()
		if err != nil {
			return faultf("readValue(list)", "%w", err)
		}
		slice := reflect.MakeSlice(readSchema.GoType, n, n)
		for i := 0; i < n; i++ {
			if err := readValue(r, readSchema.Elem, writeSchema.Elem, slice.Index(i), ctx); err != nil {
				return err
			}
		}
		dst.Set(slice)
		return nil
	case KindTuple:
		n, err := r.ReadArrayHeader()
		if err != nil {
			return faultf("readValue(tuple)", "%w", err)
		}
		if n != len(writeSchema.Elements) {
			return faultf("readValue(tuple)", "expected %d elements, wire has %d", len(writeSchema.Elements), n)
		}
		for i := 0; i < n; i++ {
			if err := readValue(r, readSchema.Elements[i], writeSchema.Elements[i], tupleElem(dst, i), ctx); err != nil {
				return err
			}
		}
		return nil
	case KindMapping:
		n, err := r.ReadMapHeader()
		if err != nil {
			return faultf("readValue(map)", "%w", err)
		}
		m := reflect.MakeMapWithSize(readSchema.GoType, n)
		for i := 0; i < n; i++ {
			k := reflect.New(readSchema.MapKey.GoType).Elem()
			if err := readValue(r, readSchema.MapKey, writeSchema.MapKey, k, ctx); err != nil {
				return err
			}
			val := reflect.New(readSchema.MapValue.GoType).Elem()
			if err := readValue(r, readSchema.MapValue, writeSchema.MapValue, val, ctx); err != nil {
				return err
			}
			m.SetMapIndex(k, val)
		}
		dst.Set(m)
		return nil
	case KindEnum:
		name, err := r.ReadString()
		if err != nil {
			return faultf("readValue(enum)", "%w", err)
		}
		idx := enumMemberIndex(readSchema.Members, name)
		if idx < 0 {
			return faultf("readValue(enum)", "unknown enum member %q", name)
		}
		return setEnumValue(dst, name, idx)
	case KindComplex:
		return readComplex(r, readSchema, writeSchema, dst, ctx)
	case KindUnion:
		return readUnion(r, readSchema, writeSchema, dst, ctx)
	case KindEmpty:
		n, err := r.ReadMapHeader()
		if err != nil {
			return faultf("readValue(empty)", "%w", err)
		}
		for i := 0; i < n; i++ {
			if err := r.Skip(); err != nil {
				return err
			}
			if err := r.Skip(); err != nil {
				return err
			}
		}
		return nil
	default:
		return readPrimitiveWidened(r, readSchema.Kind, writeSchema.Kind, dst)
	}
}

// readPrimitiveWidened reads a value encoded under writeKind, widening it to
// readKind when the kinds differ (only reachable when the two were already
// confirmed compatible by CanReadFrom, so the widening must be valid).
func readPrimitiveWidened(r *msgpack.Reader, readKind, writeKind Kind, dst reflect.Value) error {
	if readKind == writeKind {
		return readPrimitive(r, readKind, dst)
	}

	switch {
	case writeKind.isSignedInt() && readKind.isSignedInt():
		return readPrimitive(r, readKind, dst)
	case writeKind.isUnsignedInt() && readKind.isUnsignedInt():
		return readPrimitive(r, readKind, dst)
	case writeKind.isUnsignedInt() && readKind.isSignedInt():
		v, err := r.ReadUint()
		if err != nil {
			return faultf("readValue(widen)", "%w", err)
		}
		if dst.OverflowInt(int64(v)) {
			return faultf("readValue(widen)", "value %d overflows %s", v, dst.Type())
		}
		dst.SetInt(int64(v))
		return nil
	case writeKind == KindFloat32 && readKind == KindFloat64:
		return readPrimitive(r, readKind, dst)
	default:
		return faultf("readValue(widen)", "no widening path from %s to %s", writeKind, readKind)
	}
}

// tupleElem addresses element i of a Tuple-kinded value, which is backed by
// either a generic Tuple0..Tuple4 struct (tupleGenericProvider) or a Go
// fixed-size array [N]T (tupleProvider, provider_tuple.go) — the two have
// different reflect.Kind and need different accessors.
func tupleElem(v reflect.Value, i int) reflect.Value {
	if v.Kind() == reflect.Array {
		return v.Index(i)
	}
	return v.Field(i)
}

func (k Kind) isSignedInt() bool {
	return k == KindInt8 || k == KindInt16 || k == KindInt32 || k == KindInt64
}

func (k Kind) isUnsignedInt() bool {
	return k == KindUint8 || k == KindUint16 || k == KindUint32 || k == KindUint64
}

// setEnumValue assigns the member name (identified by idx, its position in
// the read schema's declared member set) to dst. String-kinded enums store
// the name directly; int-kinded enums store idx, mirroring the index-based
// resolution enumMemberName uses when encoding them (§C).
func setEnumValue(dst reflect.Value, name string, idx int) error {
	switch dst.Kind() {
	case reflect.String:
		dst.SetString(name)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		dst.SetInt(int64(idx))
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		dst.SetUint(uint64(idx))
		return nil
	default:
		return faultf("readValue(enum)", "enum type %s is not string- or int-kinded; custom assignment required", dst.Type())
	}
}

func readComplex(r *msgpack.Reader, readSchema, writeSchema *Schema, dst reflect.Value, ctx *readCtx) error {
	n, err := r.ReadMapHeader()
	if err != nil {
		return faultf("readValue(complex)", "%w", err)
	}

	seen := make([]bool, len(readSchema.Fields))

	for i := 0; i < n; i++ {
		name, err := r.ReadString()
		if err != nil {
			return faultf("readValue(complex)", "%w", err)
		}

		ri := findFieldIndex(readSchema.Fields, name)
		wi := findFieldIndex(writeSchema.Fields, name)
		if wi < 0 {
			return faultf("readValue(complex)", "field %q not present in write schema", name)
		}

		if ri < 0 {
			switch ctx.policy {
			case Throw:
				return faultf("readValue(complex)", "unexpected field %q", name)
			default:
				ctx.logger.Logf(logging.Debug, "ignoring unexpected field %q on %s", name, readSchema.GoType)
			}
			if err := r.Skip(); err != nil {
				return err
			}
			continue
		}

		f := readSchema.Fields[ri]
		wf := writeSchema.Fields[wi]
		seen[ri] = true
		if err := readValue(r, f.Schema, wf.Schema, dst.FieldByIndex(f.GoIndex), ctx); err != nil {
			return err
		}
	}

	for i, f := range readSchema.Fields {
		if seen[i] {
			continue
		}
		if !f.HasDefault {
			return faultf("readValue(complex)", "missing required field %q", f.Name)
		}
		ctx.logger.Logf(logging.Debug, "defaulting missing field %q on %s", f.Name, readSchema.GoType)
		if f.Default.IsValid() {
			dst.FieldByIndex(f.GoIndex).Set(f.Default)
		}
	}

	return nil
}

func findFieldIndex(fields []*Field, name string) int {
	i := sort.Search(len(fields), func(i int) bool {
		return !asciiLess(fields[i].Name, name)
	})
	if i < len(fields) && equalFold1(fields[i].Name, name) {
		return i
	}
	return -1
}

func equalFold1(a, b string) bool {
	return asciiFold(a) == asciiFold(b)
}

func readUnion(r *msgpack.Reader, readSchema, writeSchema *Schema, dst reflect.Value, ctx *readCtx) error {
	n, err := r.ReadArrayHeader()
	if err != nil {
		return faultf("readValue(union)", "%w", err)
	}
	if n != 2 {
		return faultf("readValue(union)", "expected 2-element union array, got %d", n)
	}

	name, err := r.ReadString()
	if err != nil {
		return faultf("readValue(union)", "%w", err)
	}

	wi := findMemberIndex(writeSchema.UnionMembers, name)
	if wi < 0 {
		return faultf("readValue(union)", "unknown union member %q on wire", name)
	}
	ri := findMemberIndex(readSchema.UnionMembers, name)
	if ri < 0 {
		return faultf("readValue(union)", "union member %q not known to reader", name)
	}

	rm := readSchema.UnionMembers[ri]
	wm := writeSchema.UnionMembers[wi]

	payload := reflect.New(rm.GoType).Elem()
	if err := readValue(r, rm.Schema, wm.Schema, payload, ctx); err != nil {
		return err
	}
	dst.Set(payload)
	return nil
}

func findMemberIndex(members []*Member, name string) int {
	for i, m := range members {
		if equalFold1(m.Name, name) {
			return i
		}
	}
	return -1
}
