package msgpackstrict

import (
	"fmt"
	"reflect"
	"strings"
)

// Kind identifies the structural variant of a Schema.
type Kind int

// Enumerates the schema variants from §3.1 of the schema model.
const (
	KindBool Kind = iota
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindString
	KindBytes
	KindDecimal
	KindTimestamp

	KindNullable
	KindEnum
	KindTuple
	KindSequence
	KindMapping
	KindComplex
	KindUnion
	KindEmpty
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt8:
		return "int8"
	case KindInt16:
		return "int16"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindUint8:
		return "uint8"
	case KindUint16:
		return "uint16"
	case KindUint32:
		return "uint32"
	case KindUint64:
		return "uint64"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindDecimal:
		return "decimal"
	case KindTimestamp:
		return "timestamp"
	case KindNullable:
		return "nullable"
	case KindEnum:
		return "enum"
	case KindTuple:
		return "tuple"
	case KindSequence:
		return "list"
	case KindMapping:
		return "map"
	case KindComplex:
		return "complex"
	case KindUnion:
		return "union"
	case KindEmpty:
		return "empty"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// IsPrimitive reports whether k is one of the atomic primitive kinds.
func (k Kind) IsPrimitive() bool {
	return k <= KindTimestamp
}

// IsByReference reports whether schemas of kind k are identified by
// reference (Complex, Union, Enum) rather than inlined by value.
func (k Kind) IsByReference() bool {
	return k == KindComplex || k == KindUnion || k == KindEnum
}

// Flavor distinguishes a write schema (what a serialiser produces) from a
// read schema (what a deserialiser expects).
type Flavor int

const (
	FlavorWrite Flavor = iota
	FlavorRead
)

func (f Flavor) String() string {
	if f == FlavorRead {
		return "read"
	}
	return "write"
}

// Schema is a node in the structural schema tree. A single struct serves
// every Kind, following the same flat-struct convention as the teacher
// library's own Schema type (one struct covering every Smithy shape type),
// rather than one Go type per variant.
//
// Schema also doubles as the compiled (de)serialisation plan: GoType and,
// for Complex schemas, each Field's GoIndex are enough for the serialiser
// and deserialiser drivers to walk a value via reflection without any
// separate per-type code generation step.
type Schema struct {
	Kind   Kind
	Flavor Flavor
	GoType reflect.Type

	// id is assigned by the owning SchemaCollection to by-reference schemas
	// once their body has been populated and deduplicated. Empty for
	// by-value schemas.
	id string

	// Elem is the inner schema for Nullable and the element schema for
	// Sequence.
	Elem *Schema

	// Elements holds the ordered element schemas of a Tuple.
	Elements []*Schema

	// MapKey and MapValue are the key/value schemas of a Mapping.
	MapKey   *Schema
	MapValue *Schema

	// Members holds the ordered, declaration-order set of member names of
	// an Enum.
	Members []string

	// Fields holds a Complex schema's fields, sorted case-insensitive
	// lexicographic ascending by name (§3.2).
	Fields []*Field

	// UnionMembers holds a Union schema's members, sorted case-insensitive
	// lexicographic ascending by name (§3.3).
	UnionMembers []*Member
}

// ID returns the by-reference identifier assigned to this schema by its
// owning SchemaCollection, or "" if this schema is by-value or has not yet
// been interned.
func (s *Schema) ID() string {
	return s.id
}

// String returns a human-readable (not wire-canonical) textual form of the
// schema tree. By-reference nodes print their id instead of re-expanding
// their body once already visited in this call, so cyclic schemas always
// terminate.
func (s *Schema) String() string {
	var b strings.Builder
	s.writeString(&b, map[string]bool{})
	return b.String()
}

func (s *Schema) writeString(b *strings.Builder, seen map[string]bool) {
	if s == nil {
		b.WriteString("<nil>")
		return
	}

	if s.Kind.IsByReference() && s.id != "" {
		if seen[s.id] {
			fmt.Fprintf(b, "%s#%s", s.Kind, s.id)
			return
		}
		seen[s.id] = true
	}

	switch s.Kind {
	case KindNullable:
		b.WriteString("nullable<")
		s.Elem.writeString(b, seen)
		b.WriteString(">")
	case KindSequence:
		b.WriteString("list<")
		s.Elem.writeString(b, seen)
		b.WriteString(">")
	case KindMapping:
		b.WriteString("map<")
		s.MapKey.writeString(b, seen)
		b.WriteString(",")
		s.MapValue.writeString(b, seen)
		b.WriteString(">")
	case KindTuple:
		b.WriteString("tuple<")
		for i, e := range s.Elements {
			if i > 0 {
				b.WriteString(",")
			}
			e.writeString(b, seen)
		}
		b.WriteString(">")
	case KindEnum:
		fmt.Fprintf(b, "enum#%s{%s}", s.id, strings.Join(s.Members, ","))
	case KindComplex:
		fmt.Fprintf(b, "complex#%s(", s.id)
		for i, f := range s.Fields {
			if i > 0 {
				b.WriteString(",")
			}
			fmt.Fprintf(b, "%s", f.Name)
			if f.HasDefault {
				b.WriteString("?")
			}
			b.WriteString(":")
			f.Schema.writeString(b, seen)
		}
		b.WriteString(")")
	case KindUnion:
		fmt.Fprintf(b, "union#%s(", s.id)
		for i, m := range s.UnionMembers {
			if i > 0 {
				b.WriteString(",")
			}
			fmt.Fprintf(b, "%s:", m.Name)
			m.Schema.writeString(b, seen)
		}
		b.WriteString(")")
	case KindEmpty:
		b.WriteString("empty")
	default:
		b.WriteString(s.Kind.String())
	}
}

// Equal reports whether s and other describe the same schema shape,
// recursively. By-value schemas compare all of their constituents; by-
// reference schemas compare structurally (not by pointer identity), with a
// pairwise-visited memo so cyclic schemas terminate (the same bisimulation
// technique used by CanReadFrom, §4.6).
func (s *Schema) Equal(other *Schema) bool {
	return s.equal(other, map[[2]*Schema]bool{})
}

func (s *Schema) equal(other *Schema, seen map[[2]*Schema]bool) bool {
	if s == other {
		return true
	}
	if s == nil || other == nil {
		return false
	}
	if s.Kind != other.Kind || s.Flavor != other.Flavor {
		return false
	}
	// By-reference schemas also carry Go field indices (Field.GoIndex)
	// derived from their own GoType's layout; merging two schemas built
	// from different Go types would let one type's field offsets leak into
	// the other's (de)serialisation, so identity requires GoType equality
	// too, not just matching field/member shape.
	if s.Kind.IsByReference() && s.GoType != other.GoType {
		return false
	}

	key := [2]*Schema{s, other}
	if seen[key] {
		return true
	}
	seen[key] = true

	switch s.Kind {
	case KindNullable, KindSequence:
		return s.Elem.equal(other.Elem, seen)
	case KindMapping:
		return s.MapKey.equal(other.MapKey, seen) && s.MapValue.equal(other.MapValue, seen)
	case KindTuple:
		if len(s.Elements) != len(other.Elements) {
			return false
		}
		for i := range s.Elements {
			if !s.Elements[i].equal(other.Elements[i], seen) {
				return false
			}
		}
		return true
	case KindEnum:
		return equalFoldSlices(s.Members, other.Members)
	case KindComplex:
		if len(s.Fields) != len(other.Fields) {
			return false
		}
		for i := range s.Fields {
			a, b := s.Fields[i], other.Fields[i]
			if !strings.EqualFold(a.Name, b.Name) || a.HasDefault != b.HasDefault {
				return false
			}
			if !a.Schema.equal(b.Schema, seen) {
				return false
			}
		}
		return true
	case KindUnion:
		if len(s.UnionMembers) != len(other.UnionMembers) {
			return false
		}
		for i := range s.UnionMembers {
			a, b := s.UnionMembers[i], other.UnionMembers[i]
			if !strings.EqualFold(a.Name, b.Name) {
				return false
			}
			if !a.Schema.equal(b.Schema, seen) {
				return false
			}
		}
		return true
	case KindEmpty:
		return true
	default: // primitive
		return true
	}
}

func equalFoldSlices(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !strings.EqualFold(a[i], b[i]) {
			return false
		}
	}
	return true
}

// asciiLess reports whether a sorts before b under ordinal (ASCII
// lowercase-fold), not Unicode-casefold, comparison — the locale-independent
// comparator §9 requires for field/member ordering.
func asciiLess(a, b string) bool {
	return asciiFold(a) < asciiFold(b)
}

func asciiFold(s string) string {
	b := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		b[i] = c
	}
	return string(b)
}
