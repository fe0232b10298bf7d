package msgpackstrict

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Enum is implemented by named types that act as an enum: the ordered set of
// declared member names that make up the enum's schema content (§3.1). The
// underlying type is expected to be string- or integer-kinded. Where the
// type has a String() method (promoted fmt.Stringer, or the type's own),
// that is what is written to the wire as the member name; otherwise a
// string-kinded value is written as is and an integer-kinded value is taken
// as an index into EnumMembers().
type Enum interface {
	EnumMembers() []string
}

var enumInterfaceType = reflect.TypeOf((*Enum)(nil)).Elem()

type enumProvider struct{}

func (enumProvider) CanProvide(c *SchemaCollection, t reflect.Type) bool {
	if _, ok := primitiveKindOf(t); !ok {
		return false
	}
	return t.Implements(enumInterfaceType) || reflect.PtrTo(t).Implements(enumInterfaceType)
}

func (enumProvider) IsByReference() bool { return true }

func (enumProvider) Build(c *SchemaCollection, t reflect.Type, flavor Flavor, s *Schema) error {
	s.Kind = KindEnum

	members := zeroEnum(t).EnumMembers()
	seen := map[string]bool{}
	for _, m := range members {
		folded := asciiFold(m)
		if seen[folded] {
			return &SchemaInvariantError{Reason: fmt.Sprintf("enum %s declares duplicate member %q", t, m)}
		}
		seen[folded] = true
	}
	s.Members = members
	return nil
}

func zeroEnum(t reflect.Type) Enum {
	if t.Implements(enumInterfaceType) {
		return reflect.Zero(t).Interface().(Enum)
	}
	return reflect.New(t).Interface().(Enum)
}

// enumMemberName returns the wire member name for v, an addressable value
// whose type implements Enum. members is the enum's declared member set
// (Schema.Members), used to resolve an int-kinded value with no Stringer to
// its member name by treating the value as an index (§C).
func enumMemberName(v reflect.Value, members []string) (string, error) {
	if s, ok := v.Interface().(fmt.Stringer); ok {
		return s.String(), nil
	}
	if v.CanAddr() {
		if s, ok := v.Addr().Interface().(fmt.Stringer); ok {
			return s.String(), nil
		}
	}
	switch v.Kind() {
	case reflect.String:
		return v.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return enumMemberNameFromIndex(int(v.Int()), members)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return enumMemberNameFromIndex(int(v.Uint()), members)
	default:
		return "", fmt.Errorf("enum type %s has no String() method to resolve a member name", v.Type())
	}
}

func enumMemberNameFromIndex(idx int, members []string) (string, error) {
	if idx < 0 || idx >= len(members) {
		return "", fmt.Errorf("enum value %s has no corresponding member in %v", strconv.Itoa(idx), members)
	}
	return members[idx], nil
}

// enumMemberIndex finds the declared member matching name case-insensitively.
func enumMemberIndex(members []string, name string) int {
	for i, m := range members {
		if strings.EqualFold(m, name) {
			return i
		}
	}
	return -1
}
