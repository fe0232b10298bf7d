package msgpackstrict

import (
	"reflect"
	"strings"
)

// UnionTypeName returns the canonical, human-readable union member name for
// t, per §6.2. Primitive Go types map to their canonical lowercase primitive
// name; slices and arrays render as "Elem[]"; generic instantiations render
// as "Outer(Inner1,Inner2,...)"; every other type renders as its unqualified
// type name. Names depend only on the type, never on memory layout, so they
// are stable across processes. The type arguments of a generic
// instantiation appear as reflect prints them, so a named type argument
// carries its package path, as in "Pair(example.com/pkg.Point,int32)".
func UnionTypeName(t reflect.Type) string {
	if k, ok := primitiveKindOf(t); ok {
		return k.String()
	}

	switch t.Kind() {
	case reflect.Ptr:
		return UnionTypeName(t.Elem())
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return KindBytes.String()
		}
		return UnionTypeName(t.Elem()) + "[]"
	case reflect.Array:
		return UnionTypeName(t.Elem()) + "[]"
	}

	return genericOrPlainName(t)
}

// genericOrPlainName renders t.Name() as "Outer(Inner1,Inner2)" when t is a
// generic instantiation (reflect renders these as "Outer[Inner1,Inner2]"),
// and as the bare unqualified name otherwise.
func genericOrPlainName(t reflect.Type) string {
	name := t.Name()
	open := strings.IndexByte(name, '[')
	if open < 0 || !strings.HasSuffix(name, "]") {
		return name
	}

	outer := name[:open]
	argList := name[open+1 : len(name)-1]
	args := splitTopLevel(argList)
	for i, a := range args {
		args[i] = strings.TrimSpace(a)
	}
	return outer + "(" + strings.Join(args, ",") + ")"
}

// splitTopLevel splits s on commas that are not nested inside [] brackets,
// since generic type argument lists may themselves contain instantiations.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}
