package msgpackstrict

import "reflect"

// Provider is a pluggable resolver from a Go type to a schema shape: the
// Type Providers (TP) component of §4.2. The first registered Provider
// whose CanProvide returns true owns that type.
type Provider interface {
	// CanProvide reports whether this provider handles t.
	CanProvide(c *SchemaCollection, t reflect.Type) bool

	// IsByReference reports whether schemas this provider builds have
	// reference identity (Complex, Union, Enum) and must be pre-registered
	// in the collection before Build populates them, to break cycles.
	IsByReference() bool

	// Build populates s (already stamped with Kind, Flavor and GoType by
	// the collection) for type t. For by-reference kinds, s has already
	// been inserted into the collection's cache, so recursive calls back
	// into the same collection for t will observe the placeholder.
	Build(c *SchemaCollection, t reflect.Type, flavor Flavor, s *Schema) error
}

// defaultProviders is the built-in provider chain, in dispatch priority
// order. Enum and Union must precede Primitive and Complex respectively,
// since they're distinguished by an implemented interface rather than by
// reflect.Kind alone.
func defaultProviders() []Provider {
	return []Provider{
		emptyProvider{},
		enumProvider{},
		unionProvider{},
		nullableProvider{},
		tupleGenericProvider{},
		primitiveProvider{},
		tupleProvider{},
		sequenceProvider{},
		mappingProvider{},
		complexProvider{},
	}
}

func findProvider(c *SchemaCollection, t reflect.Type) Provider {
	for _, p := range c.providers {
		if p.CanProvide(c, t) {
			return p
		}
	}
	return nil
}
