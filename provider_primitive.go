package msgpackstrict

import "reflect"

type primitiveProvider struct{}

func (primitiveProvider) CanProvide(c *SchemaCollection, t reflect.Type) bool {
	_, ok := primitiveKindOf(t)
	return ok
}

func (primitiveProvider) IsByReference() bool { return false }

func (primitiveProvider) Build(c *SchemaCollection, t reflect.Type, flavor Flavor, s *Schema) error {
	kind, _ := primitiveKindOf(t)
	s.Kind = kind
	return nil
}
