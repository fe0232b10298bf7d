package msgpackstrict

import "reflect"

type nullableProvider struct{}

func (nullableProvider) CanProvide(c *SchemaCollection, t reflect.Type) bool {
	return t.Kind() == reflect.Ptr
}

func (nullableProvider) IsByReference() bool { return false }

func (nullableProvider) Build(c *SchemaCollection, t reflect.Type, flavor Flavor, s *Schema) error {
	s.Kind = KindNullable
	elem, err := c.getOrAddLocked(t.Elem(), flavor)
	if err != nil {
		return err
	}
	s.Elem = elem
	return nil
}
