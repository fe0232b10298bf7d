package msgpackstrict

import "reflect"

type mappingProvider struct{}

func (mappingProvider) CanProvide(c *SchemaCollection, t reflect.Type) bool {
	return t.Kind() == reflect.Map
}

func (mappingProvider) IsByReference() bool { return false }

func (mappingProvider) Build(c *SchemaCollection, t reflect.Type, flavor Flavor, s *Schema) error {
	s.Kind = KindMapping

	key, err := c.getOrAddLocked(t.Key(), flavor)
	if err != nil {
		return err
	}
	value, err := c.getOrAddLocked(t.Elem(), flavor)
	if err != nil {
		return err
	}
	s.MapKey = key
	s.MapValue = value
	return nil
}
