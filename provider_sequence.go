package msgpackstrict

import "reflect"

type sequenceProvider struct{}

func (sequenceProvider) CanProvide(c *SchemaCollection, t reflect.Type) bool {
	return t.Kind() == reflect.Slice
}

func (sequenceProvider) IsByReference() bool { return false }

func (sequenceProvider) Build(c *SchemaCollection, t reflect.Type, flavor Flavor, s *Schema) error {
	s.Kind = KindSequence
	elem, err := c.getOrAddLocked(t.Elem(), flavor)
	if err != nil {
		return err
	}
	s.Elem = elem
	return nil
}
