package msgpackstrict

import "reflect"

// tupleProvider maps Go fixed-size arrays [N]T to Tuple schemas: a
// homogeneous narrowing of "ordered list of element schemas" (SPEC_FULL.md
// §C), since plain Go arrays cannot express heterogeneous element types.
type tupleProvider struct{}

func (tupleProvider) CanProvide(c *SchemaCollection, t reflect.Type) bool {
	return t.Kind() == reflect.Array
}

func (tupleProvider) IsByReference() bool { return false }

func (tupleProvider) Build(c *SchemaCollection, t reflect.Type, flavor Flavor, s *Schema) error {
	s.Kind = KindTuple
	elem, err := c.getOrAddLocked(t.Elem(), flavor)
	if err != nil {
		return err
	}
	s.Elements = make([]*Schema, t.Len())
	for i := range s.Elements {
		s.Elements[i] = elem
	}
	return nil
}
