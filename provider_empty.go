package msgpackstrict

import "reflect"

// Empty is the sentinel designated-empty-value type: a reader declared with
// this type accepts any writer schema and reads a value carrying no data,
// modelled directly on the teacher's document.NoSerde{} empty-marker type.
type Empty struct{}

var emptyType = reflect.TypeOf(Empty{})

type emptyProvider struct{}

func (emptyProvider) CanProvide(c *SchemaCollection, t reflect.Type) bool {
	return t == emptyType
}

func (emptyProvider) IsByReference() bool { return false }

func (emptyProvider) Build(c *SchemaCollection, t reflect.Type, flavor Flavor, s *Schema) error {
	s.Kind = KindEmpty
	return nil
}
