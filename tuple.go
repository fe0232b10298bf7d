package msgpackstrict

import "reflect"

// tupleValue marks the generic TupleN wrapper types below as heterogeneous
// tuples, distinguishing them from ordinary structs (which the Complex
// provider would otherwise claim). Go has no native heterogeneous tuple
// type; spec.md's "ordered list of element schemas" is otherwise realised
// only by homogeneous fixed-size arrays (see tupleProvider in
// provider_tuple.go) — these wrapper types give callers a way to model a
// true heterogeneous tuple when they need one (SPEC_FULL.md §C).
type tupleValue interface {
	isTupleValue()
}

// Tuple0 is the empty tuple.
type Tuple0 struct{}

func (Tuple0) isTupleValue() {}

// Tuple1 is a 1-element heterogeneous tuple.
type Tuple1[A any] struct {
	First A
}

func (Tuple1[A]) isTupleValue() {}

// Tuple2 is a 2-element heterogeneous tuple.
type Tuple2[A, B any] struct {
	First  A
	Second B
}

func (Tuple2[A, B]) isTupleValue() {}

// Tuple3 is a 3-element heterogeneous tuple.
type Tuple3[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

func (Tuple3[A, B, C]) isTupleValue() {}

// Tuple4 is a 4-element heterogeneous tuple.
type Tuple4[A, B, C, D any] struct {
	First  A
	Second B
	Third  C
	Fourth D
}

func (Tuple4[A, B, C, D]) isTupleValue() {}

var tupleValueInterfaceType = reflect.TypeOf((*tupleValue)(nil)).Elem()

type tupleGenericProvider struct{}

func (tupleGenericProvider) CanProvide(c *SchemaCollection, t reflect.Type) bool {
	return t.Kind() == reflect.Struct && t.Implements(tupleValueInterfaceType)
}

func (tupleGenericProvider) IsByReference() bool { return false }

func (tupleGenericProvider) Build(c *SchemaCollection, t reflect.Type, flavor Flavor, s *Schema) error {
	s.Kind = KindTuple
	s.Elements = make([]*Schema, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		elem, err := c.getOrAddLocked(t.Field(i).Type, flavor)
		if err != nil {
			return err
		}
		s.Elements[i] = elem
	}
	return nil
}
