package msgpackstrict

import (
	"reflect"

	"github.com/drewnoakes/msgpack-strict/internal/msgpack"
	"github.com/drewnoakes/msgpack-strict/logging"
)

// Serialiser writes values of type T to the wire format described in §6.1,
// using a write schema derived once at construction time and reused across
// calls (§5: a Serialiser is stateless once built).
type Serialiser[T any] struct {
	collection *SchemaCollection
	schema     *Schema
	logger     logging.Logger
}

// SerialiserOption configures a Serialiser at construction time.
type SerialiserOption[T any] func(*Serialiser[T])

// WithSchemaCollection uses an existing SchemaCollection instead of
// allocating a private one, so write schemas are shared (and deduplicated)
// across multiple Serialisers and Deserialisers.
func WithSchemaCollection[T any](c *SchemaCollection) SerialiserOption[T] {
	return func(s *Serialiser[T]) {
		s.collection = c
	}
}

// WithLogger overrides the no-op default logger.
func WithLogger[T any](l logging.Logger) SerialiserOption[T] {
	return func(s *Serialiser[T]) {
		s.logger = l
	}
}

// NewSerialiser derives (or reuses, if given a WithSchemaCollection option)
// the write schema for T and returns a ready-to-use Serialiser.
func NewSerialiser[T any](opts ...SerialiserOption[T]) (*Serialiser[T], error) {
	s := &Serialiser[T]{logger: logging.Noop{}}
	for _, opt := range opts {
		opt(s)
	}
	if s.collection == nil {
		s.collection = NewSchemaCollection()
	}

	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		t = reflect.TypeOf(&zero).Elem()
	}

	schema, err := s.collection.GetOrAddWriteSchema(t)
	if err != nil {
		return nil, err
	}
	s.schema = schema
	return s, nil
}

// Schema returns the write schema T was bound to.
func (s *Serialiser[T]) Schema() *Schema {
	return s.schema
}

// Serialise encodes value as a complete MessagePack message.
func (s *Serialiser[T]) Serialise(value T) ([]byte, error) {
	w := msgpack.NewWriter()
	v := reflect.ValueOf(value)
	if !v.IsValid() {
		s.logger.Logf(logging.Debug, "substituting zero value for nil %s", s.schema.GoType)
		v = reflect.Zero(s.schema.GoType)
	}
	if err := writeValue(w, s.schema, v); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}
