package msgpackstrict

import (
	"reflect"

	"github.com/drewnoakes/msgpack-strict/internal/msgpack"
	"github.com/drewnoakes/msgpack-strict/logging"
)

// Deserialiser reads values of type T from the wire format described in
// §6.1, using a read schema derived once at construction time (§5: a
// Deserialiser is stateless once built).
type Deserialiser[T any] struct {
	collection *SchemaCollection
	schema     *Schema
	policy     UnexpectedFieldPolicy
	strict     bool
	logger     logging.Logger
}

// DeserialiserOption configures a Deserialiser at construction time.
type DeserialiserOption[T any] func(*Deserialiser[T])

// WithUnexpectedFieldPolicy overrides the default Ignore policy.
func WithUnexpectedFieldPolicy[T any](policy UnexpectedFieldPolicy) DeserialiserOption[T] {
	return func(d *Deserialiser[T]) {
		d.policy = policy
	}
}

// WithStrictCompatibility makes the CanReadFrom check strict (§4.6): no
// primitive widening, no skipped writer fields, no extra reader union or
// enum members. Defaulted-field substitution is still allowed.
func WithStrictCompatibility[T any](strict bool) DeserialiserOption[T] {
	return func(d *Deserialiser[T]) {
		d.strict = strict
	}
}

// WithReadSchemaCollection uses an existing SchemaCollection instead of
// allocating a private one.
func WithReadSchemaCollection[T any](c *SchemaCollection) DeserialiserOption[T] {
	return func(d *Deserialiser[T]) {
		d.collection = c
	}
}

// WithDeserialiserLogger overrides the no-op default logger.
func WithDeserialiserLogger[T any](l logging.Logger) DeserialiserOption[T] {
	return func(d *Deserialiser[T]) {
		d.logger = l
	}
}

// NewDeserialiser derives (or reuses) the read schema for T and returns a
// ready-to-use Deserialiser.
func NewDeserialiser[T any](opts ...DeserialiserOption[T]) (*Deserialiser[T], error) {
	d := &Deserialiser[T]{policy: Ignore, logger: logging.Noop{}}
	for _, opt := range opts {
		opt(d)
	}
	if d.collection == nil {
		d.collection = NewSchemaCollection()
	}

	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		t = reflect.TypeOf(&zero).Elem()
	}

	schema, err := d.collection.GetOrAddReadSchema(t)
	if err != nil {
		return nil, err
	}
	d.schema = schema
	return d, nil
}

// Schema returns the read schema T was bound to.
func (d *Deserialiser[T]) Schema() *Schema {
	return d.schema
}

// Deserialise decodes a single MessagePack message as T, deriving the
// writer's schema from the same Go type (§4.1: in the absence of an
// out-of-band schema exchange, the writer's schema is assumed to be T's own
// write schema — the common embedded-schema-free wire scenario). Use
// DeserialiseFrom to validate against an explicit writeSchema instead, as
// when the writer and reader are known to be different versions of T.
func (d *Deserialiser[T]) Deserialise(data []byte) (T, error) {
	writeSchema, err := d.collection.GetOrAddWriteSchema(d.schema.GoType)
	if err != nil {
		var zero T
		return zero, err
	}
	return d.DeserialiseFrom(data, writeSchema)
}

// DeserialiseFrom decodes a single MessagePack message known to have been
// produced under writeSchema, which must satisfy d.Schema().CanReadFrom.
func (d *Deserialiser[T]) DeserialiseFrom(data []byte, writeSchema *Schema) (T, error) {
	var out T

	if !d.schema.CanReadFrom(writeSchema, d.strict) {
		return out, faultf("Deserialise", "read schema cannot read write schema: %s / %s", d.schema, writeSchema)
	}

	r := msgpack.NewReader(data)
	dst := reflect.New(d.schema.GoType).Elem()
	ctx := &readCtx{strict: d.strict, policy: d.policy, logger: d.logger}
	if err := readValue(r, d.schema, writeSchema, dst, ctx); err != nil {
		return out, err
	}

	return dst.Interface().(T), nil
}
