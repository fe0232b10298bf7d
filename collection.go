package msgpackstrict

import (
	"reflect"
	"strconv"
	"sync"

	"github.com/drewnoakes/msgpack-strict/logging"
)

// SchemaCollection is a memoizing factory and graph builder for schemas
// (§4.1): it builds schemas for Go types lazily, deduplicates structurally
// equal by-reference nodes, and resolves recursive types via a two-phase
// allocate-then-populate bind.
//
// A SchemaCollection is mutable while schemas are being derived and safe
// for concurrent reads once fully populated; concurrent derivation on a
// shared collection is guarded by an internal mutex (§5).
type SchemaCollection struct {
	mu sync.Mutex

	providers []Provider

	write map[reflect.Type]*Schema
	read  map[reflect.Type]*Schema

	// interned holds, per (Kind, Flavor), the canonical by-reference
	// schemas created so far, used to deduplicate structurally equal nodes.
	interned map[internKey][]*Schema
	nextID   int

	unions map[reflect.Type]*unionRegistration

	Logger logging.Logger
}

type internKey struct {
	kind   Kind
	flavor Flavor
}

type unionRegistration struct {
	iface   reflect.Type
	members []reflect.Type
}

// NewSchemaCollection returns an empty SchemaCollection using the built-in
// provider chain.
func NewSchemaCollection() *SchemaCollection {
	return &SchemaCollection{
		providers: defaultProviders(),
		write:     map[reflect.Type]*Schema{},
		read:      map[reflect.Type]*Schema{},
		interned:  map[internKey][]*Schema{},
		unions:    map[reflect.Type]*unionRegistration{},
		Logger:    logging.Noop{},
	}
}

// RegisterUnion records iface (an interface type, obtained via
// reflect.TypeOf((*I)(nil)).Elem()) as a union marker whose members are the
// concrete types of each value in members.
func (c *SchemaCollection) RegisterUnion(iface reflect.Type, members ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	memberTypes := make([]reflect.Type, len(members))
	for i, m := range members {
		memberTypes[i] = reflect.TypeOf(m)
	}
	c.unions[iface] = &unionRegistration{iface: iface, members: memberTypes}
}

// GetOrAddWriteSchema returns the write schema for t, building it (and any
// schemas it transitively depends on) if this is the first request.
func (c *SchemaCollection) GetOrAddWriteSchema(t reflect.Type) (*Schema, error) {
	return c.getOrAdd(t, FlavorWrite)
}

// GetOrAddReadSchema returns the read schema for t, building it (and any
// schemas it transitively depends on) if this is the first request.
func (c *SchemaCollection) GetOrAddReadSchema(t reflect.Type) (*Schema, error) {
	return c.getOrAdd(t, FlavorRead)
}

func (c *SchemaCollection) tableFor(flavor Flavor) map[reflect.Type]*Schema {
	if flavor == FlavorRead {
		return c.read
	}
	return c.write
}

func (c *SchemaCollection) getOrAdd(t reflect.Type, flavor Flavor) (*Schema, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.getOrAddLocked(t, flavor)
}

func (c *SchemaCollection) getOrAddLocked(t reflect.Type, flavor Flavor) (*Schema, error) {
	table := c.tableFor(flavor)
	if s, ok := table[t]; ok {
		return s, nil
	}

	provider := findProvider(c, t)
	if provider == nil {
		return nil, &UnsupportedTypeError{Type: t}
	}

	s := &Schema{Flavor: flavor, GoType: t}
	// Pre-register before Build so that recursive requests for t (cycles
	// through by-reference kinds) observe this placeholder instead of
	// recursing forever.
	table[t] = s

	if err := provider.Build(c, t, flavor, s); err != nil {
		delete(table, t)
		return nil, err
	}

	if !provider.IsByReference() {
		return s, nil
	}

	if existing := c.dedupe(s); existing != nil {
		table[t] = existing
		c.Logger.Logf(logging.Trace, "%s schema for %s deduplicated onto existing id %s", flavor, t, existing.id)
		return existing, nil
	}

	c.nextID++
	s.id = strconv.Itoa(c.nextID)
	key := internKey{kind: s.Kind, flavor: flavor}
	c.interned[key] = append(c.interned[key], s)
	c.Logger.Logf(logging.Trace, "interned new %s %s schema for %s as id %s", flavor, s.Kind, t, s.id)
	return s, nil
}

// dedupe returns a previously interned schema structurally equal to s, if
// one exists.
func (c *SchemaCollection) dedupe(s *Schema) *Schema {
	key := internKey{kind: s.Kind, flavor: s.Flavor}
	for _, existing := range c.interned[key] {
		if existing.Equal(s) {
			return existing
		}
	}
	return nil
}

// GetOrCreate interns a freshly constructed by-reference schema, returning
// an existing structurally-equal schema if one is already present in the
// collection. Used by CopyTo to deduplicate nodes copied from another
// collection.
func (c *SchemaCollection) GetOrCreate(archetype *Schema, factory func() *Schema) *Schema {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing := c.dedupe(archetype); existing != nil {
		return existing
	}

	s := factory()
	c.nextID++
	s.id = strconv.Itoa(c.nextID)
	key := internKey{kind: s.Kind, flavor: s.Flavor}
	c.interned[key] = append(c.interned[key], s)
	return s
}

// CopyTo produces a schema rooted in dst that is structurally equivalent to
// s, which belongs to another collection. By-reference nodes are rebuilt with identifiers
// local to dst; by-value nodes are simply rebuilt inline. Schemas from
// different collections are never identity-equal even when structurally
// equal (§3.5), which is exactly what CopyTo is for: sharing schema shapes
// across collections without sharing identity.
func (s *Schema) CopyTo(dst *SchemaCollection) *Schema {
	return copySchema(s, dst, map[*Schema]*Schema{})
}

func copySchema(s *Schema, dst *SchemaCollection, seen map[*Schema]*Schema) *Schema {
	if s == nil {
		return nil
	}
	if cp, ok := seen[s]; ok {
		return cp
	}

	switch s.Kind {
	case KindNullable, KindSequence:
		cp := &Schema{Kind: s.Kind, Flavor: s.Flavor, GoType: s.GoType}
		seen[s] = cp
		cp.Elem = copySchema(s.Elem, dst, seen)
		return cp
	case KindMapping:
		cp := &Schema{Kind: s.Kind, Flavor: s.Flavor, GoType: s.GoType}
		seen[s] = cp
		cp.MapKey = copySchema(s.MapKey, dst, seen)
		cp.MapValue = copySchema(s.MapValue, dst, seen)
		return cp
	case KindTuple:
		cp := &Schema{Kind: s.Kind, Flavor: s.Flavor, GoType: s.GoType}
		seen[s] = cp
		cp.Elements = make([]*Schema, len(s.Elements))
		for i, e := range s.Elements {
			cp.Elements[i] = copySchema(e, dst, seen)
		}
		return cp
	case KindEnum:
		placeholder := &Schema{Kind: s.Kind, Flavor: s.Flavor, GoType: s.GoType, Members: append([]string{}, s.Members...)}
		seen[s] = placeholder
		return dst.GetOrCreate(placeholder, func() *Schema { return placeholder })
	case KindComplex:
		placeholder := &Schema{Kind: s.Kind, Flavor: s.Flavor, GoType: s.GoType}
		seen[s] = placeholder
		placeholder.Fields = make([]*Field, len(s.Fields))
		for i, f := range s.Fields {
			placeholder.Fields[i] = &Field{
				Name:       f.Name,
				HasDefault: f.HasDefault,
				Default:    f.Default,
				GoIndex:    f.GoIndex,
				Schema:     copySchema(f.Schema, dst, seen),
			}
		}
		return dst.GetOrCreate(placeholder, func() *Schema { return placeholder })
	case KindUnion:
		placeholder := &Schema{Kind: s.Kind, Flavor: s.Flavor, GoType: s.GoType}
		seen[s] = placeholder
		placeholder.UnionMembers = make([]*Member, len(s.UnionMembers))
		for i, m := range s.UnionMembers {
			placeholder.UnionMembers[i] = &Member{
				Name:   m.Name,
				GoType: m.GoType,
				Schema: copySchema(m.Schema, dst, seen),
			}
		}
		return dst.GetOrCreate(placeholder, func() *Schema { return placeholder })
	default: // primitive, empty
		cp := &Schema{Kind: s.Kind, Flavor: s.Flavor, GoType: s.GoType}
		seen[s] = cp
		return cp
	}
}

