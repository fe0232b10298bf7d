package msgpackstrict

import (
	"fmt"
	"reflect"
	"sort"
)

type unionProvider struct{}

func (unionProvider) CanProvide(c *SchemaCollection, t reflect.Type) bool {
	if t.Kind() != reflect.Interface {
		return false
	}
	_, ok := c.unions[t]
	return ok
}

func (unionProvider) IsByReference() bool { return true }

func (unionProvider) Build(c *SchemaCollection, t reflect.Type, flavor Flavor, s *Schema) error {
	s.Kind = KindUnion

	reg := c.unions[t]
	members := make([]*Member, 0, len(reg.members))
	for _, mt := range reg.members {
		memberSchema, err := c.getOrAddLocked(mt, flavor)
		if err != nil {
			return err
		}
		members = append(members, &Member{
			Name:   UnionTypeName(mt),
			Schema: memberSchema,
			GoType: mt,
		})
	}

	sort.Slice(members, func(i, j int) bool {
		return asciiLess(members[i].Name, members[j].Name)
	})

	for i := 1; i < len(members); i++ {
		if asciiFold(members[i-1].Name) == asciiFold(members[i].Name) {
			return &SchemaInvariantError{Reason: fmt.Sprintf("union %s declares duplicate member name %q", t, members[i].Name)}
		}
	}

	s.UnionMembers = members
	return nil
}
