package msgpackstrict

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

type complexProvider struct{}

func (complexProvider) CanProvide(c *SchemaCollection, t reflect.Type) bool {
	return t.Kind() == reflect.Struct
}

func (complexProvider) IsByReference() bool { return true }

func (complexProvider) Build(c *SchemaCollection, t reflect.Type, flavor Flavor, s *Schema) error {
	s.Kind = KindComplex

	fields := make([]*Field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.PkgPath != "" { // unexported
			continue
		}

		name, hasDefault, literal := parseFieldTag(sf)

		fieldSchema, err := c.getOrAddLocked(sf.Type, flavor)
		if err != nil {
			return fmt.Errorf("field %s.%s: %w", t, sf.Name, err)
		}

		f := &Field{
			Name:       name,
			Schema:     fieldSchema,
			HasDefault: hasDefault,
			GoIndex:    append([]int{}, sf.Index...),
		}

		if hasDefault {
			def, err := parseDefaultLiteral(literal, sf.Type)
			if err != nil {
				return &SchemaInvariantError{Reason: fmt.Sprintf("field %s.%s: %v", t, sf.Name, err)}
			}
			f.Default = def
		}

		fields = append(fields, f)
	}

	sort.Slice(fields, func(i, j int) bool {
		return asciiLess(fields[i].Name, fields[j].Name)
	})

	for i := 1; i < len(fields); i++ {
		if strings.EqualFold(fields[i-1].Name, fields[i].Name) {
			return &SchemaInvariantError{Reason: fmt.Sprintf("complex %s declares duplicate field name %q", t, fields[i].Name)}
		}
	}

	s.Fields = fields
	return nil
}

// parseFieldTag reads a struct field's `msgpack:"name,default=literal"` tag.
// An absent tag or empty name segment defaults the wire name to sf.Name.
func parseFieldTag(sf reflect.StructField) (name string, hasDefault bool, literal string) {
	name = sf.Name
	tag, ok := sf.Tag.Lookup("msgpack")
	if !ok {
		return name, false, ""
	}

	parts := strings.Split(tag, ",")
	if parts[0] != "" {
		name = parts[0]
	}

	for _, opt := range parts[1:] {
		if opt == "default" {
			hasDefault = true
			continue
		}
		if strings.HasPrefix(opt, "default=") {
			hasDefault = true
			literal = strings.TrimPrefix(opt, "default=")
		}
	}

	return name, hasDefault, literal
}
