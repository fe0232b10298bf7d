package msgpackstrict

import "reflect"

// Member is one entry of a Union schema: a canonical member name (§6.2) and
// the schema of its payload.
type Member struct {
	Name   string
	Schema *Schema

	// GoType is the concrete member type this Member represents, as
	// registered with RegisterUnion.
	GoType reflect.Type
}
