package msgpackstrict

import "reflect"

// Field is one entry of a Complex schema: a field name, its schema, and
// whether it carries a default (meaningful only on read schemas, §3.2).
type Field struct {
	Name       string
	Schema     *Schema
	HasDefault bool

	// Default is the value substituted at read time when the writer omitted
	// this field (§4.4), in strict and relaxed mode alike (§4.6). Only
	// meaningful when HasDefault is true.
	Default reflect.Value

	// GoIndex is the struct field index path (as for reflect.Value.FieldByIndex)
	// used to read/write this field's value on the Go struct GoType refers to.
	GoIndex []int
}
