package msgpackstrict

import (
	"fmt"
	"reflect"
)

// UnsupportedTypeError is raised at schema derivation time when no
// registered Provider claims a Go type.
type UnsupportedTypeError struct {
	Type reflect.Type
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("msgpackstrict: unsupported type %s", e.Type)
}

// SchemaInvariantError reports a violation of one of the schema model's
// structural invariants: duplicate field/member names, an unresolved XML
// Contract reference, or a malformed schema document.
type SchemaInvariantError struct {
	Reason string
}

func (e *SchemaInvariantError) Error() string {
	return fmt.Sprintf("msgpackstrict: schema invariant violated: %s", e.Reason)
}

// DeserialisationFault reports any wire-level mismatch encountered while
// reading a message: wrong framing, wrong arity, an unparseable scalar, an
// unknown enum or union member, a missing required field, an unexpected
// field under the Throw policy, or a cross-variant mismatch.
type DeserialisationFault struct {
	Op  string
	Err error
}

func (e *DeserialisationFault) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("msgpackstrict: deserialisation fault: %s", e.Op)
	}
	return fmt.Sprintf("msgpackstrict: deserialisation fault: %s: %v", e.Op, e.Err)
}

func (e *DeserialisationFault) Unwrap() error { return e.Err }

// SerialisationFault reports a value that could not be written: an enum
// value with no member name, a union value of an unregistered member type,
// or a non-primitive kind reaching the primitive codec. Err holds the cause.
type SerialisationFault struct {
	Op  string
	Err error
}

func (e *SerialisationFault) Error() string {
	return fmt.Sprintf("msgpackstrict: serialisation fault: %s: %v", e.Op, e.Err)
}

func (e *SerialisationFault) Unwrap() error { return e.Err }

func faultf(op, format string, a ...interface{}) *DeserialisationFault {
	return &DeserialisationFault{Op: op, Err: fmt.Errorf(format, a...)}
}
