package msgpackstrict

import (
	"reflect"
	"testing"
)

type fieldOrderSample struct {
	Zebra string
	apple string // unexported, must not appear in the schema
	Bob   int32
}

func TestComplexProvider_fieldsSortedCaseInsensitiveNoDuplicates(t *testing.T) {
	c := NewSchemaCollection()
	s, err := c.GetOrAddWriteSchema(reflect.TypeOf(fieldOrderSample{}))
	if err != nil {
		t.Fatal(err)
	}

	if len(s.Fields) != 2 {
		t.Fatalf("expected 2 exported fields, got %d: %+v", len(s.Fields), s.Fields)
	}
	if s.Fields[0].Name != "Bob" || s.Fields[1].Name != "Zebra" {
		t.Fatalf("expected case-insensitive ascending order Bob,Zebra; got %s,%s", s.Fields[0].Name, s.Fields[1].Name)
	}
}

type duplicateFieldSample struct {
	Name    string
	Surname string `msgpack:"name"`
}

func TestComplexProvider_duplicateFieldName_isSchemaInvariantError(t *testing.T) {
	c := NewSchemaCollection()
	_, err := c.GetOrAddWriteSchema(reflect.TypeOf(duplicateFieldSample{}))
	if err == nil {
		t.Fatalf("expected error for duplicate field name")
	}
	if _, ok := err.(*SchemaInvariantError); !ok {
		t.Fatalf("expected SchemaInvariantError, got %T: %v", err, err)
	}
}

func TestSchema_equal_byValueRecursion(t *testing.T) {
	c := NewSchemaCollection()
	a, _ := c.GetOrAddWriteSchema(reflect.TypeOf([]person{}))
	b, _ := c.GetOrAddWriteSchema(reflect.TypeOf([]person{}))

	if a != b {
		t.Fatalf("expected the collection to return the same cached schema for repeated requests")
	}
	if !a.Equal(b) {
		t.Fatalf("expected structurally identical schemas to compare equal")
	}
}

func TestSchema_equal_byReferenceRequiresSameGoType(t *testing.T) {
	// Two distinct named types with an identical field shape must not share
	// schema identity: Field.GoIndex is computed from each type's own
	// layout, and merging them would let one type's field offsets leak
	// into the other's (de)serialisation.
	type personAlias struct {
		Name string
		Age  int32
	}

	c := NewSchemaCollection()
	a, err := c.GetOrAddWriteSchema(reflect.TypeOf(person{}))
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.GetOrAddWriteSchema(reflect.TypeOf(personAlias{}))
	if err != nil {
		t.Fatal(err)
	}

	if a == b {
		t.Fatalf("distinct Go types should not be cached under the same schema pointer")
	}
	if a.ID() == b.ID() {
		t.Fatalf("distinct Go types should be assigned distinct schema ids, got both %s", a.ID())
	}
	if a.Equal(b) {
		t.Fatalf("schemas from different GoTypes must not compare equal")
	}
}

func TestSchema_copyTo_preservesShape(t *testing.T) {
	src := NewSchemaCollection()
	s, err := src.GetOrAddWriteSchema(reflect.TypeOf(person{}))
	if err != nil {
		t.Fatal(err)
	}

	dst := NewSchemaCollection()
	cp := s.CopyTo(dst)

	if !s.Equal(cp) {
		t.Fatalf("expected copied schema to be structurally equal to the source")
	}
	if cp.ID() == "" {
		t.Fatalf("expected the copy to be interned with an id of its own")
	}
}

func TestAsciiFold_ignoresUnicodeCasing(t *testing.T) {
	// asciiFold must only fold ASCII letters; a non-ASCII rune's case
	// handling is irrelevant to the comparator.
	if !asciiLess("Apple", "banana") {
		t.Fatalf("expected case-insensitive ascending order")
	}
	if asciiFold("ABC") != "abc" {
		t.Fatalf("expected ASCII fold abc, got %q", asciiFold("ABC"))
	}
	if asciiFold("É") != "É" {
		t.Fatalf("expected non-ASCII letters to be left unfolded, got %q", asciiFold("É"))
	}
}
