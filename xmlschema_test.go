package msgpackstrict

import (
	"reflect"
	"strings"
	"testing"
)

func TestSchema_toXml_complexWithNestedList(t *testing.T) {
	c := NewSchemaCollection()
	s, err := c.GetOrAddWriteSchema(reflect.TypeOf(customer{}))
	if err != nil {
		t.Fatal(err)
	}

	doc, err := s.ToXml()
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"<Complex", "<Field", "<List", "<Nullable"}
	for _, substr := range want {
		if !strings.Contains(string(doc), substr) {
			t.Errorf("expected XML to contain %q, got:\n%s", substr, doc)
		}
	}
}

func TestXmlSchema_roundTrip_canonicality(t *testing.T) {
	c := NewSchemaCollection()
	s, err := c.GetOrAddWriteSchema(reflect.TypeOf(person{}))
	if err != nil {
		t.Fatal(err)
	}

	doc, err := s.ToXml()
	if err != nil {
		t.Fatal(err)
	}

	c2 := NewSchemaCollection()
	parsed, err := c2.FromXml(doc)
	if err != nil {
		t.Fatalf("FromXml: %v", err)
	}

	if parsed.Kind != KindComplex {
		t.Fatalf("expected KindComplex, got %s", parsed.Kind)
	}
	if len(parsed.Fields) != len(s.Fields) {
		t.Fatalf("expected %d fields, got %d", len(s.Fields), len(parsed.Fields))
	}
	for i, f := range s.Fields {
		if !strings.EqualFold(f.Name, parsed.Fields[i].Name) {
			t.Errorf("field[%d] name mismatch: %q vs %q", i, f.Name, parsed.Fields[i].Name)
		}
		if f.Schema.Kind != parsed.Fields[i].Schema.Kind {
			t.Errorf("field[%d] kind mismatch: %s vs %s", i, f.Schema.Kind, parsed.Fields[i].Schema.Kind)
		}
	}
}

func TestXmlSchema_roundTrip_defaultedField(t *testing.T) {
	c := NewSchemaCollection()
	s, err := c.GetOrAddReadSchema(reflect.TypeOf(personWithDefaultHeight{}))
	if err != nil {
		t.Fatal(err)
	}

	doc, err := s.ToXml()
	if err != nil {
		t.Fatal(err)
	}

	c2 := NewSchemaCollection()
	parsed, err := c2.FromXml(doc)
	if err != nil {
		t.Fatal(err)
	}

	var heightField *Field
	for _, f := range parsed.Fields {
		if strings.EqualFold(f.Name, "Height") {
			heightField = f
		}
	}
	if heightField == nil {
		t.Fatalf("expected a Height field in parsed schema")
	}
	if !heightField.HasDefault {
		t.Errorf("expected Height field to round-trip as having a default")
	}
}
