package msgpackstrict

import (
	"math"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type address struct {
	City string
	Zip  string
}

type customer struct {
	Name    string
	Age     int32
	Emails  []string
	Address *address
}

func TestSerialiser_roundTrip_scalarsAndNested(t *testing.T) {
	c := NewSchemaCollection()
	ser, err := NewSerialiser[customer](WithSchemaCollection[customer](c))
	if err != nil {
		t.Fatal(err)
	}
	deser, err := NewDeserialiser[customer](WithReadSchemaCollection[customer](c))
	if err != nil {
		t.Fatal(err)
	}

	in := customer{
		Name:   "Bob",
		Age:    36,
		Emails: []string{"bob@example.com", "b@example.com"},
		Address: &address{
			City: "Springfield",
			Zip:  "00000",
		},
	}

	data, err := ser.Serialise(in)
	if err != nil {
		t.Fatalf("Serialise: %v", err)
	}

	out, err := deser.Deserialise(data)
	if err != nil {
		t.Fatalf("Deserialise: %v", err)
	}

	if diff := cmp.Diff(in, out); diff != "" {
		t.Fatalf("round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSerialiser_roundTrip_nilPointer(t *testing.T) {
	c := NewSchemaCollection()
	ser, _ := NewSerialiser[customer](WithSchemaCollection[customer](c))
	deser, _ := NewDeserialiser[customer](WithReadSchemaCollection[customer](c))

	in := customer{Name: "Ann", Age: 20, Emails: []string{}}
	data, err := ser.Serialise(in)
	if err != nil {
		t.Fatal(err)
	}
	out, err := deser.Deserialise(data)
	if err != nil {
		t.Fatal(err)
	}
	if out.Address != nil {
		t.Fatalf("expected nil Address, got %+v", out.Address)
	}
}

type coordinates struct {
	Point [3]int32
}

func TestSerialiser_roundTrip_arrayTuple(t *testing.T) {
	// Exercises tupleProvider's [N]T realisation of KindTuple, distinct from
	// tupleGenericProvider's struct-backed TupleN: writeValue/readValue must
	// address elements via reflect.Value.Index, not .Field, for this shape.
	c := NewSchemaCollection()
	ser, err := NewSerialiser[coordinates](WithSchemaCollection[coordinates](c))
	if err != nil {
		t.Fatal(err)
	}
	deser, err := NewDeserialiser[coordinates](WithReadSchemaCollection[coordinates](c))
	if err != nil {
		t.Fatal(err)
	}

	in := coordinates{Point: [3]int32{1, 2, 3}}
	data, err := ser.Serialise(in)
	if err != nil {
		t.Fatalf("Serialise: %v", err)
	}
	out, err := deser.Deserialise(data)
	if err != nil {
		t.Fatalf("Deserialise: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Fatalf("round-trip mismatch (-want +got):\n%s", diff)
	}
}

type labeledPair struct {
	Pair Tuple2[string, int32]
}

func TestSerialiser_roundTrip_genericStructTuple(t *testing.T) {
	c := NewSchemaCollection()
	ser, err := NewSerialiser[labeledPair](WithSchemaCollection[labeledPair](c))
	if err != nil {
		t.Fatal(err)
	}
	deser, err := NewDeserialiser[labeledPair](WithReadSchemaCollection[labeledPair](c))
	if err != nil {
		t.Fatal(err)
	}

	in := labeledPair{Pair: Tuple2[string, int32]{First: "x", Second: 7}}
	data, err := ser.Serialise(in)
	if err != nil {
		t.Fatalf("Serialise: %v", err)
	}
	out, err := deser.Deserialise(data)
	if err != nil {
		t.Fatalf("Deserialise: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Fatalf("round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSerialiser_scenario1_exactMatch(t *testing.T) {
	writeC := NewSchemaCollection()
	readC := NewSchemaCollection()

	ser, _ := NewSerialiser[person](WithSchemaCollection[person](writeC))
	deser, _ := NewDeserialiser[person](WithReadSchemaCollection[person](readC))

	data, err := ser.Serialise(person{Name: "Bob", Age: 36})
	if err != nil {
		t.Fatal(err)
	}
	out, err := deser.Deserialise(data)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(person{Name: "Bob", Age: 36}, out); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestSerialiser_scenario2_extraWriterFieldIgnoredInRelaxedMode(t *testing.T) {
	writeC := NewSchemaCollection()
	readC := NewSchemaCollection()

	ser, _ := NewSerialiser[personWithScore](WithSchemaCollection[personWithScore](writeC))
	deser, _ := NewDeserialiser[person](WithReadSchemaCollection[person](readC))

	data, err := ser.Serialise(personWithScore{Name: "Bob", Age: 36, Score: 100.0})
	if err != nil {
		t.Fatal(err)
	}

	writeSchema, err := writeC.GetOrAddWriteSchema(reflect.TypeOf(personWithScore{}))
	if err != nil {
		t.Fatal(err)
	}

	out, err := deser.DeserialiseFrom(data, writeSchema)
	if err != nil {
		t.Fatalf("relaxed DeserialiseFrom: %v", err)
	}
	if diff := cmp.Diff(person{Name: "Bob", Age: 36}, out); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestSerialiser_scenario3_missingDefaultedFieldFilledIn(t *testing.T) {
	writeC := NewSchemaCollection()
	readC := NewSchemaCollection()

	ser, _ := NewSerialiser[person](WithSchemaCollection[person](writeC))
	deser, _ := NewDeserialiser[personWithDefaultHeight](WithReadSchemaCollection[personWithDefaultHeight](readC))

	data, err := ser.Serialise(person{Name: "Bob", Age: 36})
	if err != nil {
		t.Fatal(err)
	}

	writeSchema, err := writeC.GetOrAddWriteSchema(reflect.TypeOf(person{}))
	if err != nil {
		t.Fatal(err)
	}

	out, err := deser.DeserialiseFrom(data, writeSchema)
	if err != nil {
		t.Fatalf("DeserialiseFrom: %v", err)
	}
	if out.Name != "Bob" || out.Age != 36 {
		t.Fatalf("unexpected base fields: %+v", out)
	}
	if !math.IsNaN(out.Height) {
		t.Fatalf("expected Height to default to NaN, got %v", out.Height)
	}
}
