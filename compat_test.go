package msgpackstrict

import (
	"reflect"
	"sort"
	"testing"
)

type person struct {
	Name string
	Age  int32
}

type personWithScore struct {
	Name  string
	Age   int32
	Score float64
}

type personWithDefaultHeight struct {
	Name   string
	Age    int32
	Height float64 `msgpack:",default=NaN"`
}

type enumAbc string

func (enumAbc) EnumMembers() []string { return []string{"A", "B", "C"} }

type enumAbcd string

func (enumAbcd) EnumMembers() []string { return []string{"A", "B", "C", "D"} }

func TestCanReadFrom_reflexivity(t *testing.T) {
	c := NewSchemaCollection()
	write, err := c.GetOrAddWriteSchema(reflect.TypeOf(person{}))
	if err != nil {
		t.Fatal(err)
	}
	read, err := c.GetOrAddReadSchema(reflect.TypeOf(person{}))
	if err != nil {
		t.Fatal(err)
	}
	if !read.CanReadFrom(write, true) {
		t.Fatalf("expected reflexive strict match")
	}
}

func TestCanReadFrom_scenario2_extraWriterField(t *testing.T) {
	c := NewSchemaCollection()
	write, _ := c.GetOrAddWriteSchema(reflect.TypeOf(personWithScore{}))
	read, _ := c.GetOrAddReadSchema(reflect.TypeOf(person{}))

	if !read.CanReadFrom(write, false) {
		t.Fatalf("expected relaxed match for extra writer field")
	}
	if read.CanReadFrom(write, true) {
		t.Fatalf("expected strict no-match for extra writer field")
	}
}

func TestCanReadFrom_scenario3_missingDefaultedField(t *testing.T) {
	c := NewSchemaCollection()
	write, _ := c.GetOrAddWriteSchema(reflect.TypeOf(person{}))
	read, _ := c.GetOrAddReadSchema(reflect.TypeOf(personWithDefaultHeight{}))

	if !read.CanReadFrom(write, false) {
		t.Fatalf("expected relaxed match for missing defaulted field")
	}
	if !read.CanReadFrom(write, true) {
		t.Fatalf("expected strict match for missing defaulted field (spec §8 scenario 3)")
	}
}

func TestCanReadFrom_scenario4_enumWidening(t *testing.T) {
	c := NewSchemaCollection()
	write, _ := c.GetOrAddWriteSchema(reflect.TypeOf(enumAbc("")))
	read, _ := c.GetOrAddReadSchema(reflect.TypeOf(enumAbcd("")))

	if !read.CanReadFrom(write, false) {
		t.Fatalf("expected relaxed enum superset match")
	}
	if read.CanReadFrom(write, true) {
		t.Fatalf("expected strict enum mismatch")
	}
}

// unionSchema builds a bare KindUnion schema from primitive member kinds,
// sorted the way unionProvider.Build sorts real registered unions, without
// going through RegisterUnion — unionCanReadFrom only looks at
// Schema.UnionMembers, so a hand-built schema exercises it directly.
func unionSchema(kinds ...Kind) *Schema {
	members := make([]*Member, len(kinds))
	for i, k := range kinds {
		members[i] = &Member{Name: k.String(), Schema: &Schema{Kind: k}}
	}
	sort.Slice(members, func(i, j int) bool { return asciiLess(members[i].Name, members[j].Name) })
	return &Schema{Kind: KindUnion, UnionMembers: members}
}

func TestCanReadFrom_scenario5_unionWidening(t *testing.T) {
	write := unionSchema(KindInt32, KindString)
	read := unionSchema(KindInt32, KindString, KindFloat64)

	if !read.CanReadFrom(write, false) {
		t.Fatalf("expected relaxed match: reader union is a superset of writer union")
	}
	if read.CanReadFrom(write, true) {
		t.Fatalf("expected strict no-match: reader union has extra members")
	}
}

func TestCanReadFrom_scenario6_unionNarrowingForbidden(t *testing.T) {
	write := unionSchema(KindInt32, KindString, KindFloat64)
	read := unionSchema(KindInt32, KindString)

	if read.CanReadFrom(write, false) {
		t.Fatalf("expected relaxed no-match: writer union has a member the reader lacks")
	}
	if read.CanReadFrom(write, true) {
		t.Fatalf("expected strict no-match: writer union has a member the reader lacks")
	}
}

func TestCanReadFrom_scenario7_emptyReader(t *testing.T) {
	c := NewSchemaCollection()
	write, _ := c.GetOrAddWriteSchema(reflect.TypeOf(person{}))
	read, _ := c.GetOrAddReadSchema(reflect.TypeOf(Empty{}))

	if !read.CanReadFrom(write, false) {
		t.Fatalf("expected relaxed empty-reader match")
	}
	if read.CanReadFrom(write, true) {
		t.Fatalf("expected strict empty-reader no-match (spec §8 scenario 7)")
	}
}

func TestCanReadFrom_scenario8_listOfCompatibleRecords(t *testing.T) {
	c := NewSchemaCollection()
	write, _ := c.GetOrAddWriteSchema(reflect.TypeOf([]personWithScore{}))
	read, _ := c.GetOrAddReadSchema(reflect.TypeOf([]person{}))

	if !read.CanReadFrom(write, false) {
		t.Fatalf("expected relaxed match for list of wider records")
	}
	if read.CanReadFrom(write, true) {
		t.Fatalf("expected strict no-match for list of wider records")
	}
}

func TestCanReadFrom_missingRequiredField_failsBothModes(t *testing.T) {
	type personWithRequiredHeight struct {
		Name   string
		Age    int32
		Height float64
	}

	c := NewSchemaCollection()
	write, _ := c.GetOrAddWriteSchema(reflect.TypeOf(person{}))
	read, _ := c.GetOrAddReadSchema(reflect.TypeOf(personWithRequiredHeight{}))

	if read.CanReadFrom(write, false) {
		t.Fatalf("expected relaxed no-match: reader field has no default")
	}
	if read.CanReadFrom(write, true) {
		t.Fatalf("expected strict no-match: reader field has no default")
	}
}

func TestCanReadFrom_monotonicityOfRelaxation(t *testing.T) {
	c := NewSchemaCollection()
	write, _ := c.GetOrAddWriteSchema(reflect.TypeOf(personWithScore{}))
	read, _ := c.GetOrAddReadSchema(reflect.TypeOf(person{}))

	if read.CanReadFrom(write, true) && !read.CanReadFrom(write, false) {
		t.Fatalf("strict match must imply relaxed match")
	}
}

func TestCanReadFrom_crossVariantMismatch(t *testing.T) {
	c := NewSchemaCollection()
	write, _ := c.GetOrAddWriteSchema(reflect.TypeOf(person{}))
	read, _ := c.GetOrAddReadSchema(reflect.TypeOf(int32(0)))

	if read.CanReadFrom(write, false) {
		t.Fatalf("expected cross-variant mismatch to fail")
	}
}
