package msgpack

import "testing"

func TestWriteReadRoundTrip_scalars(t *testing.T) {
	w := NewWriter()
	w.WriteBool(true)
	w.WriteInt(-1)
	w.WriteUint(300)
	w.WriteFloat64(3.5)
	w.WriteString("bar")
	w.WriteNil()

	r := NewReader(w.Bytes())

	if b, err := r.ReadBool(); err != nil || b != true {
		t.Fatalf("ReadBool: %v, %v", b, err)
	}
	if i, err := r.ReadInt(); err != nil || i != -1 {
		t.Fatalf("ReadInt: %v, %v", i, err)
	}
	if u, err := r.ReadUint(); err != nil || u != 300 {
		t.Fatalf("ReadUint: %v, %v", u, err)
	}
	if f, err := r.ReadFloat64(); err != nil || f != 3.5 {
		t.Fatalf("ReadFloat64: %v, %v", f, err)
	}
	if s, err := r.ReadString(); err != nil || s != "bar" {
		t.Fatalf("ReadString: %q, %v", s, err)
	}
	if err := r.ReadNil(); err != nil {
		t.Fatalf("ReadNil: %v", err)
	}
	if r.Len() != 0 {
		t.Fatalf("expected fully consumed reader, %d bytes remain", r.Len())
	}
}

func TestWriteReadRoundTrip_containers(t *testing.T) {
	w := NewWriter()
	w.WriteMapHeader(2)
	w.WriteString("age")
	w.WriteInt(36)
	w.WriteString("name")
	w.WriteString("Bob")

	r := NewReader(w.Bytes())
	n, err := r.ReadMapHeader()
	if err != nil || n != 2 {
		t.Fatalf("ReadMapHeader: %d, %v", n, err)
	}

	k1, _ := r.ReadString()
	v1, _ := r.ReadInt()
	k2, _ := r.ReadString()
	v2, _ := r.ReadString()

	if k1 != "age" || v1 != 36 || k2 != "name" || v2 != "Bob" {
		t.Fatalf("unexpected decoded entries: %q=%d %q=%q", k1, v1, k2, v2)
	}
}

func TestSkip_nestedContainers(t *testing.T) {
	w := NewWriter()
	w.WriteArrayHeader(2)
	w.WriteMapHeader(1)
	w.WriteString("k")
	w.WriteString("v")
	w.WriteInt(7)
	w.WriteString("after")

	r := NewReader(w.Bytes())
	if _, err := r.ReadArrayHeader(); err != nil {
		t.Fatal(err)
	}
	if err := r.Skip(); err != nil {
		t.Fatalf("skip map: %v", err)
	}
	if err := r.Skip(); err != nil {
		t.Fatalf("skip int: %v", err)
	}
	if s, err := r.ReadString(); err != nil || s != "after" {
		t.Fatalf("ReadString: %q, %v", s, err)
	}
}

func TestWriteInt_picksCompactEncoding(t *testing.T) {
	cases := []struct {
		v        int64
		wantLen  int
	}{
		{0, 1},
		{127, 1},
		{-1, 1},
		{-32, 1},
		{-33, 2},
		{200, 2},
		{40000, 3},
		{1 << 40, 9},
	}
	for _, c := range cases {
		w := NewWriter()
		w.WriteInt(c.v)
		if len(w.Bytes()) != c.wantLen {
			t.Errorf("WriteInt(%d): got %d bytes, want %d", c.v, len(w.Bytes()), c.wantLen)
		}
		r := NewReader(w.Bytes())
		got, err := r.ReadInt()
		if err != nil || got != c.v {
			t.Errorf("round-trip(%d): got %d, err %v", c.v, got, err)
		}
	}
}
