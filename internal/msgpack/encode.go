package msgpack

import (
	"encoding/binary"
	"math"
)

// Writer accumulates a MessagePack-encoded byte stream.
//
// Writer has no notion of schema or field order; callers (the primitive
// codec and type providers in the parent package) are responsible for
// invoking its methods in the order the wire format requires.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the accumulated encoding.
func (w *Writer) Bytes() []byte {
	return w.buf
}

func (w *Writer) WriteNil() {
	w.buf = append(w.buf, tagNil)
}

func (w *Writer) WriteBool(v bool) {
	if v {
		w.buf = append(w.buf, tagTrue)
	} else {
		w.buf = append(w.buf, tagFalse)
	}
}

// WriteInt writes the smallest encoding that fits v; a non-negative v is
// written as by WriteUint.
func (w *Writer) WriteInt(v int64) {
	switch {
	case v >= 0:
		w.WriteUint(uint64(v))
	case v >= -32:
		w.buf = append(w.buf, byte(v))
	case v >= math.MinInt8:
		w.buf = append(w.buf, tagInt8, byte(v))
	case v >= math.MinInt16:
		w.buf = append(w.buf, tagInt16, 0, 0)
		binary.BigEndian.PutUint16(w.buf[len(w.buf)-2:], uint16(v))
	case v >= math.MinInt32:
		w.buf = append(w.buf, tagInt32, 0, 0, 0, 0)
		binary.BigEndian.PutUint32(w.buf[len(w.buf)-4:], uint32(v))
	default:
		w.buf = append(w.buf, tagInt64, 0, 0, 0, 0, 0, 0, 0, 0)
		binary.BigEndian.PutUint64(w.buf[len(w.buf)-8:], uint64(v))
	}
}

// WriteUint writes the smallest unsigned encoding that fits v.
func (w *Writer) WriteUint(v uint64) {
	switch {
	case v <= fixintPosMax:
		w.buf = append(w.buf, byte(v))
	case v <= math.MaxUint8:
		w.buf = append(w.buf, tagUint8, byte(v))
	case v <= math.MaxUint16:
		w.buf = append(w.buf, tagUint16, 0, 0)
		binary.BigEndian.PutUint16(w.buf[len(w.buf)-2:], uint16(v))
	case v <= math.MaxUint32:
		w.buf = append(w.buf, tagUint32, 0, 0, 0, 0)
		binary.BigEndian.PutUint32(w.buf[len(w.buf)-4:], uint32(v))
	default:
		w.buf = append(w.buf, tagUint64, 0, 0, 0, 0, 0, 0, 0, 0)
		binary.BigEndian.PutUint64(w.buf[len(w.buf)-8:], v)
	}
}

func (w *Writer) WriteFloat32(v float32) {
	w.buf = append(w.buf, tagFloat32, 0, 0, 0, 0)
	binary.BigEndian.PutUint32(w.buf[len(w.buf)-4:], math.Float32bits(v))
}

func (w *Writer) WriteFloat64(v float64) {
	w.buf = append(w.buf, tagFloat64, 0, 0, 0, 0, 0, 0, 0, 0)
	binary.BigEndian.PutUint64(w.buf[len(w.buf)-8:], math.Float64bits(v))
}

func (w *Writer) WriteString(s string) {
	w.writeStringHeader(len(s))
	w.buf = append(w.buf, s...)
}

func (w *Writer) writeStringHeader(n int) {
	switch {
	case n <= 31:
		w.buf = append(w.buf, fixstrMask|byte(n))
	case n <= math.MaxUint8:
		w.buf = append(w.buf, tagStr8, byte(n))
	case n <= math.MaxUint16:
		w.buf = append(w.buf, tagStr16, 0, 0)
		binary.BigEndian.PutUint16(w.buf[len(w.buf)-2:], uint16(n))
	default:
		w.buf = append(w.buf, tagStr32, 0, 0, 0, 0)
		binary.BigEndian.PutUint32(w.buf[len(w.buf)-4:], uint32(n))
	}
}

func (w *Writer) WriteBinary(p []byte) {
	switch n := len(p); {
	case n <= math.MaxUint8:
		w.buf = append(w.buf, tagBin8, byte(n))
	case n <= math.MaxUint16:
		w.buf = append(w.buf, tagBin16, 0, 0)
		binary.BigEndian.PutUint16(w.buf[len(w.buf)-2:], uint16(n))
	default:
		w.buf = append(w.buf, tagBin32, 0, 0, 0, 0)
		binary.BigEndian.PutUint32(w.buf[len(w.buf)-4:], uint32(n))
	}
	w.buf = append(w.buf, p...)
}

// WriteArrayHeader writes an array framing of n entries; callers write the n
// entries themselves immediately after.
func (w *Writer) WriteArrayHeader(n int) {
	switch {
	case n <= 15:
		w.buf = append(w.buf, fixarrayMask|byte(n))
	case n <= math.MaxUint16:
		w.buf = append(w.buf, tagArray16, 0, 0)
		binary.BigEndian.PutUint16(w.buf[len(w.buf)-2:], uint16(n))
	default:
		w.buf = append(w.buf, tagArray32, 0, 0, 0, 0)
		binary.BigEndian.PutUint32(w.buf[len(w.buf)-4:], uint32(n))
	}
}

// WriteMapHeader writes a map framing of n key/value pairs; callers write the
// 2*n entries (alternating key, value) themselves immediately after.
func (w *Writer) WriteMapHeader(n int) {
	switch {
	case n <= 15:
		w.buf = append(w.buf, fixmapMask|byte(n))
	case n <= math.MaxUint16:
		w.buf = append(w.buf, tagMap16, 0, 0)
		binary.BigEndian.PutUint16(w.buf[len(w.buf)-2:], uint16(n))
	default:
		w.buf = append(w.buf, tagMap32, 0, 0, 0, 0)
		binary.BigEndian.PutUint32(w.buf[len(w.buf)-4:], uint32(n))
	}
}
