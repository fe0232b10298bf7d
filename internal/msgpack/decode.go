package msgpack

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Reader consumes a MessagePack-encoded byte stream left to right. It has no
// lookahead beyond a single-byte type peek.
type Reader struct {
	buf []byte
	off int
}

// NewReader returns a Reader over p. The Reader does not copy p.
func NewReader(p []byte) *Reader {
	return &Reader{buf: p}
}

// Len returns the number of unread bytes remaining.
func (r *Reader) Len() int {
	return len(r.buf) - r.off
}

func (r *Reader) peek() (byte, error) {
	if r.Len() == 0 {
		return 0, fmt.Errorf("unexpected end of payload")
	}
	return r.buf[r.off], nil
}

// PeekType reports the wire type of the next value without consuming it.
func (r *Reader) PeekType() (Type, error) {
	b, err := r.peek()
	if err != nil {
		return 0, err
	}
	switch {
	case b == tagNil:
		return TypeNil, nil
	case b == tagFalse || b == tagTrue:
		return TypeBool, nil
	case b <= fixintPosMax || b >= fixintNegMin:
		return TypeInt, nil
	case b == tagUint8 || b == tagUint16 || b == tagUint32 || b == tagUint64:
		return TypeUint, nil
	case b == tagInt8 || b == tagInt16 || b == tagInt32 || b == tagInt64:
		return TypeInt, nil
	case b == tagFloat32:
		return TypeFloat32, nil
	case b == tagFloat64:
		return TypeFloat64, nil
	case b == tagStr8 || b == tagStr16 || b == tagStr32 || (b&0xe0) == fixstrMask:
		return TypeString, nil
	case b == tagBin8 || b == tagBin16 || b == tagBin32:
		return TypeBinary, nil
	case b == tagArray16 || b == tagArray32 || (b&0xf0) == fixarrayMask:
		return TypeArray, nil
	case b == tagMap16 || b == tagMap32 || (b&0xf0) == fixmapMask:
		return TypeMap, nil
	default:
		return 0, fmt.Errorf("unrecognised tag byte 0x%x", b)
	}
}

func (r *Reader) take(n int) ([]byte, error) {
	if r.Len() < n {
		return nil, fmt.Errorf("need %d bytes, have %d", n, r.Len())
	}
	p := r.buf[r.off : r.off+n]
	r.off += n
	return p, nil
}

func (r *Reader) ReadNil() error {
	b, err := r.take(1)
	if err != nil {
		return err
	}
	if b[0] != tagNil {
		return fmt.Errorf("expected nil tag, got 0x%x", b[0])
	}
	return nil
}

func (r *Reader) ReadBool() (bool, error) {
	b, err := r.take(1)
	if err != nil {
		return false, err
	}
	switch b[0] {
	case tagTrue:
		return true, nil
	case tagFalse:
		return false, nil
	default:
		return false, fmt.Errorf("expected bool tag, got 0x%x", b[0])
	}
}

// ReadInt reads any signed or unsigned integer encoding and returns it as an
// int64. Returns an error if an unsigned value overflows int64.
func (r *Reader) ReadInt() (int64, error) {
	tag, err := r.peek()
	if err != nil {
		return 0, err
	}

	switch {
	case tag <= fixintPosMax:
		r.off++
		return int64(tag), nil
	case tag >= fixintNegMin:
		r.off++
		return int64(int8(tag)), nil
	case tag == tagInt8:
		p, err := r.take(2)
		if err != nil {
			return 0, err
		}
		return int64(int8(p[1])), nil
	case tag == tagInt16:
		p, err := r.take(3)
		if err != nil {
			return 0, err
		}
		return int64(int16(binary.BigEndian.Uint16(p[1:]))), nil
	case tag == tagInt32:
		p, err := r.take(5)
		if err != nil {
			return 0, err
		}
		return int64(int32(binary.BigEndian.Uint32(p[1:]))), nil
	case tag == tagInt64:
		p, err := r.take(9)
		if err != nil {
			return 0, err
		}
		return int64(binary.BigEndian.Uint64(p[1:])), nil
	case tag == tagUint8, tag == tagUint16, tag == tagUint32, tag == tagUint64:
		u, err := r.ReadUint()
		if err != nil {
			return 0, err
		}
		if u > math.MaxInt64 {
			return 0, fmt.Errorf("unsigned value %d overflows int64", u)
		}
		return int64(u), nil
	default:
		return 0, fmt.Errorf("expected integer tag, got 0x%x", tag)
	}
}

// ReadUint reads any unsigned integer encoding, or a non-negative signed
// encoding, and returns it as a uint64.
func (r *Reader) ReadUint() (uint64, error) {
	tag, err := r.peek()
	if err != nil {
		return 0, err
	}

	switch {
	case tag <= fixintPosMax:
		r.off++
		return uint64(tag), nil
	case tag == tagUint8:
		p, err := r.take(2)
		if err != nil {
			return 0, err
		}
		return uint64(p[1]), nil
	case tag == tagUint16:
		p, err := r.take(3)
		if err != nil {
			return 0, err
		}
		return uint64(binary.BigEndian.Uint16(p[1:])), nil
	case tag == tagUint32:
		p, err := r.take(5)
		if err != nil {
			return 0, err
		}
		return uint64(binary.BigEndian.Uint32(p[1:])), nil
	case tag == tagUint64:
		p, err := r.take(9)
		if err != nil {
			return 0, err
		}
		return binary.BigEndian.Uint64(p[1:]), nil
	case tag == tagInt8, tag == tagInt16, tag == tagInt32, tag == tagInt64:
		i, err := r.ReadInt()
		if err != nil {
			return 0, err
		}
		if i < 0 {
			return 0, fmt.Errorf("signed value %d is negative", i)
		}
		return uint64(i), nil
	default:
		return 0, fmt.Errorf("expected integer tag, got 0x%x", tag)
	}
}

func (r *Reader) ReadFloat32() (float32, error) {
	p, err := r.take(5)
	if err != nil {
		return 0, err
	}
	if p[0] != tagFloat32 {
		return 0, fmt.Errorf("expected float32 tag, got 0x%x", p[0])
	}
	return math.Float32frombits(binary.BigEndian.Uint32(p[1:])), nil
}

func (r *Reader) ReadFloat64() (float64, error) {
	p, err := r.take(9)
	if err != nil {
		return 0, err
	}
	if p[0] != tagFloat64 {
		return 0, fmt.Errorf("expected float64 tag, got 0x%x", p[0])
	}
	return math.Float64frombits(binary.BigEndian.Uint64(p[1:])), nil
}

func (r *Reader) ReadString() (string, error) {
	n, err := r.readStringHeader()
	if err != nil {
		return "", err
	}
	p, err := r.take(n)
	if err != nil {
		return "", err
	}
	return string(p), nil
}

func (r *Reader) readStringHeader() (int, error) {
	tag, err := r.peek()
	if err != nil {
		return 0, err
	}

	if tag&0xe0 == fixstrMask {
		r.off++
		return int(tag & 0x1f), nil
	}

	switch tag {
	case tagStr8:
		p, err := r.take(2)
		if err != nil {
			return 0, err
		}
		return int(p[1]), nil
	case tagStr16:
		p, err := r.take(3)
		if err != nil {
			return 0, err
		}
		return int(binary.BigEndian.Uint16(p[1:])), nil
	case tagStr32:
		p, err := r.take(5)
		if err != nil {
			return 0, err
		}
		return int(binary.BigEndian.Uint32(p[1:])), nil
	default:
		return 0, fmt.Errorf("expected string tag, got 0x%x", tag)
	}
}

func (r *Reader) ReadBinary() ([]byte, error) {
	tag, err := r.peek()
	if err != nil {
		return nil, err
	}

	var n int
	switch tag {
	case tagBin8:
		p, err := r.take(2)
		if err != nil {
			return nil, err
		}
		n = int(p[1])
	case tagBin16:
		p, err := r.take(3)
		if err != nil {
			return nil, err
		}
		n = int(binary.BigEndian.Uint16(p[1:]))
	case tagBin32:
		p, err := r.take(5)
		if err != nil {
			return nil, err
		}
		n = int(binary.BigEndian.Uint32(p[1:]))
	default:
		return nil, fmt.Errorf("expected binary tag, got 0x%x", tag)
	}

	p, err := r.take(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, p)
	return out, nil
}

// ReadArrayHeader consumes an array framing and returns its entry count.
func (r *Reader) ReadArrayHeader() (int, error) {
	tag, err := r.peek()
	if err != nil {
		return 0, err
	}

	if tag&0xf0 == fixarrayMask {
		r.off++
		return int(tag & 0x0f), nil
	}

	switch tag {
	case tagArray16:
		p, err := r.take(3)
		if err != nil {
			return 0, err
		}
		return int(binary.BigEndian.Uint16(p[1:])), nil
	case tagArray32:
		p, err := r.take(5)
		if err != nil {
			return 0, err
		}
		return int(binary.BigEndian.Uint32(p[1:])), nil
	default:
		return 0, fmt.Errorf("expected array tag, got 0x%x", tag)
	}
}

// ReadMapHeader consumes a map framing and returns its entry count.
func (r *Reader) ReadMapHeader() (int, error) {
	tag, err := r.peek()
	if err != nil {
		return 0, err
	}

	if tag&0xf0 == fixmapMask {
		r.off++
		return int(tag & 0x0f), nil
	}

	switch tag {
	case tagMap16:
		p, err := r.take(3)
		if err != nil {
			return 0, err
		}
		return int(binary.BigEndian.Uint16(p[1:])), nil
	case tagMap32:
		p, err := r.take(5)
		if err != nil {
			return 0, err
		}
		return int(binary.BigEndian.Uint32(p[1:])), nil
	default:
		return 0, fmt.Errorf("expected map tag, got 0x%x", tag)
	}
}

// Skip consumes and discards the next value of whatever type it is,
// including all of its nested contents.
func (r *Reader) Skip() error {
	typ, err := r.PeekType()
	if err != nil {
		return err
	}

	switch typ {
	case TypeNil:
		return r.ReadNil()
	case TypeBool:
		_, err := r.ReadBool()
		return err
	case TypeInt:
		_, err := r.ReadInt()
		return err
	case TypeUint:
		_, err := r.ReadUint()
		return err
	case TypeFloat32:
		_, err := r.ReadFloat32()
		return err
	case TypeFloat64:
		_, err := r.ReadFloat64()
		return err
	case TypeString:
		_, err := r.ReadString()
		return err
	case TypeBinary:
		_, err := r.ReadBinary()
		return err
	case TypeArray:
		n, err := r.ReadArrayHeader()
		if err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err := r.Skip(); err != nil {
				return err
			}
		}
		return nil
	case TypeMap:
		n, err := r.ReadMapHeader()
		if err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err := r.Skip(); err != nil { // key
				return err
			}
			if err := r.Skip(); err != nil { // value
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unhandled type %v", typ)
	}
}
