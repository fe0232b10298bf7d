// Package msgpack implements the subset of the MessagePack wire format
// required by the schema-driven serialiser in the parent module: scalar
// values, string/binary framing, and map/array container headers.
//
// As with the teacher package this one is modelled on (smithy-go's
// encoding/cbor), this is NOT a general-purpose MessagePack library. The
// encoder always emits the most compact representation for a given value;
// the decoder accepts any representation the format permits for a given
// major type and leaves widening/narrowing decisions to the caller.
package msgpack

// Type identifies the major MessagePack wire type of a decoded value,
// independent of which specific tag byte encoded it.
type Type byte

// Enumerates the wire types this package round-trips.
const (
	TypeNil Type = iota
	TypeBool
	TypeInt
	TypeUint
	TypeFloat32
	TypeFloat64
	TypeString
	TypeBinary
	TypeArray
	TypeMap
)

const (
	tagNil      = 0xc0
	tagFalse    = 0xc2
	tagTrue     = 0xc3
	tagBin8     = 0xc4
	tagBin16    = 0xc5
	tagBin32    = 0xc6
	tagFloat32  = 0xca
	tagFloat64  = 0xcb
	tagUint8    = 0xcc
	tagUint16   = 0xcd
	tagUint32   = 0xce
	tagUint64   = 0xcf
	tagInt8     = 0xd0
	tagInt16    = 0xd1
	tagInt32    = 0xd2
	tagInt64    = 0xd3
	tagStr8     = 0xd9
	tagStr16    = 0xda
	tagStr32    = 0xdb
	tagArray16  = 0xdc
	tagArray32  = 0xdd
	tagMap16    = 0xde
	tagMap32    = 0xdf

	fixintPosMax = 0x7f
	fixintNegMin = 0xe0
	fixstrMask   = 0xa0
	fixstrMax    = 0xbf
	fixarrayMask = 0x90
	fixarrayMax  = 0x9f
	fixmapMask   = 0x80
	fixmapMax    = 0x8f
)
