// Package msgpackstrict implements a structural-schema binary serialisation
// library on top of a MessagePack-like wire format.
//
// Given an ordinary Go type, a SchemaCollection derives a write schema and a
// read schema for it. Two schemas — typically produced by different versions
// of a type, or different processes altogether — can be compared with
// (*Schema).CanReadFrom to decide whether a message produced under the write
// schema can be safely consumed under the read schema, in either strict or
// relaxed mode. Serialiser and Deserialiser wrap a SchemaCollection with the
// wire encode/decode dispatch for a single root Go type.
package msgpackstrict
