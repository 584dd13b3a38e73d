// Package codec implements the streaming EPEE Portable Storage encoder
// and decoder: the pair of state machines that translate between Go
// values and the wire format's tag-prefixed, length-prefixed byte
// stream.
//
// Encoder and Decoder are driven by the bridge package, which walks an
// arbitrary Go value (struct, slice, fixed array, or one of the twelve
// scalar kinds) and issues the corresponding Begin/End/Put calls. A
// type that implements bridge.Encodable/bridge.Decodable directly
// (section.Section does) bypasses reflection and drives the codec
// itself.
//
// Neither Encoder nor Decoder is safe for concurrent use, and neither
// is reusable past a single top-level Encode/Decode call — create a
// new one for the next value.
package codec
