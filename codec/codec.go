// Package codec defines the pluggable serialization boundary between
// collection values and the strings a store holds.
//
// Membership tests and server-side set algebra compare encoded bytes, never
// decoded values, so a codec used with set-shaped collections must be
// deterministic: equal values must always encode to equal bytes. Msgpack,
// JSON and Gob are deterministic for scalars and structs; for map-heavy
// values prefer CBOR in deterministic mode.
package codec

// Codec encodes/decodes values V to []byte for storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
