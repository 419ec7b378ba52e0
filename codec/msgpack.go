package codec

import "github.com/vmihailenco/msgpack/v5"

// Msgpack is the default Codec: a compact general-purpose binary serializer
// built on vmihailenco/msgpack/v5. The zero value is ready to use.
//
// Encoding is deterministic for scalars, slices and structs; Go map fields
// iterate in random order, so avoid them in values used for membership tests.
type Msgpack[V any] struct{}

func (Msgpack[V]) Encode(v V) ([]byte, error) {
	return msgpack.Marshal(v)
}
func (Msgpack[V]) Decode(b []byte) (V, error) {
	var v V
	err := msgpack.Unmarshal(b, &v)
	return v, err
}
