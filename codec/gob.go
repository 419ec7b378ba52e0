package codec

import (
	"bytes"
	"encoding/gob"
)

// Gob serializes values with encoding/gob, the stdlib's general binary
// object format. Every payload carries its own type description, so it is
// bulkier than Msgpack; its strength is round-tripping arbitrary registered
// Go types without tags.
type Gob[V any] struct{}

func (Gob[V]) Encode(v V) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(&v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (Gob[V]) Decode(b []byte) (V, error) {
	var v V
	err := gob.NewDecoder(bytes.NewReader(b)).Decode(&v)
	return v, err
}
