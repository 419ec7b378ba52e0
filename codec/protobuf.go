package codec

import "google.golang.org/protobuf/proto"

// Protobuf serializes proto messages. proto.Marshal output is not guaranteed
// deterministic across library versions, so Protobuf suits keyed sibling
// collections (mapping values) rather than set membership.
type Protobuf[T proto.Message] struct {
	new func() T // constructor for a concrete message, e.g. func() *mypb.User { return &mypb.User{} }
}

func NewProtobuf[T proto.Message](ctor func() T) Protobuf[T] {
	return Protobuf[T]{new: ctor}
}

func (c Protobuf[T]) Encode(v T) ([]byte, error) {
	return proto.Marshal(v)
}
func (c Protobuf[T]) Decode(b []byte) (T, error) {
	m := c.new()
	err := proto.Unmarshal(b, m)
	return m, err
}
