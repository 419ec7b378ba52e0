package rediscoll

import (
	"errors"
	"fmt"
)

// ErrNotSupported marks operations that cannot be expressed atomically with
// the store's command set and are deliberately left unimplemented rather
// than implemented with a race. Match with errors.Is.
var ErrNotSupported = errors.New("cannot be implemented efficiently or atomically due to limitations in the store command set")

// NotSupportedError names the offending operation. Set has none; the type is
// exported for sibling collections built on Base.
type NotSupportedError struct {
	Op string
}

func (e *NotSupportedError) Error() string {
	return fmt.Sprintf("rediscoll: %s: %v", e.Op, ErrNotSupported)
}

func (e *NotSupportedError) Unwrap() error { return ErrNotSupported }

// TypeError reports a value or operand of a kind the operation does not
// accept: decoding a non-string store reply, or handing a plain sequence to
// an operator spelling that only combines remote collections.
type TypeError struct {
	Op    string
	Value any
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("rediscoll: %s: unsupported operand kind %T", e.Op, e.Value)
}

// KeyError reports removal of an absent member, or a pop from an empty
// collection (Member is empty in that case).
type KeyError struct {
	Key    string
	Member string
}

func (e *KeyError) Error() string {
	if e.Member == "" {
		return fmt.Sprintf("rediscoll: %s: pop from an empty collection", e.Key)
	}
	return fmt.Sprintf("rediscoll: %s: member not found", e.Key)
}
