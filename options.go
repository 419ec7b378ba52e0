package rediscoll

import (
	"github.com/unkn0wn-root/rediscoll/codec"
	"github.com/unkn0wn-root/rediscoll/store"
)

// Options configure a collection. Everything is optional: the zero value
// binds a fresh random identity on the process-wide default Redis store with
// the Msgpack codec.
type Options[V any] struct {
	// Data, when non-nil, atomically clears the key and repopulates it with
	// these values before construction returns. nil leaves whatever the key
	// already holds; an empty non-nil slice just clears the key.
	Data []V

	// Store is the remote store handle; it may be shared by many
	// collections and goroutines. nil selects redisstore.Default().
	Store store.Store

	// ID names the collection. Collections with equal IDs (and type and
	// Prefix) address the same data. Empty means a freshly generated random
	// 128-bit hex identifier; the id is lower-cased in the key.
	ID string

	// Codec serializes values. nil selects codec.Msgpack[V].
	Codec codec.Codec[V]

	// Prefix is prepended to every generated key. Default empty.
	Prefix string

	Logger Logger // nil => NopLogger
	Hooks  Hooks  // nil => NopHooks
}

// coalesce returns def when v is the zero value of T - otherwise v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
