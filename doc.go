// Package rediscoll projects in-memory collection semantics onto state held
// in a remote key-value store. A collection is addressed by a single flat key
// derived from its type, id and an optional prefix; values round-trip through
// a pluggable codec. Identity is by address: two instances constructed with
// the same id, type and prefix read and write the same data.
//
// Components:
//   - store.Store: the remote command surface (Redis via store/redis, or
//     store/mem for in-process use).
//   - codec.Codec[V]: (de)serializes V <-> []byte. Msgpack by default.
//   - Set[V]: set membership, mutation and multi-operand algebra backed by
//     native set commands where possible and client-side folds otherwise.
//
// Keys:
//
//	[prefix.]_redis_collections._<type>.<id>
//
// Atomicity: bootstrap and in-place algebra go through a store.Scope, a
// queued command batch applied as one unit, so no observer ever sees a
// half-populated collection. Instances hold no mutable client-side state and
// are safe for concurrent use; cross-caller ordering is last-writer-wins
// unless callers share a scope.
package rediscoll
