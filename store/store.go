// Package store defines the remote key-value boundary the collections are
// built on. Any store exposing equivalent primitives qualifies; the canonical
// implementation wraps Redis (see store/redis), and store/mem provides an
// in-process one for tests and local use.
//
// Implementations MUST be safe for concurrent use and byte-for-byte
// transparent: members read back must be exactly the strings previously
// added, with no re-encoding or trailing metadata.
package store

import "context"

// Store is the minimal command surface the collections consume: single-key
// delete, native set commands, multi-key set algebra, and an atomic
// multi-command scope.
//
// Keys that become logically empty MUST be removed, as Redis does natively:
// an empty collection is represented by key absence, never by an empty value.
type Store interface {
	// Del removes a key. Deleting an absent key is not an error.
	Del(ctx context.Context, key string) error

	// Exists reports whether a key currently holds a value.
	Exists(ctx context.Context, key string) (bool, error)

	// SAdd inserts members into the set at key, creating it if absent.
	// Adding zero members is a no-op.
	SAdd(ctx context.Context, key string, members ...string) error

	// SRem removes members from the set at key and returns how many were
	// actually removed.
	SRem(ctx context.Context, key string, members ...string) (int64, error)

	// SCard returns the set's cardinality; 0 for an absent key.
	SCard(ctx context.Context, key string) (int64, error)

	// SIsMember reports membership of a single value.
	SIsMember(ctx context.Context, key, member string) (bool, error)

	// SMembers returns every member of the set; empty for an absent key.
	SMembers(ctx context.Context, key string) ([]string, error)

	// SRandMember returns count members without removing them, passing the
	// backing store's SRANDMEMBER semantics through unchanged: a
	// non-negative count yields distinct members capped at the cardinality,
	// a negative count yields |count| members possibly with repetition.
	SRandMember(ctx context.Context, key string, count int64) ([]string, error)

	// SPop removes and returns one arbitrary member. ok is false when the
	// set is empty or absent.
	SPop(ctx context.Context, key string) (member string, ok bool, err error)

	// SUnion, SInter and SDiff compute multi-key set algebra server-side.
	// Absent keys behave as empty sets.
	SUnion(ctx context.Context, keys ...string) ([]string, error)
	SInter(ctx context.Context, keys ...string) ([]string, error)
	SDiff(ctx context.Context, keys ...string) ([]string, error)

	// Scope opens a new atomic command batch. Each Scope is single-use.
	Scope() Scope

	// Close releases resources.
	Close(ctx context.Context) error
}

// Scope is a queued batch of commands committed as one atomic unit. Queued
// commands are applied in submission order, and no observer sees any of them
// before Commit returns. Command methods only queue; errors surface at
// Commit.
type Scope interface {
	Del(ctx context.Context, key string)
	SAdd(ctx context.Context, key string, members ...string)
	SRem(ctx context.Context, key string, members ...string)

	// Commit applies the batch. A committed Scope must not be reused.
	Commit(ctx context.Context) error
}
