package rediscoll

import (
	"context"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"

	"github.com/unkn0wn-root/rediscoll/codec"
	"github.com/unkn0wn-root/rediscoll/internal/keys"
	"github.com/unkn0wn-root/rediscoll/store"
	redisstore "github.com/unkn0wn-root/rediscoll/store/redis"
)

// Collection is the capability every remote collection exposes regardless of
// shape. Identity is by address, not by instance: two collections with equal
// Key() read and write the same data.
type Collection interface {
	ID() string
	Key() string
	Store() store.Store
	Clear(ctx context.Context) error
}

// updater is the bulk-insert hook each concrete collection supplies to the
// shared clear-then-populate bootstrap. It must only queue commands on sc.
type updater interface {
	update(ctx context.Context, sc store.Scope, members []string)
}

// Base carries the identity, addressing and serialization shared by every
// collection kind. The key is computed once at construction and never
// changes; renaming a collection means constructing a new one.
type Base[V any] struct {
	store  store.Store
	codec  codec.Codec[V]
	prefix string
	id     string
	key    string
	log    Logger
	hooks  Hooks
}

func newBase[V any](typeName string, opts Options[V]) Base[V] {
	b := Base[V]{
		store:  opts.Store,
		codec:  opts.Codec,
		prefix: opts.Prefix,
		id:     opts.ID,
		log:    coalesce[Logger](opts.Logger, NopLogger{}),
		hooks:  coalesce[Hooks](opts.Hooks, NopHooks{}),
	}
	if b.store == nil {
		b.store = redisstore.Default()
	}
	if b.codec == nil {
		b.codec = codec.Msgpack[V]{}
	}
	if b.id == "" {
		b.id = newID()
	}
	// lower-cased here too, so ID() always matches the id segment of Key()
	b.id = strings.ToLower(b.id)
	b.key = keys.Name(b.prefix, typeName, b.id)
	return b
}

// newID returns a fresh random 128-bit identifier as 32 hex characters.
// Collision probability is negligible for practical purposes; callers who
// disagree can supply Options.ID themselves.
func newID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}

func (b *Base[V]) ID() string            { return b.id }
func (b *Base[V]) Key() string           { return b.key }
func (b *Base[V]) Store() store.Store    { return b.store }
func (b *Base[V]) Codec() codec.Codec[V] { return b.codec }

// Clear deletes the collection's key unconditionally. Idempotent.
func (b *Base[V]) Clear(ctx context.Context) error {
	if err := b.store.Del(ctx, b.key); err != nil {
		return err
	}
	b.hooks.Cleared(b.key)
	b.log.Debug("collection cleared", Fields{"key": b.key})
	return nil
}

func (b *Base[V]) encode(v V) (string, error) {
	raw, err := b.codec.Encode(v)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (b *Base[V]) encodeAll(data []V) ([]string, error) {
	members := make([]string, 0, len(data))
	for _, v := range data {
		m, err := b.encode(v)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, nil
}

// decode converts a stored member back to a value. Empty input reports an
// absent value without invoking the codec.
func (b *Base[V]) decode(s string) (V, bool, error) {
	var zero V
	if s == "" {
		return zero, false, nil
	}
	v, err := b.codec.Decode([]byte(s))
	if err != nil {
		return zero, false, err
	}
	return v, true, nil
}

// decodeValue is decode for loosely typed replies (MGET and friends return
// interface values). Inputs that are neither strings nor byte slices fail
// with a TypeError before ever reaching the codec.
func (b *Base[V]) decodeValue(val any) (V, bool, error) {
	var zero V
	switch s := val.(type) {
	case nil:
		return zero, false, nil
	case string:
		return b.decode(s)
	case []byte:
		return b.decode(string(s))
	default:
		return zero, false, &TypeError{Op: "decode", Value: val}
	}
}

// initData is the atomic bootstrap shared by every collection: queue a
// delete of the key and, for non-empty data, the collection's bulk insert.
// With a caller-supplied scope the commands only join the batch and the
// caller decides when they become visible; otherwise a private scope is
// committed before returning, so no observer ever sees the key between
// clear and repopulate.
func (b *Base[V]) initData(ctx context.Context, up updater, members []string, sc store.Scope) error {
	own := sc == nil
	if own {
		sc = b.store.Scope()
	}
	sc.Del(ctx, b.key)
	if len(members) > 0 {
		up.update(ctx, sc, members)
	}
	if !own {
		return nil
	}
	if err := sc.Commit(ctx); err != nil {
		return err
	}
	if len(members) == 0 {
		b.hooks.Cleared(b.key)
	}
	b.hooks.ScopeCommit(b.key, len(members))
	b.log.Debug("scoped init committed", Fields{"key": b.key, "members": len(members)})
	return nil
}
