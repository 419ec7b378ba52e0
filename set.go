package rediscoll

import (
	"context"
	"iter"

	"github.com/unkn0wn-root/rediscoll/store"
)

// SetView is the remote-set capability an algebra operand must expose.
// Operands that do not implement it are treated as plain local sequences by
// the named algebra methods and rejected by the operator spellings.
type SetView[V any] interface {
	Collection
	Members(ctx context.Context) ([]V, error)
	Contains(ctx context.Context, v V) (bool, error)
}

// Set projects set semantics onto a single native-set key. Members
// round-trip through the configured codec, which must therefore be
// deterministic (see package codec). No state is cached client-side: every
// read observes the store, and instances are safe for concurrent use.
type Set[V comparable] struct {
	Base[V]
}

var _ SetView[int] = (*Set[int])(nil)

// NewSet binds a set collection. When opts.Data is non-nil the key is
// cleared and repopulated atomically before NewSet returns; duplicates in
// Data collapse per set semantics.
func NewSet[V comparable](ctx context.Context, opts Options[V]) (*Set[V], error) {
	s := &Set[V]{Base: newBase("set", opts)}
	if opts.Data != nil {
		members, err := s.encodeAll(opts.Data)
		if err != nil {
			return nil, err
		}
		if err := s.initData(ctx, s, members, nil); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// update queues the set's bulk insert; the scoped bootstrap calls it after
// the queued delete.
func (s *Set[V]) update(ctx context.Context, sc store.Scope, members []string) {
	sc.SAdd(ctx, s.key, members...)
}

// Derive creates a set with the receiver's store, codec, prefix and logging
// but its own identity (fresh random id when id is empty). With a non-nil
// scope and non-nil data the population commands are queued into that scope
// so the caller controls when the whole construction becomes visible;
// re-running the plain constructor inside an open scope would silently break
// its atomicity.
func (s *Set[V]) Derive(ctx context.Context, data []V, id string, sc store.Scope) (*Set[V], error) {
	opts := Options[V]{
		Store:  s.store,
		Codec:  s.codec,
		Prefix: s.prefix,
		ID:     id,
		Logger: s.log,
		Hooks:  s.hooks,
	}
	if sc != nil && data != nil {
		n, err := NewSet[V](ctx, opts) // no Data: nothing touches the store yet
		if err != nil {
			return nil, err
		}
		members, err := n.encodeAll(data)
		if err != nil {
			return nil, err
		}
		if err := n.initData(ctx, n, members, sc); err != nil {
			return nil, err
		}
		return n, nil
	}
	opts.Data = data
	return NewSet[V](ctx, opts)
}

// Copy materializes a distinct collection with a fresh identity and the
// members present at call time. It is not an alias: later mutation of either
// side leaves the other untouched.
func (s *Set[V]) Copy(ctx context.Context) (*Set[V], error) {
	members, err := s.Members(ctx)
	if err != nil {
		return nil, err
	}
	return s.Derive(ctx, members, "", nil)
}

// Len returns the set's cardinality.
func (s *Set[V]) Len(ctx context.Context) (int64, error) {
	return s.store.SCard(ctx, s.key)
}

// Contains reports membership with a single store round trip.
func (s *Set[V]) Contains(ctx context.Context, v V) (bool, error) {
	m, err := s.encode(v)
	if err != nil {
		return false, err
	}
	return s.store.SIsMember(ctx, s.key, m)
}

// Members returns a decoded snapshot of the set. Order is arbitrary.
func (s *Set[V]) Members(ctx context.Context) ([]V, error) {
	raw, err := s.store.SMembers(ctx, s.key)
	if err != nil {
		return nil, err
	}
	out := make([]V, 0, len(raw))
	for _, m := range raw {
		v, ok, err := s.decode(m)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, v)
		}
	}
	return out, nil
}

// All ranges over the set's members. Each range fetches a fresh snapshot, so
// the sequence is finite, restartable, and never holds a live cursor; a
// fetch or decode failure is yielded once as the second value.
func (s *Set[V]) All(ctx context.Context) iter.Seq2[V, error] {
	return func(yield func(V, error) bool) {
		members, err := s.Members(ctx)
		if err != nil {
			var zero V
			yield(zero, err)
			return
		}
		for _, v := range members {
			if !yield(v, nil) {
				return
			}
		}
	}
}

// Add inserts v. Adding a present member is a no-op.
func (s *Set[V]) Add(ctx context.Context, v V) error {
	m, err := s.encode(v)
	if err != nil {
		return err
	}
	return s.store.SAdd(ctx, s.key, m)
}

// Remove deletes v and fails with a KeyError when it was not a member.
func (s *Set[V]) Remove(ctx context.Context, v V) error {
	m, err := s.encode(v)
	if err != nil {
		return err
	}
	n, err := s.store.SRem(ctx, s.key, m)
	if err != nil {
		return err
	}
	if n == 0 {
		return &KeyError{Key: s.key, Member: m}
	}
	return nil
}

// Discard deletes v if present and reports nothing when it is not — the one
// place a logical failure is deliberately swallowed, for idempotent removal.
func (s *Set[V]) Discard(ctx context.Context, v V) error {
	m, err := s.encode(v)
	if err != nil {
		return err
	}
	_, err = s.store.SRem(ctx, s.key, m)
	return err
}

// Pop removes and returns one arbitrary member; KeyError when the set is
// empty. Removing the last member leaves no key behind.
func (s *Set[V]) Pop(ctx context.Context) (V, error) {
	var zero V
	m, ok, err := s.store.SPop(ctx, s.key)
	if err != nil {
		return zero, err
	}
	if !ok {
		return zero, &KeyError{Key: s.key}
	}
	v, _, err := s.decode(m)
	return v, err
}

// RandomSample returns count members without removing them. Count semantics
// pass through the store's SRANDMEMBER: a non-negative count yields distinct
// members capped at the cardinality, a negative count yields |count| members
// possibly with repetition. Ordering is whatever the store returns.
func (s *Set[V]) RandomSample(ctx context.Context, count int64) ([]V, error) {
	raw, err := s.store.SRandMember(ctx, s.key, count)
	if err != nil {
		return nil, err
	}
	out := make([]V, 0, len(raw))
	for _, m := range raw {
		v, ok, err := s.decode(m)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, v)
		}
	}
	return out, nil
}

// RandomMember is RandomSample for a single member; ok is false when the set
// is empty.
func (s *Set[V]) RandomMember(ctx context.Context) (V, bool, error) {
	var zero V
	sample, err := s.RandomSample(ctx, 1)
	if err != nil || len(sample) == 0 {
		return zero, false, err
	}
	return sample[0], true, nil
}
