// Package mem implements the collection store in process memory. It mirrors
// the Redis set-command semantics closely enough for tests and single-process
// use, including delete-on-empty and atomic scopes.
package mem

import (
	"context"
	"sync"

	"github.com/unkn0wn-root/rediscoll/store"
)

// Mem is an in-memory store.Store. A scope's queued commands are applied
// under a single write-lock acquisition, so other callers observe either none
// or all of a committed batch.
type Mem struct {
	mu   sync.RWMutex
	sets map[string]map[string]struct{}
}

var _ store.Store = (*Mem)(nil)

func New() *Mem {
	return &Mem{sets: make(map[string]map[string]struct{})}
}

func (m *Mem) Del(_ context.Context, key string) error {
	m.mu.Lock()
	m.del(key)
	m.mu.Unlock()
	return nil
}

func (m *Mem) Exists(_ context.Context, key string) (bool, error) {
	m.mu.RLock()
	_, ok := m.sets[key]
	m.mu.RUnlock()
	return ok, nil
}

func (m *Mem) SAdd(_ context.Context, key string, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	m.mu.Lock()
	m.sadd(key, members)
	m.mu.Unlock()
	return nil
}

func (m *Mem) SRem(_ context.Context, key string, members ...string) (int64, error) {
	m.mu.Lock()
	n := m.srem(key, members)
	m.mu.Unlock()
	return n, nil
}

func (m *Mem) SCard(_ context.Context, key string) (int64, error) {
	m.mu.RLock()
	n := int64(len(m.sets[key]))
	m.mu.RUnlock()
	return n, nil
}

func (m *Mem) SIsMember(_ context.Context, key, member string) (bool, error) {
	m.mu.RLock()
	_, ok := m.sets[key][member]
	m.mu.RUnlock()
	return ok, nil
}

func (m *Mem) SMembers(_ context.Context, key string) ([]string, error) {
	m.mu.RLock()
	out := make([]string, 0, len(m.sets[key]))
	for member := range m.sets[key] {
		out = append(out, member)
	}
	m.mu.RUnlock()
	return out, nil
}

func (m *Mem) SRandMember(_ context.Context, key string, count int64) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	set := m.sets[key]
	if count == 0 || len(set) == 0 {
		return nil, nil
	}
	if count > 0 {
		// distinct members, capped at cardinality
		if count > int64(len(set)) {
			count = int64(len(set))
		}
		out := make([]string, 0, count)
		for member := range set {
			out = append(out, member)
			if int64(len(out)) == count {
				break
			}
		}
		return out, nil
	}
	// negative count: |count| members, repetition allowed
	out := make([]string, 0, -count)
	for int64(len(out)) < -count {
		for member := range set {
			out = append(out, member)
			if int64(len(out)) == -count {
				break
			}
		}
	}
	return out, nil
}

func (m *Mem) SPop(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for member := range m.sets[key] {
		m.srem(key, []string{member})
		return member, true, nil
	}
	return "", false, nil
}

func (m *Mem) SUnion(_ context.Context, keys ...string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	acc := make(map[string]struct{})
	for _, key := range keys {
		for member := range m.sets[key] {
			acc[member] = struct{}{}
		}
	}
	return collect(acc), nil
}

func (m *Mem) SInter(_ context.Context, keys ...string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(keys) == 0 {
		return nil, nil
	}
	acc := make(map[string]struct{}, len(m.sets[keys[0]]))
	for member := range m.sets[keys[0]] {
		acc[member] = struct{}{}
	}
	for _, key := range keys[1:] {
		next := make(map[string]struct{})
		for member := range m.sets[key] {
			if _, ok := acc[member]; ok {
				next[member] = struct{}{}
			}
		}
		acc = next
	}
	return collect(acc), nil
}

func (m *Mem) SDiff(_ context.Context, keys ...string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(keys) == 0 {
		return nil, nil
	}
	acc := make(map[string]struct{}, len(m.sets[keys[0]]))
	for member := range m.sets[keys[0]] {
		acc[member] = struct{}{}
	}
	for _, key := range keys[1:] {
		for member := range m.sets[key] {
			delete(acc, member)
		}
	}
	return collect(acc), nil
}

func (m *Mem) Scope() store.Scope {
	return &scope{m: m}
}

func (m *Mem) Close(context.Context) error { return nil }

// callers hold mu

func (m *Mem) del(key string) {
	delete(m.sets, key)
}

func (m *Mem) sadd(key string, members []string) {
	set, ok := m.sets[key]
	if !ok {
		set = make(map[string]struct{}, len(members))
		m.sets[key] = set
	}
	for _, member := range members {
		set[member] = struct{}{}
	}
}

func (m *Mem) srem(key string, members []string) int64 {
	set := m.sets[key]
	var n int64
	for _, member := range members {
		if _, ok := set[member]; ok {
			delete(set, member)
			n++
		}
	}
	if len(set) == 0 {
		// empty sets are represented by key absence, as in Redis
		delete(m.sets, key)
	}
	return n
}

func collect(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for member := range set {
		out = append(out, member)
	}
	return out
}

// scope buffers mutations and replays them under one lock acquisition.
type scope struct {
	m   *Mem
	ops []func(m *Mem)
}

var _ store.Scope = (*scope)(nil)

func (sc *scope) Del(_ context.Context, key string) {
	sc.ops = append(sc.ops, func(m *Mem) { m.del(key) })
}

func (sc *scope) SAdd(_ context.Context, key string, members ...string) {
	if len(members) == 0 {
		return
	}
	queued := append([]string(nil), members...)
	sc.ops = append(sc.ops, func(m *Mem) { m.sadd(key, queued) })
}

func (sc *scope) SRem(_ context.Context, key string, members ...string) {
	if len(members) == 0 {
		return
	}
	queued := append([]string(nil), members...)
	sc.ops = append(sc.ops, func(m *Mem) { m.srem(key, queued) })
}

func (sc *scope) Commit(_ context.Context) error {
	sc.m.mu.Lock()
	for _, op := range sc.ops {
		op(sc.m)
	}
	sc.m.mu.Unlock()
	sc.ops = nil
	return nil
}
