// Package asynchook decouples hook sinks from collection hot paths: events
// are queued to a small worker pool and dropped when the queue is full.
//
// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{FallbackEvery: 10})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	set, _ := rediscoll.NewSet[string](ctx, rediscoll.Options[string]{
//	    Store: st,
//	    Hooks: hooks, // or `raw` if you don't want async
//	})
package asynchook

import (
	"sync"

	"github.com/unkn0wn-root/rediscoll"
)

type Hooks struct {
	inner rediscoll.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ rediscoll.Hooks = (*Hooks)(nil)

func New(inner rediscoll.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) ClientFallback(op string, operands int) {
	h.try(func() { h.inner.ClientFallback(op, operands) })
}

func (h *Hooks) ScopeCommit(key string, members int) {
	h.try(func() { h.inner.ScopeCommit(key, members) })
}

func (h *Hooks) Cleared(key string) {
	h.try(func() { h.inner.Cleared(key) })
}
