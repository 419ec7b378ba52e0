// Package sloghooks logs collection events through log/slog, with sampling
// for the chatty ones.
package sloghooks

import (
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/rediscoll"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	FallbackEvery uint64
	CommitEvery   uint64
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	fallbackCtr atomic.Uint64
	commitCtr   atomic.Uint64
}

var _ rediscoll.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) ClientFallback(op string, operands int) {
	if h.l == nil || !sample(h.opts.FallbackEvery, &h.fallbackCtr) {
		return
	}
	h.l.Debug("rediscoll.client_fallback",
		"op", op,
		"operands", operands)
}

func (h *Hooks) ScopeCommit(key string, members int) {
	if h.l == nil || !sample(h.opts.CommitEvery, &h.commitCtr) {
		return
	}
	h.l.Debug("rediscoll.scope_commit",
		"key", key,
		"members", members)
}

func (h *Hooks) Cleared(key string) {
	if h.l == nil {
		return
	}
	h.l.Debug("rediscoll.cleared",
		"key", key)
}
