package rediscoll

import (
	"context"
	"slices"
	"strings"
	"testing"

	"github.com/unkn0wn-root/rediscoll/store/mem"
)

func TestKeyNaming(t *testing.T) {
	ctx := context.Background()
	st := mem.New()

	s, err := NewSet[int](ctx, Options[int]{Store: st, ID: "MyID"})
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}
	if s.Key() != "_redis_collections._set.myid" {
		t.Fatalf("key = %q", s.Key())
	}

	p, err := NewSet[int](ctx, Options[int]{Store: st, ID: "myid", Prefix: "app"})
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}
	if p.Key() != "app._redis_collections._set.myid" {
		t.Fatalf("prefixed key = %q", p.Key())
	}
}

func TestDefaultID(t *testing.T) {
	ctx := context.Background()
	st := mem.New()
	a, _ := NewSet[int](ctx, Options[int]{Store: st})
	b, _ := NewSet[int](ctx, Options[int]{Store: st})

	if len(a.ID()) != 32 || strings.ToLower(a.ID()) != a.ID() {
		t.Fatalf("default id should be 32 lowercase hex chars, got %q", a.ID())
	}
	if a.ID() == b.ID() {
		t.Fatalf("two generated ids collided: %q", a.ID())
	}
}

func TestSharedIdentity(t *testing.T) {
	// same id + type + prefix means the same data, regardless of instance
	ctx := context.Background()
	st := mem.New()

	a := newTestSet(t, st, []int{1, 2})
	b, err := NewSet[int](ctx, Options[int]{Store: st, ID: a.ID()})
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}

	if err := b.Add(ctx, 3); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got := sortedMembers(t, a); !slices.Equal(got, []int{1, 2, 3}) {
		t.Fatalf("write through b not visible through a: %v", got)
	}
}

func TestConstructWithDataReplaces(t *testing.T) {
	// non-nil Data clears whatever the key held before populating
	ctx := context.Background()
	st := mem.New()
	a := newTestSet(t, st, []int{1, 2})

	b, err := NewSet[int](ctx, Options[int]{Store: st, ID: a.ID(), Data: []int{9}})
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}
	if got := sortedMembers(t, b); !slices.Equal(got, []int{9}) {
		t.Fatalf("members = %v, want [9]", got)
	}
}

func TestDecodeValue(t *testing.T) {
	s := newTestSet(t, mem.New(), []int{7})

	raw, err := s.encode(7)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	if v, ok, err := s.decodeValue(raw); err != nil || !ok || v != 7 {
		t.Fatalf("decodeValue(string) = %v, %v, %v", v, ok, err)
	}
	if v, ok, err := s.decodeValue([]byte(raw)); err != nil || !ok || v != 7 {
		t.Fatalf("decodeValue([]byte) = %v, %v, %v", v, ok, err)
	}
	// nil and empty report absence without touching the codec
	if _, ok, err := s.decodeValue(nil); err != nil || ok {
		t.Fatalf("decodeValue(nil): ok=%v err=%v", ok, err)
	}
	if _, ok, err := s.decodeValue(""); err != nil || ok {
		t.Fatalf("decodeValue(\"\"): ok=%v err=%v", ok, err)
	}
	// anything else is a TypeError, not a codec error
	if _, _, err := s.decodeValue(42); !isTypeError(err) {
		t.Fatalf("decodeValue(int): got %v, want TypeError", err)
	}
}

func TestDeriveIntoScope(t *testing.T) {
	// population queued into a caller scope must stay invisible until the
	// caller commits
	ctx := context.Background()
	st := mem.New()
	src := newTestSet(t, st, []int{1, 2})

	sc := st.Scope()
	derived, err := src.Derive(ctx, []int{8, 9}, "", sc)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	if derived.ID() == src.ID() {
		t.Fatalf("derived set shares identity with source")
	}
	if got := sortedMembers(t, derived); len(got) != 0 {
		t.Fatalf("derived data visible before commit: %v", got)
	}

	if err := sc.Commit(ctx); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if got := sortedMembers(t, derived); !slices.Equal(got, []int{8, 9}) {
		t.Fatalf("derived after commit = %v", got)
	}
}

type recordingHooks struct {
	fallbacks int
	commits   int
	cleared   int
}

func (h *recordingHooks) ClientFallback(string, int) { h.fallbacks++ }
func (h *recordingHooks) ScopeCommit(string, int)    { h.commits++ }
func (h *recordingHooks) Cleared(string)             { h.cleared++ }

func TestHooksFire(t *testing.T) {
	ctx := context.Background()
	st := mem.New()
	h := &recordingHooks{}

	s, err := NewSet[int](ctx, Options[int]{Store: st, Data: []int{1, 2}, Hooks: h})
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}
	if h.commits != 1 {
		t.Fatalf("bootstrap commits = %d, want 1", h.commits)
	}

	// symmetric difference always folds client-side
	if _, err := s.SymmetricDifference(ctx, []int{2, 3}); err != nil {
		t.Fatalf("SymmetricDifference: %v", err)
	}
	if h.fallbacks == 0 {
		t.Fatalf("expected a client-fallback event")
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if h.cleared == 0 {
		t.Fatalf("expected a cleared event")
	}
}
