package mem

import (
	"context"
	"slices"
	"testing"
)

func TestSetPrimitives(t *testing.T) {
	ctx := context.Background()
	m := New()

	if err := m.SAdd(ctx, "k", "a", "b", "b"); err != nil {
		t.Fatalf("SAdd: %v", err)
	}
	if n, _ := m.SCard(ctx, "k"); n != 2 {
		t.Fatalf("SCard = %d, want 2", n)
	}
	if ok, _ := m.SIsMember(ctx, "k", "a"); !ok {
		t.Fatalf("SIsMember(a) = false")
	}
	if ok, _ := m.SIsMember(ctx, "k", "z"); ok {
		t.Fatalf("SIsMember(z) = true")
	}

	members, _ := m.SMembers(ctx, "k")
	slices.Sort(members)
	if !slices.Equal(members, []string{"a", "b"}) {
		t.Fatalf("SMembers = %v", members)
	}

	n, _ := m.SRem(ctx, "k", "a", "z")
	if n != 1 {
		t.Fatalf("SRem removed %d, want 1", n)
	}
}

func TestDeleteOnEmpty(t *testing.T) {
	ctx := context.Background()
	m := New()

	_ = m.SAdd(ctx, "k", "a")
	if _, err := m.SRem(ctx, "k", "a"); err != nil {
		t.Fatalf("SRem: %v", err)
	}
	if ok, _ := m.Exists(ctx, "k"); ok {
		t.Fatalf("key should be gone after last member removed")
	}

	_ = m.SAdd(ctx, "p", "x")
	if _, ok, _ := m.SPop(ctx, "p"); !ok {
		t.Fatalf("SPop should return the only member")
	}
	if ok, _ := m.Exists(ctx, "p"); ok {
		t.Fatalf("key should be gone after pop emptied it")
	}
	if _, ok, _ := m.SPop(ctx, "p"); ok {
		t.Fatalf("SPop on absent key should report empty")
	}
}

func TestSRandMember(t *testing.T) {
	ctx := context.Background()
	m := New()
	_ = m.SAdd(ctx, "k", "a", "b", "c")

	got, _ := m.SRandMember(ctx, "k", 2)
	if len(got) != 2 || got[0] == got[1] {
		t.Fatalf("SRandMember(2) = %v, want 2 distinct members", got)
	}

	// positive count caps at cardinality
	got, _ = m.SRandMember(ctx, "k", 10)
	if len(got) != 3 {
		t.Fatalf("SRandMember(10) = %v, want all 3", got)
	}

	// negative count repeats
	got, _ = m.SRandMember(ctx, "k", -5)
	if len(got) != 5 {
		t.Fatalf("SRandMember(-5) returned %d members, want 5", len(got))
	}

	if got, _ := m.SRandMember(ctx, "k", 0); len(got) != 0 {
		t.Fatalf("SRandMember(0) = %v, want empty", got)
	}
}

func TestAlgebraCommands(t *testing.T) {
	ctx := context.Background()
	m := New()
	_ = m.SAdd(ctx, "a", "1", "2", "3")
	_ = m.SAdd(ctx, "b", "3", "4")

	sorted := func(ss []string) []string { slices.Sort(ss); return ss }

	if got, _ := m.SUnion(ctx, "a", "b"); !slices.Equal(sorted(got), []string{"1", "2", "3", "4"}) {
		t.Fatalf("SUnion = %v", got)
	}
	if got, _ := m.SInter(ctx, "a", "b"); !slices.Equal(sorted(got), []string{"3"}) {
		t.Fatalf("SInter = %v", got)
	}
	if got, _ := m.SDiff(ctx, "a", "b"); !slices.Equal(sorted(got), []string{"1", "2"}) {
		t.Fatalf("SDiff = %v", got)
	}
	// absent keys behave as empty sets
	if got, _ := m.SUnion(ctx, "a", "missing"); !slices.Equal(sorted(got), []string{"1", "2", "3"}) {
		t.Fatalf("SUnion with missing = %v", got)
	}
}

func TestScopeAtomicity(t *testing.T) {
	ctx := context.Background()
	m := New()
	_ = m.SAdd(ctx, "k", "old")

	sc := m.Scope()
	sc.Del(ctx, "k")
	sc.SAdd(ctx, "k", "new1", "new2")

	// nothing applied before commit
	members, _ := m.SMembers(ctx, "k")
	if !slices.Equal(members, []string{"old"}) {
		t.Fatalf("scope leaked before commit: %v", members)
	}

	if err := sc.Commit(ctx); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	members, _ = m.SMembers(ctx, "k")
	slices.Sort(members)
	if !slices.Equal(members, []string{"new1", "new2"}) {
		t.Fatalf("after commit = %v", members)
	}
}
