package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Redis {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	s, err := New(Config{Client: client, CloseClient: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func TestNewNilClient(t *testing.T) {
	_, err := New(Config{})
	require.ErrorIs(t, err, ErrNilClient)
}

func TestSetPrimitives(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.SAdd(ctx, "k", "a", "b", "b"))

	n, err := s.SCard(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	ok, err := s.SIsMember(ctx, "k", "a")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.SIsMember(ctx, "k", "z")
	require.NoError(t, err)
	assert.False(t, ok)

	members, err := s.SMembers(ctx, "k")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, members)

	removed, err := s.SRem(ctx, "k", "a", "z")
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	// zero-member calls are no-ops, not protocol errors
	require.NoError(t, s.SAdd(ctx, "k"))
	removed, err = s.SRem(ctx, "k")
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestExistsAndDel(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	ok, err := s.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SAdd(ctx, "k", "a"))
	ok, err = s.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.Del(ctx, "k"))
	ok, err = s.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	// deleting an absent key is fine
	require.NoError(t, s.Del(ctx, "k"))
}

func TestSPop(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.SAdd(ctx, "k", "only"))

	m, ok, err := s.SPop(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "only", m)

	// Redis removes the key with its last member
	exists, err := s.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, exists)

	_, ok, err = s.SPop(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSRandMember(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.SAdd(ctx, "k", "a", "b", "c"))

	got, err := s.SRandMember(ctx, "k", 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.NotEqual(t, got[0], got[1])

	got, err = s.SRandMember(ctx, "k", 10)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, err = s.SRandMember(ctx, "k", -5)
	require.NoError(t, err)
	assert.Len(t, got, 5)
}

func TestAlgebraCommands(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.SAdd(ctx, "a", "1", "2", "3"))
	require.NoError(t, s.SAdd(ctx, "b", "3", "4"))

	union, err := s.SUnion(ctx, "a", "b")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"1", "2", "3", "4"}, union)

	inter, err := s.SInter(ctx, "a", "b")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"3"}, inter)

	diff, err := s.SDiff(ctx, "a", "b")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"1", "2"}, diff)

	union, err = s.SUnion(ctx, "a", "missing")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"1", "2", "3"}, union)
}

func TestScopeCommit(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.SAdd(ctx, "k", "old"))

	sc := s.Scope()
	sc.Del(ctx, "k")
	sc.SAdd(ctx, "k", "n1", "n2", "n3")
	sc.SRem(ctx, "k", "n3")

	// queued only; the server has not seen the batch yet
	members, err := s.SMembers(ctx, "k")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"old"}, members)

	require.NoError(t, sc.Commit(ctx))

	members, err = s.SMembers(ctx, "k")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"n1", "n2"}, members)
}
