// Package redis implements the collection store on top of go-redis.
package redis

import (
	"context"
	"errors"

	goredis "github.com/redis/go-redis/v9"

	"github.com/unkn0wn-root/rediscoll/store"
)

var ErrNilClient = errors.New("redis store: nil client")

// Redis adapts a go-redis client to the store.Store surface. Scopes map to
// MULTI/EXEC transactions, so everything queued into one scope is applied by
// the server as a single atomic unit.
type Redis struct {
	rdb         goredis.UniversalClient
	closeClient bool
}

var _ store.Store = (*Redis)(nil)

type Config struct {
	Client      goredis.UniversalClient
	CloseClient bool // set true only if this store exclusively owns the client
}

func New(cfg Config) (*Redis, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	return &Redis{rdb: cfg.Client, closeClient: cfg.CloseClient}, nil
}

func (s *Redis) Del(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}

func (s *Redis) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.rdb.Exists(ctx, key).Result()
	return n > 0, err
}

func (s *Redis) SAdd(ctx context.Context, key string, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	return s.rdb.SAdd(ctx, key, memberArgs(members)...).Err()
}

func (s *Redis) SRem(ctx context.Context, key string, members ...string) (int64, error) {
	if len(members) == 0 {
		return 0, nil
	}
	return s.rdb.SRem(ctx, key, memberArgs(members)...).Result()
}

func (s *Redis) SCard(ctx context.Context, key string) (int64, error) {
	return s.rdb.SCard(ctx, key).Result()
}

func (s *Redis) SIsMember(ctx context.Context, key, member string) (bool, error) {
	return s.rdb.SIsMember(ctx, key, member).Result()
}

func (s *Redis) SMembers(ctx context.Context, key string) ([]string, error) {
	return s.rdb.SMembers(ctx, key).Result()
}

func (s *Redis) SRandMember(ctx context.Context, key string, count int64) ([]string, error) {
	return s.rdb.SRandMemberN(ctx, key, count).Result()
}

func (s *Redis) SPop(ctx context.Context, key string) (string, bool, error) {
	m, err := s.rdb.SPop(ctx, key).Result()
	if err == goredis.Nil {
		return "", false, nil // empty or absent set
	}
	if err != nil {
		return "", false, err
	}
	return m, true, nil
}

func (s *Redis) SUnion(ctx context.Context, keys ...string) ([]string, error) {
	return s.rdb.SUnion(ctx, keys...).Result()
}

func (s *Redis) SInter(ctx context.Context, keys ...string) ([]string, error) {
	return s.rdb.SInter(ctx, keys...).Result()
}

func (s *Redis) SDiff(ctx context.Context, keys ...string) ([]string, error) {
	return s.rdb.SDiff(ctx, keys...).Result()
}

func (s *Redis) Scope() store.Scope {
	return &scope{pipe: s.rdb.TxPipeline()}
}

// Close releases the underlying client only when this store owns it.
// Safe to call multiple times; repeated calls become no-ops.
func (s *Redis) Close(context.Context) error {
	if s.closeClient {
		if err := s.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}

// scope queues commands on a transactional pipeline; Exec sends
// MULTI ... EXEC in one round trip.
type scope struct {
	pipe goredis.Pipeliner
}

var _ store.Scope = (*scope)(nil)

func (sc *scope) Del(ctx context.Context, key string) {
	sc.pipe.Del(ctx, key)
}

func (sc *scope) SAdd(ctx context.Context, key string, members ...string) {
	if len(members) == 0 {
		return
	}
	sc.pipe.SAdd(ctx, key, memberArgs(members)...)
}

func (sc *scope) SRem(ctx context.Context, key string, members ...string) {
	if len(members) == 0 {
		return
	}
	sc.pipe.SRem(ctx, key, memberArgs(members)...)
}

func (sc *scope) Commit(ctx context.Context) error {
	_, err := sc.pipe.Exec(ctx)
	return err
}

func memberArgs(members []string) []interface{} {
	args := make([]interface{}, len(members))
	for i, m := range members {
		args[i] = m
	}
	return args
}
