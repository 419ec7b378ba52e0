package redis

import (
	"sync"

	goredis "github.com/redis/go-redis/v9"
)

var (
	defaultOnce  sync.Once
	defaultStore *Redis
)

// Default returns the process-wide store, creating it on first use with
// go-redis client defaults (localhost:6379, DB 0). It exists so collections
// can be constructed without explicit wiring; anything beyond a local
// single-node setup should construct its own store via New and inject it.
// Many collections and goroutines may share the returned store.
func Default() *Redis {
	defaultOnce.Do(func() {
		defaultStore = &Redis{
			rdb:         goredis.NewClient(&goredis.Options{}),
			closeClient: true,
		}
	})
	return defaultStore
}
