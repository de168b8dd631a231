// Package cache is a thin redis wrapper used for short-TTL lookups:
// ledger account snapshots and wallet login challenges. With no redis
// address configured every read is a miss and writes are dropped, so
// callers degrade to their uncached path.
package cache

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

type Cache struct {
	rdb *redis.Client
}

// New connects to redis at addr. An empty addr returns a disabled cache.
func New(addr string) *Cache {
	if addr == "" {
		return &Cache{}
	}
	return &Cache{rdb: redis.NewClient(&redis.Options{Addr: addr})}
}

func (c *Cache) Get(ctx context.Context, key string) (string, bool) {
	if c.rdb == nil {
		return "", false
	}
	val, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[cache] get %s: %v", key, err)
		}
		return "", false
	}
	return val, true
}

func (c *Cache) Set(ctx context.Context, key, value string, ttl time.Duration) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		log.Printf("[cache] set %s: %v", key, err)
	}
}

func (c *Cache) Delete(ctx context.Context, key string) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		log.Printf("[cache] delete %s: %v", key, err)
	}
}

func (c *Cache) Close() {
	if c.rdb != nil {
		c.rdb.Close()
	}
}
