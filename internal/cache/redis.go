package cache

import (
	"fmt"
	"log"
	"time"

	redis "gopkg.in/redis.v5"
)

// RedisCache is a ResponseCache backed by a redis server. Expiry is
// handled server-side, so it needs no sweep.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to the redis server at addr and verifies the
// connection with a ping.
func NewRedisCache(addr string) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping().Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return &RedisCache{client: client}, nil
}

func (c *RedisCache) Get(key string) ([]byte, bool) {
	value, err := c.client.Get(key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Printf("Redis cache read failed for %s: %v", key, err)
		return nil, false
	}
	return value, true
}

func (c *RedisCache) Set(key string, value []byte, ttl time.Duration) {
	if err := c.client.Set(key, value, ttl).Err(); err != nil {
		log.Printf("Redis cache write failed for %s: %v", key, err)
	}
}

func (c *RedisCache) Invalidate(prefix string) {
	keys, err := c.client.Keys(prefix + "*").Result()
	if err != nil {
		log.Printf("Redis cache scan failed for %s: %v", prefix, err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(keys...).Err(); err != nil {
		log.Printf("Redis cache invalidation failed for %s: %v", prefix, err)
	}
}

// Close releases the underlying redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
