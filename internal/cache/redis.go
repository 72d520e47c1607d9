// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const opTimeout = 2 * time.Second

// RedisCache is a Redis-backed implementation of Cache, shared by every
// instance pointing at the same database. Tag membership is kept in one Redis
// set per tag.
type RedisCache struct {
	client *redis.Client
	logger zerolog.Logger
	prefix string
	stats  counters
}

// RedisConfig holds Redis connection configuration.
type RedisConfig struct {
	Addr     string // Redis server address (host:port)
	Password string // Redis password (optional)
	DB       int    // Redis database number
	Prefix   string // Key namespace, defaults to "spacegate:"
}

// NewRedisCache connects to Redis and verifies the connection with PING.
func NewRedisCache(ctx context.Context, config RedisConfig, logger zerolog.Logger) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         config.Addr,
		Password:     config.Password,
		DB:           config.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	logger.Info().
		Str("event", "cache.redis_connected").
		Str("addr", config.Addr).
		Int("db", config.DB).
		Msg("connected to Redis cache")

	return newRedisCache(client, config.Prefix, logger), nil
}

func newRedisCache(client *redis.Client, prefix string, logger zerolog.Logger) *RedisCache {
	if prefix == "" {
		prefix = "spacegate:"
	}
	return &RedisCache{
		client: client,
		logger: logger,
		prefix: prefix,
	}
}

func (c *RedisCache) entryKey(key string) string { return c.prefix + "entry:" + key }
func (c *RedisCache) tagKey(tag string) string   { return c.prefix + "tag:" + tag }

// Get retrieves a value from Redis.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	val, err := c.client.Get(ctx, c.entryKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		c.stats.misses.Add(1)
		cacheOps.WithLabelValues(backendRedis, "get", "miss").Inc()
		return nil, false
	}
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("redis get failed")
		c.stats.misses.Add(1)
		cacheOps.WithLabelValues(backendRedis, "get", "error").Inc()
		return nil, false
	}

	c.stats.hits.Add(1)
	cacheOps.WithLabelValues(backendRedis, "get", "hit").Inc()
	return val, true
}

// Set stores a value with TTL and records its tag memberships atomically.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration, tags ...string) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	entryKey := c.entryKey(key)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, entryKey, value, ttl)
		for _, tag := range tags {
			pipe.SAdd(ctx, c.tagKey(tag), entryKey)
		}
		return nil
	})
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("redis set failed")
		cacheOps.WithLabelValues(backendRedis, "set", "error").Inc()
		return
	}

	c.stats.sets.Add(1)
	cacheOps.WithLabelValues(backendRedis, "set", "ok").Inc()
}

// Delete removes a value from Redis. Stale tag memberships are harmless and
// are dropped on the next invalidation of that tag.
func (c *RedisCache) Delete(ctx context.Context, key string) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := c.client.Del(ctx, c.entryKey(key)).Err(); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("redis delete failed")
	}
}

// InvalidateTags deletes every entry listed in the given tag sets, then the sets.
func (c *RedisCache) InvalidateTags(ctx context.Context, tags ...string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	removed := 0
	for _, tag := range tags {
		tagKey := c.tagKey(tag)
		members, err := c.client.SMembers(ctx, tagKey).Result()
		if err != nil {
			return removed, fmt.Errorf("read tag %q: %w", tag, err)
		}
		if len(members) > 0 {
			n, err := c.client.Del(ctx, members...).Result()
			if err != nil {
				return removed, fmt.Errorf("delete entries for tag %q: %w", tag, err)
			}
			removed += int(n)
		}
		if err := c.client.Del(ctx, tagKey).Err(); err != nil {
			return removed, fmt.Errorf("delete tag %q: %w", tag, err)
		}
	}

	c.stats.invalidations.Add(int64(removed))
	cacheInvalidated.WithLabelValues(backendRedis).Add(float64(removed))
	return removed, nil
}

// Clear removes every key in this cache's namespace.
func (c *RedisCache) Clear(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	iter := c.client.Scan(ctx, 0, c.prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn().Err(err).Msg("redis scan failed")
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("redis clear failed")
	}
}

// Stats returns cache statistics. CurrentSize counts live entries only.
func (c *RedisCache) Stats() CacheStats {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	size := 0
	iter := c.client.Scan(ctx, 0, c.prefix+"entry:*", 100).Iterator()
	for iter.Next(ctx) {
		size++
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn().Err(err).Msg("redis scan failed")
		size = 0
	}

	return c.stats.snapshot(size)
}

// HealthCheck checks if Redis is available.
func (c *RedisCache) HealthCheck(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
