// Package cache is a two tier string cache: L1 in memory, L2 in Redis when
// a Redis URL is configured. It stores transcript summaries so repeated
// generations for the same video skip the extra model call.
package cache

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"commendai/internal/logger"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultTTL        = 24 * time.Hour
	DefaultMaxEntries = 500
)

type Cache struct {
	mu         sync.Mutex
	l1         map[string]entry
	rdb        *redis.Client // nil when L2 is disabled
	ttl        time.Duration
	maxEntries int
	now        func() time.Time

	hits   atomic.Int64
	misses atomic.Int64
}

type entry struct {
	value     string
	expiresAt time.Time
}

// New builds a cache. An empty or unreachable redisURL leaves L2 disabled;
// that is logged, not returned as an error.
func New(ctx context.Context, redisURL string, ttl time.Duration, maxEntries int) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Cache{
		l1:         make(map[string]entry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}

	log := logger.FromContext(ctx)
	if redisURL != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Warn("Invalid redis URL, L2 cache disabled", "error", err)
		} else {
			rdb := redis.NewClient(opts)
			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			defer cancel()
			if err := rdb.Ping(pingCtx).Err(); err != nil {
				log.Warn("Redis unreachable, L2 cache disabled", "addr", opts.Addr, "error", err)
				_ = rdb.Close()
			} else {
				c.rdb = rdb
				log.Info("L2 cache connected", "addr", opts.Addr)
			}
		}
	}

	log.Debug("Cache initialized", "ttl", ttl, "redis", c.rdb != nil, "max_entries", maxEntries)
	return c
}

// Key builds a deterministic key from parts.
func Key(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return fmt.Sprintf("commendai:%x", hash[:12])
}

// Get tries L1, then L2. An L2 hit repopulates L1.
func (c *Cache) Get(ctx context.Context, key string) (string, bool) {
	now := c.now()

	c.mu.Lock()
	e, ok := c.l1[key]
	if ok && now.Before(e.expiresAt) {
		c.mu.Unlock()
		c.hits.Add(1)
		return e.value, true
	}
	if ok {
		delete(c.l1, key)
	}
	c.mu.Unlock()

	if c.rdb != nil {
		val, err := c.rdb.Get(ctx, key).Result()
		if err == nil {
			c.store(key, val, now)
			c.hits.Add(1)
			return val, true
		}
		if !errors.Is(err, redis.Nil) {
			logger.FromContext(ctx).Debug("L2 cache get failed", "error", err)
		}
	}

	c.misses.Add(1)
	return "", false
}

// Set stores value in both tiers.
func (c *Cache) Set(ctx context.Context, key, value string) {
	c.store(key, value, c.now())

	if c.rdb != nil {
		if err := c.rdb.Set(ctx, key, value, c.ttl).Err(); err != nil {
			logger.FromContext(ctx).Debug("L2 cache set failed", "error", err)
		}
	}
}

// Stats returns hit and miss counters.
func (c *Cache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *Cache) Close() error {
	if c.rdb != nil {
		return c.rdb.Close()
	}
	return nil
}

func (c *Cache) store(key, value string, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.l1[key]; !exists {
		c.evictLocked(now)
	}
	c.l1[key] = entry{value: value, expiresAt: now.Add(c.ttl)}
}

// evictLocked makes room for one entry: expired entries go first, then
// the ones closest to expiry.
func (c *Cache) evictLocked(now time.Time) {
	if c.maxEntries <= 0 || len(c.l1) < c.maxEntries {
		return
	}

	for k, e := range c.l1 {
		if !now.Before(e.expiresAt) {
			delete(c.l1, k)
		}
	}

	for len(c.l1) >= c.maxEntries {
		var oldestKey string
		var oldest time.Time
		for k, e := range c.l1 {
			if oldestKey == "" || e.expiresAt.Before(oldest) {
				oldestKey, oldest = k, e.expiresAt
			}
		}
		delete(c.l1, oldestKey)
	}
}
