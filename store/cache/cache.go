// Package cache provides a small in-process TTL cache used by the store for
// single-entity lookups. It is deliberately not shared across traversal
// calls for graph structure; only leaf entities are cached.
package cache

import (
	"context"
	"sync"
	"time"
)

// Config holds the configuration for the cache.
type Config struct {
	// DefaultTTL is how long entries live before expiring.
	DefaultTTL time.Duration
	// CleanupInterval is how often expired entries are swept.
	CleanupInterval time.Duration
	// MaxItems bounds the cache size; the oldest entry is evicted at the cap.
	MaxItems int
}

type item[V any] struct {
	value     V
	expiresAt time.Time
}

// Cache is a thread-safe TTL cache.
type Cache[K comparable, V any] struct {
	mu     sync.RWMutex
	items  map[K]item[V]
	config Config

	stopOnce sync.Once
	stop     chan struct{}
}

// New creates a new cache and starts its cleanup goroutine.
func New[K comparable, V any](config Config) *Cache[K, V] {
	if config.DefaultTTL <= 0 {
		config.DefaultTTL = 10 * time.Minute
	}
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = time.Minute
	}
	if config.MaxItems <= 0 {
		config.MaxItems = 1000
	}

	c := &Cache[K, V]{
		items:  make(map[K]item[V]),
		config: config,
		stop:   make(chan struct{}),
	}
	go c.cleanupLoop()
	return c
}

// Get retrieves a value from the cache.
func (c *Cache[K, V]) Get(_ context.Context, key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	it, ok := c.items[key]
	if !ok || time.Now().After(it.expiresAt) {
		var zero V
		return zero, false
	}
	return it.value, true
}

// Set stores a value with the default TTL.
func (c *Cache[K, V]) Set(_ context.Context, key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items) >= c.config.MaxItems {
		c.evictOldestLocked()
	}
	c.items[key] = item[V]{
		value:     value,
		expiresAt: time.Now().Add(c.config.DefaultTTL),
	}
}

// Delete removes a value from the cache.
func (c *Cache[K, V]) Delete(_ context.Context, key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Close stops the cleanup goroutine.
func (c *Cache[K, V]) Close() {
	c.stopOnce.Do(func() {
		close(c.stop)
	})
}

func (c *Cache[K, V]) evictOldestLocked() {
	var oldestKey K
	var oldestExpiry time.Time
	first := true
	for key, it := range c.items {
		if first || it.expiresAt.Before(oldestExpiry) {
			oldestKey = key
			oldestExpiry = it.expiresAt
			first = false
		}
	}
	if !first {
		delete(c.items, oldestKey)
	}
}

func (c *Cache[K, V]) cleanupLoop() {
	ticker := time.NewTicker(c.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			now := time.Now()
			c.mu.Lock()
			for key, it := range c.items {
				if now.After(it.expiresAt) {
					delete(c.items, key)
				}
			}
			c.mu.Unlock()
		}
	}
}
