package cache

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// CacheItem represents a cached item with expiration
type CacheItem struct {
	Value      string
	Expiration int64
}

// IsExpired checks if the item has expired
func (item CacheItem) IsExpired() bool {
	if item.Expiration == 0 {
		return false
	}
	return time.Now().UnixNano() > item.Expiration
}

// Cache is an in-memory TTL cache of cipher results. Cipher calls are pure,
// so a result is valid for as long as it is kept.
type Cache struct {
	items      map[string]CacheItem
	mu         sync.RWMutex
	defaultTTL time.Duration
	maxSize    int
	group      singleflight.Group
	stop       chan struct{}
	stopOnce   sync.Once
}

// NewCache creates a new cache instance
func NewCache(defaultTTL time.Duration, maxSize int) *Cache {
	if maxSize <= 0 {
		maxSize = 1
	}
	c := &Cache{
		items:      make(map[string]CacheItem),
		defaultTTL: defaultTTL,
		maxSize:    maxSize,
		stop:       make(chan struct{}),
	}

	// Start cleanup goroutine
	go c.cleanup(time.Minute)

	return c
}

// Get retrieves an item from the cache
func (c *Cache) Get(key string) (string, bool) {
	c.mu.RLock()
	item, found := c.items[key]
	c.mu.RUnlock()

	if !found {
		return "", false
	}

	if item.IsExpired() {
		c.Delete(key)
		return "", false
	}

	return item.Value, true
}

// Set stores an item in the cache with default TTL
func (c *Cache) Set(key, value string) {
	c.SetWithTTL(key, value, c.defaultTTL)
}

// SetWithTTL stores an item with custom TTL
func (c *Cache) SetWithTTL(key, value string, ttl time.Duration) {
	var expiration int64
	if ttl > 0 {
		expiration = time.Now().Add(ttl).UnixNano()
	}

	c.mu.Lock()
	// Evict if at capacity
	if _, exists := c.items[key]; !exists && len(c.items) >= c.maxSize {
		c.evictOne()
	}
	c.items[key] = CacheItem{
		Value:      value,
		Expiration: expiration,
	}
	c.mu.Unlock()
}

// Delete removes an item from the cache
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
	c.group.Forget(key)
}

// GetOrLoad gets from cache or loads using the provided function.
// Concurrent loads of the same key share one call. Errors are not cached.
// hit reports whether the value came from the cache.
func (c *Cache) GetOrLoad(key string, loader func() (string, error)) (val string, hit bool, err error) {
	if val, found := c.Get(key); found {
		return val, true, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		// Double-check cache after joining the flight
		if val, found := c.Get(key); found {
			return val, nil
		}

		result, err := loader()
		if err != nil {
			return nil, err
		}

		c.Set(key, result)
		return result, nil
	})
	if err != nil {
		return "", false, err
	}
	return v.(string), false, nil
}

// evictOne removes one expired or the soonest-expiring item
func (c *Cache) evictOne() {
	var oldestKey string
	var oldestTime int64

	for key, item := range c.items {
		if item.IsExpired() {
			delete(c.items, key)
			return
		}
		if oldestKey == "" || item.Expiration < oldestTime {
			oldestTime = item.Expiration
			oldestKey = key
		}
	}

	if oldestKey != "" {
		delete(c.items, oldestKey)
	}
}

// cleanup periodically removes expired items until Close
func (c *Cache) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.mu.Lock()
			for key, item := range c.items {
				if item.IsExpired() {
					delete(c.items, key)
				}
			}
			c.mu.Unlock()
		}
	}
}

// Close stops the cleanup goroutine
func (c *Cache) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
}

// Size returns the number of items in the cache
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
