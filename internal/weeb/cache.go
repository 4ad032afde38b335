package weeb

import "sync"

// cache is a bounded in-memory key-value store. Each entity kind (search
// results, chapter lists, page lists, page bytes) gets its own instance,
// owned by the Client and scoped to its lifetime.
//
// Eviction picks an arbitrary entry (map iteration order), not the least
// recently used one. Entries never expire and cannot be invalidated.
type cache[V any] struct {
	mu      sync.Mutex
	max     int
	entries map[string]V
}

func newCache[V any](max int) *cache[V] {
	if max < 1 {
		max = 1
	}
	return &cache[V]{
		max:     max,
		entries: make(map[string]V, max),
	}
}

func (c *cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.entries[key]
	return v, ok
}

func (c *cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.max {
		for k := range c.entries {
			delete(c.entries, k)
			break
		}
	}
	c.entries[key] = value
}

func (c *cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}
