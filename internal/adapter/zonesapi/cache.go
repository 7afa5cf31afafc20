package zonesapi

import (
	"context"
	"sync"

	"github.com/halocline/station-map-etl/internal/zones"
)

// CachedFetcher wraps a zones.Fetcher with an in-memory LRU cache, so a
// rebuild of the zone index does not refetch payloads that rarely change.
type CachedFetcher struct {
	inner zones.Fetcher
	cache *lruCache
}

// NewCachedFetcher creates a cache decorator around a fetcher.
func NewCachedFetcher(inner zones.Fetcher, maxEntries int) *CachedFetcher {
	return &CachedFetcher{
		inner: inner,
		cache: newLRUCache(maxEntries),
	}
}

func (c *CachedFetcher) FetchZone(ctx context.Context, label string) ([]byte, error) {
	if payload, ok := c.cache.get(label); ok {
		return payload, nil
	}
	payload, err := c.inner.FetchZone(ctx, label)
	if err != nil {
		return nil, err
	}
	// Only cache non-empty payloads so a transiently empty response can be retried.
	if len(payload) > 0 {
		c.cache.put(label, payload)
	}
	return payload, nil
}

// lruCache is a simple thread-safe LRU cache for zone payloads.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value []byte
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
