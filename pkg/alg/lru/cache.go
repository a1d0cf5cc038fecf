// Package lru provides a generic thread-safe LRU cache bounded by entry count
// and, optionally, by total value size.
package lru

import (
	"sync"
	"sync/atomic"
)

// entry is a doubly-linked list node holding a key-value pair.
type entry[K comparable, V any] struct {
	key   K
	value V
	size  int64
	prev  *entry[K, V]
	next  *entry[K, V]
}

// Cache is a thread-safe generic LRU cache.
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*entry[K, V]
	head    *entry[K, V] // Most recently used.
	tail    *entry[K, V] // Least recently used.

	maxEntries int
	maxSize    int64
	curSize    int64
	sizeFunc   func(V) int64

	hits   atomic.Int64
	misses atomic.Int64
}

// Option configures a Cache.
type Option[K comparable, V any] func(*Cache[K, V])

// WithMaxEntries sets the maximum number of entries.
func WithMaxEntries[K comparable, V any](n int) Option[K, V] {
	return func(c *Cache[K, V]) {
		c.maxEntries = n
	}
}

// WithMaxBytes bounds the summed sizeFunc of all values.
func WithMaxBytes[K comparable, V any](maxBytes int64, sizeFunc func(V) int64) Option[K, V] {
	return func(c *Cache[K, V]) {
		c.maxSize = maxBytes
		c.sizeFunc = sizeFunc
	}
}

// New creates a cache. Without limits it grows without bound.
func New[K comparable, V any](opts ...Option[K, V]) *Cache[K, V] {
	c := &Cache[K, V]{entries: make(map[K]*entry[K, V])}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Get returns the value for key and marks it most recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ent, ok := c.entries[key]
	if !ok {
		c.misses.Add(1)

		var zero V

		return zero, false
	}

	c.hits.Add(1)
	c.unlink(ent)
	c.pushFront(ent)

	return ent.value, true
}

// Put adds or replaces the value for key, evicting least recently used
// entries until the limits hold. A value larger than the byte limit is not
// stored.
func (c *Cache[K, V]) Put(key K, value V) {
	var size int64
	if c.sizeFunc != nil {
		size = c.sizeFunc(value)
	}

	if c.maxSize > 0 && size > c.maxSize {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if ent, ok := c.entries[key]; ok {
		c.curSize += size - ent.size
		ent.value, ent.size = value, size
		c.unlink(ent)
		c.pushFront(ent)
	} else {
		ent = &entry[K, V]{key: key, value: value, size: size}
		c.entries[key] = ent
		c.curSize += size
		c.pushFront(ent)
	}

	for c.overLimit() {
		c.evictTail()
	}
}

// Clear drops every entry. Hit and miss counters are kept.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]*entry[K, V])
	c.head, c.tail = nil, nil
	c.curSize = 0
}

func (c *Cache[K, V]) overLimit() bool {
	if c.maxEntries > 0 && len(c.entries) > c.maxEntries {
		return true
	}

	return c.maxSize > 0 && c.curSize > c.maxSize
}

func (c *Cache[K, V]) evictTail() {
	ent := c.tail
	if ent == nil {
		return
	}

	c.unlink(ent)
	delete(c.entries, ent.key)
	c.curSize -= ent.size
}

func (c *Cache[K, V]) pushFront(ent *entry[K, V]) {
	ent.prev = nil
	ent.next = c.head

	if c.head != nil {
		c.head.prev = ent
	}

	c.head = ent

	if c.tail == nil {
		c.tail = ent
	}
}

func (c *Cache[K, V]) unlink(ent *entry[K, V]) {
	if ent.prev != nil {
		ent.prev.next = ent.next
	} else {
		c.head = ent.next
	}

	if ent.next != nil {
		ent.next.prev = ent.prev
	} else {
		c.tail = ent.prev
	}

	ent.prev, ent.next = nil, nil
}
