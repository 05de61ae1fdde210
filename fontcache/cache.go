// Package fontcache keeps recently used font files in memory so repeated
// stamping runs do not reread the same TTF from disk for every document.
package fontcache

import (
	"fmt"
	"os"
	"sync"
)

// DefaultMaxEntries bounds the cache when no explicit limit is given.
// Font files run a few hundred KB each; eight of them is a modest ceiling.
const DefaultMaxEntries = 8

// Cache is a bounded in-memory store of font file bytes keyed by an
// arbitrary name, usually the font family. When full, the entry unused
// the longest is evicted. The zero value is not usable; construct with
// New. Safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	max     int
	entries map[string][]byte
	order   []string // least recently used first
}

// New creates a cache holding at most max entries. Non-positive max
// falls back to DefaultMaxEntries.
func New(max int) *Cache {
	if max <= 0 {
		max = DefaultMaxEntries
	}
	return &Cache{
		max:     max,
		entries: make(map[string][]byte),
	}
}

// Get returns the cached bytes for name, or nil and false.
func (c *Cache) Get(name string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	b, ok := c.entries[name]
	if ok {
		c.touch(name)
	}
	return b, ok
}

// Put stores bytes under name, evicting the least recently used entry
// when the cache is full. Empty payloads are ignored.
func (c *Cache) Put(name string, b []byte) {
	if len(b) == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[name]; ok {
		c.entries[name] = b
		c.touch(name)
		return
	}

	if len(c.entries) >= c.max {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[name] = b
	c.order = append(c.order, name)
}

// Load returns the font bytes for path, reading the file only on a cache
// miss. The path itself is the cache key, so distinct files never alias.
func (c *Cache) Load(path string) ([]byte, error) {
	if b, ok := c.Get(path); ok {
		return b, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fontcache: reading %s: %w", path, err)
	}
	c.Put(path, b)
	return b, nil
}

// Len reports the number of cached fonts.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// touch moves name to the most recently used position.
// Callers hold c.mu.
func (c *Cache) touch(name string) {
	for i, n := range c.order {
		if n == name {
			c.order = append(c.order[:i], c.order[i+1:]...)
			c.order = append(c.order, name)
			return
		}
	}
}
