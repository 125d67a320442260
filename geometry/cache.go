package geometry

import (
	"log"
	"sync"

	lru "github.com/hashicorp/golang-lru"
)

// Stats describes cache effectiveness.
type Stats struct {
	Hits, Misses, Evictions uint64
	Len                     int
}

// Cache memoizes geometry by Key. Each resident key is computed at most once,
// and concurrent callers asking for the same key wait for that computation.
type Cache struct {
	mu        sync.Mutex
	unbounded map[Key]Geometry
	bounded   *lru.Cache
	stats     Stats
}

// NewCache returns a cache holding at most capacity entries, evicting the
// least recently used. A capacity of zero or less never evicts.
func NewCache(capacity int) *Cache {
	c := &Cache{}
	if capacity <= 0 {
		c.unbounded = make(map[Key]Geometry)
		return c
	}
	bounded, err := lru.NewWithEvict(capacity, func(key, value interface{}) {
		c.stats.Evictions++
	})
	if err != nil {
		log.Printf("failed creating geometry LRU, falling back to unbounded: %v", err)
		c.unbounded = make(map[Key]Geometry)
		return c
	}
	c.bounded = bounded
	return c
}

// Get returns the geometry for key, calling compute on a miss. Empty geometry
// is returned without being stored.
func (c *Cache) Get(key Key, compute func() Geometry) Geometry {
	c.mu.Lock()
	defer c.mu.Unlock()
	if g, ok := c.lookup(key); ok {
		c.stats.Hits++
		return g
	}
	c.stats.Misses++
	g := compute()
	if len(g) == 0 {
		return nil
	}
	if c.bounded != nil {
		c.bounded.Add(key, g)
	} else {
		c.unbounded[key] = g
	}
	return g
}

func (c *Cache) lookup(key Key) (Geometry, bool) {
	if c.bounded != nil {
		v, ok := c.bounded.Get(key)
		if !ok {
			return nil, false
		}
		return v.(Geometry), true
	}
	g, ok := c.unbounded[key]
	return g, ok
}

// Stats reports hit and miss counts along with the number of resident keys.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.stats
	if c.bounded != nil {
		s.Len = c.bounded.Len()
	} else {
		s.Len = len(c.unbounded)
	}
	return s
}

// Purge drops every entry. Callers purge when the dataset is replaced, since
// no key for the old chunks can be requested again.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.bounded != nil {
		c.bounded.Purge()
	} else {
		clear(c.unbounded)
	}
}
